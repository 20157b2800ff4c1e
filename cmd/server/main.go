package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/yasirmansoori/Authentication-with-JWT/internal/config"
	"github.com/yasirmansoori/Authentication-with-JWT/internal/db"
	"github.com/yasirmansoori/Authentication-with-JWT/internal/es"
	"github.com/yasirmansoori/Authentication-with-JWT/internal/httpserver"
	"github.com/yasirmansoori/Authentication-with-JWT/internal/logging"
	mwauth "github.com/yasirmansoori/Authentication-with-JWT/internal/middleware/auth"
	loggingmw "github.com/yasirmansoori/Authentication-with-JWT/internal/middleware/logging"
	"github.com/yasirmansoori/Authentication-with-JWT/internal/mykafka"
	"github.com/yasirmansoori/Authentication-with-JWT/internal/repo"
	"github.com/yasirmansoori/Authentication-with-JWT/internal/service"
	"github.com/yasirmansoori/Authentication-with-JWT/internal/tokens"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	config.MustNonEmpty(cfg.ACCESS_TOKEN_SECRET, "ACCESS_TOKEN_SECRET")
	config.MustNonEmpty(cfg.REFRESH_TOKEN_SECRET, "REFRESH_TOKEN_SECRET")

	logger := logging.New(cfg.LogLevel)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	database, err := db.Open(initCtx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	tokenSvc, err := tokens.New(
		[]byte(cfg.ACCESS_TOKEN_SECRET),
		[]byte(cfg.REFRESH_TOKEN_SECRET),
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)
	if err != nil {
		log.Fatalf("token service init error: %v", err)
	}

	var producer *mykafka.Producer
	if cfg.KAFKA_ADDRESS != "" {
		producer, err = mykafka.NewProducer([]string{cfg.KAFKA_ADDRESS}, "user_events")
		if err != nil {
			log.Fatal(err)
		}
	}

	store := repo.New(database)

	authSvc := &service.AuthService{
		Repo:     store,
		Tokens:   tokenSvc,
		Producer: producer,
	}
	userSvc := &service.UserService{
		Repo:     store,
		Producer: producer,
		Index:    "users",
	}
	if cfg.ES_URL != "" {
		client, err := es.NewClient(cfg)
		if err != nil {
			log.Fatal(err)
		}
		userSvc.ES = client
	}

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	store.StartRevocationSweep(sweepCtx, time.Hour, logger)

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:   &httpserver.AuthHandler{Svc: authSvc},
		UserHandler:   &httpserver.UserHandler{Svc: userSvc},
		Gate:          mwauth.NewGate(tokenSvc, store),
		SearchEnabled: userSvc.ES != nil,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := database.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
