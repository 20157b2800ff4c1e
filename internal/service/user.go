package service

import (
	"context"
	"errors"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"

	"github.com/yasirmansoori/Authentication-with-JWT/internal/hash"
	"github.com/yasirmansoori/Authentication-with-JWT/internal/logging"
	"github.com/yasirmansoori/Authentication-with-JWT/internal/models"
	"github.com/yasirmansoori/Authentication-with-JWT/internal/mykafka"
	"github.com/yasirmansoori/Authentication-with-JWT/internal/repo"
	"github.com/yasirmansoori/Authentication-with-JWT/internal/service/search"
	"github.com/yasirmansoori/Authentication-with-JWT/internal/util"
	"github.com/yasirmansoori/Authentication-with-JWT/internal/validation"
)

type UserService struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
	Index    string
}

// UpdateUserRequest carries the optional update fields. Role is accepted
// here because updates only run on the admin path; registration and
// self-service flows can never set it.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

func (s *UserService) List(ctx context.Context, page, size int) (int64, []models.User, error) {
	offset, limit := util.Calculate(page, size)

	total, users, err := s.Repo.ListUsers(ctx, offset, limit)
	if err != nil {
		logging.FromContext(ctx).Error("user_list_failed", "error", err)
		return 0, nil, Internal("Could not list users")
	}
	return total, users, nil
}

func (s *UserService) GetByID(ctx context.Context, rawID string) (*models.User, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, BadRequest("Invalid user id")
	}

	user, err := s.Repo.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, NotFound("User not found")
		}
		logging.FromContext(ctx).Error("user_get_failed", "error", err)
		return nil, Internal("Could not get user")
	}
	return user, nil
}

func (s *UserService) UpdateByID(ctx context.Context, rawID string, req UpdateUserRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "user.update")

	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, BadRequest("Invalid user id")
	}

	if err := validation.ValidateUpdate(req.Name, req.Username, req.Email, req.Password); err != nil {
		return nil, err
	}
	if req.Role != nil && *req.Role != models.RoleUser && *req.Role != models.RoleAdmin {
		return nil, BadRequest("Invalid role")
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Username != nil {
		fields["username"] = *req.Username
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Password != nil {
		pwHash, err := hash.HashPassword(*req.Password)
		if err != nil {
			l.Error("user_update_failed", "status", 500, "error", err)
			return nil, Internal("Could not update user")
		}
		fields["password_hash"] = pwHash
	}
	if req.Role != nil {
		fields["role"] = *req.Role
	}

	user, err := s.Repo.UpdateUser(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, NotFound("User not found")
		}
		l.Error("user_update_failed", "status", 500, "error", err)
		return nil, Internal("Could not update user")
	}

	s.publish(ctx, user.ID.String(), map[string]any{
		"type":    "user_updated",
		"user_id": user.ID,
	})

	l.Info("user_updated", "user_id", user.ID)
	return user, nil
}

func (s *UserService) DeleteByID(ctx context.Context, rawID string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "user.delete")

	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, BadRequest("Invalid user id")
	}

	user, err := s.Repo.DeleteUser(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, NotFound("User not found")
		}
		l.Error("user_delete_failed", "status", 500, "error", err)
		return nil, Internal("Could not delete user")
	}

	s.publish(ctx, user.ID.String(), map[string]any{
		"type":    "user_deleted",
		"user_id": user.ID,
	})

	l.Info("user_deleted", "user_id", user.ID)
	return user, nil
}

// Search queries the users index. Only available when elasticsearch is
// configured; the index is kept current by a consumer of the user_events
// topic.
func (s *UserService) Search(ctx context.Context, query string, page, size int) (int64, []models.User, error) {
	if s.ES == nil {
		return 0, nil, Internal("Search is not configured")
	}
	if query == "" {
		return 0, nil, BadRequest("Query parameter q is required")
	}

	from, limit := util.Calculate(page, size)

	total, users, err := search.Users(ctx, s.ES, s.Index, query, from, limit)
	if err != nil {
		logging.FromContext(ctx).Error("user_search_failed", "error", err)
		return 0, nil, Internal("Could not search users")
	}
	return total, users, nil
}

func (s *UserService) publish(ctx context.Context, key string, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "error", err)
	}
}
