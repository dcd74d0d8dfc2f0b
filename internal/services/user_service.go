package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"gorm.io/gorm"

	"github.com/tbourn/go-news-backend/internal/domain"
)

// UserRepo defines the repository contract required by UserService.
type UserRepo interface {
	ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error)
}

// UserService exposes the user directory.
type UserService struct {
	DB   *gorm.DB
	Repo UserRepo
}

// NewUserService constructs a UserService.
func NewUserService(db *gorm.DB, r UserRepo) *UserService {
	return &UserService{DB: db, Repo: r}
}

// List returns all users with username, name and avatar_url.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	ctx, span := otel.Tracer("services/UserService").Start(ctx, "List")
	defer span.End()

	users, err := s.Repo.ListUsers(ctx, s.DB)
	if err != nil {
		err = classify(err, "")
		record(span, err)
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}
