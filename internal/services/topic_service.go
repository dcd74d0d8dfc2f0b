package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"gorm.io/gorm"

	"github.com/tbourn/go-news-backend/internal/domain"
)

// TopicRepo defines the repository contract required by TopicService.
type TopicRepo interface {
	// ListTopics returns every topic; an empty store yields an empty slice.
	ListTopics(ctx context.Context, db *gorm.DB) ([]domain.Topic, error)
}

// TopicService exposes the read-only topic catalogue.
type TopicService struct {
	DB   *gorm.DB
	Repo TopicRepo
}

// NewTopicService constructs a TopicService.
func NewTopicService(db *gorm.DB, r TopicRepo) *TopicService {
	return &TopicService{DB: db, Repo: r}
}

// List returns all topics. It never fails with NotFound.
func (s *TopicService) List(ctx context.Context) ([]domain.Topic, error) {
	ctx, span := otel.Tracer("services/TopicService").Start(ctx, "List")
	defer span.End()

	topics, err := s.Repo.ListTopics(ctx, s.DB)
	if err != nil {
		err = classify(err, "")
		record(span, err)
		return nil, err
	}
	if topics == nil {
		topics = []domain.Topic{}
	}
	return topics, nil
}
