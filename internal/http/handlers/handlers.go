// Package handlers – service contracts and wiring.
//
// Handlers are transport-thin: they validate path, query and body input,
// call application services, and translate results into HTTP responses.
package handlers

import (
	"context"
	"time"

	"github.com/tbourn/go-news-backend/internal/domain"
	"github.com/tbourn/go-news-backend/internal/services"
)

// TopicLister lists every topic.
type TopicLister interface {
	List(ctx context.Context) ([]domain.Topic, error)
}

// UserLister lists every user.
type UserLister interface {
	List(ctx context.Context) ([]domain.User, error)
}

// ArticleService defines the article reads and the vote mutation consumed by
// HTTP handlers. Implementations must honor the context for cancellation.
type ArticleService interface {
	// List returns the matching articles and the total match count.
	List(ctx context.Context, f domain.ArticleFilter) ([]domain.Article, int64, error)
	// Get returns one article including its body and comment count.
	Get(ctx context.Context, id int64) (*domain.Article, error)
	// Vote adds inc to the article's votes and returns the updated article.
	Vote(ctx context.Context, id int64, inc int) (*domain.Article, error)
}

// CommentService defines comment listing, creation and deletion.
type CommentService interface {
	ListByArticle(ctx context.Context, articleID int64) ([]domain.Comment, error)
	// Create reports replayed=true when an earlier request with the same
	// idempotency key produced the returned comment.
	Create(ctx context.Context, in services.NewComment) (*domain.Comment, bool, error)
	Delete(ctx context.Context, id int64) error
}

// DefaultMaxPageSize caps ?limit= when Handlers.MaxPageSize is unset.
const DefaultMaxPageSize = 100

// Handlers groups the HTTP endpoints of the news API.
type Handlers struct {
	topics   TopicLister
	articles ArticleService
	comments CommentService
	users    UserLister

	// MaxPageSize caps ?limit= on article listings.
	MaxPageSize int
	// BasePath prefixes the paths reported by GetEndpoints.
	BasePath string
	// Now stamps new comments; tests replace it.
	Now func() time.Time
}

// New constructs a Handlers bound to the given services.
func New(topics TopicLister, articles ArticleService, comments CommentService, users UserLister) *Handlers {
	return &Handlers{
		topics:      topics,
		articles:    articles,
		comments:    comments,
		users:       users,
		MaxPageSize: DefaultMaxPageSize,
		BasePath:    "/api",
		Now:         time.Now,
	}
}

func (h *Handlers) now() time.Time {
	if h.Now == nil {
		return time.Now().UTC()
	}
	return h.Now().UTC()
}
