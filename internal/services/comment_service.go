// Package services – CommentService
//
// CommentService lists, creates and deletes comments. Creation verifies the
// parent article and inserts the comment in one transaction. When the caller
// supplies an idempotency key, the (article, key) pair is recorded in the same
// transaction and a later request with the same pair replays the stored
// comment instead of inserting again.
package services

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-news-backend/internal/apperr"
	"github.com/tbourn/go-news-backend/internal/domain"
	"github.com/tbourn/go-news-backend/internal/repo"
)

// DefaultIdempotencyTTL is used when CommentService.IdempotencyTTL is unset.
const DefaultIdempotencyTTL = 24 * time.Hour

// CommentService coordinates comment persistence.
type CommentService struct {
	DB             *gorm.DB
	IdempotencyTTL time.Duration
}

// NewComment is the validated input of Create.
type NewComment struct {
	ArticleID      int64
	Author         string
	Body           string
	CreatedAt      time.Time
	IdempotencyKey string // optional
}

// ListByArticle returns the article's comments, newest first. Zero comments
// is reported as NotFound whether or not the article exists.
func (s *CommentService) ListByArticle(ctx context.Context, articleID int64) (items []domain.Comment, err error) {
	ctx, span := otel.Tracer("services/CommentService").Start(ctx, "ListByArticle",
		trace.WithAttributes(attribute.Int64("article.id", articleID)),
	)
	defer span.End()
	defer func() { record(span, err) }()

	items, err = repo.ListCommentsByArticle(ctx, s.DB, articleID)
	if err != nil {
		return nil, classify(err, "")
	}
	if len(items) == 0 {
		return nil, apperr.NotFound(MsgNoComments)
	}
	return items, nil
}

// Create inserts a comment on an existing article. replayed is true when the
// returned comment was produced by an earlier request with the same
// idempotency key.
func (s *CommentService) Create(ctx context.Context, in NewComment) (c *domain.Comment, replayed bool, err error) {
	ctx, span := otel.Tracer("services/CommentService").Start(ctx, "Create",
		trace.WithAttributes(
			attribute.Int64("article.id", in.ArticleID),
			attribute.String("comment.author", in.Author),
			attribute.Bool("idempotent", in.IdempotencyKey != ""),
		),
	)
	defer span.End()
	defer func() { record(span, err) }()

	if in.IdempotencyKey != "" {
		prev, err := s.replay(ctx, in.ArticleID, in.IdempotencyKey)
		if err != nil {
			return nil, false, err
		}
		if prev != nil {
			span.SetAttributes(attribute.Bool("idempotency.replayed", true))
			return prev, true, nil
		}
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := repo.ArticleExists(ctx, tx, in.ArticleID)
		if err != nil {
			return apperr.Storage(err)
		}
		if !ok {
			return apperr.NotFound(MsgCommentArticleMissing)
		}
		c, err = repo.CreateComment(ctx, tx, in.ArticleID, in.Author, in.Body, in.CreatedAt)
		if err != nil {
			return err
		}
		if in.IdempotencyKey != "" {
			_, err = repo.CreateIdempotency(ctx, tx, scopeFor(in.ArticleID), in.IdempotencyKey,
				c.CommentID, http.StatusCreated, s.ttl())
			return err
		}
		return nil
	})

	// A concurrent request with the same key committed first.
	if errors.Is(err, repo.ErrDuplicate) {
		prev, rerr := s.replay(ctx, in.ArticleID, in.IdempotencyKey)
		if rerr == nil && prev != nil {
			return prev, true, nil
		}
	}
	if err != nil {
		return nil, false, classify(err, "")
	}
	return c, false, nil
}

// Delete removes a comment by id.
func (s *CommentService) Delete(ctx context.Context, id int64) (err error) {
	ctx, span := otel.Tracer("services/CommentService").Start(ctx, "Delete",
		trace.WithAttributes(attribute.Int64("comment.id", id)),
	)
	defer span.End()
	defer func() { record(span, err) }()

	return classify(repo.DeleteComment(ctx, s.DB, id), MsgCommentMissing)
}

// HasReplay reports whether a live idempotency record exists for the key on
// this article. Lookup failures count as no replay.
func (s *CommentService) HasReplay(ctx context.Context, articleID int64, key string, now time.Time) bool {
	rec, err := repo.GetIdempotency(ctx, s.DB, scopeFor(articleID), key, now)
	return err == nil && rec != nil
}

// PurgeExpired removes idempotency records whose window has closed.
func (s *CommentService) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	n, err := repo.PurgeExpiredIdempotency(ctx, s.DB, now)
	if err != nil {
		return 0, classify(err, "")
	}
	return n, nil
}

// replay returns the comment stored for (article, key), or nil when there is
// no live record. A record whose comment has since been deleted is dropped so
// the key can be used again.
func (s *CommentService) replay(ctx context.Context, articleID int64, key string) (*domain.Comment, error) {
	rec, err := repo.GetIdempotency(ctx, s.DB, scopeFor(articleID), key, time.Now().UTC())
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Storage(err)
	}
	c, err := repo.GetComment(ctx, s.DB, rec.ResourceID)
	if errors.Is(err, repo.ErrNotFound) {
		if err := repo.DeleteIdempotency(ctx, s.DB, rec.Scope, rec.Key); err != nil {
			return nil, apperr.Storage(err)
		}
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return c, nil
}

func (s *CommentService) ttl() time.Duration {
	if s.IdempotencyTTL > 0 {
		return s.IdempotencyTTL
	}
	return DefaultIdempotencyTTL
}

func scopeFor(articleID int64) string {
	return strconv.FormatInt(articleID, 10)
}
