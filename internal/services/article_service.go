// Package services – ArticleService
//
// ArticleService serves article listings and single reads, and applies vote
// increments. The vote path checks existence, increments and re-reads inside
// one transaction so the response reflects exactly the row it changed.
package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-news-backend/internal/apperr"
	"github.com/tbourn/go-news-backend/internal/domain"
	"github.com/tbourn/go-news-backend/internal/repo"
)

// ArticleService coordinates article reads and vote updates.
type ArticleService struct {
	DB *gorm.DB
}

// List returns the articles matching f, sorted and (when f is paginated)
// sliced to one page. total is the number of matches before pagination.
// An empty result is not an error.
func (s *ArticleService) List(ctx context.Context, f domain.ArticleFilter) (items []domain.Article, total int64, err error) {
	ctx, span := otel.Tracer("services/ArticleService").Start(ctx, "List",
		trace.WithAttributes(
			attribute.String("filter.topic", f.Topic),
			attribute.String("filter.author", f.Author),
			attribute.String("sort.column", f.SortColumn),
			attribute.String("sort.order", string(f.SortOrder)),
			attribute.Int("page", f.Page),
			attribute.Int("limit", f.Limit),
		),
	)
	defer span.End()
	defer func() { record(span, err) }()

	items, err = repo.ListArticles(ctx, s.DB, f)
	if err != nil {
		return nil, 0, classify(err, "")
	}
	if !f.Paginated() {
		return items, int64(len(items)), nil
	}
	total, err = repo.CountArticles(ctx, s.DB, f)
	if err != nil {
		return nil, 0, classify(err, "")
	}
	return items, total, nil
}

// Get returns one article with its body and comment count.
func (s *ArticleService) Get(ctx context.Context, id int64) (a *domain.Article, err error) {
	ctx, span := otel.Tracer("services/ArticleService").Start(ctx, "Get",
		trace.WithAttributes(attribute.Int64("article.id", id)),
	)
	defer span.End()
	defer func() { record(span, err) }()

	a, err = repo.GetArticle(ctx, s.DB, id)
	if err != nil {
		return nil, classify(err, MsgArticleNotFound)
	}
	return a, nil
}

// Vote adds inc to the article's votes and returns the updated article.
// inc must already be validated as a non-zero integer.
func (s *ArticleService) Vote(ctx context.Context, id int64, inc int) (a *domain.Article, err error) {
	ctx, span := otel.Tracer("services/ArticleService").Start(ctx, "Vote",
		trace.WithAttributes(
			attribute.Int64("article.id", id),
			attribute.Int("inc_votes", inc),
		),
	)
	defer span.End()
	defer func() { record(span, err) }()

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := repo.ArticleExists(ctx, tx, id)
		if err != nil {
			return apperr.Storage(err)
		}
		if !ok {
			return apperr.NotFound(MsgVoteArticleMissing)
		}
		// The row can still vanish between the check and the update.
		if err := repo.IncrementArticleVotes(ctx, tx, id, inc); err != nil {
			return classify(err, MsgVoteArticleMissing)
		}
		a, err = repo.GetArticle(ctx, tx, id)
		return classify(err, MsgVoteArticleMissing)
	})
	if err != nil {
		return nil, classify(err, "")
	}
	return a, nil
}
