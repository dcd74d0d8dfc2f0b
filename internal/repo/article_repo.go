// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides query composition for articles.
//
// Every read that returns articles joins comments and computes
// comment_count in the same statement, so the count always reflects the
// comment rows at read time. Sort columns are taken from a fixed allow-list
// (domain.SortColumns) and emitted through clause.OrderByColumn, never by
// string concatenation; filter values are always bound parameters.
//
// Error semantics:
//   - GetArticle and IncrementArticleVotes return ErrNotFound when no article
//     matches the id.
//   - Any other failure is the raw GORM/driver error.
package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-news-backend/internal/domain"
	"github.com/tbourn/go-news-backend/internal/utils"
)

const articleSummaryColumns = "articles.article_id, articles.title, articles.topic, articles.author, " +
	"articles.created_at, articles.votes, articles.article_img_url"

// articlesWithCount selects articles LEFT JOINed with comments and grouped by
// article, exposing the join count as comment_count. Listings leave out the
// body; single reads include it.
func articlesWithCount(db *gorm.DB, withBody bool) *gorm.DB {
	cols := articleSummaryColumns
	if withBody {
		cols += ", articles.body"
	}
	return db.Model(&domain.Article{}).
		Select(cols + ", COUNT(comments.comment_id) AS comment_count").
		Joins("LEFT JOIN comments ON comments.article_id = articles.article_id").
		Group("articles.article_id")
}

// whereArticleFilter restricts q to exact topic/author matches when set.
func whereArticleFilter(q *gorm.DB, f domain.ArticleFilter) *gorm.DB {
	if f.Topic != "" {
		q = q.Where("articles.topic = ?", f.Topic)
	}
	if f.Author != "" {
		q = q.Where("articles.author = ?", f.Author)
	}
	return q
}

// articleOrder builds the ORDER BY for a validated sort column. article_id is
// appended as a tie-breaker so equal keys keep a stable order across pages.
func articleOrder(q *gorm.DB, f domain.ArticleFilter) *gorm.DB {
	col := f.SortColumn
	if !domain.IsSortColumn(col) {
		col = domain.DefaultSortColumn
	}
	desc := f.SortOrder != domain.SortAsc

	primary := clause.Column{Table: "articles", Name: col}
	if col == "comment_count" {
		primary = clause.Column{Name: col}
	}
	q = q.Order(clause.OrderByColumn{Column: primary, Desc: desc})
	if col != "article_id" {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Table: "articles", Name: "article_id"}, Desc: desc})
	}
	return q
}

// ListArticles returns the articles matching f with their comment counts,
// ordered by f.SortColumn/f.SortOrder. When f is paginated only the requested
// page is returned. No match yields an empty slice.
func ListArticles(ctx context.Context, db *gorm.DB, f domain.ArticleFilter) ([]domain.Article, error) {
	q := articlesWithCount(db.WithContext(ctx), false)
	q = whereArticleFilter(q, f)
	q = articleOrder(q, f)
	if f.Paginated() {
		q = q.Offset(utils.Offset(f.Page, f.Limit)).Limit(f.Limit)
	}

	out := []domain.Article{}
	err := q.Find(&out).Error
	return out, err
}

// CountArticles returns how many articles match the topic/author part of f,
// ignoring pagination.
func CountArticles(ctx context.Context, db *gorm.DB, f domain.ArticleFilter) (int64, error) {
	var total int64
	q := whereArticleFilter(db.WithContext(ctx).Model(&domain.Article{}), f)
	err := q.Count(&total).Error
	return total, err
}

// GetArticle fetches one article, body included, with its comment count.
// It returns ErrNotFound when the id does not exist.
func GetArticle(ctx context.Context, db *gorm.DB, id int64) (*domain.Article, error) {
	var a domain.Article
	err := articlesWithCount(db.WithContext(ctx), true).
		Where("articles.article_id = ?", id).
		Take(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ArticleExists reports whether an article with id is present.
func ArticleExists(ctx context.Context, db *gorm.DB, id int64) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Article{}).
		Where("article_id = ?", id).
		Limit(1).
		Count(&n).Error
	return n > 0, err
}

// IncrementArticleVotes adds inc (which may be negative) to the article's
// votes in a single UPDATE. There is no floor or ceiling. It returns
// ErrNotFound when no row was affected.
func IncrementArticleVotes(ctx context.Context, db *gorm.DB, id int64, inc int) error {
	res := db.WithContext(ctx).
		Model(&domain.Article{}).
		Where("article_id = ?", id).
		UpdateColumn("votes", gorm.Expr("votes + ?", inc))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
