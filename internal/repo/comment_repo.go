// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for comments.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-news-backend/internal/domain"
)

// ListCommentsByArticle returns the comments of an article, newest first
// (created_at DESC, comment_id DESC). It returns an empty slice when there
// are none; callers decide whether that is an error.
func ListCommentsByArticle(ctx context.Context, db *gorm.DB, articleID int64) ([]domain.Comment, error) {
	out := []domain.Comment{}
	err := db.WithContext(ctx).
		Where("article_id = ?", articleID).
		Order("created_at DESC").
		Order("comment_id DESC").
		Find(&out).Error
	return out, err
}

// CreateComment inserts a comment with zero votes and the given creation
// time, and returns it with its generated id.
func CreateComment(ctx context.Context, db *gorm.DB, articleID int64, author, body string, createdAt time.Time) (*domain.Comment, error) {
	c := &domain.Comment{
		ArticleID: articleID,
		Author:    author,
		Body:      body,
		Votes:     0,
		CreatedAt: createdAt,
	}
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// GetComment fetches a comment by id or returns ErrNotFound.
func GetComment(ctx context.Context, db *gorm.DB, id int64) (*domain.Comment, error) {
	var c domain.Comment
	if err := db.WithContext(ctx).Where("comment_id = ?", id).Take(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteComment removes a comment by id. It returns ErrNotFound when no row
// was deleted.
func DeleteComment(ctx context.Context, db *gorm.DB, id int64) error {
	res := db.WithContext(ctx).Where("comment_id = ?", id).Delete(&domain.Comment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
