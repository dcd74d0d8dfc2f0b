// Package testutil provides shared fixtures for package tests: a fresh
// in-memory SQLite store per test and a small, deterministic data set.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-news-backend/internal/domain"
	"github.com/tbourn/go-news-backend/internal/repo"
)

// Base is the created_at of the oldest fixture article. Every later fixture
// row is offset from it by whole hours.
var Base = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// NewDB opens a uniquely named in-memory SQLite database with foreign keys
// enabled and all tables created. The connection is closed on cleanup.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:news_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	db.Exec("PRAGMA foreign_keys=ON;")
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// NewSeededDB is NewDB plus the Fixture data set.
func NewSeededDB(t testing.TB) *gorm.DB {
	t.Helper()
	db := NewDB(t)
	if err := repo.Seed(context.Background(), db, Fixture()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return db
}

// Fixture returns the shared data set:
//
//   - topics: mitch, cats, paper (paper has no articles)
//   - users: butter_bridge, icellusedkars, rogersop, lurker
//   - articles 1..5 (1: 3 comments, 2: 0, 3: 2, 4: 0, 5: 1)
//   - article 1 has 100 votes, article 3 has -5, the rest 0
func Fixture() *repo.SeedData {
	at := func(h int) time.Time { return Base.Add(time.Duration(h) * time.Hour) }
	return &repo.SeedData{
		Topics: []domain.Topic{
			{Slug: "mitch", Description: "The man, the Mitch, the legend"},
			{Slug: "cats", Description: "Not dogs"},
			{Slug: "paper", Description: "what books are made of"},
		},
		Users: []domain.User{
			{Username: "butter_bridge", Name: "jonny", AvatarURL: "https://example.com/jonny.png"},
			{Username: "icellusedkars", Name: "sam", AvatarURL: "https://example.com/sam.png"},
			{Username: "rogersop", Name: "paul", AvatarURL: "https://example.com/paul.png"},
			{Username: "lurker", Name: "do_nothing", AvatarURL: "https://example.com/lurker.png"},
		},
		Articles: []domain.Article{
			{ArticleID: 1, Title: "Living in the shadow of a great man", Topic: "mitch", Author: "butter_bridge",
				Body: "I find this existence challenging", CreatedAt: at(40), Votes: 100, ArticleImgURL: "https://example.com/1.jpg"},
			{ArticleID: 2, Title: "Sony Vaio; or, The Laptop", Topic: "mitch", Author: "icellusedkars",
				Body: "Call me Mitchell.", CreatedAt: at(30), ArticleImgURL: "https://example.com/2.jpg"},
			{ArticleID: 3, Title: "Eight pug gifs that remind me of mitch", Topic: "mitch", Author: "icellusedkars",
				Body: "some gifs", CreatedAt: at(50), Votes: -5, ArticleImgURL: "https://example.com/3.jpg"},
			{ArticleID: 4, Title: "Student SUES Mitch!", Topic: "mitch", Author: "rogersop",
				Body: "We all love Mitch", CreatedAt: at(10), ArticleImgURL: "https://example.com/4.jpg"},
			{ArticleID: 5, Title: "UNCOVERED: catspiracy to bring down democracy", Topic: "cats", Author: "rogersop",
				Body: "Bastet walks amongst us", CreatedAt: at(20), ArticleImgURL: "https://example.com/5.jpg"},
		},
		Comments: []domain.Comment{
			{CommentID: 1, ArticleID: 1, Author: "butter_bridge", Body: "Oh, I've got compassion running out of my nose", Votes: 16, CreatedAt: at(41)},
			{CommentID: 2, ArticleID: 1, Author: "icellusedkars", Body: "The beautiful thing about treasure is that it exists.", Votes: 14, CreatedAt: at(43)},
			{CommentID: 3, ArticleID: 1, Author: "rogersop", Body: "Replacing the quiet elegance of the dark suit", Votes: -1, CreatedAt: at(42)},
			{CommentID: 4, ArticleID: 3, Author: "icellusedkars", Body: "git push origin master", CreatedAt: at(51)},
			{CommentID: 5, ArticleID: 3, Author: "butter_bridge", Body: "Ambidextrous marsupial", CreatedAt: at(52)},
			{CommentID: 6, ArticleID: 5, Author: "butter_bridge", Body: "What do you see?", CreatedAt: at(21)},
		},
	}
}

// CommentCount returns the live number of comment rows for an article.
func CommentCount(t testing.TB, db *gorm.DB, articleID int64) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&domain.Comment{}).Where("article_id = ?", articleID).Count(&n).Error; err != nil {
		t.Fatalf("count comments: %v", err)
	}
	return n
}
