package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/tbourn/go-news-backend/internal/apperr"
	"github.com/tbourn/go-news-backend/internal/domain"
	"github.com/tbourn/go-news-backend/internal/services"
	"github.com/tbourn/go-news-backend/internal/testutil"
)

var createdAt = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func TestCommentService_ListByArticle(t *testing.T) {
	s := &services.CommentService{DB: testutil.NewSeededDB(t)}
	ctx := context.Background()

	items, err := s.ListByArticle(ctx, 1)
	if err != nil || len(items) != 3 || items[0].CommentID != 2 {
		t.Fatalf("ListByArticle(1): %v err=%v", items, err)
	}

	// Existing article without comments and a missing article look the same.
	for _, id := range []int64{2, 999} {
		_, err = s.ListByArticle(ctx, id)
		wantKind(t, err, apperr.KindNotFound, services.MsgNoComments)
	}
}

func TestCommentService_Create(t *testing.T) {
	db := testutil.NewSeededDB(t)
	s := &services.CommentService{DB: db}

	c, replayed, err := s.Create(context.Background(), services.NewComment{
		ArticleID: 2, Author: "lurker", Body: "hello", CreatedAt: createdAt,
	})
	if err != nil || replayed {
		t.Fatalf("Create: %+v replayed=%v err=%v", c, replayed, err)
	}
	if c.CommentID == 0 || c.Votes != 0 || !c.CreatedAt.Equal(createdAt) {
		t.Fatalf("unexpected comment: %+v", c)
	}
	if n := testutil.CommentCount(t, db, 2); n != 1 {
		t.Fatalf("want 1 comment on article 2, got %d", n)
	}
}

func TestCommentService_Create_MissingArticle(t *testing.T) {
	db := testutil.NewSeededDB(t)
	s := &services.CommentService{DB: db}

	_, _, err := s.Create(context.Background(), services.NewComment{
		ArticleID: 999, Author: "lurker", Body: "hello", CreatedAt: createdAt,
	})
	wantKind(t, err, apperr.KindNotFound, services.MsgCommentArticleMissing)
}

func TestCommentService_Create_UnknownAuthorIsStorageError(t *testing.T) {
	db := testutil.NewSeededDB(t)
	s := &services.CommentService{DB: db}

	_, _, err := s.Create(context.Background(), services.NewComment{
		ArticleID: 1, Author: "ghost", Body: "boo", CreatedAt: createdAt,
	})
	wantKind(t, err, apperr.KindStorage, apperr.InternalMessage)
	if n := testutil.CommentCount(t, db, 1); n != 3 {
		t.Fatalf("failed create must not insert, got %d comments", n)
	}
}

func TestCommentService_Create_IdempotentReplay(t *testing.T) {
	db := testutil.NewSeededDB(t)
	s := &services.CommentService{DB: db, IdempotencyTTL: time.Hour}
	ctx := context.Background()
	in := services.NewComment{ArticleID: 2, Author: "lurker", Body: "once", CreatedAt: createdAt, IdempotencyKey: "abc-1"}

	first, replayed, err := s.Create(ctx, in)
	if err != nil || replayed {
		t.Fatalf("first Create: replayed=%v err=%v", replayed, err)
	}
	if !s.HasReplay(ctx, 2, "abc-1", time.Now().UTC()) {
		t.Fatalf("expected a stored replay for the key")
	}

	second, replayed, err := s.Create(ctx, in)
	if err != nil || !replayed || second.CommentID != first.CommentID {
		t.Fatalf("second Create: %+v replayed=%v err=%v", second, replayed, err)
	}
	if n := testutil.CommentCount(t, db, 2); n != 1 {
		t.Fatalf("replay must not insert, got %d comments", n)
	}

	// Same key on another article is a new request.
	in.ArticleID = 4
	third, replayed, err := s.Create(ctx, in)
	if err != nil || replayed || third.CommentID == first.CommentID {
		t.Fatalf("other article: %+v replayed=%v err=%v", third, replayed, err)
	}
}

func TestCommentService_Create_ReplayAfterDeleteInsertsAgain(t *testing.T) {
	db := testutil.NewSeededDB(t)
	s := &services.CommentService{DB: db}
	ctx := context.Background()
	in := services.NewComment{ArticleID: 2, Author: "lurker", Body: "x", CreatedAt: createdAt, IdempotencyKey: "k"}

	first, _, err := s.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Delete(ctx, first.CommentID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	again, replayed, err := s.Create(ctx, in)
	if err != nil || replayed || again.CommentID == first.CommentID {
		t.Fatalf("after delete: %+v replayed=%v err=%v", again, replayed, err)
	}
	if !s.HasReplay(ctx, 2, "k", time.Now().UTC()) {
		t.Fatalf("key should point at the new comment")
	}
}

func TestCommentService_Delete(t *testing.T) {
	db := testutil.NewSeededDB(t)
	s := &services.CommentService{DB: db}
	ctx := context.Background()

	if err := s.Delete(ctx, 6); err != nil {
		t.Fatalf("Delete(6): %v", err)
	}
	wantKind(t, s.Delete(ctx, 6), apperr.KindNotFound, services.MsgCommentMissing)
	wantKind(t, s.Delete(ctx, 999), apperr.KindNotFound, services.MsgCommentMissing)
}

func TestCommentService_PurgeExpired(t *testing.T) {
	db := testutil.NewSeededDB(t)
	s := &services.CommentService{DB: db, IdempotencyTTL: time.Minute}
	ctx := context.Background()

	if _, _, err := s.Create(ctx, services.NewComment{ArticleID: 1, Author: "lurker", Body: "b", CreatedAt: createdAt, IdempotencyKey: "p"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	n, err := s.PurgeExpired(ctx, time.Now().UTC().Add(2*time.Minute))
	if err != nil || n != 1 {
		t.Fatalf("PurgeExpired: n=%d err=%v", n, err)
	}
	var left int64
	db.Model(&domain.Idempotency{}).Count(&left)
	if left != 0 {
		t.Fatalf("want no idempotency rows, got %d", left)
	}
}
