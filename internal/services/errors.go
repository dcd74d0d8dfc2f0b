// Package services defines the business logic for topics, articles, comments
// and users. Service methods return *apperr.Error values so the HTTP layer can
// map every outcome to a status and client message without inspecting causes.
//
// This file centralizes the not-found messages and the mapping of repository
// errors into classified failures.
package services

import (
	"errors"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-news-backend/internal/apperr"
	"github.com/tbourn/go-news-backend/internal/repo"
)

// Client-facing not-found messages.
const (
	MsgArticleNotFound       = "Article not found"
	MsgVoteArticleMissing    = "Cannot edit votes of article that does not exist"
	MsgNoComments            = "No comments found with matching article ID"
	MsgCommentArticleMissing = "Cannot post comment to article that does not exist"
	MsgCommentMissing        = "Cannot delete comment that does not exist"
)

// classify maps a repository error to an *apperr.Error. ErrNotFound becomes a
// NotFound with notFoundMsg when one is given; already classified errors pass
// through; everything else is a storage failure.
func classify(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return ae
	}
	if notFoundMsg != "" && errors.Is(err, repo.ErrNotFound) {
		return apperr.NotFound(notFoundMsg)
	}
	return apperr.Storage(err)
}

// record marks the span as failed for storage errors only. Validation and
// not-found outcomes are normal results.
func record(span trace.Span, err error) {
	if err == nil {
		return
	}
	if kind, _ := apperr.Classify(err); kind == apperr.KindStorage {
		span.RecordError(err)
		span.SetStatus(codes.Error, "storage")
	}
}
