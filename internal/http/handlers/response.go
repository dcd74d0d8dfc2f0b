// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response helpers shared by every endpoint. All
// failures leave through respondError, which classifies the error, counts it
// and writes the single error envelope:
//
//	HTTP/1.1 404 Not Found
//	{ "message": "Article not found" }
//
// Store failures never leak their text to clients; the cause is logged with
// the request id instead.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-news-backend/internal/apperr"
	"github.com/tbourn/go-news-backend/internal/http/middleware"
)

// ErrorResponse is the error envelope returned by all endpoints.
type ErrorResponse struct {
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"Article not found"`
}

// respondError aborts the request with the status and message that err
// classifies to. Server errors are logged with the request-scoped logger.
func respondError(c *gin.Context, err error) {
	kind, msg := apperr.Classify(err)
	middleware.CountError(kind.String())

	status := kind.Status()
	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Err(err).
			Int("status", status).
			Str("kind", kind.String()).
			Msg("api error")
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Message: msg})
}

// Fail writes an error envelope with an explicit status. The router uses it
// for the route and method fallbacks.
func Fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Message: msg})
}

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent writes an HTTP 204 No Content response.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
