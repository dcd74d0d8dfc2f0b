// Comment HTTP handlers.
//
//   - GET    /articles/{article_id}/comments
//   - POST   /articles/{article_id}/comments (Idempotency-Key aware)
//   - DELETE /comments/{comment_id}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-news-backend/internal/apperr"
	"github.com/tbourn/go-news-backend/internal/domain"
	"github.com/tbourn/go-news-backend/internal/http/middleware"
	"github.com/tbourn/go-news-backend/internal/services"
	"github.com/tbourn/go-news-backend/internal/validation"
)

// CommentsResponse wraps a comment listing.
type CommentsResponse struct {
	Comments []domain.Comment `json:"comments"`
}

// CommentResponse wraps a created comment.
type CommentResponse struct {
	Comment domain.Comment `json:"comment"`
}

// GetCommentsByArticle godoc
// @ID          listComments
// @Summary     List an article's comments
// @Description Returns the article's comments, newest first. An article without comments yields 404.
// @Tags        Comments
// @Produce     json
//
// @Param       article_id  path  int  true  "Article id"  minimum(1)
//
// @Success     200  {object} handlers.CommentsResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request: ID must be a number"
// @Failure     404  {object} handlers.ErrorResponse "No comments found with matching article ID"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /articles/{article_id}/comments [get]
func (h *Handlers) GetCommentsByArticle(c *gin.Context) {
	id, err := validation.ID(c.Param("article_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	items, err := h.comments.ListByArticle(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, CommentsResponse{Comments: items})
}

// PostComment godoc
// @ID          postComment
// @Summary     Comment on an article
// @Description Creates a comment with votes=0 and a server-assigned created_at. A repeated Idempotency-Key for the same article replays the first result.
// @Tags        Comments
// @Accept      json
// @Produce     json
//
// @Param       article_id       path    int                          true  "Article id"  minimum(1)
// @Param       Idempotency-Key  header  string                       false "Idempotency key"  example(2b1f0c9e-comment-1)
// @Param       body             body    validation.CommentRequest    true  "Comment payload"
//
// @Success     201  {object} handlers.CommentResponse
// @Header      201  {string} Idempotency-Replayed "true when served from an earlier request"
// @Failure     400  {object} handlers.ErrorResponse "Bad id, body or key"
// @Failure     404  {object} handlers.ErrorResponse "Article does not exist"
// @Failure     429  {object} handlers.ErrorResponse "Too many requests"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /articles/{article_id}/comments [post]
func (h *Handlers) PostComment(c *gin.Context) {
	id, err := validation.ID(c.Param("article_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req validation.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation(validation.MsgInvalidCommentBody))
		return
	}
	if err := validation.Comment(req); err != nil {
		respondError(c, err)
		return
	}

	key, _ := middleware.GetIdempotencyKey(c)
	cm, replayed, err := h.comments.Create(c.Request.Context(), services.NewComment{
		ArticleID:      id,
		Author:         req.Username,
		Body:           req.Body,
		CreatedAt:      h.now(),
		IdempotencyKey: key,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	if replayed {
		c.Header(middleware.HeaderIdempotencyReplayed, "true")
	}
	ok(c, http.StatusCreated, CommentResponse{Comment: *cm})
}

// DeleteComment godoc
// @ID          deleteComment
// @Summary     Delete a comment
// @Tags        Comments
//
// @Param       comment_id  path  int  true  "Comment id"  minimum(1)
//
// @Success     204  "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request: ID must be a number"
// @Failure     404  {object} handlers.ErrorResponse "Cannot delete comment that does not exist"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /comments/{comment_id} [delete]
func (h *Handlers) DeleteComment(c *gin.Context) {
	id, err := validation.ID(c.Param("comment_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.comments.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	noContent(c)
}
