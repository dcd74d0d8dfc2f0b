package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-news-backend/internal/domain"
)

// TopicsResponse wraps the topic list.
type TopicsResponse struct {
	Topics []domain.Topic `json:"topics"`
}

// UsersResponse wraps the user list.
type UsersResponse struct {
	Users []domain.User `json:"users"`
}

// GetTopics godoc
// @ID          listTopics
// @Summary     List topics
// @Tags        Topics
// @Produce     json
// @Success     200  {object} handlers.TopicsResponse
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /topics [get]
func (h *Handlers) GetTopics(c *gin.Context) {
	items, err := h.topics.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if items == nil {
		items = []domain.Topic{}
	}
	ok(c, http.StatusOK, TopicsResponse{Topics: items})
}

// GetUsers godoc
// @ID          listUsers
// @Summary     List users
// @Tags        Users
// @Produce     json
// @Success     200  {object} handlers.UsersResponse
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /users [get]
func (h *Handlers) GetUsers(c *gin.Context) {
	items, err := h.users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if items == nil {
		items = []domain.User{}
	}
	ok(c, http.StatusOK, UsersResponse{Users: items})
}
