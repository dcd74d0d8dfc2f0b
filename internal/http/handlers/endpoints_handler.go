package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-news-backend/internal/domain"
)

// EndpointDoc describes one route of the API for GET {base}.
type EndpointDoc struct {
	Description     string   `json:"description"`
	Queries         []string `json:"queries,omitempty"`
	Headers         []string `json:"headers,omitempty"`
	ExampleRequest  any      `json:"exampleRequest,omitempty"`
	ExampleResponse any      `json:"exampleResponse,omitempty"`
}

// EndpointsResponse wraps the endpoint map, keyed by "METHOD path".
type EndpointsResponse struct {
	Endpoints map[string]EndpointDoc `json:"endpoints"`
}

// GetEndpoints godoc
// @ID          listEndpoints
// @Summary     Describe the API
// @Description Returns every available endpoint with its queries and an example exchange.
// @Tags        Meta
// @Produce     json
// @Success     200  {object} handlers.EndpointsResponse
// @Router      / [get]
func (h *Handlers) GetEndpoints(c *gin.Context) {
	ok(c, http.StatusOK, EndpointsResponse{Endpoints: endpointDocs(h.BasePath)})
}

func endpointDocs(base string) map[string]EndpointDoc {
	if base == "/" {
		base = ""
	}
	sortColumns := "sort_by (" + strings.Join(domain.SortColumns, "|") + ")"

	return map[string]EndpointDoc{
		"GET " + base: {
			Description: "serves a description of every endpoint of the api",
		},
		"GET " + base + "/topics": {
			Description: "serves an array of all topics",
			ExampleResponse: gin.H{"topics": []gin.H{
				{"slug": "football", "description": "Footie!"},
			}},
		},
		"GET " + base + "/articles": {
			Description: "serves an array of all articles with their comment_count; total_count is added when a page is requested",
			Queries:     []string{"topic", "author", sortColumns, "order (asc|desc)", "p", "limit"},
			ExampleResponse: gin.H{"articles": []gin.H{{
				"article_id":      1,
				"title":           "Seafood substitutions are increasing",
				"topic":           "cooking",
				"author":          "weegembump",
				"created_at":      "2018-05-30T15:59:13.341Z",
				"votes":           0,
				"article_img_url": "https://images.pexels.com/photos/158651/news-newsletter-newspaper-information-158651.jpeg",
				"comment_count":   6,
			}}},
		},
		"GET " + base + "/articles/:article_id": {
			Description: "serves the article with its body and comment_count",
			ExampleResponse: gin.H{"article": []gin.H{{
				"article_id":    1,
				"title":         "Living in the shadow of a great man",
				"topic":         "mitch",
				"author":        "butter_bridge",
				"body":          "I find this existence challenging",
				"votes":         100,
				"comment_count": 11,
			}}},
		},
		"PATCH " + base + "/articles/:article_id": {
			Description:     "adds inc_votes to the article's votes and serves the updated article",
			ExampleRequest:  gin.H{"inc_votes": 1},
			ExampleResponse: gin.H{"article": []gin.H{{"article_id": 1, "votes": 101}}},
		},
		"GET " + base + "/articles/:article_id/comments": {
			Description: "serves the article's comments, newest first",
			ExampleResponse: gin.H{"comments": []gin.H{{
				"comment_id": 5,
				"article_id": 1,
				"author":     "icellusedkars",
				"body":       "I hate streaming noses",
				"votes":      0,
				"created_at": "2020-11-03T21:00:00.000Z",
			}}},
		},
		"POST " + base + "/articles/:article_id/comments": {
			Description:    "adds a comment to the article and serves it; a repeated Idempotency-Key replays the first result",
			Headers:        []string{"Idempotency-Key (optional)"},
			ExampleRequest: gin.H{"username": "butter_bridge", "body": "What a read!"},
			ExampleResponse: gin.H{"comment": gin.H{
				"comment_id": 19,
				"article_id": 1,
				"author":     "butter_bridge",
				"body":       "What a read!",
				"votes":      0,
				"created_at": "2024-01-01T12:00:00.000Z",
			}},
		},
		"DELETE " + base + "/comments/:comment_id": {
			Description: "deletes the comment and responds with 204 and no body",
		},
		"GET " + base + "/users": {
			Description: "serves an array of all users",
			ExampleResponse: gin.H{"users": []gin.H{{
				"username":   "butter_bridge",
				"name":       "jonny",
				"avatar_url": "https://www.healthytherapies.com/wp-content/uploads/2016/06/Lime3.jpg",
			}}},
		},
	}
}
