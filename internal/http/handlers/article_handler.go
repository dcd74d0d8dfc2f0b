// Article HTTP handlers.
//
//   - GET   /articles              (list, filter, sort, optional pagination)
//   - GET   /articles/{article_id} (single article with body)
//   - PATCH /articles/{article_id} (vote increment)
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-news-backend/internal/apperr"
	"github.com/tbourn/go-news-backend/internal/domain"
	"github.com/tbourn/go-news-backend/internal/validation"
)

// ArticleSummary is the listing projection of an article: every field
// except the body.
type ArticleSummary struct {
	ArticleID     int64     `json:"article_id"`
	Title         string    `json:"title"`
	Topic         string    `json:"topic"`
	Author        string    `json:"author"`
	CreatedAt     time.Time `json:"created_at"`
	Votes         int       `json:"votes"`
	ArticleImgURL string    `json:"article_img_url"`
	CommentCount  int64     `json:"comment_count"`
}

func summarize(items []domain.Article) []ArticleSummary {
	out := make([]ArticleSummary, len(items))
	for i, a := range items {
		out[i] = ArticleSummary{
			ArticleID:     a.ArticleID,
			Title:         a.Title,
			Topic:         a.Topic,
			Author:        a.Author,
			CreatedAt:     a.CreatedAt,
			Votes:         a.Votes,
			ArticleImgURL: a.ArticleImgURL,
			CommentCount:  a.CommentCount,
		}
	}
	return out
}

// ArticlesResponse wraps an article listing. TotalCount is present only when
// the request asked for a page.
type ArticlesResponse struct {
	Articles   []ArticleSummary `json:"articles"`
	TotalCount *int64           `json:"total_count,omitempty" example:"13"`
}

// ArticleResponse wraps a single article in a one-element array.
type ArticleResponse struct {
	Article []domain.Article `json:"article"`
}

// GetArticles godoc
// @ID          listArticles
// @Summary     List articles
// @Description Returns articles with their live comment_count, optionally filtered by topic and author, sorted and paginated. An empty match is not an error.
// @Tags        Articles
// @Produce     json
//
// @Param       topic    query  string  false "Exact topic slug"               example(mitch)
// @Param       author   query  string  false "Exact author username"          example(butter_bridge)
// @Param       sort_by  query  string  false "Sort column" Enums(author,title,article_id,topic,created_at,votes,article_img_url,comment_count) default(created_at)
// @Param       order    query  string  false "Sort order (case-insensitive)" Enums(asc,desc) default(desc)
// @Param       p        query  int     false "Page number"                    minimum(1)
// @Param       limit    query  int     false "Items per page"                 minimum(1) default(10)
//
// @Success     200  {object} handlers.ArticlesResponse
// @Failure     400  {object} handlers.ErrorResponse "Invalid query"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /articles [get]
func (h *Handlers) GetArticles(c *gin.Context) {
	var q validation.ArticleQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, apperr.Validation(validation.MsgInvalidSortColumn))
		return
	}
	f, err := validation.Articles(q, h.MaxPageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	items, total, err := h.articles.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := ArticlesResponse{Articles: summarize(items)}
	if f.Paginated() {
		resp.TotalCount = &total
	}
	ok(c, http.StatusOK, resp)
}

// GetArticleByID godoc
// @ID          getArticle
// @Summary     Get an article
// @Description Returns the article, including body and comment_count, wrapped in a one-element array.
// @Tags        Articles
// @Produce     json
//
// @Param       article_id  path  int  true  "Article id"  minimum(1)
//
// @Success     200  {object} handlers.ArticleResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request: ID must be a number"
// @Failure     404  {object} handlers.ErrorResponse "Article not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /articles/{article_id} [get]
func (h *Handlers) GetArticleByID(c *gin.Context) {
	id, err := validation.ID(c.Param("article_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	a, err := h.articles.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, ArticleResponse{Article: []domain.Article{*a}})
}

// PatchArticleVotes godoc
// @ID          voteArticle
// @Summary     Change an article's votes
// @Description Adds inc_votes (a non-zero integer, possibly negative) to the article's votes and returns the updated article. Votes are unbounded. Unknown body fields are ignored.
// @Tags        Articles
// @Accept      json
// @Produce     json
//
// @Param       article_id  path  int                         true  "Article id"  minimum(1)
// @Param       body        body  validation.VoteRequest      true  "Vote increment"
//
// @Success     200  {object} handlers.ArticleResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad id or body"
// @Failure     404  {object} handlers.ErrorResponse "Article does not exist"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /articles/{article_id} [patch]
func (h *Handlers) PatchArticleVotes(c *gin.Context) {
	id, err := validation.ID(c.Param("article_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req validation.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation(validation.MsgInvalidVoteBody))
		return
	}
	inc, err := validation.IncVotes(req)
	if err != nil {
		respondError(c, err)
		return
	}

	a, err := h.articles.Vote(c.Request.Context(), id, inc)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, ArticleResponse{Article: []domain.Article{*a}})
}
