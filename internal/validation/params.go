package validation

import (
	"strconv"

	"github.com/tbourn/go-news-backend/internal/apperr"
	"github.com/tbourn/go-news-backend/internal/domain"
	"github.com/tbourn/go-news-backend/internal/utils"
)

// ID validates a path identifier (article_id, comment_id).
func ID(raw string) (int64, error) {
	if err := validate.Var(raw, "required,uintid"); err != nil {
		return 0, apperr.Validation(MsgInvalidID)
	}
	id, _ := strconv.ParseInt(raw, 10, 64)
	return id, nil
}

// IsID reports whether raw is a valid path identifier.
func IsID(raw string) bool {
	return validate.Var(raw, "required,uintid") == nil
}

// ArticleQuery is the raw query string of GET /articles, bound by the
// handler with gin's form binding.
type ArticleQuery struct {
	Topic  string `form:"topic"`
	Author string `form:"author"`
	SortBy string `form:"sort_by"`
	Order  string `form:"order"`
	Page   string `form:"p"`
	Limit  string `form:"limit"`
}

// Articles validates q and returns the normalized listing filter. Checks
// run in a fixed order (sort column, page, limit, sort order) so a request
// with several bad parameters always reports the same one.
//
// maxLimit caps the page size; values <= 0 disable the cap.
func Articles(q ArticleQuery, maxLimit int) (domain.ArticleFilter, error) {
	f := domain.ArticleFilter{
		Topic:      q.Topic,
		Author:     q.Author,
		SortColumn: domain.DefaultSortColumn,
		SortOrder:  domain.DefaultSortOrder,
	}

	if q.SortBy != "" {
		if err := validate.Var(q.SortBy, "sortcolumn"); err != nil {
			return f, apperr.Validation(MsgInvalidSortColumn)
		}
		f.SortColumn = q.SortBy
	}

	if q.Page != "" || q.Limit != "" {
		f.Page, f.Limit = 1, DefaultPageSize
	}
	if q.Page != "" {
		n, ok := positiveInt(q.Page)
		if !ok {
			return f, apperr.Validation(MsgInvalidPage)
		}
		f.Page = n
	}
	if q.Limit != "" {
		n, ok := positiveInt(q.Limit)
		if !ok {
			return f, apperr.Validation(MsgInvalidLimit)
		}
		f.Limit = n
	}
	if f.Paginated() {
		f.Limit = utils.ClampLimit(f.Limit, DefaultPageSize, maxLimit)
	}

	if q.Order != "" {
		if err := validate.Var(q.Order, "sortorder"); err != nil {
			return f, apperr.Validation(MsgInvalidSortOrder)
		}
		f.SortOrder, _ = parseOrder(q.Order)
	}
	return f, nil
}

// positiveInt parses s as an int >= 1 that fits in 32 bits.
func positiveInt(s string) (int, bool) {
	if err := validate.Var(s, "uintid"); err != nil {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil || n < 1 {
		return 0, false
	}
	return int(n), true
}
