package domain

// SortOrder is the direction of an article listing.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// Default listing order.
const (
	DefaultSortColumn = "created_at"
	DefaultSortOrder  = SortDesc
)

// SortColumns lists every column an article listing may be ordered by.
var SortColumns = []string{
	"author",
	"title",
	"article_id",
	"topic",
	"created_at",
	"votes",
	"article_img_url",
	"comment_count",
}

// IsSortColumn reports whether name is an allowed article sort column.
func IsSortColumn(name string) bool {
	for _, c := range SortColumns {
		if c == name {
			return true
		}
	}
	return false
}

// ArticleFilter is a validated article listing request. Empty Topic or Author
// means no restriction. Page and Limit are zero when the caller did not ask
// for pagination.
type ArticleFilter struct {
	Topic      string
	Author     string
	SortColumn string
	SortOrder  SortOrder
	Page       int
	Limit      int
}

// Paginated reports whether the filter requests a single page.
func (f ArticleFilter) Paginated() bool { return f.Limit > 0 }
