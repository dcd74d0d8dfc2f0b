package domain

import "testing"

func TestIsSortColumn(t *testing.T) {
	for _, c := range SortColumns {
		if !IsSortColumn(c) {
			t.Fatalf("%q should be a sort column", c)
		}
	}
	for _, c := range []string{"", "body", "CREATED_AT", "votes;drop table", "comment_id"} {
		if IsSortColumn(c) {
			t.Fatalf("%q should not be a sort column", c)
		}
	}
}

func TestArticleFilter_Paginated(t *testing.T) {
	if (ArticleFilter{}).Paginated() {
		t.Fatalf("zero filter should not be paginated")
	}
	if !(ArticleFilter{Page: 1, Limit: 10}).Paginated() {
		t.Fatalf("limit>0 should be paginated")
	}
}

func TestTableNames(t *testing.T) {
	cases := map[string]string{
		Topic{}.TableName():       "topics",
		User{}.TableName():        "users",
		Article{}.TableName():     "articles",
		Comment{}.TableName():     "comments",
		Idempotency{}.TableName(): "idempotency",
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("table name %q, want %q", got, want)
		}
	}
}
