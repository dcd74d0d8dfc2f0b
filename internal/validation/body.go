package validation

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/tbourn/go-news-backend/internal/apperr"
)

// VoteRequest is the body of PATCH /articles/:article_id. IncVotes is kept
// raw so that numbers and numeric strings can both be accepted.
type VoteRequest struct {
	IncVotes json.RawMessage `json:"inc_votes" swaggertype:"integer" example:"1"`
}

// IncVotes returns the vote increment from req. The value must be a
// non-zero integer, given either as a JSON number or as a numeric string,
// within the 32-bit range of the votes column.
func IncVotes(req VoteRequest) (int, error) {
	bad := apperr.Validation(MsgInvalidVoteBody)

	raw := bytes.TrimSpace(req.IncVotes)
	if len(raw) == 0 {
		return 0, bad
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, bad
	}

	var s string
	switch x := v.(type) {
	case json.Number:
		s = x.String()
	case string:
		s = strings.TrimSpace(x)
	default:
		return 0, bad
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n == 0 || n > math.MaxInt32 || n < math.MinInt32 {
		return 0, bad
	}
	return int(n), nil
}

// CommentRequest is the body of POST /articles/:article_id/comments.
// Unknown fields are ignored.
type CommentRequest struct {
	Username string `json:"username" validate:"required,notblank" example:"butter_bridge"`
	Body     string `json:"body"     validate:"required,notblank" example:"This article changed my mind."`
}

// Comment validates a new comment payload.
func Comment(req CommentRequest) error {
	if err := validate.Struct(req); err != nil {
		return apperr.Validation(MsgInvalidCommentBody)
	}
	return nil
}
