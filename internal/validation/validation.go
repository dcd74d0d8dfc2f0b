// Package validation checks and normalizes caller-supplied input before any
// store access: path ids, article listing queries and request bodies. Every
// failure is returned as an apperr validation error carrying the exact
// client-facing message for the endpoint.
package validation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"

	"github.com/tbourn/go-news-backend/internal/domain"
)

// Client-facing messages.
const (
	MsgInvalidID          = "Bad Request: ID must be a number"
	MsgInvalidSortColumn  = "Invalid sort category"
	MsgInvalidSortOrder   = "Invalid sort order (must be 'asc' or 'desc')"
	MsgInvalidPage        = "Page must be a number"
	MsgInvalidLimit       = "Limit must be a number"
	MsgInvalidVoteBody    = "Bad Request: Missing vote increment amount or request formatted incorrectly"
	MsgInvalidCommentBody = "Bad Request: Missing username/body or request formatted incorrectly"
)

// DefaultPageSize applies when a caller asks for a page without a limit.
const DefaultPageSize = 10

var uintRE = regexp.MustCompile(`^[0-9]+$`)

// validate is shared; validator.Validate is safe for concurrent use once
// all custom tags are registered.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegister(v, "uintid", isUintID)
	mustRegister(v, "sortcolumn", isSortColumn)
	mustRegister(v, "sortorder", isSortOrder)
	mustRegister(v, "notblank", isNotBlank)
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// isUintID accepts unsigned decimal strings that fit a signed 64-bit id.
func isUintID(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if !uintRE.MatchString(s) {
		return false
	}
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

func isSortColumn(fl validator.FieldLevel) bool {
	return domain.IsSortColumn(fl.Field().String())
}

func isSortOrder(fl validator.FieldLevel) bool {
	_, ok := parseOrder(fl.Field().String())
	return ok
}

func isNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// parseOrder folds case so "Asc", "DESC" and "desc" are all accepted.
// A Caser is stateful, so one is built per call.
func parseOrder(s string) (domain.SortOrder, bool) {
	switch cases.Fold().String(s) {
	case "asc":
		return domain.SortAsc, true
	case "desc":
		return domain.SortDesc, true
	}
	return "", false
}
