// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

// Offset returns the number of rows to skip for a 1-based page of the given
// size. Pages below 1 are treated as page 1; a non-positive limit yields 0.
//
// Example:
//
//	utils.Offset(1, 10) // 0
//	utils.Offset(3, 10) // 20
//	utils.Offset(0, 10) // 0
func Offset(page, limit int) int {
	if page < 1 || limit <= 0 {
		return 0
	}
	return (page - 1) * limit
}

// ClampLimit bounds limit to [1, max]. A non-positive limit becomes def and
// a non-positive max disables the upper bound.
func ClampLimit(limit, def, max int) int {
	if limit <= 0 {
		limit = def
	}
	if max > 0 && limit > max {
		return max
	}
	return limit
}
