package utils

import "testing"

func TestOffset(t *testing.T) {
	cases := []struct {
		page, limit int
		want        int
	}{
		{1, 10, 0},
		{2, 10, 10},
		{3, 7, 14},
		// page below 1 -> first page
		{0, 10, 0},
		{-4, 10, 0},
		// no limit -> no offset
		{5, 0, 0},
	}
	for _, tc := range cases {
		if got := Offset(tc.page, tc.limit); got != tc.want {
			t.Fatalf("Offset(%d, %d) = %d; want %d", tc.page, tc.limit, got, tc.want)
		}
	}
}

func TestClampLimit(t *testing.T) {
	cases := []struct {
		limit, def, max int
		want            int
	}{
		{5, 10, 100, 5},
		{0, 10, 100, 10},
		{-1, 10, 100, 10},
		{500, 10, 100, 100},
		{500, 10, 0, 500},
	}
	for _, tc := range cases {
		if got := ClampLimit(tc.limit, tc.def, tc.max); got != tc.want {
			t.Fatalf("ClampLimit(%d, %d, %d) = %d; want %d", tc.limit, tc.def, tc.max, got, tc.want)
		}
	}
}
