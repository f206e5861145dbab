package grapheme

import (
	"slices"
	"testing"
)

func TestCount(t *testing.T) {
	cases := map[string]int{
		"":                      0,
		"abc":                   3,
		"e\u0301":               1,
		"\U0001F44D\U0001F3FD!": 2,
	}
	for input, want := range cases {
		if got := Count(input); got != want {
			t.Fatalf("Count(%q) = %d, want %d", input, got, want)
		}
	}
}

func TestBoundaries(t *testing.T) {
	got := Boundaries("ae\u0301b")
	if want := []int{0, 1, 3, 4}; !slices.Equal(got, want) {
		t.Fatalf("Boundaries = %v, want %v", got, want)
	}
	if got := Boundaries(""); !slices.Equal(got, []int{0}) {
		t.Fatalf("Boundaries(\"\") = %v", got)
	}
}

func TestSplitsCluster(t *testing.T) {
	text := "ae\u0301b"
	cases := []struct {
		offset int
		want   bool
	}{
		{0, false},
		{1, false},
		{2, true},
		{3, false},
		{4, false},
		{9, false},
	}
	for _, tc := range cases {
		if got := SplitsCluster(text, tc.offset); got != tc.want {
			t.Fatalf("SplitsCluster(%q, %d) = %v, want %v", text, tc.offset, got, tc.want)
		}
	}
	if SplitsCluster("plain", 3) {
		t.Fatalf("ascii offsets never split a cluster")
	}
}
