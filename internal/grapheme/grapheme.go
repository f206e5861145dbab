// Package grapheme answers whether rune offsets line up with user-perceived
// characters.
package grapheme

import "github.com/rivo/uniseg"

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(text)
}

// Boundaries returns the rune offsets at which a grapheme cluster starts,
// plus the rune length of text.
func Boundaries(text string) []int {
	if text == "" {
		return []int{0}
	}
	g := uniseg.NewGraphemes(text)
	out := make([]int, 0, len(text)+1)
	offset := 0
	for g.Next() {
		out = append(out, offset)
		offset += len(g.Runes())
	}
	return append(out, offset)
}

// SplitsCluster reports whether a rune offset falls strictly inside a
// grapheme cluster of text, e.g. between a base letter and its combining mark.
func SplitsCluster(text string, offset int) bool {
	if offset <= 0 || text == "" {
		return false
	}
	g := uniseg.NewGraphemes(text)
	pos := 0
	for g.Next() {
		n := len(g.Runes())
		if offset > pos && offset < pos+n {
			return true
		}
		pos += n
		if pos >= offset {
			return false
		}
	}
	return false
}
