package util

import "regexp"

// FirstNonEmpty returns the first non-empty string in values.
func FirstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

// CloneAnyMap returns a shallow copy of supported raw map types.
// Unsupported inputs yield an empty map.
func CloneAnyMap(raw any) map[string]any {
	result := make(map[string]any)
	switch values := raw.(type) {
	case map[string]any:
		for k, v := range values {
			result[k] = v
		}
	case map[string]string:
		for k, v := range values {
			result[k] = v
		}
	}
	return result
}

// SplitIncl splits text around every match of re and keeps the matches as
// their own tokens, in order. Empty tokens are never produced, so an empty
// input yields an empty slice.
func SplitIncl(text string, re *regexp.Regexp) []string {
	if text == "" {
		return []string{}
	}
	if re == nil {
		return []string{text}
	}
	matches := re.FindAllStringIndex(text, -1)
	out := make([]string, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		if m[0] > last {
			out = append(out, text[last:m[0]])
		}
		if m[1] > m[0] {
			out = append(out, text[m[0]:m[1]])
		}
		last = m[1]
	}
	if last < len(text) {
		out = append(out, text[last:])
	}
	return out
}
