package usecase

import "strings"

// categoryStripper removes the bracket/quote punctuation a stringified
// category list carries.
var categoryStripper = strings.NewReplacer("[", "", "]", "", "'", "")

// NormalizeCategories converts a category list that may have been stringified
// upstream (e.g. a single element of the form "['A','B']") into an ordered
// sequence of category tokens. A proper list passes through unchanged apart
// from whitespace trimming. Order is preserved and duplicates are kept: the
// search engine's traversal depends on upstream ordering, where specificity
// generally decreases toward the end of the list.
func NormalizeCategories(categories []string) []string {
	if len(categories) == 0 {
		return nil
	}

	if len(categories) == 1 && looksStringified(categories[0]) {
		return ParseCategoryString(categories[0])
	}

	tokens := make([]string, 0, len(categories))
	for _, c := range categories {
		if t := strings.TrimSpace(c); t != "" {
			tokens = append(tokens, t)
		}
	}
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

// ParseCategoryString splits a single bracket/quote encoded category string
// into tokens. An empty string yields an empty sequence.
func ParseCategoryString(raw string) []string {
	stripped := categoryStripper.Replace(raw)
	if strings.TrimSpace(stripped) == "" {
		return nil
	}

	parts := strings.Split(stripped, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// looksStringified reports whether a lone element encodes a whole list
func looksStringified(s string) bool {
	return strings.ContainsAny(s, "[]'") || strings.Contains(s, ",")
}
