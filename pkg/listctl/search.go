package listctl

import "strings"

// Filter returns the items whose text fields contain term, ignoring case, in
// their original order. An empty term keeps every item. The result never
// aliases items.
func Filter[T any](items []T, term string, text func(T) []string) []T {
	out := make([]T, 0, len(items))
	if term == "" {
		return append(out, items...)
	}
	needle := strings.ToLower(term)
	for _, item := range items {
		for _, field := range text(item) {
			if strings.Contains(strings.ToLower(field), needle) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}
