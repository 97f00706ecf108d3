package media

import "strings"

// Resolve normalizes a stored image reference into a URL the storefront can
// render. Legacy catalog rows stored bare filenames; newer rows store full
// upload paths or absolute URLs.
func (s *Store) Resolve(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return s.placeholderURL
	}
	if strings.HasPrefix(trimmed, "http://") ||
		strings.HasPrefix(trimmed, "https://") ||
		strings.HasPrefix(trimmed, "data:") {
		return trimmed
	}
	if strings.HasPrefix(trimmed, "/") {
		return trimmed
	}
	return s.publicBasePath + trimmed
}
