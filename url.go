package recipekit

import (
	"net/url"
	"strings"
)

// CanonicalURL trims surrounding whitespace and a trailing slash from raw and
// checks that the result is an absolute http(s) URL.
func CanonicalURL(raw string) (string, error) {
	s := strings.TrimSuffix(strings.TrimSpace(raw), "/")
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", Errorf(EINVALID, "invalid recipe URL: %q", raw)
	}
	return s, nil
}

// Slug returns the last path segment of a recipe URL, used as the name of
// the recipe's storage directory. The host is used for URLs without a path.
func Slug(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSuffix(rawURL, "/"))
	if err != nil {
		return "", Errorf(EINVALID, "invalid recipe URL: %q", rawURL)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	slug := segments[len(segments)-1]
	if slug == "" {
		slug = u.Host
	}
	if slug == "" || slug == "." || slug == ".." {
		return "", Errorf(EINVALID, "cannot derive a directory name from %q", rawURL)
	}
	return slug, nil
}
