package util

import "github.com/gosimple/slug"

// UnicodeSlug makes a URL slug from a unicode string, e.g. a news title.
func UnicodeSlug(s string) string {
	return slug.Make(s)
}

// SlugOrTitle returns s when it is already set, otherwise the slug of title.
func SlugOrTitle(s, title string) string {
	if s != "" {
		return s
	}
	return UnicodeSlug(title)
}

// IsSlug reports whether s is a valid slug
func IsSlug(s string) bool {
	return slug.IsSlug(s)
}
