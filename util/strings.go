package util

import "strings"

// Contains tells whether a contains x.
func Contains(a []string, x string) bool {
	for _, n := range a {
		if x == n {
			return true
		}
	}
	return false
}

// AddTag appends the trimmed tag when it is non-empty and not present yet.
// It reports whether the tag was added.
func AddTag(tags []string, tag string) ([]string, bool) {
	tag = strings.TrimSpace(tag)
	if tag == "" || Contains(tags, tag) {
		return tags, false
	}
	return append(tags, tag), true
}

// RemoveTag returns tags without tag, keeping order.
func RemoveTag(tags []string, tag string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != tag {
			out = append(out, t)
		}
	}
	return out
}

// NormalizeTags trims, drops empty entries and duplicates, keeping the first
// occurrence order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out, _ = AddTag(out, t)
	}
	return out
}

// SplitTags parses a comma separated tag list
func SplitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	return NormalizeTags(strings.Split(s, ","))
}
