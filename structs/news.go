package structs

import (
	"fmt"
	"strings"
)

// NewsStatus of an article
type NewsStatus string

const (
	StatusDraft     NewsStatus = "DRAFT"
	StatusPublished NewsStatus = "PUBLISHED"
	StatusArchived  NewsStatus = "ARCHIVED"
)

// NewsStatuses lists every status in display order
var NewsStatuses = []NewsStatus{StatusDraft, StatusPublished, StatusArchived}

// Valid reports whether s is a known status
func (s NewsStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// ParseNewsStatus parses a status case-insensitively. The empty string
// yields the empty status, meaning "no filter".
func ParseNewsStatus(v string) (NewsStatus, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", nil
	}
	s := NewsStatus(strings.ToUpper(v))
	if !s.Valid() {
		return "", fmt.Errorf("unknown news status %q", v)
	}
	return s, nil
}

// Author of an article
type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Category is read-only reference data
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

// NewsArticle is the server authoritative article
type NewsArticle struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content,omitempty"`
	Summary     string     `json:"summary,omitempty"`
	Slug        string     `json:"slug,omitempty"`
	Status      NewsStatus `json:"status"`
	Tags        []string   `json:"tags,omitempty"`
	PublishDate string     `json:"publishDate,omitempty"`
	CreatedAt   string     `json:"createdAt,omitempty"`
	UpdatedAt   string     `json:"updatedAt,omitempty"`
	Author      *Author    `json:"author,omitempty"`
	Category    *Category  `json:"category,omitempty"`
	Images      []ImageRef `json:"images,omitempty"`
}

// MainImage returns the main image, if any
func (n *NewsArticle) MainImage() *ImageRef {
	for i := range n.Images {
		if n.Images[i].IsMain {
			return &n.Images[i]
		}
	}
	return nil
}

// CreateNewsInput body. Optional text fields are sent as null when empty.
type CreateNewsInput struct {
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	Summary       *string    `json:"summary"`
	Slug          *string    `json:"slug"`
	CategoryID    string     `json:"categoryId"`
	PublishDate   *string    `json:"publishDate"`
	Status        NewsStatus `json:"status"`
	Tags          []string   `json:"tags"`
	FeaturedImage *ImageRef  `json:"featuredImage,omitempty"`
}

// UpdateNewsInput body. Nil fields are left unchanged by the server.
type UpdateNewsInput struct {
	Title         *string     `json:"title,omitempty"`
	Content       *string     `json:"content,omitempty"`
	Summary       *string     `json:"summary,omitempty"`
	Slug          *string     `json:"slug,omitempty"`
	CategoryID    *string     `json:"categoryId,omitempty"`
	PublishDate   *string     `json:"publishDate,omitempty"`
	Status        *NewsStatus `json:"status,omitempty"`
	Tags          []string    `json:"tags,omitempty"`
	FeaturedImage *ImageRef   `json:"featuredImage,omitempty"`
	Images        []ImageRef  `json:"images,omitempty"`
}

// NewsFilter narrows a news list query
type NewsFilter struct {
	Status     NewsStatus `json:"status,omitempty"`
	CategoryID string     `json:"categoryId,omitempty"`
	AuthorID   string     `json:"authorId,omitempty"`
	Tags       []string   `json:"tags,omitempty"`
	FromDate   string     `json:"fromDate,omitempty"`
	ToDate     string     `json:"toDate,omitempty"`
}

// IsZero reports whether no filter field is set
func (f *NewsFilter) IsZero() bool {
	return f == nil || (f.Status == "" && f.CategoryID == "" && f.AuthorID == "" &&
		len(f.Tags) == 0 && f.FromDate == "" && f.ToDate == "")
}

// SortDirection of a news list query
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// NewsSort orders a news list query
type NewsSort struct {
	Field     string        `json:"field"`
	Direction SortDirection `json:"direction"`
}

// DefaultNewsSort is newest first
var DefaultNewsSort = NewsSort{Field: "createdAt", Direction: SortDesc}

// NewsListParams are the variables of the newsList query
type NewsListParams struct {
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
	Filter *NewsFilter `json:"filter,omitempty"`
	Sort   NewsSort    `json:"sort"`
}

// NewsPage is one page of the news list
type NewsPage struct {
	News    []NewsArticle `json:"news"`
	Total   int           `json:"total"`
	HasMore bool          `json:"hasMore"`
}

// DeleteImageResult is the deleteCloudinaryImage response
type DeleteImageResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
