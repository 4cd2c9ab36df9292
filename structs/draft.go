package structs

// Draft is the unsaved news-create form persisted locally
type Draft struct {
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	Summary       string     `json:"summary"`
	Slug          string     `json:"slug"`
	CategoryID    string     `json:"categoryId"`
	PublishDate   string     `json:"publishDate"`
	Status        NewsStatus `json:"status"`
	FeaturedImage *ImageRef  `json:"featuredImage"`
	Tags          []string   `json:"tags"`
}

// NewDraft returns an empty draft with the default status
func NewDraft() Draft {
	return Draft{Status: StatusDraft, Tags: []string{}}
}

// IsEmpty reports whether the draft holds no user input. A status other
// than the default counts as input.
func (d Draft) IsEmpty() bool {
	return d.Title == "" && d.Content == "" && d.Summary == "" && d.Slug == "" &&
		d.CategoryID == "" && d.PublishDate == "" && d.FeaturedImage.Empty() && len(d.Tags) == 0 &&
		(d.Status == "" || d.Status == StatusDraft)
}
