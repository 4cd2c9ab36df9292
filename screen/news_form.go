package screen

import (
	"regexp"
	"strings"

	"github.com/ncobase/newsdesk/ecode"
	"github.com/ncobase/newsdesk/structs"
	"github.com/ncobase/newsdesk/util"
)

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// blankContent reports whether rich-text content has no visible text, as an
// editor leaves "<p></p>" or "<p><br></p>" behind.
func blankContent(content string) bool {
	text := htmlTag.ReplaceAllString(content, "")
	text = strings.ReplaceAll(text, "&nbsp;", " ")
	return strings.TrimSpace(text) == ""
}

// ValidateNews checks the required news fields in display order: title,
// category, content, featured image. Only the first missing one is reported.
func ValidateNews(d structs.Draft) error {
	switch {
	case strings.TrimSpace(d.Title) == "":
		return ecode.FieldRequired("title", ecode.FieldIsRequired("Title"))
	case strings.TrimSpace(d.CategoryID) == "":
		return ecode.FieldRequired("categoryId", ecode.FieldIsRequired("Category"))
	case blankContent(d.Content):
		return ecode.FieldRequired("content", ecode.FieldIsRequired("Content"))
	case d.FeaturedImage.Empty():
		return ecode.FieldRequired("featuredImage", ecode.FieldIsRequired("Featured image"))
	}
	if slug := strings.TrimSpace(d.Slug); slug != "" && !util.IsSlug(slug) {
		msg := ecode.FieldIsInvalid("Slug")
		return ecode.Validation(msg, map[string]string{"slug": msg})
	}
	if d.Status != "" && !d.Status.Valid() {
		msg := "Status must be one of DRAFT, PUBLISHED, ARCHIVED"
		return ecode.Validation(msg, map[string]string{"status": msg})
	}
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// createInput maps a validated draft to the createNews input
func createInput(d structs.Draft) structs.CreateNewsInput {
	status := d.Status
	if status == "" {
		status = structs.StatusDraft
	}
	in := structs.CreateNewsInput{
		Title:       strings.TrimSpace(d.Title),
		Content:     d.Content,
		Summary:     optional(d.Summary),
		Slug:        optional(d.Slug),
		CategoryID:  d.CategoryID,
		PublishDate: optional(d.PublishDate),
		Status:      status,
		Tags:        util.NormalizeTags(d.Tags),
	}
	if !d.FeaturedImage.Empty() {
		img := *d.FeaturedImage
		in.FeaturedImage = &img
	}
	return in
}

// draftFromArticle loads an article into the editable form
func draftFromArticle(n *structs.NewsArticle) structs.Draft {
	d := structs.NewDraft()
	d.Title = n.Title
	d.Content = n.Content
	d.Summary = n.Summary
	d.Slug = n.Slug
	d.PublishDate = n.PublishDate
	if n.Status != "" {
		d.Status = n.Status
	}
	if n.Category != nil {
		d.CategoryID = n.Category.ID
	}
	if n.Tags != nil {
		d.Tags = append([]string{}, n.Tags...)
	}
	if img := n.MainImage(); img != nil {
		cp := *img
		d.FeaturedImage = &cp
	}
	return d
}

// updateInput maps the edited form to the updateNews input. Images keeps the
// article's secondary images with the featured image as the main one.
func updateInput(d structs.Draft, orig *structs.NewsArticle) structs.UpdateNewsInput {
	title := strings.TrimSpace(d.Title)
	content := d.Content
	summary := strings.TrimSpace(d.Summary)
	category := d.CategoryID
	status := d.Status
	if status == "" {
		status = structs.StatusDraft
	}

	in := structs.UpdateNewsInput{
		Title:       &title,
		Content:     &content,
		Summary:     &summary,
		Slug:        optional(d.Slug),
		CategoryID:  &category,
		PublishDate: optional(d.PublishDate),
		Status:      &status,
		Tags:        util.NormalizeTags(d.Tags),
	}

	if !d.FeaturedImage.Empty() {
		main := *d.FeaturedImage
		main.IsMain = true
		in.FeaturedImage = &main

		images := []structs.ImageRef{main}
		if orig != nil {
			for _, img := range orig.Images {
				if !img.IsMain && img.URL != main.URL {
					images = append(images, img)
				}
			}
		}
		in.Images = images
	}
	return in
}
