package screen

import (
	"context"
	"sync"

	"github.com/ncobase/newsdesk/consts"
	"github.com/ncobase/newsdesk/ecode"
	"github.com/ncobase/newsdesk/structs"
	"github.com/ncobase/newsdesk/upload"
	"github.com/ncobase/newsdesk/util"
)

const msgNewsUpdated = "News updated successfully"

// NewsEdit edits an existing article. Unlike creation nothing is persisted
// locally.
type NewsEdit struct {
	Machine
	api NewsAPI
	nav Navigator

	mu       sync.Mutex
	id       string
	original *structs.NewsArticle
	form     structs.Draft

	featured *upload.FeaturedImage
}

// NewNewsEdit creates the edit form
func NewNewsEdit(api NewsAPI, nav Navigator, up upload.Uploader, rm upload.Remover) *NewsEdit {
	s := &NewsEdit{api: api, nav: nav, form: structs.NewDraft()}
	s.featured = upload.NewFeaturedImage(up, rm, upload.OnChange(func(img *structs.ImageRef) {
		s.mu.Lock()
		s.form.FeaturedImage = img
		s.mu.Unlock()
	}))
	return s
}

// Load fetches the article and fills the form
func (s *NewsEdit) Load(ctx context.Context, id string) error {
	if err := s.begin(); err != nil {
		return err
	}
	article, err := s.api.GetNewsByID(ctx, id)
	if err != nil {
		return s.fail(err)
	}

	d := draftFromArticle(article)
	s.mu.Lock()
	s.id = article.ID
	s.original = article
	s.form = d
	s.mu.Unlock()

	s.featured.Attach(d.FeaturedImage)
	s.succeed("")
	return nil
}

// ID returns the loaded article ID
func (s *NewsEdit) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Form returns a copy of the form
func (s *NewsEdit) Form() structs.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyDraft(s.form)
}

// Featured returns the featured-image widget
func (s *NewsEdit) Featured() *upload.FeaturedImage {
	return s.featured
}

// Change applies fn to the form
func (s *NewsEdit) Change(fn func(d *structs.Draft)) {
	s.mu.Lock()
	fn(&s.form)
	img := s.form.FeaturedImage
	s.mu.Unlock()

	cur := s.featured.Image()
	if img.Empty() != cur.Empty() || (!img.Empty() && *img != *cur) {
		s.featured.Attach(img)
	}
}

// AddTag adds a trimmed tag unless it is empty or already present
func (s *NewsEdit) AddTag(tag string) {
	s.Change(func(d *structs.Draft) { d.Tags, _ = util.AddTag(d.Tags, tag) })
}

func (s *NewsEdit) RemoveTag(tag string) {
	s.Change(func(d *structs.Draft) { d.Tags = util.RemoveTag(d.Tags, tag) })
}

// Submit saves the form with the same required fields as creation.
func (s *NewsEdit) Submit(ctx context.Context) (*structs.NewsArticle, error) {
	s.mu.Lock()
	id, orig, d := s.id, s.original, copyDraft(s.form)
	s.mu.Unlock()

	if id == "" {
		return nil, s.reject(ecode.FieldRequired("id", ecode.FieldIsRequired("id")))
	}
	if err := ValidateNews(d); err != nil {
		return nil, s.reject(err)
	}
	if s.featured.Uploading() {
		return nil, s.reject(ErrBusy)
	}
	if err := s.begin(); err != nil {
		return nil, err
	}

	article, err := s.api.UpdateNews(ctx, id, updateInput(d, orig))
	if err != nil {
		return nil, s.fail(err)
	}

	s.mu.Lock()
	s.original = article
	s.mu.Unlock()

	s.succeed(msgNewsUpdated)
	navigate(s.nav, consts.RouteNews)
	return article, nil
}
