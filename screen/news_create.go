package screen

import (
	"context"
	"sync"

	"github.com/ncobase/newsdesk/consts"
	"github.com/ncobase/newsdesk/logging/logger"
	"github.com/ncobase/newsdesk/structs"
	"github.com/ncobase/newsdesk/upload"
	"github.com/ncobase/newsdesk/util"
)

const msgNewsCreated = "News created successfully"

// NewsCreate is the news creation form. Every change is persisted as the
// draft so the form survives a restart.
type NewsCreate struct {
	Machine
	api    NewsAPI
	drafts Drafts
	nav    Navigator

	mu         sync.Mutex
	draft      structs.Draft
	categories []structs.Category

	featured *upload.FeaturedImage
}

// NewNewsCreate creates the form. up and rm back the featured-image widget.
func NewNewsCreate(api NewsAPI, drafts Drafts, nav Navigator, up upload.Uploader, rm upload.Remover) *NewsCreate {
	s := &NewsCreate{
		api:    api,
		drafts: drafts,
		nav:    nav,
		draft:  structs.NewDraft(),
	}
	s.featured = upload.NewFeaturedImage(up, rm, upload.OnChange(s.onFeaturedChange))
	return s
}

// Mount restores the saved draft and loads the categories. The draft is
// restored even when the categories cannot be loaded.
func (s *NewsCreate) Mount(ctx context.Context) error {
	d, ok, err := s.drafts.Load(ctx)
	if err != nil {
		logger.Warnf(ctx, "failed to load news draft: %v", err)
	}

	s.mu.Lock()
	s.draft = d
	s.mu.Unlock()
	if ok {
		logger.Debugf(ctx, "restored news draft %q", d.Title)
	}
	s.featured.Attach(d.FeaturedImage)

	cats, err := s.api.Categories(ctx)
	if err != nil {
		return s.reject(err)
	}
	s.mu.Lock()
	s.categories = cats
	s.mu.Unlock()
	return nil
}

// Draft returns a copy of the form
func (s *NewsCreate) Draft() structs.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyDraft(s.draft)
}

// Categories returns the categories loaded on mount
func (s *NewsCreate) Categories() []structs.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]structs.Category(nil), s.categories...)
}

// Featured returns the featured-image widget
func (s *NewsCreate) Featured() *upload.FeaturedImage {
	return s.featured
}

// SlugPreview is the slug the article gets: the typed slug, or one made
// from the title.
func (s *NewsCreate) SlugPreview() string {
	d := s.Draft()
	return util.SlugOrTitle(d.Slug, d.Title)
}

// Change applies fn to the form and persists the result.
func (s *NewsCreate) Change(ctx context.Context, fn func(d *structs.Draft)) error {
	s.mu.Lock()
	fn(&s.draft)
	if s.draft.Tags == nil {
		s.draft.Tags = []string{}
	}
	d := copyDraft(s.draft)
	s.mu.Unlock()

	return s.persist(ctx, d)
}

// Replace swaps the whole form, keeping the featured-image widget in sync.
func (s *NewsCreate) Replace(ctx context.Context, d structs.Draft) error {
	if d.Status == "" {
		d.Status = structs.StatusDraft
	}
	d.Tags = util.NormalizeTags(d.Tags)

	s.mu.Lock()
	s.draft = copyDraft(d)
	s.mu.Unlock()

	s.featured.Attach(d.FeaturedImage)
	return s.persist(ctx, d)
}

func (s *NewsCreate) SetTitle(ctx context.Context, v string) error {
	return s.Change(ctx, func(d *structs.Draft) { d.Title = v })
}

func (s *NewsCreate) SetContent(ctx context.Context, v string) error {
	return s.Change(ctx, func(d *structs.Draft) { d.Content = v })
}

func (s *NewsCreate) SetSummary(ctx context.Context, v string) error {
	return s.Change(ctx, func(d *structs.Draft) { d.Summary = v })
}

func (s *NewsCreate) SetSlug(ctx context.Context, v string) error {
	return s.Change(ctx, func(d *structs.Draft) { d.Slug = v })
}

func (s *NewsCreate) SetCategory(ctx context.Context, id string) error {
	return s.Change(ctx, func(d *structs.Draft) { d.CategoryID = id })
}

func (s *NewsCreate) SetPublishDate(ctx context.Context, v string) error {
	return s.Change(ctx, func(d *structs.Draft) { d.PublishDate = v })
}

func (s *NewsCreate) SetStatus(ctx context.Context, st structs.NewsStatus) error {
	return s.Change(ctx, func(d *structs.Draft) { d.Status = st })
}

// AddTag adds a trimmed tag unless it is empty or already present
func (s *NewsCreate) AddTag(ctx context.Context, tag string) error {
	return s.Change(ctx, func(d *structs.Draft) { d.Tags, _ = util.AddTag(d.Tags, tag) })
}

func (s *NewsCreate) RemoveTag(ctx context.Context, tag string) error {
	return s.Change(ctx, func(d *structs.Draft) { d.Tags = util.RemoveTag(d.Tags, tag) })
}

// SetFeaturedImage attaches an already hosted image
func (s *NewsCreate) SetFeaturedImage(img *structs.ImageRef) {
	s.featured.Attach(img)
}

func (s *NewsCreate) onFeaturedChange(img *structs.ImageRef) {
	ctx := context.Background()
	if err := s.Change(ctx, func(d *structs.Draft) { d.FeaturedImage = img }); err != nil {
		logger.Warnf(ctx, "failed to save news draft: %v", err)
	}
}

// Validate checks the form without any request
func (s *NewsCreate) Validate() error {
	return ValidateNews(s.Draft())
}

// Submit creates the article. Missing required fields fail before any
// request. On success the draft is cleared and the operator is sent to the
// news list.
func (s *NewsCreate) Submit(ctx context.Context) (*structs.NewsArticle, error) {
	d := s.Draft()
	if err := ValidateNews(d); err != nil {
		return nil, s.reject(err)
	}
	if s.featured.Uploading() {
		return nil, s.reject(ErrBusy)
	}
	if err := s.begin(); err != nil {
		return nil, err
	}

	article, err := s.api.CreateNews(ctx, createInput(d))
	if err != nil {
		return nil, s.fail(err)
	}

	if err := s.reset(ctx); err != nil {
		logger.Warnf(ctx, "failed to clear news draft: %v", err)
	}
	s.succeed(msgNewsCreated)
	navigate(s.nav, consts.RouteNews)
	return article, nil
}

// ClearDraft empties the form and drops the saved draft. The hosted
// featured image is kept.
func (s *NewsCreate) ClearDraft(ctx context.Context) error {
	return s.reset(ctx)
}

func (s *NewsCreate) reset(ctx context.Context) error {
	s.mu.Lock()
	s.draft = structs.NewDraft()
	s.mu.Unlock()

	s.featured.Attach(nil)
	return s.drafts.Clear(ctx)
}

// persist saves d; an empty form drops the draft instead.
func (s *NewsCreate) persist(ctx context.Context, d structs.Draft) error {
	if d.IsEmpty() {
		return s.drafts.Clear(ctx)
	}
	return s.drafts.Save(ctx, d)
}

func copyDraft(d structs.Draft) structs.Draft {
	if d.Tags != nil {
		d.Tags = append([]string{}, d.Tags...)
	}
	if d.FeaturedImage != nil {
		img := *d.FeaturedImage
		d.FeaturedImage = &img
	}
	return d
}
