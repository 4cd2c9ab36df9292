package screen

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/ncobase/newsdesk/consts"
	"github.com/ncobase/newsdesk/data"
	"github.com/ncobase/newsdesk/draft"
	"github.com/ncobase/newsdesk/ecode"
	"github.com/ncobase/newsdesk/session"
	"github.com/ncobase/newsdesk/structs"
	"github.com/ncobase/newsdesk/upload"
)

type fakeAPI struct {
	mu    sync.Mutex
	calls map[string]int

	loginErr  error
	createErr error
	updated   *structs.UpdateNewsInput
	created   *structs.CreateNewsInput
	listCalls []structs.NewsListParams
	total     int
	article   *structs.NewsArticle
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{calls: map[string]int{}, total: 25}
}

func (f *fakeAPI) hit(op string) {
	f.mu.Lock()
	f.calls[op]++
	f.mu.Unlock()
}

func (f *fakeAPI) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeAPI) Login(_ context.Context, in structs.LoginInput) (*structs.AuthPayload, error) {
	f.hit("login")
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &structs.AuthPayload{
		Token: "token-" + in.Email,
		User:  &structs.User{ID: "u1", Name: "Ada", Email: in.Email, Role: structs.RoleEditor},
	}, nil
}

func (f *fakeAPI) RegisterUser(_ context.Context, in structs.RegisterUserInput) (*structs.AuthPayload, error) {
	f.hit("register")
	return &structs.AuthPayload{
		Token: "token-new",
		User:  &structs.User{ID: "u2", Name: in.Name, Email: in.Email, Role: structs.RoleJournalist},
	}, nil
}

func (f *fakeAPI) UpdateUser(_ context.Context, id string, in structs.UpdateUserInput) (*structs.User, error) {
	f.hit("updateUser")
	return &structs.User{ID: id, Name: in.Name, Email: in.Email, Role: structs.RoleEditor}, nil
}

func (f *fakeAPI) CreateNews(_ context.Context, in structs.CreateNewsInput) (*structs.NewsArticle, error) {
	f.hit("createNews")
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = &in
	return &structs.NewsArticle{ID: "n1", Title: in.Title, Status: in.Status}, nil
}

func (f *fakeAPI) UpdateNews(_ context.Context, id string, in structs.UpdateNewsInput) (*structs.NewsArticle, error) {
	f.hit("updateNews")
	f.updated = &in
	return &structs.NewsArticle{ID: id, Title: *in.Title}, nil
}

func (f *fakeAPI) DeleteNews(_ context.Context, id string) (string, error) {
	f.hit("deleteNews")
	f.total--
	return id, nil
}

func (f *fakeAPI) NewsList(_ context.Context, p structs.NewsListParams) (*structs.NewsPage, error) {
	f.hit("newsList")
	f.mu.Lock()
	f.listCalls = append(f.listCalls, p)
	f.mu.Unlock()

	n := f.total - p.Offset
	if n > p.Limit {
		n = p.Limit
	}
	if n < 0 {
		n = 0
	}
	items := make([]structs.NewsArticle, n)
	for i := range items {
		items[i] = structs.NewsArticle{ID: "n"}
	}
	return &structs.NewsPage{News: items, Total: f.total, HasMore: p.Offset+n < f.total}, nil
}

func (f *fakeAPI) GetNewsByID(_ context.Context, id string) (*structs.NewsArticle, error) {
	f.hit("getNews")
	if f.article == nil {
		return nil, ecode.Server(ecode.NotFound, ecode.NotExist("news "+id))
	}
	return f.article, nil
}

func (f *fakeAPI) Categories(context.Context) ([]structs.Category, error) {
	f.hit("categories")
	return []structs.Category{{ID: "c1", Name: "Politics"}}, nil
}

type stubUploader struct{}

func (stubUploader) Name() string { return "stub" }

func (stubUploader) Upload(_ context.Context, f *upload.File) (*upload.Asset, error) {
	return &upload.Asset{URL: "https://img/" + f.Name}, nil
}

type failingRemover struct{ calls int }

func (r *failingRemover) Remove(context.Context, string) error {
	r.calls++
	return ecode.Asset("remote delete failed", nil)
}

func TestLoginSuccess(t *testing.T) {
	ctx := context.Background()
	sess := session.New(data.NewMemoryStore())
	nav := &Recorder{}
	s := NewLogin(newFakeAPI(), sess, nav)

	if sess.IsAuthenticated(ctx) {
		t.Fatal("should start signed out")
	}
	if err := s.Submit(ctx, structs.LoginInput{Email: " ada@example.com ", Password: "secret"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !sess.IsAuthenticated(ctx) || sess.Token(ctx) == "" {
		t.Fatal("expected an authenticated session with a token")
	}
	if s.State() != Success {
		t.Errorf("state = %s", s.State())
	}
	if nav.Route() != consts.RouteDashboard {
		t.Errorf("route = %q", nav.Route())
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	sess := session.New(data.NewMemoryStore())
	api := newFakeAPI()
	api.loginErr = ecode.Authorization(ecode.NoLogin, "Invalid email or password")
	nav := &Recorder{}
	s := NewLogin(api, sess, nav)

	err := s.Submit(ctx, structs.LoginInput{Email: "ada@example.com", Password: "wrong"})
	if err == nil {
		t.Fatal("expected an error")
	}
	if sess.IsAuthenticated(ctx) {
		t.Fatal("must stay signed out")
	}
	if s.State() != Idle || s.ErrMessage() == "" {
		t.Fatalf("state = %s, message = %q", s.State(), s.ErrMessage())
	}
	if nav.Route() != "" {
		t.Errorf("unexpected navigation to %q", nav.Route())
	}
}

func TestLoginValidationSkipsNetwork(t *testing.T) {
	api := newFakeAPI()
	s := NewLogin(api, session.New(data.NewMemoryStore()), nil)

	err := s.Submit(context.Background(), structs.LoginInput{Email: "not-an-email", Password: "x"})
	if !ecode.IsValidation(err) {
		t.Fatalf("want validation error, got %v", err)
	}
	if api.count("login") != 0 {
		t.Fatal("login must not be called")
	}
}

func TestRegisterSignsIn(t *testing.T) {
	ctx := context.Background()
	sess := session.New(data.NewMemoryStore())
	nav := &Recorder{}
	s := NewRegister(newFakeAPI(), sess, nav)

	if err := s.Submit(ctx, structs.RegisterUserInput{Name: "Bob", Email: "bob@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if sess.Current(ctx).UserID != "u2" {
		t.Fatalf("session = %+v", sess.Current(ctx))
	}
	if nav.Route() != consts.RouteDashboard {
		t.Errorf("route = %q", nav.Route())
	}

	err := NewRegister(newFakeAPI(), sess, nil).Submit(ctx, structs.RegisterUserInput{Name: "Bob", Email: "bob@example.com", Password: "123"})
	if !ecode.IsValidation(err) {
		t.Fatalf("short password: want validation error, got %v", err)
	}
}

func signedIn(t *testing.T) *session.Store {
	t.Helper()
	sess := session.New(data.NewMemoryStore())
	u := &structs.User{ID: "u1", Name: "Ada", Email: "ada@example.com", Role: structs.RoleEditor}
	if err := sess.Login(context.Background(), u, "opaque"); err != nil {
		t.Fatal(err)
	}
	return sess
}

func TestProfilePasswordMismatch(t *testing.T) {
	api := newFakeAPI()
	s := NewProfile(api, signedIn(t))

	err := s.Submit(context.Background(), ProfileForm{
		Name: "Ada", Email: "ada@example.com",
		CurrentPassword: "old", NewPassword: "newpass1", ConfirmPassword: "newpass2",
	})
	if ecode.Message(err) != "New passwords don't match" {
		t.Fatalf("err = %v", err)
	}
	if api.count("updateUser") != 0 {
		t.Fatal("updateUser must not be called")
	}
}

func TestProfileUpdate(t *testing.T) {
	ctx := context.Background()
	sess := signedIn(t)
	s := NewProfile(newFakeAPI(), sess)
	if f := s.Mount(ctx); f.Name != "Ada" {
		t.Fatalf("mounted form = %+v", f)
	}

	err := s.Submit(ctx, ProfileForm{
		Name: "Ada L.", Email: "ada@example.com",
		CurrentPassword: "old", NewPassword: "newpass1", ConfirmPassword: "newpass1",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if s.Message() != "Profile updated successfully" {
		t.Errorf("message = %q", s.Message())
	}
	if cur := sess.Current(ctx); cur.Name != "Ada L." || cur.Token != "opaque" {
		t.Errorf("session = %+v", cur)
	}
	if f := s.Form(); f.NewPassword != "" || f.ConfirmPassword != "" || f.CurrentPassword != "" {
		t.Errorf("password fields not reset: %+v", f)
	}
}

func TestProfileRequiresSession(t *testing.T) {
	s := NewProfile(newFakeAPI(), session.New(data.NewMemoryStore()))
	err := s.Submit(context.Background(), ProfileForm{Name: "x", Email: "x@example.com"})
	if !ecode.IsAuthorization(err) {
		t.Fatalf("want authorization error, got %v", err)
	}
}

func newCreate(api *fakeAPI, kv data.Store, nav Navigator, rm upload.Remover) *NewsCreate {
	return NewNewsCreate(api, draft.New(kv), nav, stubUploader{}, rm)
}

func TestNewsCreateRejectsMissingFieldsInOrder(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	s := newCreate(api, data.NewMemoryStore(), nil, nil)

	steps := []struct {
		apply func()
		want  string
	}{
		{func() {}, "Title is required"},
		{func() { _ = s.SetTitle(ctx, "Budget") }, "Category is required"},
		{func() { _ = s.SetCategory(ctx, "c1") }, "Content is required"},
		{func() { _ = s.SetContent(ctx, "<p><br></p>") }, "Content is required"},
		{func() { _ = s.SetContent(ctx, "<p>body</p>") }, "Featured image is required"},
	}
	for _, step := range steps {
		step.apply()
		_, err := s.Submit(ctx)
		if ecode.Message(err) != step.want {
			t.Fatalf("err = %v, want %q", err, step.want)
		}
		if s.State() != Idle {
			t.Fatalf("state = %s", s.State())
		}
	}
	if api.count("createNews") != 0 {
		t.Fatal("createNews must not be called")
	}
}

func TestValidateNewsSlugFormat(t *testing.T) {
	d := structs.NewDraft()
	d.Title = "Budget"
	d.CategoryID = "c1"
	d.Content = "<p>body</p>"
	d.FeaturedImage = &structs.ImageRef{URL: "https://img/x.png", IsMain: true}

	d.Slug = "Not A Slug"
	if err := ValidateNews(d); !ecode.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	d.Slug = "budget-2024"
	if err := ValidateNews(d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRejectedSubmitLeavesInFlightSubmitAlone(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	s := newCreate(api, data.NewMemoryStore(), nil, nil)

	if err := s.begin(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Submit(ctx); ecode.Message(err) != "Title is required" {
		t.Fatalf("err = %v", err)
	}
	if s.State() != Submitting {
		t.Fatalf("state = %s, want submitting", s.State())
	}
	if s.Err() != nil {
		t.Fatalf("in-flight submit error overwritten: %v", s.Err())
	}

	s.succeed("")
	if _, err := s.Submit(ctx); err == nil {
		t.Fatal("expected validation error")
	}
	if s.State() != Idle || s.ErrMessage() != "Title is required" {
		t.Fatalf("state = %s, message = %q", s.State(), s.ErrMessage())
	}
}

func TestNewsCreateDraftSurvivesReloadAndSubmitClearsIt(t *testing.T) {
	ctx := context.Background()
	kv := data.NewMemoryStore()
	api := newFakeAPI()

	first := newCreate(api, kv, nil, nil)
	if err := first.Mount(ctx); err != nil {
		t.Fatal(err)
	}
	_ = first.SetTitle(ctx, "Draft X")
	_ = first.SetContent(ctx, "body")

	nav := &Recorder{}
	second := newCreate(api, kv, nav, nil)
	if err := second.Mount(ctx); err != nil {
		t.Fatal(err)
	}
	d := second.Draft()
	if d.Title != "Draft X" || d.Content != "body" {
		t.Fatalf("restored draft = %+v", d)
	}

	_ = second.SetCategory(ctx, "c1")
	second.SetFeaturedImage(&structs.ImageRef{URL: "https://img/a.png"})
	article, err := second.Submit(ctx)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if article.ID != "n1" || nav.Route() != consts.RouteNews {
		t.Fatalf("article = %+v, route = %q", article, nav.Route())
	}
	if api.created.FeaturedImage == nil || api.created.Status != structs.StatusDraft || api.created.Summary != nil {
		t.Fatalf("created input = %+v", api.created)
	}

	if _, err := kv.Get(ctx, consts.DraftStorageKey); err != data.ErrNotFound {
		t.Fatalf("draft should be cleared, got err %v", err)
	}
	third := newCreate(api, kv, nil, nil)
	_ = third.Mount(ctx)
	if !third.Draft().IsEmpty() {
		t.Fatalf("draft after submit = %+v", third.Draft())
	}
}

func TestNewsCreateStatusOnlyChangeSurvivesReload(t *testing.T) {
	ctx := context.Background()
	kv := data.NewMemoryStore()
	api := newFakeAPI()

	first := newCreate(api, kv, nil, nil)
	if err := first.Mount(ctx); err != nil {
		t.Fatal(err)
	}
	if err := first.SetStatus(ctx, structs.StatusPublished); err != nil {
		t.Fatal(err)
	}

	second := newCreate(api, kv, nil, nil)
	if err := second.Mount(ctx); err != nil {
		t.Fatal(err)
	}
	if got := second.Draft().Status; got != structs.StatusPublished {
		t.Fatalf("status after reload = %s, want %s", got, structs.StatusPublished)
	}

	_ = second.SetStatus(ctx, structs.StatusDraft)
	if _, err := kv.Get(ctx, consts.DraftStorageKey); err != data.ErrNotFound {
		t.Fatalf("default-only draft should be cleared, got err %v", err)
	}
}

func TestNewsCreateFailedSubmitKeepsDraft(t *testing.T) {
	ctx := context.Background()
	kv := data.NewMemoryStore()
	api := newFakeAPI()
	api.createErr = ecode.Network(nil)

	s := newCreate(api, kv, nil, nil)
	_ = s.SetTitle(ctx, "T")
	_ = s.SetCategory(ctx, "c1")
	_ = s.SetContent(ctx, "body")
	s.SetFeaturedImage(&structs.ImageRef{URL: "https://img/a.png"})

	if _, err := s.Submit(ctx); !ecode.IsNetwork(err) {
		t.Fatalf("want network error, got %v", err)
	}
	if s.State() != Idle || s.Draft().Title != "T" {
		t.Fatalf("state = %s, draft = %+v", s.State(), s.Draft())
	}
	if _, err := kv.Get(ctx, consts.DraftStorageKey); err != nil {
		t.Fatalf("draft should be kept: %v", err)
	}
}

func TestNewsCreateTagsAndSlug(t *testing.T) {
	ctx := context.Background()
	s := newCreate(newFakeAPI(), data.NewMemoryStore(), nil, nil)

	_ = s.AddTag(ctx, " economy ")
	_ = s.AddTag(ctx, "economy")
	_ = s.AddTag(ctx, "")
	_ = s.AddTag(ctx, "budget")
	_ = s.RemoveTag(ctx, "economy")
	if tags := s.Draft().Tags; len(tags) != 1 || tags[0] != "budget" {
		t.Fatalf("tags = %v", tags)
	}

	_ = s.SetTitle(ctx, "Budget Day 2024")
	if got := s.SlugPreview(); got != "budget-day-2024" {
		t.Errorf("slug preview = %q", got)
	}
	_ = s.SetSlug(ctx, "custom")
	if got := s.SlugPreview(); got != "custom" {
		t.Errorf("slug preview = %q", got)
	}
}

func TestNewsCreateFeaturedUploadIsPersisted(t *testing.T) {
	ctx := context.Background()
	kv := data.NewMemoryStore()
	s := newCreate(newFakeAPI(), kv, nil, nil)

	res := <-s.Featured().Open(ctx, &upload.File{Name: "a.png", Reader: strings.NewReader("x")})
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	if img := s.Draft().FeaturedImage; img == nil || img.URL != "https://img/a.png" {
		t.Fatalf("featured image = %+v", img)
	}
	d, ok, _ := draft.New(kv).Load(ctx)
	if !ok || d.FeaturedImage == nil {
		t.Fatalf("persisted draft = %+v", d)
	}
}

func TestRemovingFeaturedImageClearsEvenWhenRemoteFails(t *testing.T) {
	ctx := context.Background()
	rm := &failingRemover{}
	s := newCreate(newFakeAPI(), data.NewMemoryStore(), nil, rm)
	s.SetFeaturedImage(&structs.ImageRef{URL: "https://img/a.png"})

	s.Featured().Remove(ctx)

	if rm.calls != 1 {
		t.Fatalf("remover calls = %d", rm.calls)
	}
	if s.Draft().FeaturedImage != nil {
		t.Fatal("featured image should be cleared")
	}
}

func TestNewsCreateClearDraft(t *testing.T) {
	ctx := context.Background()
	kv := data.NewMemoryStore()
	s := newCreate(newFakeAPI(), kv, nil, nil)
	_ = s.SetTitle(ctx, "T")

	if err := s.ClearDraft(ctx); err != nil {
		t.Fatal(err)
	}
	if !s.Draft().IsEmpty() {
		t.Fatalf("draft = %+v", s.Draft())
	}
	if _, err := kv.Get(ctx, consts.DraftStorageKey); err != data.ErrNotFound {
		t.Fatalf("draft key should be gone, got %v", err)
	}
}

func TestNewsListStatusFilterResetsPage(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	s := NewNewsList(api)

	if err := s.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if err := s.Next(ctx); err != nil {
		t.Fatal(err)
	}
	if s.Page() != 2 {
		t.Fatalf("page = %d", s.Page())
	}

	before := api.count("newsList")
	if err := s.SetStatus(ctx, structs.StatusPublished); err != nil {
		t.Fatal(err)
	}
	if s.Page() != 1 {
		t.Fatalf("page after filter change = %d", s.Page())
	}
	if api.count("newsList") != before+1 {
		t.Fatal("query was not re-issued")
	}
	last := api.listCalls[len(api.listCalls)-1]
	if last.Offset != 0 || last.Limit != PageSize || last.Filter == nil || last.Filter.Status != structs.StatusPublished {
		t.Fatalf("params = %+v", last)
	}

	_ = s.SetStatus(ctx, "")
	if last := api.listCalls[len(api.listCalls)-1]; last.Filter != nil {
		t.Fatalf("empty status should drop the filter, got %+v", last.Filter)
	}
}

func TestNewsListPaging(t *testing.T) {
	ctx := context.Background()
	s := NewNewsList(newFakeAPI())

	_ = s.GoTo(ctx, 3)
	if len(s.Items()) != 5 || s.HasMore() {
		t.Fatalf("page 3: items = %d, hasMore = %v", len(s.Items()), s.HasMore())
	}
	if s.Pages() != 3 {
		t.Fatalf("pages = %d", s.Pages())
	}
	_ = s.Next(ctx)
	if s.Page() != 3 {
		t.Fatal("Next past the last page must not move")
	}
	_ = s.Prev(ctx)
	_ = s.Prev(ctx)
	_ = s.Prev(ctx)
	if s.Page() != 1 {
		t.Fatalf("page = %d", s.Page())
	}
}

func TestNewsListDeleteLastItemStepsBack(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	api.total = 11
	s := NewNewsList(api)

	_ = s.GoTo(ctx, 2)
	if len(s.Items()) != 1 {
		t.Fatalf("items = %d", len(s.Items()))
	}
	if err := s.Delete(ctx, "n11"); err != nil {
		t.Fatal(err)
	}
	if s.Page() != 1 || len(s.Items()) != 10 || s.Total() != 10 {
		t.Fatalf("page = %d, items = %d, total = %d", s.Page(), len(s.Items()), s.Total())
	}
}

func TestNewsEditLoadAndSubmit(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	api.article = &structs.NewsArticle{
		ID: "n9", Title: "Old", Content: "body", Status: structs.StatusPublished,
		Category: &structs.Category{ID: "c1"},
		Images: []structs.ImageRef{
			{URL: "https://img/main.png", IsMain: true},
			{URL: "https://img/second.png"},
		},
	}
	nav := &Recorder{}
	s := NewNewsEdit(api, nav, stubUploader{}, nil)

	if err := s.Load(ctx, "n9"); err != nil {
		t.Fatal(err)
	}
	if f := s.Form(); f.Title != "Old" || f.CategoryID != "c1" || f.FeaturedImage.URL != "https://img/main.png" {
		t.Fatalf("form = %+v", f)
	}

	s.Change(func(d *structs.Draft) { d.Title = "New" })
	s.AddTag("economy")
	if _, err := s.Submit(ctx); err != nil {
		t.Fatal(err)
	}
	in := api.updated
	if *in.Title != "New" || *in.Status != structs.StatusPublished || len(in.Tags) != 1 {
		t.Fatalf("update input = %+v", in)
	}
	if len(in.Images) != 2 || !in.Images[0].IsMain || in.Images[1].IsMain {
		t.Fatalf("images = %+v", in.Images)
	}
	if nav.Route() != consts.RouteNews {
		t.Errorf("route = %q", nav.Route())
	}
}

func TestNewsEditRequiresFeaturedImage(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	api.article = &structs.NewsArticle{ID: "n9", Title: "T", Content: "c", Category: &structs.Category{ID: "c1"}}
	s := NewNewsEdit(api, nil, stubUploader{}, nil)
	_ = s.Load(ctx, "n9")

	_, err := s.Submit(ctx)
	if ecode.Message(err) != "Featured image is required" {
		t.Fatalf("err = %v", err)
	}
	if api.count("updateNews") != 0 {
		t.Fatal("updateNews must not be called")
	}
}

func TestNewsEditNotFound(t *testing.T) {
	s := NewNewsEdit(newFakeAPI(), nil, stubUploader{}, nil)
	if err := s.Load(context.Background(), "missing"); err == nil || s.State() != Idle {
		t.Fatalf("err = %v, state = %s", err, s.State())
	}
}
