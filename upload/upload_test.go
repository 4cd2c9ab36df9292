package upload

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ncobase/newsdesk/config"
	"github.com/ncobase/newsdesk/ecode"
	"github.com/ncobase/newsdesk/structs"
)

type fakeUploader struct {
	url string
	err error
}

func (f *fakeUploader) Name() string { return "fake" }

func (f *fakeUploader) Upload(_ context.Context, file *File) (*Asset, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &Asset{URL: f.url, PublicID: file.Name}, nil
}

type fakeRemover struct {
	mu   sync.Mutex
	urls []string
	err  error
}

func (f *fakeRemover) Remove(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, url)
	return f.err
}

func imageFile(name string) *File {
	return &File{Name: name, Reader: strings.NewReader("data")}
}

func TestCheckFormat(t *testing.T) {
	for _, name := range []string{"a.jpg", "b.JPEG", "c.png", "d.gif", "e.webp"} {
		if err := CheckFormat(name); err != nil {
			t.Errorf("CheckFormat(%q) = %v", name, err)
		}
	}
	for _, name := range []string{"a.bmp", "b", "c.svg", "d.png.exe"} {
		err := CheckFormat(name)
		if !ecode.IsValidation(err) {
			t.Errorf("CheckFormat(%q) = %v, want validation error", name, err)
		}
	}
}

func TestStartDeliversOneResult(t *testing.T) {
	ch := Start(context.Background(), &fakeUploader{url: "https://img/1.png"}, imageFile("1.png"))
	res, ok := <-ch
	if !ok || res.Err != nil || res.Asset.URL != "https://img/1.png" {
		t.Fatalf("unexpected result %+v", res)
	}
	if _, ok := <-ch; ok {
		t.Fatal("channel should be closed after one result")
	}
}

func TestStartRejectsBadFormatWithoutUploading(t *testing.T) {
	res := <-Start(context.Background(), &fakeUploader{err: errors.New("must not be called")}, imageFile("x.txt"))
	if !ecode.IsValidation(res.Err) {
		t.Fatalf("want validation error, got %v", res.Err)
	}
}

func TestStartWrapsForeignErrorsAsAsset(t *testing.T) {
	res := <-Start(context.Background(), &fakeUploader{err: errors.New("boom")}, imageFile("x.png"))
	if !ecode.IsAsset(res.Err) {
		t.Fatalf("want asset error, got %v", res.Err)
	}
}

func TestFeaturedImageOpenAttachesMainImage(t *testing.T) {
	var changes []*structs.ImageRef
	w := NewFeaturedImage(&fakeUploader{url: "https://img/a.png"}, &fakeRemover{},
		OnChange(func(img *structs.ImageRef) { changes = append(changes, img) }))

	res := <-w.Open(context.Background(), imageFile("a.png"))
	if res.Err != nil {
		t.Fatalf("Open: %v", res.Err)
	}
	img := w.Image()
	if img == nil || img.URL != "https://img/a.png" || !img.IsMain {
		t.Fatalf("image = %+v", img)
	}
	if len(changes) != 1 {
		t.Fatalf("changes = %d, want 1", len(changes))
	}
	if w.Uploading() {
		t.Fatal("still uploading")
	}
}

func TestFeaturedImageFailureCanReopen(t *testing.T) {
	up := &fakeUploader{err: ecode.Asset("service down", nil)}
	w := NewFeaturedImage(up, &fakeRemover{})

	res := <-w.Open(context.Background(), imageFile("a.png"))
	if res.Err == nil || w.Err() == nil {
		t.Fatal("expected error")
	}
	if w.Image() != nil {
		t.Fatal("no image expected after failure")
	}

	up.err = nil
	up.url = "https://img/b.png"
	res = <-w.Open(context.Background(), imageFile("b.png"))
	if res.Err != nil || w.Err() != nil {
		t.Fatalf("reopen: %v", res.Err)
	}
	if w.Image().URL != "https://img/b.png" {
		t.Fatalf("image = %+v", w.Image())
	}
}

func TestFeaturedImageMetadataSurvivesReupload(t *testing.T) {
	up := &fakeUploader{url: "https://img/a.png"}
	w := NewFeaturedImage(up, nil)
	w.SetMetadata("ignored", "ignored", "ignored")
	if w.Image() != nil {
		t.Fatal("metadata without image must be a no-op")
	}

	<-w.Open(context.Background(), imageFile("a.png"))
	w.SetMetadata("Caption", "Alt", "Credit")

	up.url = "https://img/b.png"
	<-w.Open(context.Background(), imageFile("b.png"))

	img := w.Image()
	if img.URL != "https://img/b.png" || img.Caption != "Caption" || img.AltText != "Alt" || img.Credit != "Credit" {
		t.Fatalf("image = %+v", img)
	}
}

func TestFeaturedImageRemoveClearsEvenWhenRemoteFails(t *testing.T) {
	rm := &fakeRemover{err: ecode.Asset("not found", nil)}
	w := NewFeaturedImage(&fakeUploader{}, rm)
	w.Attach(&structs.ImageRef{URL: "https://img/a.png"})

	w.Remove(context.Background())

	if w.Image() != nil {
		t.Fatal("image should be cleared")
	}
	if len(rm.urls) != 1 || rm.urls[0] != "https://img/a.png" {
		t.Fatalf("remover calls = %v", rm.urls)
	}
	if w.Err() != nil {
		t.Fatalf("removal failure must be swallowed, got %v", w.Err())
	}
}

func TestFeaturedImageRemoveWithoutImage(t *testing.T) {
	rm := &fakeRemover{}
	w := NewFeaturedImage(&fakeUploader{}, rm)
	w.Remove(context.Background())
	if len(rm.urls) != 0 {
		t.Fatal("remover must not be called without an image")
	}
}

type fakeDeleter struct {
	result *structs.DeleteImageResult
	err    error
}

func (f fakeDeleter) DeleteCloudinaryImage(context.Context, string) (*structs.DeleteImageResult, error) {
	return f.result, f.err
}

func TestAPIRemover(t *testing.T) {
	r := APIRemover{API: fakeDeleter{result: &structs.DeleteImageResult{Success: true}}}
	if err := r.Remove(context.Background(), "https://img/a.png"); err != nil {
		t.Fatal(err)
	}
	r = APIRemover{API: fakeDeleter{err: ecode.Asset("gone", nil)}}
	if err := r.Remove(context.Background(), "https://img/a.png"); !ecode.IsAsset(err) {
		t.Fatalf("want asset error, got %v", err)
	}
}

func TestS3ObjectKeyAndURL(t *testing.T) {
	s := &S3{
		bucket:    "media",
		prefix:    "news",
		publicURL: "https://cdn.example.com",
		now:       func() time.Time { return time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC) },
	}
	key := s.objectKey("Photo.PNG")
	if !strings.HasPrefix(key, "news/2024/03/") || !strings.HasSuffix(key, ".png") {
		t.Fatalf("key = %q", key)
	}

	got, err := s.keyFromURL(s.URL(key))
	if err != nil || got != key {
		t.Fatalf("keyFromURL = %q, %v", got, err)
	}

	got, err = s.keyFromURL("http://localhost:9000/media/news/2024/03/x.png")
	if err != nil || got != "news/2024/03/x.png" {
		t.Fatalf("keyFromURL path-style = %q, %v", got, err)
	}
}

func TestNewFromConfig(t *testing.T) {
	if _, _, err := NewFromConfig(&config.Assets{Provider: "ftp"}, nil); err == nil {
		t.Fatal("unsupported provider should fail")
	}
	if _, _, err := NewFromConfig(&config.Assets{Provider: "s3", S3: &config.S3{}}, nil); err == nil {
		t.Fatal("s3 without endpoint should fail")
	}

	up, rm, err := NewFromConfig(&config.Assets{
		Provider:   "cloudinary",
		Cloudinary: &config.Cloudinary{CloudName: "demo", UploadPreset: "news_uploads"},
	}, fakeDeleter{})
	if err != nil {
		t.Fatalf("cloudinary: %v", err)
	}
	if up.Name() != "cloudinary" {
		t.Fatalf("uploader = %s", up.Name())
	}
	if _, ok := rm.(APIRemover); !ok {
		t.Fatalf("remover = %T, want APIRemover", rm)
	}
}
