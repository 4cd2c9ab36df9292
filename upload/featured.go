package upload

import (
	"context"
	"sync"

	"github.com/ncobase/newsdesk/ecode"
	"github.com/ncobase/newsdesk/logging/logger"
	"github.com/ncobase/newsdesk/structs"
	"github.com/sirupsen/logrus"
)

// FeaturedOption configures a FeaturedImage
type FeaturedOption func(*FeaturedImage)

// OnChange is called with the current image after every change, nil when the
// image was removed.
func OnChange(fn func(*structs.ImageRef)) FeaturedOption {
	return func(w *FeaturedImage) { w.onChange = fn }
}

// WithFeaturedLogger sets the logger used for swallowed removal failures.
func WithFeaturedLogger(l *logger.Logger) FeaturedOption {
	return func(w *FeaturedImage) { w.log = l }
}

// FeaturedImage is the featured-image widget of the news forms. It owns at
// most one image, always flagged as main.
type FeaturedImage struct {
	mu        sync.Mutex
	uploader  Uploader
	remover   Remover
	image     *structs.ImageRef
	uploading bool
	err       error

	onChange func(*structs.ImageRef)
	log      *logger.Logger
}

// NewFeaturedImage creates the widget
func NewFeaturedImage(u Uploader, r Remover, opts ...FeaturedOption) *FeaturedImage {
	w := &FeaturedImage{uploader: u, remover: r}
	for _, opt := range opts {
		opt(w)
	}
	if w.log == nil {
		w.log = logger.StdLogger()
	}
	return w
}

// Open starts uploading f. On success the uploaded image replaces the current
// one, keeping its metadata. On failure the error is kept and the widget can
// be opened again. The returned channel yields one Result.
func (w *FeaturedImage) Open(ctx context.Context, f *File) <-chan Result {
	out := make(chan Result, 1)

	w.mu.Lock()
	if w.uploading {
		w.mu.Unlock()
		out <- Result{Err: ecode.Asset("An upload is already in progress", nil)}
		close(out)
		return out
	}
	w.uploading = true
	w.err = nil
	w.mu.Unlock()

	in := Start(ctx, w.uploader, f)
	go func() {
		defer close(out)
		res := <-in
		w.apply(res)
		out <- res
	}()
	return out
}

func (w *FeaturedImage) apply(res Result) {
	w.mu.Lock()
	w.uploading = false
	if res.Err != nil {
		w.err = res.Err
		w.mu.Unlock()
		return
	}

	img := &structs.ImageRef{URL: res.Asset.URL, IsMain: true}
	if w.image != nil {
		img.Caption = w.image.Caption
		img.AltText = w.image.AltText
		img.Credit = w.image.Credit
	}
	w.image = img
	w.mu.Unlock()

	w.notify()
}

// Attach sets an already hosted image, e.g. one restored from a draft.
func (w *FeaturedImage) Attach(img *structs.ImageRef) {
	w.mu.Lock()
	if img.Empty() {
		w.image = nil
	} else {
		cp := *img
		cp.IsMain = true
		w.image = &cp
	}
	w.err = nil
	w.mu.Unlock()

	w.notify()
}

// SetMetadata edits the caption, alt text and credit of the current image.
// It does nothing when no image is attached.
func (w *FeaturedImage) SetMetadata(caption, altText, credit string) {
	w.mu.Lock()
	if w.image == nil {
		w.mu.Unlock()
		return
	}
	w.image.Caption = caption
	w.image.AltText = altText
	w.image.Credit = credit
	w.mu.Unlock()

	w.notify()
}

// Remove deletes the hosted image and detaches it. Remote failures are
// logged; the image is detached regardless.
func (w *FeaturedImage) Remove(ctx context.Context) {
	w.mu.Lock()
	img := w.image
	w.image = nil
	w.err = nil
	w.mu.Unlock()

	if img == nil {
		return
	}

	if w.remover != nil {
		if err := w.remover.Remove(ctx, img.URL); err != nil {
			w.log.WithError(ctx, err).WithFields(logrus.Fields{
				"url": img.URL,
			}).Warn("failed to delete featured image")
		}
	}

	w.notify()
}

// Image returns a copy of the current image, nil when none.
func (w *FeaturedImage) Image() *structs.ImageRef {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.image == nil {
		return nil
	}
	cp := *w.image
	return &cp
}

// Uploading reports whether an upload is in flight
func (w *FeaturedImage) Uploading() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.uploading
}

// Err returns the last upload error
func (w *FeaturedImage) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

func (w *FeaturedImage) notify() {
	if w.onChange != nil {
		w.onChange(w.Image())
	}
}
