// Package upload sends images to the hosted asset service and delivers the
// outcome asynchronously, the way the dashboard's upload dialog did.
package upload

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/ncobase/newsdesk/ecode"
)

// AllowedFormats are the image extensions accepted client side.
var AllowedFormats = []string{"jpg", "jpeg", "png", "gif", "webp"}

// File is one local image to upload
type File struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// OpenFile opens path for upload. The caller closes the returned file.
func OpenFile(path string) (*File, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("upload: open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("upload: stat %s: %w", path, err)
	}
	name := filepath.Base(path)
	return &File{
		Name:        name,
		ContentType: contentType(name),
		Size:        info.Size(),
		Reader:      f,
	}, f, nil
}

// Asset is a hosted image
type Asset struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId,omitempty"`
	Format   string `json:"format,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Bytes    int64  `json:"bytes,omitempty"`
}

// Result is the outcome of an upload: an asset or an error
type Result struct {
	Asset *Asset
	Err   error
}

// Uploader stores one file on an asset service
type Uploader interface {
	Name() string
	Upload(ctx context.Context, f *File) (*Asset, error)
}

// Remover deletes a hosted image by URL
type Remover interface {
	Remove(ctx context.Context, url string) error
}

// CheckFormat rejects files whose extension is not an allowed image format.
func CheckFormat(name string) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	for _, allowed := range AllowedFormats {
		if ext == allowed {
			return nil
		}
	}
	msg := fmt.Sprintf("Unsupported image format %q, allowed: %s", ext, strings.Join(AllowedFormats, ", "))
	return ecode.Validation(msg, map[string]string{"file": msg})
}

// Start uploads f in the background. The channel yields exactly one Result
// and is then closed.
func Start(ctx context.Context, u Uploader, f *File) <-chan Result {
	ch := make(chan Result, 1)

	if f == nil || f.Reader == nil {
		ch <- Result{Err: ecode.FieldRequired("file", ecode.FieldIsRequired("file"))}
		close(ch)
		return ch
	}
	if err := CheckFormat(f.Name); err != nil {
		ch <- Result{Err: err}
		close(ch)
		return ch
	}

	go func() {
		defer close(ch)
		asset, err := u.Upload(ctx, f)
		if err != nil {
			if _, typed := ecode.As(err); !typed {
				err = ecode.Asset("", err)
			}
			ch <- Result{Err: err}
			return
		}
		ch <- Result{Asset: asset}
	}()
	return ch
}

func contentType(name string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
