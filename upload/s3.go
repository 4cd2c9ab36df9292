package upload

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/ncobase/newsdesk/config"
	"github.com/ncobase/newsdesk/ecode"
	"github.com/ncobase/newsdesk/util"
)

// S3 stores images in any S3 compatible bucket
type S3 struct {
	client    *minio.Client
	bucket    string
	prefix    string
	publicURL string
	now       func() time.Time
}

// NewS3 creates the S3 backend
func NewS3(cfg *config.S3) (*S3, error) {
	if cfg == nil || cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("upload: s3 endpoint and bucket are required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	publicURL := strings.TrimSuffix(cfg.PublicURL, "/")
	if publicURL == "" {
		publicURL = strings.TrimSuffix(client.EndpointURL().String(), "/") + "/" + cfg.Bucket
	}

	return &S3{
		client:    client,
		bucket:    cfg.Bucket,
		prefix:    strings.Trim(cfg.Prefix, "/"),
		publicURL: publicURL,
		now:       time.Now,
	}, nil
}

func (s *S3) Name() string { return "s3" }

// objectKey is <prefix>/<yyyy>/<mm>/<nanoid>.<ext>
func (s *S3) objectKey(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	t := s.now()
	return path.Join(s.prefix, t.Format("2006"), t.Format("01"), util.NanoID()+ext)
}

func (s *S3) Upload(ctx context.Context, f *File) (*Asset, error) {
	key := s.objectKey(f.Name)

	size := f.Size
	if size <= 0 {
		size = -1
	}
	ct := f.ContentType
	if ct == "" {
		ct = contentType(f.Name)
	}

	info, err := s.client.PutObject(ctx, s.bucket, key, f.Reader, size, minio.PutObjectOptions{
		ContentType: ct,
	})
	if err != nil {
		return nil, ecode.Asset("Image upload failed", fmt.Errorf("failed to put object: %w", err))
	}

	return &Asset{
		URL:      s.URL(key),
		PublicID: key,
		Format:   strings.TrimPrefix(filepath.Ext(key), "."),
		Bytes:    info.Size,
	}, nil
}

// URL returns the public URL of key
func (s *S3) URL(key string) string {
	return s.publicURL + "/" + key
}

// Remove deletes the object behind a URL produced by this backend.
func (s *S3) Remove(ctx context.Context, rawURL string) error {
	key, err := s.keyFromURL(rawURL)
	if err != nil {
		return ecode.Asset("", err)
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return ecode.Asset("Image deletion failed", fmt.Errorf("failed to delete object: %w", err))
	}
	return nil
}

func (s *S3) keyFromURL(rawURL string) (string, error) {
	if key, ok := strings.CutPrefix(rawURL, s.publicURL+"/"); ok && key != "" {
		return key, nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid image url: %w", err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	key = strings.TrimPrefix(key, s.bucket+"/")
	if key == "" {
		return "", fmt.Errorf("image url %q has no object key", rawURL)
	}
	return key, nil
}
