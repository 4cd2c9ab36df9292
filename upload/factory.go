package upload

import (
	"fmt"
	"strings"

	"github.com/ncobase/newsdesk/config"
)

// NewFromConfig builds the configured backend. Cloudinary images are removed
// through api; S3 objects are removed by the backend itself.
func NewFromConfig(cfg *config.Assets, api ImageDeleter) (Uploader, Remover, error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("upload: assets config is nil")
	}

	switch strings.ToLower(cfg.Provider) {
	case "", "cloudinary":
		c, err := NewCloudinary(cfg.Cloudinary)
		if err != nil {
			return nil, nil, err
		}
		return c, APIRemover{API: api}, nil
	case "s3", "minio":
		s, err := NewS3(cfg.S3)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("upload: unsupported provider %q", cfg.Provider)
	}
}
