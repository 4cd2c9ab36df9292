package upload

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/ncobase/newsdesk/config"
	"github.com/ncobase/newsdesk/ecode"
)

// Cloudinary uploads through an upload preset. With an API secret uploads
// are signed, otherwise the preset must allow unsigned uploads.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	preset string
	folder string
	signed bool
}

// NewCloudinary creates the Cloudinary backend
func NewCloudinary(cfg *config.Cloudinary) (*Cloudinary, error) {
	if cfg == nil || cfg.CloudName == "" {
		return nil, fmt.Errorf("upload: cloudinary cloud_name is empty")
	}
	if cfg.UploadPreset == "" && cfg.APISecret == "" {
		return nil, fmt.Errorf("upload: cloudinary needs an upload_preset or api credentials")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("upload: cloudinary client: %w", err)
	}

	return &Cloudinary{
		cld:    cld,
		preset: cfg.UploadPreset,
		folder: cfg.Folder,
		signed: cfg.APIKey != "" && cfg.APISecret != "",
	}, nil
}

func (c *Cloudinary) Name() string { return "cloudinary" }

func (c *Cloudinary) Upload(ctx context.Context, f *File) (*Asset, error) {
	params := uploader.UploadParams{
		UploadPreset: c.preset,
		Folder:       c.folder,
	}

	var (
		res *uploader.UploadResult
		err error
	)
	if c.signed {
		res, err = c.cld.Upload.Upload(ctx, f.Reader, params)
	} else {
		res, err = c.cld.Upload.UnsignedUpload(ctx, f.Reader, c.preset, params)
	}
	if err != nil {
		return nil, ecode.Asset("Image upload failed", err)
	}
	if res.Error.Message != "" {
		return nil, ecode.Asset(res.Error.Message, nil)
	}
	if res.SecureURL == "" {
		return nil, ecode.Asset("Image upload returned no URL", nil)
	}

	return &Asset{
		URL:      res.SecureURL,
		PublicID: res.PublicID,
		Format:   res.Format,
		Width:    res.Width,
		Height:   res.Height,
		Bytes:    int64(res.Bytes),
	}, nil
}
