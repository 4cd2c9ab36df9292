package upload

import (
	"context"

	"github.com/ncobase/newsdesk/structs"
)

// ImageDeleter is the API operation that deletes hosted images.
type ImageDeleter interface {
	DeleteCloudinaryImage(ctx context.Context, url string) (*structs.DeleteImageResult, error)
}

// APIRemover removes images through the news API's deleteCloudinaryImage.
type APIRemover struct {
	API ImageDeleter
}

func (r APIRemover) Remove(ctx context.Context, url string) error {
	_, err := r.API.DeleteCloudinaryImage(ctx, url)
	return err
}
