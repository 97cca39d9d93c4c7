package service

import (
	"context"
	"io"
)

// FileStorage stores uploaded course assets (videos, documents, thumbnails)
// and serves them back by URL.
type FileStorage interface {
	// Upload stores the stream under the given folder and returns the
	// public URL of the stored object.
	Upload(ctx context.Context, content io.Reader, fileName, folder string) (string, error)

	// DeleteByURL removes a previously uploaded object identified by the URL
	// Upload returned. Deleting an unknown URL is not an error.
	DeleteByURL(ctx context.Context, url string) error
}
