// Package upload stores course assets through a gocloud.dev blob bucket.
package upload

import (
	"context"
	"io"
	"log/slog"
	"mime"
	"path"
	"strings"
	"time"

	"eduvn/config"
	"eduvn/internal/domain/lifecycle"
	"eduvn/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Register the file:// bucket scheme for local and single-node deployments.
	_ "gocloud.dev/blob/fileblob"
)

// allowedExtensions is the upload allow-list. Anything else is rejected
// before a single byte is written.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".mp4":  true,
	".webm": true,
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".ppt":  true,
	".pptx": true,
}

// ErrExtensionNotAllowed is returned for uploads outside the allow-list.
var ErrExtensionNotAllowed = errors.New("file extension not allowed")

// ErrInvalidFolder is returned when the target folder is not a plain name.
var ErrInvalidFolder = errors.New("invalid upload folder")

// validFolder accepts a single path segment of safe characters. Anything
// with separators or dots cannot escape the bucket prefix.
func validFolder(folder string) bool {
	if folder == "" || len(folder) > 64 {
		return false
	}
	for _, r := range folder {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}

	return true
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// blobStorage implements service.FileStorage on top of a blob bucket.
type blobStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
	logger        *slog.Logger
}

// New opens the configured bucket and binds its lifetime to the application.
func New(params Params) (service.FileStorage, error) {
	if params.Config.Upload == nil || params.Config.Upload.BucketURL == "" {
		return nil, errors.New("upload bucket url must be provided")
	}

	openCtx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(openCtx, params.Config.Upload.BucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "open upload bucket")
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return &blobStorage{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(params.Config.Upload.PublicBaseURL, "/"),
		logger:        params.Logger,
	}, nil
}

// Upload stores the stream under a generated key and returns the public URL.
// Keys are "<folder>/<uuid><ext>" so original file names never collide.
func (s *blobStorage) Upload(ctx context.Context, content io.Reader, fileName, folder string) (string, error) {
	ext := strings.ToLower(path.Ext(fileName))
	if !allowedExtensions[ext] {
		return "", ErrExtensionNotAllowed
	}
	if !validFolder(folder) {
		return "", ErrInvalidFolder
	}

	key := path.Join(folder, uuid.New().String()+ext)

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	start := time.Now()
	if err := s.bucket.Upload(ctx, key, content, &blob.WriterOptions{ContentType: contentType}); err != nil {
		return "", errors.Wrap(err, "upload object")
	}

	s.logger.Info("uploaded file",
		slog.String("key", key),
		slog.String("contentType", contentType),
		slog.Duration("elapsed", time.Since(start)))

	return s.publicBaseURL + "/" + key, nil
}

// DeleteByURL removes a previously uploaded object. Unknown URLs are ignored.
func (s *blobStorage) DeleteByURL(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, s.publicBaseURL+"/")
	if !ok || key == "" {
		return nil
	}

	exists, err := s.bucket.Exists(ctx, key)
	if err != nil {
		return errors.Wrap(err, "check object existence")
	}
	if !exists {
		return nil
	}

	if err := s.bucket.Delete(ctx, key); err != nil {
		return errors.Wrap(err, "delete object")
	}

	return nil
}
