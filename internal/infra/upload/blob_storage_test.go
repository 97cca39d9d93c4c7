package upload

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

func testStorage(t *testing.T) *blobStorage {
	t.Helper()

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { bucket.Close() })

	return &blobStorage{
		bucket:        bucket,
		publicBaseURL: "https://cdn.example.com/uploads",
		logger:        slog.Default(),
	}
}

func TestUpload(t *testing.T) {
	storage := testStorage(t)

	url, err := storage.Upload(context.Background(), strings.NewReader("video bytes"), "intro.mp4", "lessons")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://cdn.example.com/uploads/lessons/"))
	assert.True(t, strings.HasSuffix(url, ".mp4"))
}

func TestUpload_ExtensionNotAllowed(t *testing.T) {
	storage := testStorage(t)

	url, err := storage.Upload(context.Background(), strings.NewReader("#!/bin/sh"), "script.sh", "lessons")
	assert.ErrorIs(t, err, ErrExtensionNotAllowed)
	assert.Empty(t, url)
}

func TestUpload_RejectsTraversalFolders(t *testing.T) {
	storage := testStorage(t)

	for _, folder := range []string{"", "..", "a/b", "lessons/../../etc", "UPPER", strings.Repeat("x", 65)} {
		url, err := storage.Upload(context.Background(), strings.NewReader("a"), "thumb.png", folder)
		assert.ErrorIs(t, err, ErrInvalidFolder, "folder %q", folder)
		assert.Empty(t, url)
	}
}

func TestUpload_GeneratedKeysDoNotCollide(t *testing.T) {
	storage := testStorage(t)

	first, err := storage.Upload(context.Background(), strings.NewReader("a"), "thumb.png", "thumbnails")
	require.NoError(t, err)
	second, err := storage.Upload(context.Background(), strings.NewReader("b"), "thumb.png", "thumbnails")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDeleteByURL(t *testing.T) {
	storage := testStorage(t)

	url, err := storage.Upload(context.Background(), strings.NewReader("doc"), "notes.pdf", "documents")
	require.NoError(t, err)

	assert.NoError(t, storage.DeleteByURL(context.Background(), url))

	// Deleting again is a no-op.
	assert.NoError(t, storage.DeleteByURL(context.Background(), url))

	// URLs outside our base are ignored.
	assert.NoError(t, storage.DeleteByURL(context.Background(), "https://elsewhere.example.com/x.pdf"))
}
