package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/ikkim/marketplace-backend/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T, baseURL string) *S3Storage {
	s, err := NewS3Storage(context.Background(), config.S3Config{
		Region:          "us-east-1",
		Bucket:          "test-bucket",
		AccessKeyID:     "AKIATESTKEY",
		SecretAccessKey: "test-secret",
		BaseURL:         baseURL,
	})
	require.NoError(t, err)
	return s
}

func TestS3Storage_PresignImageUpload(t *testing.T) {
	s := newTestStorage(t, "")

	upload, err := s.PresignImageUpload(context.Background(), "chair.PNG", "image/png")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(upload.Key, "listings/"))
	assert.True(t, strings.HasSuffix(upload.Key, ".png"))
	assert.Contains(t, upload.UploadURL, "test-bucket")
	assert.Contains(t, upload.UploadURL, "X-Amz-Signature")
	assert.Equal(t, "https://test-bucket.s3.us-east-1.amazonaws.com/"+upload.Key, upload.FileURL)
	assert.False(t, upload.ExpiresAt.IsZero())
}

func TestS3Storage_UsesBaseURLAndDefaultExtension(t *testing.T) {
	s := newTestStorage(t, "https://cdn.example.com/")

	upload, err := s.PresignImageUpload(context.Background(), "photo", "image/jpeg")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(upload.Key, ".jpg"))
	assert.Equal(t, "https://cdn.example.com/"+upload.Key, upload.FileURL)
}

func TestS3Storage_RejectsNonImages(t *testing.T) {
	s := newTestStorage(t, "")

	for _, contentType := range []string{"application/pdf", "text/html", ""} {
		_, err := s.PresignImageUpload(context.Background(), "file", contentType)
		assert.ErrorIs(t, err, ErrUnsupportedContentType, contentType)
	}
}
