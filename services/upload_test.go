package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rpupo63/project-hub-backend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectStore struct {
	uploaded    []string
	failAtIndex int // -1 = never fail
	calls       int
}

func (f *fakeObjectStore) UploadPDF(ctx context.Context, objectName, contentType string, content io.Reader, size int64) (string, error) {
	return f.upload("pdfs", objectName)
}

func (f *fakeObjectStore) UploadImage(ctx context.Context, objectName, contentType string, content io.Reader, size int64) (string, error) {
	return f.upload("images", objectName)
}

func (f *fakeObjectStore) upload(bucket, objectName string) (string, error) {
	if f.failAtIndex >= 0 && f.calls == f.failAtIndex {
		f.calls++
		return "", errors.New("bucket quota exceeded")
	}
	f.calls++
	f.uploaded = append(f.uploaded, objectName)
	return fmt.Sprintf("https://cdn.example.com/%s/%s", bucket, objectName), nil
}

func newTestUploadService(store *fakeObjectStore) *UploadService {
	svc := NewUploadService(store)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return svc
}

func TestUploadPDF(t *testing.T) {
	store := &fakeObjectStore{failAtIndex: -1}
	svc := newTestUploadService(store)

	url, err := svc.UploadPDF(context.Background(), "abstract.pdf", strings.NewReader("%PDF"), 4)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/pdfs/1700000000000-abstract.pdf", url)
}

func TestUploadPDFFailure(t *testing.T) {
	store := &fakeObjectStore{failAtIndex: 0}
	svc := newTestUploadService(store)

	_, err := svc.UploadPDF(context.Background(), "abstract.pdf", strings.NewReader("%PDF"), 4)
	require.Error(t, err)
	assert.True(t, errs.IsUploadError(err))
}

func TestUploadImagesSequential(t *testing.T) {
	store := &fakeObjectStore{failAtIndex: -1}
	svc := newTestUploadService(store)

	files := []ImageFile{
		{Name: "one.png", ContentType: "image/png", Content: strings.NewReader("1"), Size: 1},
		{Name: "two.png", ContentType: "image/png", Content: strings.NewReader("2"), Size: 1},
	}

	urls, err := svc.UploadImages(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, urls, 2)
	assert.Equal(t, []string{"1700000000000-one.png", "1700000000000-two.png"}, store.uploaded)
}

func TestUploadImagesTruncatesOnFailure(t *testing.T) {
	store := &fakeObjectStore{failAtIndex: 1}
	svc := newTestUploadService(store)

	files := []ImageFile{
		{Name: "one.png", ContentType: "image/png", Content: strings.NewReader("1"), Size: 1},
		{Name: "two.png", ContentType: "image/png", Content: strings.NewReader("2"), Size: 1},
		{Name: "three.png", ContentType: "image/png", Content: strings.NewReader("3"), Size: 1},
	}

	urls, err := svc.UploadImages(context.Background(), files)
	require.Error(t, err)
	assert.True(t, errs.IsUploadError(err))

	// The first upload stands; nothing after the failure was attempted
	require.Len(t, urls, 1)
	assert.Equal(t, []string{"1700000000000-one.png"}, store.uploaded)
	assert.Equal(t, 2, store.calls, "collection aborts at the first failure")
}
