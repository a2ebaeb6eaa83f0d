package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rpupo63/project-hub-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ObjectStore is the blob-storage surface the upload service depends on.
// *storage.Client satisfies it.
type ObjectStore interface {
	UploadPDF(ctx context.Context, objectName, contentType string, content io.Reader, size int64) (string, error)
	UploadImage(ctx context.Context, objectName, contentType string, content io.Reader, size int64) (string, error)
}

// ImageFile is one image submitted for upload.
type ImageFile struct {
	Name        string
	ContentType string
	Content     io.Reader
	Size        int64
}

// UploadService pushes attachments to the object store before the record
// payload is built. Object names are timestamp-prefixed by the caller
// side of the store contract; the store does not dedupe.
type UploadService struct {
	store  ObjectStore
	logger zerolog.Logger

	// overridable for deterministic object names in tests
	now func() time.Time
}

func NewUploadService(store ObjectStore) *UploadService {
	return &UploadService{
		store:  store,
		logger: log.With().Str("serviceName", "uploadService").Logger(),
		now:    time.Now,
	}
}

// UploadPDF stores a single document and returns its public URL.
func (s *UploadService) UploadPDF(ctx context.Context, filename string, content io.Reader, size int64) (string, error) {
	objectName := s.objectName(filename)
	url, err := s.store.UploadPDF(ctx, objectName, "application/pdf", content, size)
	if err != nil {
		s.logger.Error().Err(err).Str("object", objectName).Msg("pdf upload failed")
		return "", errs.NewUploadError("pdf", err)
	}
	return url, nil
}

// UploadImages stores images one at a time, in order. A failure aborts
// collection of the remaining URLs but leaves already-uploaded objects in
// place: the truncated URL list is returned alongside the error and the
// record write proceeds with it.
func (s *UploadService) UploadImages(ctx context.Context, files []ImageFile) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, file := range files {
		objectName := s.objectName(file.Name)
		url, err := s.store.UploadImage(ctx, objectName, file.ContentType, file.Content, file.Size)
		if err != nil {
			s.logger.Error().Err(err).Str("object", objectName).Msg("image upload failed")
			return urls, errs.NewUploadError("image", err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *UploadService) objectName(filename string) string {
	return fmt.Sprintf("%d-%s", s.now().UnixMilli(), filename)
}
