package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	minioSDK "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
)

// Config carries the object-store connection settings. PublicBaseURL is
// the externally reachable endpoint used to build retrieval URLs; when
// empty it is derived from Endpoint and UseSSL.
type Config struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	UseSSL        bool
	PublicBaseURL string
	PDFBucket     string
	ImageBucket   string
}

// Client wraps the MinIO SDK with the two logical buckets of the catalog:
// one for PDF documents, one for images.
type Client struct {
	mc          *minioSDK.Client
	pdfBucket   string
	imageBucket string
	publicBase  string
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	mc, err := minioSDK.New(cfg.Endpoint, &minioSDK.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to object store: %w", err)
	}

	publicBase := cfg.PublicBaseURL
	if publicBase == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicBase = fmt.Sprintf("%s://%s", scheme, cfg.Endpoint)
	}

	client := &Client{
		mc:          mc,
		pdfBucket:   cfg.PDFBucket,
		imageBucket: cfg.ImageBucket,
		publicBase:  strings.TrimSuffix(publicBase, "/"),
	}

	for _, bucket := range []string{cfg.PDFBucket, cfg.ImageBucket} {
		if err := client.ensureBucket(ctx, bucket); err != nil {
			return nil, err
		}
	}

	return client, nil
}

func (c *Client) ensureBucket(ctx context.Context, bucket string) error {
	exists, err := c.mc.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("checking bucket %q: %w", bucket, err)
	}
	if !exists {
		if err := c.mc.MakeBucket(ctx, bucket, minioSDK.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("creating bucket %q: %w", bucket, err)
		}
		log.Info().Str("bucket", bucket).Msg("created object store bucket")
	}
	return nil
}

// UploadPDF stores a document in the PDF bucket and returns its public URL.
func (c *Client) UploadPDF(ctx context.Context, objectName, contentType string, content io.Reader, size int64) (string, error) {
	return c.put(ctx, c.pdfBucket, objectName, contentType, content, size)
}

// UploadImage stores an image in the image bucket and returns its public URL.
func (c *Client) UploadImage(ctx context.Context, objectName, contentType string, content io.Reader, size int64) (string, error) {
	return c.put(ctx, c.imageBucket, objectName, contentType, content, size)
}

func (c *Client) put(ctx context.Context, bucket, objectName, contentType string, content io.Reader, size int64) (string, error) {
	if strings.TrimSpace(objectName) == "" {
		return "", fmt.Errorf("object name cannot be empty")
	}

	_, err := c.mc.PutObject(ctx, bucket, objectName, content, size, minioSDK.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return c.publicURL(bucket, objectName), nil
}

func (c *Client) publicURL(bucket, objectName string) string {
	return fmt.Sprintf("%s/%s/%s", c.publicBase, bucket, objectName)
}
