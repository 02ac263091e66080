package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/raksinkh/equipment-management/internal/config"
)

// ObjectStore stores a blob and returns the URL it can be fetched from.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

type S3Store struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

var _ ObjectStore = (*S3Store)(nil)

// NewS3Store targets any S3-compatible endpoint (AWS, MinIO, R2).
func NewS3Store(cfg config.S3Config) *S3Store {
	creds := credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")

	client := s3.New(s3.Options{
		Region:       cfg.Region,
		Credentials:  creds,
		BaseEndpoint: endpoint(cfg.Endpoint),
		UsePathStyle: cfg.Endpoint != "",
	})

	return &S3Store{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}
}

func endpoint(raw string) *string {
	if raw == "" {
		return nil
	}
	return aws.String(raw)
}

func (s *S3Store) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
		CacheControl:  aws.String("public, max-age=31536000"),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	return s.URL(key), nil
}

func (s *S3Store) URL(key string) string {
	return s.publicURL + "/" + key
}

// EquipmentImageKey is unique per upload so cached URLs never go stale.
func EquipmentImageKey(equipmentID string) string {
	return fmt.Sprintf("equipment/%s/%s.webp", equipmentID, uuid.NewString())
}
