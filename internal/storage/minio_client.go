package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"portfolioAPI/internal/config"
)

// ObjectPrefix is the key prefix of every uploaded image.
const ObjectPrefix = "images/"

type Storage interface {
	UploadImage(ctx context.Context, fileName, contentType string, file io.Reader, size int64) (string, string, error)
	DeleteImage(ctx context.Context, objectName string) error
}

type MinIOClient struct {
	client *minio.Client
	config *config.Config
}

// NewMinIOClient connects to MinIO and creates the bucket when it is missing.
func NewMinIOClient(ctx context.Context, cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.MinIO.BucketName)
	if err != nil {
		return nil, fmt.Errorf("error checking bucket %s: %w", cfg.MinIO.BucketName, err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.MinIO.BucketName, minio.MakeBucketOptions{Region: cfg.MinIO.Region})
		if err != nil {
			return nil, fmt.Errorf("error creating bucket %s: %w", cfg.MinIO.BucketName, err)
		}
	}

	return &MinIOClient{client: client, config: cfg}, nil
}

// ObjectName builds a dated, collision free key for fileName.
func ObjectName(fileName, contentType string, now time.Time) string {
	fileExt := strings.ToLower(filepath.Ext(fileName))
	if fileExt == "" {
		if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
			fileExt = exts[0]
		} else {
			fileExt = ".jpg"
		}
	}

	return fmt.Sprintf("%s%d/%02d/%s%s",
		ObjectPrefix,
		now.Year(),
		now.Month(),
		uuid.New().String(),
		fileExt)
}

// PublicURL is where clients can fetch objectName.
func PublicURL(cfg *config.Config, objectName string) string {
	return fmt.Sprintf("%s/%s/%s",
		strings.TrimSuffix(cfg.MinIO.PublicURL, "/"),
		cfg.MinIO.BucketName,
		objectName)
}

func (m *MinIOClient) UploadImage(ctx context.Context, fileName, contentType string, file io.Reader, size int64) (string, string, error) {
	now := time.Now()
	objectName := ObjectName(fileName, contentType, now)

	_, err := m.client.PutObject(ctx, m.config.MinIO.BucketName, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": filepath.Base(fileName),
				"uploaded-at":       now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", "", fmt.Errorf("error uploading to MinIO: %w", err)
	}

	return objectName, PublicURL(m.config, objectName), nil
}

func (m *MinIOClient) DeleteImage(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.config.MinIO.BucketName, objectName,
		minio.RemoveObjectOptions{
			GovernanceBypass: true,
		})
	if err != nil {
		return fmt.Errorf("error deleting from MinIO: %w", err)
	}
	return nil
}
