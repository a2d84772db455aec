package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"portfolioAPI/internal/apierror"
	"portfolioAPI/internal/config"
	"portfolioAPI/internal/models"
	"portfolioAPI/internal/storage"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadService stores image files whose urls are then used as imageUrl or
// thumbnailUrl of images and groups.
type UploadService interface {
	Upload(ctx context.Context, fileName, contentType string, file io.Reader, size int64) (*models.Upload, error)
	Remove(ctx context.Context, objectName string) error
}

type uploadService struct {
	storage storage.Storage
	cfg     *config.Config
	log     *zap.Logger
}

func NewUploadService(storage storage.Storage, cfg *config.Config, log *zap.Logger) UploadService {
	return &uploadService{
		storage: storage,
		cfg:     cfg,
		log:     log,
	}
}

func (s *uploadService) Upload(ctx context.Context, fileName, contentType string, file io.Reader, size int64) (*models.Upload, error) {
	if size <= 0 {
		return nil, apierror.Validation("file is empty")
	}
	if size > s.cfg.MaxUploadSize {
		return nil, apierror.Validation(fmt.Sprintf("file exceeds %d bytes", s.cfg.MaxUploadSize))
	}
	if !allowedImageTypes[contentType] {
		return nil, apierror.Validation(fmt.Sprintf("unsupported content type %q", contentType))
	}

	objectName, url, err := s.storage.UploadImage(ctx, fileName, contentType, file, size)
	if err != nil {
		s.log.Error("upload failed", zap.String("file", fileName), zap.Error(err))
		return nil, apierror.Internal("could not store file", err)
	}

	s.log.Info("image uploaded", zap.String("object", objectName), zap.Int64("size", size))
	return &models.Upload{ObjectName: objectName, URL: url}, nil
}

func (s *uploadService) Remove(ctx context.Context, objectName string) error {
	if !strings.HasPrefix(objectName, storage.ObjectPrefix) || strings.Contains(objectName, "..") {
		return apierror.Validation("invalid object name")
	}

	if err := s.storage.DeleteImage(ctx, objectName); err != nil {
		s.log.Error("remove failed", zap.String("object", objectName), zap.Error(err))
		return apierror.Internal("could not remove file", err)
	}

	return nil
}
