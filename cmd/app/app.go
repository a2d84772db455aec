package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"portfolioAPI/internal/config"
	"portfolioAPI/internal/database"
	"portfolioAPI/internal/repository"
	"portfolioAPI/internal/service"
	"portfolioAPI/internal/storage"
)

// App connects the database and object storage and builds the services
// on top of them.
func App(ctx context.Context, cfg *config.Config, log *zap.Logger) (*database.DB, *service.Service, error) {
	db, err := database.ConnectDB(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	minioClient, err := storage.NewMinIOClient(ctx, cfg)
	if err != nil {
		db.CloseDB()
		return nil, nil, fmt.Errorf("init MinIO: %w", err)
	}
	log.Info("object storage ready",
		zap.String("endpoint", cfg.MinIO.Endpoint),
		zap.String("bucket", cfg.MinIO.BucketName))

	repo := repository.NewRepository(db.DB)
	services := service.NewService(repo, cfg, minioClient, log)

	return db, services, nil
}
