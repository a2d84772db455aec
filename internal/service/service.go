package service

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"portfolioAPI/internal/config"
	"portfolioAPI/internal/models"
	"portfolioAPI/internal/repository"
	"portfolioAPI/internal/storage"
)

type Service struct {
	Image *ImageService
	Group *GroupService
	Tag   *TagService

	// join rows are listed and fetched, never mutated directly
	ImageGroup Entity[models.ImageGroup]
	GroupTag   Entity[models.GroupTag]
	ImageTag   Entity[models.ImageTag]

	User   UserService
	Auth   AuthService
	Upload UploadService
	Tables TablesService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, log *zap.Logger) *Service {
	validate := NewValidator()

	return &Service{
		Image: NewImageService(rep, validate, log),
		Group: NewGroupService(rep, validate, log),
		Tag:   NewTagService(rep, validate, log),

		ImageGroup: NewEntityService(rep.ImageGroup, "ImageGroup", validate, log),
		GroupTag:   NewEntityService(rep.GroupTag, "GroupTag", validate, log),
		ImageTag:   NewEntityService(rep.ImageTag, "ImageTag", validate, log),

		User:   NewUserService(rep.User),
		Auth:   NewAuthService(rep.User, cfg, log),
		Upload: NewUploadService(storage, cfg, log),
		Tables: NewTablesService(rep.Tables),
	}
}

// NewValidator reports field errors by their JSON names.
func NewValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}
