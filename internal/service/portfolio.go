package service

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"portfolioAPI/internal/models"
	"portfolioAPI/internal/repository"
)

const (
	KindImage = "Image"
	KindGroup = "Group"
	KindTag   = "Tag"
)

type ImageService struct {
	Entity[models.Image]
	Groups Association[models.Group]
	Tags   Association[models.Tag]
}

type GroupService struct {
	Entity[models.Group]
	Images Association[models.Image]
	Tags   Association[models.Tag]
}

type TagService struct {
	Entity[models.Tag]
	Groups Association[models.Group]
	Images Association[models.Image]
}

func NewImageService(rep *repository.Repository, validate *validator.Validate, log *zap.Logger) *ImageService {
	return &ImageService{
		Entity: NewEntityService(rep.Image, KindImage, validate, log),
		Groups: NewAssociationService(rep.GroupsOfImage, rep.ImageGroupLinks, KindImage, KindGroup, log),
		Tags:   NewAssociationService(rep.TagsOfImage, rep.ImageTagLinks, KindImage, KindTag, log),
	}
}

func NewGroupService(rep *repository.Repository, validate *validator.Validate, log *zap.Logger) *GroupService {
	return &GroupService{
		Entity: NewEntityService(rep.Group, KindGroup, validate, log),
		Images: NewAssociationService(rep.ImagesOfGroup, rep.GroupImageLinks, KindGroup, KindImage, log),
		Tags:   NewAssociationService(rep.TagsOfGroup, rep.GroupTagLinks, KindGroup, KindTag, log),
	}
}

func NewTagService(rep *repository.Repository, validate *validator.Validate, log *zap.Logger) *TagService {
	return &TagService{
		Entity: NewEntityService(rep.Tag, KindTag, validate, log),
		Groups: NewAssociationService(rep.GroupsOfTag, rep.TagGroupLinks, KindTag, KindGroup, log),
		Images: NewAssociationService(rep.ImagesOfTag, rep.TagImageLinks, KindTag, KindImage, log),
	}
}
