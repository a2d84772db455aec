package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"portfolioAPI/internal/models"
	"portfolioAPI/internal/pagination"
)

// EntityStore is the CRUD contract for one table. Get and Update return
// nil, nil when no row matches. Update writes only the named JSON fields.
type EntityStore[T any] interface {
	List(ctx context.Context, limit, offset int, filter models.Filter, sort *pagination.Sort) (*models.ListResult[T], error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, record *T) (*T, error)
	Update(ctx context.Context, id string, record *T, fields []string) (*T, error)
	Delete(ctx context.Context, id string) (int64, error)
	DeleteAll(ctx context.Context, filter models.Filter) (int64, error)
}

// RelationStore finds records of one kind through a join table, seen from
// the owner side of the relation. GetIn returns nil, nil when not linked.
type RelationStore[R any] interface {
	ListFor(ctx context.Context, ownerID string, limit, offset int, filter models.Filter, sort *pagination.Sort) (*models.ListResult[R], error)
	GetIn(ctx context.Context, ownerID, relatedID string) (*R, error)
}

// LinkStore manipulates join rows directly. Find returns nil, nil when the
// pair is not linked.
type LinkStore interface {
	Find(ctx context.Context, ownerID, relatedID string) (*models.Link, error)
	Create(ctx context.Context, ownerID, relatedID string) (*models.Link, error)
	Destroy(ctx context.Context, ownerID, relatedID string) (int64, error)
}

type UserRepository interface {
	GetByGoogleID(ctx context.Context, googleID string) (*models.User, error)
}

type TablesRepository interface {
	CountTablesDB(ctx context.Context) (int, error)
}

// Repository groups every store the services need.
type Repository struct {
	Image EntityStore[models.Image]
	Group EntityStore[models.Group]
	Tag   EntityStore[models.Tag]

	ImageGroup EntityStore[models.ImageGroup]
	GroupTag   EntityStore[models.GroupTag]
	ImageTag   EntityStore[models.ImageTag]

	GroupsOfImage RelationStore[models.Group]
	TagsOfImage   RelationStore[models.Tag]
	ImagesOfGroup RelationStore[models.Image]
	TagsOfGroup   RelationStore[models.Tag]
	GroupsOfTag   RelationStore[models.Group]
	ImagesOfTag   RelationStore[models.Image]

	ImageGroupLinks LinkStore
	GroupImageLinks LinkStore
	GroupTagLinks   LinkStore
	TagGroupLinks   LinkStore
	ImageTagLinks   LinkStore
	TagImageLinks   LinkStore

	User   UserRepository
	Tables TablesRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Image: NewTableRepository[models.Image](db, ImagesTable),
		Group: NewTableRepository[models.Group](db, GroupsTable),
		Tag:   NewTableRepository[models.Tag](db, TagsTable),

		ImageGroup: NewTableRepository[models.ImageGroup](db, ImageGroupsTable),
		GroupTag:   NewTableRepository[models.GroupTag](db, GroupTagsTable),
		ImageTag:   NewTableRepository[models.ImageTag](db, ImageTagsTable),

		GroupsOfImage: NewRelationRepository[models.Group](db, GroupsTable, ImageGroupsByImage),
		TagsOfImage:   NewRelationRepository[models.Tag](db, TagsTable, ImageTagsByImage),
		ImagesOfGroup: NewRelationRepository[models.Image](db, ImagesTable, ImageGroupsByGroup),
		TagsOfGroup:   NewRelationRepository[models.Tag](db, TagsTable, GroupTagsByGroup),
		GroupsOfTag:   NewRelationRepository[models.Group](db, GroupsTable, GroupTagsByTag),
		ImagesOfTag:   NewRelationRepository[models.Image](db, ImagesTable, ImageTagsByTag),

		ImageGroupLinks: NewLinkRepository(db, ImageGroupsByImage),
		GroupImageLinks: NewLinkRepository(db, ImageGroupsByGroup),
		GroupTagLinks:   NewLinkRepository(db, GroupTagsByGroup),
		TagGroupLinks:   NewLinkRepository(db, GroupTagsByTag),
		ImageTagLinks:   NewLinkRepository(db, ImageTagsByImage),
		TagImageLinks:   NewLinkRepository(db, ImageTagsByTag),

		User:   NewUserRepository(db),
		Tables: NewTablesRepository(db),
	}
}
