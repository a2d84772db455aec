package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"portfolioAPI/internal/pagination"
)

// Table describes how a record type maps onto SQL.
type Table struct {
	Name string
	// Columns are the writable columns, without id and timestamps.
	Columns []string
	// Fields maps JSON field names to columns. Only these fields can be
	// filtered or sorted on.
	Fields map[string]string
	// Kinds types the non-text fields so filter values can be checked
	// before they reach postgres. Missing entries are text.
	Kinds       map[string]Kind
	DefaultSort pagination.Sort
}

// Kind is the column type a filter value has to parse as.
type Kind int

const (
	KindText Kind = iota
	KindUUID
	KindInt
	KindTime
)

// Relation is one direction of a join table.
type Relation struct {
	Join       string
	OwnerCol   string
	RelatedCol string
}

var defaultSort = pagination.Sort{Field: "createdAt", Direction: pagination.Ascending}

var baseFields = map[string]string{
	"id":        "id",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

var baseKinds = map[string]Kind{
	"id":        KindUUID,
	"createdAt": KindTime,
	"updatedAt": KindTime,
}

func kinds(extra map[string]Kind) map[string]Kind {
	out := make(map[string]Kind, len(baseKinds)+len(extra))
	for k, v := range baseKinds {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func fields(extra map[string]string) map[string]string {
	out := make(map[string]string, len(baseFields)+len(extra))
	for k, v := range baseFields {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

var (
	ImagesTable = Table{
		Name: "images",
		Columns: []string{
			"thumbnail_url", "image_url", "title", "description",
			"location", "width", "height", "capture_date",
		},
		Fields: fields(map[string]string{
			"thumbnailUrl": "thumbnail_url",
			"imageUrl":     "image_url",
			"title":        "title",
			"description":  "description",
			"location":     "location",
			"width":        "width",
			"height":       "height",
			"captureDate":  "capture_date",
		}),
		Kinds: kinds(map[string]Kind{
			"width":       KindInt,
			"height":      KindInt,
			"captureDate": KindTime,
		}),
		DefaultSort: defaultSort,
	}

	GroupsTable = Table{
		Name:    "groups",
		Columns: []string{"thumbnail_url", "image_url", "title", "description"},
		Fields: fields(map[string]string{
			"thumbnailUrl": "thumbnail_url",
			"imageUrl":     "image_url",
			"title":        "title",
			"description":  "description",
		}),
		Kinds:       kinds(nil),
		DefaultSort: defaultSort,
	}

	TagsTable = Table{
		Name:        "tags",
		Columns:     []string{"title"},
		Fields:      fields(map[string]string{"title": "title"}),
		Kinds:       kinds(nil),
		DefaultSort: defaultSort,
	}

	ImageGroupsTable = Table{
		Name:        "image_groups",
		Columns:     []string{"image_id", "group_id"},
		Fields:      fields(map[string]string{"imageId": "image_id", "groupId": "group_id"}),
		Kinds:       kinds(map[string]Kind{"imageId": KindUUID, "groupId": KindUUID}),
		DefaultSort: defaultSort,
	}

	GroupTagsTable = Table{
		Name:        "group_tags",
		Columns:     []string{"group_id", "tag_id"},
		Fields:      fields(map[string]string{"groupId": "group_id", "tagId": "tag_id"}),
		Kinds:       kinds(map[string]Kind{"groupId": KindUUID, "tagId": KindUUID}),
		DefaultSort: defaultSort,
	}

	ImageTagsTable = Table{
		Name:        "image_tags",
		Columns:     []string{"image_id", "tag_id"},
		Fields:      fields(map[string]string{"imageId": "image_id", "tagId": "tag_id"}),
		Kinds:       kinds(map[string]Kind{"imageId": KindUUID, "tagId": KindUUID}),
		DefaultSort: defaultSort,
	}
)

var (
	ImageGroupsByImage = Relation{Join: "image_groups", OwnerCol: "image_id", RelatedCol: "group_id"}
	ImageGroupsByGroup = Relation{Join: "image_groups", OwnerCol: "group_id", RelatedCol: "image_id"}
	GroupTagsByGroup   = Relation{Join: "group_tags", OwnerCol: "group_id", RelatedCol: "tag_id"}
	GroupTagsByTag     = Relation{Join: "group_tags", OwnerCol: "tag_id", RelatedCol: "group_id"}
	ImageTagsByImage   = Relation{Join: "image_tags", OwnerCol: "image_id", RelatedCol: "tag_id"}
	ImageTagsByTag     = Relation{Join: "image_tags", OwnerCol: "tag_id", RelatedCol: "image_id"}
)

type tablesRepository struct {
	db *sqlx.DB
}

func NewTablesRepository(db *sqlx.DB) TablesRepository {
	return &tablesRepository{db: db}
}

func (r *tablesRepository) CountTablesDB(ctx context.Context) (int, error) {
	var count int

	err := r.db.GetContext(ctx, &count, `
			SELECT COUNT(*)
			FROM information_schema.tables
			WHERE table_schema = 'public'
		`)

	if err != nil {
		return 0, fmt.Errorf("error counting database tables: %w", err)
	}

	return count, nil
}
