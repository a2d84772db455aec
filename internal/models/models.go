package models

import (
	"encoding/json"
	"time"

	"portfolioAPI/internal/pagination"
)

// Base carries the columns every table shares.
type Base struct {
	ID        string    `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// GetBase lets generic stores reach the shared columns of any record.
func (b *Base) GetBase() *Base {
	return b
}

// Record is implemented by pointers to every persisted type.
type Record interface {
	GetBase() *Base
}

type Image struct {
	Base
	ThumbnailURL string     `json:"thumbnailUrl" db:"thumbnail_url" validate:"required,url"`
	ImageURL     string     `json:"imageUrl" db:"image_url" validate:"required,url"`
	Title        string     `json:"title" db:"title" validate:"required"`
	Description  string     `json:"description" db:"description" validate:"max=1234"`
	Location     string     `json:"location" db:"location"`
	Width        int        `json:"width" db:"width" validate:"gte=0"`
	Height       int        `json:"height" db:"height" validate:"gte=0"`
	CaptureDate  *time.Time `json:"captureDate,omitempty" db:"capture_date"`
}

type Group struct {
	Base
	ThumbnailURL string `json:"thumbnailUrl" db:"thumbnail_url" validate:"required,url"`
	ImageURL     string `json:"imageUrl" db:"image_url" validate:"required,url"`
	Title        string `json:"title" db:"title" validate:"required"`
	Description  string `json:"description" db:"description" validate:"max=1234"`
}

type Tag struct {
	Base
	Title string `json:"title" db:"title" validate:"required"`
}

// ImageGroup, GroupTag and ImageTag are join rows. They only exist to say
// that two records are linked.
type ImageGroup struct {
	Base
	ImageID string `json:"imageId" db:"image_id"`
	GroupID string `json:"groupId" db:"group_id"`
}

type GroupTag struct {
	Base
	GroupID string `json:"groupId" db:"group_id"`
	TagID   string `json:"tagId" db:"tag_id"`
}

type ImageTag struct {
	Base
	ImageID string `json:"imageId" db:"image_id"`
	TagID   string `json:"tagId" db:"tag_id"`
}

// Link is a join row seen from one side of the relation, whichever
// table it lives in.
type Link struct {
	ID        string    `json:"id" db:"id"`
	OwnerID   string    `json:"ownerId" db:"owner_id"`
	RelatedID string    `json:"relatedId" db:"related_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type User struct {
	Base
	GoogleID  string `json:"googleId" db:"google_id"`
	Email     string `json:"email" db:"email"`
	FirstName string `json:"firstName" db:"first_name"`
	LastName  string `json:"lastName" db:"last_name"`
}

// Filter holds equality conditions keyed by JSON field name. Stores ignore
// keys they do not know.
type Filter map[string]string

// Patch is a partial update body. Only the keys present are written.
type Patch map[string]json.RawMessage

// ListResult is what a store hands back for one page of rows.
type ListResult[T any] struct {
	Count int
	Rows  []T
	Sort  *pagination.Sort
}

// PaginationResponse is the envelope returned by every list operation.
type PaginationResponse[T any] struct {
	Limit      int              `json:"limit"`
	Page       int              `json:"page"`
	Sort       *pagination.Sort `json:"sort,omitempty"`
	TotalItems int              `json:"totalItems"`
	PageCount  int              `json:"pageCount"`
	Rows       []T              `json:"rows"`
}

// Role values returned by the role lookup.
const (
	RoleAdmin    = "admin"
	RoleReadOnly = "read-only"
)

// Upload describes an image file stored in object storage.
type Upload struct {
	ObjectName string `json:"objectName"`
	URL        string `json:"url"`
}
