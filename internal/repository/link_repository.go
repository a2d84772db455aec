package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"portfolioAPI/internal/models"
)

// LinkRepository reads and writes join rows from one side of a relation.
// The join tables carry UNIQUE (owner, related), so a concurrent duplicate
// Create fails with ErrDuplicate rather than inserting a second row.
type LinkRepository struct {
	db  *sqlx.DB
	rel Relation
}

func NewLinkRepository(db *sqlx.DB, rel Relation) *LinkRepository {
	return &LinkRepository{db: db, rel: rel}
}

func (r *LinkRepository) Find(ctx context.Context, ownerID, relatedID string) (*models.Link, error) {
	if !isID(ownerID) || !isID(relatedID) {
		return nil, nil
	}

	query := r.db.Rebind(fmt.Sprintf(`
		SELECT id, %s AS owner_id, %s AS related_id, created_at, updated_at
		FROM %s
		WHERE %s = ? AND %s = ?
		LIMIT 1`,
		r.rel.OwnerCol, r.rel.RelatedCol, r.rel.Join, r.rel.OwnerCol, r.rel.RelatedCol))

	var link models.Link
	if err := r.db.GetContext(ctx, &link, query, ownerID, relatedID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error finding %s row: %w", r.rel.Join, err)
	}

	return &link, nil
}

func (r *LinkRepository) Create(ctx context.Context, ownerID, relatedID string) (*models.Link, error) {
	if !isID(ownerID) || !isID(relatedID) {
		return nil, ErrMissingReference
	}

	now := time.Now().UTC()
	link := &models.Link{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		RelatedID: relatedID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := r.db.Rebind(fmt.Sprintf(`
		INSERT INTO %s (id, %s, %s, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		r.rel.Join, r.rel.OwnerCol, r.rel.RelatedCol))

	_, err := r.db.ExecContext(ctx, query, link.ID, link.OwnerID, link.RelatedID, link.CreatedAt, link.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("error creating %s row: %w", r.rel.Join, classify(err))
	}

	return link, nil
}

func (r *LinkRepository) Destroy(ctx context.Context, ownerID, relatedID string) (int64, error) {
	if !isID(ownerID) || !isID(relatedID) {
		return 0, nil
	}

	query := r.db.Rebind(fmt.Sprintf("DELETE FROM %s WHERE %s = ? AND %s = ?",
		r.rel.Join, r.rel.OwnerCol, r.rel.RelatedCol))

	result, err := r.db.ExecContext(ctx, query, ownerID, relatedID)
	if err != nil {
		return 0, fmt.Errorf("error deleting %s row: %w", r.rel.Join, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error checking deleted rows: %w", err)
	}

	return rowsAffected, nil
}
