package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"portfolioAPI/internal/models"
	"portfolioAPI/internal/pagination"
)

const relatedAlias = "r"

// RelationRepository lists rows of table that are linked to an owner through
// the join table named by rel.
type RelationRepository[R any] struct {
	db    *sqlx.DB
	table Table
	rel   Relation
}

func NewRelationRepository[R any](db *sqlx.DB, table Table, rel Relation) *RelationRepository[R] {
	return &RelationRepository[R]{db: db, table: table, rel: rel}
}

// from renders the join shared by every query and the owner condition.
func (r *RelationRepository[R]) from() string {
	return fmt.Sprintf(" FROM %s %s JOIN %s j ON j.%s = %s.id WHERE j.%s = ?",
		r.table.Name, relatedAlias, r.rel.Join, r.rel.RelatedCol, relatedAlias, r.rel.OwnerCol)
}

func (r *RelationRepository[R]) ListFor(ctx context.Context, ownerID string, limit, offset int, filter models.Filter, sort *pagination.Sort) (*models.ListResult[R], error) {
	order, applied := orderBy(r.table, relatedAlias, sort)
	if !isID(ownerID) {
		return &models.ListResult[R]{Rows: []R{}, Sort: &applied}, nil
	}

	conds, filterArgs, ok := conditions(r.table, relatedAlias, filter)
	if !ok {
		return &models.ListResult[R]{Rows: []R{}, Sort: &applied}, nil
	}
	args := append([]any{ownerID}, filterArgs...)

	base := r.from()
	for _, c := range conds {
		base += " AND " + c
	}

	var count int
	if err := r.db.GetContext(ctx, &count, r.db.Rebind("SELECT COUNT(*)"+base), args...); err != nil {
		return nil, fmt.Errorf("error counting %s linked through %s: %w", r.table.Name, r.rel.Join, classify(err))
	}

	query := r.db.Rebind("SELECT " + relatedAlias + ".*" + base + order + " LIMIT ? OFFSET ?")

	rows := []R{}
	if err := r.db.SelectContext(ctx, &rows, query, append(args, limit, offset)...); err != nil {
		return nil, fmt.Errorf("error listing %s linked through %s: %w", r.table.Name, r.rel.Join, classify(err))
	}

	return &models.ListResult[R]{Count: count, Rows: rows, Sort: &applied}, nil
}

func (r *RelationRepository[R]) GetIn(ctx context.Context, ownerID, relatedID string) (*R, error) {
	if !isID(ownerID) || !isID(relatedID) {
		return nil, nil
	}

	query := r.db.Rebind("SELECT " + relatedAlias + ".*" + r.from() + " AND " + relatedAlias + ".id = ? LIMIT 1")

	var record R
	if err := r.db.GetContext(ctx, &record, query, ownerID, relatedID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting %s linked through %s: %w", r.table.Name, r.rel.Join, err)
	}

	return &record, nil
}
