package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"portfolioAPI/internal/models"
	"portfolioAPI/internal/pagination"
)

// TableRepository is the sqlx store for one table. PT is the pointer type of
// T and gives the store access to the shared id and timestamp columns.
type TableRepository[T any, PT interface {
	*T
	models.Record
}] struct {
	db    *sqlx.DB
	table Table

	insertQuery string
}

func NewTableRepository[T any, PT interface {
	*T
	models.Record
}](db *sqlx.DB, table Table) *TableRepository[T, PT] {
	insertCols := append([]string{"id", "created_at", "updated_at"}, table.Columns...)
	named := make([]string, len(insertCols))
	for i, c := range insertCols {
		named[i] = ":" + c
	}

	return &TableRepository[T, PT]{
		db:    db,
		table: table,
		insertQuery: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			table.Name, strings.Join(insertCols, ", "), strings.Join(named, ", ")),
	}
}

func (r *TableRepository[T, PT]) List(ctx context.Context, limit, offset int, filter models.Filter, sort *pagination.Sort) (*models.ListResult[T], error) {
	order, applied := orderBy(r.table, "", sort)

	conds, args, ok := conditions(r.table, "", filter)
	if !ok {
		return &models.ListResult[T]{Rows: []T{}, Sort: &applied}, nil
	}
	whereSQL := where(conds)

	var count int
	countQuery := r.db.Rebind("SELECT COUNT(*) FROM " + r.table.Name + whereSQL)
	if err := r.db.GetContext(ctx, &count, countQuery, args...); err != nil {
		return nil, fmt.Errorf("error counting %s: %w", r.table.Name, classify(err))
	}

	query := r.db.Rebind("SELECT * FROM " + r.table.Name + whereSQL + order + " LIMIT ? OFFSET ?")

	rows := []T{}
	if err := r.db.SelectContext(ctx, &rows, query, append(args, limit, offset)...); err != nil {
		return nil, fmt.Errorf("error listing %s: %w", r.table.Name, classify(err))
	}

	return &models.ListResult[T]{Count: count, Rows: rows, Sort: &applied}, nil
}

func (r *TableRepository[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	if !isID(id) {
		return nil, nil
	}

	var record T
	query := r.db.Rebind("SELECT * FROM " + r.table.Name + " WHERE id = ?")
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting %s row: %w", r.table.Name, err)
	}

	return &record, nil
}

func (r *TableRepository[T, PT]) Create(ctx context.Context, record *T) (*T, error) {
	base := PT(record).GetBase()
	base.ID = uuid.New().String()

	now := time.Now().UTC()
	base.CreatedAt = now
	base.UpdatedAt = now

	if _, err := r.db.NamedExecContext(ctx, r.insertQuery, record); err != nil {
		return nil, fmt.Errorf("error creating %s row: %w", r.table.Name, classify(err))
	}

	return record, nil
}

// Update writes only the columns behind the given JSON field names, plus
// updated_at. Unknown and read-only fields are skipped.
func (r *TableRepository[T, PT]) Update(ctx context.Context, id string, record *T, fields []string) (*T, error) {
	if !isID(id) {
		return nil, nil
	}

	base := PT(record).GetBase()
	base.ID = id
	base.UpdatedAt = time.Now().UTC()

	result, err := r.db.NamedExecContext(ctx, r.updateQuery(fields), record)
	if err != nil {
		return nil, fmt.Errorf("error updating %s row: %w", r.table.Name, classify(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("error checking updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return nil, nil
	}

	return r.Get(ctx, id)
}

func (r *TableRepository[T, PT]) updateQuery(fields []string) string {
	wanted := make(map[string]bool, len(fields))
	for _, f := range fields {
		if col, ok := r.table.Fields[f]; ok {
			wanted[col] = true
		}
	}

	// table.Columns fixes the order and excludes id and timestamps
	sets := make([]string, 0, len(wanted)+1)
	for _, c := range r.table.Columns {
		if wanted[c] {
			sets = append(sets, c+" = :"+c)
		}
	}
	sets = append(sets, "updated_at = :updated_at")

	return fmt.Sprintf("UPDATE %s SET %s WHERE id = :id", r.table.Name, strings.Join(sets, ", "))
}

func (r *TableRepository[T, PT]) Delete(ctx context.Context, id string) (int64, error) {
	if !isID(id) {
		return 0, nil
	}

	query := r.db.Rebind("DELETE FROM " + r.table.Name + " WHERE id = ?")
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("error deleting %s row: %w", r.table.Name, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error checking deleted rows: %w", err)
	}

	return rowsAffected, nil
}

func (r *TableRepository[T, PT]) DeleteAll(ctx context.Context, filter models.Filter) (int64, error) {
	conds, args, ok := conditions(r.table, "", filter)
	if !ok {
		return 0, nil
	}
	if len(conds) == 0 {
		return 0, ErrEmptyFilter
	}

	query := r.db.Rebind("DELETE FROM " + r.table.Name + where(conds))
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("error deleting %s rows: %w", r.table.Name, classify(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error checking deleted rows: %w", err)
	}

	return rowsAffected, nil
}
