package repository

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"portfolioAPI/internal/models"
	"portfolioAPI/internal/pagination"
)

// postgres error codes
const (
	uniqueViolation     pq.ErrorCode = "23505"
	foreignKeyViolation pq.ErrorCode = "23503"
	invalidTextInput    pq.ErrorCode = "22P02"
)

var (
	// ErrDuplicate is returned when a write hits a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
	// ErrMissingReference is returned when a write points at a row that does not exist.
	ErrMissingReference = errors.New("referenced record does not exist")
	// ErrEmptyFilter guards DeleteAll against wiping a whole table.
	ErrEmptyFilter = errors.New("filter matches no known field")
	// ErrInvalidInput is returned when postgres cannot cast a value to its column type.
	ErrInvalidInput = errors.New("invalid input value")
)

// filterDateLayouts are tried in order for timestamp filters.
var filterDateLayouts = []string{time.RFC3339Nano, "2006-01-02"}

func classify(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%w: %w", ErrDuplicate, err)
		case foreignKeyViolation:
			return fmt.Errorf("%w: %w", ErrMissingReference, err)
		case invalidTextInput:
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}
	return err
}

// isID reports whether id can be compared against a uuid column without
// postgres rejecting the statement.
func isID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func qualify(alias, column string) string {
	if alias == "" {
		return column
	}
	return alias + "." + column
}

// conditions turns filter into equality conditions on known fields. Keys are
// visited in sorted order so the generated SQL is stable. ok is false when a
// value cannot be cast to its column type, in which case no row can match.
func conditions(table Table, alias string, filter models.Filter) (conds []string, args []any, ok bool) {
	keys := make([]string, 0, len(filter))
	for k := range filter {
		if _, known := table.Fields[k]; known {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	conds = make([]string, 0, len(keys))
	args = make([]any, 0, len(keys))
	for _, k := range keys {
		value, valid := filterValue(table.Kinds[k], filter[k])
		if !valid {
			return nil, nil, false
		}
		conds = append(conds, qualify(alias, table.Fields[k])+" = ?")
		args = append(args, value)
	}
	return conds, args, true
}

// filterValue parses raw as kind.
func filterValue(kind Kind, raw string) (any, bool) {
	switch kind {
	case KindUUID:
		return raw, isID(raw)
	case KindInt:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		return n, err == nil
	case KindTime:
		for _, layout := range filterDateLayouts {
			if t, err := time.Parse(layout, strings.TrimSpace(raw)); err == nil {
				return t, true
			}
		}
		return nil, false
	default:
		return raw, true
	}
}

func where(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

// orderBy resolves the requested sort against the table, falling back to
// its default for unknown fields. It returns the clause and the sort applied.
func orderBy(table Table, alias string, requested *pagination.Sort) (string, pagination.Sort) {
	applied := table.DefaultSort
	if requested != nil {
		_, known := table.Fields[requested.Field]
		if known && slices.Contains(pagination.Directions, requested.Direction) {
			applied = *requested
		}
	}

	column := table.Fields[applied.Field]
	// id breaks ties so pages never overlap
	return fmt.Sprintf(" ORDER BY %s %s, %s ASC",
		qualify(alias, column), applied.Direction, qualify(alias, "id")), applied
}
