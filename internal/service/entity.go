package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"portfolioAPI/internal/apierror"
	"portfolioAPI/internal/models"
	"portfolioAPI/internal/pagination"
	"portfolioAPI/internal/repository"
)

// Entity is paginated CRUD over one kind of record. Every error it returns
// is an *apierror.Error.
type Entity[T any] interface {
	List(ctx context.Context, limit, page int, filter models.Filter, sort *pagination.Sort) (*models.PaginationResponse[T], error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, record *T) (*T, error)
	// Update changes only the fields present in patch.
	Update(ctx context.Context, id string, patch models.Patch) (*T, error)
	Delete(ctx context.Context, id string) (int64, error)
	DeleteAll(ctx context.Context, filter models.Filter) (int64, error)
}

type entityService[T any] struct {
	store    repository.EntityStore[T]
	kind     string
	validate *validator.Validate
	log      *zap.Logger
}

// NewEntityService wraps store. kind names the record in error messages.
func NewEntityService[T any](store repository.EntityStore[T], kind string, validate *validator.Validate, log *zap.Logger) Entity[T] {
	return &entityService[T]{
		store:    store,
		kind:     kind,
		validate: validate,
		log:      log.With(zap.String("entity", kind)),
	}
}

func (s *entityService[T]) List(ctx context.Context, limit, page int, filter models.Filter, sort *pagination.Sort) (*models.PaginationResponse[T], error) {
	result, err := s.store.List(ctx, limit, pagination.Offset(limit, page), filter, sort)
	if err != nil {
		return nil, s.fail(err, fmt.Sprintf("could not list %s", s.kind))
	}

	return envelope(result, limit, page), nil
}

func (s *entityService[T]) Get(ctx context.Context, id string) (*T, error) {
	record, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.fail(err, fmt.Sprintf("could not get %s", s.kind))
	}
	if record == nil {
		return nil, s.notFound(id)
	}

	return record, nil
}

func (s *entityService[T]) Create(ctx context.Context, record *T) (*T, error) {
	if err := s.check(record); err != nil {
		return nil, err
	}

	created, err := s.store.Create(ctx, record)
	if err != nil {
		return nil, s.fail(err, fmt.Sprintf("could not create %s", s.kind))
	}

	return created, nil
}

func (s *entityService[T]) Update(ctx context.Context, id string, patch models.Patch) (*T, error) {
	if len(patch) == 0 {
		return nil, apierror.Validation(fmt.Sprintf("%s body is required", s.kind))
	}

	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.fail(err, fmt.Sprintf("could not get %s", s.kind))
	}
	if existing == nil {
		return nil, s.notFound(id)
	}

	merged := *existing
	fields, err := applyPatch(&merged, patch)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, apierror.Validation(fmt.Sprintf("%s body has no writable fields", s.kind))
	}
	if err := s.check(&merged); err != nil {
		return nil, err
	}

	updated, err := s.store.Update(ctx, id, &merged, fields)
	if err != nil {
		return nil, s.fail(err, fmt.Sprintf("could not update %s", s.kind))
	}
	if updated == nil {
		return nil, s.notFound(id)
	}

	return updated, nil
}

func (s *entityService[T]) Delete(ctx context.Context, id string) (int64, error) {
	count, err := s.store.Delete(ctx, id)
	if err != nil {
		return 0, s.fail(err, fmt.Sprintf("could not delete %s", s.kind))
	}

	return count, nil
}

func (s *entityService[T]) DeleteAll(ctx context.Context, filter models.Filter) (int64, error) {
	if len(filter) == 0 {
		return 0, apierror.Validation("at least one filter field is required")
	}

	count, err := s.store.DeleteAll(ctx, filter)
	if err != nil {
		return 0, s.fail(err, fmt.Sprintf("could not delete %s", s.kind))
	}

	s.log.Info("deleted by filter", zap.Any("filter", filter), zap.Int64("count", count))
	return count, nil
}

func (s *entityService[T]) notFound(id string) *apierror.Error {
	return apierror.NotFound("%s, %s, deleted or does not exist.", s.kind, id)
}

func (s *entityService[T]) check(record *T) error {
	if record == nil {
		return apierror.Validation(fmt.Sprintf("%s body is required", s.kind))
	}
	if err := s.validate.Struct(record); err != nil {
		return validationError(err)
	}
	return nil
}

func (s *entityService[T]) fail(err error, defaultMessage string) *apierror.Error {
	apiErr := storeError(err, defaultMessage)
	if apiErr.Status >= 500 {
		s.log.Error(defaultMessage, zap.Error(err))
	}
	return apiErr
}

// envelope reshapes one page from a store into the list response.
func envelope[T any](result *models.ListResult[T], limit, page int) *models.PaginationResponse[T] {
	return &models.PaginationResponse[T]{
		Limit:      limit,
		Page:       page,
		Sort:       result.Sort,
		TotalItems: result.Count,
		PageCount:  len(result.Rows),
		Rows:       result.Rows,
	}
}

// readOnlyFields are managed by the store and ignored in patches.
var readOnlyFields = map[string]bool{"id": true, "createdAt": true, "updatedAt": true}

// applyPatch decodes patch over dst and returns the written field names in
// sorted order. Keys dst does not have are rejected.
func applyPatch(dst any, patch models.Patch) ([]string, error) {
	writable := make(map[string]json.RawMessage, len(patch))
	for k, v := range patch {
		if !readOnlyFields[k] {
			writable[k] = v
		}
	}

	raw, err := json.Marshal(writable)
	if err != nil {
		return nil, apierror.Validation("invalid JSON: " + err.Error())
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return nil, apierror.Validation("invalid JSON: " + err.Error())
	}

	fields := make([]string, 0, len(writable))
	for k := range writable {
		fields = append(fields, k)
	}
	slices.Sort(fields)
	return fields, nil
}

// storeError maps repository sentinels onto statuses and wraps everything
// else as internal.
func storeError(err error, defaultMessage string) *apierror.Error {
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return apierror.Conflict("record already exists")
	case errors.Is(err, repository.ErrMissingReference):
		return apierror.NotFound("referenced record does not exist")
	case errors.Is(err, repository.ErrEmptyFilter):
		return apierror.Validation("at least one known filter field is required")
	case errors.Is(err, repository.ErrInvalidInput):
		return apierror.Validation("invalid value for field type")
	}
	return apierror.Wrap(err, defaultMessage)
}

func validationError(err error) *apierror.Error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apierror.Validation(err.Error())
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return apierror.Validation(strings.Join(parts, "; "))
}
