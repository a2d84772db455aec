package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"portfolioAPI/internal/apierror"
	"portfolioAPI/internal/bulk"
	"portfolioAPI/internal/models"
	"portfolioAPI/internal/pagination"
	"portfolioAPI/internal/repository"
)

// Messages reported for rejected links, both as Conflict errors and as
// bulk statuses.
const (
	StatusAlreadyLinked = "already linked"
	StatusNotLinked     = "not linked"
	StatusInvalidID     = "invalid id"
	StatusDuplicateID   = "duplicate id"
)

// Association manages the many-to-many links from one owner kind to one
// related kind. Every error it returns is an *apierror.Error.
type Association[R any] interface {
	// GetLink returns nil, nil when the pair is not linked.
	GetLink(ctx context.Context, ownerID, relatedID string) (*models.Link, error)
	GetRelated(ctx context.Context, ownerID, relatedID string) (*R, error)
	ListRelatedFor(ctx context.Context, ownerID string, limit, page int, filter models.Filter, sort *pagination.Sort) (*models.PaginationResponse[R], error)
	LinkOne(ctx context.Context, ownerID, relatedID string) (*models.Link, error)
	UnlinkOne(ctx context.Context, ownerID, relatedID string) (int64, error)
	LinkMany(ctx context.Context, ownerID string, relatedIDs []string) *bulk.Response
	UnlinkMany(ctx context.Context, ownerID string, relatedIDs []string) *bulk.Response
}

type associationService[R any] struct {
	related     repository.RelationStore[R]
	links       repository.LinkStore
	ownerKind   string
	relatedKind string
	log         *zap.Logger
}

func NewAssociationService[R any](related repository.RelationStore[R], links repository.LinkStore, ownerKind, relatedKind string, log *zap.Logger) Association[R] {
	return &associationService[R]{
		related:     related,
		links:       links,
		ownerKind:   ownerKind,
		relatedKind: relatedKind,
		log:         log.With(zap.String("owner", ownerKind), zap.String("related", relatedKind)),
	}
}

func (s *associationService[R]) GetLink(ctx context.Context, ownerID, relatedID string) (*models.Link, error) {
	link, err := s.links.Find(ctx, ownerID, relatedID)
	if err != nil {
		return nil, s.fail(err, "could not check link")
	}

	return link, nil
}

func (s *associationService[R]) GetRelated(ctx context.Context, ownerID, relatedID string) (*R, error) {
	record, err := s.related.GetIn(ctx, ownerID, relatedID)
	if err != nil {
		return nil, s.fail(err, fmt.Sprintf("could not get %s", s.relatedKind))
	}
	if record == nil {
		return nil, apierror.NotFound("%s, %s, is not linked to %s, %s.", s.relatedKind, relatedID, s.ownerKind, ownerID)
	}

	return record, nil
}

func (s *associationService[R]) ListRelatedFor(ctx context.Context, ownerID string, limit, page int, filter models.Filter, sort *pagination.Sort) (*models.PaginationResponse[R], error) {
	result, err := s.related.ListFor(ctx, ownerID, limit, pagination.Offset(limit, page), filter, sort)
	if err != nil {
		return nil, s.fail(err, fmt.Sprintf("could not list %s", s.relatedKind))
	}

	return envelope(result, limit, page), nil
}

// LinkOne checks for an existing link before creating one. A concurrent
// insert of the same pair is caught by the unique constraint and reported
// the same way.
func (s *associationService[R]) LinkOne(ctx context.Context, ownerID, relatedID string) (*models.Link, error) {
	existing, err := s.GetLink(ctx, ownerID, relatedID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apierror.Conflict(StatusAlreadyLinked)
	}

	link, err := s.links.Create(ctx, ownerID, relatedID)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apierror.Conflict(StatusAlreadyLinked)
		}
		if errors.Is(err, repository.ErrMissingReference) {
			return nil, apierror.NotFound("%s, %s, or %s, %s, does not exist.", s.ownerKind, ownerID, s.relatedKind, relatedID)
		}
		return nil, s.fail(err, "could not create link")
	}

	return link, nil
}

func (s *associationService[R]) UnlinkOne(ctx context.Context, ownerID, relatedID string) (int64, error) {
	count, err := s.links.Destroy(ctx, ownerID, relatedID)
	if err != nil {
		return 0, s.fail(err, "could not remove link")
	}
	if count == 0 {
		return 0, apierror.Conflict(StatusNotLinked)
	}

	return count, nil
}

func (s *associationService[R]) LinkMany(ctx context.Context, ownerID string, relatedIDs []string) *bulk.Response {
	return s.each(relatedIDs, func(id string) error {
		_, err := s.LinkOne(ctx, ownerID, id)
		return err
	})
}

func (s *associationService[R]) UnlinkMany(ctx context.Context, ownerID string, relatedIDs []string) *bulk.Response {
	return s.each(relatedIDs, func(id string) error {
		_, err := s.UnlinkOne(ctx, ownerID, id)
		return err
	})
}

// each runs op for every id in order and records one outcome per id. Blank
// ids and repeats of an id already seen in this batch are not attempted.
func (s *associationService[R]) each(ids []string, op func(id string) error) *bulk.Response {
	resp := bulk.New()
	seen := make(map[string]struct{}, len(ids))

	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			resp.AddError(id, StatusInvalidID)
			continue
		}
		if _, dup := seen[id]; dup {
			resp.AddError(id, StatusDuplicateID)
			continue
		}
		seen[id] = struct{}{}

		if err := op(id); err != nil {
			reason := apierror.Wrap(err, "internal error").Message
			s.log.Debug("bulk item failed", zap.String("id", id), zap.String("reason", reason))
			resp.AddError(id, reason)
			continue
		}
		resp.AddSuccess(id)
	}

	return resp
}

func (s *associationService[R]) fail(err error, defaultMessage string) *apierror.Error {
	apiErr := storeError(err, defaultMessage)
	if apiErr.Status >= 500 {
		s.log.Error(defaultMessage, zap.Error(err))
	}
	return apiErr
}
