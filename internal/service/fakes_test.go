package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"portfolioAPI/internal/models"
	"portfolioAPI/internal/pagination"
	"portfolioAPI/internal/repository"
)

var nopLog = zap.NewNop()

var defaultTestSort = pagination.Sort{Field: "createdAt", Direction: pagination.Ascending}

// memStore keeps rows in insertion order. err, when set, fails every call.
type memStore[T any, PT interface {
	*T
	models.Record
}] struct {
	rows []*T
	err  error
	// lastFields records the field names of the last Update.
	lastFields []string
}

func (m *memStore[T, PT]) List(_ context.Context, limit, offset int, _ models.Filter, sort *pagination.Sort) (*models.ListResult[T], error) {
	if m.err != nil {
		return nil, m.err
	}

	applied := defaultTestSort
	if sort != nil {
		applied = *sort
	}

	rows := []T{}
	for i := offset; i < len(m.rows) && i < offset+limit; i++ {
		rows = append(rows, *m.rows[i])
	}
	return &models.ListResult[T]{Count: len(m.rows), Rows: rows, Sort: &applied}, nil
}

func (m *memStore[T, PT]) Get(_ context.Context, id string) (*T, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, row := range m.rows {
		if PT(row).GetBase().ID == id {
			return row, nil
		}
	}
	return nil, nil
}

func (m *memStore[T, PT]) Create(_ context.Context, record *T) (*T, error) {
	if m.err != nil {
		return nil, m.err
	}
	base := PT(record).GetBase()
	base.ID = uuid.New().String()
	base.CreatedAt = time.Now()
	base.UpdatedAt = base.CreatedAt
	m.rows = append(m.rows, record)
	return record, nil
}

func (m *memStore[T, PT]) Update(_ context.Context, id string, record *T, fields []string) (*T, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.lastFields = fields
	for i, row := range m.rows {
		if PT(row).GetBase().ID == id {
			PT(record).GetBase().ID = id
			m.rows[i] = record
			return record, nil
		}
	}
	return nil, nil
}

func (m *memStore[T, PT]) Delete(_ context.Context, id string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	for i, row := range m.rows {
		if PT(row).GetBase().ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *memStore[T, PT]) DeleteAll(_ context.Context, filter models.Filter) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	if len(filter) == 0 {
		return 0, repository.ErrEmptyFilter
	}
	count := int64(len(m.rows))
	m.rows = nil
	return count, nil
}

// memLinks behaves like a join table with a unique (owner, related) pair.
type memLinks struct {
	pairs map[[2]string]*models.Link
	order [][2]string
}

func newMemLinks() *memLinks {
	return &memLinks{pairs: map[[2]string]*models.Link{}}
}

func (m *memLinks) Find(_ context.Context, ownerID, relatedID string) (*models.Link, error) {
	return m.pairs[[2]string{ownerID, relatedID}], nil
}

func (m *memLinks) Create(_ context.Context, ownerID, relatedID string) (*models.Link, error) {
	key := [2]string{ownerID, relatedID}
	if _, ok := m.pairs[key]; ok {
		return nil, repository.ErrDuplicate
	}
	link := &models.Link{ID: uuid.New().String(), OwnerID: ownerID, RelatedID: relatedID}
	m.pairs[key] = link
	m.order = append(m.order, key)
	return link, nil
}

func (m *memLinks) Destroy(_ context.Context, ownerID, relatedID string) (int64, error) {
	key := [2]string{ownerID, relatedID}
	if _, ok := m.pairs[key]; !ok {
		return 0, nil
	}
	delete(m.pairs, key)
	return 1, nil
}

// memRelation resolves related rows through memLinks.
type memRelation[R any, PR interface {
	*R
	models.Record
}] struct {
	links   *memLinks
	related *memStore[R, PR]
}

func (m *memRelation[R, PR]) ListFor(ctx context.Context, ownerID string, limit, offset int, _ models.Filter, _ *pagination.Sort) (*models.ListResult[R], error) {
	all := []R{}
	for _, key := range m.links.order {
		if _, ok := m.links.pairs[key]; !ok || key[0] != ownerID {
			continue
		}
		row, _ := m.related.Get(ctx, key[1])
		if row != nil {
			all = append(all, *row)
		}
	}

	rows := []R{}
	for i := offset; i < len(all) && i < offset+limit; i++ {
		rows = append(rows, all[i])
	}
	sort := defaultTestSort
	return &models.ListResult[R]{Count: len(all), Rows: rows, Sort: &sort}, nil
}

func (m *memRelation[R, PR]) GetIn(ctx context.Context, ownerID, relatedID string) (*R, error) {
	if link, _ := m.links.Find(ctx, ownerID, relatedID); link == nil {
		return nil, nil
	}
	return m.related.Get(ctx, relatedID)
}

type mockLinkStore struct {
	mock.Mock
}

func (m *mockLinkStore) Find(ctx context.Context, ownerID, relatedID string) (*models.Link, error) {
	args := m.Called(ctx, ownerID, relatedID)
	link, _ := args.Get(0).(*models.Link)
	return link, args.Error(1)
}

func (m *mockLinkStore) Create(ctx context.Context, ownerID, relatedID string) (*models.Link, error) {
	args := m.Called(ctx, ownerID, relatedID)
	link, _ := args.Get(0).(*models.Link)
	return link, args.Error(1)
}

func (m *mockLinkStore) Destroy(ctx context.Context, ownerID, relatedID string) (int64, error) {
	args := m.Called(ctx, ownerID, relatedID)
	return args.Get(0).(int64), args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) GetByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	args := m.Called(ctx, googleID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) UploadImage(ctx context.Context, fileName, contentType string, file io.Reader, size int64) (string, string, error) {
	args := m.Called(ctx, fileName, contentType, file, size)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockStorage) DeleteImage(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}
