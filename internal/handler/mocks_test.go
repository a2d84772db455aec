package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"portfolioAPI/internal/bulk"
	"portfolioAPI/internal/config"
	"portfolioAPI/internal/metrics"
	"portfolioAPI/internal/middleware"
	"portfolioAPI/internal/models"
	"portfolioAPI/internal/pagination"
	"portfolioAPI/internal/service"
)

type mockEntity[T any] struct {
	mock.Mock
}

func (m *mockEntity[T]) List(ctx context.Context, limit, page int, filter models.Filter, sort *pagination.Sort) (*models.PaginationResponse[T], error) {
	args := m.Called(ctx, limit, page, filter, sort)
	resp, _ := args.Get(0).(*models.PaginationResponse[T])
	return resp, args.Error(1)
}

func (m *mockEntity[T]) Get(ctx context.Context, id string) (*T, error) {
	args := m.Called(ctx, id)
	record, _ := args.Get(0).(*T)
	return record, args.Error(1)
}

func (m *mockEntity[T]) Create(ctx context.Context, record *T) (*T, error) {
	args := m.Called(ctx, record)
	created, _ := args.Get(0).(*T)
	return created, args.Error(1)
}

func (m *mockEntity[T]) Update(ctx context.Context, id string, patch models.Patch) (*T, error) {
	args := m.Called(ctx, id, patch)
	updated, _ := args.Get(0).(*T)
	return updated, args.Error(1)
}

func (m *mockEntity[T]) Delete(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockEntity[T]) DeleteAll(ctx context.Context, filter models.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type mockAssociation[R any] struct {
	mock.Mock
}

func (m *mockAssociation[R]) GetLink(ctx context.Context, ownerID, relatedID string) (*models.Link, error) {
	args := m.Called(ctx, ownerID, relatedID)
	link, _ := args.Get(0).(*models.Link)
	return link, args.Error(1)
}

func (m *mockAssociation[R]) GetRelated(ctx context.Context, ownerID, relatedID string) (*R, error) {
	args := m.Called(ctx, ownerID, relatedID)
	record, _ := args.Get(0).(*R)
	return record, args.Error(1)
}

func (m *mockAssociation[R]) ListRelatedFor(ctx context.Context, ownerID string, limit, page int, filter models.Filter, sort *pagination.Sort) (*models.PaginationResponse[R], error) {
	args := m.Called(ctx, ownerID, limit, page, filter, sort)
	resp, _ := args.Get(0).(*models.PaginationResponse[R])
	return resp, args.Error(1)
}

func (m *mockAssociation[R]) LinkOne(ctx context.Context, ownerID, relatedID string) (*models.Link, error) {
	args := m.Called(ctx, ownerID, relatedID)
	link, _ := args.Get(0).(*models.Link)
	return link, args.Error(1)
}

func (m *mockAssociation[R]) UnlinkOne(ctx context.Context, ownerID, relatedID string) (int64, error) {
	args := m.Called(ctx, ownerID, relatedID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAssociation[R]) LinkMany(ctx context.Context, ownerID string, relatedIDs []string) *bulk.Response {
	args := m.Called(ctx, ownerID, relatedIDs)
	return args.Get(0).(*bulk.Response)
}

func (m *mockAssociation[R]) UnlinkMany(ctx context.Context, ownerID string, relatedIDs []string) *bulk.Response {
	args := m.Called(ctx, ownerID, relatedIDs)
	return args.Get(0).(*bulk.Response)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) Role(ctx context.Context, googleID string) (string, error) {
	args := m.Called(ctx, googleID)
	return args.String(0), args.Error(1)
}

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) ValidateToken(tokenString string) (string, error) {
	args := m.Called(tokenString)
	return args.String(0), args.Error(1)
}

func (m *mockAuthService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	args := m.Called(ctx, tokenString)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

type mockUploadService struct {
	mock.Mock
}

func (m *mockUploadService) Upload(ctx context.Context, fileName, contentType string, file io.Reader, size int64) (*models.Upload, error) {
	args := m.Called(ctx, fileName, contentType, file, size)
	upload, _ := args.Get(0).(*models.Upload)
	return upload, args.Error(1)
}

func (m *mockUploadService) Remove(ctx context.Context, objectName string) error {
	return m.Called(ctx, objectName).Error(0)
}

type mockTablesService struct {
	mock.Mock
}

func (m *mockTablesService) CountTables(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

const adminToken = "admin-token"

var testAdmin = &models.User{Base: models.Base{ID: "user-1"}, GoogleID: "google-1", Email: "admin@example.com"}

// testAPI holds every mocked service behind a router built like the real one.
type testAPI struct {
	images      *mockEntity[models.Image]
	groups      *mockEntity[models.Group]
	tags        *mockEntity[models.Tag]
	imageGroups *mockEntity[models.ImageGroup]
	groupTags   *mockEntity[models.GroupTag]
	imageTags   *mockEntity[models.ImageTag]

	imageGroupLinks *mockAssociation[models.Group]
	imageTagLinks   *mockAssociation[models.Tag]
	groupImageLinks *mockAssociation[models.Image]
	groupTagLinks   *mockAssociation[models.Tag]
	tagGroupLinks   *mockAssociation[models.Group]
	tagImageLinks   *mockAssociation[models.Image]

	users  *mockUserService
	auth   *mockAuthService
	upload *mockUploadService
	tables *mockTablesService

	metrics *metrics.Metrics
	router  *mux.Router
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	api := &testAPI{
		images:          new(mockEntity[models.Image]),
		groups:          new(mockEntity[models.Group]),
		tags:            new(mockEntity[models.Tag]),
		imageGroups:     new(mockEntity[models.ImageGroup]),
		groupTags:       new(mockEntity[models.GroupTag]),
		imageTags:       new(mockEntity[models.ImageTag]),
		imageGroupLinks: new(mockAssociation[models.Group]),
		imageTagLinks:   new(mockAssociation[models.Tag]),
		groupImageLinks: new(mockAssociation[models.Image]),
		groupTagLinks:   new(mockAssociation[models.Tag]),
		tagGroupLinks:   new(mockAssociation[models.Group]),
		tagImageLinks:   new(mockAssociation[models.Image]),
		users:           new(mockUserService),
		auth:            new(mockAuthService),
		upload:          new(mockUploadService),
		tables:          new(mockTablesService),
		metrics:         metrics.New(),
	}

	svc := &service.Service{
		Image:      &service.ImageService{Entity: api.images, Groups: api.imageGroupLinks, Tags: api.imageTagLinks},
		Group:      &service.GroupService{Entity: api.groups, Images: api.groupImageLinks, Tags: api.groupTagLinks},
		Tag:        &service.TagService{Entity: api.tags, Groups: api.tagGroupLinks, Images: api.tagImageLinks},
		ImageGroup: api.imageGroups,
		GroupTag:   api.groupTags,
		ImageTag:   api.imageTags,
		User:       api.users,
		Auth:       api.auth,
		Upload:     api.upload,
		Tables:     api.tables,
	}
	cfg := &config.Config{MaxUploadSize: 1 << 10}

	api.auth.On("Authenticate", mock.Anything, adminToken).Return(testAdmin, nil).Maybe()

	noLimit := func(next http.Handler) http.Handler { return next }
	h := NewHandlers(svc, cfg, api.metrics, zap.NewNop())
	api.router = h.NewRouter(middleware.RequireAdmin(api.auth), noLimit)

	t.Cleanup(func() {
		api.images.AssertExpectations(t)
		api.groups.AssertExpectations(t)
		api.tags.AssertExpectations(t)
		api.imageGroups.AssertExpectations(t)
		api.imageGroupLinks.AssertExpectations(t)
		api.groupImageLinks.AssertExpectations(t)
		api.tagImageLinks.AssertExpectations(t)
		api.users.AssertExpectations(t)
		api.upload.AssertExpectations(t)
		api.tables.AssertExpectations(t)
	})

	return api
}

// serve runs req through the router, authenticated as admin when asAdmin is set.
func (a *testAPI) serve(req *http.Request, asAdmin bool) *httptest.ResponseRecorder {
	if asAdmin {
		req.Header.Set("Authorization", "Bearer "+adminToken)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}
