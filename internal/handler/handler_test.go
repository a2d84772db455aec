package handlers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"portfolioAPI/internal/apierror"
	"portfolioAPI/internal/models"
)

func TestHealth(t *testing.T) {
	t.Run("database up", func(t *testing.T) {
		api := newTestAPI(t)
		api.tables.On("CountTables", mock.Anything).Return(7, nil)

		rec := api.serve(httptest.NewRequest(http.MethodGet, "/health", nil), false)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, HealthResponse{Status: "ok", CountTables: 7}, decode[HealthResponse](t, rec))
	})

	t.Run("database down", func(t *testing.T) {
		api := newTestAPI(t)
		api.tables.On("CountTables", mock.Anything).Return(0, apierror.Internal("could not count tables", assert.AnError))

		rec := api.serve(httptest.NewRequest(http.MethodGet, "/health", nil), false)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "unavailable", decode[HealthResponse](t, rec).Status)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	api := newTestAPI(t)
	api.tables.On("CountTables", mock.Anything).Return(7, nil)

	api.serve(httptest.NewRequest(http.MethodGet, "/health", nil), false)
	rec := api.serve(httptest.NewRequest(http.MethodGet, "/metrics", nil), false)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `portfolio_http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func TestGetRole(t *testing.T) {
	api := newTestAPI(t)
	api.users.On("Role", mock.Anything, "google-1").Return(models.RoleAdmin, nil)
	api.users.On("Role", mock.Anything, "google-2").Return(models.RoleReadOnly, nil)

	rec := api.serve(httptest.NewRequest(http.MethodGet, "/api/v1/role/google-1", nil), false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, RoleResponse{Status: http.StatusOK, Role: models.RoleAdmin}, decode[RoleResponse](t, rec))

	rec = api.serve(httptest.NewRequest(http.MethodGet, "/api/v1/role/google-2", nil), false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.RoleReadOnly, decode[RoleResponse](t, rec).Role)
}

func TestGetCurrentUser(t *testing.T) {
	api := newTestAPI(t)

	rec := api.serve(httptest.NewRequest(http.MethodGet, "/api/v1/me", nil), true)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[MeResponse](t, rec)
	assert.Equal(t, testAdmin.GoogleID, body.User.GoogleID)
	assert.Equal(t, models.RoleAdmin, body.Role)

	rec = api.serve(httptest.NewRequest(http.MethodGet, "/api/v1/me", nil), false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func multipartBody(t *testing.T, field, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestUploadImage(t *testing.T) {
	api := newTestAPI(t)

	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0x01}, 600)...)
	var received []byte
	api.upload.On("Upload", mock.Anything, "sunset.png", "image/png", mock.Anything, int64(len(png))).
		Run(func(args mock.Arguments) {
			received, _ = io.ReadAll(args.Get(3).(io.Reader))
		}).
		Return(&models.Upload{ObjectName: "images/2026/10/abc.png", URL: "http://localhost:9000/portfolio/images/2026/10/abc.png"}, nil)

	body, contentType := multipartBody(t, "image", "sunset.png", png)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := api.serve(req, true)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "images/2026/10/abc.png", decode[models.Upload](t, rec).ObjectName)
	assert.Equal(t, png, received)
}

func TestUploadImage_Rejections(t *testing.T) {
	t.Run("missing field", func(t *testing.T) {
		api := newTestAPI(t)

		body, contentType := multipartBody(t, "file", "sunset.png", []byte("data"))
		req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := api.serve(req, true)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not multipart", func(t *testing.T) {
		api := newTestAPI(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", bytes.NewBufferString("{}"))
		req.Header.Set("Content-Type", "application/json")
		rec := api.serve(req, true)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("too large", func(t *testing.T) {
		api := newTestAPI(t)

		// the test config allows 1KiB plus 1MiB of form overhead
		body, contentType := multipartBody(t, "image", "huge.png", bytes.Repeat([]byte{0x01}, 2<<20))
		req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := api.serve(req, true)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDeleteUpload(t *testing.T) {
	api := newTestAPI(t)
	api.upload.On("Remove", mock.Anything, "images/2026/10/abc.png").Return(nil)

	rec := api.serve(httptest.NewRequest(http.MethodDelete, "/api/v1/upload/images/2026/10/abc.png", nil), true)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
