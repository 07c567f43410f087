package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"secure-files-server/internal/apperror"
	"secure-files-server/internal/handler"
	"secure-files-server/internal/model"
	"secure-files-server/internal/security"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFileService struct{ mock.Mock }

func (m *MockFileService) UploadFile(ctx context.Context, principal *security.Claims, declaredName string, content []byte, description string, allowedRoles []string) (*model.SecureFile, error) {
	args := m.Called(ctx, principal, declaredName, content, description, allowedRoles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SecureFile), args.Error(1)
}

func (m *MockFileService) GetFile(ctx context.Context, principal *security.Claims, id int64) (*model.SecureFile, error) {
	args := m.Called(ctx, principal, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SecureFile), args.Error(1)
}

func (m *MockFileService) ListFiles(ctx context.Context, principal *security.Claims, limit, offset int) ([]model.SecureFile, error) {
	args := m.Called(ctx, principal, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SecureFile), args.Error(1)
}

func (m *MockFileService) UpdateFileRoles(ctx context.Context, principal *security.Claims, id int64, roles []string) error {
	return m.Called(ctx, principal, id, roles).Error(0)
}

func (m *MockFileService) UpdateFileDescription(ctx context.Context, principal *security.Claims, id int64, description string) error {
	return m.Called(ctx, principal, id, description).Error(0)
}

func (m *MockFileService) DeleteFile(ctx context.Context, principal *security.Claims, id int64) error {
	return m.Called(ctx, principal, id).Error(0)
}

func (m *MockFileService) OpenByID(ctx context.Context, principal *security.Claims, id int64, counted bool) (*model.SecureFile, io.ReadCloser, error) {
	args := m.Called(ctx, principal, id, counted)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.SecureFile), args.Get(1).(io.ReadCloser), args.Error(2)
}

func (m *MockFileService) OpenByStoredName(ctx context.Context, principal *security.Claims, storedName string, counted bool) (*model.SecureFile, io.ReadCloser, error) {
	args := m.Called(ctx, principal, storedName, counted)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.SecureFile), args.Get(1).(io.ReadCloser), args.Error(2)
}

func newDeliveryRouter(svc *MockFileService) *chi.Mux {
	h := handler.NewDeliveryHandler(svc)
	router := chi.NewRouter()
	router.Get("/api/files/{file_id}/download", h.DownloadFile)
	router.Get("/api/files/{file_id}/view", h.ViewFile)
	router.Get("/protected/{filename}", h.ServeProtected)
	return router
}

func requestWithClaims(method, target string, claims *security.Claims) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	ctx := context.WithValue(req.Context(), security.UserContextKey, claims)
	return req.WithContext(ctx)
}

func testFile() *model.SecureFile {
	return &model.SecureFile{
		ID:           5,
		StoredName:   "report_1a2b3c4d.pdf",
		OriginalName: "Годовой отчёт.pdf",
		SizeBytes:    4,
		MimeType:     "application/pdf",
	}
}

func TestDeliveryHandler_DownloadFile(t *testing.T) {
	svc := new(MockFileService)
	router := newDeliveryRouter(svc)

	claims := &security.Claims{UserUUID: "admin", IsAdmin: true}
	svc.On("OpenByID", mock.Anything, claims, int64(5), true).
		Return(testFile(), io.NopCloser(strings.NewReader("data")), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, requestWithClaims(http.MethodGet, "/api/files/5/download", claims))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "data", rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Годовой отчёт.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "4", rec.Header().Get("Content-Length"))
	assert.Equal(t, "no-cache, must-revalidate", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "0", rec.Header().Get("Expires"))
}

func TestDeliveryHandler_ViewFile(t *testing.T) {
	svc := new(MockFileService)
	router := newDeliveryRouter(svc)

	claims := &security.Claims{UserUUID: "admin", IsAdmin: true}
	svc.On("OpenByID", mock.Anything, claims, int64(5), false).
		Return(testFile(), io.NopCloser(strings.NewReader("data")), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, requestWithClaims(http.MethodGet, "/api/files/5/view", claims))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Disposition"), "inline;"))
	svc.AssertCalled(t, "OpenByID", mock.Anything, claims, int64(5), false)
}

func TestDeliveryHandler_ServeProtected(t *testing.T) {
	t.Run("attachment by default counts as download", func(t *testing.T) {
		svc := new(MockFileService)
		router := newDeliveryRouter(svc)

		claims := &security.Claims{UserUUID: "user-1", Roles: []string{"partner"}}
		svc.On("OpenByStoredName", mock.Anything, claims, "report_1a2b3c4d.pdf", true).
			Return(testFile(), io.NopCloser(strings.NewReader("data")), nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, requestWithClaims(http.MethodGet, "/protected/report_1a2b3c4d.pdf", claims))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Disposition"), "attachment;"))
	})

	t.Run("inline disposition skips the counter", func(t *testing.T) {
		svc := new(MockFileService)
		router := newDeliveryRouter(svc)

		claims := &security.Claims{UserUUID: "user-1", Roles: []string{"partner"}}
		svc.On("OpenByStoredName", mock.Anything, claims, "report_1a2b3c4d.pdf", false).
			Return(testFile(), io.NopCloser(strings.NewReader("data")), nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, requestWithClaims(http.MethodGet, "/protected/report_1a2b3c4d.pdf?disposition=inline", claims))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Disposition"), "inline;"))
	})
}

func TestDeliveryHandler_Errors(t *testing.T) {
	t.Run("forbidden", func(t *testing.T) {
		svc := new(MockFileService)
		router := newDeliveryRouter(svc)

		claims := &security.Claims{UserUUID: "user-1", Roles: []string{"subscriber"}}
		svc.On("OpenByID", mock.Anything, claims, int64(5), true).
			Return(nil, nil, apperror.ErrForbidden)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, requestWithClaims(http.MethodGet, "/api/files/5/download", claims))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(MockFileService)
		router := newDeliveryRouter(svc)

		claims := &security.Claims{UserUUID: "admin", IsAdmin: true}
		svc.On("OpenByID", mock.Anything, claims, int64(99), true).
			Return(nil, nil, apperror.ErrNotFound)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, requestWithClaims(http.MethodGet, "/api/files/99/download", claims))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unauthenticated without claims", func(t *testing.T) {
		svc := new(MockFileService)
		router := newDeliveryRouter(svc)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/files/5/download", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		svc.AssertNotCalled(t, "OpenByID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("bad file id", func(t *testing.T) {
		svc := new(MockFileService)
		router := newDeliveryRouter(svc)

		claims := &security.Claims{UserUUID: "admin", IsAdmin: true}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, requestWithClaims(http.MethodGet, "/api/files/abc/download", claims))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
