package v1

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"rentora/internal/app"
	"rentora/internal/core/apperror"
	appctx "rentora/internal/core/context"
	"rentora/internal/core/id"
	"rentora/internal/domain/auth"
	"rentora/internal/infrastructure/http/v1/dto"
	"rentora/internal/infrastructure/http/v1/middleware"
	"rentora/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, withAuth bool) (*gin.Engine, *auth.JWTService) {
	t.Helper()

	metrics, err := middleware.NewMetrics(nil, nil)
	require.NoError(t, err)

	cfg := RouterConfig{
		Services:      app.NewMemoryServices(app.Options{}),
		StorageDriver: "memory",
		Logger:        logger.NewFromCore(zapcore.NewNopCore()),
		Metrics:       metrics,
	}

	var jwtSvc *auth.JWTService
	if withAuth {
		jwtSvc = auth.NewJWTService(auth.DefaultJWTConfig("test-secret"))
		cfg.JWTValidator = jwtSvc
	}
	return NewRouter(cfg), jwtSvc
}

func do(t *testing.T, r http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

type cityBody struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CountryID string `json:"countryId"`
}

func TestRouter_CityLifecycle(t *testing.T) {
	r, _ := newTestRouter(t, false)
	country := id.New().String()

	w := do(t, r, http.MethodPost, "/api/v1/cities", dto.CityRequest{Name: "Springfield", CountryID: id.MustParse(country)}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[cityBody](t, w)
	assert.Equal(t, "Springfield", created.Name)
	require.NotEmpty(t, created.ID)

	w = do(t, r, http.MethodGet, "/api/v1/cities/"+created.ID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created.ID, decode[cityBody](t, w).ID)

	w = do(t, r, http.MethodPost, "/api/v1/cities", dto.CityRequest{Name: "Springfield", CountryID: id.MustParse(country)}, "")
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, apperror.CodeAlreadyExists, decode[dto.ErrorResponse](t, w).Code)

	w = do(t, r, http.MethodPut, "/api/v1/cities/"+created.ID, dto.CityRequest{Name: "Shelbyville", CountryID: id.MustParse(country)}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Shelbyville", decode[cityBody](t, w).Name)

	w = do(t, r, http.MethodDelete, "/api/v1/cities/"+created.ID, nil, "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodGet, "/api/v1/cities/"+created.ID, nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperror.CodeNotFound, decode[dto.ErrorResponse](t, w).Code)

	w = do(t, r, http.MethodDelete, "/api/v1/cities/"+created.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_ListFilters(t *testing.T) {
	r, _ := newTestRouter(t, false)
	country := id.New()

	var ids []string
	for _, name := range []string{"Springfield", "Ogdenville", "North Haverbrook"} {
		w := do(t, r, http.MethodPost, "/api/v1/cities", dto.CityRequest{Name: name, CountryID: country}, "")
		require.Equal(t, http.StatusCreated, w.Code)
		ids = append(ids, decode[cityBody](t, w).ID)
	}

	tests := []struct {
		name      string
		query     string
		wantCount int
	}{
		{name: "all", query: "", wantCount: 3},
		{name: "ids with a missing one", query: "?ids=" + ids[0] + "," + id.New().String(), wantCount: 1},
		{name: "filter", query: "?filter=" + url.QueryEscape(`[{"field":"name","operator":"contains","value":"ville"}]`), wantCount: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodGet, "/api/v1/cities"+tt.query, nil, "")
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, tt.wantCount, decode[dto.ListResponse[cityBody]](t, w).Count)
		})
	}
}

func TestRouter_ErrorMapping(t *testing.T) {
	r, _ := newTestRouter(t, false)

	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
		wantCode   string
	}{
		{
			name:       "malformed id",
			method:     http.MethodGet,
			path:       "/api/v1/listings/not-an-id",
			wantStatus: http.StatusBadRequest,
			wantCode:   apperror.CodeValidation,
		},
		{
			name:       "short listing title",
			method:     http.MethodPost,
			path:       "/api/v1/listings",
			body:       map[string]any{"title": "ab", "description": "cozy flat", "price": "100", "occupancyId": id.New()},
			wantStatus: http.StatusBadRequest,
			wantCode:   apperror.CodeValidation,
		},
		{
			name:       "bad filter json",
			method:     http.MethodGet,
			path:       "/api/v1/cities?filter=" + url.QueryEscape("{"),
			wantStatus: http.StatusBadRequest,
			wantCode:   apperror.CodeValidation,
		},
		{
			name:       "listing amenity update",
			method:     http.MethodPut,
			path:       "/api/v1/listing-amenities/" + id.New().String(),
			body:       dto.ListingAmenityRequest{ListingID: id.New(), AmenityID: id.New()},
			wantStatus: http.StatusMethodNotAllowed,
			wantCode:   apperror.CodeUnsupportedOperation,
		},
		{
			name:       "amenity in missing category",
			method:     http.MethodPost,
			path:       "/api/v1/amenities",
			body:       dto.AmenityRequest{AmenityName: "Wifi", CategoryID: id.New()},
			wantStatus: http.StatusNotFound,
			wantCode:   apperror.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, tt.method, tt.path, tt.body, "")
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Equal(t, tt.wantCode, decode[dto.ErrorResponse](t, w).Code)
		})
	}
}

func TestRouter_RejectsBadFilterRegardlessOfRows(t *testing.T) {
	filters := []struct {
		name  string
		value string
	}{
		{"unknown column", `[{"field":"nope","operator":"eq","value":"x"}]`},
		{"unknown operator", `[{"field":"name","operator":"like","value":"x"}]`},
		{"in without list", `[{"field":"name","operator":"in","value":"x"}]`},
	}

	for _, rows := range []int{0, 1} {
		r, _ := newTestRouter(t, false)
		for i := 0; i < rows; i++ {
			w := do(t, r, http.MethodPost, "/api/v1/cities", dto.CityRequest{Name: "Springfield", CountryID: id.New()}, "")
			require.Equal(t, http.StatusCreated, w.Code)
		}

		for _, f := range filters {
			t.Run(f.name, func(t *testing.T) {
				w := do(t, r, http.MethodGet, "/api/v1/cities?filter="+url.QueryEscape(f.value), nil, "")
				require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

				body := decode[dto.ErrorResponse](t, w)
				assert.Equal(t, apperror.CodeValidation, body.Code)
				assert.Equal(t, "filter", body.Details["field"])
			})
		}
	}
}

func TestRouter_CategoryDeleteGuard(t *testing.T) {
	r, _ := newTestRouter(t, false)

	w := do(t, r, http.MethodPost, "/api/v1/amenity-categories", dto.CategoryRequest{CategoryName: "Kitchen"}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	categoryID := decode[map[string]any](t, w)["id"].(string)

	w = do(t, r, http.MethodPost, "/api/v1/amenities", dto.AmenityRequest{AmenityName: "Oven", CategoryID: id.MustParse(categoryID)}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	amenityID := decode[map[string]any](t, w)["id"].(string)

	w = do(t, r, http.MethodGet, "/api/v1/amenities?categoryId="+categoryID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[dto.ListResponse[map[string]any]](t, w)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, map[string]any{"id": amenityID, "amenityName": "Oven", "categoryId": categoryID}, list.Items[0])

	w = do(t, r, http.MethodGet, "/api/v1/amenities/"+amenityID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, categoryID, decode[map[string]any](t, w)["categoryId"])

	w = do(t, r, http.MethodDelete, "/api/v1/amenity-categories/"+categoryID, nil, "")
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, apperror.CodeNotDeletable, decode[dto.ErrorResponse](t, w).Code)

	w = do(t, r, http.MethodDelete, "/api/v1/amenities/"+amenityID, nil, "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodDelete, "/api/v1/amenity-categories/"+categoryID, nil, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRouter_EmailRender(t *testing.T) {
	r, _ := newTestRouter(t, false)

	w := do(t, r, http.MethodPost, "/api/v1/email-templates",
		dto.EmailTemplateRequest{Subject: "Booking {{ code }}", Body: "Hi {{name}}, see you {{ date }}"}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	templateID := decode[map[string]any](t, w)["id"].(string)

	w = do(t, r, http.MethodPost, "/api/v1/email-templates/"+templateID+"/render", dto.SendEmailRequest{
		Values:   map[string]string{"code": "R-1", "name": "Marge"},
		Sender:   "noreply@rentora.test",
		Receiver: "marge@example.com",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	msg := decode[map[string]string](t, w)
	assert.Equal(t, "Booking R-1", msg["subject"])
	assert.Equal(t, "Hi Marge, see you {{ date }}", msg["body"])
	assert.Equal(t, "marge@example.com", msg["receiver"])

	// no mailer configured
	w = do(t, r, http.MethodPost, "/api/v1/email-templates/"+templateID+"/send", dto.SendEmailRequest{
		Sender:   "noreply@rentora.test",
		Receiver: "marge@example.com",
	}, "")
	require.Equal(t, http.StatusMethodNotAllowed, w.Code, w.Body.String())
	assert.Equal(t, apperror.CodeUnsupportedOperation, decode[dto.ErrorResponse](t, w).Code)
}

func TestRouter_WritesRequireToken(t *testing.T) {
	r, jwtSvc := newTestRouter(t, true)

	token, _, err := jwtSvc.GenerateAccessToken(&appctx.UserContext{UserID: "admin", IsAdmin: true})
	require.NoError(t, err)

	body := dto.CategoryRequest{CategoryName: "Outdoor"}

	tests := []struct {
		name       string
		method     string
		token      string
		body       any
		wantStatus int
	}{
		{name: "read without token", method: http.MethodGet, wantStatus: http.StatusOK},
		{name: "write without token", method: http.MethodPost, body: body, wantStatus: http.StatusUnauthorized},
		{name: "write with garbage token", method: http.MethodPost, token: "garbage", body: body, wantStatus: http.StatusUnauthorized},
		{name: "write with token", method: http.MethodPost, token: token, body: body, wantStatus: http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, tt.method, "/api/v1/amenity-categories", tt.body, tt.token)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	r, _ := newTestRouter(t, false)

	w := do(t, r, http.MethodGet, "/health/ready", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "memory")

	w = do(t, r, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `rentora_http_requests_total{method="GET",route="/health/ready",status="200"} 1`)
}

func TestRouter_TraceHeaders(t *testing.T) {
	r, _ := newTestRouter(t, false)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get(middleware.HeaderRequestID))
	assert.Equal(t, "req-42", w.Header().Get(middleware.HeaderTraceID))
}
