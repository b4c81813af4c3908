package health

import (
	"bookcatalog_server/services"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

type fakeHealth struct {
	dbErr    error
	cacheErr error
}

func (f fakeHealth) GetServerHealthStatus() services.ServerHealthStatus {
	return services.ServerHealthStatus{ServiceAlive: true}
}

func (f fakeHealth) GetDatabaseHealthStatus(context.Context) (services.DependencyHealthStatus, error) {
	return services.DependencyHealthStatus{Connected: f.dbErr == nil}, f.dbErr
}

func (f fakeHealth) GetCacheHealthStatus(context.Context) (services.DependencyHealthStatus, error) {
	return services.DependencyHealthStatus{Connected: f.cacheErr == nil}, f.cacheErr
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthRoutes(t *testing.T) {
	r := chi.NewRouter()
	NewHealthRoutesManager(fakeHealth{cacheErr: errors.New("disabled")}).RegisterRoutes(r)

	rec := get(r, "/health/server")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"service_alive":true`)

	assert.Equal(t, http.StatusOK, get(r, "/health/database").Code)
	assert.Equal(t, http.StatusInternalServerError, get(r, "/health/cache").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r := chi.NewRouter()
	NewHealthRoutesManager(fakeHealth{}).RegisterRoutes(r)
	// registering twice must not panic
	NewHealthRoutesManager(fakeHealth{}).RegisterRoutes(chi.NewRouter())

	HttpRequests.WithLabelValues("GET", "/api/books/home", "200").Inc()

	rec := get(r, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bookcatalog_http_requests_total")
}
