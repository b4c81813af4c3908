package debug

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

type fakeClearer struct {
	cleared int
	err     error
}

func (f fakeClearer) ClearBookCaches(context.Context) (int, error) {
	return f.cleared, f.err
}

func post(r http.Handler) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/debug/cache/clear", nil))
	return rec
}

func TestClearCache(t *testing.T) {
	r := chi.NewRouter()
	NewDebugRoutesManager(gecho.NewDefaultLogger(), fakeClearer{cleared: 4}, true).RegisterRoutes(r)

	rec := post(r)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"deleted_keys":4`)
}

func TestClearCacheFailure(t *testing.T) {
	r := chi.NewRouter()
	NewDebugRoutesManager(gecho.NewDefaultLogger(), fakeClearer{err: errors.New("scan failed")}, true).RegisterRoutes(r)

	assert.Equal(t, http.StatusInternalServerError, post(r).Code)
}

func TestDebugRoutesDisabledInProduction(t *testing.T) {
	r := chi.NewRouter()
	NewDebugRoutesManager(gecho.NewDefaultLogger(), fakeClearer{}, false).RegisterRoutes(r)

	assert.Equal(t, http.StatusNotFound, post(r).Code)
}
