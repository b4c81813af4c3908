package admin

import (
	"bookcatalog_server/api/middleware"
	"bookcatalog_server/lib"
	"bookcatalog_server/mocks"
	"bookcatalog_server/structs"
	"bookcatalog_server/structs/tables"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newRouter(svc *mocks.CatalogAdmin) chi.Router {
	auth := &mocks.Authenticator{}
	auth.On("Authenticate", mock.Anything, "staff").Return(&tables.User{ID: 1, IsActive: true, IsStaff: true}, nil)
	auth.On("Authenticate", mock.Anything, "reader").Return(&tables.User{ID: 2, IsActive: true}, nil)

	r := chi.NewRouter()
	mw := middleware.NewMiddleware(&structs.Config{}, gecho.NewDefaultLogger(), auth, nil)
	NewAdminRoutesManager(gecho.NewDefaultLogger(), svc, mw).RegisterRoutes(r)
	return r
}

func do(r http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAdminRequiresStaff(t *testing.T) {
	r := newRouter(&mocks.CatalogAdmin{})

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/api/admin/genres", `{"name":"Poetry"}`, "").Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodPost, "/api/admin/genres", `{"name":"Poetry"}`, "reader").Code)
}

func TestCreateGenreAndAuthor(t *testing.T) {
	svc := &mocks.CatalogAdmin{}
	r := newRouter(svc)

	svc.On("CreateGenre", mock.Anything, &structs.CreateGenreRequest{Name: "Poetry"}).Return(&tables.Genre{ID: 1, Name: "Poetry"}, nil)
	svc.On("CreateAuthor", mock.Anything, &structs.CreateAuthorRequest{FullName: "Mary Oliver"}).Return(&tables.Author{ID: 2, FullName: "Mary Oliver"}, nil)

	rec := do(r, http.MethodPost, "/api/admin/genres", `{"name":"Poetry"}`, "staff")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":1,"name":"Poetry"}`, rec.Body.String())

	rec = do(r, http.MethodPost, "/api/admin/authors", `{"full_name":"Mary Oliver"}`, "staff")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":2,"full_name":"Mary Oliver"}`, rec.Body.String())

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/api/admin/genres", `{}`, "staff").Code)
	svc.AssertExpectations(t)
}

func TestCreateBook(t *testing.T) {
	svc := &mocks.CatalogAdmin{}
	r := newRouter(svc)

	req := &structs.CreateBookRequest{Title: "Dune", GenreID: 1, AuthorID: 2, PublicationDate: "1965-08-01"}
	svc.On("CreateBook", mock.Anything, req).Return(&structs.BookSummary{ID: 3, Title: "Dune"}, nil)

	rec := do(r, http.MethodPost, "/api/admin/books", `{"title":"Dune","genre_id":1,"author_id":2,"publication_date":"1965-08-01"}`, "staff")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"Dune"`)

	rec = do(r, http.MethodPost, "/api/admin/books", `{"title":"Dune","genre_id":1,"author_id":2,"publication_date":"1965"}`, "staff")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertExpectations(t)
}

func TestDeleteBook(t *testing.T) {
	svc := &mocks.CatalogAdmin{}
	r := newRouter(svc)

	svc.On("DeleteBook", mock.Anything, int64(3)).Return(nil)
	svc.On("DeleteBook", mock.Anything, int64(4)).Return(lib.ErrNotFound)

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/api/admin/books/3", "", "staff").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/api/admin/books/4", "", "staff").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodDelete, "/api/admin/books/x", "", "staff").Code)
}
