package admin

import (
	"bookcatalog_server/handling"
	"bookcatalog_server/lib"
	"bookcatalog_server/structs"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (ar *AdminRoutesManager) CreateGenre(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CreateGenreRequest](r)
	if err != nil {
		handling.WriteServiceError(w, ar.logger, err, "create genre")
		return
	}

	genre, err := ar.adminService.CreateGenre(r.Context(), body)
	if err != nil {
		handling.WriteServiceError(w, ar.logger, err, "create genre")
		return
	}

	lib.WriteJSON(w, http.StatusCreated, genre)
}

func (ar *AdminRoutesManager) CreateAuthor(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CreateAuthorRequest](r)
	if err != nil {
		handling.WriteServiceError(w, ar.logger, err, "create author")
		return
	}

	author, err := ar.adminService.CreateAuthor(r.Context(), body)
	if err != nil {
		handling.WriteServiceError(w, ar.logger, err, "create author")
		return
	}

	lib.WriteJSON(w, http.StatusCreated, author)
}

func (ar *AdminRoutesManager) CreateBook(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CreateBookRequest](r)
	if err != nil {
		handling.WriteServiceError(w, ar.logger, err, "create book")
		return
	}

	book, err := ar.adminService.CreateBook(r.Context(), body)
	if err != nil {
		handling.WriteServiceError(w, ar.logger, err, "create book")
		return
	}

	lib.WriteJSON(w, http.StatusCreated, book)
}

func (ar *AdminRoutesManager) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseIDParam(chi.URLParam(r, "id"), "id")
	if err != nil {
		handling.WriteServiceError(w, ar.logger, err, "delete book")
		return
	}

	if err := ar.adminService.DeleteBook(r.Context(), id); err != nil {
		handling.WriteServiceError(w, ar.logger, err, "delete book")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
