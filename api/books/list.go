package books

import (
	"bookcatalog_server/handling"
	"bookcatalog_server/lib"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (brm *BookRoutesManager) HandleListBooks(w http.ResponseWriter, r *http.Request) {
	opts, err := handling.ParseBookListOptions(r)
	if err != nil {
		handling.WriteServiceError(w, brm.logger, err, "list books")
		return
	}

	books, err := brm.bookService.ListBooks(r.Context(), *opts, viewer(r.Context()))
	if err != nil {
		handling.WriteServiceError(w, brm.logger, err, "list books")
		return
	}

	lib.WriteJSON(w, http.StatusOK, books)
}

func (brm *BookRoutesManager) HandleBookDetail(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseIDParam(chi.URLParam(r, "id"), "id")
	if err != nil {
		handling.WriteServiceError(w, brm.logger, err, "book detail")
		return
	}

	detail, err := brm.bookService.GetBookDetail(r.Context(), id, viewer(r.Context()))
	if err != nil {
		handling.WriteServiceError(w, brm.logger, err, "book detail")
		return
	}

	lib.WriteJSON(w, http.StatusOK, detail)
}
