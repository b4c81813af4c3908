package books

import (
	"bookcatalog_server/handling"
	"bookcatalog_server/lib"
	"bookcatalog_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

func (brm *BookRoutesManager) HandleAddReview(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseIDParam(chi.URLParam(r, "id"), "id")
	if err != nil {
		handling.WriteServiceError(w, brm.logger, err, "add review")
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.ReviewRequest](r)
	if err != nil {
		handling.WriteServiceError(w, brm.logger, err, "add review")
		return
	}

	user := viewer(r.Context())
	review, err := brm.bookService.AddReview(r.Context(), user, id, body.Rating, body.Text)
	if err != nil {
		handling.WriteServiceError(w, brm.logger, err, "add review")
		return
	}

	brm.logger.Info("Review added", gecho.Field("book_id", id), gecho.Field("user_id", user.ID))
	lib.WriteJSON(w, http.StatusCreated, review)
}
