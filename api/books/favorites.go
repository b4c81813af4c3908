package books

import (
	"bookcatalog_server/handling"
	"bookcatalog_server/lib"
	"bookcatalog_server/structs"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (brm *BookRoutesManager) HandleListFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := brm.favoriteService.ListFavorites(r.Context(), viewer(r.Context()))
	if err != nil {
		handling.WriteServiceError(w, brm.logger, err, "list favorites")
		return
	}

	lib.WriteJSON(w, http.StatusOK, favorites)
}

func (brm *BookRoutesManager) HandleAddFavorite(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.FavoriteRequest](r)
	if err != nil {
		handling.WriteServiceError(w, brm.logger, err, "add favorite")
		return
	}

	favorite, err := brm.favoriteService.AddFavorite(r.Context(), viewer(r.Context()), body.BookID)
	if err != nil {
		handling.WriteServiceError(w, brm.logger, err, "add favorite")
		return
	}

	lib.WriteJSON(w, http.StatusCreated, favorite)
}

// HandleRemoveFavorite deletes by book id, not favorite id.
func (brm *BookRoutesManager) HandleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	bookID, err := handling.ParseIDParam(chi.URLParam(r, "id"), "id")
	if err != nil {
		handling.WriteServiceError(w, brm.logger, err, "remove favorite")
		return
	}

	if err := brm.favoriteService.RemoveFavorite(r.Context(), viewer(r.Context()), bookID); err != nil {
		handling.WriteServiceError(w, brm.logger, err, "remove favorite")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
