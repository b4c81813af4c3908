package accounts

import (
	"bookcatalog_server/handling"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

const loginPath = "/api/accounts/login/"

func (arm *AccountRoutesManager) HandleActivate(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(chi.URLParam(r, "code"))

	if err := arm.authService.Activate(r.Context(), code); err != nil {
		handling.WriteServiceError(w, arm.logger, err, "activate")
		return
	}

	http.Redirect(w, r, strings.TrimRight(arm.cfg.Server.PublicURL, "/")+loginPath, http.StatusFound)
}
