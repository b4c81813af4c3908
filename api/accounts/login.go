package accounts

import (
	"bookcatalog_server/handling"
	"bookcatalog_server/lib"
	"bookcatalog_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (arm *AccountRoutesManager) HandleLogin(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.LoginRequest](r)
	if err != nil {
		arm.logger.Debug("Invalid login request", gecho.Field("error", err))
		handling.WriteServiceError(w, arm.logger, err, "login")
		return
	}

	resp, err := arm.authService.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		arm.logger.Debug("Login failed", gecho.Field("error", err))
		handling.WriteServiceError(w, arm.logger, err, "login")
		return
	}

	lib.WriteJSON(w, http.StatusOK, resp)
}
