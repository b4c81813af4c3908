package accounts

import (
	"bookcatalog_server/handling"
	"bookcatalog_server/lib"
	"bookcatalog_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

const (
	registeredMessage        = "You have successfully registered!"
	registerConfirmedMessage = "Registration successful. An activation link has been sent to your email."
)

func (arm *AccountRoutesManager) HandleRegister(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.RegisterRequest](r)
	if err != nil {
		arm.logger.Debug("Invalid register request", gecho.Field("error", err))
		handling.WriteServiceError(w, arm.logger, err, "register")
		return
	}

	user, err := arm.authService.Register(r.Context(), body.Email, body.Password)
	if err != nil {
		handling.WriteServiceError(w, arm.logger, err, "register")
		return
	}

	arm.logger.Info("User registered", gecho.Field("user_id", user.ID))
	lib.WriteJSON(w, http.StatusCreated, structs.MessageResponse{Message: registeredMessage})
}

func (arm *AccountRoutesManager) HandleRegisterConfirm(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.RegisterConfirmRequest](r)
	if err != nil {
		arm.logger.Debug("Invalid register-confirm request", gecho.Field("error", err))
		handling.WriteServiceError(w, arm.logger, err, "register-confirm")
		return
	}

	user, err := arm.authService.RegisterConfirm(r.Context(), body.Email, body.Password)
	if err != nil {
		handling.WriteServiceError(w, arm.logger, err, "register-confirm")
		return
	}

	arm.logger.Info("User registered pending activation", gecho.Field("user_id", user.ID))
	lib.WriteJSON(w, http.StatusCreated, structs.MessageResponse{Message: registerConfirmedMessage})
}
