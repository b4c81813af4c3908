package handling

import (
	"bookcatalog_server/lib"
	"errors"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func HandleError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) error {
	logger.Error("An error occurred", gecho.Field("error", err), gecho.Field("msg", msg), gecho.WithCallerSkip(3))

	return gecho.InternalServerError(w, gecho.WithMessage(lib.GetUserMessage(err))).Send()
}

// WriteServiceError maps a service error onto its HTTP response.
// Anything unrecognised is logged and answered with a generic 500.
func WriteServiceError(w http.ResponseWriter, logger *gecho.Logger, err error, msg string) error {
	var ve *lib.ValidationError
	switch {
	case errors.As(err, &ve):
		return gecho.BadRequest(w, gecho.WithMessage(lib.GetUserMessage(err)), gecho.WithData(ve.Fields())).Send()
	case errors.Is(err, lib.ErrAuthenticationFailed):
		return gecho.Unauthorized(w, gecho.WithMessage(lib.InvalidCredentialsMessage)).Send()
	case errors.Is(err, lib.ErrNotAuthenticated), errors.Is(err, lib.ErrInvalidToken):
		return gecho.Unauthorized(w, gecho.WithMessage(lib.GetUserMessage(err))).Send()
	case errors.Is(err, lib.ErrForbidden):
		return gecho.Forbidden(w, gecho.WithMessage(lib.GetUserMessage(err))).Send()
	case errors.Is(err, lib.ErrNotFound):
		return gecho.NotFound(w, gecho.WithMessage(lib.GetUserMessage(err))).Send()
	case errors.Is(err, lib.ErrConflict):
		return gecho.Conflict(w, gecho.WithMessage(lib.GetUserMessage(err))).Send()
	default:
		return HandleError(err, msg, logger, w)
	}
}
