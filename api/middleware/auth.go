package middleware

import (
	"bookcatalog_server/lib"
	"bookcatalog_server/structs/tables"
	"context"
	"errors"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// Context keys for storing user data in request context
type contextKey string

const UserContextKey contextKey = "user"

// resolveUser authenticates the request's token, if any. A missing header yields nil, nil.
func (mw *Middleware) resolveUser(r *http.Request) (*tables.User, error) {
	key := lib.ExtractTokenKey(r)
	if key == "" {
		if r.Header.Get("Authorization") != "" {
			return nil, lib.ErrInvalidToken
		}
		return nil, nil
	}
	return mw.authenticator.Authenticate(r.Context(), key)
}

func (mw *Middleware) rejectAuth(w http.ResponseWriter, err error) {
	if errors.Is(err, lib.ErrInvalidToken) || errors.Is(err, lib.ErrNotAuthenticated) {
		gecho.Unauthorized(w, gecho.WithMessage("Invalid token"), gecho.Send())
		return
	}
	mw.logger.Error("Failed to authenticate request", gecho.Field("error", err))
	gecho.InternalServerError(w, gecho.Send())
}

// OptionalAuthMiddleware attaches the user when a valid token is sent.
// A malformed or unknown token is still rejected.
func (mw *Middleware) OptionalAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := mw.resolveUser(r)
		if err != nil {
			mw.rejectAuth(w, err)
			return
		}
		if user != nil {
			r = r.WithContext(context.WithValue(r.Context(), UserContextKey, user))
		}
		next.ServeHTTP(w, r)
	})
}

// UserAuthMiddleware protects routes to only logged-in users
func (mw *Middleware) UserAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := mw.resolveUser(r)
		if err != nil {
			mw.logger.Debug("Rejected token", gecho.Field("error", err))
			mw.rejectAuth(w, err)
			return
		}
		if user == nil {
			gecho.Unauthorized(w, gecho.WithMessage("Authentication credentials were not provided"), gecho.Send())
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// StaffAuthMiddleware protects routes to only staff users
// Must be used after UserAuthMiddleware
func (mw *Middleware) StaffAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUserFromContext(r.Context())
		if !ok {
			gecho.Unauthorized(w, gecho.WithMessage("Authentication credentials were not provided"), gecho.Send())
			return
		}

		if !user.IsStaff {
			mw.logger.Warn("Non-staff user attempted to access admin route", gecho.Field("user_id", user.ID))
			gecho.Forbidden(w, gecho.WithMessage("Staff access required"), gecho.Send())
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetUserFromContext is a helper function to extract the user from request context
func GetUserFromContext(ctx context.Context) (*tables.User, bool) {
	user, ok := ctx.Value(UserContextKey).(*tables.User)
	return user, ok && user != nil
}
