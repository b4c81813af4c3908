package middleware

import (
	"bookcatalog_server/lib"
	"bookcatalog_server/mocks"
	"bookcatalog_server/structs"
	"bookcatalog_server/structs/tables"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testConfig() *structs.Config {
	return &structs.Config{
		Server: &structs.ServerConfig{Environment: "test"},
		Cors:   &structs.CorsConfig{AllowedOrigins: []string{"http://localhost:3000"}, AllowedMethods: []string{"GET"}},
		RateLimit: &structs.RateLimitConfig{
			Enabled:       true,
			AuthLimit:     2,
			AuthWindow:    time.Minute,
			AdminLimit:    2,
			AdminWindow:   time.Minute,
			GeneralLimit:  2,
			GeneralWindow: time.Minute,
		},
	}
}

// echoUser answers 200 with the authenticated user's id, or 0 when anonymous.
var echoUser = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r.Context())
	if !ok {
		lib.WriteJSON(w, http.StatusOK, 0)
		return
	}
	lib.WriteJSON(w, http.StatusOK, user.ID)
})

func serve(h http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestOptionalAuthMiddleware(t *testing.T) {
	auth := &mocks.Authenticator{}
	mw := NewMiddleware(testConfig(), gecho.NewDefaultLogger(), auth, nil)
	h := mw.OptionalAuthMiddleware(echoUser)

	auth.On("Authenticate", mock.Anything, "good").Return(&tables.User{ID: 7, IsActive: true}, nil)
	auth.On("Authenticate", mock.Anything, "revoked").Return(nil, lib.ErrInvalidToken)

	rec := serve(h, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0\n", rec.Body.String())

	rec = serve(h, "Token good")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "7\n", rec.Body.String())

	assert.Equal(t, http.StatusUnauthorized, serve(h, "Token revoked").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "Basic abc").Code)
}

func TestUserAuthMiddleware(t *testing.T) {
	auth := &mocks.Authenticator{}
	mw := NewMiddleware(testConfig(), gecho.NewDefaultLogger(), auth, nil)
	h := mw.UserAuthMiddleware(echoUser)

	auth.On("Authenticate", mock.Anything, "good").Return(&tables.User{ID: 7, IsActive: true}, nil)
	auth.On("Authenticate", mock.Anything, "broken").Return(nil, errors.New("db down"))

	assert.Equal(t, http.StatusUnauthorized, serve(h, "").Code)
	assert.Equal(t, http.StatusOK, serve(h, "Bearer good").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(h, "Token broken").Code)
}

func TestStaffAuthMiddleware(t *testing.T) {
	auth := &mocks.Authenticator{}
	mw := NewMiddleware(testConfig(), gecho.NewDefaultLogger(), auth, nil)
	h := mw.UserAuthMiddleware(mw.StaffAuthMiddleware(echoUser))

	auth.On("Authenticate", mock.Anything, "reader").Return(&tables.User{ID: 1, IsActive: true}, nil)
	auth.On("Authenticate", mock.Anything, "staff").Return(&tables.User{ID: 2, IsActive: true, IsStaff: true}, nil)

	assert.Equal(t, http.StatusUnauthorized, serve(h, "").Code)
	assert.Equal(t, http.StatusForbidden, serve(h, "Token reader").Code)
	assert.Equal(t, http.StatusOK, serve(h, "Token staff").Code)

	// without a user in context
	assert.Equal(t, http.StatusUnauthorized, serve(mw.StaffAuthMiddleware(echoUser), "").Code)
}
