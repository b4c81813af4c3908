package services

import (
	"bookcatalog_server/lib"
	"bookcatalog_server/mocks"
	"bookcatalog_server/structs"
	"bookcatalog_server/structs/tables"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authDeps struct {
	users  *mocks.UserStore
	tokens *mocks.TokenStore
	queue  *mocks.NotificationQueue
	cache  *mocks.Cache
}

func newAuthService(t *testing.T) (*AuthService, *authDeps) {
	t.Helper()
	d := &authDeps{
		users:  &mocks.UserStore{},
		tokens: &mocks.TokenStore{},
		queue:  &mocks.NotificationQueue{},
		cache:  &mocks.Cache{},
	}
	t.Cleanup(func() {
		d.users.AssertExpectations(t)
		d.tokens.AssertExpectations(t)
		d.queue.AssertExpectations(t)
		d.cache.AssertExpectations(t)
	})
	return NewAuthService(testLogger(), testConfig(), d.users, d.tokens, d.queue, d.cache), d
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := lib.HashPassword(password, testConfig().Auth.Argon)
	require.NoError(t, err)
	return h
}

func TestRegisterCreatesActiveUser(t *testing.T) {
	svc, d := newAuthService(t)
	ctx := context.Background()

	d.users.On("Create", ctx, mock.MatchedBy(func(u *tables.User) bool {
		return u.Email == "Reader@example.com" && u.IsActive && strings.HasPrefix(u.PasswordHash, "$argon2id$")
	})).Return(&tables.User{ID: 1, Email: "Reader@example.com", IsActive: true}, nil)

	user, err := svc.Register(ctx, " Reader@EXAMPLE.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, d := newAuthService(t)
	ctx := context.Background()

	d.users.On("Create", ctx, mock.Anything).Return(nil, lib.ErrConflict)

	_, err := svc.Register(ctx, "a@b.c", "pw")
	var ve *lib.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"user with this email already exists"}, ve.Fields()["email"])
}

func TestRegisterConfirmRejectsShortPassword(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.RegisterConfirm(context.Background(), "a@b.c", "12345")
	var ve *lib.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields(), "password")
}

func TestRegisterConfirmCountsPasswordCharacters(t *testing.T) {
	svc, _ := newAuthService(t)

	// three characters, six bytes
	_, err := svc.RegisterConfirm(context.Background(), "a@b.c", "пар")
	var ve *lib.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields(), "password")
}

func TestRegisterConfirmQueuesActivationEmail(t *testing.T) {
	svc, d := newAuthService(t)
	ctx := context.Background()

	d.users.On("CreateWithActivationCode", ctx, mock.MatchedBy(func(u *tables.User) bool {
		return !u.IsActive
	}), mock.Anything).Return(func(_ context.Context, u *tables.User, code func(*tables.User) string) (*tables.User, error) {
		u.ID = 9
		u.ActivationCode = code(u)
		return u, nil
	})
	d.queue.On("Enqueue", ctx, structs.ActivationJob{
		Email:         "a@b.c",
		ActivationURL: "http://books.test/api/accounts/register/activate/" + lib.ActivationCode("a@b.c", 9) + "/",
	}).Return(nil)

	user, err := svc.RegisterConfirm(ctx, "a@b.c", "secret1")
	require.NoError(t, err)
	assert.Equal(t, lib.ActivationCode("a@b.c", 9), user.ActivationCode)
	assert.False(t, user.IsActive)
}

func TestRegisterConfirmIgnoresQueueFailure(t *testing.T) {
	svc, d := newAuthService(t)
	ctx := context.Background()

	d.users.On("CreateWithActivationCode", ctx, mock.Anything, mock.Anything).
		Return(&tables.User{ID: 3, Email: "a@b.c", ActivationCode: "code"}, nil)
	d.queue.On("Enqueue", ctx, mock.Anything).Return(errors.New("redis down"))

	_, err := svc.RegisterConfirm(ctx, "a@b.c", "secret1")
	assert.NoError(t, err)
}

func TestActivate(t *testing.T) {
	svc, d := newAuthService(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Activate(ctx, ""), lib.ErrNotFound)

	d.users.On("Activate", ctx, "unknown").Return(false, nil).Once()
	assert.ErrorIs(t, svc.Activate(ctx, "unknown"), lib.ErrNotFound)

	d.users.On("Activate", ctx, "good").Return(true, nil).Once()
	assert.NoError(t, svc.Activate(ctx, "good"))
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	hash := hashed(t, "right")

	tests := []struct {
		name  string
		setup func(d *authDeps)
		pass  string
	}{
		{"unknown email", func(d *authDeps) {
			d.users.On("GetByEmail", ctx, "a@b.c").Return(nil, lib.ErrNotFound)
		}, "right"},
		{"wrong password", func(d *authDeps) {
			d.users.On("GetByEmail", ctx, "a@b.c").Return(&tables.User{ID: 1, PasswordHash: hash, IsActive: true}, nil)
		}, "wrong"},
		{"inactive", func(d *authDeps) {
			d.users.On("GetByEmail", ctx, "a@b.c").Return(&tables.User{ID: 1, PasswordHash: hash}, nil)
		}, "right"},
		{"corrupt hash", func(d *authDeps) {
			d.users.On("GetByEmail", ctx, "a@b.c").Return(&tables.User{ID: 1, PasswordHash: "plain", IsActive: true}, nil)
		}, "right"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newAuthService(t)
			tt.setup(d)
			_, err := svc.Login(ctx, "a@b.c", tt.pass)
			assert.ErrorIs(t, err, lib.ErrAuthenticationFailed)
		})
	}
}

func TestLoginReturnsPersistentToken(t *testing.T) {
	svc, d := newAuthService(t)
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	d.users.On("GetByEmail", ctx, "a@b.c").
		Return(&tables.User{ID: 5, Email: "a@b.c", PasswordHash: hashed(t, "pw"), IsActive: true}, nil)
	d.tokens.On("GetOrCreate", ctx, int64(5), mock.Anything).
		Return(func(_ context.Context, _ int64, newKey func() (string, error)) (*tables.AuthToken, error) {
			key, err := newKey()
			return &tables.AuthToken{Key: key, UserID: 5}, err
		})
	d.users.On("UpdateLastLogin", ctx, int64(5), now).Return(errors.New("ignored"))

	resp, err := svc.Login(ctx, "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.UserID)
	assert.Equal(t, "a@b.c", resp.Email)
	assert.True(t, resp.IsActive)

	claims, err := lib.ParseTokenKey(resp.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, int64(5), claims.Sub)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	key, err := lib.SignTokenKey(7, "test-secret")
	require.NoError(t, err)

	t.Run("missing key", func(t *testing.T) {
		svc, _ := newAuthService(t)
		_, err := svc.Authenticate(ctx, "")
		assert.ErrorIs(t, err, lib.ErrNotAuthenticated)
	})

	t.Run("bad signature", func(t *testing.T) {
		svc, _ := newAuthService(t)
		_, err := svc.Authenticate(ctx, "not-a-token")
		assert.ErrorIs(t, err, lib.ErrInvalidToken)
	})

	t.Run("cache hit", func(t *testing.T) {
		svc, d := newAuthService(t)
		d.cache.On("GetTokenUser", ctx, key).Return(&tables.User{ID: 7, IsActive: true}, nil)

		user, err := svc.Authenticate(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, int64(7), user.ID)
	})

	t.Run("store lookup", func(t *testing.T) {
		svc, d := newAuthService(t)
		user := &tables.User{ID: 7, IsActive: true, IsStaff: true}
		d.cache.On("GetTokenUser", ctx, key).Return(nil, nil)
		d.tokens.On("GetByKey", ctx, key).Return(&tables.AuthToken{Key: key, UserID: 7}, nil)
		d.users.On("GetByID", ctx, int64(7)).Return(user, nil)
		d.cache.On("SetTokenUser", ctx, key, user).Return(nil)

		got, err := svc.Authenticate(ctx, key)
		require.NoError(t, err)
		assert.True(t, got.IsStaff)
	})

	t.Run("revoked token", func(t *testing.T) {
		svc, d := newAuthService(t)
		d.cache.On("GetTokenUser", ctx, key).Return(nil, errors.New("cache down"))
		d.tokens.On("GetByKey", ctx, key).Return(nil, lib.ErrNotFound)

		_, err := svc.Authenticate(ctx, key)
		assert.ErrorIs(t, err, lib.ErrInvalidToken)
	})

	t.Run("subject mismatch", func(t *testing.T) {
		svc, d := newAuthService(t)
		d.cache.On("GetTokenUser", ctx, key).Return(nil, nil)
		d.tokens.On("GetByKey", ctx, key).Return(&tables.AuthToken{Key: key, UserID: 8}, nil)

		_, err := svc.Authenticate(ctx, key)
		assert.ErrorIs(t, err, lib.ErrInvalidToken)
	})

	t.Run("inactive user", func(t *testing.T) {
		svc, d := newAuthService(t)
		d.cache.On("GetTokenUser", ctx, key).Return(nil, nil)
		d.tokens.On("GetByKey", ctx, key).Return(&tables.AuthToken{Key: key, UserID: 7}, nil)
		d.users.On("GetByID", ctx, int64(7)).Return(&tables.User{ID: 7}, nil)

		_, err := svc.Authenticate(ctx, key)
		assert.ErrorIs(t, err, lib.ErrInvalidToken)
	})
}
