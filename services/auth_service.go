package services

import (
	"bookcatalog_server/lib"
	"bookcatalog_server/structs"
	"bookcatalog_server/structs/tables"
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/MonkyMars/gecho"
)

const minConfirmPasswordLen = 6

type AuthService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	users  UserStore
	tokens TokenStore
	queue  NotificationQueue
	cache  Cache
	now    func() time.Time
}

func NewAuthService(logger *gecho.Logger, cfg *structs.Config, users UserStore, tokens TokenStore, queue NotificationQueue, cache Cache) *AuthService {
	return &AuthService{
		logger: logger,
		cfg:    cfg,
		users:  users,
		tokens: tokens,
		queue:  queue,
		cache:  cache,
		now:    time.Now,
	}
}

// Register creates an active account straight away.
func (as *AuthService) Register(ctx context.Context, email, password string) (*tables.User, error) {
	startTime := time.Now()
	email = lib.NormalizeEmail(email)

	passwordHash, err := lib.HashPassword(password, as.cfg.Auth.Argon)
	if err != nil {
		as.logger.Error("Failed to hash password", gecho.Field("error", err))
		return nil, err
	}

	user, err := as.users.Create(ctx, &tables.User{
		Email:        email,
		PasswordHash: passwordHash,
		IsActive:     true,
	})
	if err != nil {
		return nil, as.mapCreateError(err, email)
	}

	as.logger.Debug("User registered successfully",
		gecho.Field("user_id", user.ID),
		gecho.Field("elapsed_time_ms", time.Since(startTime).Milliseconds()),
	)
	return user, nil
}

// RegisterConfirm creates an inactive account and queues its activation email.
// Queueing problems are logged and never fail the registration.
func (as *AuthService) RegisterConfirm(ctx context.Context, email, password string) (*tables.User, error) {
	if utf8.RuneCountInString(password) < minConfirmPasswordLen {
		return nil, lib.NewValidationError("password", "must be at least 6 characters")
	}
	email = lib.NormalizeEmail(email)

	passwordHash, err := lib.HashPassword(password, as.cfg.Auth.Argon)
	if err != nil {
		as.logger.Error("Failed to hash password", gecho.Field("error", err))
		return nil, err
	}

	user, err := as.users.CreateWithActivationCode(ctx, &tables.User{
		Email:        email,
		PasswordHash: passwordHash,
		IsActive:     false,
	}, func(u *tables.User) string {
		return lib.ActivationCode(u.Email, u.ID)
	})
	if err != nil {
		return nil, as.mapCreateError(err, email)
	}

	job := structs.ActivationJob{
		Email:         user.Email,
		ActivationURL: lib.ActivationURL(as.cfg.Server.PublicURL, user.ActivationCode),
	}
	if err := as.queue.Enqueue(ctx, job); err != nil {
		as.logger.Error("Failed to enqueue activation email",
			gecho.Field("error", err),
			gecho.Field("user_id", user.ID),
		)
	}

	as.logger.Debug("User registered pending activation", gecho.Field("user_id", user.ID))
	return user, nil
}

func (as *AuthService) mapCreateError(err error, email string) error {
	if lib.IsUniqueViolation(err) {
		as.logger.Warn("Registration failed - duplicate email", gecho.Field("email", email))
		return lib.NewValidationError("email", "user with this email already exists")
	}
	as.logger.Error("Database error during registration",
		gecho.Field("error", err),
		gecho.Field("detail", lib.GetDetailForLogging(err)),
	)
	return err
}

// Activate consumes an activation code exactly once.
func (as *AuthService) Activate(ctx context.Context, code string) error {
	if code == "" {
		return lib.ErrNotFound
	}
	ok, err := as.users.Activate(ctx, code)
	if err != nil {
		as.logger.Error("Failed to activate user", gecho.Field("error", err))
		return err
	}
	if !ok {
		as.logger.Debug("Unknown or consumed activation code")
		return lib.ErrNotFound
	}
	as.logger.Info("User activated")
	return nil
}

// Login verifies credentials and returns the user's persistent token.
// Unknown email, wrong password and inactive accounts are indistinguishable to the caller.
func (as *AuthService) Login(ctx context.Context, email, password string) (*structs.LoginResponse, error) {
	startTime := time.Now()
	email = lib.NormalizeEmail(email)

	user, err := as.users.GetByEmail(ctx, email)
	if err != nil {
		if !lib.IsNotFound(err) {
			as.logger.Error("Unexpected database error during login", gecho.Field("error", err))
			return nil, err
		}
		as.logger.Debug("User not found during login attempt", gecho.Field("email", email))
		return nil, lib.ErrAuthenticationFailed
	}

	valid, err := lib.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		as.logger.Error("Failed to verify password hash", gecho.Field("error", err), gecho.Field("user_id", user.ID))
		return nil, lib.ErrAuthenticationFailed
	}
	if !valid {
		as.logger.Debug("Invalid password attempt", gecho.Field("user_id", user.ID))
		return nil, lib.ErrAuthenticationFailed
	}
	if !user.IsActive {
		as.logger.Debug("Login attempt on inactive account", gecho.Field("user_id", user.ID))
		return nil, lib.ErrAuthenticationFailed
	}

	token, err := as.tokens.GetOrCreate(ctx, user.ID, func() (string, error) {
		return lib.SignTokenKey(user.ID, as.cfg.Auth.TokenSecret)
	})
	if err != nil {
		as.logger.Error("Failed to issue token", gecho.Field("error", err), gecho.Field("user_id", user.ID))
		return nil, err
	}

	if err := as.users.UpdateLastLogin(ctx, user.ID, as.now()); err != nil {
		as.logger.Warn("Failed to update last login", gecho.Field("error", err), gecho.Field("user_id", user.ID))
	}

	as.logger.Debug("User logged in successfully",
		gecho.Field("user_id", user.ID),
		gecho.Field("elapsed_time_ms", time.Since(startTime).Milliseconds()),
	)

	return &structs.LoginResponse{
		Token:    token.Key,
		UserID:   user.ID,
		Email:    user.Email,
		IsActive: user.IsActive,
	}, nil
}

// Authenticate resolves a bearer key to its user.
func (as *AuthService) Authenticate(ctx context.Context, key string) (*tables.User, error) {
	if key == "" {
		return nil, lib.ErrNotAuthenticated
	}
	claims, err := lib.ParseTokenKey(key, as.cfg.Auth.TokenSecret)
	if err != nil {
		return nil, lib.ErrInvalidToken
	}

	cached, err := as.cache.GetTokenUser(ctx, key)
	if err != nil {
		as.logger.Warn("Failed to read token user from cache", gecho.Field("error", err))
	} else if cached != nil {
		return cached, nil
	}

	token, err := as.tokens.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			return nil, lib.ErrInvalidToken
		}
		return nil, err
	}
	if token.UserID != claims.Sub {
		return nil, lib.ErrInvalidToken
	}

	user, err := as.users.GetByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			return nil, lib.ErrInvalidToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, lib.ErrInvalidToken
	}

	if err := as.cache.SetTokenUser(ctx, key, user); err != nil {
		as.logger.Warn("Failed to cache token user", gecho.Field("error", err), gecho.Field("user_id", user.ID))
	}
	return user, nil
}
