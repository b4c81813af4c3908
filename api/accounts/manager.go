package accounts

import (
	"bookcatalog_server/structs"
	"bookcatalog_server/structs/tables"
	"context"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// AccountService is the account lifecycle used by these routes.
type AccountService interface {
	Register(ctx context.Context, email, password string) (*tables.User, error)
	RegisterConfirm(ctx context.Context, email, password string) (*tables.User, error)
	Activate(ctx context.Context, code string) error
	Login(ctx context.Context, email, password string) (*structs.LoginResponse, error)
}

type AccountRoutesManager struct {
	logger      *gecho.Logger
	authService AccountService
	cfg         *structs.Config
}

func NewAccountRoutesManager(logger *gecho.Logger, authService AccountService, cfg *structs.Config) *AccountRoutesManager {
	return &AccountRoutesManager{
		logger:      logger,
		authService: authService,
		cfg:         cfg,
	}
}

func (arm *AccountRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/api/accounts", func(r chi.Router) {
		r.Post("/register", arm.HandleRegister)
		r.Post("/register-confirm", arm.HandleRegisterConfirm)
		r.Get("/register/activate/{code}", arm.HandleActivate)
		r.Post("/login", arm.HandleLogin)
	})
}
