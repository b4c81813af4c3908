package structs

type ArgonParams struct {
	Memory  uint32
	Time    uint32
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

// TokenClaims are the claims carried by a bearer token key.
type TokenClaims struct {
	Sub int64  `json:"sub"`
	Jti string `json:"jti"`
	Iat int64  `json:"iat"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=128"`
}

type RegisterConfirmRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	UserID   int64  `json:"user_id"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ActivationJob is the payload pushed onto the notification queue.
type ActivationJob struct {
	Email         string `json:"email"`
	ActivationURL string `json:"activation_url"`
	Attempts      int    `json:"attempts"`
}
