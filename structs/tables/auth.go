package tables

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel  `bun:"table:users,alias:u"`
	ID             int64      `bun:"id,pk,autoincrement" json:"id"`
	Email          string     `bun:"email,notnull,unique" json:"email"`
	PasswordHash   string     `bun:"password_hash,notnull" json:"-"`
	IsActive       bool       `bun:"is_active,notnull,default:false" json:"is_active"`
	IsStaff        bool       `bun:"is_staff,notnull,default:false" json:"is_staff"`
	ActivationCode string     `bun:"activation_code,type:varchar(50),notnull,default:''" json:"-"` // blank once consumed
	CreatedAt      time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	LastLogin      *time.Time `bun:"last_login,nullzero" json:"last_login,omitempty"`
}

// AuthToken is the persisted bearer token, one per user.
type AuthToken struct {
	bun.BaseModel `bun:"table:auth_tokens,alias:t"`
	Key           string    `bun:"key,pk,type:varchar(512)" json:"key"`
	UserID        int64     `bun:"user_id,notnull,unique" json:"user_id"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}
