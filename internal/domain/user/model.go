package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/yasingulsoy/hospitadent-hbys-sub001/internal/platform/auth"
)

// User maps to the users table. Role keeps the numeric wire encoding
// (0=staff, 1=admin, 2=super-admin) behind the auth.Role type.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         auth.Role `db:"role" json:"role"`
	BranchID     uuid.UUID `db:"branch_id" json:"branch_id"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// CreateRequest is the payload for creating a user; the plaintext password is
// hashed before persistence and never stored.
type CreateRequest struct {
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Password string    `json:"password"`
	Role     auth.Role `json:"role"`
	BranchID uuid.UUID `json:"branch_id"`
}

// LoginRequest is the payload for the login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token and the user it belongs to.
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
