package model

import "time"

// Role distinguishes buyers from sellers.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

// User represents a storefront account. There is no real credential
// storage: login is validated against a fixed demo password.
type User struct {
	ID        string    `json:"id" yaml:"id"`
	Email     string    `json:"email" yaml:"email"`
	Name      string    `json:"name" yaml:"name"`
	Role      Role      `json:"role" yaml:"role"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	Avatar    string    `json:"avatar,omitempty" yaml:"avatar"`
}

// SessionClaims is the verified payload of a session token.
type SessionClaims struct {
	UserID string
	Email  string
	Role   Role
}

// TokenManager mints and verifies session tokens.
type TokenManager interface {
	Generate(user User) (string, error)
	Parse(token string) (SessionClaims, error)
}
