package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	// UniversityID scopes non-admin users to a single university. Nil for admins.
	UniversityID *int `json:"universityId,omitempty"`
}

type JWTClaims struct {
	UserID       uuid.UUID `json:"userId"`
	RoleName     string    `json:"roleName"`
	UniversityID *int      `json:"universityId,omitempty"`
	jwt.RegisteredClaims
}

type RefreshClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
