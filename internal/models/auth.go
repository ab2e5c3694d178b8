package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims carries the identity embedded in access tokens.
type JWTClaims struct {
	UserID   string    `json:"user_id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Role     AdminRole `json:"role"`
	jwt.RegisteredClaims
}

// LoginRequest is the credentials payload for the admin login endpoint.
type LoginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// LoginResponse returns the issued token and basic identity.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	IssuedAt    time.Time `json:"issued_at"`
	User        AdminInfo `json:"user"`
}

// AdminInfo is the public projection of an Admin.
type AdminInfo struct {
	ID       string    `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Role     AdminRole `json:"role"`
}
