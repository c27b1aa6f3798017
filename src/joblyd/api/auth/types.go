package auth

import (
	coreauth "github.com/bitswalk/jobly/src/joblyd/auth"
	"github.com/bitswalk/jobly/src/joblyd/db"
)

// Handler handles authentication HTTP requests
type Handler struct {
	users      *db.UserRepository
	jwtService *coreauth.JWTService
}

// Config contains configuration options for the Handler
type Config struct {
	Users      *db.UserRepository
	JWTService *coreauth.JWTService
}

// TokenRequest is the body of POST /auth/token
type TokenRequest struct {
	Username string `json:"username" binding:"required,min=1,max=25" example:"jdoe"`
	Password string `json:"password" binding:"required,min=1,max=20" example:"s3cret!"`
}

// RegisterRequest is the body of POST /auth/register
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=1,max=25" example:"jdoe"`
	Password  string `json:"password" binding:"required,min=5,max=20" example:"s3cret!"`
	FirstName string `json:"firstName" binding:"required,min=1,max=30" example:"Jane"`
	LastName  string `json:"lastName" binding:"required,min=1,max=30" example:"Doe"`
	Email     string `json:"email" binding:"required,email,max=60" example:"jane@example.com"`
}

// TokenResponse carries a signed token
type TokenResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
}
