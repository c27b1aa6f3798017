package users

import (
	"github.com/bitswalk/jobly/src/joblyd/auth"
	"github.com/bitswalk/jobly/src/joblyd/db"
)

// Handler handles user HTTP requests
type Handler struct {
	users      *db.UserRepository
	jwtService *auth.JWTService
}

// Config contains configuration options for the Handler
type Config struct {
	Users      *db.UserRepository
	JWTService *auth.JWTService
}

// CreateUserRequest is the body of POST /users. Unlike self registration
// it may create administrators.
type CreateUserRequest struct {
	Username  string `json:"username" binding:"required,min=1,max=25" example:"jdoe"`
	Password  string `json:"password" binding:"required,min=5,max=20" example:"s3cret!"`
	FirstName string `json:"firstName" binding:"required,min=1,max=30" example:"Jane"`
	LastName  string `json:"lastName" binding:"required,min=1,max=30" example:"Doe"`
	Email     string `json:"email" binding:"required,email,max=60" example:"jane@example.com"`
	IsAdmin   bool   `json:"isAdmin" example:"false"`
}

// UpdateUserRequest documents the body of PATCH /users/{username}. Only
// administrators may change isAdmin.
type UpdateUserRequest struct {
	Password  string `json:"password" example:"n3w-s3cret"`
	FirstName string `json:"firstName" example:"Janet"`
	LastName  string `json:"lastName" example:"Doe"`
	Email     string `json:"email" example:"janet@example.com"`
	IsAdmin   bool   `json:"isAdmin" example:"true"`
}

// CreateUserResponse carries the created user and a token for it
type CreateUserResponse struct {
	User  *db.User `json:"user"`
	Token string   `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
}

// UserResponse wraps a single user
type UserResponse struct {
	User *db.User `json:"user"`
}

// UserWithJobsResponse wraps a user and the ids of the jobs they applied to
type UserWithJobsResponse struct {
	User *db.UserWithJobs `json:"user"`
}

// UserListResponse wraps a list of users
type UserListResponse struct {
	Users []db.User `json:"users"`
}

// DeletedResponse reports the username of a deleted user
type DeletedResponse struct {
	Deleted string `json:"deleted" example:"jdoe"`
}

// AppliedResponse reports the job a user applied to
type AppliedResponse struct {
	Applied int64 `json:"applied" example:"12"`
}
