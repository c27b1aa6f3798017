package api

import (
	apiauth "github.com/bitswalk/jobly/src/joblyd/api/auth"
	"github.com/bitswalk/jobly/src/joblyd/api/base"
	"github.com/bitswalk/jobly/src/joblyd/api/common"
	"github.com/bitswalk/jobly/src/joblyd/api/companies"
	"github.com/bitswalk/jobly/src/joblyd/api/jobs"
	"github.com/bitswalk/jobly/src/joblyd/api/users"
	"github.com/bitswalk/jobly/src/joblyd/auth"
	"github.com/bitswalk/jobly/src/joblyd/db"
	"github.com/bitswalk/jobly/src/joblyd/storage"
)

// ErrorResponse is the JSON body of every error response
type ErrorResponse = common.ErrorResponse

// API holds all handler instances and dependencies
type API struct {
	Base      *base.Handler
	Auth      *apiauth.Handler
	Companies *companies.Handler
	Jobs      *jobs.Handler
	Users     *users.Handler

	// Direct dependencies for middleware
	jwtService  *auth.JWTService
	storage     storage.Backend
	rateLimiter *RateLimiter
}

// Config contains API configuration options
type Config struct {
	Database   *db.Database
	Companies  *db.CompanyRepository
	Jobs       *db.JobRepository
	Users      *db.UserRepository
	JWTService *auth.JWTService
	// Storage is optional; without it the logo routes are not registered.
	Storage      storage.Backend
	RateLimit    RateLimitConfig
	MaxLogoBytes int64
}
