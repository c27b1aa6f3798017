// Package api wires the HTTP handlers of joblyd onto a gin router.
package api

import (
	"github.com/bitswalk/jobly/src/common/logs"
	"github.com/bitswalk/jobly/src/common/version"
	apiauth "github.com/bitswalk/jobly/src/joblyd/api/auth"
	"github.com/bitswalk/jobly/src/joblyd/api/base"
	"github.com/bitswalk/jobly/src/joblyd/api/common"
	"github.com/bitswalk/jobly/src/joblyd/api/companies"
	"github.com/bitswalk/jobly/src/joblyd/api/jobs"
	"github.com/bitswalk/jobly/src/joblyd/api/users"
	"github.com/gin-gonic/gin/binding"
)

func init() {
	// Request bodies with fields no endpoint knows are rejected with 400.
	binding.EnableDecoderDisallowUnknownFields = true
}

// SetLogger sets the logger for the api package and subpackages
func SetLogger(l *logs.Logger) {
	common.SetLogger(l)
	common.SetAuditLogger(l)
	companies.SetLogger(l)
	apiauth.SetLogger(l)
}

// SetVersionInfo sets the version info for the api package and subpackages
func SetVersionInfo(v version.Info) {
	base.SetVersionInfo(v)
}

// New creates a new API instance with all subpackage handlers
func New(cfg Config) *API {
	a := &API{
		Auth: apiauth.NewHandler(apiauth.Config{
			Users:      cfg.Users,
			JWTService: cfg.JWTService,
		}),

		Companies: companies.NewHandler(companies.Config{
			Companies:    cfg.Companies,
			Storage:      cfg.Storage,
			MaxLogoBytes: cfg.MaxLogoBytes,
		}),

		Jobs: jobs.NewHandler(jobs.Config{
			Jobs: cfg.Jobs,
		}),

		Users: users.NewHandler(users.Config{
			Users:      cfg.Users,
			JWTService: cfg.JWTService,
		}),

		jwtService: cfg.JWTService,
		storage:    cfg.Storage,
	}

	baseCfg := base.Config{Database: cfg.Database}
	if cfg.Storage != nil {
		baseCfg.Storage = cfg.Storage
	}
	a.Base = base.NewHandler(baseCfg)

	if cfg.RateLimit.Enabled {
		a.rateLimiter = NewRateLimiter(cfg.RateLimit)
	}

	return a
}

// HasStorage returns true if storage backend is configured
func (a *API) HasStorage() bool {
	return a.storage != nil
}

// Close stops background work started by New
func (a *API) Close() {
	if a.rateLimiter != nil {
		a.rateLimiter.Stop()
	}
}
