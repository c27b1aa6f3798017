package base

import (
	"context"

	"github.com/bitswalk/jobly/src/common/version"
)

// Pinger is anything the health check can probe
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler handles base HTTP requests (root, health, version)
type Handler struct {
	database Pinger
	storage  Pinger
}

// Config contains configuration options for the Handler
type Config struct {
	Database Pinger
	// Storage is optional; a nil value skips the storage probe.
	Storage Pinger
}

// APIInfo represents the root API discovery response
type APIInfo struct {
	Name        string           `json:"name" example:"joblyd"`
	Description string           `json:"description" example:"Jobly job board API"`
	Version     string           `json:"version" example:"1.0.0"`
	Endpoints   APIInfoEndpoints `json:"endpoints"`
}

// APIInfoEndpoints contains the available API endpoints
type APIInfoEndpoints struct {
	Health    string        `json:"health" example:"/health"`
	Version   string        `json:"version" example:"/version"`
	Companies string        `json:"companies" example:"/companies"`
	Jobs      string        `json:"jobs" example:"/jobs"`
	Users     string        `json:"users" example:"/users"`
	Docs      string        `json:"docs" example:"/swagger/index.html"`
	Auth      AuthEndpoints `json:"auth"`
}

// AuthEndpoints contains the authentication endpoints
type AuthEndpoints struct {
	Token    string `json:"token" example:"/auth/token"`
	Register string `json:"register" example:"/auth/register"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status" example:"healthy"`
	Timestamp string            `json:"timestamp" example:"2026-01-15T10:30:00Z"`
	Checks    map[string]string `json:"checks"`
}

// VersionResponse represents the version information response
type VersionResponse = version.Info
