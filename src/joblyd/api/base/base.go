package base

import (
	"context"
	"net/http"
	"time"

	"github.com/bitswalk/jobly/src/common/version"
	"github.com/gin-gonic/gin"
)

var versionInfo = version.New("", "", "")

// SetVersionInfo sets the version info reported by the base endpoints
func SetVersionInfo(v version.Info) {
	versionInfo = v
}

// NewHandler creates a new base handler
func NewHandler(cfg Config) *Handler {
	return &Handler{
		database: cfg.Database,
		storage:  cfg.Storage,
	}
}

// HandleRoot returns API discovery information
// @Summary      API discovery
// @Description  Lists the main endpoints of the server
// @Tags         System
// @Produce      json
// @Success      200  {object}  APIInfo
// @Router       / [get]
func (h *Handler) HandleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, APIInfo{
		Name:        "joblyd",
		Description: "Jobly job board API",
		Version:     versionInfo.Version,
		Endpoints: APIInfoEndpoints{
			Health:    "/health",
			Version:   "/version",
			Companies: "/companies",
			Jobs:      "/jobs",
			Users:     "/users",
			Docs:      "/swagger/index.html",
			Auth: AuthEndpoints{
				Token:    "/auth/token",
				Register: "/auth/register",
			},
		},
	})
}

// HandleHealth probes the database and the storage backend
// @Summary      Health check
// @Tags         System
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /health [get]
func (h *Handler) HandleHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status := http.StatusOK
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    map[string]string{},
	}

	probe := func(name string, p Pinger) {
		if p == nil {
			return
		}
		if err := p.Ping(ctx); err != nil {
			response.Checks[name] = err.Error()
			response.Status = "unhealthy"
			status = http.StatusServiceUnavailable
			return
		}
		response.Checks[name] = "ok"
	}
	probe("database", h.database)
	probe("storage", h.storage)

	c.JSON(status, response)
}

// HandleVersion returns version and build information for the server
// @Summary      Version
// @Tags         System
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (h *Handler) HandleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, versionInfo)
}
