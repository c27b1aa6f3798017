package core

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bitswalk/jobly/src/joblyd/api"
	"github.com/bitswalk/jobly/src/joblyd/auth"
	"github.com/bitswalk/jobly/src/joblyd/db"
	"github.com/bitswalk/jobly/src/joblyd/db/migrations"
	_ "github.com/bitswalk/jobly/src/joblyd/docs"
	"github.com/bitswalk/jobly/src/joblyd/security"
	"github.com/bitswalk/jobly/src/joblyd/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Server holds the HTTP server instance and its dependencies
type Server struct {
	cfg        Config
	router     *gin.Engine
	httpServer *http.Server
	database   *db.Database
	storage    storage.Backend
	api        *api.API
}

// NewServer wires repositories, auth and handlers onto a new router
func NewServer(cfg Config, database *db.Database, storageBackend storage.Backend) (*Server, error) {
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	var settings auth.SettingsStore = database
	if cfg.MasterKeyPath != "" && cfg.Auth.SecretKey == "" {
		secrets, err := security.NewSecretManager(cfg.MasterKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load master key: %w", err)
		}
		settings = security.NewEncryptedSettings(database, secrets)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	router := gin.New()
	if !cfg.RateLimit.TrustProxy {
		if err := router.SetTrustedProxies(nil); err != nil {
			return nil, fmt.Errorf("failed to configure trusted proxies: %w", err)
		}
	}

	router.Use(gin.Recovery())
	router.Use(corsMiddleware(cfg.Server.CORSOrigins))
	router.Use(ginLogger())

	api.SetLogger(log)
	api.SetVersionInfo(VersionInfo)
	apiInstance := api.New(api.Config{
		Database:     database,
		Companies:    db.NewCompanyRepository(database),
		Jobs:         db.NewJobRepository(database),
		Users:        db.NewUserRepository(database, cfg.BcryptCost),
		JWTService:   jwtService,
		Storage:      storageBackend,
		RateLimit:    cfg.RateLimit,
		MaxLogoBytes: cfg.MaxLogoBytes,
	})

	apiInstance.RegisterRoutes(router)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return &Server{
		cfg:      cfg,
		router:   router,
		database: database,
		storage:  storageBackend,
		api:      apiInstance,
	}, nil
}

// Handler returns the HTTP handler of the server
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the HTTP server and blocks until a shutdown signal or a
// listener error
func (s *Server) Run() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Bind, s.cfg.Server.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		log.Info("Starting joblyd server", "address", addr)

		if s.storage != nil {
			log.Info("Storage enabled", "type", s.storage.Type(), "location", s.storage.Location())
		} else {
			log.Warn("Storage not configured - logo endpoints disabled")
		}
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Info("Received signal, shutting down", "signal", sig)
	}

	return s.Shutdown()
}

// Shutdown stops the HTTP server gracefully and releases background work
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s.api.Close()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
	}

	log.Info("Server stopped gracefully")
	return nil
}

// corsMiddleware allows the configured origins; "*" or an empty list allows
// any origin
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Retry-After"},
		MaxAge:        12 * time.Hour,
	}

	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}

	return cors.New(cfg)
}

// ginLogger returns a gin middleware for logging requests
func ginLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if query := c.Request.URL.RawQuery; query != "" {
			path = path + "?" + query
		}

		c.Next()

		log.Debug("HTTP request",
			"status", c.Writer.Status(),
			"method", c.Request.Method,
			"path", path,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}

// openDatabase connects to the configured store and applies migrations
func openDatabase(ctx context.Context, cfg db.Config) (*db.Database, error) {
	migrations.SetLogger(log)

	database, err := db.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return database, nil
}

// openStorage creates the logo storage backend. An unreachable S3 bucket
// is logged and the server starts anyway.
func openStorage(ctx context.Context, cfg storage.Config) (storage.Backend, error) {
	backend, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	if s3Backend, ok := backend.(*storage.S3Backend); ok {
		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := s3Backend.EnsureBucket(ctx); err != nil {
			log.Warn("S3 bucket not accessible - logo uploads may fail", "location", s3Backend.Location(), "error", err)
		} else {
			log.Debug("S3 bucket verified", "location", s3Backend.Location())
		}
	}

	return backend, nil
}

// runServer is called by the root command to start the server
func runServer(cfg Config) error {
	log.Info("joblyd starting",
		"version", VersionInfo.Version,
		"build_date", VersionInfo.BuildDate,
		"log_output", log.Output(),
	)

	ctx := context.Background()

	log.Info("Initializing database", "driver", cfg.Database.Driver)
	database, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer database.Close()

	log.Info("Initializing storage", "type", cfg.Storage.Type)
	storageBackend, err := openStorage(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	server, err := NewServer(cfg, database, storageBackend)
	if err != nil {
		return err
	}

	return server.Run()
}
