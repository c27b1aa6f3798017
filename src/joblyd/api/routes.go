package api

import "github.com/gin-gonic/gin"

// RegisterRoutes configures all API routes on the given router
func (a *API) RegisterRoutes(router *gin.Engine) {
	router.Use(a.authenticate())

	router.GET("/", a.Base.HandleRoot)
	router.GET("/health", a.Base.HandleHealth)
	router.GET("/version", a.Base.HandleVersion)

	authGroup := router.Group("/auth")
	authGroup.Use(a.rateLimitAuth())
	{
		authGroup.POST("/token", a.Auth.HandleToken)
		authGroup.POST("/register", a.Auth.HandleRegister)
	}

	// Company routes - read operations (public)
	companies := router.Group("/companies")
	{
		companies.GET("", a.Companies.HandleList)
		companies.GET("/:handle", a.Companies.HandleGet)
		if a.storage != nil {
			companies.GET("/:handle/logo", a.Companies.HandleGetLogo)
		}
	}

	// Company routes - write operations (admin only)
	companiesAdmin := router.Group("/companies")
	companiesAdmin.Use(a.requireAdmin())
	{
		companiesAdmin.POST("", a.Companies.HandleCreate)
		companiesAdmin.PATCH("/:handle", a.Companies.HandleUpdate)
		companiesAdmin.DELETE("/:handle", a.Companies.HandleDelete)
		if a.storage != nil {
			companiesAdmin.PUT("/:handle/logo", a.Companies.HandleUploadLogo)
		}
	}

	// Job routes - read operations (public)
	jobs := router.Group("/jobs")
	{
		jobs.GET("", a.Jobs.HandleList)
		jobs.GET("/:title", a.Jobs.HandleGet)
	}

	// Job routes - write operations (admin only)
	jobsAdmin := router.Group("/jobs")
	jobsAdmin.Use(a.requireAdmin())
	{
		jobsAdmin.POST("", a.Jobs.HandleCreate)
		jobsAdmin.PATCH("/:id", a.Jobs.HandleUpdate)
		jobsAdmin.DELETE("/:id", a.Jobs.HandleDelete)
	}

	usersAdmin := router.Group("/users")
	usersAdmin.Use(a.requireAdmin())
	{
		usersAdmin.POST("", a.Users.HandleCreate)
		usersAdmin.GET("", a.Users.HandleList)
	}

	// User routes - the user themselves or an admin
	usersSelf := router.Group("/users/:username")
	usersSelf.Use(a.requireLoggedIn(), a.requireAdminOrSelf())
	{
		usersSelf.GET("", a.Users.HandleGet)
		usersSelf.PATCH("", a.Users.HandleUpdate)
		usersSelf.DELETE("", a.Users.HandleDelete)
		usersSelf.POST("/jobs/:id", a.Users.HandleApply)
	}
}
