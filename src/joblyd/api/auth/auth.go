// Package auth serves the token and registration endpoints.
package auth

import (
	"net/http"

	"github.com/bitswalk/jobly/src/common/errors"
	"github.com/bitswalk/jobly/src/common/logs"
	"github.com/bitswalk/jobly/src/joblyd/api/common"
	coreauth "github.com/bitswalk/jobly/src/joblyd/auth"
	"github.com/bitswalk/jobly/src/joblyd/db"
	"github.com/gin-gonic/gin"
)

var log = logs.NewDefault()

// SetLogger sets the logger for the auth api package
func SetLogger(l *logs.Logger) {
	if l != nil {
		log = l
	}
}

// NewHandler creates a new auth handler
func NewHandler(cfg Config) *Handler {
	return &Handler{
		users:      cfg.Users,
		jwtService: cfg.JWTService,
	}
}

func (h *Handler) issue(c *gin.Context, status int, user *db.User) {
	token, err := h.jwtService.CreateToken(coreauth.TokenPayload{
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	})
	if err != nil {
		log.Error("Failed to sign token", "user", user.Username, "error", err)
		common.Error(c, errors.ErrInternal)
		return
	}

	c.JSON(status, TokenResponse{Token: token})
}

// HandleToken exchanges a username and password for a token
// @Summary      Get a token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      TokenRequest  true  "Credentials"
// @Success      200   {object}  TokenResponse
// @Failure      400   {object}  common.ErrorResponse
// @Failure      401   {object}  common.ErrorResponse
// @Failure      429   {object}  common.ErrorResponse
// @Router       /auth/token [post]
func (h *Handler) HandleToken(c *gin.Context) {
	var req TokenRequest
	if !common.BindJSON(c, &req, errors.ErrInvalidFieldValue) {
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	common.AuditLog(c, common.AuditEvent{
		Action:   "auth.token",
		UserName: req.Username,
		Success:  err == nil,
	})
	if err != nil {
		common.Error(c, err)
		return
	}

	h.issue(c, http.StatusOK, user)
}

// HandleRegister creates a regular user and returns a token for it
// @Summary      Register
// @Description  Self registration never creates administrators
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      RegisterRequest  true  "New user"
// @Success      201   {object}  TokenResponse
// @Failure      400   {object}  common.ErrorResponse
// @Failure      429   {object}  common.ErrorResponse
// @Router       /auth/register [post]
func (h *Handler) HandleRegister(c *gin.Context) {
	var req RegisterRequest
	if !common.BindJSON(c, &req, errors.ErrInvalidFieldValue) {
		return
	}

	user, err := h.users.Register(c.Request.Context(), db.NewUser{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	common.AuditLog(c, common.AuditEvent{
		Action:   "auth.register",
		UserName: req.Username,
		Success:  err == nil,
	})
	if err != nil {
		common.Error(c, err)
		return
	}

	h.issue(c, http.StatusCreated, user)
}
