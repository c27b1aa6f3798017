// Package users serves the /users endpoints.
package users

import (
	"net/http"
	"strconv"

	"github.com/bitswalk/jobly/src/common/errors"
	"github.com/bitswalk/jobly/src/joblyd/api/common"
	"github.com/bitswalk/jobly/src/joblyd/auth"
	"github.com/bitswalk/jobly/src/joblyd/db"
	"github.com/gin-gonic/gin"
)

var updateSchema = common.FieldSchema{
	"password":  common.String(5, 20),
	"firstName": common.String(1, 30),
	"lastName":  common.String(1, 30),
	"email":     common.Email(),
	"isAdmin":   common.Bool(),
}

// NewHandler creates a new users handler
func NewHandler(cfg Config) *Handler {
	return &Handler{
		users:      cfg.Users,
		jwtService: cfg.JWTService,
	}
}

// HandleCreate creates a user and returns a token for it
// @Summary      Create a user
// @Description  Administrators create users, including other administrators
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        body  body      CreateUserRequest  true  "User data"
// @Success      201   {object}  CreateUserResponse
// @Failure      400   {object}  common.ErrorResponse
// @Failure      401   {object}  common.ErrorResponse
// @Security     BearerAuth
// @Router       /users [post]
func (h *Handler) HandleCreate(c *gin.Context) {
	var req CreateUserRequest
	if !common.BindJSON(c, &req, errors.ErrInvalidFieldValue) {
		return
	}

	user, err := h.users.Register(c.Request.Context(), db.NewUser{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		IsAdmin:   req.IsAdmin,
	})
	common.AuditLog(c, common.AuditEvent{
		Action:   "user.create",
		Resource: "user:" + req.Username,
		Detail:   "isAdmin=" + strconv.FormatBool(req.IsAdmin),
		Success:  err == nil,
	})
	if err != nil {
		common.Error(c, err)
		return
	}

	token, err := h.jwtService.CreateToken(auth.TokenPayload{Username: user.Username, IsAdmin: user.IsAdmin})
	if err != nil {
		common.Error(c, errors.ErrInternal.WithCause(err))
		return
	}

	c.JSON(http.StatusCreated, CreateUserResponse{User: user, Token: token})
}

// HandleList lists every user
// @Summary      List users
// @Tags         Users
// @Produce      json
// @Success      200  {object}  UserListResponse
// @Failure      401  {object}  common.ErrorResponse
// @Security     BearerAuth
// @Router       /users [get]
func (h *Handler) HandleList(c *gin.Context) {
	users, err := h.users.FindAll(c.Request.Context())
	if err != nil {
		common.Error(c, err)
		return
	}

	if users == nil {
		users = []db.User{}
	}
	c.JSON(http.StatusOK, UserListResponse{Users: users})
}

// HandleGet returns a user with the jobs they applied to
// @Summary      Get a user
// @Tags         Users
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  UserWithJobsResponse
// @Failure      401       {object}  common.ErrorResponse
// @Failure      404       {object}  common.ErrorResponse
// @Security     BearerAuth
// @Router       /users/{username} [get]
func (h *Handler) HandleGet(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		common.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, UserWithJobsResponse{User: user})
}

// HandleUpdate applies a partial update to a user
// @Summary      Update a user
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        username  path      string             true  "Username"
// @Param        body      body      UpdateUserRequest  true  "Fields to change"
// @Success      200       {object}  UserResponse
// @Failure      400       {object}  common.ErrorResponse
// @Failure      401       {object}  common.ErrorResponse
// @Failure      404       {object}  common.ErrorResponse
// @Security     BearerAuth
// @Router       /users/{username} [patch]
func (h *Handler) HandleUpdate(c *gin.Context) {
	username := c.Param("username")

	fields, ok := common.BindFields(c, updateSchema)
	if !ok {
		return
	}

	// Users may edit themselves but never grant or drop admin rights.
	if _, changesRole := fields.Get("isAdmin"); changesRole {
		if identity := common.GetIdentity(c); identity == nil || !identity.IsAdmin {
			common.AuditLog(c, common.AuditEvent{
				Action:   "user.update",
				Resource: "user:" + username,
				Detail:   "isAdmin change refused",
			})
			common.Error(c, errors.ErrUnauthorized)
			return
		}
	}

	user, err := h.users.Update(c.Request.Context(), username, fields)
	common.AuditLog(c, common.AuditEvent{
		Action:   "user.update",
		Resource: "user:" + username,
		Success:  err == nil,
	})
	if err != nil {
		common.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, UserResponse{User: user})
}

// HandleDelete removes a user
// @Summary      Delete a user
// @Tags         Users
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  DeletedResponse
// @Failure      401       {object}  common.ErrorResponse
// @Failure      404       {object}  common.ErrorResponse
// @Security     BearerAuth
// @Router       /users/{username} [delete]
func (h *Handler) HandleDelete(c *gin.Context) {
	username := c.Param("username")

	err := h.users.Remove(c.Request.Context(), username)
	common.AuditLog(c, common.AuditEvent{
		Action:   "user.delete",
		Resource: "user:" + username,
		Success:  err == nil,
	})
	if err != nil {
		common.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, DeletedResponse{Deleted: username})
}

// HandleApply records a job application
// @Summary      Apply to a job
// @Tags         Users
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Param        id        path      int     true  "Job id"
// @Success      200       {object}  AppliedResponse
// @Failure      400       {object}  common.ErrorResponse
// @Failure      401       {object}  common.ErrorResponse
// @Failure      404       {object}  common.ErrorResponse
// @Security     BearerAuth
// @Router       /users/{username}/jobs/{id} [post]
func (h *Handler) HandleApply(c *gin.Context) {
	username := c.Param("username")

	jobID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.Error(c, errors.ErrJobNotFound.WithMessagef("No job: %s", c.Param("id")))
		return
	}

	err = h.users.ApplyToJob(c.Request.Context(), username, jobID)
	common.AuditLog(c, common.AuditEvent{
		Action:   "user.apply",
		Resource: "job:" + c.Param("id"),
		Success:  err == nil,
	})
	if err != nil {
		common.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, AppliedResponse{Applied: jobID})
}
