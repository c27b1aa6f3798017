// Package companies serves the /companies endpoints.
package companies

import (
	"context"
	"net/http"
	"time"

	"github.com/bitswalk/jobly/src/common/errors"
	"github.com/bitswalk/jobly/src/common/logs"
	"github.com/bitswalk/jobly/src/joblyd/api/common"
	"github.com/bitswalk/jobly/src/joblyd/db"
	"github.com/gin-gonic/gin"
)

var log = logs.NewDefault()

// SetLogger sets the logger for the companies api package
func SetLogger(l *logs.Logger) {
	if l != nil {
		log = l
	}
}

// DefaultMaxLogoBytes caps logo uploads when no limit is configured
const DefaultMaxLogoBytes = 2 << 20

var updateSchema = common.FieldSchema{
	"name":         common.String(1, 0),
	"description":  common.String(0, 0),
	"numEmployees": common.NullableInt(0),
	"logoUrl":      common.NullableURL(),
}

// NewHandler creates a new companies handler
func NewHandler(cfg Config) *Handler {
	maxLogo := cfg.MaxLogoBytes
	if maxLogo <= 0 {
		maxLogo = DefaultMaxLogoBytes
	}
	return &Handler{
		companies:    cfg.Companies,
		storage:      cfg.Storage,
		maxLogoBytes: maxLogo,
	}
}

// HandleCreate creates a company
// @Summary      Create a company
// @Tags         Companies
// @Accept       json
// @Produce      json
// @Param        body  body      CreateCompanyRequest  true  "Company data"
// @Success      201   {object}  CompanyResponse
// @Failure      400   {object}  common.ErrorResponse
// @Failure      401   {object}  common.ErrorResponse
// @Security     BearerAuth
// @Router       /companies [post]
func (h *Handler) HandleCreate(c *gin.Context) {
	var req CreateCompanyRequest
	if !common.BindJSON(c, &req, errors.ErrInvalidCompanyData) {
		return
	}

	company, err := h.companies.Create(c.Request.Context(), db.NewCompany{
		Handle:       req.Handle,
		Name:         req.Name,
		Description:  req.Description,
		NumEmployees: req.NumEmployees,
		LogoURL:      req.LogoURL,
	})
	common.AuditLog(c, common.AuditEvent{
		Action:   "company.create",
		Resource: "company:" + req.Handle,
		Success:  err == nil,
	})
	if err != nil {
		common.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, CompanyResponse{Company: company})
}

// HandleList lists companies, filtered when the query string is not empty
// @Summary      List companies
// @Tags         Companies
// @Produce      json
// @Param        name          query     string  false  "Case-insensitive name substring"
// @Param        minEmployees  query     int     false  "Minimum number of employees"
// @Param        maxEmployees  query     int     false  "Maximum number of employees"
// @Success      200           {object}  CompanyListResponse
// @Failure      400           {object}  common.ErrorResponse
// @Router       /companies [get]
func (h *Handler) HandleList(c *gin.Context) {
	ctx := c.Request.Context()

	var companies []db.Company
	var err error
	if q := common.QueryMap(c); len(q) > 0 {
		companies, err = h.companies.Filter(ctx, db.Query(q))
	} else {
		companies, err = h.companies.FindAll(ctx)
	}
	if err != nil {
		common.Error(c, err)
		return
	}

	if companies == nil {
		companies = []db.Company{}
	}
	c.JSON(http.StatusOK, CompanyListResponse{Companies: companies})
}

// HandleGet returns a company with its jobs
// @Summary      Get a company
// @Tags         Companies
// @Produce      json
// @Param        handle  path      string  true  "Company handle"
// @Success      200     {object}  CompanyWithJobsResponse
// @Failure      404     {object}  common.ErrorResponse
// @Router       /companies/{handle} [get]
func (h *Handler) HandleGet(c *gin.Context) {
	company, err := h.companies.Get(c.Request.Context(), c.Param("handle"))
	if err != nil {
		common.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, CompanyWithJobsResponse{Company: company})
}

// HandleUpdate applies a partial update to a company
// @Summary      Update a company
// @Tags         Companies
// @Accept       json
// @Produce      json
// @Param        handle  path      string                true  "Company handle"
// @Param        body    body      UpdateCompanyRequest  true  "Fields to change"
// @Success      200     {object}  CompanyResponse
// @Failure      400     {object}  common.ErrorResponse
// @Failure      401     {object}  common.ErrorResponse
// @Failure      404     {object}  common.ErrorResponse
// @Security     BearerAuth
// @Router       /companies/{handle} [patch]
func (h *Handler) HandleUpdate(c *gin.Context) {
	handle := c.Param("handle")

	fields, ok := common.BindFields(c, updateSchema)
	if !ok {
		return
	}

	company, err := h.companies.Update(c.Request.Context(), handle, fields)
	common.AuditLog(c, common.AuditEvent{
		Action:   "company.update",
		Resource: "company:" + handle,
		Success:  err == nil,
	})
	if err != nil {
		common.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, CompanyResponse{Company: company})
}

// HandleDelete removes a company and its stored logo
// @Summary      Delete a company
// @Tags         Companies
// @Produce      json
// @Param        handle  path      string  true  "Company handle"
// @Success      200     {object}  DeletedResponse
// @Failure      401     {object}  common.ErrorResponse
// @Failure      404     {object}  common.ErrorResponse
// @Security     BearerAuth
// @Router       /companies/{handle} [delete]
func (h *Handler) HandleDelete(c *gin.Context) {
	ctx := c.Request.Context()
	handle := c.Param("handle")

	logoKey := ""
	if h.storage != nil {
		logoKey, _ = h.companies.LogoKey(ctx, handle)
	}

	err := h.companies.Remove(ctx, handle)
	common.AuditLog(c, common.AuditEvent{
		Action:   "company.delete",
		Resource: "company:" + handle,
		Success:  err == nil,
	})
	if err != nil {
		common.Error(c, err)
		return
	}

	if logoKey != "" {
		h.removeObject(ctx, logoKey)
	}

	c.JSON(http.StatusOK, DeletedResponse{Deleted: handle})
}

// removeObject deletes a stored object, logging failures. The company row
// is already gone or updated, so the request still succeeds.
func (h *Handler) removeObject(ctx context.Context, key string) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := h.storage.Delete(ctx, key); err != nil {
		log.Warn("Failed to delete stored logo", "key", key, "error", err)
	}
}
