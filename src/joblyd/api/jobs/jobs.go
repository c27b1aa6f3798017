// Package jobs serves the /jobs endpoints.
package jobs

import (
	"net/http"
	"strconv"

	"github.com/bitswalk/jobly/src/common/errors"
	"github.com/bitswalk/jobly/src/joblyd/api/common"
	"github.com/bitswalk/jobly/src/joblyd/db"
	"github.com/gin-gonic/gin"
)

var updateSchema = common.FieldSchema{
	"title":  common.String(1, 0),
	"salary": common.NullableInt(0),
	"equity": common.NullableEquity(),
}

// NewHandler creates a new jobs handler
func NewHandler(cfg Config) *Handler {
	return &Handler{jobs: cfg.Jobs}
}

// jobID parses the :id parameter. A value that is not an integer cannot
// name any job, so it is reported as missing.
func jobID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		common.Error(c, errors.ErrJobNotFound.WithMessagef("No job: %s", raw))
		return 0, false
	}
	return id, true
}

// HandleCreate creates a job
// @Summary      Create a job
// @Tags         Jobs
// @Accept       json
// @Produce      json
// @Param        body  body      CreateJobRequest  true  "Job data"
// @Success      201   {object}  JobResponse
// @Failure      400   {object}  common.ErrorResponse
// @Failure      401   {object}  common.ErrorResponse
// @Security     BearerAuth
// @Router       /jobs [post]
func (h *Handler) HandleCreate(c *gin.Context) {
	var req CreateJobRequest
	if !common.BindJSON(c, &req, errors.ErrInvalidJobData) {
		return
	}

	job, err := h.jobs.Create(c.Request.Context(), db.NewJob{
		Title:         req.Title,
		Salary:        req.Salary,
		Equity:        req.Equity,
		CompanyHandle: req.CompanyHandle,
	})
	event := common.AuditEvent{
		Action:   "job.create",
		Resource: "company:" + req.CompanyHandle,
		Success:  err == nil,
	}
	if err == nil {
		event.Resource = "job:" + strconv.FormatInt(job.ID, 10)
	}
	common.AuditLog(c, event)
	if err != nil {
		common.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, JobResponse{Job: job})
}

// HandleList lists jobs, filtered when the query string is not empty
// @Summary      List jobs
// @Tags         Jobs
// @Produce      json
// @Param        title      query     string  false  "Case-insensitive title substring"
// @Param        minSalary  query     int     false  "Minimum salary"
// @Param        hasEquity  query     bool    false  "Only jobs with non-zero equity when true"
// @Success      200        {object}  JobListResponse
// @Failure      400        {object}  common.ErrorResponse
// @Router       /jobs [get]
func (h *Handler) HandleList(c *gin.Context) {
	ctx := c.Request.Context()

	var jobs []db.Job
	var err error
	if q := common.QueryMap(c); len(q) > 0 {
		jobs, err = h.jobs.Filter(ctx, db.Query(q))
	} else {
		jobs, err = h.jobs.FindAll(ctx)
	}
	if err != nil {
		common.Error(c, err)
		return
	}

	if jobs == nil {
		jobs = []db.Job{}
	}
	c.JSON(http.StatusOK, JobListResponse{Jobs: jobs})
}

// HandleGet returns a job by title with its owning company
// @Summary      Get a job by title
// @Tags         Jobs
// @Produce      json
// @Param        title  path      string  true  "Job title"
// @Success      200    {object}  JobWithCompanyResponse
// @Failure      404    {object}  common.ErrorResponse
// @Router       /jobs/{title} [get]
func (h *Handler) HandleGet(c *gin.Context) {
	job, err := h.jobs.Get(c.Request.Context(), c.Param("title"))
	if err != nil {
		common.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, JobWithCompanyResponse{Job: job})
}

// HandleUpdate applies a partial update to a job
// @Summary      Update a job
// @Tags         Jobs
// @Accept       json
// @Produce      json
// @Param        id    path      int               true  "Job id"
// @Param        body  body      UpdateJobRequest  true  "Fields to change"
// @Success      200   {object}  JobResponse
// @Failure      400   {object}  common.ErrorResponse
// @Failure      401   {object}  common.ErrorResponse
// @Failure      404   {object}  common.ErrorResponse
// @Security     BearerAuth
// @Router       /jobs/{id} [patch]
func (h *Handler) HandleUpdate(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}

	fields, ok := common.BindFields(c, updateSchema)
	if !ok {
		return
	}

	job, err := h.jobs.Update(c.Request.Context(), id, fields)
	common.AuditLog(c, common.AuditEvent{
		Action:   "job.update",
		Resource: "job:" + c.Param("id"),
		Success:  err == nil,
	})
	if err != nil {
		common.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, JobResponse{Job: job})
}

// HandleDelete removes a job
// @Summary      Delete a job
// @Tags         Jobs
// @Produce      json
// @Param        id   path      int  true  "Job id"
// @Success      200  {object}  DeletedResponse
// @Failure      401  {object}  common.ErrorResponse
// @Failure      404  {object}  common.ErrorResponse
// @Security     BearerAuth
// @Router       /jobs/{id} [delete]
func (h *Handler) HandleDelete(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}

	err := h.jobs.Remove(c.Request.Context(), id)
	common.AuditLog(c, common.AuditEvent{
		Action:   "job.delete",
		Resource: "job:" + c.Param("id"),
		Success:  err == nil,
	})
	if err != nil {
		common.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, DeletedResponse{Deleted: strconv.FormatInt(id, 10)})
}
