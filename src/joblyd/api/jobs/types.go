package jobs

import "github.com/bitswalk/jobly/src/joblyd/db"

// Handler handles job HTTP requests
type Handler struct {
	jobs *db.JobRepository
}

// Config contains configuration options for the Handler
type Config struct {
	Jobs *db.JobRepository
}

// CreateJobRequest is the body of POST /jobs. Equity accepts a number or a
// decimal string in [0, 1].
type CreateJobRequest struct {
	Title         string     `json:"title" binding:"required" example:"Engineer"`
	Salary        *int       `json:"salary" binding:"omitempty,min=0" example:"100000"`
	Equity        *db.Equity `json:"equity" swaggertype:"string" example:"0.4"`
	CompanyHandle string     `json:"company_handle" binding:"required" example:"acme"`
}

// UpdateJobRequest documents the body of PATCH /jobs/{id}. Only the fields
// present in the body are changed.
type UpdateJobRequest struct {
	Title  string     `json:"title" example:"Senior Engineer"`
	Salary *int       `json:"salary" example:"120000"`
	Equity *db.Equity `json:"equity" swaggertype:"string" example:"0.5"`
}

// JobResponse wraps a single job
type JobResponse struct {
	Job *db.Job `json:"job"`
}

// JobWithCompanyResponse wraps a job carrying its owning company
type JobWithCompanyResponse struct {
	Job *db.JobWithCompany `json:"job"`
}

// JobListResponse wraps a list of jobs
type JobListResponse struct {
	Jobs []db.Job `json:"jobs"`
}

// DeletedResponse reports the id of a deleted job
type DeletedResponse struct {
	Deleted string `json:"deleted" example:"12"`
}
