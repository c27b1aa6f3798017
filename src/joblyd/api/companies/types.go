package companies

import (
	"github.com/bitswalk/jobly/src/joblyd/db"
	"github.com/bitswalk/jobly/src/joblyd/storage"
)

// Handler handles company HTTP requests
type Handler struct {
	companies    *db.CompanyRepository
	storage      storage.Backend
	maxLogoBytes int64
}

// Config contains configuration options for the Handler
type Config struct {
	Companies *db.CompanyRepository
	// Storage is optional; without it the logo endpoints answer 503.
	Storage      storage.Backend
	MaxLogoBytes int64
}

// CreateCompanyRequest is the body of POST /companies
type CreateCompanyRequest struct {
	Handle       string  `json:"handle" binding:"required,min=1,max=25" example:"acme"`
	Name         string  `json:"name" binding:"required" example:"Acme Corp"`
	Description  string  `json:"description" binding:"required" example:"Makes everything"`
	NumEmployees *int    `json:"numEmployees" binding:"omitempty,min=0" example:"250"`
	LogoURL      *string `json:"logoUrl" binding:"omitempty,url" example:"https://acme.example/logo.png"`
}

// UpdateCompanyRequest documents the body of PATCH /companies/{handle}.
// Only the fields present in the body are changed.
type UpdateCompanyRequest struct {
	Name         string  `json:"name" example:"Acme Corporation"`
	Description  string  `json:"description" example:"Makes everything, faster"`
	NumEmployees *int    `json:"numEmployees" example:"300"`
	LogoURL      *string `json:"logoUrl" example:"https://acme.example/logo.svg"`
}

// CompanyResponse wraps a single company
type CompanyResponse struct {
	Company *db.Company `json:"company"`
}

// CompanyWithJobsResponse wraps a company and its jobs
type CompanyWithJobsResponse struct {
	Company *db.CompanyWithJobs `json:"company"`
}

// CompanyListResponse wraps a list of companies
type CompanyListResponse struct {
	Companies []db.Company `json:"companies"`
}

// DeletedResponse reports the handle of a deleted company
type DeletedResponse struct {
	Deleted string `json:"deleted" example:"acme"`
}
