package client

// Company is a company as returned by the API. Jobs is only set by
// GetCompany.
type Company struct {
	Handle       string  `json:"handle" yaml:"handle"`
	Name         string  `json:"name" yaml:"name"`
	Description  string  `json:"description" yaml:"description"`
	NumEmployees *int    `json:"numEmployees" yaml:"numEmployees"`
	LogoURL      *string `json:"logoUrl" yaml:"logoUrl"`
	Jobs         []Job   `json:"jobs,omitempty" yaml:"jobs,omitempty"`
}

// Job is a job as returned by list, create and update
type Job struct {
	ID            int64   `json:"id" yaml:"id"`
	Title         string  `json:"title" yaml:"title"`
	Salary        *int    `json:"salary" yaml:"salary"`
	Equity        *string `json:"equity" yaml:"equity"`
	CompanyHandle string  `json:"company_handle" yaml:"company_handle"`
}

// JobDetail is the job returned by GetJob, with the owning company in
// place of its handle
type JobDetail struct {
	ID      int64    `json:"id" yaml:"id"`
	Title   string   `json:"title" yaml:"title"`
	Salary  *int     `json:"salary" yaml:"salary"`
	Equity  *string  `json:"equity" yaml:"equity"`
	Company *Company `json:"company_handle" yaml:"company"`
}

// User is a user as returned by the API. Jobs holds the ids of applied
// jobs and is only set by GetUser.
type User struct {
	Username  string  `json:"username" yaml:"username"`
	FirstName string  `json:"firstName" yaml:"firstName"`
	LastName  string  `json:"lastName" yaml:"lastName"`
	Email     string  `json:"email" yaml:"email"`
	IsAdmin   bool    `json:"isAdmin" yaml:"isAdmin"`
	Jobs      []int64 `json:"jobs,omitempty" yaml:"jobs,omitempty"`
}

// NewCompany is the body of a company creation
type NewCompany struct {
	Handle       string  `json:"handle"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	NumEmployees *int    `json:"numEmployees,omitempty"`
	LogoURL      *string `json:"logoUrl,omitempty"`
}

// NewJob is the body of a job creation
type NewJob struct {
	Title         string  `json:"title"`
	Salary        *int    `json:"salary,omitempty"`
	Equity        *string `json:"equity,omitempty"`
	CompanyHandle string  `json:"company_handle"`
}

// NewUser is the body of an admin user creation and of a registration.
// IsAdmin is ignored by registration.
type NewUser struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"isAdmin,omitempty"`
}

// Health is the body of GET /health
type Health struct {
	Status    string            `json:"status" yaml:"status"`
	Timestamp string            `json:"timestamp" yaml:"timestamp"`
	Checks    map[string]string `json:"checks" yaml:"checks"`
}

// ServerVersion is the body of GET /version
type ServerVersion struct {
	Version   string `json:"version" yaml:"version"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GitCommit string `json:"git_commit" yaml:"git_commit"`
	GoVersion string `json:"go_version" yaml:"go_version"`
}
