package db

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Equity is a fractional ownership stake in [0, 1]. It keeps the exact
// decimal text it was given and always marshals to a JSON string, so 0.4
// goes in as a number and comes back as "0.4".
type Equity string

// equityText is the plain decimal notation of a value in [0, 1]. Exponent,
// hex and NaN forms are refused even though ParseFloat would read them.
var equityText = regexp.MustCompile(`^(0|0?\.[0-9]+|1(\.0+)?)$`)

// ParseEquity validates a decimal string
func ParseEquity(s string) (Equity, error) {
	e := Equity(strings.TrimSpace(s))
	if err := e.Validate(); err != nil {
		return "", err
	}
	return e, nil
}

// Validate checks that e is a plain decimal between 0 and 1
func (e Equity) Validate() error {
	if !equityText.MatchString(string(e)) {
		return fmt.Errorf("equity must be a decimal between 0 and 1: %q", string(e))
	}
	return nil
}

// UnmarshalJSON accepts either a JSON number or a decimal string
func (e *Equity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var raw string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	} else {
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("equity must be a decimal number")
		}
		raw = n.String()
	}

	parsed, err := ParseEquity(raw)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// MarshalJSON renders the equity as a JSON string
func (e Equity) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(e))
}

// Value stores the equity as its decimal text
func (e Equity) Value() (driver.Value, error) {
	return string(e), nil
}

// Company is a row of the companies table
type Company struct {
	Handle       string  `json:"handle" example:"acme"`
	Name         string  `json:"name" example:"Acme Corp"`
	Description  string  `json:"description" example:"Makes everything"`
	NumEmployees *int    `json:"numEmployees" example:"250"`
	LogoURL      *string `json:"logoUrl" example:"https://acme.example/logo.png"`

	// LogoKey is the storage key of an uploaded logo
	LogoKey string `json:"-"`
}

// CompanyWithJobs is a company with every job that references it
type CompanyWithJobs struct {
	Company
	Jobs []Job `json:"jobs"`
}

// NewCompany carries the fields of a company to create
type NewCompany struct {
	Handle       string
	Name         string
	Description  string
	NumEmployees *int
	LogoURL      *string
}

// Job is a row of the jobs table
type Job struct {
	ID            int64   `json:"id" example:"1"`
	Title         string  `json:"title" example:"Engineer"`
	Salary        *int    `json:"salary" example:"100000"`
	Equity        *Equity `json:"equity" swaggertype:"string" example:"0.4"`
	CompanyHandle string  `json:"company_handle" example:"acme"`
}

// JobWithCompany is a job whose company_handle carries the full owning company
type JobWithCompany struct {
	ID      int64    `json:"id" example:"1"`
	Title   string   `json:"title" example:"Engineer"`
	Salary  *int     `json:"salary" example:"100000"`
	Equity  *Equity  `json:"equity" swaggertype:"string" example:"0.4"`
	Company *Company `json:"company_handle"`
}

// NewJob carries the fields of a job to create
type NewJob struct {
	Title         string
	Salary        *int
	Equity        *Equity
	CompanyHandle string
}

// User is a row of the users table without its password hash
type User struct {
	Username  string `json:"username" example:"jdoe"`
	FirstName string `json:"firstName" example:"Jane"`
	LastName  string `json:"lastName" example:"Doe"`
	Email     string `json:"email" example:"jane@example.com"`
	IsAdmin   bool   `json:"isAdmin" example:"false"`
}

// UserWithJobs is a user with the ids of the jobs they applied to
type UserWithJobs struct {
	User
	Jobs []int64 `json:"jobs"`
}

// NewUser carries the fields of a user to register
type NewUser struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	IsAdmin   bool
}
