package errors

import "net/http"

// Common error codes used across domains
const (
	CodeNotFound       Code = "not_found"
	CodeAlreadyExists  Code = "already_exists"
	CodeInvalidRequest Code = "invalid_request"
	CodeUnauthorized   Code = "unauthorized"
	CodeInternal       Code = "internal_error"
	CodeUnavailable    Code = "unavailable"
	CodeRateLimited    Code = "rate_limited"
)

// ============================================================================
// Generic Errors
// ============================================================================

var (
	// ErrBadRequest is the generic client error. Domain errors below carry the
	// same status with a more specific code.
	ErrBadRequest = New(DomainValidation, CodeInvalidRequest, http.StatusBadRequest,
		"Bad request")

	// ErrUnauthorized is returned by every failed auth guard
	ErrUnauthorized = New(DomainAuth, CodeUnauthorized, http.StatusUnauthorized,
		"Unauthorized")
)

// ============================================================================
// Authentication Errors
// ============================================================================

var (
	// ErrInvalidCredentials is returned when a username/password pair does not match
	ErrInvalidCredentials = New(DomainAuth, "invalid_credentials", http.StatusUnauthorized,
		"Invalid username/password")

	// ErrTokenInvalid is returned when a JWT token is malformed or its signature does not verify
	ErrTokenInvalid = New(DomainAuth, "token_invalid", http.StatusUnauthorized,
		"Invalid token")

	// ErrRateLimited is returned when a client exceeds the request budget for an endpoint group
	ErrRateLimited = New(DomainAuth, CodeRateLimited, http.StatusTooManyRequests,
		"Too many requests")
)

// ============================================================================
// Company Errors
// ============================================================================

var (
	// ErrCompanyNotFound is returned when no company has the requested handle
	ErrCompanyNotFound = New(DomainCompany, CodeNotFound, http.StatusNotFound,
		"No company")

	// ErrDuplicateCompany is returned when a company handle is already taken
	ErrDuplicateCompany = New(DomainCompany, CodeAlreadyExists, http.StatusBadRequest,
		"Duplicate company")

	// ErrInvalidCompanyData is returned when company data fails validation
	ErrInvalidCompanyData = New(DomainCompany, CodeInvalidRequest, http.StatusBadRequest,
		"Invalid company data")
)

// ============================================================================
// Job Errors
// ============================================================================

var (
	// ErrJobNotFound is returned when no job matches the requested id or title
	ErrJobNotFound = New(DomainJob, CodeNotFound, http.StatusNotFound,
		"No job")

	// ErrInvalidJobData is returned when job data fails validation
	ErrInvalidJobData = New(DomainJob, CodeInvalidRequest, http.StatusBadRequest,
		"Invalid job data")

	// ErrUnknownCompany is returned when a job references a company handle that does not exist
	ErrUnknownCompany = New(DomainJob, "unknown_company", http.StatusBadRequest,
		"Referenced company does not exist")
)

// ============================================================================
// User Errors
// ============================================================================

var (
	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = New(DomainUser, CodeNotFound, http.StatusNotFound,
		"No user")

	// ErrDuplicateUsername is returned when trying to register a username that already exists
	ErrDuplicateUsername = New(DomainUser, CodeAlreadyExists, http.StatusBadRequest,
		"Duplicate username")

	// ErrDuplicateApplication is returned when a user applies to the same job twice
	ErrDuplicateApplication = New(DomainUser, "already_applied", http.StatusBadRequest,
		"Already applied to job")
)

// ============================================================================
// Storage Errors
// ============================================================================

var (
	// ErrStorageNotFound is returned when a storage object cannot be found
	ErrStorageNotFound = New(DomainStorage, CodeNotFound, http.StatusNotFound,
		"Object not found in storage")

	// ErrStorageUploadFailed is returned when a storage upload fails
	ErrStorageUploadFailed = New(DomainStorage, "upload_failed", http.StatusInternalServerError,
		"Failed to upload object to storage")

	// ErrStorageUnavailable is returned when the storage backend is unavailable
	ErrStorageUnavailable = New(DomainStorage, CodeUnavailable, http.StatusServiceUnavailable,
		"Storage backend unavailable")
)

// ============================================================================
// Database Errors
// ============================================================================

var (
	// ErrDatabaseConnection is returned when database connection fails
	ErrDatabaseConnection = New(DomainDatabase, "connection_failed", http.StatusServiceUnavailable,
		"Database connection failed")

	// ErrDatabaseQuery is returned when a database query fails
	ErrDatabaseQuery = New(DomainDatabase, "query_failed", http.StatusInternalServerError,
		"Database query failed")
)

// ============================================================================
// Validation Errors
// ============================================================================

var (
	// ErrNoData is returned when a partial update carries no fields
	ErrNoData = New(DomainValidation, "no_data", http.StatusBadRequest,
		"No data")

	// ErrInvalidFilter is returned when a list query carries an unsupported filter key
	ErrInvalidFilter = New(DomainValidation, "invalid_filter", http.StatusBadRequest,
		"Invalid filter")

	// ErrMissingRequiredField is returned when a required field is missing
	ErrMissingRequiredField = New(DomainValidation, "missing_field", http.StatusBadRequest,
		"Missing required field")

	// ErrInvalidFieldValue is returned when a field value is invalid
	ErrInvalidFieldValue = New(DomainValidation, "invalid_value", http.StatusBadRequest,
		"Invalid field value")

	// ErrInvalidJSON is returned when JSON parsing fails
	ErrInvalidJSON = New(DomainValidation, "invalid_json", http.StatusBadRequest,
		"Invalid JSON")
)

// ============================================================================
// Internal Errors
// ============================================================================

var (
	// ErrInternal is a generic internal server error
	ErrInternal = New(DomainInternal, CodeInternal, http.StatusInternalServerError,
		"Internal server error")
)
