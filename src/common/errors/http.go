package errors

import "net/http"

// Response is the JSON error body returned by every API endpoint
type Response struct {
	// Error contains the error code (domain.code format)
	Error string `json:"error" example:"company.not_found"`

	// Code mirrors the HTTP status of the response
	Code int `json:"code" example:"404"`

	// Message contains a human-readable error message
	Message string `json:"message" example:"No company: nope"`
}

// ToResponse converts an Error to an HTTP response structure
func (e *Error) ToResponse() Response {
	return Response{
		Error:   string(e.Domain) + "." + string(e.Code),
		Code:    e.HTTPStatus,
		Message: e.Message,
	}
}

// NewResponse creates an error response from any error. Errors outside
// this package are reported as a generic internal error so that driver
// messages never reach clients.
func NewResponse(err error) Response {
	var e *Error
	if As(err, &e) {
		return e.ToResponse()
	}

	return Response{
		Error:   string(DomainInternal) + "." + string(CodeInternal),
		Code:    http.StatusInternalServerError,
		Message: "Internal server error",
	}
}
