// Package common holds helpers shared by the API handler packages: identity
// lookup, error responses, request body binding and audit logging.
package common

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/bitswalk/jobly/src/common/errors"
	"github.com/bitswalk/jobly/src/common/logs"
	"github.com/bitswalk/jobly/src/joblyd/auth"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// IdentityKey is the gin context key holding the *auth.Identity of a request
const IdentityKey = "identity"

// ErrorResponse is the JSON body of every error response
type ErrorResponse = errors.Response

var log = logs.NewDefault()

// SetLogger sets the logger used for unexpected errors
func SetLogger(l *logs.Logger) {
	if l != nil {
		log = l
	}
}

// GetIdentity returns the identity attached by the authenticate middleware,
// or nil for an anonymous request.
func GetIdentity(c *gin.Context) *auth.Identity {
	if v, exists := c.Get(IdentityKey); exists {
		if identity, ok := v.(*auth.Identity); ok {
			return identity
		}
	}
	return nil
}

// Username returns the name of the calling user, or an empty string
func Username(c *gin.Context) string {
	if identity := GetIdentity(c); identity != nil {
		return identity.Username
	}
	return ""
}

// Error writes the response for err. Errors without a client-facing kind
// are logged and answered with a generic 500.
func Error(c *gin.Context, err error) {
	status := errors.GetHTTPStatus(err)
	switch {
	case status >= http.StatusInternalServerError:
		log.Error("Request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
	case errors.IsUnauthorized(err):
		c.Header("WWW-Authenticate", `Bearer realm="jobly"`)
	case errors.IsBadRequest(err), errors.IsNotFound(err):
		log.Debug("Request rejected", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
	}
	c.JSON(status, errors.NewResponse(err))
}

// AbortError writes the response for err and stops the handler chain
func AbortError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

// BadRequest sends a 400 Bad Request response
func BadRequest(c *gin.Context, message string) {
	Error(c, errors.ErrBadRequest.WithMessage(message))
}

// AbortUnauthorized aborts the request with a 401 Unauthorized response
func AbortUnauthorized(c *gin.Context) {
	AbortError(c, errors.ErrUnauthorized)
}

// AbortTooManyRequests aborts the request with a 429 Too Many Requests response
func AbortTooManyRequests(c *gin.Context, retryAfterSeconds int) {
	c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
	AbortError(c, errors.ErrRateLimited)
}

// BindJSON binds a request body into obj. A missing required field is
// reported as such, any other rejected value as invalid, and a body that
// is not JSON at all as invalid JSON.
func BindJSON(c *gin.Context, obj interface{}, invalid *errors.Error) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var fieldErrs validator.ValidationErrors
	var syntaxErr *json.SyntaxError
	switch {
	case stderrors.As(err, &fieldErrs) && fieldErrs[0].Tag() == "required":
		Error(c, errors.ErrMissingRequiredField.WithMessagef("%s is required", fieldErrs[0].Field()))
	case stderrors.As(err, &syntaxErr), stderrors.Is(err, io.EOF), stderrors.Is(err, io.ErrUnexpectedEOF):
		Error(c, errors.ErrInvalidJSON.WithMessage(err.Error()))
	default:
		Error(c, invalid.WithMessage(err.Error()))
	}
	return false
}

// QueryMap flattens the query string, keeping the first value of each key
func QueryMap(c *gin.Context) map[string]string {
	values := c.Request.URL.Query()
	q := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			q[k] = v[0]
		}
	}
	return q
}
