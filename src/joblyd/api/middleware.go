package api

import (
	"github.com/bitswalk/jobly/src/joblyd/api/common"
	"github.com/bitswalk/jobly/src/joblyd/auth"
	"github.com/gin-gonic/gin"
)

// authenticate attaches the identity of a valid bearer token to the
// request. A missing or invalid token leaves the request anonymous.
func (a *API) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := auth.TokenFromHeader(c.GetHeader("Authorization")); token != "" {
			if identity, err := a.jwtService.ValidateToken(token); err == nil {
				c.Set(common.IdentityKey, identity)
			}
		}
		c.Next()
	}
}

// requireLoggedIn rejects anonymous requests
func (a *API) requireLoggedIn() gin.HandlerFunc {
	return func(c *gin.Context) {
		if common.GetIdentity(c) == nil {
			common.AbortUnauthorized(c)
			return
		}
		c.Next()
	}
}

// requireAdmin rejects requests that do not carry an admin identity
func (a *API) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := common.GetIdentity(c)
		if identity == nil || !identity.IsAdmin {
			common.AbortUnauthorized(c)
			return
		}
		c.Next()
	}
}

// requireAdminOrSelf admits admins and the user named by the :username
// route parameter
func (a *API) requireAdminOrSelf() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := common.GetIdentity(c)
		if identity == nil || !(identity.IsAdmin || identity.Username == c.Param("username")) {
			common.AbortUnauthorized(c)
			return
		}
		c.Next()
	}
}

// rateLimitAuth limits token and registration requests per client IP
func (a *API) rateLimitAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if a.rateLimiter == nil {
			c.Next()
			return
		}
		ok, wait := a.rateLimiter.Take(c.ClientIP())
		if !ok {
			common.AuditLog(c, common.AuditEvent{Action: "auth.rate_limited", Detail: c.Request.URL.Path})
			common.AbortTooManyRequests(c, retryAfterSeconds(wait))
			return
		}
		c.Next()
	}
}
