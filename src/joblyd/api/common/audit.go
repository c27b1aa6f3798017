package common

import (
	"github.com/bitswalk/jobly/src/common/logs"
	"github.com/gin-gonic/gin"
)

var auditLogger = logs.NewDefault()

// SetAuditLogger sets the logger used for audit events.
func SetAuditLogger(l *logs.Logger) {
	if l != nil {
		auditLogger = l
	}
}

// AuditEvent is a security-relevant action taken through the API.
type AuditEvent struct {
	// Action identifies the operation, e.g. "company.create" or "auth.token".
	Action string
	// UserName is the acting user. Filled from the request identity when empty.
	UserName string
	// Resource identifies the target, e.g. "company:acme" or "job:12".
	Resource string
	ClientIP string
	Detail   string
	Success  bool
}

// AuditLog emits a structured audit entry tagged audit=true.
func AuditLog(c *gin.Context, event AuditEvent) {
	status := "success"
	if !event.Success {
		status = "failure"
	}

	if c != nil {
		if event.ClientIP == "" {
			event.ClientIP = c.ClientIP()
		}
		if event.UserName == "" {
			event.UserName = Username(c)
		}
	}

	args := []any{
		"audit", true,
		"action", event.Action,
		"status", status,
		"client_ip", event.ClientIP,
	}
	if event.UserName != "" {
		args = append(args, "user", event.UserName)
	}
	if event.Resource != "" {
		args = append(args, "resource", event.Resource)
	}
	if event.Detail != "" {
		args = append(args, "detail", event.Detail)
	}

	auditLogger.Info("audit", args...)
}
