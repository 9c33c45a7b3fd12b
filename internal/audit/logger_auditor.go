// filepath: internal/audit/logger_auditor.go
// Package audit records data-mutating operations, currently collection runs.
package audit

import (
	"context"

	"github.com/noahchrist/myCbbModel/internal/logging"
	"github.com/noahchrist/myCbbModel/internal/services"

	"github.com/sirupsen/logrus"
)

var _ services.Auditor = (*LoggerAuditor)(nil)

// LoggerAuditor writes audit events to the shared application log. Events
// land in the same stream as regular logs, tagged so they are easy to grep.
type LoggerAuditor struct {
	enabled bool
}

// NewLoggerAuditor creates a LoggerAuditor. When disabled, Log is a no-op.
func NewLoggerAuditor(enabled bool) *LoggerAuditor {
	return &LoggerAuditor{enabled: enabled}
}

// Log records one audit event at INFO level.
func (a *LoggerAuditor) Log(ctx context.Context, action string, actor string, resource string, details map[string]interface{}) {
	if !a.enabled {
		return
	}

	fields := logrus.Fields{
		"audit_action":   action,
		"audit_actor":    actor,
		"audit_resource": resource,
	}
	for k, v := range details {
		fields["detail."+k] = v
	}

	logging.Log.WithFields(fields).Info("AUDIT EVENT")
}
