// filepath: internal/services/interfaces.go
package services

import (
	"context"

	"github.com/noahchrist/myCbbModel/internal/models"
)

// Auditor defines the interface for recording security-relevant events.
type Auditor interface {
	// Log records an event.
	// ctx: context to trace request IDs (if available)
	// action: what happened (e.g., "collect.run", "table.replace")
	// actor: who did it (e.g., "cli")
	// resource: what was affected (e.g., "games_raw", "Run:01JD...")
	// details: structured metadata about the event
	Log(ctx context.Context, action string, actor string, resource string, details map[string]interface{})
}

// InfoService defines the interface for the info service.
type InfoService interface {
	GetInfo() models.Info
}
