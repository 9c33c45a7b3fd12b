// filepath: internal/api/handlers/main.go
package handlers

import (
	"github.com/noahchrist/myCbbModel/internal/services"
)

// Handlers provides a struct to hold shared dependencies for API handlers.
type Handlers struct {
	// Depend on interfaces, not concrete structs
	Info services.InfoService
}

// NewHandlers creates a new instance of Handlers with its dependencies.
func NewHandlers(info services.InfoService) *Handlers {
	return &Handlers{
		Info: info,
	}
}
