// filepath: internal/api/handlers/ping_handler.go
package handlers

import (
	"net/http"

	"github.com/noahchrist/myCbbModel/internal/models"
)

// @Summary Ping the backend
// @Description Confirms the API is up. Returns a static pong payload and never touches the database.
// @Tags Health
// @Produce  json
// @Success 200 {object} models.Ping
// @Router /ping [get]
func (h *Handlers) Ping(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, models.Ping{Pong: true})
}
