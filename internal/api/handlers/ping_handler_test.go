// filepath: internal/api/handlers/ping_handler_test.go
package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/noahchrist/myCbbModel/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestPing(t *testing.T) {
	// Ping needs no services at all.
	h := &Handlers{}

	req, err := http.NewRequest("GET", "/ping", nil)
	assert.NoError(t, err)
	rr := httptest.NewRecorder()

	h.Ping(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"pong":true}`, rr.Body.String())

	var response models.Ping
	err = json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.True(t, response.Pong)
}
