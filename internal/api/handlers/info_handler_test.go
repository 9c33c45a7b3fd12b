// filepath: internal/api/handlers/info_handler_test.go
package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/noahchrist/myCbbModel/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestGetInfo(t *testing.T) {
	testStartTime := time.Now()
	testInfo := models.Info{
		Msg:         "Backend up!",
		ServiceName: "myCbbModel-API",
		Version:     "0.1.0-test",
		UptimeSince: testStartTime,
		DatabaseOK:  true,
	}

	infoService := new(MockInfoService)
	infoService.On("GetInfo").Return(testInfo)

	h := &Handlers{Info: infoService}

	req, err := http.NewRequest("GET", "/api/info", nil)
	assert.NoError(t, err)
	rr := httptest.NewRecorder()

	h.GetInfo(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var response models.Info
	err = json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Backend up!", response.Msg)
	assert.Equal(t, "myCbbModel-API", response.ServiceName)
	assert.Equal(t, "0.1.0-test", response.Version)
	assert.True(t, response.DatabaseOK)

	infoService.AssertExpectations(t)
}
