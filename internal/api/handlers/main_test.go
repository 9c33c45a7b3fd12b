// filepath: internal/api/handlers/main_test.go
package handlers

import (
	"github.com/noahchrist/myCbbModel/internal/models"
	"github.com/noahchrist/myCbbModel/internal/services"

	"github.com/stretchr/testify/mock"
)

// --- MOCK INFO SERVICE ---
type MockInfoService struct {
	mock.Mock
}

var _ services.InfoService = (*MockInfoService)(nil)

func (m *MockInfoService) GetInfo() models.Info {
	args := m.Called()
	return args.Get(0).(models.Info)
}
