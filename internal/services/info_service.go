// filepath: internal/services/info_service.go
package services

import (
	"time"

	"github.com/noahchrist/myCbbModel/internal/models"
)

var _ InfoService = (*infoService)(nil)

type infoService struct {
	Version    string
	StartTime  time.Time
	DatabaseOK bool
}

// NewInfoService creates a new InfoService. databaseOK reflects whether the
// store was reachable when the server came up.
func NewInfoService(version string, startTime time.Time, databaseOK bool) *infoService {
	return &infoService{
		Version:    version,
		StartTime:  startTime,
		DatabaseOK: databaseOK,
	}
}

// GetInfo retrieves the application information.
func (s *infoService) GetInfo() models.Info {
	return models.Info{
		Msg:         "Backend up!",
		ServiceName: "myCbbModel-API",
		Version:     s.Version,
		UptimeSince: s.StartTime,
		DatabaseOK:  s.DatabaseOK,
	}
}
