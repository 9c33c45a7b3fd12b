// filepath: internal/etl/interfaces.go
package etl

import (
	"context"

	"github.com/noahchrist/myCbbModel/internal/models"
	"github.com/noahchrist/myCbbModel/internal/shared"
)

// Store defines the database methods required by the collector.
// This decouples the pipeline logic from the concrete repository implementation.
type Store interface {
	CreateGamesTable(table string) error
	DropGamesTable(table string) error
	GamesTableExists(table string) (bool, error)
	GamesTableColumns(table string) ([]string, error)
	InsertGames(table string, games []models.Game) (int64, error)
	CountGames(table string) (int64, error)
	HeadGames(table string, limit int) ([]models.Game, error)
	CreateRun(run *models.Run) error
	FinishRun(run *models.Run) error
}

// Downloader fetches dataset archives.
type Downloader interface {
	DownloadDataset(ctx context.Context, ref shared.DatasetRef, destPath string) (int64, error)
}
