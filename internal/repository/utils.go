// filepath: internal/repository/utils.go
package repository

import (
	"database/sql"

	"github.com/noahchrist/myCbbModel/internal/models"
)

// scanGame is a helper function to scan a row into a Game map.
// It handles whatever column set the table carries.
func scanGame(rows *sql.Rows) (models.Game, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	// Create slices to hold the pointers to the scanned data.
	values := make([]interface{}, len(columns))
	valuePtrs := make([]interface{}, len(columns))
	for i := range columns {
		valuePtrs[i] = &values[i]
	}

	if err := rows.Scan(valuePtrs...); err != nil {
		return nil, err
	}

	game := make(models.Game)
	for i, col := range columns {
		val := values[i]
		// Convert byte slices (TEXT columns) to strings for easier handling.
		if b, ok := val.([]byte); ok {
			game[col] = string(b)
		} else {
			game[col] = val
		}
	}

	return game, nil
}
