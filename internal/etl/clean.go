// filepath: internal/etl/clean.go
package etl

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/noahchrist/myCbbModel/internal/models"
)

// dateLayouts are the accepted date formats, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"1/2/2006",
	"1/2/06",
	"Jan 2, 2006",
	"January 2, 2006",
	"02-Jan-06",
}

// CleanGame converts one raw row (canonical column order) into a Game.
// Values that cannot be parsed become NULL; the row itself is kept.
func CleanGame(raw []string) models.Game {
	game := make(models.Game, len(models.StandardGameColumns))
	for i, col := range models.StandardGameColumns {
		var value string
		if i < len(raw) {
			value = strings.TrimSpace(raw[i])
		}
		switch col.Type {
		case "TIMESTAMP":
			game[col.Name] = parseDate(value)
		case "INTEGER":
			game[col.Name] = parseInt(value)
		default:
			game[col.Name] = cleanString(value)
		}
	}
	return game
}

// cleanString stores empty cells as NULL rather than empty strings.
func cleanString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func parseDate(s string) interface{} {
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return nil
}

func parseInt(s string) interface{} {
	if s == "" {
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	// Scores sometimes arrive as float strings ("87.0").
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) {
		return int64(f)
	}
	return nil
}
