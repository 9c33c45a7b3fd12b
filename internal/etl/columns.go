// filepath: internal/etl/columns.go
// Package etl implements the game data collection pipeline: download,
// extract, normalize, clean, dedupe, load and verify.
package etl

import (
	"fmt"
	"strings"

	"github.com/noahchrist/myCbbModel/internal/models"
	"github.com/noahchrist/myCbbModel/internal/shared"
)

// targetColumns maps each canonical column name to the source spellings it
// may arrive under. Lookup is case-insensitive.
var targetColumns = map[string][]string{
	"team_name": {"team", "team_name", "teamname"},
	"date":      {"date", "data", "game_date", "gamedate"},
	"site":      {"site", "location", "venue"},
	"opp_name":  {"opp_name", "opponent", "opp", "opposing_team"},
	"w_l":       {"w_l", "wl", "result", "win_loss"},
	"pts":       {"pts", "points", "score", "team_score"},
	"opp_pts":   {"opp_pts", "opp_points", "opponent_points", "opp_score"},
}

// MatchColumns resolves each canonical column to its index in the header.
// Header order wins when several source columns qualify for the same target.
func MatchColumns(header []string) (map[string]int, error) {
	mapping := make(map[string]int, len(models.StandardGameColumns))
	for _, target := range models.StandardGameColumns.Names() {
		idx, found := findColumn(header, targetColumns[target])
		if !found {
			return nil, fmt.Errorf("%w: %q (available columns: %s)",
				shared.ErrColumnNotFound, target, strings.Join(header, ", "))
		}
		mapping[target] = idx
	}
	return mapping, nil
}

func findColumn(header []string, candidates []string) (int, bool) {
	for i, col := range header {
		normalized := strings.ToLower(strings.TrimSpace(col))
		for _, candidate := range candidates {
			if normalized == candidate {
				return i, true
			}
		}
	}
	return 0, false
}
