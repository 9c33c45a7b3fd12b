// filepath: internal/repository/games_repo.go
package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/noahchrist/myCbbModel/internal/models"
	"github.com/noahchrist/myCbbModel/internal/shared"

	"github.com/Masterminds/squirrel"
	"github.com/patrickmn/go-cache"
)

// CreateGamesTable creates a games table with the standard column set.
// It is a no-op if the table already exists.
func (s *Repository) CreateGamesTable(table string) error {
	// --- SECURITY: Validate table name ---
	if !SafeNameRegex.MatchString(table) {
		return fmt.Errorf("games table %q: %w", table, shared.ErrInvalidName)
	}

	tx, err := s.BeginTx()
	if err != nil {
		return err
	}
	defer tx.Rollback() // Rollback on any error

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("CREATE TABLE IF NOT EXISTS \"%s\" (", table))
	sb.WriteString("\n\tid INTEGER PRIMARY KEY AUTOINCREMENT")
	for _, col := range models.StandardGameColumns {
		// Names come from the fixed schema definition, no user input involved.
		sb.WriteString(fmt.Sprintf(",\n\t\"%s\" %s", col.Name, col.Type))
	}
	sb.WriteString("\n);")

	if _, err := tx.Exec(sb.String()); err != nil {
		return err
	}

	// Index the columns the summary queries order and group by.
	for _, colName := range []string{"date", "team_name"} {
		indexQuery := fmt.Sprintf("CREATE INDEX IF NOT EXISTS \"idx_%s_%s\" ON \"%s\"(\"%s\");", table, colName, table, colName)
		if _, err := tx.Exec(indexQuery); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.Cache.Delete(tableColumnsCacheKey(table))
	return nil
}

// DropGamesTable removes a games table entirely. Used by the replace load mode.
func (s *Repository) DropGamesTable(table string) error {
	if !SafeNameRegex.MatchString(table) {
		return fmt.Errorf("games table %q: %w", table, shared.ErrInvalidName)
	}

	dropQuery := fmt.Sprintf("DROP TABLE IF EXISTS \"%s\";", table)
	if _, err := s.DB.Exec(dropQuery); err != nil {
		return err
	}

	s.Cache.Delete(tableColumnsCacheKey(table))
	return nil
}

// GamesTableExists reports whether the named table is present in the database.
func (s *Repository) GamesTableExists(table string) (bool, error) {
	if !SafeNameRegex.MatchString(table) {
		return false, fmt.Errorf("games table %q: %w", table, shared.ErrInvalidName)
	}

	var name string
	err := s.DB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = ?", table).Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GamesTableColumns returns the column names of a games table in definition
// order. Results are cached because the ETL asks repeatedly while batching.
func (s *Repository) GamesTableColumns(table string) ([]string, error) {
	if !SafeNameRegex.MatchString(table) {
		return nil, fmt.Errorf("games table %q: %w", table, shared.ErrInvalidName)
	}

	cacheKey := tableColumnsCacheKey(table)
	if cached, found := s.Cache.Get(cacheKey); found {
		return cached.([]string), nil
	}

	rows, err := s.DB.Query(fmt.Sprintf("PRAGMA table_info(\"%s\")", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns := make([]string, 0, len(models.StandardGameColumns)+1)
	for rows.Next() {
		var (
			cid        int
			name       string
			colType    string
			notNull    int
			defaultVal interface{}
			pk         int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &defaultVal, &pk); err != nil {
			return nil, err
		}
		columns = append(columns, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(columns) == 0 {
		return nil, fmt.Errorf("games table %q: %w", table, shared.ErrTableNotFound)
	}

	s.Cache.Set(cacheKey, columns, cache.DefaultExpiration)
	return columns, nil
}

// CountGames returns the number of rows in a games table.
func (s *Repository) CountGames(table string) (int64, error) {
	if !SafeNameRegex.MatchString(table) {
		return 0, fmt.Errorf("games table %q: %w", table, shared.ErrInvalidName)
	}

	query := s.Builder.Select("COUNT(*)").From(fmt.Sprintf("\"%s\"", table))
	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int64
	if err := s.DB.QueryRow(sqlQuery, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// HeadGames returns the first rows of a games table ordered by insertion.
// Used for post-load summaries.
func (s *Repository) HeadGames(table string, limit int) ([]models.Game, error) {
	if !SafeNameRegex.MatchString(table) {
		return nil, fmt.Errorf("games table %q: %w", table, shared.ErrInvalidName)
	}

	query := s.Builder.Select("*").
		From(fmt.Sprintf("\"%s\"", table)).
		OrderBy("id ASC").
		Limit(uint64(limit))

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := s.DB.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	games := make([]models.Game, 0, limit)
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return games, nil
}

// InsertGames writes a batch of games in a single transaction and returns
// the number of rows inserted.
func (s *Repository) InsertGames(table string, games []models.Game) (int64, error) {
	if len(games) == 0 {
		return 0, nil
	}

	tx, err := s.BeginTx()
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	inserted, err := tx.InsertGamesInTx(s.Builder, table, games)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return inserted, nil
}

// DistinctTeams returns the distinct team names of a games table, ordered
// alphabetically. NULL team names are skipped.
func (s *Repository) DistinctTeams(table string) ([]string, error) {
	if !SafeNameRegex.MatchString(table) {
		return nil, fmt.Errorf("games table %q: %w", table, shared.ErrInvalidName)
	}

	query := s.Builder.Select("DISTINCT team_name").
		From(fmt.Sprintf("\"%s\"", table)).
		Where(squirrel.NotEq{"team_name": nil}).
		OrderBy("team_name ASC")

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := s.DB.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	teams := make([]string, 0)
	for rows.Next() {
		var team string
		if err := rows.Scan(&team); err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return teams, nil
}

func tableColumnsCacheKey(table string) string {
	return "table_columns:" + table
}
