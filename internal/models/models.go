// filepath: internal/models/models.go
// Package models contains the core data structures for the application.
package models

import (
	"time"
)

// Info represents general information about the service.
type Info struct {
	Msg         string    `json:"msg"`
	ServiceName string    `json:"service_name"`
	Version     string    `json:"version"`
	UptimeSince time.Time `json:"uptime_since"`
	DatabaseOK  bool      `json:"database"`
}

// Ping is the payload of the health check endpoint.
type Ping struct {
	Pong bool `json:"pong"`
}

// GameColumn defines one column of a games table.
type GameColumn struct {
	Name string `json:"name"`
	Type string `json:"type"` // Supported types: TEXT, INTEGER, TIMESTAMP
}

// GameColumns is a slice of GameColumn.
type GameColumns []GameColumn

// StandardGameColumns is the canonical schema every games table is created
// with. All columns are nullable: source rows with unparseable values keep
// the row and store NULL in the affected column.
var StandardGameColumns = GameColumns{
	{Name: "team_name", Type: "TEXT"},
	{Name: "date", Type: "TIMESTAMP"},
	{Name: "site", Type: "TEXT"},
	{Name: "opp_name", Type: "TEXT"},
	{Name: "w_l", Type: "TEXT"},
	{Name: "pts", Type: "INTEGER"},
	{Name: "opp_pts", Type: "INTEGER"},
}

// Names returns the column names in schema order.
func (gc GameColumns) Names() []string {
	names := make([]string, 0, len(gc))
	for _, c := range gc {
		names = append(names, c.Name)
	}
	return names
}

// Game represents a single game row keyed by canonical column name.
// It uses a map so rows can be built dynamically from heterogeneous
// source files; a nil value means NULL.
type Game map[string]interface{}

// Run statuses recorded in the etl_runs table.
const (
	RunStatusRunning   = "running"
	RunStatusSucceeded = "succeeded"
	RunStatusFailed    = "failed"
)

// Run records a single execution of the collection pipeline.
type Run struct {
	ID         string     `json:"id"` // ULID, sortable by start time
	Dataset    string     `json:"dataset"`
	TableName  string     `json:"table_name"`
	Mode       string     `json:"mode"`
	Status     string     `json:"status"`
	Files      int        `json:"files"`
	Duplicates int64      `json:"duplicates_dropped"`
	RowsLoaded int64      `json:"rows_loaded"`
	Error      string     `json:"error,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}
