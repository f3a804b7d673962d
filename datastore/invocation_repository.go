package datastore

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/printcolor/api/models"
)

type InvocationRepository interface {
	Create(inv models.Invocation) (models.Invocation, error)
	Get(id string) (models.Invocation, error)
	Recent(limit int) ([]models.Invocation, error)
	UsageSince(since time.Time, limit int) ([]models.ToolUsage, error)
	DeleteBefore(cutoff time.Time) (int64, error)
}

type InvocationDatabase struct {
	database *sql.DB
}

func NewInvocationDatabase(db *sql.DB) (InvocationDatabase, error) {
	var invocationDB InvocationDatabase
	invocationDB.database = db
	return invocationDB, nil
}

// Create inserts a journaled tool call
func (idb InvocationDatabase) Create(inv models.Invocation) (models.Invocation, error) {
	db := idb.database

	sqlStatement := `
		INSERT INTO tool_invocations (id, tool, status, duration_ms, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := db.Exec(
		sqlStatement,
		inv.ID,
		inv.Tool,
		inv.Status,
		inv.DurationMS,
		inv.Error,
		inv.CreatedAt,
	)
	if err != nil {
		return models.Invocation{}, fmt.Errorf("failed to create invocation: %w", err)
	}

	return inv, nil
}

// Get retrieves a single invocation by id
func (idb InvocationDatabase) Get(id string) (models.Invocation, error) {
	db := idb.database

	sqlStatement := `
		SELECT id, tool, status, duration_ms, error, created_at
		FROM tool_invocations
		WHERE id = $1`

	var inv models.Invocation
	err := db.QueryRow(sqlStatement, id).Scan(&inv.ID, &inv.Tool, &inv.Status, &inv.DurationMS, &inv.Error, &inv.CreatedAt)

	switch err {
	case sql.ErrNoRows:
		return models.Invocation{}, NoRowsError{true, err}
	case nil:
		return inv, nil
	default:
		return models.Invocation{}, err
	}
}

// Recent returns the newest invocations first
func (idb InvocationDatabase) Recent(limit int) ([]models.Invocation, error) {
	db := idb.database

	sqlStatement := `
		SELECT id, tool, status, duration_ms, error, created_at
		FROM tool_invocations
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := db.Query(sqlStatement, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query invocations: %w", err)
	}
	defer rows.Close()

	var invocations []models.Invocation
	for rows.Next() {
		var inv models.Invocation
		if err := rows.Scan(&inv.ID, &inv.Tool, &inv.Status, &inv.DurationMS, &inv.Error, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan invocation: %w", err)
		}
		invocations = append(invocations, inv)
	}

	return invocations, rows.Err()
}

// UsageSince ranks tools by number of calls since the given time
func (idb InvocationDatabase) UsageSince(since time.Time, limit int) ([]models.ToolUsage, error) {
	db := idb.database

	sqlStatement := `
		SELECT
			ROW_NUMBER() OVER (ORDER BY COUNT(*) DESC, tool ASC) as rank,
			tool,
			COUNT(*) as calls,
			COUNT(*) FILTER (WHERE status <> 'ok') as failures,
			AVG(duration_ms)::float8 as avg_duration_ms
		FROM tool_invocations
		WHERE created_at >= $1
		GROUP BY tool
		ORDER BY calls DESC, tool ASC
		LIMIT $2`

	rows, err := db.Query(sqlStatement, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query tool usage: %w", err)
	}
	defer rows.Close()

	var usage []models.ToolUsage
	for rows.Next() {
		var u models.ToolUsage
		if err := rows.Scan(&u.Rank, &u.Tool, &u.Calls, &u.Failures, &u.AvgDurationMS); err != nil {
			return nil, fmt.Errorf("failed to scan tool usage: %w", err)
		}
		usage = append(usage, u)
	}

	return usage, rows.Err()
}

// DeleteBefore removes invocations older than cutoff and reports how many
func (idb InvocationDatabase) DeleteBefore(cutoff time.Time) (int64, error) {
	result, err := idb.database.Exec(`DELETE FROM tool_invocations WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune invocations: %w", err)
	}
	return result.RowsAffected()
}
