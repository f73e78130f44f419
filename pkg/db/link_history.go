package db

import (
	"database/sql"
	"fmt"
	"time"
)

// LinkRecord represents a locally recorded confirmed link.
type LinkRecord struct {
	ID          int64
	SourceType  string
	SourceRef   string
	TargetType  string
	TargetRef   string
	Fecha       string
	Amount      float64
	ConfirmedAt time.Time
}

// LinkHistory manages link history operations.
type LinkHistory struct {
	conn *Connection
}

// NewLinkHistory creates a new LinkHistory instance.
func NewLinkHistory(conn *Connection) *LinkHistory {
	return &LinkHistory{conn: conn}
}

// RecordLink records a confirmed link.
// If the record already exists (same source and target), it updates it.
func (h *LinkHistory) RecordLink(record LinkRecord) error {
	query := `
		INSERT INTO link_history (source_type, source_ref, target_type, target_ref, fecha, amount)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(source_type, source_ref, target_type, target_ref) DO UPDATE SET
			fecha = excluded.fecha,
			amount = excluded.amount,
			confirmed_at = CURRENT_TIMESTAMP
	`

	_, err := h.conn.Exec(query,
		record.SourceType,
		record.SourceRef,
		record.TargetType,
		record.TargetRef,
		record.Fecha,
		record.Amount,
	)

	if err != nil {
		return fmt.Errorf("failed to record link: %w", err)
	}

	return nil
}

// IsLinked checks if a source record has at least one confirmed link.
func (h *LinkHistory) IsLinked(sourceType, sourceRef string) (bool, error) {
	query := `
		SELECT COUNT(*) as count FROM link_history
		WHERE source_type = ? AND source_ref = ?
	`

	var count int
	err := h.conn.QueryRow(query, sourceType, sourceRef).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check if linked: %w", err)
	}

	return count > 0, nil
}

// GetLinksBySource retrieves all links recorded for a source record.
func (h *LinkHistory) GetLinksBySource(sourceType, sourceRef string) ([]LinkRecord, error) {
	query := `
		SELECT id, source_type, source_ref, target_type, target_ref, fecha, amount, confirmed_at
		FROM link_history
		WHERE source_type = ? AND source_ref = ?
		ORDER BY confirmed_at DESC
	`

	rows, err := h.conn.Query(query, sourceType, sourceRef)
	if err != nil {
		return nil, fmt.Errorf("failed to get links by source: %w", err)
	}
	defer rows.Close()

	return scanLinks(rows)
}

// GetLinksByType retrieves all links for a source type.
func (h *LinkHistory) GetLinksByType(sourceType string) ([]LinkRecord, error) {
	query := `
		SELECT id, source_type, source_ref, target_type, target_ref, fecha, amount, confirmed_at
		FROM link_history
		WHERE source_type = ?
		ORDER BY fecha DESC
	`

	rows, err := h.conn.Query(query, sourceType)
	if err != nil {
		return nil, fmt.Errorf("failed to get links by type: %w", err)
	}
	defer rows.Close()

	return scanLinks(rows)
}

// DeleteLink deletes a recorded link.
// Use case: the link was undone on the backend and the local record is stale.
func (h *LinkHistory) DeleteLink(sourceType, sourceRef, targetType, targetRef string) (bool, error) {
	query := `
		DELETE FROM link_history
		WHERE source_type = ? AND source_ref = ? AND target_type = ? AND target_ref = ?
	`

	result, err := h.conn.Exec(query, sourceType, sourceRef, targetType, targetRef)
	if err != nil {
		return false, fmt.Errorf("failed to delete link: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}

// Stats represents link history statistics.
type Stats struct {
	TotalLinks    int
	LinksByType   map[string]int
	LastConfirmed sql.NullString
}

// GetStats retrieves link history statistics.
func (h *LinkHistory) GetStats() (*Stats, error) {
	stats := Stats{LinksByType: make(map[string]int)}

	err := h.conn.QueryRow(`SELECT COUNT(*) FROM link_history`).Scan(&stats.TotalLinks)
	if err != nil {
		return nil, fmt.Errorf("failed to get link count: %w", err)
	}

	rows, err := h.conn.Query(`SELECT source_type, COUNT(*) FROM link_history GROUP BY source_type`)
	if err != nil {
		return nil, fmt.Errorf("failed to get per-type counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sourceType string
		var count int
		if err := rows.Scan(&sourceType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan per-type count: %w", err)
		}
		stats.LinksByType[sourceType] = count
	}

	err = h.conn.QueryRow(`SELECT MAX(confirmed_at) FROM link_history`).Scan(&stats.LastConfirmed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get last confirmed time: %w", err)
	}

	return &stats, nil
}

// GetMetadata retrieves a metadata value.
func (h *LinkHistory) GetMetadata(key string) (string, error) {
	query := `SELECT value FROM tool_metadata WHERE key = ?`

	var value string
	err := h.conn.QueryRow(query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get metadata: %w", err)
	}

	return value, nil
}

// SetMetadata sets a metadata value.
func (h *LinkHistory) SetMetadata(key, value string) error {
	query := `
		INSERT INTO tool_metadata (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`

	_, err := h.conn.Exec(query, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata: %w", err)
	}

	return nil
}

func scanLinks(rows *sql.Rows) ([]LinkRecord, error) {
	var records []LinkRecord
	for rows.Next() {
		var record LinkRecord
		if err := rows.Scan(
			&record.ID,
			&record.SourceType,
			&record.SourceRef,
			&record.TargetType,
			&record.TargetRef,
			&record.Fecha,
			&record.Amount,
			&record.ConfirmedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan link record: %w", err)
		}
		records = append(records, record)
	}

	return records, nil
}
