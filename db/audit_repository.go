package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RecordAuditEvent appends one audit row. Callers treat failures as
// best-effort: a broken audit store must never fail the request itself.
func RecordAuditEvent(clientID, ip, action, outcome, detail string) (*AuditEvent, error) {
	if !Enabled() {
		return nil, nil
	}

	event := &AuditEvent{
		ID:        fmt.Sprintf("evt_%s", uuid.New().String()),
		ClientID:  clientID,
		IP:        ip,
		Action:    action,
		Outcome:   outcome,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	}

	_, err := DB.Exec(
		`INSERT INTO audit_events (id, client_id, ip, action, outcome, detail, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		event.ID, event.ClientID, event.IP, event.Action, event.Outcome, event.Detail, event.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record audit event: %w", err)
	}

	return event, nil
}

type AuditFilters struct {
	ClientID string
	Action   string
	Outcome  string
	Limit    int
}

// GetAuditEvents returns recent events, newest first.
func GetAuditEvents(filters AuditFilters) ([]AuditEvent, error) {
	if !Enabled() {
		return nil, nil
	}

	query := "SELECT id, client_id, ip, action, outcome, detail, created_at FROM audit_events"
	var conditions []string
	var args []interface{}

	addCondition := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	addCondition("client_id", filters.ClientID)
	addCondition("action", filters.Action)
	addCondition("outcome", filters.Outcome)

	for i, condition := range conditions {
		if i == 0 {
			query += " WHERE " + condition
		} else {
			query += " AND " + condition
		}
	}

	query += " ORDER BY created_at DESC"

	limit := filters.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))

	rows, err := DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit events: %w", err)
	}
	defer rows.Close()

	var events []AuditEvent
	for rows.Next() {
		var event AuditEvent
		if err := rows.Scan(&event.ID, &event.ClientID, &event.IP, &event.Action, &event.Outcome, &event.Detail, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit event: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

// CountAuditEvents counts events matching the filters.
func CountAuditEvents(filters AuditFilters) (int, error) {
	if !Enabled() {
		return 0, nil
	}

	query := "SELECT COUNT(*) FROM audit_events"
	var conditions []string
	var args []interface{}

	addCondition := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	addCondition("client_id", filters.ClientID)
	addCondition("action", filters.Action)
	addCondition("outcome", filters.Outcome)

	for i, condition := range conditions {
		if i == 0 {
			query += " WHERE " + condition
		} else {
			query += " AND " + condition
		}
	}

	var count int
	if err := DB.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count audit events: %w", err)
	}

	return count, nil
}
