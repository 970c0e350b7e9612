package postgres

import (
	"context"
	"database/sql"

	"academic-scheduler/internal/domain/audit"
)

// AuditRepo persiste el registro de auditoría:
//
//	audit_log(id text pk, user_id text, action text,
//	          event_id text, notes text, ts timestamptz)
type AuditRepo struct {
	db *sql.DB
}

func NewAuditRepo(db *sql.DB) *AuditRepo {
	return &AuditRepo{db: db}
}

func (r *AuditRepo) Append(ctx context.Context, e audit.Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_log (id, user_id, action, event_id, notes, ts)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		e.ID,
		e.UserID,
		string(e.Action),
		e.EventID,
		e.Notes,
		e.Timestamp,
	)
	return err
}

func (r *AuditRepo) List(ctx context.Context, limit int) ([]audit.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, action, event_id, notes, ts
		FROM audit_log
		ORDER BY ts DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]audit.Entry, 0)
	for rows.Next() {
		var (
			e      audit.Entry
			action string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &action, &e.EventID, &e.Notes, &e.Timestamp); err != nil {
			return nil, err
		}
		e.Action = audit.Action(action)
		out = append(out, e)
	}
	return out, rows.Err()
}
