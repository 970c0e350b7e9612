package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"academic-scheduler/internal/domain/scheduling"
)

// EventsRepo persiste eventos en la tabla scheduled_events:
//
//	id text primary key,
//	title text, date date, start_min int, end_min int,
//	course_id text, tutor_id text, room_id text null,
//	event_type text, notes text, status text,
//	created_by text, created_at timestamptz, updated_at timestamptz
//
// Índices: (tutor_id, date), (room_id, date), (date).
// Las horas se guardan como minutos desde medianoche: hora de pared local,
// sin zona horaria (igual que el resto del sistema).
type EventsRepo struct {
	db *sql.DB
}

func NewEventsRepo(db *sql.DB) *EventsRepo {
	return &EventsRepo{db: db}
}

const eventColumns = `
	id, title, date,
	start_min, end_min,
	course_id, tutor_id, room_id,
	event_type, notes, status,
	created_by, created_at, updated_at
`

func (r *EventsRepo) Create(ctx context.Context, e scheduling.Event) error {
	date, err := dateValue(e.Date)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO scheduled_events (`+eventColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		e.ID,
		e.Title,
		date,
		int(e.Start),
		int(e.End),
		e.CourseID,
		e.TutorID,
		nullable(e.RoomID),
		string(e.Type),
		e.Notes,
		string(e.Status),
		e.CreatedBy,
		e.CreatedAt,
		e.UpdatedAt,
	)
	return err
}

func (r *EventsRepo) Update(ctx context.Context, e scheduling.Event) error {
	date, err := dateValue(e.Date)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE scheduled_events SET
			title = $2, date = $3,
			start_min = $4, end_min = $5,
			course_id = $6, tutor_id = $7, room_id = $8,
			event_type = $9, notes = $10, status = $11,
			updated_at = $12
		WHERE id = $1
	`,
		e.ID,
		e.Title,
		date,
		int(e.Start),
		int(e.End),
		e.CourseID,
		e.TutorID,
		nullable(e.RoomID),
		string(e.Type),
		e.Notes,
		string(e.Status),
		e.UpdatedAt,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return scheduling.ErrNotFound
	}
	return nil
}

func (r *EventsRepo) GetByID(ctx context.Context, id string) (scheduling.Event, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+eventColumns+`
		FROM scheduled_events
		WHERE id = $1
	`, id)

	e, err := scanEvent(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return scheduling.Event{}, scheduling.ErrNotFound
		}
		return scheduling.Event{}, err
	}
	return e, nil
}

func (r *EventsRepo) ListForResource(ctx context.Context, kind scheduling.ResourceKind, resourceID string, date scheduling.Date, excludeID string) ([]scheduling.Event, error) {
	d, err := dateValue(date)
	if err != nil {
		return nil, err
	}

	var col string
	switch kind {
	case scheduling.ResourceTutor:
		col = "tutor_id"
	case scheduling.ResourceRoom:
		col = "room_id"
	default:
		return nil, fmt.Errorf("unknown resource kind %q", kind)
	}

	q := `
		SELECT ` + eventColumns + `
		FROM scheduled_events
		WHERE ` + col + ` = $1 AND date = $2
		  AND status NOT IN ('rejected', 'cancelled')
	`
	args := []any{resourceID, d}
	if excludeID != "" {
		q += " AND id <> $3"
		args = append(args, excludeID)
	}

	return r.queryEvents(ctx, q, args...)
}

func (r *EventsRepo) ListInRange(ctx context.Context, from, to scheduling.Date, f scheduling.Filter) ([]scheduling.Event, error) {
	fromD, err := dateValue(from)
	if err != nil {
		return nil, err
	}
	toD, err := dateValue(to)
	if err != nil {
		return nil, err
	}

	sb := strings.Builder{}
	sb.WriteString(`
		SELECT ` + eventColumns + `
		FROM scheduled_events
		WHERE date >= $1 AND date <= $2
	`)

	args := []any{fromD, toD}
	argN := 3

	if f.TutorID != "" {
		sb.WriteString(fmt.Sprintf(" AND tutor_id = $%d", argN))
		args = append(args, f.TutorID)
		argN++
	}
	if f.CourseID != "" {
		sb.WriteString(fmt.Sprintf(" AND course_id = $%d", argN))
		args = append(args, f.CourseID)
		argN++
	}
	if f.Type != "" {
		sb.WriteString(fmt.Sprintf(" AND event_type = $%d", argN))
		args = append(args, string(f.Type))
		argN++
	}
	if f.ExcludeStatus != "" {
		sb.WriteString(fmt.Sprintf(" AND status <> $%d", argN))
		args = append(args, string(f.ExcludeStatus))
		argN++
	}

	sb.WriteString(" ORDER BY date, start_min")

	return r.queryEvents(ctx, sb.String(), args...)
}

func (r *EventsRepo) queryEvents(ctx context.Context, q string, args ...any) ([]scheduling.Event, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]scheduling.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (scheduling.Event, error) {
	var (
		e           scheduling.Event
		date        time.Time
		startM      int
		endM        int
		roomID      sql.NullString
		typ, status string
	)

	if err := row.Scan(
		&e.ID,
		&e.Title,
		&date,
		&startM,
		&endM,
		&e.CourseID,
		&e.TutorID,
		&roomID,
		&typ,
		&e.Notes,
		&status,
		&e.CreatedBy,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return scheduling.Event{}, err
	}

	e.Date = scheduling.Date(date.Format("2006-01-02"))
	e.Start = scheduling.TimeOfDay(startM)
	e.End = scheduling.TimeOfDay(endM)
	e.RoomID = roomID.String
	e.Type = scheduling.EventType(typ)
	e.Status = scheduling.Status(status)

	return e, nil
}

func dateValue(d scheduling.Date) (time.Time, error) {
	t, err := time.Parse("2006-01-02", string(d))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", d, err)
	}
	return t, nil
}

func nullable(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
