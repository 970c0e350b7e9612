package calendar

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"academic-scheduler/internal/domain/directory"
	"academic-scheduler/internal/domain/scheduling"
)

// -------------------------
// Test repos (in-memory)
// -------------------------

type testEventsRepo struct {
	events []scheduling.Event
}

func (r *testEventsRepo) Create(ctx context.Context, e scheduling.Event) error { return nil }
func (r *testEventsRepo) Update(ctx context.Context, e scheduling.Event) error { return nil }

func (r *testEventsRepo) GetByID(ctx context.Context, id string) (scheduling.Event, error) {
	return scheduling.Event{}, scheduling.ErrNotFound
}

func (r *testEventsRepo) ListForResource(ctx context.Context, kind scheduling.ResourceKind, resourceID string, date scheduling.Date, excludeID string) ([]scheduling.Event, error) {
	return nil, nil
}

func (r *testEventsRepo) ListInRange(ctx context.Context, from, to scheduling.Date, f scheduling.Filter) ([]scheduling.Event, error) {
	out := make([]scheduling.Event, 0)
	for _, e := range r.events {
		if e.Date < from || e.Date > to {
			continue
		}
		if f.TutorID != "" && e.TutorID != f.TutorID {
			continue
		}
		if f.CourseID != "" && e.CourseID != f.CourseID {
			continue
		}
		if f.Type != "" && e.Type != f.Type {
			continue
		}
		if f.ExcludeStatus != "" && e.Status == f.ExcludeStatus {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Start < out[j].Start
	})
	return out, nil
}

type testDirRepo struct{}

func (testDirRepo) ListCourses(ctx context.Context) ([]directory.Course, error) { return nil, nil }

func (testDirRepo) GetCourse(ctx context.Context, id string) (directory.Course, error) {
	if id == "c-algo" {
		return directory.Course{ID: id, Name: "Algorithms"}, nil
	}
	return directory.Course{}, directory.ErrNotFound
}

func (testDirRepo) ListTutors(ctx context.Context) ([]directory.Tutor, error) { return nil, nil }

func (testDirRepo) ListTutorsByCourse(ctx context.Context, courseID string) ([]directory.Tutor, error) {
	return nil, nil
}

func (testDirRepo) GetTutor(ctx context.Context, id string) (directory.Tutor, error) {
	if id == "t-ada" {
		return directory.Tutor{ID: id, Name: "Ada Lovelace"}, nil
	}
	return directory.Tutor{}, directory.ErrNotFound
}

func (testDirRepo) ListRooms(ctx context.Context) ([]directory.Room, error) { return nil, nil }

func (testDirRepo) GetRoom(ctx context.Context, id string) (directory.Room, error) {
	if id == "r-101" {
		return directory.Room{ID: id, Name: "Room 101"}, nil
	}
	return directory.Room{}, directory.ErrNotFound
}

// -------------------------
// Helpers
// -------------------------

func mustTime(t *testing.T, s string) scheduling.TimeOfDay {
	t.Helper()
	v, err := scheduling.ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("ParseTimeOfDay(%q): %v", s, err)
	}
	return v
}

func seededService(t *testing.T) *Service {
	t.Helper()
	repo := &testEventsRepo{events: []scheduling.Event{
		{
			ID: "ev-1", Title: "Graphs", Date: "2025-11-10",
			Start: mustTime(t, "09:00"), End: mustTime(t, "10:00"),
			CourseID: "c-algo", TutorID: "t-ada", RoomID: "r-101",
			Type: scheduling.EventTypeLecture, Status: scheduling.StatusApproved,
		},
		{
			ID: "ev-2", Title: "SQL lab", Date: "2025-11-11",
			Start: mustTime(t, "14:00"), End: mustTime(t, "16:00"),
			CourseID: "c-db", TutorID: "t-edgar", RoomID: "r-204",
			Type: scheduling.EventTypeLabwork, Status: scheduling.StatusPending,
		},
		{
			ID: "ev-3", Title: "Old exam", Date: "2025-11-12",
			Start: mustTime(t, "10:00"), End: mustTime(t, "12:00"),
			CourseID: "c-algo", TutorID: "t-ada", RoomID: "r-101",
			Type: scheduling.EventTypeExam, Status: scheduling.StatusCancelled,
		},
	}}
	return NewService(repo, directory.NewService(testDirRepo{}))
}

// -------------------------
// Tests
// -------------------------

func TestService_EventsInRange_InvalidRange(t *testing.T) {
	svc := seededService(t)
	ctx := context.Background()

	if _, err := svc.EventsInRange(ctx, "", "2025-11-12", scheduling.Filter{}); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("empty from: expected ErrInvalidRange, got %v", err)
	}
	if _, err := svc.EventsInRange(ctx, "2025-11-12", "2025-11-10", scheduling.Filter{}); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("from > to: expected ErrInvalidRange, got %v", err)
	}
}

func TestService_EventsInRange_BoundsInclusive(t *testing.T) {
	svc := seededService(t)

	events, err := svc.EventsInRange(context.Background(), "2025-11-10", "2025-11-11", scheduling.Filter{})
	if err != nil {
		t.Fatalf("EventsInRange error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events in range, got %d", len(events))
	}
	if events[0].ID != "ev-1" || events[1].ID != "ev-2" {
		t.Fatalf("expected chronological order, got %s then %s", events[0].ID, events[1].ID)
	}
}

func TestService_EventsInRange_ConjunctiveFilters(t *testing.T) {
	svc := seededService(t)
	ctx := context.Background()

	events, err := svc.EventsInRange(ctx, "2025-11-10", "2025-11-12", scheduling.Filter{
		TutorID: "t-ada",
		Type:    scheduling.EventTypeExam,
	})
	if err != nil {
		t.Fatalf("EventsInRange error: %v", err)
	}
	if len(events) != 1 || events[0].ID != "ev-3" {
		t.Fatalf("expected only ev-3, got %#v", events)
	}

	events, err = svc.EventsInRange(ctx, "2025-11-10", "2025-11-12", scheduling.Filter{
		ExcludeStatus: scheduling.StatusCancelled,
	})
	if err != nil {
		t.Fatalf("EventsInRange error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected cancelled filtered out, got %d events", len(events))
	}
}

func TestService_ResolveNames_BestEffort(t *testing.T) {
	svc := seededService(t)

	course, tutor, room := svc.ResolveNames(context.Background(), scheduling.Event{
		CourseID: "c-algo", TutorID: "t-ghost", RoomID: "r-101",
	})
	if course != "Algorithms" || room != "Room 101" {
		t.Fatalf("expected resolved names, got course=%q room=%q", course, room)
	}
	if tutor != "" {
		t.Fatalf("unknown tutor must resolve to empty, got %q", tutor)
	}
}

func TestService_WriteCSV(t *testing.T) {
	svc := seededService(t)

	events, err := svc.EventsInRange(context.Background(), "2025-11-10", "2025-11-10", scheduling.Filter{})
	if err != nil {
		t.Fatalf("EventsInRange error: %v", err)
	}

	var buf bytes.Buffer
	if err := svc.WriteCSV(context.Background(), &buf, events); err != nil {
		t.Fatalf("WriteCSV error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 record, got %d lines", len(lines))
	}
	if lines[0] != "id,title,date,start,end,course,tutor,room,type,status" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "Graphs") || !strings.Contains(lines[1], "09:00") || !strings.Contains(lines[1], "Ada Lovelace") {
		t.Fatalf("unexpected record: %q", lines[1])
	}
}
