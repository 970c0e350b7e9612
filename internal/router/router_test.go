package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"academic-scheduler/internal/ports/auth"
	"academic-scheduler/internal/router"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	t.Setenv("DB_DSN", "") // fuerza repos in-memory con el seed de dev
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	t.Cleanup(ts.Close)
	return ts
}

func doReq(t *testing.T, baseURL, method, path, userID string, role auth.Role, payload any) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if userID != "" {
		req.Header.Set("X-Debug-User-ID", userID)
		req.Header.Set("X-Debug-Role", string(role))
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}

func TestHTTP_EndToEnd_ScheduleApproveCancel(t *testing.T) {
	ts := newTestServer(t)

	proposal := map[string]any{
		"title":      "Graphs lecture",
		"date":       "2025-11-10",
		"start_time": "09:00",
		"end_time":   "10:00",
		"course":     "c-algo",
		"tutor":      "t-ada",
		"room":       "r-101",
		"event_type": "lecture",
	}

	// 1) Un estudiante no puede proponer
	{
		st, _ := doReq(t, ts.URL, "POST", "/events", "stud-1", auth.RoleStudent, proposal)
		if st != http.StatusForbidden {
			t.Fatalf("student propose: expected 403, got %d", st)
		}
	}

	// 2) Sin sala: selección diferida con las salas libres
	{
		deferred := map[string]any{}
		for k, v := range proposal {
			deferred[k] = v
		}
		delete(deferred, "room")

		st, body := doReq(t, ts.URL, "POST", "/events", "asst-1", auth.RoleAcademicAssistant, deferred)
		if st != http.StatusOK {
			t.Fatalf("deferred propose: expected 200, got %d body=%s", st, body)
		}
		var out struct {
			NeedsRoomSelection bool `json:"needs_room_selection"`
			FreeRooms          []struct {
				ID string `json:"id"`
			} `json:"free_rooms"`
		}
		if err := json.Unmarshal(body, &out); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if !out.NeedsRoomSelection || len(out.FreeRooms) != 2 {
			t.Fatalf("expected both seeded rooms free, got %s", body)
		}
	}

	// 3) El asistente académico propone con sala
	var eventID string
	{
		st, body := doReq(t, ts.URL, "POST", "/events", "asst-1", auth.RoleAcademicAssistant, proposal)
		if st != http.StatusCreated {
			t.Fatalf("propose: expected 201, got %d body=%s", st, body)
		}
		var out struct {
			ID       string `json:"id"`
			Status   string `json:"status"`
			RoomName string `json:"room_name"`
		}
		if err := json.Unmarshal(body, &out); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if out.Status != "pending" {
			t.Fatalf("expected pending, got %s", out.Status)
		}
		if out.RoomName != "Room 101" {
			t.Fatalf("expected resolved room name, got %q", out.RoomName)
		}
		eventID = out.ID
	}

	// 4) Conflicto de sala: otro tutor, misma sala y ventana
	{
		conflicting := map[string]any{
			"title":      "SQL lab",
			"date":       "2025-11-10",
			"start_time": "09:30",
			"end_time":   "10:30",
			"course":     "c-db",
			"tutor":      "t-edgar",
			"room":       "r-101",
			"event_type": "labwork",
		}
		st, body := doReq(t, ts.URL, "POST", "/events", "asst-1", auth.RoleAcademicAssistant, conflicting)
		if st != http.StatusConflict {
			t.Fatalf("conflicting propose: expected 409, got %d body=%s", st, body)
		}
	}

	// 5) Un estudiante no puede aprobar; el evento sigue pending
	{
		st, _ := doReq(t, ts.URL, "POST", "/events/"+eventID+"/approve", "stud-1", auth.RoleStudent, nil)
		if st != http.StatusForbidden {
			t.Fatalf("student approve: expected 403, got %d", st)
		}

		st, body := doReq(t, ts.URL, "GET", "/events/"+eventID, "stud-1", auth.RoleStudent, nil)
		if st != http.StatusOK {
			t.Fatalf("get event: expected 200, got %d", st)
		}
		if !strings.Contains(string(body), `"status":"pending"`) {
			t.Fatalf("expected event still pending, body=%s", body)
		}
	}

	// 6) El asistente de departamento aprueba (dos veces: idempotente)
	{
		for i := 0; i < 2; i++ {
			st, body := doReq(t, ts.URL, "POST", "/events/"+eventID+"/approve", "dept-1", auth.RoleDepartmentAssistant, nil)
			if st != http.StatusOK {
				t.Fatalf("approve #%d: expected 200, got %d body=%s", i+1, st, body)
			}
			if !strings.Contains(string(body), `"status":"approved"`) {
				t.Fatalf("approve #%d: expected approved, body=%s", i+1, body)
			}
		}
	}

	// 7) El calendario lo lista con nombres resueltos
	{
		st, body := doReq(t, ts.URL, "GET", "/events?from=2025-11-10&to=2025-11-10", "stud-1", auth.RoleStudent, nil)
		if st != http.StatusOK {
			t.Fatalf("calendar: expected 200, got %d", st)
		}
		if !strings.Contains(string(body), "Ada Lovelace") || !strings.Contains(string(body), "Algorithms") {
			t.Fatalf("expected resolved names in calendar, body=%s", body)
		}
	}

	// 8) Export CSV
	{
		req, _ := http.NewRequest("GET", ts.URL+"/events/export?from=2025-11-10&to=2025-11-10", nil)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("export: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("export: expected 200, got %d", resp.StatusCode)
		}
		if ct := resp.Header.Get("Content-Type"); ct != "text/csv" {
			t.Fatalf("export: expected text/csv, got %q", ct)
		}
		b, _ := io.ReadAll(resp.Body)
		if !strings.HasPrefix(string(b), "id,title,date,start,end,course,tutor,room,type,status") {
			t.Fatalf("export: unexpected CSV header, body=%s", b)
		}
	}

	// 9) El creador cancela su evento aprobado
	{
		st, body := doReq(t, ts.URL, "POST", "/events/"+eventID+"/cancel", "asst-1", auth.RoleAcademicAssistant, nil)
		if st != http.StatusOK {
			t.Fatalf("cancel by creator: expected 200, got %d body=%s", st, body)
		}
		if !strings.Contains(string(body), `"status":"cancelled"`) {
			t.Fatalf("expected cancelled, body=%s", body)
		}
	}

	// 10) Cancelado libera el intervalo: la misma propuesta vuelve a entrar
	{
		st, body := doReq(t, ts.URL, "POST", "/events", "asst-1", auth.RoleAcademicAssistant, proposal)
		if st != http.StatusCreated {
			t.Fatalf("re-propose after cancel: expected 201, got %d body=%s", st, body)
		}
	}

	// 11) Auditoría: solo administradores
	{
		st, _ := doReq(t, ts.URL, "GET", "/audit/logs", "stud-1", auth.RoleStudent, nil)
		if st != http.StatusForbidden {
			t.Fatalf("audit as student: expected 403, got %d", st)
		}

		st, body := doReq(t, ts.URL, "GET", "/audit/logs", "admin-1", auth.RoleAdministrator, nil)
		if st != http.StatusOK {
			t.Fatalf("audit as admin: expected 200, got %d", st)
		}
		if !strings.Contains(string(body), "approveEvent") || !strings.Contains(string(body), "cancelEvent") {
			t.Fatalf("expected audit trail of transitions, body=%s", body)
		}
	}
}

func TestHTTP_DirectoryAndAvailability(t *testing.T) {
	ts := newTestServer(t)

	// directorio seed de dev
	{
		st, body := doReq(t, ts.URL, "GET", "/courses", "", "", nil)
		if st != http.StatusOK {
			t.Fatalf("courses: expected 200, got %d", st)
		}
		if !strings.Contains(string(body), "Algorithms") {
			t.Fatalf("expected seeded course, body=%s", body)
		}
	}

	{
		st, body := doReq(t, ts.URL, "GET", "/courses/c-algo/tutors", "", "", nil)
		if st != http.StatusOK {
			t.Fatalf("course tutors: expected 200, got %d", st)
		}
		if !strings.Contains(string(body), "Ada Lovelace") {
			t.Fatalf("expected Ada teaching c-algo, body=%s", body)
		}
	}

	{
		st, body := doReq(t, ts.URL, "GET", "/tutors", "", "", nil)
		if st != http.StatusOK {
			t.Fatalf("tutors: expected 200, got %d", st)
		}
		if !strings.Contains(string(body), "Ada Lovelace") || !strings.Contains(string(body), "Edgar Codd") {
			t.Fatalf("expected full tutor roster, body=%s", body)
		}
	}

	// ocupa r-101 y consulta disponibilidad
	proposal := map[string]any{
		"title":      "DB lecture",
		"date":       "2025-11-12",
		"start_time": "10:00",
		"end_time":   "12:00",
		"course":     "c-db",
		"tutor":      "t-edgar",
		"room":       "r-101",
		"event_type": "lecture",
	}
	if st, body := doReq(t, ts.URL, "POST", "/events", "asst-1", auth.RoleAcademicAssistant, proposal); st != http.StatusCreated {
		t.Fatalf("propose: expected 201, got %d body=%s", st, body)
	}

	{
		st, body := doReq(t, ts.URL, "GET", "/rooms/available?date=2025-11-12&start=11:00&end=12:00", "", "", nil)
		if st != http.StatusOK {
			t.Fatalf("rooms available: expected 200, got %d", st)
		}
		if strings.Contains(string(body), "r-101") || !strings.Contains(string(body), "r-204") {
			t.Fatalf("expected only r-204 free, body=%s", body)
		}
	}

	{
		st, body := doReq(t, ts.URL, "GET", "/tutors/t-edgar/schedules?date=2025-11-12", "", "", nil)
		if st != http.StatusOK {
			t.Fatalf("tutor schedule: expected 200, got %d", st)
		}
		if !strings.Contains(string(body), "10:00") || !strings.Contains(string(body), "12:00") {
			t.Fatalf("expected busy interval 10:00-12:00, body=%s", body)
		}
	}

	// rango inválido del calendario
	{
		st, _ := doReq(t, ts.URL, "GET", "/events?from=2025-11-12&to=2025-11-10", "", "", nil)
		if st != http.StatusBadRequest {
			t.Fatalf("inverted range: expected 400, got %d", st)
		}
	}
}
