package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

// These cover the request-shape rejections, which happen before any store
// access. DB-backed paths are exercised at the sweep/store contract level.

func postJSON(t *testing.T, handler gin.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	router := gin.New()
	router.POST(path, handler)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateReminderRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "not-json"},
		{"missing title", `{"times":["2026-09-01T09:00:00Z"]}`},
		{"blank title", `{"title":"   ","times":["2026-09-01T09:00:00Z"]}`},
		{"no times", `{"title":"Call dentist","times":[]}`},
		{"too many times", `{"title":"Call dentist","times":[` + manyTimes(51) + `]}`},
		{"malformed time", `{"title":"Call dentist","times":["tomorrow"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := postJSON(t, CreateReminder, "/reminders", tt.body); w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

// manyTimes builds a JSON fragment of n identical RFC3339 instants
func manyTimes(n int) string {
	times := make([]string, n)
	for i := range times {
		times[i] = `"2026-09-01T09:00:00Z"`
	}
	return strings.Join(times, ",")
}

func TestCreateTaskRejectsBadInput(t *testing.T) {
	for _, body := range []string{`{}`, `{"title":""}`, `{"title":"  "}`} {
		if w := postJSON(t, CreateTask, "/tasks", body); w.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, w.Code)
		}
	}
}

func TestRegisterDeviceRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing player id", `{"timezone":"Asia/Manila"}`},
		{"short player id", `{"player_id":"abc","timezone":"Asia/Manila"}`},
		{"missing timezone", `{"player_id":"player-123456"}`},
		{"short timezone", `{"player_id":"player-123456","timezone":"ab"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := postJSON(t, RegisterDevice, "/devices", tt.body); w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}
