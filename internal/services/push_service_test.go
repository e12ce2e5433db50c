package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// newTestPushService points a push service at a stub transport
func newTestPushService(t *testing.T, handler http.HandlerFunc) *PushService {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &PushService{
		appID:    "test-app-id",
		apiKey:   "test-rest-key",
		endpoint: srv.URL,
		client:   &http.Client{Timeout: time.Second},
	}
}

func TestPushServiceSendsOneWellFormedRequest(t *testing.T) {
	var calls int
	var got onesignalNotification
	var auth, contentType string

	svc := newTestPushService(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		auth = r.Header.Get("Authorization")
		contentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":"notif-1"}`))
	})

	err := svc.Dispatch([]string{"player-1", "player-2"}, "Reminder", "Call dentist", "https://example.com/#reminders")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls != 1 {
		t.Fatalf("expected exactly one outbound call, got %d", calls)
	}
	if auth != "Basic test-rest-key" {
		t.Errorf("Authorization = %q", auth)
	}
	if contentType != "application/json" {
		t.Errorf("Content-Type = %q", contentType)
	}
	if got.AppID != "test-app-id" {
		t.Errorf("app_id = %q", got.AppID)
	}
	if len(got.IncludePlayerIDs) != 2 || got.IncludePlayerIDs[0] != "player-1" {
		t.Errorf("include_player_ids = %v", got.IncludePlayerIDs)
	}
	if got.Headings["en"] != "Reminder" {
		t.Errorf("headings = %v", got.Headings)
	}
	if got.Contents["en"] != "Call dentist" {
		t.Errorf("contents = %v", got.Contents)
	}
	if got.URL != "https://example.com/#reminders" {
		t.Errorf("url = %q", got.URL)
	}
}

func TestPushServiceRejectionBecomesDispatchError(t *testing.T) {
	svc := newTestPushService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":["All included players are not subscribed"]}`))
	})

	err := svc.Dispatch([]string{"player-1"}, "Reminder", "Call dentist", "")
	if err == nil {
		t.Fatal("expected an error for a rejected notification")
	}

	var dispatchErr *DispatchError
	if !errors.As(err, &dispatchErr) {
		t.Fatalf("expected a DispatchError, got %T: %v", err, err)
	}
	if dispatchErr.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d", dispatchErr.StatusCode)
	}
	if dispatchErr.Body == "" {
		t.Errorf("diagnostic body should be preserved")
	}
}

func TestPushServiceTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Connection refused from here on

	svc := &PushService{
		appID:    "test-app-id",
		apiKey:   "test-rest-key",
		endpoint: srv.URL,
		client:   &http.Client{Timeout: time.Second},
	}

	err := svc.Dispatch([]string{"player-1"}, "Reminder", "Call dentist", "")
	if err == nil {
		t.Fatal("expected an error when the transport is unreachable")
	}
	var dispatchErr *DispatchError
	if errors.As(err, &dispatchErr) {
		t.Errorf("transport failures should not carry a transport status")
	}
}
