package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"pocket/internal/config"
)

const onesignalEndpoint = "https://onesignal.com/api/v1/notifications"

// dispatchTimeout bounds the single outbound call; a timeout is treated the
// same as any other transport failure and the batch stays undelivered.
const dispatchTimeout = 10 * time.Second

// DispatchError is a rejected or failed delivery call, carrying the
// transport status and raw diagnostic body for the triggering caller
type DispatchError struct {
	StatusCode int
	Body       string
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("onesignal rejected notification: status %d: %s", e.StatusCode, e.Body)
}

// PushService sends push notifications through the OneSignal REST API.
// Single attempt per call, no internal retry, no partial-success concept:
// either OneSignal accepts the whole batch or the call fails.
type PushService struct {
	appID    string
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewPushService creates a push service from delivery credentials
func NewPushService(cfg *config.Config) *PushService {
	return &PushService{
		appID:    cfg.OneSignalAppID,
		apiKey:   cfg.OneSignalAPIKey,
		endpoint: onesignalEndpoint,
		client:   &http.Client{Timeout: dispatchTimeout},
	}
}

// onesignalNotification is the OneSignal create-notification payload
type onesignalNotification struct {
	AppID            string            `json:"app_id"`
	IncludePlayerIDs []string          `json:"include_player_ids"`
	Headings         map[string]string `json:"headings"`
	Contents         map[string]string `json:"contents"`
	URL              string            `json:"url,omitempty"`
}

// Dispatch sends one notification to the given player IDs. Exactly one
// outbound network call per invocation.
func (s *PushService) Dispatch(playerIDs []string, title, body, linkURL string) error {
	payload := onesignalNotification{
		AppID:            s.appID,
		IncludePlayerIDs: playerIDs,
		Headings:         map[string]string{"en": title},
		Contents:         map[string]string{"en": body},
		URL:              linkURL,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Authorization", "Basic "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach onesignal: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Keep the diagnostic body bounded; OneSignal errors are short
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &DispatchError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	// Drain so the connection can be reused
	io.Copy(io.Discard, resp.Body)
	return nil
}
