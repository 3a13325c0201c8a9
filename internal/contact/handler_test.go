package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pintudigital/contact-api/internal/notify"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []notify.EmailMessage
	id   string
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg notify.EmailMessage) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, msg)
	return f.id, nil
}

func (f *fakeSender) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type fakeLimiter struct {
	allow bool
	keys  []string
}

func (f *fakeLimiter) Allow(_ context.Context, key string) bool {
	f.keys = append(f.keys, key)
	return f.allow
}

func newTestHandler(limiter *fakeLimiter, sender notify.EmailSender) *Handler {
	return NewHandler(limiter, sender, nil, HandlerConfig{
		ToEmail:     "inbox@agency.example",
		SendTimeout: time.Second,
	}, nil)
}

func postSubmission(t *testing.T, h *Handler, sub Submission, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(sub)
	if err != nil {
		t.Fatalf("failed to marshal submission: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.Submit(rr, req)
	return rr
}

func TestSubmitSuccess(t *testing.T) {
	sender := &fakeSender{id: "msg-123"}
	h := newTestHandler(&fakeLimiter{allow: true}, sender)

	rr := postSubmission(t, h, validSubmission(), map[string]string{"X-Real-Ip": "203.0.113.7"})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp successResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Error("expected success true")
	}
	if resp.ID != "msg-123" {
		t.Errorf("expected provider message id, got %q", resp.ID)
	}

	if sender.sentCount() != 1 {
		t.Fatalf("expected exactly one send, got %d", sender.sentCount())
	}
	if got := sender.sent[0].ReplyTo; got != "budi@example.com" {
		t.Errorf("expected reply-to equal to submitted email, got %q", got)
	}
}

func TestSubmitRateLimited(t *testing.T) {
	sender := &fakeSender{}
	limiter := &fakeLimiter{allow: false}
	h := newTestHandler(limiter, sender)

	rr := postSubmission(t, h, validSubmission(), map[string]string{"X-Real-Ip": "203.0.113.7"})

	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rr.Code)
	}
	if sender.sentCount() != 0 {
		t.Error("rate-limited request must not send email")
	}
	if !strings.Contains(rr.Body.String(), "Terlalu banyak request") {
		t.Errorf("expected localized rate-limit message, got %s", rr.Body.String())
	}
}

func TestSubmitValidationFailure(t *testing.T) {
	sender := &fakeSender{}
	h := newTestHandler(&fakeLimiter{allow: true}, sender)

	sub := validSubmission()
	sub.Email = "not-an-email"
	rr := postSubmission(t, h, sub, nil)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if sender.sentCount() != 0 {
		t.Error("invalid submission must not send email")
	}

	var resp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "Format email tidak valid." {
		t.Errorf("unexpected error message: %q", resp.Error)
	}
}

func TestSubmitMissingFields(t *testing.T) {
	sender := &fakeSender{}
	h := newTestHandler(&fakeLimiter{allow: true}, sender)

	sub := validSubmission()
	sub.Message = ""
	rr := postSubmission(t, h, sub, nil)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "wajib diisi") {
		t.Errorf("expected required-fields message, got %s", rr.Body.String())
	}
	if sender.sentCount() != 0 {
		t.Error("incomplete submission must not send email")
	}
}

func TestSubmitHoneypot(t *testing.T) {
	sender := &fakeSender{}
	h := newTestHandler(&fakeLimiter{allow: true}, sender)

	sub := validSubmission()
	sub.Honeypot = "gotcha"
	rr := postSubmission(t, h, sub, nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected success-shaped response, got %d", rr.Code)
	}

	var resp successResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Error("honeypot response must look like a real success")
	}
	if resp.ID != "" {
		t.Error("honeypot response must not carry a message id")
	}
	if sender.sentCount() != 0 {
		t.Error("honeypot submission must not send email")
	}
}

func TestSubmitMalformedBody(t *testing.T) {
	sender := &fakeSender{}
	h := newTestHandler(&fakeLimiter{allow: true}, sender)

	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	h.Submit(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for malformed body, got %d", rr.Code)
	}
	if sender.sentCount() != 0 {
		t.Error("malformed body must not send email")
	}
}

func TestSubmitDeliveryFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("smtp down")}
	h := newTestHandler(&fakeLimiter{allow: true}, sender)

	rr := postSubmission(t, h, validSubmission(), nil)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "smtp down") {
		t.Error("provider error details must not leak to the caller")
	}
}

func TestSubmitMisconfiguredSender(t *testing.T) {
	h := newTestHandler(&fakeLimiter{allow: true}, nil)

	rr := postSubmission(t, h, validSubmission(), nil)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "administrator") {
		t.Errorf("expected misconfiguration message, got %s", rr.Body.String())
	}
}

func TestSubmitUnknownClientExemption(t *testing.T) {
	sender := &fakeSender{}
	limiter := &fakeLimiter{allow: false}
	h := NewHandler(limiter, sender, nil, HandlerConfig{
		ToEmail:       "inbox@agency.example",
		SendTimeout:   time.Second,
		ExemptUnknown: true,
	}, nil)

	// No proxy headers: client id resolves to "unknown" and skips the limiter.
	rr := postSubmission(t, h, validSubmission(), nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected exempt request to pass, got %d", rr.Code)
	}
	if len(limiter.keys) != 0 {
		t.Errorf("limiter should not be consulted for exempt clients, saw keys %v", limiter.keys)
	}
}

func TestClientIDDerivation(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"real ip preferred", map[string]string{"X-Real-Ip": "198.51.100.1", "X-Forwarded-For": "203.0.113.9"}, "198.51.100.1"},
		{"forwarded-for first entry", map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"}, "203.0.113.9"},
		{"no headers", nil, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := clientID(req); got != tt.want {
				t.Errorf("clientID = %q, want %q", got, tt.want)
			}
		})
	}
}
