package contact

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/pintudigital/contact-api/internal/notify"
	"github.com/pintudigital/contact-api/internal/observability/metrics"
	"github.com/pintudigital/contact-api/internal/ratelimit"
	"github.com/pintudigital/contact-api/pkg/logging"
)

var tracer = otel.Tracer("contact")

// User-facing messages for the non-validation failure paths.
const (
	msgRateLimited   = "Terlalu banyak request. Coba lagi dalam 1 menit."
	msgSendFailed    = "Gagal mengirim pesan. Silakan coba lagi nanti."
	msgMisconfigured = "Layanan email sedang tidak tersedia. Hubungi administrator situs."
)

// HandlerConfig holds the deployment-specific settings of the submission
// pipeline.
type HandlerConfig struct {
	// ToEmail is the inbox submissions are relayed to.
	ToEmail string
	// SendTimeout bounds the outbound mail call.
	SendTimeout time.Duration
	// ExemptUnknown skips rate limiting for requests whose client id could
	// not be derived from proxy headers. See config.Config.
	ExemptUnknown bool
}

// Handler orchestrates the submission pipeline: rate check, validation,
// honeypot, sanitization, and the outbound email.
type Handler struct {
	limiter ratelimit.Limiter
	sender  notify.EmailSender
	metrics *metrics.ContactMetrics
	cfg     HandlerConfig
	logger  *logging.Logger
}

// NewHandler creates a contact handler. A nil sender is tolerated and
// surfaces as the misconfiguration path on submit, so a half-configured
// deployment still boots and serves its other routes.
func NewHandler(limiter ratelimit.Limiter, sender notify.EmailSender, m *metrics.ContactMetrics, cfg HandlerConfig, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 15 * time.Second
	}
	return &Handler{
		limiter: limiter,
		sender:  sender,
		metrics: m,
		cfg:     cfg,
		logger:  logger,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
}

// Submit handles POST /api/contact.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "contact.submit")
	defer span.End()

	client := clientID(r)
	span.SetAttributes(attribute.String("contact.client_id", client))

	if h.limited(ctx, client) {
		h.metrics.ObserveSubmission(metrics.OutcomeRateLimited)
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: msgRateLimited})
		return
	}

	var sub Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		h.logger.Error("failed to decode submission", "error", err, "client_id", client)
		h.metrics.ObserveSubmission(metrics.OutcomeMalformed)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgSendFailed})
		return
	}

	if verr := Validate(sub); verr != nil {
		span.SetAttributes(attribute.String("contact.validation_code", verr.Code))
		h.metrics.ObserveSubmission(metrics.OutcomeInvalid)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Message})
		return
	}

	if sub.Honeypot != "" {
		// Bots get the same response as humans so the trap stays invisible.
		h.logger.Warn("honeypot triggered, dropping submission", "client_id", client)
		h.metrics.ObserveSubmission(metrics.OutcomeHoneypot)
		writeJSON(w, http.StatusOK, successResponse{Success: true})
		return
	}

	if h.sender == nil {
		h.logger.Error("email sender not configured, submission dropped", "client_id", client)
		h.metrics.ObserveSubmission(metrics.OutcomeMisconfigured)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgMisconfigured})
		return
	}

	msg := composeEmail(sanitizeSubmission(sub), h.cfg.ToEmail)

	// Detach from the request context so a client disconnect cannot cancel
	// a send that was already accepted.
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.cfg.SendTimeout)
	defer cancel()

	start := time.Now()
	id, err := h.sender.Send(sendCtx, msg)
	h.metrics.ObserveEmailSend(time.Since(start).Seconds())
	if err != nil {
		h.logger.Error("failed to relay contact email", "error", err, "client_id", client)
		h.metrics.ObserveSubmission(metrics.OutcomeDeliveryFailed)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgSendFailed})
		return
	}

	h.logger.Info("contact submission relayed", "project_type", sub.ProjectType, "message_id", id)
	h.metrics.ObserveSubmission(metrics.OutcomeAccepted)
	writeJSON(w, http.StatusOK, successResponse{Success: true, ID: id})
}

func (h *Handler) limited(ctx context.Context, client string) bool {
	if h.limiter == nil {
		return false
	}
	if h.cfg.ExemptUnknown && client == "unknown" {
		return false
	}
	return !h.limiter.Allow(ctx, client)
}

// clientID derives the rate-limit key from reverse-proxy headers. Requests
// that reach the service without them share the "unknown" bucket.
func clientID(r *http.Request) string {
	if xri := strings.TrimSpace(r.Header.Get("X-Real-Ip")); xri != "" {
		return xri
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return first
		}
	}
	return "unknown"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
