package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/noah-isme/pantau-go-api/internal/observability"
)

const defaultNotifyTimeout = 5 * time.Second

// CheckInFailedEvent is dispatched to the external workflow system when a
// check-in fails and an intervention is pending mentor review.
type CheckInFailedEvent struct {
	EventID        string    `json:"event_id"`
	StudentID      string    `json:"student_id"`
	QuizScore      float64   `json:"quiz_score"`
	FocusMinutes   float64   `json:"focus_minutes"`
	InterventionID uint      `json:"intervention_id"`
	SentAt         time.Time `json:"sent_at"`
}

// Notifier dispatches check-in failure events to the configured workflow
// trigger. Dispatch is best-effort: failures are logged and swallowed, never
// surfaced to the caller.
type Notifier interface {
	NotifyFailure(ctx context.Context, event CheckInFailedEvent)
}

type webhookNotifier struct {
	webhookURL  string
	natsConn    *nats.Conn
	natsSubject string
	client      *http.Client
	logger      zerolog.Logger
}

// NewNotifier constructs a notifier posting to the given webhook URL and,
// when a NATS connection is supplied, publishing the same event to the given
// subject. An empty URL and nil connection yield a notifier that does
// nothing.
func NewNotifier(webhookURL string, timeout time.Duration, natsConn *nats.Conn, natsSubject string, logger zerolog.Logger) Notifier {
	if timeout <= 0 {
		timeout = defaultNotifyTimeout
	}

	return &webhookNotifier{
		webhookURL:  webhookURL,
		natsConn:    natsConn,
		natsSubject: natsSubject,
		client:      &http.Client{Timeout: timeout},
		logger:      logger.With().Str("component", "notifier").Logger(),
	}
}

func (n *webhookNotifier) NotifyFailure(ctx context.Context, event CheckInFailedEvent) {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.SentAt.IsZero() {
		event.SentAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.Warn().Err(err).Msg("failed to encode check-in failure event")
		return
	}

	if n.webhookURL != "" {
		n.dispatchWebhook(ctx, event, payload)
	}

	if n.natsConn != nil && n.natsSubject != "" {
		if err := n.natsConn.Publish(n.natsSubject, payload); err != nil {
			n.logger.Warn().Err(err).Str("student_id", event.StudentID).Msg("failed to publish check-in event to nats")
		}
	}
}

func (n *webhookNotifier) dispatchWebhook(ctx context.Context, event CheckInFailedEvent, payload []byte) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(payload))
	if err != nil {
		n.logger.Warn().Err(err).Msg("failed to build webhook request")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		observability.WebhookDispatches().WithLabelValues("error").Inc()
		n.logger.Warn().Err(err).Str("student_id", event.StudentID).Msg("workflow webhook call failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		observability.WebhookDispatches().WithLabelValues("rejected").Inc()
		n.logger.Warn().
			Int("status", resp.StatusCode).
			Str("student_id", event.StudentID).
			Uint("intervention_id", event.InterventionID).
			Msg("workflow webhook rejected event")
		return
	}

	observability.WebhookDispatches().WithLabelValues("ok").Inc()
	n.logger.Debug().
		Str("student_id", event.StudentID).
		Uint("intervention_id", event.InterventionID).
		Msg("workflow webhook notified")
}
