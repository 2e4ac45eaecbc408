package health

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aximo-works/boardwatch/internal/sanitize"
)

const alertTimeout = 5 * time.Second

// Alerter posts degradation notices to a webhook. Delivery is best-effort:
// a failed post is logged and forgotten, never surfaced to the caller. An
// empty webhook URL disables alerting entirely.
type Alerter struct {
	webhook    string
	httpClient *http.Client
	logger     logrus.FieldLogger
}

func NewAlerter(webhook string, logger logrus.FieldLogger) *Alerter {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Alerter{
		webhook:    webhook,
		httpClient: &http.Client{Timeout: alertTimeout},
		logger:     logger,
	}
}

// Enabled reports whether a webhook is configured.
func (a *Alerter) Enabled() bool { return a.webhook != "" }

// Send posts one alert. The hint is sanitized and capped before leaving the
// process.
func (a *Alerter) Send(ctx context.Context, hint string) {
	if !a.Enabled() {
		return
	}

	payload := map[string]string{
		"text": "task backend degraded",
		"hint": sanitize.Hint(hint),
		"ts":   time.Now().UTC().Format(time.RFC3339),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		a.logger.WithError(err).Debug("failed to encode alert")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.webhook, bytes.NewReader(data))
	if err != nil {
		a.logger.WithError(err).Debug("failed to build alert request")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		a.logger.WithError(err).Debug("failed to deliver alert")
		return
	}
	_ = resp.Body.Close()
	a.logger.WithField("status", resp.StatusCode).Debug("alert delivered")
}
