// Package health checks whether the task backend is answering sensibly and
// decides when that is worth an alert.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aximo-works/boardwatch/internal/sanitize"
)

// Report is one health observation. It marshals to the same envelope the
// backendhealth endpoint of the web client exposed.
type Report struct {
	OK             bool   `json:"ok"`
	UpstreamStatus *int   `json:"upstream_status,omitempty"`
	Error          string `json:"error,omitempty"`
	Hint           string `json:"hint,omitempty"`
	TS             string `json:"ts"`
}

// Probe performs one end-to-end check against the backend task list.
type Probe struct {
	baseURL     string
	token       string
	tokenHeader string
	httpClient  *http.Client
	logger      logrus.FieldLogger
}

func NewProbe(baseURL, token, tokenHeader string, timeout time.Duration, logger logrus.FieldLogger) *Probe {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Probe{
		baseURL:     baseURL,
		token:       token,
		tokenHeader: tokenHeader,
		httpClient:  &http.Client{Timeout: timeout},
		logger:      logger,
	}
}

// Check fetches the task list and reports healthy only when the backend
// answers 2xx with a JSON body. Check never returns an error: failures are
// part of the report.
func (p *Probe) Check(ctx context.Context) Report {
	report := Report{TS: time.Now().UTC().Format(time.RFC3339)}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/tasks", nil)
	if err != nil {
		return p.degraded(report, nil, err.Error())
	}
	if p.token != "" {
		req.Header.Set(p.tokenHeader, p.token)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return p.degraded(report, nil, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	report.UpstreamStatus = &resp.StatusCode
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return p.degraded(report, &resp.StatusCode, fmt.Sprintf("backend returned HTTP %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return p.degraded(report, &resp.StatusCode, err.Error())
	}
	if !json.Valid(body) {
		return p.degraded(report, &resp.StatusCode, "backend returned non-JSON body")
	}

	report.OK = true
	return report
}

func (p *Probe) degraded(report Report, status *int, errText string) Report {
	report.OK = false
	report.UpstreamStatus = status
	report.Error = sanitize.Snippet(errText)

	statusText := "unknown"
	if status != nil {
		statusText = fmt.Sprintf("%d", *status)
	}
	report.Hint = sanitize.Hint(fmt.Sprintf("upstream_status=%s %s", statusText, report.Error))

	p.logger.WithField("hint", report.Hint).Debug("health check degraded")
	return report
}
