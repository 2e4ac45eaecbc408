package health_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aximo-works/boardwatch/internal/health"
)

func TestMonitorEdgeTriggering(t *testing.T) {
	clock := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	m := health.NewMonitor(10 * time.Minute)
	m.SetNow(func() time.Time { return clock })

	observe := func(ok bool) health.Decision {
		return m.Observe(health.Report{OK: ok, Hint: "upstream_status=503 boom"})
	}

	// Poll sequence ok, ok, fail, fail, fail, ok inside one cooldown window:
	// exactly one alert, on the first failure.
	assert.False(t, observe(true).Alert)
	assert.False(t, observe(true).Alert)

	d := observe(false)
	assert.True(t, d.Alert)
	assert.Equal(t, "upstream_status=503 boom", d.Reason)

	clock = clock.Add(30 * time.Second)
	assert.False(t, observe(false).Alert)
	clock = clock.Add(30 * time.Second)
	assert.False(t, observe(false).Alert)

	assert.False(t, observe(true).Alert) // recovery is silent
}

func TestMonitorReminderAfterCooldown(t *testing.T) {
	clock := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	m := health.NewMonitor(10 * time.Minute)
	m.SetNow(func() time.Time { return clock })

	assert.True(t, m.Observe(health.Report{OK: false}).Alert)

	clock = clock.Add(9 * time.Minute)
	assert.False(t, m.Observe(health.Report{OK: false}).Alert)

	clock = clock.Add(time.Minute)
	assert.True(t, m.Observe(health.Report{OK: false}).Alert)

	// The reminder reset the window.
	clock = clock.Add(time.Minute)
	assert.False(t, m.Observe(health.Report{OK: false}).Alert)
}

func TestMonitorAlertsOnFirstObservationFailure(t *testing.T) {
	m := health.NewMonitor(0)
	assert.True(t, m.Observe(health.Report{OK: false}).Alert)
	assert.False(t, m.Healthy())
}

func TestMonitorReTriggersAfterRecovery(t *testing.T) {
	clock := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	m := health.NewMonitor(10 * time.Minute)
	m.SetNow(func() time.Time { return clock })

	assert.True(t, m.Observe(health.Report{OK: false}).Alert)
	assert.False(t, m.Observe(health.Report{OK: true}).Alert)

	// New outage right after recovery alerts again even inside the old
	// cooldown window: edges, not rate limiting, drive the first alert.
	clock = clock.Add(time.Minute)
	assert.True(t, m.Observe(health.Report{OK: false}).Alert)
}

func TestMonitorHealthyBeforeFirstObservation(t *testing.T) {
	m := health.NewMonitor(time.Minute)
	assert.True(t, m.Healthy())
}
