package health

import (
	"time"
)

// DefaultCooldown is the minimum gap between repeat alerts while the
// backend stays degraded.
const DefaultCooldown = 10 * time.Minute

type state int

const (
	stateUnknown state = iota
	stateOK
	stateDegraded
)

// Decision is the monitor's verdict on one observation.
type Decision struct {
	Alert  bool
	Reason string
}

// Monitor tracks backend health across observations and edge-triggers
// alerts: one on each healthy-to-degraded transition, then at most one
// reminder per cooldown while the outage lasts. Recovery never alerts.
//
// Monitor is not safe for concurrent use; callers feed it from one loop.
type Monitor struct {
	cooldown    time.Duration
	now         func() time.Time
	prev        state
	lastAlertAt time.Time
}

func NewMonitor(cooldown time.Duration) *Monitor {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Monitor{cooldown: cooldown, now: time.Now}
}

// SetNow swaps the clock, for tests.
func (m *Monitor) SetNow(now func() time.Time) { m.now = now }

// Healthy reports whether the last observation was healthy. Unknown counts
// as healthy so the UI does not open in a degraded state.
func (m *Monitor) Healthy() bool { return m.prev != stateDegraded }

// Observe folds one report into the state machine and says whether to alert.
func (m *Monitor) Observe(report Report) Decision {
	if report.OK {
		m.prev = stateOK
		return Decision{}
	}

	wasDegraded := m.prev == stateDegraded
	m.prev = stateDegraded

	if !wasDegraded {
		m.lastAlertAt = m.now()
		return Decision{Alert: true, Reason: report.Hint}
	}
	if m.now().Sub(m.lastAlertAt) >= m.cooldown {
		m.lastAlertAt = m.now()
		return Decision{Alert: true, Reason: report.Hint}
	}
	return Decision{}
}
