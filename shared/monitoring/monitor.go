package monitoring

import (
	"fmt"
	"log"
	"sync"
	"time"

	"weatherwise-shell/internal/models"
)

// Monitor tracks the prediction backend as seen from this shell. Command
// outcomes and the background probe feed it; the bridge's status route reads
// it. Safe for concurrent use.
type Monitor struct {
	mu                  sync.RWMutex
	reachable           bool
	lastAttempt         time.Time
	lastContact         time.Time
	lastSuccess         time.Time
	lastError           string
	consecutiveFailures int
}

func NewMonitor() *Monitor {
	return &Monitor{}
}

// RecordSuccess notes an operation that completed end to end.
func (m *Monitor) RecordSuccess(op string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	recovered := !m.lastAttempt.IsZero() && !m.reachable
	now := time.Now()
	m.reachable = true
	m.lastAttempt = now
	m.lastContact = now
	m.lastSuccess = now
	m.lastError = ""
	m.consecutiveFailures = 0

	if recovered {
		log.Printf("✅ Backend reachable again: %s succeeded (took %v)", op, duration)
	}
}

// RecordDegraded notes an operation that reached the backend but failed
// anyway: an error status or an undecodable body.
func (m *Monitor) RecordDegraded(op string, err error, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	m.reachable = true
	m.lastAttempt = now
	m.lastContact = now
	m.lastError = err.Error()
	m.consecutiveFailures++

	log.Printf("⚠️  %s degraded: %v (took %v)", op, err, duration)
}

// RecordUnreachable notes an operation that never got a response from the
// backend: connection refused, timeout, name resolution.
func (m *Monitor) RecordUnreachable(op string, err error, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	m.reachable = false
	m.lastAttempt = now
	m.lastError = err.Error()
	m.consecutiveFailures++

	log.Printf("🚨 %s failed, backend unreachable: %v (took %v)", op, err, duration)
}

// IsHealthy reports whether the backend answered on the most recent attempt.
// Before any attempt it assumes healthy.
func (m *Monitor) IsHealthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.lastAttempt.IsZero() {
		return true
	}
	return m.reachable
}

// StatusSummary returns a one-line human-readable backend status.
func (m *Monitor) StatusSummary() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.lastAttempt.IsZero() {
		return "No backend contact yet"
	}
	if m.reachable {
		if m.lastError != "" {
			return fmt.Sprintf("⚠️ Backend degraded: %s", m.lastError)
		}
		return fmt.Sprintf("✅ Backend reachable, last success: %s", m.lastSuccess.Format("Jan 2 15:04:05"))
	}
	return fmt.Sprintf("❌ Backend unreachable: %s", m.lastError)
}

// Snapshot returns the current state for the bridge's status route.
func (m *Monitor) Snapshot() models.BackendStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	reachable := m.reachable
	if m.lastAttempt.IsZero() {
		reachable = true
	}
	return models.BackendStatus{
		Reachable:           reachable,
		LastAttempt:         m.lastAttempt,
		LastContact:         m.lastContact,
		LastSuccess:         m.lastSuccess,
		LastError:           m.lastError,
		ConsecutiveFailures: m.consecutiveFailures,
	}
}
