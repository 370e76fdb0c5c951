package outbox

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mcdev12/trebol/go/internal/httpx"
)

type HealthStatus struct {
	Healthy           bool      `json:"healthy"`
	EventsRelayed     uint64    `json:"events_relayed"`
	LastRelayAt       time.Time `json:"last_relay_at"`
	PendingEvents     int64     `json:"pending_events"`
	DatabaseConnected bool      `json:"database_connected"`
	NATSConnected     bool      `json:"nats_connected"`
	Errors            []string  `json:"errors"`
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

type PendingCounter interface {
	CountUnsent(ctx context.Context) (int64, error)
}

type BrokerStatus interface {
	Connected() bool
}

// HealthChecker reports whether the relay keeps up with the outbox
type HealthChecker struct {
	relay      *Relay
	db         Pinger
	pending    PendingCounter
	broker     BrokerStatus
	threshold  time.Duration // how long pending events may wait without a relay
	maxPending int64
}

func NewHealthChecker(relay *Relay, db Pinger, pending PendingCounter, broker BrokerStatus, threshold time.Duration) *HealthChecker {
	return &HealthChecker{
		relay:      relay,
		db:         db,
		pending:    pending,
		broker:     broker,
		threshold:  threshold,
		maxPending: 1000,
	}
}

func (h *HealthChecker) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{Healthy: true, Errors: []string{}}
	status.EventsRelayed, status.LastRelayAt = h.relay.Stats()

	if err := h.db.PingContext(ctx); err != nil {
		status.Healthy = false
		status.Errors = append(status.Errors, fmt.Sprintf("database ping failed: %v", err))
	} else {
		status.DatabaseConnected = true
	}

	status.NATSConnected = h.broker.Connected()
	if !status.NATSConnected {
		status.Healthy = false
		status.Errors = append(status.Errors, "NATS disconnected")
	}

	if status.DatabaseConnected {
		pending, err := h.pending.CountUnsent(ctx)
		if err != nil {
			status.Errors = append(status.Errors, fmt.Sprintf("failed to count pending events: %v", err))
		} else {
			status.PendingEvents = pending
			if pending > h.maxPending {
				status.Errors = append(status.Errors, fmt.Sprintf("high pending event count: %d", pending))
			}
		}
	}

	if status.PendingEvents > 0 && !status.LastRelayAt.IsZero() {
		if since := time.Since(status.LastRelayAt); since > h.threshold {
			status.Healthy = false
			status.Errors = append(status.Errors, fmt.Sprintf("no events relayed for %s", since.Round(time.Second)))
		}
	}
	return status
}

func (h *HealthChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := h.Check(ctx)
	code := http.StatusOK
	if !status.Healthy {
		code = http.StatusServiceUnavailable
	}
	httpx.WriteJSON(w, code, status)
}
