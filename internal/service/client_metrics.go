package service

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/go-geo-sync/internal/syncerr"
	"github.com/MKhiriev/go-geo-sync/models"
)

// Metrics are the sync engine's Prometheus collectors.
type Metrics struct {
	sessions        *prometheus.CounterVec
	deltasApplied   prometheus.Counter
	deltasUploaded  prometheus.Counter
	deltasRejected  prometheus.Counter
	conflicts       *prometheus.CounterVec
	sessionDuration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		sessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "geosync",
			Name:      "sessions_total",
			Help:      "Sync sessions by outcome.",
		}, []string{"outcome"}),
		deltasApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "geosync",
			Name:      "deltas_applied_total",
			Help:      "Remote deltas and snapshot features applied to local replicas.",
		}),
		deltasUploaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "geosync",
			Name:      "deltas_uploaded_total",
			Help:      "Local deltas accepted by the remote.",
		}),
		deltasRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "geosync",
			Name:      "deltas_rejected_total",
			Help:      "Local deltas rejected by the remote.",
		}),
		conflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "geosync",
			Name:      "conflicts_total",
			Help:      "Sessions ended by a conflict, by kind.",
		}, []string{"kind"}),
		sessionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "geosync",
			Name:      "session_duration_seconds",
			Help:      "Wall time of sync sessions.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
	}

	if reg != nil {
		reg.MustRegister(m.sessions, m.deltasApplied, m.deltasUploaded, m.deltasRejected, m.conflicts, m.sessionDuration)
	}
	return m
}

// observe records a finished session.
func (m *Metrics) observe(out models.SyncOutcome) {
	m.sessionDuration.Observe(out.Duration.Seconds())
	m.deltasApplied.Add(float64(out.Applied))
	m.deltasUploaded.Add(float64(out.Uploaded))
	m.deltasRejected.Add(float64(len(out.Rejected)))

	m.sessions.WithLabelValues(outcomeLabel(out.Err)).Inc()
	if errors.Is(out.Err, syncerr.ErrStructuralConflict) || errors.Is(out.Err, syncerr.ErrDataConflict) {
		kind, _ := syncerr.KindOf(out.Err)
		m.conflicts.WithLabelValues(kind.String()).Inc()
	}
}

func outcomeLabel(err error) string {
	if err == nil {
		return "synchronized"
	}
	if errors.Is(err, ErrSessionCancelled) {
		return "cancelled"
	}
	if kind, ok := syncerr.KindOf(err); ok {
		return kind.String()
	}
	return "error"
}
