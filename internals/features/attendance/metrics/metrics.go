// file: internals/features/attendance/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AttendanceMarks: log yang ditulis, per source (manual/auto) & status.
	AttendanceMarks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "attendku",
		Name:      "attendance_marks_total",
		Help:      "Attendance logs written, by source and status.",
	}, []string{"source", "status"})

	SweepRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "attendku",
		Name:      "auto_attendance_sweeps_total",
		Help:      "Auto-attendance sweeps, by trigger and result.",
	}, []string{"trigger", "result"})

	SweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "attendku",
		Name:      "auto_attendance_sweep_seconds",
		Help:      "Duration of one auto-attendance sweep.",
		Buckets:   prometheus.DefBuckets,
	})

	PersistFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "attendku",
		Name:      "persist_failures_total",
		Help:      "State writes rejected by the backing store.",
	})
)
