package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/ryanbastic/classtrak/internal/record"
	"github.com/ryanbastic/classtrak/internal/storage"
	"github.com/ryanbastic/classtrak/internal/tabular"
)

var (
	storeOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Total number of repository calls by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	storeOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Repository call duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	storeRowsAffected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "rows_affected_total",
			Help:      "Rows reported changed by delete and update.",
		},
		[]string{"operation"},
	)
)

// Operation labels.
const (
	OpListStudents = "list_students"
	OpListClasses  = "list_classes"
	OpDelete       = "delete_student"
	OpUpdate       = "update_student"
)

type instrumentedStore struct {
	next storage.StudentStore
}

// InstrumentStore wraps s so every call is counted and timed.
func InstrumentStore(s storage.StudentStore) storage.StudentStore {
	return &instrumentedStore{next: s}
}

func observe(op string, start time.Time, err error) {
	storeOpDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	storeOpsTotal.WithLabelValues(op, outcome).Inc()
}

func (s *instrumentedStore) ListStudents(ctx context.Context) (tabular.Result, error) {
	start := time.Now()
	t, err := s.next.ListStudents(ctx)
	observe(OpListStudents, start, err)
	return t, err
}

func (s *instrumentedStore) ListClassesForStudent(ctx context.Context, studentID int) (tabular.Result, error) {
	start := time.Now()
	t, err := s.next.ListClassesForStudent(ctx, studentID)
	observe(OpListClasses, start, err)
	return t, err
}

func (s *instrumentedStore) DeleteStudent(ctx context.Context, id int) (*record.DeleteOutcome, error) {
	start := time.Now()
	out, err := s.next.DeleteStudent(ctx, id)
	observe(OpDelete, start, err)
	if err == nil {
		storeRowsAffected.WithLabelValues(OpDelete).Add(float64(out.Rows))
	}
	return out, err
}

func (s *instrumentedStore) UpdateStudent(ctx context.Context, req record.UpdateRequest) (int, error) {
	start := time.Now()
	n, err := s.next.UpdateStudent(ctx, req)
	observe(OpUpdate, start, err)
	if err == nil {
		storeRowsAffected.WithLabelValues(OpUpdate).Add(float64(n))
	}
	return n, err
}
