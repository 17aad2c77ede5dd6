package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultNamespace = "rhyming_pairs"

// Observer 记录谜题写入、删除与对账的指标
type Observer interface {
	RecordIngest(duration time.Duration, sizeBytes int, err error)
	RecordDelete(duration time.Duration, err error)
	RecordCompensation(err error)
	RecordReconcile(duration time.Duration, orphans, dangling, removed int, err error)
}

// PrometheusObserver 把指标导出到 Prometheus
type PrometheusObserver struct {
	operationDuration *prometheus.HistogramVec
	operationErrors   *prometheus.CounterVec
	uploadedBytes     prometheus.Counter
	compensations     *prometheus.CounterVec
	reconcileFindings *prometheus.CounterVec
}

// NewPrometheusObserver 注册指标；reg 为 nil 时使用默认注册表，重复注册时复用已有的 collector。
func NewPrometheusObserver(namespace string, reg prometheus.Registerer) (*PrometheusObserver, error) {
	if namespace == "" {
		namespace = defaultNamespace
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	operationDuration, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "puzzle_operation_duration_seconds",
		Help:      "Latency for puzzle ingest, delete and reconcile operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"}))
	if err != nil {
		return nil, err
	}
	operationErrors, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "puzzle_operation_errors_total",
		Help:      "Count of failed puzzle operations.",
	}, []string{"operation"}))
	if err != nil {
		return nil, err
	}
	uploadedBytes, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "puzzle_uploaded_bytes_total",
		Help:      "Cumulative image bytes successfully ingested.",
	}))
	if err != nil {
		return nil, err
	}
	compensations, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "puzzle_blob_compensations_total",
		Help:      "Blob removals issued after a failed metadata insert, by result.",
	}, []string{"result"}))
	if err != nil {
		return nil, err
	}
	reconcileFindings, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "puzzle_reconcile_findings_total",
		Help:      "Orphaned blobs and dangling records found by reconcile sweeps.",
	}, []string{"kind"}))
	if err != nil {
		return nil, err
	}

	return &PrometheusObserver{
		operationDuration: operationDuration,
		operationErrors:   operationErrors,
		uploadedBytes:     uploadedBytes,
		compensations:     compensations,
		reconcileFindings: reconcileFindings,
	}, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, collector T) (T, error) {
	if err := reg.Register(collector); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		var zero T
		return zero, fmt.Errorf("register puzzle metric: %w", err)
	}
	return collector, nil
}

func (o *PrometheusObserver) RecordIngest(duration time.Duration, sizeBytes int, err error) {
	if o == nil {
		return
	}
	o.operationDuration.WithLabelValues("ingest").Observe(duration.Seconds())
	if err != nil {
		o.operationErrors.WithLabelValues("ingest").Inc()
		return
	}
	o.uploadedBytes.Add(float64(sizeBytes))
}

func (o *PrometheusObserver) RecordDelete(duration time.Duration, err error) {
	if o == nil {
		return
	}
	o.operationDuration.WithLabelValues("delete").Observe(duration.Seconds())
	if err != nil {
		o.operationErrors.WithLabelValues("delete").Inc()
	}
}

func (o *PrometheusObserver) RecordCompensation(err error) {
	if o == nil {
		return
	}
	if err != nil {
		o.compensations.WithLabelValues("failed").Inc()
		return
	}
	o.compensations.WithLabelValues("removed").Inc()
}

func (o *PrometheusObserver) RecordReconcile(duration time.Duration, orphans, dangling, removed int, err error) {
	if o == nil {
		return
	}
	o.operationDuration.WithLabelValues("reconcile").Observe(duration.Seconds())
	if err != nil {
		o.operationErrors.WithLabelValues("reconcile").Inc()
		return
	}
	o.reconcileFindings.WithLabelValues("orphan").Add(float64(orphans))
	o.reconcileFindings.WithLabelValues("dangling").Add(float64(dangling))
	o.reconcileFindings.WithLabelValues("orphan_removed").Add(float64(removed))
}

// Handler 暴露 /metrics；gatherer 为 nil 时使用默认注册表
func Handler(gatherer prometheus.Gatherer) http.Handler {
	if gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop 不记录任何指标
func Nop() Observer {
	return nopObserver{}
}

type nopObserver struct{}

func (nopObserver) RecordIngest(time.Duration, int, error) {}

func (nopObserver) RecordDelete(time.Duration, error) {}

func (nopObserver) RecordCompensation(error) {}

func (nopObserver) RecordReconcile(time.Duration, int, int, int, error) {}
