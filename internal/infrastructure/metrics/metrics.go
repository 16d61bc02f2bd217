// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the collectors incremented by the HTTP handlers.
type Metrics struct {
	StockEntries  prometheus.Counter
	StockExits    prometheus.Counter
	ReportsByType *prometheus.CounterVec
	OCRFailures   prometheus.Counter
}

// New registers the collectors on the default registry.
func New() *Metrics {
	return &Metrics{
		StockEntries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "uniform_stock_entries_total",
			Help: "Stock entries registered, manual and OCR combined.",
		}),
		StockExits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "uniform_stock_exits_total",
			Help: "Stock exits registered via barcode scan.",
		}),
		ReportsByType: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "uniform_stock_reports_generated_total",
			Help: "Reports generated, labeled by output format.",
		}, []string{"format"}),
		OCRFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "uniform_stock_ocr_failures_total",
			Help: "Invoice OCR calls that ended in a failure result.",
		}),
	}
}
