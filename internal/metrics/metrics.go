package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records aggregate-index activity.
type Metrics interface {
	IncRebuilds(branch string)
	IncRebuildsDiscarded(branch string)
	IncFetchFailures(docType string)
	SetIndexedDocuments(count int)
}

// Noop implements Metrics without emitting anything.
type Noop struct{}

func (Noop) IncRebuilds(string)          {}
func (Noop) IncRebuildsDiscarded(string) {}
func (Noop) IncFetchFailures(string)     {}
func (Noop) SetIndexedDocuments(int)     {}

// Prom implements Metrics backed by Prometheus collectors.
type Prom struct {
	rebuilds          *prometheus.CounterVec
	rebuildsDiscarded *prometheus.CounterVec
	fetchFailures     *prometheus.CounterVec
	indexedDocuments  prometheus.Gauge
	once              sync.Once
}

func NewProm(namespace string) *Prom {
	p := &Prom{
		rebuilds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "index_rebuilds_total",
			Help:      "Aggregate index rebuilds by branch",
		}, []string{"branch"}),
		rebuildsDiscarded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "index_rebuilds_discarded_total",
			Help:      "Rebuilds discarded because the branch changed while fetches were in flight",
		}, []string{"branch"}),
		fetchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_fetch_failures_total",
			Help:      "Failed document fetches by document type",
		}, []string{"doctype"}),
		indexedDocuments: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "indexed_documents",
			Help:      "Documents currently held by the aggregate index",
		}),
	}
	p.register()
	return p
}

func (p *Prom) register() {
	p.once.Do(func() {
		prometheus.MustRegister(p.rebuilds, p.rebuildsDiscarded, p.fetchFailures, p.indexedDocuments)
	})
}

func (p *Prom) IncRebuilds(branch string) { p.rebuilds.WithLabelValues(branch).Inc() }

func (p *Prom) IncRebuildsDiscarded(branch string) {
	p.rebuildsDiscarded.WithLabelValues(branch).Inc()
}

func (p *Prom) IncFetchFailures(docType string) { p.fetchFailures.WithLabelValues(docType).Inc() }

func (p *Prom) SetIndexedDocuments(count int) { p.indexedDocuments.Set(float64(count)) }
