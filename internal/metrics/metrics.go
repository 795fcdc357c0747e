package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the ingestion and parsing counters exposed on /metrics.
type Metrics struct {
	RecordsIngested  prometheus.Counter
	OwnersParsed     *prometheus.CounterVec
	InvalidFragments prometheus.Counter
	ParseRequests    prometheus.Counter
}

// New registers the counters on the default registry. Call once per
// process.
func New() *Metrics {
	return &Metrics{
		RecordsIngested: promauto.NewCounter(prometheus.CounterOpts{
			Name: "deeds_records_ingested_total",
			Help: "Property records ingested into the ledger.",
		}),
		OwnersParsed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "deeds_owners_parsed_total",
			Help: "Owners produced by the parser, by kind.",
		}, []string{"kind"}),
		InvalidFragments: promauto.NewCounter(prometheus.CounterOpts{
			Name: "deeds_invalid_fragments_total",
			Help: "Name fragments the parser could not classify.",
		}),
		ParseRequests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "deeds_parse_requests_total",
			Help: "Calls to the parse endpoint.",
		}),
	}
}

// ObserveParse records the owner and invalid counts of one parse result.
func (m *Metrics) ObserveParse(persons, companies, invalids int) {
	if m == nil {
		return
	}
	m.OwnersParsed.WithLabelValues("person").Add(float64(persons))
	m.OwnersParsed.WithLabelValues("company").Add(float64(companies))
	m.InvalidFragments.Add(float64(invalids))
}
