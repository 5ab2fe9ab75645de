package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yndnr/canikit-go/internal/core/domain"
)

const namespace = "canikit"

// Registry holds all application metrics.
type Registry struct {
	reg *prometheus.Registry

	// StorageOps counts repository calls by entity, method and result.
	StorageOps *prometheus.CounterVec

	// ExternalCalls counts calls to ledger, minting and management clients.
	ExternalCalls *prometheus.CounterVec
}

// NewRegistry creates a registry with the Go and process collectors.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		reg: reg,
		StorageOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "operations_total",
			Help:      "Repository operations by entity, method and result",
		}, []string{"entity", "method", "result"}),
		ExternalCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ic",
			Name:      "external_calls_total",
			Help:      "Calls to external canisters by service, method and result",
		}, []string{"service", "method", "result"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.StorageOps,
		r.ExternalCalls,
	)
	return r
}

// Registerer returns the registerer other components add collectors to.
func (r *Registry) Registerer() prometheus.Registerer {
	return r.reg
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// StorageOp records one repository call.
func (r *Registry) StorageOp(entity, method string, err error) {
	r.StorageOps.WithLabelValues(entity, method, Result(err)).Inc()
}

// ExternalCall records one call to an external service.
func (r *Registry) ExternalCall(service, method string, err error) {
	r.ExternalCalls.WithLabelValues(service, method, Result(err)).Inc()
}

// Result turns an error into a low cardinality label value: "ok", the
// APIError type name, or "error".
func Result(err error) string {
	if err == nil {
		return "ok"
	}
	if ae, ok := domain.AsAPIError(err); ok {
		return ae.Type.String()
	}
	return "error"
}
