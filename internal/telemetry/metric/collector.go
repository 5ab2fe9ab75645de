package metric

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// RegionSample is the state of one stable memory region.
type RegionSample struct {
	ID    uint8
	Name  string
	Keys  uint64
	Bytes uint64
}

// RegionSource reports the current regions.
type RegionSource func() ([]RegionSample, error)

// RegionCollector exports per-region key counts and sizes at scrape time.
type RegionCollector struct {
	source RegionSource
	keys   *prometheus.Desc
	bytes  *prometheus.Desc
	errors prometheus.Counter
}

// NewRegionCollector creates a collector reading from source.
func NewRegionCollector(source RegionSource) *RegionCollector {
	return &RegionCollector{
		source: source,
		keys: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "stable", "region_keys"),
			"Number of keys stored in a region",
			[]string{"region", "name"}, nil),
		bytes: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "stable", "region_bytes"),
			"Key and value bytes stored in a region",
			[]string{"region", "name"}, nil),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "stable",
			Name:      "region_scrape_errors_total",
			Help:      "Failed region scans during metric collection",
		}),
	}
}

// Describe implements prometheus.Collector.
func (c *RegionCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.keys
	ch <- c.bytes
	c.errors.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *RegionCollector) Collect(ch chan<- prometheus.Metric) {
	samples, err := c.source()
	if err != nil {
		c.errors.Inc()
	}
	for _, s := range samples {
		id := strconv.Itoa(int(s.ID))
		ch <- prometheus.MustNewConstMetric(c.keys, prometheus.GaugeValue, float64(s.Keys), id, s.Name)
		ch <- prometheus.MustNewConstMetric(c.bytes, prometheus.GaugeValue, float64(s.Bytes), id, s.Name)
	}
	c.errors.Collect(ch)
}
