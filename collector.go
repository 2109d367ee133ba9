package pagearena

import "github.com/prometheus/client_golang/prometheus"

// MetricsSource is anything that can produce an ArenaMetrics snapshot.
// Both *Arena and *SafeArena implement it.
type MetricsSource interface {
	Metrics() ArenaMetrics
}

type collector struct {
	src MetricsSource

	pages       *prometheus.Desc
	bytesInUse  *prometheus.Desc
	capacity    *prometheus.Desc
	pageSize    *prometheus.Desc
	allocations *prometheus.Desc
	grows       *prometheus.Desc
	failures    *prometheus.Desc
}

// NewCollector returns a prometheus.Collector exporting the metrics of src,
// labelled arena=name. A plain *Arena must not be allocated from while it is
// being scraped; register a *SafeArena when scrapes run concurrently.
func NewCollector(src MetricsSource, name string) prometheus.Collector {
	labels := prometheus.Labels{"arena": name}
	desc := func(metric, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName("pagearena", "", metric), help, nil, labels)
	}
	return &collector{
		src:         src,
		pages:       desc("pages", "Number of pages held by the arena."),
		bytesInUse:  desc("bytes_in_use", "Bytes handed out by the arena."),
		capacity:    desc("capacity_bytes", "Total capacity of all pages."),
		pageSize:    desc("page_size_bytes", "Default page size of the arena."),
		allocations: desc("allocations_total", "Successful allocations."),
		grows:       desc("page_grows_total", "Pages added to satisfy allocations."),
		failures:    desc("allocation_failures_total", "Failed allocations."),
	}
}

func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.pages
	ch <- c.bytesInUse
	ch <- c.capacity
	ch <- c.pageSize
	ch <- c.allocations
	ch <- c.grows
	ch <- c.failures
}

func (c *collector) Collect(ch chan<- prometheus.Metric) {
	m := c.src.Metrics()
	ch <- prometheus.MustNewConstMetric(c.pages, prometheus.GaugeValue, float64(m.NumPages))
	ch <- prometheus.MustNewConstMetric(c.bytesInUse, prometheus.GaugeValue, float64(m.SizeInUse))
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(m.Capacity))
	ch <- prometheus.MustNewConstMetric(c.pageSize, prometheus.GaugeValue, float64(m.PageSize))
	ch <- prometheus.MustNewConstMetric(c.allocations, prometheus.CounterValue, float64(m.Allocs))
	ch <- prometheus.MustNewConstMetric(c.grows, prometheus.CounterValue, float64(m.Grows))
	ch <- prometheus.MustNewConstMetric(c.failures, prometheus.CounterValue, float64(m.Failures))
}
