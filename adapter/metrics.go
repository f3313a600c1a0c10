package adapter

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/srediag/mumblelink/api"
	"github.com/srediag/mumblelink/pkg/mumblelink"
)

const namespace = "mumblelink"

var axes = [3]string{"x", "y", "z"}

// Collector exports the current record of every reader as Prometheus
// metrics. Each scrape reads the regions once.
type Collector struct {
	readers func() []api.Reader

	up         *prometheus.Desc
	version    *prometheus.Desc
	tick       *prometheus.Desc
	contextLen *prometheus.Desc
	avatar     *prometheus.Desc
	camera     *prometheus.Desc

	mu         sync.Mutex
	readErrors *prometheus.CounterVec
}

// Readers returns a static reader source for NewCollector.
func Readers(rs ...api.Reader) func() []api.Reader {
	return func() []api.Reader { return rs }
}

// NewCollector returns a collector over the readers src returns at scrape time.
func NewCollector(src func() []api.Reader) *Collector {
	labels := []string{"name"}
	posLabels := []string{"name", "vector", "axis"}
	return &Collector{
		readers: src,
		up: prometheus.NewDesc(namespace+"_up",
			"Whether the last read of the region succeeded.", labels, nil),
		version: prometheus.NewDesc(namespace+"_ui_version",
			"Link protocol version published by the producer.", labels, nil),
		tick: prometheus.NewDesc(namespace+"_ui_tick",
			"Producer tick counter.", labels, nil),
		contextLen: prometheus.NewDesc(namespace+"_context_length_bytes",
			"Bytes of the context buffer in use.", labels, nil),
		avatar: prometheus.NewDesc(namespace+"_avatar_position_meters",
			"Avatar position, front and top vectors.", posLabels, nil),
		camera: prometheus.NewDesc(namespace+"_camera_position_meters",
			"Camera position, front and top vectors.", posLabels, nil),
		readErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "read_errors_total",
			Help:      "Failed reads of the region.",
		}, labels),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.up
	ch <- c.version
	ch <- c.tick
	ch <- c.contextLen
	ch <- c.avatar
	ch <- c.camera
	c.readErrors.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.readers() {
		name := r.Name()
		rec, err := r.Read()
		if err != nil {
			c.readErrors.WithLabelValues(name).Inc()
			ch <- prometheus.MustNewConstMetric(c.up, prometheus.GaugeValue, 0, name)
			continue
		}
		ch <- prometheus.MustNewConstMetric(c.up, prometheus.GaugeValue, 1, name)
		ch <- prometheus.MustNewConstMetric(c.version, prometheus.GaugeValue, float64(rec.UIVersion), name)
		ch <- prometheus.MustNewConstMetric(c.tick, prometheus.GaugeValue, float64(rec.UITick), name)
		ch <- prometheus.MustNewConstMetric(c.contextLen, prometheus.GaugeValue, float64(rec.ContextLen), name)
		c.position(ch, c.avatar, name, rec.Avatar)
		c.position(ch, c.camera, name, rec.Camera)
	}
	c.readErrors.Collect(ch)
}

func (c *Collector) position(ch chan<- prometheus.Metric, desc *prometheus.Desc, name string, p mumblelink.Position) {
	for _, v := range []struct {
		label string
		vec   mumblelink.Vector3D
	}{{"position", p.Position}, {"front", p.Front}, {"top", p.Top}} {
		for i, axis := range axes {
			ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, float64(v.vec[i]), name, v.label, axis)
		}
	}
}
