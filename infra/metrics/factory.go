package metrics

import (
	"github.com/kilianp07/rosterplan/core/factory"
	coremetrics "github.com/kilianp07/rosterplan/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// init registers built-in metrics sinks.
func init() {
	_ = coremetrics.RegisterMetricsSink("prometheus", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c struct {
			// Addr is used by the HTTP server only; PromSink itself doesn't use it.
			Addr string `json:"addr"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
	})
}
