package metric

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/lore/errors"
)

// WriteTextfile writes every registered metric to path in the Prometheus
// text exposition format. The file is replaced atomically.
func (r *MetricsRegistry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.prometheusRegistry); err != nil {
		return errors.WrapTransient(err, "MetricsRegistry", "WriteTextfile", "write metrics textfile")
	}
	return nil
}
