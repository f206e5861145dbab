package boundarymarkers

import (
	"time"

	"github.com/goliatone/go-markers/pkg/interfaces"
)

// NoOpMetrics returns a metrics recorder that drops every observation.
func NoOpMetrics() interfaces.MarkerMetrics {
	return noopMetrics{}
}

type noopMetrics struct{}

func (noopMetrics) ObserveDuration(string, time.Duration) {}

func (noopMetrics) IncrementFailure(string, string) {}
