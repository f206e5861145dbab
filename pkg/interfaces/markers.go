package interfaces

import "time"

// MarkerMetrics receives timings and failures from the marker service. The
// operation names are "insert", "extract", "show" and "hint".
type MarkerMetrics interface {
	ObserveDuration(operation string, duration time.Duration)
	IncrementFailure(operation string, code string)
}
