package repository

import "github.com/okian/signup/pkg/metrics"

// LatencyRecorder receives store operation latencies in milliseconds.
type LatencyRecorder interface {
	RecordRepositoryUpdateLatency(latencyMs float64)
	RecordRepositoryQueryLatency(latencyMs float64)
}

type globalRecorder struct{}

func (globalRecorder) RecordRepositoryUpdateLatency(ms float64) {
	metrics.RecordRepositoryUpdateLatency(ms)
}

func (globalRecorder) RecordRepositoryQueryLatency(ms float64) {
	metrics.RecordRepositoryQueryLatency(ms)
}

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithLatencyRecorder replaces the global metrics recorder.
func WithLatencyRecorder(r LatencyRecorder) Option {
	return func(s *MemoryStore) {
		if r != nil {
			s.recorder = r
		}
	}
}
