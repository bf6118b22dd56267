package metrics

import "time"

// Provider is the metrics surface used across the service layers.
type Provider interface {
	IncCacheHits()
	IncCacheMisses()
	IncContentOperation(kind, operation string, success bool)
	RecordHTTPRequest(method, route string, status int, duration time.Duration)
	SetServiceHealth(healthy bool)
}

// Noop satisfies Provider without recording anything; used by tests.
type Noop struct{}

func (Noop) IncCacheHits()                                                       {}
func (Noop) IncCacheMisses()                                                     {}
func (Noop) IncContentOperation(kind, operation string, success bool)            {}
func (Noop) RecordHTTPRequest(method, route string, status int, d time.Duration) {}
func (Noop) SetServiceHealth(healthy bool)                                       {}
