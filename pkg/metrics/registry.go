// Package metrics provides optional Prometheus instrumentation for the
// client. All collection is behind a package-level registry: callers
// that never call InitRegistry pay zero overhead, and the interfaces
// in this package accept a nil receiver safely.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	mu       sync.RWMutex
	registry *prometheus.Registry
	enabled  bool
)

// InitRegistry creates and installs the package-level Prometheus
// registry. Call this once at startup before constructing any
// *prometheus implementation; constructors check IsEnabled and return
// nil when it hasn't been called.
func InitRegistry() *prometheus.Registry {
	mu.Lock()
	defer mu.Unlock()

	registry = prometheus.NewRegistry()
	enabled = true
	return registry
}

// IsEnabled reports whether InitRegistry has been called.
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// GetRegistry returns the package-level registry, or nil if
// InitRegistry hasn't been called.
func GetRegistry() *prometheus.Registry {
	mu.RLock()
	defer mu.RUnlock()
	return registry
}

// Reset tears down the package-level registry. Intended for tests that
// need a clean slate between cases.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	registry = nil
	enabled = false
}
