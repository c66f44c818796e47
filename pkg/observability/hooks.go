// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation of effect instances without
// adding hard dependencies on specific observability backends. Consumers
// register hooks at startup to receive lifecycle and input events.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are called synchronously from event handlers, which run on the
// host's UI event loop, so implementations must return quickly. They take no
// context: the handlers they are called from have none.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLifecycleHooks(&myLifecycleHooks{})
//	    observability.SetInputHooks(&myInputHooks{})
//	    // ... create effect instances
//	}
//
// The effect package calls hooks to emit events:
//
//	observability.Lifecycle().OnTargetSetup(id, layers, mode)
//	observability.Input().OnFrame(id, layers, duration)
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Lifecycle Hooks
// =============================================================================

// LifecycleHooks receives setup and teardown events of effect instances.
type LifecycleHooks interface {
	// OnTargetSetup records a target whose layer tree was built.
	OnTargetSetup(targetID string, layers int, mode string)

	// OnTargetSkipped records a target left untouched; reason is short and
	// machine-readable, e.g. "no_layers".
	OnTargetSkipped(reason string)

	// OnTeardown records a teardown; detached counts removed listeners.
	OnTeardown(targets, detached int)
}

// =============================================================================
// Input Hooks
// =============================================================================

// InputHooks receives interaction events.
type InputHooks interface {
	// OnEnter records a target becoming active.
	OnEnter(targetID string)

	// OnFrame records a computed and applied frame.
	OnFrame(targetID string, layers int, duration time.Duration)

	// OnExit records a target returning to idle.
	OnExit(targetID string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLifecycleHooks is a no-op implementation of LifecycleHooks.
type NoopLifecycleHooks struct{}

func (NoopLifecycleHooks) OnTargetSetup(string, int, string) {}
func (NoopLifecycleHooks) OnTargetSkipped(string)            {}
func (NoopLifecycleHooks) OnTeardown(int, int)               {}

// NoopInputHooks is a no-op implementation of InputHooks.
type NoopInputHooks struct{}

func (NoopInputHooks) OnEnter(string)                     {}
func (NoopInputHooks) OnFrame(string, int, time.Duration) {}
func (NoopInputHooks) OnExit(string)                      {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	lifecycleHooks LifecycleHooks = NoopLifecycleHooks{}
	inputHooks     InputHooks     = NoopInputHooks{}
	hooksMu        sync.RWMutex
)

// SetLifecycleHooks registers custom lifecycle hooks.
// This should be called once at application startup before any instance is created.
func SetLifecycleHooks(h LifecycleHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		lifecycleHooks = h
	}
}

// SetInputHooks registers custom input hooks.
// This should be called once at application startup before any instance is created.
func SetInputHooks(h InputHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		inputHooks = h
	}
}

// Lifecycle returns the registered lifecycle hooks.
func Lifecycle() LifecycleHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return lifecycleHooks
}

// Input returns the registered input hooks.
func Input() InputHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return inputHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	lifecycleHooks = NoopLifecycleHooks{}
	inputHooks = NoopInputHooks{}
}
