package refsignal

import (
	"sync/atomic"
	"time"
)

// SignalAware is implemented only by signals created in this package.
// Registry keys and batch membership use it, so identity is the pointer.
type SignalAware interface {
	isSignalAware()

	ID() uint64
	Name() string
	LastUpdated() time.Time
	Notify()
	NotifyUpdate()

	stamp(now time.Time)
	currentValue() any
	isNil() bool
}

// IsSignal reports whether v is a signal. Values that merely look like one
// (same fields, same method names) are rejected, and so are nil pointers.
func IsSignal(v any) bool {
	s, ok := v.(SignalAware)
	return ok && !s.isNil()
}

type OnErrorFunc func(from SignalAware, err error)

// Sink receives update tracking from a ReactiveSystem. It is optional and
// best effort: a sink that panics is ignored.
type Sink interface {
	Enabled() bool
	RegisterSignal(s SignalAware)
	UnregisterSignal(s SignalAware)
	TrackUpdate(s SignalAware, oldValue, newValue any)
}

var lastSignalID atomic.Uint64

func nextSignalID() uint64 {
	return lastSignalID.Add(1)
}
