package refsignal

import (
	"sync"

	"github.com/petermattis/goid"
)

// systems holds one default ReactiveSystem per goroutine.
var systems sync.Map

// Default returns the ReactiveSystem of the calling goroutine, creating it on
// first use. The system stays registered until ResetDefault is called from
// the same goroutine, so a short-lived goroutine that calls Default must
// defer ResetDefault or it leaks its system. Prefer passing a system created
// with CreateReactiveSystem explicitly in that case.
func Default() *ReactiveSystem {
	gid := goid.Get()

	if rs, ok := systems.Load(gid); ok {
		return rs.(*ReactiveSystem)
	}

	rs, _ := systems.LoadOrStore(gid, CreateReactiveSystem())
	return rs.(*ReactiveSystem)
}

// SetDefault replaces the calling goroutine's default system.
func SetDefault(rs *ReactiveSystem) {
	systems.Store(goid.Get(), rs)
}

// ResetDefault forgets the calling goroutine's default system. Goroutines
// that use Default should call it before exiting.
func ResetDefault() {
	systems.Delete(goid.Get())
}

// CreateSignal creates a signal on the calling goroutine's default system.
func CreateSignal[T comparable](initialValue T, opts ...SignalOption) *WriteableSignal[T] {
	return Signal(Default(), initialValue, opts...)
}

// RunBatch is Batch on the default system.
func RunBatch(fn func() error) error {
	return Default().Batch(fn)
}

// RunBatchDeps is BatchDeps on the default system.
func RunBatchDeps(fn func() error, deps ...SignalAware) error {
	return Default().BatchDeps(fn, deps...)
}
