package refsignal

import mapset "github.com/deckarep/golang-set/v2"

// batchScope is one explicit batch level: the signals it keeps quiet and the
// order they are flushed in.
type batchScope struct {
	members mapset.Set[SignalAware]
	order   []SignalAware
}

func newBatchScope(deps []SignalAware) *batchScope {
	scope := &batchScope{
		members: mapset.NewThreadUnsafeSet[SignalAware](),
		order:   make([]SignalAware, 0, len(deps)),
	}
	for _, dep := range deps {
		scope.add(dep)
	}
	return scope
}

// add records s once, keeping first-seen order. Nil signals, typed or not,
// are skipped.
func (scope *batchScope) add(s SignalAware) {
	if s == nil || s.isNil() {
		return
	}
	if scope.members.Add(s) {
		scope.order = append(scope.order, s)
	}
}

func (scope *batchScope) contains(s SignalAware) bool {
	return scope.members.Contains(s)
}

// Batch runs fn and holds back notifications for every signal updated through
// SetValue while it runs. When fn returns, or panics, the updated signals are
// stamped with one timestamp and notified once each with their final value.
// Nested calls keep their own set and flush when they exit. Signals flush in
// the order they were first updated.
//
// The error returned by fn is returned unchanged, after the flush.
func (rs *ReactiveSystem) Batch(fn func() error) error {
	prev := rs.tracked
	tracked := newBatchScope(nil)
	rs.tracked = tracked

	defer func() {
		rs.tracked = prev
		rs.flush(tracked.order)
	}()

	return fn()
}

// BatchDeps runs fn with notifications for deps held back. When fn returns,
// or panics, every dep is stamped with one timestamp and notified, whether
// or not it changed. With no deps nothing is held back and nothing is
// flushed.
func (rs *ReactiveSystem) BatchDeps(fn func() error, deps ...SignalAware) error {
	rs.StartBatch(deps...)
	defer rs.EndBatch()

	return fn()
}

// StartBatch opens an explicit batch scope over deps. Every StartBatch must be
// matched by one EndBatch.
func (rs *ReactiveSystem) StartBatch(deps ...SignalAware) {
	rs.scopes.Push(newBatchScope(deps))
}

// EndBatch closes the innermost explicit scope and flushes its signals. It
// panics with stack.ErrStackUnderflow when no scope is open.
func (rs *ReactiveSystem) EndBatch() {
	scope := rs.scopes.Pop()
	rs.flush(scope.order)
}
