package refsignal

import (
	"fmt"
	"time"
)

// WriteableSignal holds a value outside of any render cycle and tells its
// listeners when the value changes.
type WriteableSignal[T comparable] struct {
	rs          *ReactiveSystem
	id          uint64
	name        string
	value       T
	lastUpdated time.Time
}

type signalConfig struct {
	name string
}

type SignalOption func(*signalConfig)

// WithName sets the debug name shown by devtools and in listener error logs.
func WithName(name string) SignalOption {
	return func(c *signalConfig) {
		c.name = name
	}
}

func Signal[T comparable](rs *ReactiveSystem, initialValue T, opts ...SignalOption) *WriteableSignal[T] {
	cfg := signalConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &WriteableSignal[T]{
		rs:    rs,
		id:    nextSignalID(),
		name:  cfg.name,
		value: initialValue,
	}
	if s.name == "" {
		s.name = fmt.Sprintf("signal#%d", s.id)
	}

	rs.withSink(func(sink Sink) {
		sink.RegisterSignal(s)
	})
	return s
}

func (s *WriteableSignal[T]) isSignalAware() {}

func (s *WriteableSignal[T]) isNil() bool {
	return s == nil
}

func (s *WriteableSignal[T]) currentValue() any {
	return s.value
}

func (s *WriteableSignal[T]) stamp(now time.Time) {
	s.lastUpdated = now
}

func (s *WriteableSignal[T]) ID() uint64 {
	return s.id
}

func (s *WriteableSignal[T]) Name() string {
	return s.name
}

func (s *WriteableSignal[T]) System() *ReactiveSystem {
	return s.rs
}

func (s *WriteableSignal[T]) Value() T {
	return s.value
}

// SetCurrent overwrites the value without stamping or notifying anyone.
func (s *WriteableSignal[T]) SetCurrent(v T) {
	s.value = v
}

// LastUpdated is the instant of the last NotifyUpdate or batch flush.
func (s *WriteableSignal[T]) LastUpdated() time.Time {
	return s.lastUpdated
}

// SetValue stores v and notifies listeners. Storing the value already held is
// a no-op: nothing is stamped, notified or recorded. Payloads that cannot be
// compared, such as slices held by a Signal[any], always count as changed.
func (s *WriteableSignal[T]) SetValue(v T) {
	if same(s.value, v) {
		return
	}
	oldValue := s.value
	s.value = v

	s.rs.track(s)
	s.rs.withSink(func(sink Sink) {
		sink.TrackUpdate(s, oldValue, v)
	})
	s.NotifyUpdate()
}

// Update stores fn(current).
func (s *WriteableSignal[T]) Update(fn func(T) T) {
	s.SetValue(fn(s.value))
}

// Notify hands the current value to every listener. It does nothing while a
// batch holds this signal back; the batch notifies when it exits.
func (s *WriteableSignal[T]) Notify() {
	if s.rs.suppressed(s) {
		return
	}
	s.rs.deliver(s)
}

// NotifyUpdate stamps LastUpdated and then behaves like Notify.
func (s *WriteableSignal[T]) NotifyUpdate() {
	s.lastUpdated = s.rs.now()
	s.Notify()
}

func (s *WriteableSignal[T]) Subscribe(l *Listener[T]) {
	if l == nil {
		return
	}
	s.rs.registry.add(s, l)
}

func (s *WriteableSignal[T]) Unsubscribe(l *Listener[T]) {
	if l == nil {
		return
	}
	s.rs.registry.remove(s, l)
}

// OnChange subscribes fn and returns the matching unsubscribe.
func (s *WriteableSignal[T]) OnChange(fn func(T)) (unsubscribe func()) {
	l := ListenerFunc(fn)
	s.Subscribe(l)
	return func() {
		s.Unsubscribe(l)
	}
}

// Dispose drops every listener of s and forgets it in devtools. The signal
// still holds its value afterwards.
func (s *WriteableSignal[T]) Dispose() {
	s.rs.registry.removeAll(s)
	s.rs.withSink(func(sink Sink) {
		sink.UnregisterSignal(s)
	})
}

func (s *WriteableSignal[T]) String() string {
	return fmt.Sprintf("%s(%v)", s.name, s.value)
}

// same is == that reports false instead of panicking when the dynamic type
// is not comparable.
func same(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}
