package refsignal

import (
	"fmt"
	"time"

	"github.com/delaneyj/refsignal/stack"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ReactiveSystem is the batch context shared by a group of signals. It owns
// the listener registry, the explicit batch scope stack and the auto batch
// tracking set. It is not safe for concurrent use; every signal created from
// it must be used from one goroutine at a time.
type ReactiveSystem struct {
	registry *registry
	scopes   *stack.Stack[*batchScope]
	tracked  *batchScope

	onError OnErrorFunc
	logger  logrus.FieldLogger
	now     func() time.Time
	sink    Sink
}

type Option func(*ReactiveSystem)

// WithOnError sets a hook called for every failed listener.
func WithOnError(fn OnErrorFunc) Option {
	return func(rs *ReactiveSystem) {
		rs.onError = fn
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(rs *ReactiveSystem) {
		if logger != nil {
			rs.logger = logger
		}
	}
}

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(rs *ReactiveSystem) {
		if now != nil {
			rs.now = now
		}
	}
}

// WithSink attaches a devtools sink.
func WithSink(sink Sink) Option {
	return func(rs *ReactiveSystem) {
		rs.sink = sink
	}
}

func CreateReactiveSystem(opts ...Option) *ReactiveSystem {
	rs := &ReactiveSystem{
		registry: newRegistry(),
		scopes:   stack.New[*batchScope](),
		logger:   logrus.StandardLogger(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(rs)
	}
	return rs
}

// ListenerCount returns how many listeners are subscribed to s.
func (rs *ReactiveSystem) ListenerCount(s SignalAware) int {
	return rs.registry.count(s)
}

// SubscribedSignals returns how many signals have at least one listener.
func (rs *ReactiveSystem) SubscribedSignals() int {
	return rs.registry.size()
}

// BatchDepth is the number of explicit scopes currently open.
func (rs *ReactiveSystem) BatchDepth() int {
	return rs.scopes.Len()
}

// InAutoBatch reports whether an auto batch is running.
func (rs *ReactiveSystem) InAutoBatch() bool {
	return rs.tracked != nil
}

func (rs *ReactiveSystem) suppressed(s SignalAware) bool {
	if rs.tracked != nil && rs.tracked.contains(s) {
		return true
	}
	found := false
	rs.scopes.Each(func(scope *batchScope) bool {
		found = scope.contains(s)
		return !found
	})
	return found
}

func (rs *ReactiveSystem) track(s SignalAware) {
	if rs.tracked != nil {
		rs.tracked.add(s)
	}
}

// deliver fans the current value of s out to its listeners. Each listener
// runs in isolation: a failing listener is reported and the rest still run.
func (rs *ReactiveSystem) deliver(s SignalAware) {
	subs := rs.registry.snapshot(s)
	if len(subs) == 0 {
		return
	}
	v := s.currentValue()
	for _, sub := range subs {
		if err := invoke(sub, v); err != nil {
			rs.reportError(s, err)
		}
	}
}

func invoke(sub subscriber, v any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if rErr, ok := r.(error); ok {
				err = errors.Wrap(rErr, "listener panicked")
				return
			}
			err = errors.Errorf("listener panicked: %v", r)
		}
	}()
	return sub.call(v)
}

func (rs *ReactiveSystem) reportError(s SignalAware, err error) {
	rs.logger.WithFields(logrus.Fields{
		"signal":    s.Name(),
		"signal_id": s.ID(),
	}).WithError(err).Error("listener failed")

	if rs.onError != nil {
		rs.onError(s, err)
	}
}

// flush stamps every signal with one shared instant, then notifies them.
// Signals still covered by an enclosing batch stay quiet until it exits.
func (rs *ReactiveSystem) flush(signals []SignalAware) {
	if len(signals) == 0 {
		return
	}
	now := rs.now()
	for _, s := range signals {
		s.stamp(now)
	}
	for _, s := range signals {
		s.Notify()
	}
}

func (rs *ReactiveSystem) sinkEnabled() (enabled bool) {
	if rs.sink == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			rs.logger.WithField("panic", fmt.Sprint(r)).Debug("devtools sink failed")
			enabled = false
		}
	}()
	return rs.sink.Enabled()
}

// withSink runs fn against the sink when it is enabled, swallowing panics.
func (rs *ReactiveSystem) withSink(fn func(Sink)) {
	if !rs.sinkEnabled() {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			rs.logger.WithField("panic", fmt.Sprint(r)).Debug("devtools sink failed")
		}
	}()
	fn(rs.sink)
}
