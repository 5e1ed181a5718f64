package refsignal

import mapset "github.com/deckarep/golang-set/v2"

// subscriber is a type-erased listener.
type subscriber interface {
	call(v any) error
}

// Listener is a callback invoked with a signal's current value. Identity is
// the pointer, so subscribing the same *Listener twice stores it once.
type Listener[T any] struct {
	fn func(T) error
}

func NewListener[T any](fn func(T) error) *Listener[T] {
	return &Listener[T]{fn: fn}
}

// ListenerFunc wraps a callback that cannot fail.
func ListenerFunc[T any](fn func(T)) *Listener[T] {
	return NewListener(func(v T) error {
		fn(v)
		return nil
	})
}

func (l *Listener[T]) call(v any) error {
	t, _ := v.(T)
	return l.fn(t)
}

type listenerSet struct {
	members mapset.Set[subscriber]
	// registration order, used for fan-out
	order []subscriber
}

// registry maps a signal to the listeners subscribed to it. Entries appear on
// first subscribe and are dropped once the last listener leaves.
type registry struct {
	entries map[SignalAware]*listenerSet
}

func newRegistry() *registry {
	return &registry{
		entries: map[SignalAware]*listenerSet{},
	}
}

func (r *registry) add(s SignalAware, sub subscriber) {
	set, ok := r.entries[s]
	if !ok {
		set = &listenerSet{members: mapset.NewThreadUnsafeSet[subscriber]()}
		r.entries[s] = set
	}
	if set.members.Add(sub) {
		set.order = append(set.order, sub)
	}
}

func (r *registry) remove(s SignalAware, sub subscriber) {
	set, ok := r.entries[s]
	if !ok || !set.members.Contains(sub) {
		return
	}
	set.members.Remove(sub)
	for i, existing := range set.order {
		if existing == sub {
			set.order = append(set.order[:i], set.order[i+1:]...)
			break
		}
	}
	if set.members.Cardinality() == 0 {
		delete(r.entries, s)
	}
}

func (r *registry) removeAll(s SignalAware) {
	delete(r.entries, s)
}

// snapshot copies the listeners so a listener may (un)subscribe while the
// fan-out is running.
func (r *registry) snapshot(s SignalAware) []subscriber {
	set, ok := r.entries[s]
	if !ok {
		return nil
	}
	subs := make([]subscriber, len(set.order))
	copy(subs, set.order)
	return subs
}

func (r *registry) count(s SignalAware) int {
	set, ok := r.entries[s]
	if !ok {
		return 0
	}
	return set.members.Cardinality()
}

func (r *registry) size() int {
	return len(r.entries)
}
