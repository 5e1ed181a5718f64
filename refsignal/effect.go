package refsignal

// effectListener is shared by every dependency of one effect.
type effectListener struct {
	fn func() error
}

func (e *effectListener) call(any) error {
	return e.fn()
}

// Effect runs fn now and again whenever one of deps is notified. Entries of
// deps that are not signals are ignored, so a mixed dependency list from
// glue code can be passed through as is. Errors from fn go to the system's
// error hook. Call stop to unsubscribe.
func Effect(rs *ReactiveSystem, fn func() error, deps ...any) (stop func()) {
	e := &effectListener{fn: fn}

	signals := make([]SignalAware, 0, len(deps))
	for _, dep := range deps {
		if !IsSignal(dep) {
			continue
		}
		s := dep.(SignalAware)
		signals = append(signals, s)
		rs.registry.add(s, e)
	}

	if err := invoke(e, nil); err != nil {
		if len(signals) > 0 {
			rs.reportError(signals[0], err)
		} else {
			rs.logger.WithError(err).Error("effect failed")
		}
	}

	return func() {
		for _, s := range signals {
			rs.registry.remove(s, e)
		}
	}
}

// Snapshot folds the LastUpdated instants of signals into one number. Any
// change to the result means at least one of them was notified with an
// update since the last snapshot.
func Snapshot(signals ...SignalAware) int64 {
	var sum int64
	for _, s := range signals {
		t := s.LastUpdated()
		if t.IsZero() {
			continue
		}
		sum += t.UnixNano()
	}
	return sum
}
