package devtools

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type EventKind string

const (
	EventRegister   EventKind = "register"
	EventUnregister EventKind = "unregister"
	EventUpdate     EventKind = "update"
)

type Event struct {
	Kind   EventKind
	Signal SignalInfo
	// Update is set for EventUpdate only.
	Update *UpdateRecord
}

// Inspector is an external tool that events are forwarded to. It may be
// missing or broken; errors are logged at debug level and dropped.
type Inspector interface {
	Send(Event) error
}

type InspectorFunc func(Event) error

func (f InspectorFunc) Send(e Event) error {
	return f(e)
}

// ErrInspectorUnavailable is what an inspector returns when nothing is
// listening on the other side.
var ErrInspectorUnavailable = errors.New("inspector unavailable")

func (d *Devtools) send(inspector Inspector, logger logrus.FieldLogger, e Event) {
	if inspector == nil {
		return
	}

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = errors.Errorf("inspector panicked: %v", r)
			}
		}()
		return inspector.Send(e)
	}()
	if err != nil {
		logger.WithField("event", string(e.Kind)).WithError(err).Debug("inspector send failed")
	}
}

// LogInspector forwards events to a logger, one line per event.
type LogInspector struct {
	logger logrus.FieldLogger
}

func NewLogInspector(logger logrus.FieldLogger) *LogInspector {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogInspector{logger: logger}
}

func (i *LogInspector) Send(e Event) error {
	entry := i.logger.WithFields(logrus.Fields{
		"event":       string(e.Kind),
		"signal":      e.Signal.Name,
		"fingerprint": fmt.Sprintf("%016x", e.Signal.Fingerprint),
	})
	if e.Update != nil {
		entry = entry.WithFields(logrus.Fields{
			"seq": e.Update.Seq,
			"old": fmt.Sprint(e.Update.OldValue),
			"new": fmt.Sprint(e.Update.NewValue),
		})
	}
	entry.Debug("devtools event")
	return nil
}
