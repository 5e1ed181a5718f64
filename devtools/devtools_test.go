package devtools_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/delaneyj/refsignal/devtools"
	"github.com/delaneyj/refsignal/refsignal"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, opts ...devtools.Option) (*devtools.Devtools, *refsignal.ReactiveSystem, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	opts = append([]devtools.Option{devtools.WithLogger(logger)}, opts...)
	dt := devtools.New(opts...)
	rs := refsignal.CreateReactiveSystem(
		refsignal.WithSink(dt),
		refsignal.WithLogger(logger),
	)
	return dt, rs, hook
}

func TestDisabledRecordsNothing(t *testing.T) {
	dt, rs, _ := setup(t)
	assert.False(t, dt.Enabled())

	s := refsignal.Signal(rs, 0, refsignal.WithName("count"))
	s.SetValue(1)

	assert.Empty(t, dt.Signals())
	assert.Empty(t, dt.UpdateHistory())
}

func TestTracksRegistrationAndUpdates(t *testing.T) {
	dt, rs, _ := setup(t, devtools.WithEnabled(true))

	s := refsignal.Signal(rs, 0, refsignal.WithName("count"))
	signals := dt.Signals()
	require.Len(t, signals, 1)
	assert.Equal(t, "count", signals[0].Name)
	assert.Equal(t, s.ID(), signals[0].ID)
	assert.Equal(t, xxhash.Sum64String("count"), signals[0].Fingerprint)

	s.SetValue(1)
	s.SetValue(1)
	s.SetValue(2)

	history := dt.UpdateHistory()
	require.Len(t, history, 2)
	assert.Equal(t, uint64(1), history[0].Seq)
	assert.Equal(t, 0, history[0].OldValue)
	assert.Equal(t, 1, history[0].NewValue)
	assert.Equal(t, 1, history[1].OldValue)
	assert.Equal(t, 2, history[1].NewValue)

	s.Dispose()
	assert.Empty(t, dt.Signals())
}

func TestBatchedUpdatesAreEachRecorded(t *testing.T) {
	dt, rs, _ := setup(t, devtools.WithEnabled(true))
	s := refsignal.Signal(rs, 0)

	require.NoError(t, rs.Batch(func() error {
		s.SetValue(1)
		s.SetValue(2)
		return nil
	}))
	assert.Len(t, dt.UpdateHistory(), 2)
}

func TestHistoryIsBounded(t *testing.T) {
	dt, rs, _ := setup(t, devtools.WithEnabled(true), devtools.WithMaxHistory(3))
	s := refsignal.Signal(rs, 0)
	for i := 1; i <= 5; i++ {
		s.SetValue(i)
	}

	history := dt.UpdateHistory()
	require.Len(t, history, 3)
	assert.Equal(t, 3, history[0].NewValue)
	assert.Equal(t, 5, history[2].NewValue)

	dt.Configure(devtools.WithMaxHistory(1))
	history = dt.UpdateHistory()
	require.Len(t, history, 1)
	assert.Equal(t, 5, history[0].NewValue)
}

func TestClearHistoryAndReset(t *testing.T) {
	dt, rs, _ := setup(t, devtools.WithEnabled(true))
	s := refsignal.Signal(rs, 0)
	s.SetValue(1)

	dt.ClearHistory()
	assert.Empty(t, dt.UpdateHistory())
	assert.Len(t, dt.Signals(), 1)

	dt.Reset()
	assert.Empty(t, dt.Signals())
	assert.False(t, dt.Enabled())

	s.SetValue(2)
	assert.Empty(t, dt.UpdateHistory())
}

func TestInspectorFailuresDoNotBreakUpdates(t *testing.T) {
	calls := 0
	failing := devtools.InspectorFunc(func(e devtools.Event) error {
		calls++
		if e.Kind == devtools.EventUpdate {
			panic("inspector exploded")
		}
		return devtools.ErrInspectorUnavailable
	})
	dt, rs, hook := setup(t, devtools.WithEnabled(true), devtools.WithInspector(failing))

	s := refsignal.Signal(rs, 0)
	var got []int
	s.OnChange(func(v int) { got = append(got, v) })

	assert.NotPanics(t, func() {
		s.SetValue(1)
	})
	assert.Equal(t, []int{1}, got)
	assert.Equal(t, 2, calls)
	assert.Len(t, dt.UpdateHistory(), 1)

	for _, entry := range hook.AllEntries() {
		assert.Equal(t, logrus.DebugLevel, entry.Level)
		assert.Equal(t, "inspector send failed", entry.Message)
	}
	assert.Len(t, hook.AllEntries(), 2)
}

// brokenSink panics on every call.
type brokenSink struct{}

func (brokenSink) Enabled() bool                               { return true }
func (brokenSink) RegisterSignal(refsignal.SignalAware)        { panic("register") }
func (brokenSink) UnregisterSignal(refsignal.SignalAware)      { panic("unregister") }
func (brokenSink) TrackUpdate(refsignal.SignalAware, any, any) { panic(errors.New("track")) }

func TestBrokenSinkIsIgnored(t *testing.T) {
	rs := refsignal.CreateReactiveSystem(refsignal.WithSink(brokenSink{}))

	var s *refsignal.WriteableSignal[int]
	require.NotPanics(t, func() {
		s = refsignal.Signal(rs, 0)
	})
	var got []int
	s.OnChange(func(v int) { got = append(got, v) })

	assert.NotPanics(t, func() {
		s.SetValue(1)
		s.Dispose()
	})
	assert.Equal(t, []int{1}, got)
	assert.Equal(t, 1, s.Value())
}

func TestLogUpdates(t *testing.T) {
	_, rs, hook := setup(t, devtools.WithEnabled(true), devtools.WithLogUpdates(true))
	s := refsignal.Signal(rs, "a", refsignal.WithName("letter"))
	s.SetValue("b")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "signal updated", entry.Message)
	assert.Equal(t, "letter", entry.Data["signal"])
	assert.Equal(t, "a", entry.Data["old"])
	assert.Equal(t, "b", entry.Data["new"])
}

func TestLogInspector(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	_, rs, _ := setup(t,
		devtools.WithEnabled(true),
		devtools.WithInspector(devtools.NewLogInspector(logger)),
	)
	s := refsignal.Signal(rs, 1, refsignal.WithName("count"))
	s.SetValue(2)

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "register", entries[0].Data["event"])
	assert.Equal(t, "update", entries[1].Data["event"])
	assert.Equal(t, "2", entries[1].Data["new"])
}

func TestReports(t *testing.T) {
	now := time.Now()
	dt, rs, _ := setup(t,
		devtools.WithEnabled(true),
		devtools.WithClock(func() time.Time { return now }),
	)

	empty := devtools.HistoryReport("history", dt.UpdateHistory())
	assert.Contains(t, empty, "no updates recorded")

	s := refsignal.Signal(rs, 1, refsignal.WithName("count"))
	s.SetValue(2)
	s.SetValue(3)

	var buf bytes.Buffer
	dt.WriteReport(&buf)
	report := buf.String()
	assert.Contains(t, report, "refsignal devtools")
	assert.Contains(t, report, "#1 count: 1 -> 2")
	assert.Contains(t, report, "#2 count: 2 -> 3")
	assert.Contains(t, report, "2 updates")

	buf.Reset()
	dt.RenderTable(&buf)
	rendered := buf.String()
	assert.Contains(t, rendered, "Signal Updates")
	assert.Contains(t, rendered, "count")
}
