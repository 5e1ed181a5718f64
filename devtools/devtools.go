package devtools

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/delaneyj/refsignal/refsignal"
	"github.com/sirupsen/logrus"
)

var _ refsignal.Sink = (*Devtools)(nil)

type SignalInfo struct {
	ID   uint64
	Name string
	// Fingerprint is a stable hash of Name, the same across runs.
	Fingerprint  uint64
	RegisteredAt time.Time
}

type UpdateRecord struct {
	Seq      uint64
	SignalID uint64
	Name     string
	OldValue any
	NewValue any
	At       time.Time
}

// Devtools records signal registrations and updates for inspection. Unlike
// the rest of the module it is safe for concurrent use, since one instance
// may observe several reactive systems.
type Devtools struct {
	mu      sync.Mutex
	cfg     Config
	signals map[uint64]SignalInfo
	history []UpdateRecord
	seq     uint64
}

func New(opts ...Option) *Devtools {
	d := &Devtools{
		cfg:     DefaultConfig(),
		signals: map[uint64]SignalInfo{},
	}
	d.Configure(opts...)
	return d
}

// Configure applies opts on top of the current configuration.
func (d *Devtools) Configure(opts ...Option) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, opt := range opts {
		opt(&d.cfg)
	}
	d.trim()
}

func (d *Devtools) Enabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg.Enabled
}

func (d *Devtools) RegisterSignal(s refsignal.SignalAware) {
	d.mu.Lock()
	if !d.cfg.Enabled {
		d.mu.Unlock()
		return
	}
	info := SignalInfo{
		ID:           s.ID(),
		Name:         s.Name(),
		Fingerprint:  xxhash.Sum64String(s.Name()),
		RegisteredAt: d.cfg.Now(),
	}
	d.signals[info.ID] = info
	inspector, logger := d.cfg.Inspector, d.cfg.Logger
	d.mu.Unlock()

	d.send(inspector, logger, Event{Kind: EventRegister, Signal: info})
}

func (d *Devtools) UnregisterSignal(s refsignal.SignalAware) {
	d.mu.Lock()
	info, ok := d.signals[s.ID()]
	if !d.cfg.Enabled || !ok {
		d.mu.Unlock()
		return
	}
	delete(d.signals, s.ID())
	inspector, logger := d.cfg.Inspector, d.cfg.Logger
	d.mu.Unlock()

	d.send(inspector, logger, Event{Kind: EventUnregister, Signal: info})
}

func (d *Devtools) TrackUpdate(s refsignal.SignalAware, oldValue, newValue any) {
	d.mu.Lock()
	if !d.cfg.Enabled {
		d.mu.Unlock()
		return
	}
	info, ok := d.signals[s.ID()]
	if !ok {
		info = SignalInfo{
			ID:           s.ID(),
			Name:         s.Name(),
			Fingerprint:  xxhash.Sum64String(s.Name()),
			RegisteredAt: d.cfg.Now(),
		}
		d.signals[info.ID] = info
	}
	d.seq++
	record := UpdateRecord{
		Seq:      d.seq,
		SignalID: info.ID,
		Name:     info.Name,
		OldValue: oldValue,
		NewValue: newValue,
		At:       d.cfg.Now(),
	}
	d.history = append(d.history, record)
	d.trim()
	inspector, logger, logUpdates := d.cfg.Inspector, d.cfg.Logger, d.cfg.LogUpdates
	d.mu.Unlock()

	if logUpdates {
		logger.WithFields(logrus.Fields{
			"signal": record.Name,
			"seq":    record.Seq,
			"old":    fmt.Sprint(oldValue),
			"new":    fmt.Sprint(newValue),
		}).Info("signal updated")
	}
	d.send(inspector, logger, Event{Kind: EventUpdate, Signal: info, Update: &record})
}

// trim drops the oldest records beyond MaxHistory. Callers hold d.mu.
func (d *Devtools) trim() {
	max := d.cfg.MaxHistory
	if max < 1 {
		max = DefaultMaxHistory
	}
	if over := len(d.history) - max; over > 0 {
		d.history = append(d.history[:0:0], d.history[over:]...)
	}
}

// UpdateHistory returns a copy of the recorded updates, oldest first.
func (d *Devtools) UpdateHistory() []UpdateRecord {
	d.mu.Lock()
	defer d.mu.Unlock()

	history := make([]UpdateRecord, len(d.history))
	copy(history, d.history)
	return history
}

func (d *Devtools) ClearHistory() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.history = nil
}

// Signals returns the registered signals ordered by id.
func (d *Devtools) Signals() []SignalInfo {
	d.mu.Lock()
	defer d.mu.Unlock()

	infos := make([]SignalInfo, 0, len(d.signals))
	for _, info := range d.signals {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})
	return infos
}

// Reset forgets every signal and update and restores the default config.
func (d *Devtools) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.cfg = DefaultConfig()
	d.signals = map[uint64]SignalInfo{}
	d.history = nil
	d.seq = 0
}

// WriteReport writes the update history as plain text.
func (d *Devtools) WriteReport(w io.Writer) {
	WriteHistoryReport(w, "refsignal devtools", d.UpdateHistory())
}
