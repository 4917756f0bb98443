package engine

import (
	"sync"
	"time"

	"github.com/vovakirdan/oddtile/internal/games/oddtile"
)

// UpdateKind says which transition produced an update.
type UpdateKind int

const (
	UpdateStart   UpdateKind = iota // A fresh session began
	UpdateTick                      // The clock advanced
	UpdateClick                     // A tile was picked
	UpdateExpired                   // The session ended
)

// String returns a human-readable name for the kind.
func (k UpdateKind) String() string {
	switch k {
	case UpdateStart:
		return "start"
	case UpdateTick:
		return "tick"
	case UpdateClick:
		return "click"
	case UpdateExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Update is published to subscribers after every applied transition.
type Update struct {
	Kind     UpdateKind
	RunID    string
	Snapshot oddtile.Snapshot
	Click    oddtile.ClickResult // Set for UpdateClick and click-caused UpdateExpired
}

// RoundRecord describes one resolved click, for the perception journal.
type RoundRecord struct {
	RunID    string
	Level    int
	Delta    float64
	Hit      bool
	Reaction time.Duration // Time from level shown to click
	At       time.Time
}

// RoundRecorder receives round records. Implementations must not block for long;
// they run inside the engine loop.
type RoundRecorder interface {
	RecordRound(rec RoundRecord) error
}

// Subscription receives engine updates through a buffered channel.
// When the buffer is full the oldest update is dropped, so a slow reader
// never stalls the engine.
type Subscription struct {
	updates   chan Update
	done      chan struct{}
	closeOnce sync.Once
}

func newSubscription(bufferSize int) *Subscription {
	if bufferSize < 1 {
		bufferSize = 16 // Default buffer size
	}
	return &Subscription{
		updates: make(chan Update, bufferSize),
		done:    make(chan struct{}),
	}
}

// Updates returns the channel to receive updates from.
// It is closed once the subscription or the engine is closed.
func (s *Subscription) Updates() <-chan Update {
	return s.updates
}

// Done returns a channel that closes when the subscription ends.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// send delivers an update, dropping the oldest queued one if needed.
// Only the engine loop calls send.
func (s *Subscription) send(u Update) {
	select {
	case s.updates <- u:
	default:
		// Buffer full, drop oldest and retry
		select {
		case <-s.updates:
		default:
		}
		select {
		case s.updates <- u:
		default:
		}
	}
}

// close ends the subscription. Only the engine loop calls close, so it
// never races with send. Safe to call multiple times.
func (s *Subscription) close() {
	s.closeOnce.Do(func() {
		close(s.done)
		close(s.updates)
	})
}
