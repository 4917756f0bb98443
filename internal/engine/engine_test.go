package engine

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/oddtile/internal/config"
	"github.com/vovakirdan/oddtile/internal/games/oddtile"
)

// manualClock hands out tickers that only fire when the test says so.
type manualClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*manualTicker
}

type manualTicker struct {
	ch      chan time.Time
	mu      sync.Mutex
	stopped bool
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *manualClock) NewTicker(time.Duration) Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	// Unbuffered: Fire returns only once the engine has taken the tick
	t := &manualTicker{ch: make(chan time.Time)}
	c.tickers = append(c.tickers, t)
	return t
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Fire delivers one tick on the newest ticker. It reports false if no
// running ticker accepted the tick.
func (c *manualClock) Fire() bool {
	c.mu.Lock()
	if len(c.tickers) == 0 {
		c.mu.Unlock()
		return false
	}
	t := c.tickers[len(c.tickers)-1]
	now := c.now
	c.mu.Unlock()

	if t.isStopped() {
		return false
	}
	select {
	case t.ch <- now:
		return true
	case <-time.After(50 * time.Millisecond):
		return false
	}
}

// Running counts tickers that have not been stopped.
func (c *manualClock) Running() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.tickers {
		if !t.isStopped() {
			n++
		}
	}
	return n
}

func (c *manualClock) Created() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tickers)
}

func (t *manualTicker) C() <-chan time.Time { return t.ch }

func (t *manualTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

func (t *manualTicker) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

type memoryRecorder struct {
	mu      sync.Mutex
	records []RoundRecord
	err     error
}

func (r *memoryRecorder) RecordRound(rec RoundRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return r.err
}

func (r *memoryRecorder) all() []RoundRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RoundRecord(nil), r.records...)
}

func newTestEngine(t *testing.T, cfg config.Config) (*Engine, *manualClock, *memoryRecorder) {
	t.Helper()
	clock := newManualClock()
	rec := &memoryRecorder{}
	e := New(oddtile.NewSeeded(cfg, 99), Options{Clock: clock, Recorder: rec})
	e.Start()
	t.Cleanup(e.Stop)
	return e, clock, rec
}

func shortConfig(seconds int) config.Config {
	cfg := config.DefaultConfig()
	cfg.Session.InitialTime = seconds
	return cfg
}

func TestEngineNoTimerBeforeNewGame(t *testing.T) {
	e, clock, _ := newTestEngine(t, config.DefaultConfig())

	if e.TimerRunning() {
		t.Error("timer should not run before NewGame")
	}
	if clock.Fire() {
		t.Error("no ticker should exist before NewGame")
	}
	if snap := e.Snapshot(); snap.State != oddtile.StateIdle || snap.Target != -1 {
		t.Errorf("idle snapshot = %+v", snap)
	}
}

func TestEngineTicksCountDown(t *testing.T) {
	e, clock, _ := newTestEngine(t, config.DefaultConfig())

	snap := e.NewGame()
	if snap.TimeLeft != 60 || snap.State != oddtile.StateActive {
		t.Fatalf("NewGame snapshot = %+v", snap)
	}

	for i := 0; i < 5; i++ {
		if !clock.Fire() {
			t.Fatalf("tick %d was not accepted", i)
		}
	}

	if got := e.Snapshot().TimeLeft; got != 55 {
		t.Errorf("TimeLeft = %d, expected 55", got)
	}
}

func TestEngineTimerStopsOnExpiry(t *testing.T) {
	e, clock, _ := newTestEngine(t, shortConfig(2))
	sub := e.Subscribe(32)

	e.NewGame()
	clock.Fire()
	clock.Fire()

	snap := e.Snapshot()
	if snap.State != oddtile.StateOver || snap.TimeLeft != 0 {
		t.Fatalf("after expiry: %+v", snap)
	}
	if e.TimerRunning() {
		t.Error("timer still running after expiry")
	}
	if clock.Fire() {
		t.Error("tick delivered after expiry")
	}
	if clock.Running() != 0 {
		t.Errorf("%d tickers still running", clock.Running())
	}

	kinds := drainKinds(sub)
	want := []UpdateKind{UpdateStart, UpdateTick, UpdateTick, UpdateExpired}
	if !equalKinds(kinds, want) {
		t.Errorf("updates = %v, expected %v", kinds, want)
	}
}

func TestEngineTimerStopsOnPenaltyExpiry(t *testing.T) {
	e, clock, _ := newTestEngine(t, shortConfig(2))
	sub := e.Subscribe(32)

	snap := e.NewGame()
	res := e.Click((snap.Target + 1) % oddtile.GridSize)
	if res.Outcome != oddtile.OutcomeMiss || !res.Expired {
		t.Fatalf("click result = %+v, expected expiring miss", res)
	}

	if e.TimerRunning() {
		t.Error("timer still running after penalty expiry")
	}
	if clock.Fire() {
		t.Error("tick delivered after penalty expiry")
	}

	kinds := drainKinds(sub)
	want := []UpdateKind{UpdateStart, UpdateClick, UpdateExpired}
	if !equalKinds(kinds, want) {
		t.Errorf("updates = %v, expected %v", kinds, want)
	}
}

func TestEngineRestartReplacesTimer(t *testing.T) {
	e, clock, _ := newTestEngine(t, config.DefaultConfig())

	e.NewGame()
	clock.Fire()
	clock.Fire()

	snap := e.NewGame()
	if snap.TimeLeft != 60 || snap.Score != 0 {
		t.Errorf("restart snapshot = %+v", snap)
	}
	if clock.Created() != 2 {
		t.Errorf("created %d tickers, expected 2", clock.Created())
	}
	if clock.Running() != 1 {
		t.Errorf("%d tickers running after restart, expected exactly 1", clock.Running())
	}

	clock.Fire()
	if got := e.Snapshot().TimeLeft; got != 59 {
		t.Errorf("TimeLeft = %d after one tick on the new timer, expected 59", got)
	}
}

func TestEngineRestartAfterGameOver(t *testing.T) {
	e, clock, _ := newTestEngine(t, shortConfig(1))

	e.NewGame()
	clock.Fire()
	if e.TimerRunning() {
		t.Fatal("timer should stop at game over")
	}

	e.NewGame()
	if !e.TimerRunning() {
		t.Error("timer should resume after restart")
	}
	if clock.Running() != 1 {
		t.Errorf("%d tickers running, expected 1", clock.Running())
	}
}

func TestEngineRecordsRounds(t *testing.T) {
	e, clock, rec := newTestEngine(t, config.DefaultConfig())

	snap := e.NewGame()
	clock.Advance(1500 * time.Millisecond)
	e.Click(snap.Target)

	next := e.Snapshot()
	clock.Advance(700 * time.Millisecond)
	e.Click((next.Target + 1) % oddtile.GridSize)

	// Ignored clicks are not rounds
	e.Click(-1)

	records := rec.all()
	if len(records) != 2 {
		t.Fatalf("recorded %d rounds, expected 2", len(records))
	}

	hit, miss := records[0], records[1]
	if !hit.Hit || hit.Level != 1 || hit.Delta != 20 || hit.Reaction != 1500*time.Millisecond {
		t.Errorf("hit record = %+v", hit)
	}
	if miss.Hit || miss.Level != 2 || miss.Reaction != 700*time.Millisecond {
		t.Errorf("miss record = %+v", miss)
	}
	if hit.RunID == "" || hit.RunID != miss.RunID {
		t.Errorf("run ids = %q, %q", hit.RunID, miss.RunID)
	}

	e.NewGame()
	snap = e.Snapshot()
	e.Click(snap.Target)
	records = rec.all()
	if records[2].RunID == hit.RunID {
		t.Error("a new session should get a new run id")
	}
}

func TestEngineRecorderErrorIsNotFatal(t *testing.T) {
	e, _, rec := newTestEngine(t, config.DefaultConfig())
	rec.err = errors.New("disk full")

	snap := e.NewGame()
	res := e.Click(snap.Target)
	if res.Outcome != oddtile.OutcomeHit {
		t.Errorf("outcome = %v, expected hit despite recorder error", res.Outcome)
	}
}

func TestEngineMilestoneUpdate(t *testing.T) {
	e, _, _ := newTestEngine(t, config.DefaultConfig())
	sub := e.Subscribe(64)

	e.NewGame()
	for i := 0; i < 10; i++ {
		e.Click(e.Snapshot().Target)
	}

	var milestones []int
	for _, u := range drain(sub) {
		if u.Kind == UpdateClick && u.Click.Milestone {
			milestones = append(milestones, u.Click.Score)
		}
	}
	if len(milestones) != 1 || milestones[0] != 10 {
		t.Errorf("milestones = %v, expected [10]", milestones)
	}
}

func TestEngineStoppedIsNoOp(t *testing.T) {
	clock := newManualClock()
	e := New(oddtile.NewSeeded(config.DefaultConfig(), 1), Options{Clock: clock})

	// Before Start
	if snap := e.NewGame(); snap.State != oddtile.StateIdle {
		t.Errorf("NewGame before Start = %+v", snap)
	}

	e.Start()
	sub := e.Subscribe(4)
	e.NewGame()
	e.Stop()
	e.Stop()

	if res := e.Click(3); res.Outcome != oddtile.OutcomeIgnored {
		t.Errorf("Click after Stop = %v", res.Outcome)
	}
	if e.Tick() {
		t.Error("Tick after Stop should not apply")
	}
	if clock.Running() != 0 {
		t.Errorf("%d tickers running after Stop", clock.Running())
	}

	select {
	case <-sub.Done():
	default:
		t.Error("subscription should close when the engine stops")
	}
	if late := e.Subscribe(1); late == nil {
		t.Error("Subscribe after Stop should return a closed subscription")
	} else if _, ok := <-late.Updates(); ok {
		t.Error("late subscription should be closed")
	}
}

func TestSubscriptionDropsOldest(t *testing.T) {
	sub := newSubscription(2)
	for i := 1; i <= 4; i++ {
		sub.send(Update{Snapshot: oddtile.Snapshot{Score: i}})
	}

	first := <-sub.Updates()
	second := <-sub.Updates()
	if first.Snapshot.Score != 3 || second.Snapshot.Score != 4 {
		t.Errorf("kept scores %d, %d; expected 3, 4", first.Snapshot.Score, second.Snapshot.Score)
	}
}

func TestUnsubscribe(t *testing.T) {
	e, _, _ := newTestEngine(t, config.DefaultConfig())
	sub := e.Subscribe(4)

	e.Unsubscribe(sub)
	// Round-trip through the loop so the unsubscribe is applied
	e.Snapshot()

	select {
	case <-sub.Done():
	default:
		t.Fatal("subscription should be closed")
	}

	e.NewGame() // Must not panic on the closed subscription
}

func drain(sub *Subscription) []Update {
	var out []Update
	for {
		select {
		case u, ok := <-sub.Updates():
			if !ok {
				return out
			}
			out = append(out, u)
		default:
			return out
		}
	}
}

func drainKinds(sub *Subscription) []UpdateKind {
	var kinds []UpdateKind
	for _, u := range drain(sub) {
		kinds = append(kinds, u.Kind)
	}
	return kinds
}

func equalKinds(a, b []UpdateKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
