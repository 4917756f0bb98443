// Package engine runs an OddTile game on a single goroutine and drives its
// clock. Every command and every clock tick is applied by that goroutine,
// one at a time, so transitions never interleave.
package engine

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/oddtile/internal/config"
	"github.com/vovakirdan/oddtile/internal/games/oddtile"
)

// Options configures an Engine. Zero values pick defaults.
type Options struct {
	Clock        Clock         // Defaults to SystemClock
	Logger       *log.Logger   // Defaults to a discarding logger
	Recorder     RoundRecorder // Optional
	TickInterval time.Duration // Defaults to the game's session.tick_interval
}

// Engine owns one game and its timer.
type Engine struct {
	game     *oddtile.Game
	clock    Clock
	logger   *log.Logger
	recorder RoundRecorder
	interval time.Duration

	cmds    chan command
	started chan struct{}
	done    chan struct{}
	stopped chan struct{}

	startOnce sync.Once
	stopOnce  sync.Once

	// Owned by the loop goroutine
	ticker       Ticker
	runID        string
	levelShownAt time.Time
	subs         map[*Subscription]struct{}
}

type command interface{}

type newGameCmd struct{ reply chan oddtile.Snapshot }

type clickCmd struct {
	index int
	reply chan oddtile.ClickResult
}

type tickCmd struct{ reply chan bool }

type snapshotCmd struct{ reply chan oddtile.Snapshot }

type timerCmd struct{ reply chan bool }

type subscribeCmd struct {
	sub   *Subscription
	reply chan struct{}
}

type unsubscribeCmd struct{ sub *Subscription }

// New creates an engine for game. Call Start before sending commands.
func New(game *oddtile.Game, opts Options) *Engine {
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = game.Config().Session.TickInterval
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}

	return &Engine{
		game:     game,
		clock:    opts.Clock,
		logger:   opts.Logger,
		recorder: opts.Recorder,
		interval: opts.TickInterval,
		cmds:     make(chan command),
		started:  make(chan struct{}),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
		subs:     make(map[*Subscription]struct{}),
	}
}

// Start launches the engine goroutine. Extra calls do nothing.
func (e *Engine) Start() {
	e.startOnce.Do(func() {
		close(e.started)
		go e.loop()
	})
}

// Stop halts the timer, closes all subscriptions and waits for the
// goroutine to exit. Safe to call multiple times, and before Start.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		close(e.done)
	})
	select {
	case <-e.started:
		<-e.stopped
	default:
	}
}

// Config returns the game rules. They never change, so no loop round-trip is needed.
func (e *Engine) Config() config.Config {
	return e.game.Config()
}

// NewGame starts a fresh session, restarting the timer from a full interval.
func (e *Engine) NewGame() oddtile.Snapshot {
	reply := make(chan oddtile.Snapshot, 1)
	if !e.send(newGameCmd{reply: reply}) {
		return oddtile.Snapshot{}
	}
	return e.awaitSnapshot(reply)
}

// Click picks a tile. Clicks outside an active session are ignored.
func (e *Engine) Click(index int) oddtile.ClickResult {
	reply := make(chan oddtile.ClickResult, 1)
	if !e.send(clickCmd{index: index, reply: reply}) {
		return oddtile.ClickResult{Index: index}
	}
	select {
	case res := <-reply:
		return res
	case <-e.stopped:
		return oddtile.ClickResult{Index: index}
	}
}

// Tick advances the clock by one second outside the timer. It reports
// whether the tick applied.
func (e *Engine) Tick() bool {
	reply := make(chan bool, 1)
	if !e.send(tickCmd{reply: reply}) {
		return false
	}
	return e.awaitBool(reply)
}

// Snapshot returns the current game snapshot.
func (e *Engine) Snapshot() oddtile.Snapshot {
	reply := make(chan oddtile.Snapshot, 1)
	if !e.send(snapshotCmd{reply: reply}) {
		return oddtile.Snapshot{Target: -1}
	}
	return e.awaitSnapshot(reply)
}

// TimerRunning reports whether the engine currently holds a ticker.
func (e *Engine) TimerRunning() bool {
	reply := make(chan bool, 1)
	if !e.send(timerCmd{reply: reply}) {
		return false
	}
	return e.awaitBool(reply)
}

// Subscribe registers a new subscriber. On a stopped engine the returned
// subscription is already closed.
func (e *Engine) Subscribe(bufferSize int) *Subscription {
	sub := newSubscription(bufferSize)
	reply := make(chan struct{}, 1)
	if !e.send(subscribeCmd{sub: sub, reply: reply}) {
		sub.close()
		return sub
	}
	select {
	case <-reply:
	case <-e.stopped:
	}
	return sub
}

// Unsubscribe removes and closes a subscription.
func (e *Engine) Unsubscribe(sub *Subscription) {
	e.send(unsubscribeCmd{sub: sub})
}

// send hands a command to the loop. It returns false if the engine is not running.
func (e *Engine) send(cmd command) bool {
	select {
	case <-e.started:
	default:
		return false
	}

	select {
	case e.cmds <- cmd:
		return true
	case <-e.done:
		return false
	}
}

func (e *Engine) awaitSnapshot(reply chan oddtile.Snapshot) oddtile.Snapshot {
	select {
	case snap := <-reply:
		return snap
	case <-e.stopped:
		return oddtile.Snapshot{Target: -1}
	}
}

func (e *Engine) awaitBool(reply chan bool) bool {
	select {
	case v := <-reply:
		return v
	case <-e.stopped:
		return false
	}
}

// loop is the only goroutine that touches the game, the ticker and subscribers.
func (e *Engine) loop() {
	defer close(e.stopped)
	defer e.shutdown()

	for {
		var tickC <-chan time.Time
		if e.ticker != nil {
			tickC = e.ticker.C()
		}

		select {
		case cmd := <-e.cmds:
			e.handle(cmd)
		case <-tickC:
			e.applyTick()
		case <-e.done:
			return
		}
	}
}

func (e *Engine) handle(cmd command) {
	switch c := cmd.(type) {
	case newGameCmd:
		c.reply <- e.applyNewGame()
	case clickCmd:
		c.reply <- e.applyClick(c.index)
	case tickCmd:
		c.reply <- e.applyTick()
	case snapshotCmd:
		c.reply <- e.game.Snapshot()
	case timerCmd:
		c.reply <- e.ticker != nil
	case subscribeCmd:
		e.subs[c.sub] = struct{}{}
		c.reply <- struct{}{}
	case unsubscribeCmd:
		if _, ok := e.subs[c.sub]; ok {
			delete(e.subs, c.sub)
			c.sub.close()
		}
	}
}

func (e *Engine) applyNewGame() oddtile.Snapshot {
	// The old timer must be gone before the new one exists
	e.stopTimer()

	snap := e.game.Start()
	e.runID = uuid.NewString()
	e.levelShownAt = e.clock.Now()
	e.startTimer()

	e.logger.Debug("session started", "run", e.runID, "time", snap.TimeLeft, "delta", snap.Delta)
	e.publish(Update{Kind: UpdateStart, RunID: e.runID, Snapshot: snap})
	return snap
}

func (e *Engine) applyClick(index int) oddtile.ClickResult {
	res := e.game.Click(index)
	if res.Outcome == oddtile.OutcomeIgnored {
		return res
	}

	now := e.clock.Now()
	e.record(RoundRecord{
		RunID:    e.runID,
		Level:    res.Level,
		Delta:    res.Delta,
		Hit:      res.Outcome == oddtile.OutcomeHit,
		Reaction: now.Sub(e.levelShownAt),
		At:       now,
	})
	if res.Outcome == oddtile.OutcomeHit {
		e.levelShownAt = now
	}

	snap := e.game.Snapshot()
	if res.Milestone {
		e.logger.Debug("milestone reached", "run", e.runID, "score", res.Score)
	}
	e.publish(Update{Kind: UpdateClick, RunID: e.runID, Snapshot: snap, Click: res})

	if res.Expired {
		e.expire(snap, res)
	}
	return res
}

func (e *Engine) applyTick() bool {
	if !e.game.Tick() {
		// Nothing to count down; make sure no timer lingers
		e.stopTimer()
		return false
	}

	snap := e.game.Snapshot()
	e.publish(Update{Kind: UpdateTick, RunID: e.runID, Snapshot: snap})

	if snap.State != oddtile.StateActive {
		e.expire(snap, oddtile.ClickResult{})
	}
	return true
}

// expire stops the timer in the same step that ended the session.
func (e *Engine) expire(snap oddtile.Snapshot, cause oddtile.ClickResult) {
	e.stopTimer()
	e.logger.Debug("session over", "run", e.runID, "score", snap.Score, "grade", snap.Grade)
	e.publish(Update{Kind: UpdateExpired, RunID: e.runID, Snapshot: snap, Click: cause})
}

func (e *Engine) startTimer() {
	e.stopTimer()
	e.ticker = e.clock.NewTicker(e.interval)
}

func (e *Engine) stopTimer() {
	if e.ticker != nil {
		e.ticker.Stop()
		e.ticker = nil
	}
}

func (e *Engine) record(rec RoundRecord) {
	if e.recorder == nil {
		return
	}
	if err := e.recorder.RecordRound(rec); err != nil {
		e.logger.Warn("could not record round", "run", rec.RunID, "error", err)
	}
}

func (e *Engine) publish(u Update) {
	for sub := range e.subs {
		sub.send(u)
	}
}

func (e *Engine) shutdown() {
	e.stopTimer()
	for sub := range e.subs {
		sub.close()
	}
	e.subs = nil
}
