package oddtile

import (
	"math/rand"

	"github.com/vovakirdan/oddtile/internal/config"
)

// State is the activity state of a session.
type State int

const (
	StateIdle   State = iota // No session started yet
	StateActive              // Clock running, clicks accepted
	StateOver                // Clock expired, clicks ignored
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateOver:
		return "over"
	default:
		return "unknown"
	}
}

// Outcome classifies the effect of a click.
type Outcome int

const (
	OutcomeIgnored Outcome = iota // Wrong state or index out of range
	OutcomeHit                    // The odd tile was picked
	OutcomeMiss                   // Any other tile was picked
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeHit:
		return "hit"
	case OutcomeMiss:
		return "miss"
	default:
		return "ignored"
	}
}

// ClickResult describes what a click did.
type ClickResult struct {
	Outcome   Outcome
	Index     int     // Tile that was clicked
	Target    int     // Odd tile of the level that was clicked
	Level     int     // Level number that was clicked (1-based)
	Delta     float64 // Delta of the level that was clicked
	Score     int     // Score after the click
	TimeLeft  int     // Seconds left after the click
	Milestone bool    // Score just reached a milestone
	Expired   bool    // The penalty ended the session
}

// Game is the session state machine.
// It is not safe for concurrent use; callers serialize access.
type Game struct {
	cfg   config.Config
	curve config.DeltaCurve
	rng   Rand

	state    State
	score    int
	timeLeft int
	level    Level
	levelNo  int // Levels generated in this session
	hits     int
	misses   int
}

// New creates an idle game with the given rules and random source.
func New(cfg config.Config, rng Rand) *Game {
	return &Game{
		cfg:   cfg,
		curve: config.NewDeltaCurve(cfg.Difficulty),
		rng:   rng,
		state: StateIdle,
	}
}

// NewSeeded creates an idle game using a seeded math/rand source.
func NewSeeded(cfg config.Config, seed int64) *Game {
	return New(cfg, rand.New(rand.NewSource(seed)))
}

// Start begins a fresh session from any state.
func (g *Game) Start() Snapshot {
	g.state = StateActive
	g.score = 0
	g.timeLeft = g.cfg.Session.InitialTime
	g.levelNo = 0
	g.hits = 0
	g.misses = 0
	g.nextLevel()

	return g.Snapshot()
}

// nextLevel replaces the current level using the delta for the current score.
func (g *Game) nextLevel() {
	g.level = GenerateLevel(g.rng, g.curve.NextDelta(g.score), g.curve.Min)
	g.levelNo++
}

// Tick removes one second from the clock. It reports whether the tick
// applied; outside the active state it does nothing.
func (g *Game) Tick() bool {
	if g.state != StateActive {
		return false
	}

	g.timeLeft--
	if g.timeLeft <= 0 {
		g.timeLeft = 0
		g.state = StateOver
	}
	return true
}

// Click picks the tile at index.
// A hit scores and replaces the level before returning, so the same level
// can never be scored twice. A miss costs the configured penalty and ends
// the session right away if the clock reaches zero.
func (g *Game) Click(index int) ClickResult {
	result := ClickResult{
		Outcome:  OutcomeIgnored,
		Index:    index,
		Target:   g.level.Target,
		Level:    g.levelNo,
		Delta:    g.level.Delta,
		Score:    g.score,
		TimeLeft: g.timeLeft,
	}

	if g.state != StateActive || index < 0 || index >= GridSize {
		return result
	}

	if index == g.level.Target {
		g.score++
		g.hits++
		g.nextLevel()

		result.Outcome = OutcomeHit
		result.Score = g.score
		result.Milestone = milestoneEvery(g.score, g.cfg.Milestone.Every)
		return result
	}

	g.misses++
	g.timeLeft -= g.cfg.Session.MissPenalty
	if g.timeLeft <= 0 {
		g.timeLeft = 0
		g.state = StateOver
		result.Expired = true
	}

	result.Outcome = OutcomeMiss
	result.TimeLeft = g.timeLeft
	return result
}

// State returns the current activity state.
func (g *Game) State() State {
	return g.state
}

// Config returns the rules this game was created with.
func (g *Game) Config() config.Config {
	return g.cfg
}
