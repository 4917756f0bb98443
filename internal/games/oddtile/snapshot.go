package oddtile

// Snapshot is a read-only projection of the game after a transition.
// It is a plain value; holding one never observes later changes.
type Snapshot struct {
	State    State
	Score    int
	TimeLeft int
	Level    int // Level number in this session, 0 before the first start
	Tiles    [GridSize]Color
	Target   int     // Odd tile index, -1 when no level exists
	Delta    float64 // Current lightness delta
	Hits     int
	Misses   int
	Grade    Grade // Grade the current score would earn
}

// Snapshot returns the current game snapshot.
//
// After the session ends the last level stays visible, so the frontend can
// reveal where the odd tile was; clicks on it are ignored.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		State:    g.state,
		Score:    g.score,
		TimeLeft: g.timeLeft,
		Level:    g.levelNo,
		Target:   -1,
		Hits:     g.hits,
		Misses:   g.misses,
		Grade:    GradeWith(g.score, g.cfg.Grades),
	}

	if g.state != StateIdle {
		snap.Tiles = g.level.Tiles
		snap.Target = g.level.Target
		snap.Delta = g.level.Delta
	}

	return snap
}

// Accuracy returns the share of clicks that hit, or 0 with no clicks.
func (s Snapshot) Accuracy() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
