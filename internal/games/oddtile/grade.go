package oddtile

import "github.com/vovakirdan/oddtile/internal/config"

// MilestoneEvery is the default milestone interval.
const MilestoneEvery = 10

// Grade is the end-of-session rating.
type Grade string

const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
)

// GradeFor rates a final score with the default thresholds:
// S above 40, A above 30, B above 20, otherwise C.
func GradeFor(score int) Grade {
	return GradeWith(score, config.DefaultConfig().Grades)
}

// GradeWith rates a final score with custom thresholds.
func GradeWith(score int, t config.GradeConfig) Grade {
	switch {
	case score > t.S:
		return GradeS
	case score > t.A:
		return GradeA
	case score > t.B:
		return GradeB
	default:
		return GradeC
	}
}

// IsMilestone reports whether score is a positive multiple of 10.
func IsMilestone(score int) bool {
	return milestoneEvery(score, MilestoneEvery)
}

func milestoneEvery(score, every int) bool {
	if every <= 0 {
		return false
	}
	return score > 0 && score%every == 0
}

// NextDelta returns the default curve's delta for the level after score hits.
func NextDelta(score int) float64 {
	return config.DefaultDeltaCurve().NextDelta(score)
}
