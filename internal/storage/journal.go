package storage

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/oddtile/internal/engine"
)

// Threshold defaults
const (
	DefaultBandWidth  = 2.5  // Delta band width used by Threshold
	DefaultMinSamples = 5    // Rounds a band needs before it can qualify
	DefaultHitRate    = 0.75 // Hit rate that counts as noticeable
)

// RoundEntry represents one resolved click.
type RoundEntry struct {
	ID         int64
	RunID      string
	Level      int
	Delta      float64
	Hit        bool
	ReactionMS int64
	CreatedAt  time.Time
}

// DeltaBucket aggregates rounds whose delta falls in [Low, High).
type DeltaBucket struct {
	Low           float64
	High          float64
	Hits          int
	Misses        int
	AvgReactionMS float64
}

// Total returns the number of rounds in the bucket.
func (b DeltaBucket) Total() int {
	return b.Hits + b.Misses
}

// HitRate returns the share of rounds that hit, or 0 for an empty bucket.
func (b DeltaBucket) HitRate() float64 {
	if b.Total() == 0 {
		return 0
	}
	return float64(b.Hits) / float64(b.Total())
}

// RunSummary aggregates the rounds of one session.
type RunSummary struct {
	RunID     string
	Rounds    int
	Hits      int
	MaxLevel  int
	StartedAt time.Time
	EndedAt   time.Time
}

// SaveRound records a round.
// Returns the ID of the inserted record.
func (s *Store) SaveRound(entry RoundEntry) (int64, error) {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	hit := 0
	if entry.Hit {
		hit = 1
	}

	result, err := s.db.Exec(
		`INSERT INTO rounds (run_id, level, delta, hit, reaction_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.RunID, entry.Level, entry.Delta, hit, entry.ReactionMS,
		createdAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save round: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecordRound implements engine.RoundRecorder.
// This adapter lets the engine journal rounds without a storage dependency.
func (s *Store) RecordRound(rec engine.RoundRecord) error {
	_, err := s.SaveRound(RoundEntry{
		RunID:      rec.RunID,
		Level:      rec.Level,
		Delta:      rec.Delta,
		Hit:        rec.Hit,
		ReactionMS: rec.Reaction.Milliseconds(),
		CreatedAt:  rec.At,
	})
	return err
}

// Ensure Store implements RoundRecorder
var _ engine.RoundRecorder = (*Store)(nil)

// RunRounds retrieves the rounds of one session in play order.
func (s *Store) RunRounds(runID string) ([]RoundEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, level, delta, hit, reaction_ms, created_at
		 FROM rounds
		 WHERE run_id = ?
		 ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var entries []RoundEntry
	for rows.Next() {
		var e RoundEntry
		var hit int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.RunID, &e.Level, &e.Delta, &hit, &e.ReactionMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Hit = hit != 0
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// DeltaBuckets groups all rounds into delta bands of the given width,
// ordered from the smallest delta up. Empty bands are omitted.
func (s *Store) DeltaBuckets(width float64) ([]DeltaBucket, error) {
	if width <= 0 || math.IsNaN(width) {
		width = DefaultBandWidth
	}

	rows, err := s.db.Query(
		`SELECT CAST(delta / ? AS INTEGER) AS band,
		        SUM(hit), COUNT(*) - SUM(hit), AVG(reaction_ms)
		 FROM rounds
		 GROUP BY band
		 ORDER BY band`,
		width,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query delta buckets: %w", err)
	}
	defer rows.Close()

	var buckets []DeltaBucket
	for rows.Next() {
		var band int64
		var b DeltaBucket
		if err := rows.Scan(&band, &b.Hits, &b.Misses, &b.AvgReactionMS); err != nil {
			return nil, fmt.Errorf("storage: cannot scan bucket row: %w", err)
		}
		b.Low = float64(band) * width
		b.High = b.Low + width
		buckets = append(buckets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return buckets, nil
}

// Threshold returns the smallest-delta band, at DefaultBandWidth, that has
// at least minSamples rounds and a hit rate of at least rate. This is the
// player's just noticeable difference. ok is false when no band qualifies.
func (s *Store) Threshold(minSamples int, rate float64) (bucket DeltaBucket, ok bool, err error) {
	buckets, err := s.DeltaBuckets(DefaultBandWidth)
	if err != nil {
		return DeltaBucket{}, false, err
	}
	bucket, ok = FindThreshold(buckets, minSamples, rate)
	return bucket, ok, nil
}

// FindThreshold picks the first qualifying bucket from buckets sorted by delta.
func FindThreshold(buckets []DeltaBucket, minSamples int, rate float64) (DeltaBucket, bool) {
	for _, b := range buckets {
		if b.Total() >= minSamples && b.HitRate() >= rate {
			return b, true
		}
	}
	return DeltaBucket{}, false
}

// RecentRuns retrieves per-session summaries, most recent first.
func (s *Store) RecentRuns(limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT run_id, COUNT(*), SUM(hit), MAX(level), MIN(created_at), MAX(created_at)
		 FROM rounds
		 GROUP BY run_id
		 ORDER BY MAX(id) DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var startedAt, endedAt any
		if err := rows.Scan(&r.RunID, &r.Rounds, &r.Hits, &r.MaxLevel, &startedAt, &endedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan run row: %w", err)
		}
		r.StartedAt = parseTime(startedAt)
		r.EndedAt = parseTime(endedAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// RoundCount returns the number of journaled rounds.
func (s *Store) RoundCount() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM rounds").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count rounds: %w", err)
	}
	return n, nil
}

// ClearRounds deletes the whole journal.
func (s *Store) ClearRounds() error {
	_, err := s.db.Exec("DELETE FROM rounds")
	if err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	return nil
}
