package headless

import (
	"fmt"
	"strings"

	"github.com/Garsondee/Ball-Fuse/internal/game"
)

// RoundStats is the outcome of one auto-played round.
type RoundStats struct {
	Run     int
	Seed    int64
	Summary game.Summary
	Ended   bool
	Drops   int // auto-player attempts, including ones ignored while locked
}

// Collect builds the stats of a finished (or capped) round.
func Collect(run int, seed int64, ts *TestSim) RoundStats {
	sum := game.Summarize(ts.Session)
	return RoundStats{
		Run:     run,
		Seed:    seed,
		Summary: sum,
		Ended:   sum.Status == game.StatusEnd,
		Drops:   ts.Drops(),
	}
}

// Aggregate holds averages across rounds.
type Aggregate struct {
	Runs        int
	Ended       int
	BestScore   int
	AvgScore    float64
	AvgMerges   float64
	AvgDrops    float64
	AvgTier     float64
	AvgEndStep  float64 // over ended rounds only; -1 when none ended
	TierHistory map[int]int
}

// AggregateRounds folds per-round stats into run-wide averages.
func AggregateRounds(all []RoundStats) Aggregate {
	agg := Aggregate{Runs: len(all), AvgEndStep: -1, TierHistory: map[int]int{}}
	if len(all) == 0 {
		return agg
	}
	var score, merges, drops, tiers, endSteps int
	for _, rs := range all {
		s := rs.Summary
		score += s.Score
		merges += s.Merges
		drops += s.Drops
		tiers += s.HighestTier
		agg.TierHistory[s.HighestTier]++
		if s.Score > agg.BestScore {
			agg.BestScore = s.Score
		}
		if rs.Ended && s.EndStep >= 0 {
			agg.Ended++
			endSteps += s.EndStep
		}
	}
	n := float64(len(all))
	agg.AvgScore = float64(score) / n
	agg.AvgMerges = float64(merges) / n
	agg.AvgDrops = float64(drops) / n
	agg.AvgTier = float64(tiers) / n
	if agg.Ended > 0 {
		agg.AvgEndStep = float64(endSteps) / float64(agg.Ended)
	}
	return agg
}

// FormatRun renders one round for the report.
func FormatRun(rs RoundStats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Run %d (seed=%d) ---\n", rs.Run, rs.Seed)
	sb.WriteString(rs.Summary.String())
	fmt.Fprintf(&sb, "autoplay_attempts=%d ended=%t\n", rs.Drops, rs.Ended)
	return sb.String()
}

// FormatAggregate renders the run-wide block.
func FormatAggregate(a Aggregate) string {
	var sb strings.Builder
	sb.WriteString("=== Aggregate ===\n")
	fmt.Fprintf(&sb, "runs=%d ended=%d best_score=%d\n", a.Runs, a.Ended, a.BestScore)
	fmt.Fprintf(&sb, "avg_per_run: score=%.1f merges=%.1f drops=%.1f highest_tier=%.1f\n",
		a.AvgScore, a.AvgMerges, a.AvgDrops, a.AvgTier)
	if a.AvgEndStep >= 0 {
		fmt.Fprintf(&sb, "avg_game_over_step=%.1f\n", a.AvgEndStep)
	} else {
		sb.WriteString("avg_game_over_step=n/a\n")
	}
	sb.WriteString("highest_tier_histogram:")
	for tier := -1; tier <= 10; tier++ {
		if n := a.TierHistory[tier]; n > 0 {
			fmt.Fprintf(&sb, " t%d=%d", tier, n)
		}
	}
	sb.WriteByte('\n')
	return sb.String()
}
