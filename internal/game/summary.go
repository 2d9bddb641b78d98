package game

import (
	"fmt"
	"strings"
)

// Summary is a snapshot of one round, built from the session's event log.
type Summary struct {
	Status      Status
	Score       int
	Drops       int
	Merges      int
	Abandoned   int
	ClearBonus  int
	HighestTier int
	Steps       int
	EndStep     int // step of the game-over trigger, -1 if none
}

// Summarize collects the round's totals. HighestTier also counts balls that
// are still in play.
func Summarize(s *Session) Summary {
	sum := Summary{
		Status:      s.Status(),
		Score:       s.Score(),
		Drops:       s.log.CountCategory("drop", "commit"),
		Merges:      s.log.CountCategory("merge", "complete"),
		Abandoned:   s.log.CountCategory("merge", "abandon"),
		HighestTier: -1,
		Steps:       s.step,
		EndStep:     -1,
	}
	for _, e := range s.log.Filter("clear", "ball") {
		sum.ClearBonus += int(e.NumVal)
	}
	for _, e := range s.log.Entries() {
		if (e.Category == "drop" || e.Category == "merge") && e.Tier > sum.HighestTier {
			sum.HighestTier = e.Tier
		}
	}
	for _, b := range s.registry.Bodies() {
		if r, _ := s.registry.Role(b); r == RolePlay {
			if p := s.registry.Prototype(b); p.Tier > sum.HighestTier {
				sum.HighestTier = p.Tier
			}
		}
	}
	if e, ok := s.log.LastOf("gameover", "trigger"); ok {
		sum.EndStep = e.Step
	}
	return sum
}

// String renders the summary as the block copied by the desktop app.
func (m Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "status=%s score=%d steps=%d\n", m.Status, m.Score, m.Steps)
	fmt.Fprintf(&sb, "drops=%d merges=%d abandoned=%d clear_bonus=%d\n", m.Drops, m.Merges, m.Abandoned, m.ClearBonus)
	if m.HighestTier >= 0 {
		fmt.Fprintf(&sb, "highest_tier=%d", m.HighestTier)
	} else {
		sb.WriteString("highest_tier=n/a")
	}
	if m.EndStep >= 0 {
		fmt.Fprintf(&sb, " game_over_step=%d", m.EndStep)
	}
	sb.WriteByte('\n')
	return sb.String()
}
