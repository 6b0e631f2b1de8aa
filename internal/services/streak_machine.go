package services

import (
	"time"

	"github.com/foliotrack/folio/internal/models"
)

// StreakTransition is the outcome of applying one finalized day to a streak
// record. When Advanced is false the input state passed through unchanged.
type StreakTransition struct {
	Streak         models.UserStreak
	Advanced       bool
	Reset          bool
	FreezesSpent   []time.Time
	FreezesAwarded int
}

// AdvanceStreak applies the goal outcome for nominal day D to the streak.
//
// A missed goal never mutates the streak here; continuity is settled
// retroactively by freeze consumption when a later goal day inspects the gap.
// A repeated call for a day that already counted is a no-op, so finalization
// is safe to rerun. coveredDays (keyed by YYYY-MM-DD) marks gap days an
// earlier evaluation already charged to a freeze.
func AdvanceStreak(streak models.UserStreak, day time.Time, goalMet bool, coveredDays map[string]bool) StreakTransition {
	transition := StreakTransition{Streak: streak}
	if !goalMet {
		return transition
	}
	if streak.LastGoalMetDate != nil {
		if SameNominalDate(*streak.LastGoalMetDate, day) {
			return transition
		}
		// LastGoalMetDate only ever advances. A backfilled earlier day keeps
		// its progress row but never rewinds or inflates the streak.
		if NominalDaysBetween(*streak.LastGoalMetDate, day) < 0 {
			return transition
		}
	}

	switch {
	case streak.LastGoalMetDate == nil:
		transition.Streak.CurrentStreak = 1
	case NominalDaysBetween(*streak.LastGoalMetDate, day) == 1:
		transition.Streak.CurrentStreak = streak.CurrentStreak + 1
	default:
		coverage := PlanGapCoverage(*streak.LastGoalMetDate, day, streak.FreezeCount, coveredDays)
		transition.FreezesSpent = coverage.SpentDays
		transition.Streak.FreezeCount = GrantFreezes(streak.FreezeCount, -len(coverage.SpentDays))
		if coverage.FullyCovered {
			transition.Streak.CurrentStreak = streak.CurrentStreak + 1
		} else {
			transition.Streak.CurrentStreak = 1
			transition.Reset = true
		}
	}

	metDate := normalizeNominal(day)
	transition.Streak.LastGoalMetDate = &metDate
	if transition.Streak.CurrentStreak > transition.Streak.LongestStreak {
		transition.Streak.LongestStreak = transition.Streak.CurrentStreak
	}

	if award := MilestoneAward(transition.Streak.CurrentStreak); award > 0 {
		transition.FreezesAwarded = award
		transition.Streak.FreezeCount = GrantFreezes(transition.Streak.FreezeCount, award)
	}

	transition.Streak.FreezeUsedToday = len(transition.FreezesSpent) > 0
	transition.Advanced = true
	return transition
}
