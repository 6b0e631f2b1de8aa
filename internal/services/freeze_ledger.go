package services

import (
	"time"

	"github.com/foliotrack/folio/internal/models"
)

// Freeze awards fire only when the streak grows to exactly one of these
// lengths. A streak rebuilt past a milestone in a corrective operation earns
// nothing for the values it skipped.
var freezeMilestoneAwards = map[int]int{
	7:  1,
	14: 1,
	21: 1,
	28: 1,
	30: 3,
}

// MilestoneAward returns the freeze bonus for reaching exactly the given
// streak length, or zero.
func MilestoneAward(streakLength int) int {
	return freezeMilestoneAwards[streakLength]
}

// GrantFreezes applies a signed freeze delta, clamping the balance to
// [0, MaxFreezeCount].
func GrantFreezes(current int, delta int) int {
	balance := current + delta
	if balance > models.MaxFreezeCount {
		return models.MaxFreezeCount
	}
	if balance < 0 {
		return 0
	}
	return balance
}

// GapCoverage describes how the missed days strictly between two goal days can
// be bridged with freezes. All dates are nominal, oldest first.
type GapCoverage struct {
	MissedDays   []time.Time
	SpentDays    []time.Time
	FullyCovered bool
}

// PlanGapCoverage walks the nominal days strictly between lastMet and day,
// oldest first, charging one available freeze per missed day. Days in
// alreadyCovered (keyed by YYYY-MM-DD) were charged by an earlier evaluation
// and cost nothing. Spending stops at the first day that cannot be covered;
// freezes charged before that point stay spent even though the streak will
// reset.
func PlanGapCoverage(lastMet time.Time, day time.Time, availableFreezes int, alreadyCovered map[string]bool) GapCoverage {
	coverage := GapCoverage{FullyCovered: true}
	remaining := availableFreezes

	end := normalizeNominal(day)
	for cursor := normalizeNominal(lastMet).AddDate(0, 0, 1); cursor.Before(end); cursor = cursor.AddDate(0, 0, 1) {
		coverage.MissedDays = append(coverage.MissedDays, cursor)
		if !coverage.FullyCovered {
			continue
		}
		if alreadyCovered[nominalKey(cursor)] {
			continue
		}
		if remaining > 0 {
			remaining--
			coverage.SpentDays = append(coverage.SpentDays, cursor)
			continue
		}
		coverage.FullyCovered = false
	}

	return coverage
}
