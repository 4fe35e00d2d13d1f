package service

import (
	"fmt"

	"focusorbit/backend/internal/model"
)

// ApplyFocusCompletion advances a streak record for one completed focus
// session on the caller-local date today. It reports whether the session
// crossed a milestone and earned a freeze.
//
// A second completion on the same day leaves every counter alone. A gap of
// two or more days restarts the streak at 1; freezes are never consumed
// automatically. FreezeUsedToday, FreezesEarned and Version pass through.
func ApplyFocusCompletion(prev model.StreakData, today string) (model.StreakData, bool, error) {
	day, ok := parseDate(today)
	if !ok {
		return prev, false, fmt.Errorf("invalid date %q", today)
	}
	yesterday := day.AddDate(0, 0, -1).Format(model.DateLayout)

	next := prev
	if next.LastActiveDate == "" && next.FreezeBalance == 0 {
		next.FreezeBalance = model.WelcomeFreezeGrant
	}

	earned := false
	if next.LastActiveDate != today {
		switch next.LastActiveDate {
		case "":
			next.CurrentStreak = 1
		case yesterday:
			next.CurrentStreak++
		default:
			next.CurrentStreak = 1
		}

		if next.CurrentStreak > next.LongestStreak {
			next.LongestStreak = next.CurrentStreak
		}

		if next.CurrentStreak > 0 && next.CurrentStreak%model.FreezeMilestoneDays == 0 {
			earned = true
			next.FreezeBalance = min(next.FreezeBalance+1, model.MaxFreezeBalance)
		}
	}

	next.LastActiveDate = today
	return next, earned, nil
}
