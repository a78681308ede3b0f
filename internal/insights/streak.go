package insights

import (
	"sort"
	"time"

	"github.com/aebalz/daily-mood-tracker/internal/model"
)

// CurrentStreak counts consecutive calendar days with at least one entry, ending today or yesterday.
// Calendar days are taken in now's location. A streak whose latest day is older than yesterday is 0.
func CurrentStreak(entries []model.MoodEntry, now time.Time) int {
	days := distinctDays(entries, now.Location())
	if len(days) == 0 {
		return 0
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	today := dayOf(now, now.Location())
	yesterday := today.AddDate(0, 0, -1)
	if !days[0].Equal(today) && !days[0].Equal(yesterday) {
		return 0
	}

	streak := 1
	current := days[0]
	for _, d := range days[1:] {
		if !d.Equal(current.AddDate(0, 0, -1)) {
			break
		}
		streak++
		current = d
	}
	return streak
}

// LongestStreak returns the longest run of consecutive logged days anywhere in the history.
func LongestStreak(entries []model.MoodEntry, loc *time.Location) int {
	days := distinctDays(entries, loc)
	if len(days) == 0 {
		return 0
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, current := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Equal(days[i-1].AddDate(0, 0, 1)) {
			current++
		} else {
			current = 1
		}
		if current > longest {
			longest = current
		}
	}
	return longest
}

func distinctDays(entries []model.MoodEntry, loc *time.Location) []time.Time {
	seen := make(map[time.Time]struct{}, len(entries))
	days := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		if e.CreatedAt.IsZero() {
			continue
		}
		d := dayOf(e.CreatedAt, loc)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	return days
}

// dayOf truncates t to midnight of its calendar day in loc.
func dayOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
