package training

import "time"

const daysPerWeek = 7

// Day truncates t to its calendar date at UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(Day(to).Sub(Day(from)).Hours() / 24)
}

// WeekOf returns the 1-based block week date falls in. Days before the
// start are clamped to week 1.
func WeekOf(date, mesocycleStart time.Time) int {
	days := daysBetween(mesocycleStart, date)
	if days < 0 {
		return 1
	}
	return days/daysPerWeek + 1
}

// InBlock reports whether date lies in [start, start + totalWeeks*7d).
func InBlock(date, start time.Time, totalWeeks int) bool {
	days := daysBetween(start, date)
	return days >= 0 && days < totalWeeks*daysPerWeek
}

// SameSlot reports whether a and b recur in the same slot: both belong to
// the same mesocycle and fall on the same weekday.
func SameSlot(a, b *Session) bool {
	if a.MesocycleID == nil || b.MesocycleID == nil {
		return false
	}
	if *a.MesocycleID != *b.MesocycleID {
		return false
	}
	return Day(a.Date).Weekday() == Day(b.Date).Weekday()
}

// IsFuture reports whether candidate is dated strictly after source.
func IsFuture(candidate, source *Session) bool {
	return Day(candidate.Date).After(Day(source.Date))
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, Validationf("invalid date %q", s)
	}
	return t, nil
}
