package domain

import "time"

// ClassifyGlucose classifies a reading against the profile's target range.
// Values exactly equal to the range bounds classify as Normal.
func ClassifyGlucose(value int, profile UserProfile) GlucoseStatus {
	switch {
	case value > profile.TargetRangeMax:
		return StatusAlta
	case value < profile.TargetRangeMin:
		return StatusBaixa
	default:
		return StatusNormal
	}
}

// SameCalendarDay reports whether a and b fall on the same local calendar
// date.
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// HasReadingToday reports whether at least one entry was recorded on now's
// calendar date. History may be empty.
func HasReadingToday(history []GlucoseEntry, now time.Time) bool {
	for _, entry := range history {
		if SameCalendarDay(entry.Timestamp, now) {
			return true
		}
	}
	return false
}

// LatestForPlan picks the reading a meal plan should be based on: today's
// latest reading if one exists, otherwise the most recent reading overall.
// The second return is false when the history is empty. History is assumed
// most-recent-first.
func LatestForPlan(history []GlucoseEntry, now time.Time) (GlucoseEntry, bool) {
	if len(history) == 0 {
		return GlucoseEntry{}, false
	}
	for _, entry := range history {
		if SameCalendarDay(entry.Timestamp, now) {
			return entry, true
		}
	}
	return history[0], true
}
