package domain

import "time"

// WeekEpoch anchors every weekly-recurring slot to one shared reference week.
// Only the weekday and time-of-day of an anchored instant carry meaning; the
// date components are disposable. The epoch's own weekday (a Thursday) is
// irrelevant as long as every anchor computation uses the same reference.
var WeekEpoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// maxDayWalk bounds the weekday walks below. A valid weekday is found within
// seven steps; the cap guards against a malformed weekday value spinning
// forever. Past the cap the last-seen date is returned.
const maxDayWalk = 256

// DateWithTime returns an instant on reference's calendar date with the given
// time of day.
func DateWithTime(hour, minute, sec, millis int, reference time.Time) time.Time {
	return time.Date(
		reference.Year(),
		reference.Month(),
		reference.Day(),
		hour,
		minute,
		sec,
		millis*int(time.Millisecond),
		time.UTC,
	)
}

// DateWithDay walks forward day by day from reference until the date falls on
// weekday, leaving the time of day untouched.
func DateWithDay(weekday time.Weekday, reference time.Time) time.Time {
	d := reference
	for i := 0; i < maxDayWalk && d.Weekday() != weekday; i++ {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// Date returns the canonical anchor instant for a weekly-recurring
// (weekday, time-of-day) pair: the first occurrence at or after WeekEpoch.
func Date(weekday time.Weekday, hour, minute int) time.Time {
	return DateWithDay(weekday, DateWithTime(hour, minute, 0, 0, WeekEpoch))
}

// NextDateWithDayAndTime returns the first real-world occurrence of the given
// (weekday, time-of-day) at or after now.
func NextDateWithDayAndTime(now time.Time, weekday time.Weekday, hour, minute int) time.Time {
	d := DateWithTime(hour, minute, 0, 0, now)
	for i := 0; i < maxDayWalk && (d.Weekday() != weekday || d.Before(now)); i++ {
		d = d.AddDate(0, 0, 1)
	}
	return d
}
