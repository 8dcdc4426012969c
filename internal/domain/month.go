package domain

import "time"

// MonthTimeslots expands a weekly-recurring baseline into every concrete,
// bookable 30-minute window inside one (month, year), excluding windows that
// overlap an already-booked interval. Touching a booked interval counts as a
// conflict. Out-of-range month values roll into the year the way time.Date
// normalizes them, so month 13 of 2023 projects January 2024.
//
// The baseline's date components are disposable; only the weekday and
// time-of-day of each slot carry through.
func MonthTimeslots(baseline Availability, month, year int, booked Availability) Availability {
	firstOfMonth := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	weekdayOffset := int(firstOfMonth.Weekday())
	daysInMonth := firstOfMonth.AddDate(0, 1, -1).Day()

	out := Availability{}
	for _, window := range SliceAvailability(baseline, DefaultInterval, DefaultBookingDuration) {
		weekday := int(window.From.Weekday())
		fromHour, fromMinute := window.From.Hour(), window.From.Minute()
		toHour, toMinute := window.To.Hour(), window.To.Minute()

		for date := 1; date <= daysInMonth; date++ {
			if (date-1+weekdayOffset)%7 != weekday {
				continue
			}

			day := firstOfMonth.AddDate(0, 0, date-1)
			slot := Timeslot{
				From: time.Date(day.Year(), day.Month(), day.Day(), fromHour, fromMinute, 0, 0, time.UTC),
				To:   time.Date(day.Year(), day.Month(), day.Day(), toHour, toMinute, 0, 0, time.UTC),
			}

			conflict := false
			for _, b := range booked {
				if slot.Overlaps(b) {
					conflict = true
					break
				}
			}
			if !conflict {
				out = append(out, slot)
			}
		}
	}
	return out
}
