package domain

import (
	"strings"

	"github.com/teambition/rrule-go"
)

// RecurrenceLabel renders a recurrence rule string (e.g.
// "RRULE:FREQ=WEEKLY;INTERVAL=2;UNTIL=20240130T000000Z") as a coarse
// human-readable label such as "Biweekly until Jan 30, 2024". Unrecognized or
// malformed rules degrade to an empty label; this never fails.
func RecurrenceLabel(rule string) string {
	rule = strings.TrimPrefix(strings.TrimSpace(rule), "RRULE:")
	if rule == "" {
		return ""
	}

	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return ""
	}

	var label string
	switch opt.Freq {
	case rrule.DAILY:
		label = "Daily"
	case rrule.WEEKLY:
		if opt.Interval == 2 {
			label = "Biweekly"
		} else {
			label = "Weekly"
		}
	case rrule.MONTHLY:
		label = "Monthly"
	default:
		return ""
	}

	if !opt.Until.IsZero() {
		label += " until " + opt.Until.Format("Jan 2, 2006")
	}
	return label
}
