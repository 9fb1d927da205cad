package compile

import "time"

// canonicalizeLastRule applies the normalization materializing a last-rule
// into a TransitionRule requires: a fixed, year-invariant day-of-month
// anchor for non-February months, and an end-of-day time pulled forward
// into the following day wherever that stays within the same month.
func canonicalizeLastRule(month time.Month, dayOfMonthIndicator int, hasDayOfWeek bool, dayOfWeek time.Weekday, endOfDay bool) (outDay int, outHasDoW bool, outDoW time.Weekday, outEndOfDay bool) {
	outDay, outHasDoW, outDoW, outEndOfDay = dayOfMonthIndicator, hasDayOfWeek, dayOfWeek, endOfDay

	if outDay < 0 && month != time.February {
		outDay = monthMaxLength(month) - 6
	}

	if outEndOfDay {
		isFeb28 := month == time.February && outDay == 28
		if outDay > 0 && !isFeb28 {
			outDay++
			outEndOfDay = false
			if outHasDoW {
				outDoW = (outDoW + 1) % 7
			}
		}
	}
	return outDay, outHasDoW, outDoW, outEndOfDay
}

// monthMaxLength is the greatest number of days the given month can ever
// have, a fixed constant for every month except February.
func monthMaxLength(m time.Month) int {
	switch m {
	case time.April, time.June, time.September, time.November:
		return 30
	case time.February:
		return 29
	default:
		return 31
	}
}
