package booking

import "time"

// windowEnd returns the end instant of a reservation window. Hours are
// wall-clock hours, not business hours.
func windowEnd(start time.Time, hours int) time.Time {
	return start.Add(time.Duration(hours) * time.Hour)
}
