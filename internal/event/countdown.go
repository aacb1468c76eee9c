package event

import "time"

type CalculationType string

const (
	CalcDaysLeft       CalculationType = "days-left"
	CalcDaysPassed     CalculationType = "days-passed"
	CalcMonthsDuration CalculationType = "months-duration"
	CalcWeeksDuration  CalculationType = "weeks-duration"
	CalcYearsMonths    CalculationType = "years-months"
)

// IsDuration reports whether the calculation type is an open-ended running
// counter. Duration types always count elapsed time from the event date and
// are never expired; only days-left behaves as a countdown.
func (c CalculationType) IsDuration() bool {
	switch c {
	case CalcDaysPassed, CalcMonthsDuration, CalcWeeksDuration, CalcYearsMonths:
		return true
	}
	return false
}

func (c CalculationType) Valid() bool {
	switch c {
	case CalcDaysLeft, CalcDaysPassed, CalcMonthsDuration, CalcWeeksDuration, CalcYearsMonths:
		return true
	}
	return false
}

type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusExpired  Status = "expired"
	StatusOngoing  Status = "ongoing"
)

// Breakdown is a displayable duration split. All fields are non-negative.
type Breakdown struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Countdown is the result of evaluating an event date against a wall-clock
// instant for one calculation type. Weeks, Months and Years are only filled
// for the unit-based duration types.
type Countdown struct {
	Status    Status    `json:"status"`
	Breakdown Breakdown `json:"breakdown"`
	Weeks     int       `json:"weeks,omitempty"`
	Months    int       `json:"months,omitempty"`
	Years     int       `json:"years,omitempty"`
}

const (
	day  = 24 * time.Hour
	week = 7
	// Month and year lengths for unit summaries. Coarse by design of the
	// display modes: a "months-duration" event reads as elapsed-days/30.
	monthDays = 30
	yearDays  = 365
)

// Calculate maps (eventDate, now, calc) to a displayable countdown.
//
// days-left counts down: a future date yields ceil-whole-days remaining plus
// the sub-day remainder, a past or exactly-now date is expired with a zero
// breakdown. Every other type counts elapsed time from the event date and is
// never expired; days-passed additionally shows nothing until the date has
// been reached. The function is pure: no clocks are read, no state is kept.
func Calculate(eventDate, now time.Time, calc CalculationType) Countdown {
	if !calc.Valid() {
		calc = CalcDaysLeft
	}

	switch calc {
	case CalcDaysLeft:
		diff := eventDate.Sub(now)
		if diff <= 0 {
			return Countdown{Status: StatusExpired}
		}
		b := splitDuration(diff)
		b.Days = ceilDays(diff)
		return Countdown{Status: StatusUpcoming, Breakdown: b}

	case CalcDaysPassed:
		if eventDate.After(now) {
			// Nothing has elapsed yet.
			return Countdown{Status: StatusUpcoming}
		}
		return Countdown{Status: StatusOngoing, Breakdown: splitDuration(now.Sub(eventDate))}

	default:
		// Unit-based duration types treat the event date as an anchor and
		// count elapsed time regardless of which side of now it falls on.
		elapsed := now.Sub(eventDate)
		if elapsed < 0 {
			elapsed = -elapsed
		}
		b := splitDuration(elapsed)
		out := Countdown{Status: StatusOngoing, Breakdown: b}
		switch calc {
		case CalcWeeksDuration:
			out.Weeks = b.Days / week
		case CalcMonthsDuration:
			out.Months = b.Days / monthDays
		case CalcYearsMonths:
			out.Years = b.Days / yearDays
			out.Months = (b.Days % yearDays) / monthDays
		}
		return out
	}
}

// splitDuration floors d into whole days plus an intra-day remainder.
func splitDuration(d time.Duration) Breakdown {
	if d < 0 {
		d = 0
	}
	return Breakdown{
		Days:    int(d / day),
		Hours:   int(d % day / time.Hour),
		Minutes: int(d % time.Hour / time.Minute),
		Seconds: int(d % time.Minute / time.Second),
	}
}

// ceilDays rounds a positive duration up to whole days, so "tomorrow morning"
// reads as 1 day left rather than 0.
func ceilDays(d time.Duration) int {
	n := int(d / day)
	if d%day != 0 {
		n++
	}
	return n
}
