package utils

import (
	"fmt"
	"time"
)

// BusinessCalendar measures elapsed time counting only configured work
// hours, skipping weekends and holidays.
type BusinessCalendar struct {
	workStart time.Time // clock time only, date part unused
	workEnd   time.Time
	holidays  map[string]struct{}
}

// NewBusinessCalendar parses workStart/workEnd in "15:04" form and indexes
// the holiday dates ("2006-01-02", one entry per day).
func NewBusinessCalendar(workStart, workEnd string, holidays []string) (*BusinessCalendar, error) {
	ws, err := time.Parse("15:04", workStart)
	if err != nil {
		return nil, fmt.Errorf("invalid work start %q: %w", workStart, err)
	}
	we, err := time.Parse("15:04", workEnd)
	if err != nil {
		return nil, fmt.Errorf("invalid work end %q: %w", workEnd, err)
	}
	if !ws.Before(we) {
		return nil, fmt.Errorf("work start %q is not before work end %q", workStart, workEnd)
	}
	c := &BusinessCalendar{workStart: ws, workEnd: we, holidays: make(map[string]struct{})}
	for _, h := range holidays {
		c.holidays[h] = struct{}{}
	}
	return c, nil
}

// Holiday reports whether the date of t is a configured holiday.
func (c *BusinessCalendar) Holiday(t time.Time) bool {
	_, ok := c.holidays[t.Format("2006-01-02")]
	return ok
}

// nextWorkDayStart moves to the start of the work window on the day after t.
func (c *BusinessCalendar) nextWorkDayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+1, c.workStart.Hour(), c.workStart.Minute(), 0, 0, t.Location())
}

// Duration returns the business-hour time between start and end. An end
// before the start counts as zero.
func (c *BusinessCalendar) Duration(start, end time.Time) time.Duration {
	if end.Before(start) {
		return 0
	}
	var total time.Duration
	cur := start
	for cur.Before(end) {
		if c.Holiday(cur) {
			cur = c.nextWorkDayStart(cur)
			continue
		}
		if wd := cur.Weekday(); wd == time.Saturday || wd == time.Sunday {
			cur = c.nextWorkDayStart(cur)
			continue
		}
		dayStart := time.Date(cur.Year(), cur.Month(), cur.Day(), c.workStart.Hour(), c.workStart.Minute(), 0, 0, cur.Location())
		dayEnd := time.Date(cur.Year(), cur.Month(), cur.Day(), c.workEnd.Hour(), c.workEnd.Minute(), 0, 0, cur.Location())
		if cur.Before(dayStart) {
			cur = dayStart
		}
		if cur.After(dayEnd) {
			cur = c.nextWorkDayStart(cur)
			continue
		}
		next := dayEnd
		if end.Before(dayEnd) {
			next = end
		}
		if next.After(cur) {
			total += next.Sub(cur)
		}
		cur = next
		if cur.Before(end) {
			cur = c.nextWorkDayStart(cur)
		}
	}
	return total
}
