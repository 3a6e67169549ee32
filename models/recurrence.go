package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
)

// maxSeriesInstances caps a single expansion so a far-future end date
// cannot balloon one request into thousands of documents.
const maxSeriesInstances = 500

// MaterializeSeries expands a recurring template into concrete instances.
// The template itself becomes the series head (first occurrence); the
// returned slice holds every later occurrence up to and including the last
// boundary on or before RecurringEndDate. All records share one
// recurringGroupId and copy the template's fields at generation time.
func MaterializeSeries(template *Event) ([]Event, error) {
	if err := template.Validate(); err != nil {
		return nil, err
	}
	if !template.IsRecurring {
		return nil, &ValidationError{Field: "isRecurring", Msg: "event is not a recurring template"}
	}

	if template.RecurringGroupID == "" {
		template.RecurringGroupID = uuid.NewString()
	}

	starts, err := occurrenceStarts(template.StartTime, template.RecurringPattern, *template.RecurringEndDate)
	if err != nil {
		return nil, err
	}

	duration := template.EndTime.Sub(template.StartTime)
	var deadlineLead time.Duration
	if template.VotingDeadline != nil {
		deadlineLead = template.StartTime.Sub(*template.VotingDeadline)
	}

	instances := make([]Event, 0, len(starts))
	for _, start := range starts {
		if start.Equal(template.StartTime) {
			continue // the template covers the first occurrence
		}
		inst := *template
		inst.ID = uuid.NewString()
		inst.IsRecurring = false
		inst.IsRecurringInstance = true
		inst.StartTime = start
		inst.EndTime = start.Add(duration)
		if template.VotingDeadline != nil {
			d := start.Add(-deadlineLead)
			inst.VotingDeadline = &d
		}
		inst.TeamIDs = append([]string(nil), template.TeamIDs...)
		inst.InvitedPlayers = append([]int64(nil), template.InvitedPlayers...)
		inst.AttendingPlayers = nil
		inst.DeclinedPlayers = nil
		inst.UnsurePlayers = nil
		inst.GuestPlayers = nil
		inst.UninvitedPlayers = nil
		instances = append(instances, inst)
	}
	return instances, nil
}

// occurrenceStarts lists every occurrence start from first to the last one
// on or before until, first occurrence included. Weekly and biweekly go
// through rrule; monthly steps manually because the day-of-month must clamp
// to short months (RFC 5545 MONTHLY would skip them instead).
func occurrenceStarts(first time.Time, pattern RecurringPattern, until time.Time) ([]time.Time, error) {
	switch pattern {
	case PatternWeekly, PatternBiweekly:
		interval := 1
		if pattern == PatternBiweekly {
			interval = 2
		}
		r, err := rrule.NewRRule(rrule.ROption{
			Freq:     rrule.WEEKLY,
			Interval: interval,
			Dtstart:  first,
			Until:    until,
		})
		if err != nil {
			return nil, err
		}
		starts := r.All()
		if len(starts) > maxSeriesInstances {
			starts = starts[:maxSeriesInstances]
		}
		return starts, nil
	case PatternMonthly:
		var out []time.Time
		day := first.Day()
		cur := first
		for i := 0; !cur.After(until) && i < maxSeriesInstances; i++ {
			out = append(out, cur)
			cur = nextMonthly(first, day, i+1)
		}
		return out, nil
	default:
		return nil, &ValidationError{Field: "recurringPattern", Msg: "unknown recurring pattern"}
	}
}

// nextMonthly returns the start of occurrence number step (0 = template).
// If the template day-of-month does not exist in the target month the date
// clamps to that month's last day, so a series anchored on the 31st still
// produces a February occurrence.
func nextMonthly(first time.Time, day, step int) time.Time {
	y, m, _ := first.Date()
	loc := first.Location()
	firstOfTarget := time.Date(y, m+time.Month(step), 1, 0, 0, 0, 0, loc)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	d := day
	if d > lastDay {
		d = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d,
		first.Hour(), first.Minute(), first.Second(), first.Nanosecond(), loc)
}

// SeriesEdit carries the fields a cascade edit rewrites across a series.
// Weekday and the clock times are remapped onto each instance's own week;
// the date axis of the series is never regenerated.
type SeriesEdit struct {
	Title       string
	Type        EventType
	Location    string
	Description string
	Notes       string
	OpenAccess  bool
	Weekday     *time.Weekday
	StartClock  time.Time // only the clock part is used
	EndClock    time.Time
}

// ApplySeriesEdit rewrites one instance in place according to the edit.
func ApplySeriesEdit(inst *Event, edit SeriesEdit) {
	inst.Title = edit.Title
	inst.Type = edit.Type
	inst.Location = edit.Location
	inst.Description = edit.Description
	inst.Notes = edit.Notes
	inst.OpenAccess = edit.OpenAccess

	date := inst.StartTime
	if edit.Weekday != nil {
		date = date.AddDate(0, 0, mondayIndex(*edit.Weekday)-mondayIndex(date.Weekday()))
	}
	start := withClock(date, edit.StartClock)
	end := withClock(date, edit.EndClock)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1) // event runs past midnight
	}
	inst.StartTime = start
	inst.EndTime = end
}

// mondayIndex maps a weekday onto a Monday-based week (Monday = 0) so a
// weekday change stays inside the instance's own week.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func withClock(date, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, date.Location())
}
