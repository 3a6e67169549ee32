package models

import (
	"math"
	"sort"
	"time"
)

// UpcomingEvents returns events starting after now, ascending by start.
func UpcomingEvents(events []Event, now time.Time) []Event {
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if e.StartTime.After(now) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

// PastEvents returns events that started before now, most recent first.
func PastEvents(events []Event, now time.Time) []Event {
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if e.StartTime.Before(now) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.After(out[j].StartTime)
	})
	return out
}

// PendingForPlayer returns the future events still waiting for the
// player's vote: not yet responded, and reachable via invitation, guest
// slot or open access. Roster membership alone does not put an event on
// the pending list, and explicitly uninvited players are never prompted.
func PendingForPlayer(events []Event, playerID int64, now time.Time) []Event {
	out := make([]Event, 0)
	for _, e := range events {
		if !e.StartTime.After(now) || e.HasResponded(playerID) {
			continue
		}
		if containsID(e.UninvitedPlayers, playerID) {
			continue
		}
		if containsID(e.InvitedPlayers, playerID) || e.isGuest(playerID) || e.OpenAccess {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

// NoPosition is the fallback bucket for attendees without a position.
const NoPosition = "no position"

type PositionCount struct {
	Position string `json:"position"`
	Count    int    `json:"count"`
	Percent  int    `json:"percent"`
}

// PositionStatistics tallies the attending players by position, descending
// by count (ties alphabetically). Percent is count over total attendees
// rounded to the nearest integer. No attendees yields an empty slice.
func PositionStatistics(e Event, players map[int64]User) []PositionCount {
	total := len(e.AttendingPlayers)
	if total == 0 {
		return []PositionCount{}
	}

	counts := make(map[string]int)
	for _, id := range e.AttendingPlayers {
		pos := players[id].Position
		if pos == "" {
			pos = NoPosition
		}
		counts[pos]++
	}

	out := make([]PositionCount, 0, len(counts))
	for pos, n := range counts {
		out = append(out, PositionCount{
			Position: pos,
			Count:    n,
			Percent:  int(math.Round(float64(n) / float64(total) * 100)),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Position < out[j].Position
	})
	return out
}
