package models

import (
	"errors"
	"testing"
	"time"
)

func testEvent() Event {
	start := time.Date(2025, 6, 10, 19, 0, 0, 0, time.UTC)
	return Event{
		ID:               "ev1",
		Title:            "Training",
		Type:             EventTraining,
		Location:         "Halle 1",
		StartTime:        start,
		EndTime:          start.Add(2 * time.Hour),
		TeamIDs:          []string{"team1"},
		OrganizingTeamID: "team1",
		InvitedPlayers:   []int64{1, 2, 3},
		CreatedBy:        9,
	}
}

// membershipCount counts how many of the four response sets hold the
// player.
func membershipCount(e Event, pid int64) int {
	n := 0
	if containsID(e.InvitedPlayers, pid) {
		n++
	}
	if containsID(e.AttendingPlayers, pid) {
		n++
	}
	if containsEntry(e.DeclinedPlayers, pid) {
		n++
	}
	if containsEntry(e.UnsurePlayers, pid) {
		n++
	}
	return n
}

func TestTransitionsKeepMutualExclusion(t *testing.T) {
	e := testEvent()
	now := e.StartTime.Add(-24 * time.Hour)

	if err := e.Accept(1, now); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if err := e.Decline(1, "injured", now); err != nil {
		t.Fatalf("decline: %v", err)
	}
	if err := e.MarkUnsure(1, "work shift", now); err != nil {
		t.Fatalf("unsure: %v", err)
	}
	if err := e.Accept(1, now); err != nil {
		t.Fatalf("re-accept: %v", err)
	}

	if got := membershipCount(e, 1); got != 1 {
		t.Fatalf("player in %d sets, want 1", got)
	}
	if !containsID(e.AttendingPlayers, 1) {
		t.Fatalf("player should end up attending")
	}
	// untouched players keep their invitation
	if !containsID(e.InvitedPlayers, 2) || !containsID(e.InvitedPlayers, 3) {
		t.Fatalf("other invitations must survive")
	}
}

func TestAcceptTwiceIsIdempotent(t *testing.T) {
	e := testEvent()
	now := e.StartTime.Add(-time.Hour)

	if err := e.Accept(1, now); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if err := e.Accept(1, now); err != nil {
		t.Fatalf("second accept: %v", err)
	}

	count := 0
	for _, id := range e.AttendingPlayers {
		if id == 1 {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("attending holds player %d times, want exactly once", count)
	}
}

func TestDeadlineGuardRejectsAllTransitions(t *testing.T) {
	e := testEvent()
	deadline := e.StartTime.Add(-48 * time.Hour)
	e.VotingDeadline = &deadline
	late := deadline.Add(time.Minute)

	before := testEvent()
	before.VotingDeadline = &deadline

	if err := e.Accept(1, late); !errors.Is(err, ErrDeadlinePassed) {
		t.Fatalf("accept after deadline: got %v", err)
	}
	if err := e.Decline(1, "sick", late); !errors.Is(err, ErrDeadlinePassed) {
		t.Fatalf("decline after deadline: got %v", err)
	}
	if err := e.MarkUnsure(1, "maybe", late); !errors.Is(err, ErrDeadlinePassed) {
		t.Fatalf("unsure after deadline: got %v", err)
	}

	// response sets unchanged
	if len(e.AttendingPlayers) != 0 || len(e.DeclinedPlayers) != 0 || len(e.UnsurePlayers) != 0 {
		t.Fatalf("rejected transitions must not mutate the sets")
	}
	if len(e.InvitedPlayers) != len(before.InvitedPlayers) {
		t.Fatalf("invited set changed")
	}

	// exactly at the deadline still counts
	if err := e.Accept(1, deadline); err != nil {
		t.Fatalf("accept at deadline: %v", err)
	}
}

func TestDeclineAndUnsureRequireReason(t *testing.T) {
	e := testEvent()
	now := e.StartTime.Add(-time.Hour)

	if err := e.Decline(1, "", now); !IsValidation(err) {
		t.Fatalf("empty reason: got %v", err)
	}
	if err := e.MarkUnsure(1, "   ", now); !IsValidation(err) {
		t.Fatalf("whitespace reason: got %v", err)
	}
	if membershipCount(e, 1) != 1 || !containsID(e.InvitedPlayers, 1) {
		t.Fatalf("rejected vote must leave the player invited")
	}

	if err := e.Decline(1, "sick", now); err != nil {
		t.Fatalf("decline with reason: %v", err)
	}
	if !containsEntry(e.DeclinedPlayers, 1) {
		t.Fatalf("player should be declined")
	}
}

func TestGuestRules(t *testing.T) {
	e := testEvent()
	now := e.StartTime.Add(-time.Hour)

	// invited player cannot become a guest
	if err := e.AddGuest(1, "team9"); !errors.Is(err, ErrGuestConflict) {
		t.Fatalf("guest over invited: got %v", err)
	}

	if err := e.AddGuest(42, "team9"); err != nil {
		t.Fatalf("add guest: %v", err)
	}
	if err := e.AddGuest(42, "team9"); !errors.Is(err, ErrAlreadyGuest) {
		t.Fatalf("double guest: got %v", err)
	}

	// guests do not vote as native players
	if err := e.Accept(42, now); !errors.Is(err, ErrIsGuest) {
		t.Fatalf("guest accept: got %v", err)
	}

	e.RemoveGuest(42)
	if e.isGuest(42) {
		t.Fatalf("guest not removed")
	}
}

func TestUninviteIsDistinctFromUnknown(t *testing.T) {
	e := testEvent()
	now := e.StartTime.Add(-time.Hour)

	if err := e.Accept(1, now); err != nil {
		t.Fatalf("accept: %v", err)
	}
	e.Uninvite(1)

	if membershipCount(e, 1) != 0 {
		t.Fatalf("uninvited player must leave every response set")
	}
	if got := e.StatusOf(1, false); got != StatusUninvited {
		t.Fatalf("uninvited player resolves to %q, want %q", got, StatusUninvited)
	}
	// never-invited stranger
	if got := e.StatusOf(99, false); got != StatusUnknown {
		t.Fatalf("stranger resolves to %q, want %q", got, StatusUnknown)
	}
	// uninviting twice records the id once
	e.Uninvite(1)
	if n := len(e.UninvitedPlayers); n != 1 {
		t.Fatalf("uninvited recorded %d times", n)
	}
}

func TestVoteAfterUninviteClearsTheMarker(t *testing.T) {
	e := testEvent()
	now := e.StartTime.Add(-time.Hour)

	e.Uninvite(2)
	if err := e.Accept(2, now); err != nil {
		t.Fatalf("accept: %v", err)
	}

	if containsID(e.UninvitedPlayers, 2) {
		t.Fatalf("attending player still carries the uninvited marker")
	}
	if got := e.StatusOf(2, false); got != StatusAttending {
		t.Fatalf("status %q, want %q", got, StatusAttending)
	}

	e.Uninvite(2)
	if err := e.Decline(2, "injured", now); err != nil {
		t.Fatalf("decline: %v", err)
	}
	if containsID(e.UninvitedPlayers, 2) {
		t.Fatalf("declined player still carries the uninvited marker")
	}
}

func TestStatusPrecedence(t *testing.T) {
	e := testEvent()
	now := e.StartTime.Add(-time.Hour)

	if got := e.StatusOf(1, true); got != StatusInvited {
		t.Fatalf("invited: got %q", got)
	}
	if err := e.Accept(1, now); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if got := e.StatusOf(1, true); got != StatusAttending {
		t.Fatalf("attending wins: got %q", got)
	}

	if err := e.AddGuest(42, "team9"); err != nil {
		t.Fatalf("add guest: %v", err)
	}
	if got := e.StatusOf(42, false); got != StatusGuest {
		t.Fatalf("guest: got %q", got)
	}

	// team member without invitation falls back
	if got := e.StatusOf(50, true); got != StatusTeamMember {
		t.Fatalf("team member fallback: got %q", got)
	}
	// open access promotes strangers to the same fallback
	e.OpenAccess = true
	if got := e.StatusOf(99, false); got != StatusTeamMember {
		t.Fatalf("open access fallback: got %q", got)
	}
}

func TestValidateEvent(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Event)
	}{
		{"empty title", func(e *Event) { e.Title = "  " }},
		{"empty location", func(e *Event) { e.Location = "" }},
		{"end before start", func(e *Event) { e.EndTime = e.StartTime.Add(-time.Hour) }},
		{"end equals start", func(e *Event) { e.EndTime = e.StartTime }},
		{"no teams", func(e *Event) { e.TeamIDs = nil }},
		{"organizing team not associated", func(e *Event) { e.OrganizingTeamID = "other" }},
		{"bad type", func(e *Event) { e.Type = "party" }},
		{"recurring without end date", func(e *Event) {
			e.IsRecurring = true
			e.RecurringPattern = PatternWeekly
		}},
		{"recurring with bad pattern", func(e *Event) {
			e.IsRecurring = true
			e.RecurringPattern = "daily"
			d := e.StartTime.AddDate(0, 1, 0)
			e.RecurringEndDate = &d
		}},
	}
	for _, tc := range cases {
		e := testEvent()
		tc.mutate(&e)
		if err := e.Validate(); !IsValidation(err) {
			t.Fatalf("%s: got %v, want validation error", tc.name, err)
		}
	}

	ok := testEvent()
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid event rejected: %v", err)
	}
}

// A deadline after the event start is accepted as given; the guard only
// compares against now.
func TestDeadlineAfterStartIsAcceptedConsistently(t *testing.T) {
	e := testEvent()
	deadline := e.StartTime.Add(2 * time.Hour)
	e.VotingDeadline = &deadline

	if err := e.Validate(); err != nil {
		t.Fatalf("late deadline rejected: %v", err)
	}
	// still votable after the event started, deadline not yet passed
	if err := e.Accept(1, e.StartTime.Add(time.Hour)); err != nil {
		t.Fatalf("accept before late deadline: %v", err)
	}
	if err := e.Decline(2, "sick", deadline.Add(time.Minute)); !errors.Is(err, ErrDeadlinePassed) {
		t.Fatalf("after late deadline: got %v", err)
	}
}
