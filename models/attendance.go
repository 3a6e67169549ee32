package models

import (
	"strings"
	"time"
)

// AttendanceStatus is the resolved relation between one player and one
// event. It is computed once per lookup instead of being re-derived from
// the raw arrays at every display site.
type AttendanceStatus string

const (
	StatusAttending  AttendanceStatus = "attending"
	StatusDeclined   AttendanceStatus = "declined"
	StatusUnsure     AttendanceStatus = "unsure"
	StatusInvited    AttendanceStatus = "invited"
	StatusGuest      AttendanceStatus = "guest"
	StatusUninvited  AttendanceStatus = "uninvited"
	StatusTeamMember AttendanceStatus = "team_member"
	StatusUnknown    AttendanceStatus = "unknown"
)

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []int64, id int64) []int64 {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func containsEntry(entries []ResponseEntry, id int64) bool {
	for _, e := range entries {
		if e.PlayerID == id {
			return true
		}
	}
	return false
}

func removeEntry(entries []ResponseEntry, id int64) []ResponseEntry {
	out := entries[:0]
	for _, e := range entries {
		if e.PlayerID != id {
			out = append(out, e)
		}
	}
	return out
}

func (e *Event) isGuest(playerID int64) bool {
	for _, g := range e.GuestPlayers {
		if g.PlayerID == playerID {
			return true
		}
	}
	return false
}

// deadlineGuard rejects response transitions once the voting deadline lies
// strictly in the past. Events without a deadline never lock.
func (e *Event) deadlineGuard(now time.Time) error {
	if e.VotingDeadline != nil && now.After(*e.VotingDeadline) {
		return ErrDeadlinePassed
	}
	return nil
}

// clearResponses drops the player from all four response sets and the
// uninvited marker. Every transition goes through here so a player id can
// never end up in two sets, and a vote after an uninvite leaves no stale
// marker behind.
func (e *Event) clearResponses(playerID int64) {
	e.InvitedPlayers = removeID(e.InvitedPlayers, playerID)
	e.AttendingPlayers = removeID(e.AttendingPlayers, playerID)
	e.DeclinedPlayers = removeEntry(e.DeclinedPlayers, playerID)
	e.UnsurePlayers = removeEntry(e.UnsurePlayers, playerID)
	e.UninvitedPlayers = removeID(e.UninvitedPlayers, playerID)
}

// Accept moves the player into the attending set. Guests are managed by the
// coach and cannot vote as native players.
func (e *Event) Accept(playerID int64, now time.Time) error {
	if err := e.deadlineGuard(now); err != nil {
		return err
	}
	if e.isGuest(playerID) {
		return ErrIsGuest
	}
	e.clearResponses(playerID)
	e.AttendingPlayers = append(e.AttendingPlayers, playerID)
	return nil
}

// Decline moves the player into the declined set. A non-empty reason is
// required.
func (e *Event) Decline(playerID int64, reason string, now time.Time) error {
	if err := e.deadlineGuard(now); err != nil {
		return err
	}
	if e.isGuest(playerID) {
		return ErrIsGuest
	}
	if strings.TrimSpace(reason) == "" {
		return &ValidationError{Field: "reason", Msg: "a reason is required to decline"}
	}
	e.clearResponses(playerID)
	e.DeclinedPlayers = append(e.DeclinedPlayers, ResponseEntry{PlayerID: playerID, Reason: reason, RespondedAt: now})
	return nil
}

// MarkUnsure moves the player into the unsure set, with the same reason
// rule as Decline.
func (e *Event) MarkUnsure(playerID int64, reason string, now time.Time) error {
	if err := e.deadlineGuard(now); err != nil {
		return err
	}
	if e.isGuest(playerID) {
		return ErrIsGuest
	}
	if strings.TrimSpace(reason) == "" {
		return &ValidationError{Field: "reason", Msg: "a reason is required to mark unsure"}
	}
	e.clearResponses(playerID)
	e.UnsurePlayers = append(e.UnsurePlayers, ResponseEntry{PlayerID: playerID, Reason: reason, RespondedAt: now})
	return nil
}

// AddGuest inserts a guest from another team. A player already present in
// any response set cannot also be a guest, and vice versa.
func (e *Event) AddGuest(playerID int64, fromTeamID string) error {
	if e.isGuest(playerID) {
		return ErrAlreadyGuest
	}
	if containsID(e.InvitedPlayers, playerID) ||
		containsID(e.AttendingPlayers, playerID) ||
		containsEntry(e.DeclinedPlayers, playerID) ||
		containsEntry(e.UnsurePlayers, playerID) {
		return ErrGuestConflict
	}
	e.GuestPlayers = append(e.GuestPlayers, Guest{PlayerID: playerID, FromTeamID: fromTeamID})
	return nil
}

func (e *Event) RemoveGuest(playerID int64) {
	out := e.GuestPlayers[:0]
	for _, g := range e.GuestPlayers {
		if g.PlayerID != playerID {
			out = append(out, g)
		}
	}
	e.GuestPlayers = out
}

// Uninvite removes the player from the invited set and any response set and
// records the id, so the player resolves to StatusUninvited afterwards
// rather than falling back to a neutral state.
func (e *Event) Uninvite(playerID int64) {
	e.clearResponses(playerID)
	if !containsID(e.UninvitedPlayers, playerID) {
		e.UninvitedPlayers = append(e.UninvitedPlayers, playerID)
	}
}

// StatusOf resolves the player's displayed status. The precedence order is
// fixed: attending, declined, unsure, invited, guest, uninvited, then the
// team-member/open-access fallback, then unknown. teamMember reports
// whether the player is rostered on one of the event's teams.
func (e *Event) StatusOf(playerID int64, teamMember bool) AttendanceStatus {
	switch {
	case containsID(e.AttendingPlayers, playerID):
		return StatusAttending
	case containsEntry(e.DeclinedPlayers, playerID):
		return StatusDeclined
	case containsEntry(e.UnsurePlayers, playerID):
		return StatusUnsure
	case containsID(e.InvitedPlayers, playerID):
		return StatusInvited
	case e.isGuest(playerID):
		return StatusGuest
	case containsID(e.UninvitedPlayers, playerID):
		return StatusUninvited
	case teamMember || e.OpenAccess:
		return StatusTeamMember
	default:
		return StatusUnknown
	}
}

// HasResponded reports whether the player already voted on the event.
func (e *Event) HasResponded(playerID int64) bool {
	return containsID(e.AttendingPlayers, playerID) ||
		containsEntry(e.DeclinedPlayers, playerID) ||
		containsEntry(e.UnsurePlayers, playerID)
}
