package routes

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"teamevents/models"
)

func TestAcceptFlow(t *testing.T) {
	d := setupServerWithDeps(t)
	seedTeam(d, "team1")
	seedEvent(d, "ev1")
	token := authToken(t, 2)

	w := doReq(d.s, http.MethodPost, "/events/ev1/accept", "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("accept got %d: %s", w.Code, w.Body.String())
	}

	stored := d.er.items["ev1"]
	if len(stored.AttendingPlayers) != 1 || stored.AttendingPlayers[0] != 2 {
		t.Fatalf("attending wrong: %+v", stored.AttendingPlayers)
	}
	for _, id := range stored.InvitedPlayers {
		if id == 2 {
			t.Fatalf("player must leave the invited set")
		}
	}
}

func TestDeclineRequiresReason(t *testing.T) {
	d := setupServerWithDeps(t)
	seedTeam(d, "team1")
	seedEvent(d, "ev1")
	token := authToken(t, 2)

	w := doReq(d.s, http.MethodPost, "/events/ev1/decline", `{"reason":"  "}`, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d: %s", w.Code, w.Body.String())
	}

	w = doReq(d.s, http.MethodPost, "/events/ev1/decline", `{"reason":"krank"}`, token)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", w.Code, w.Body.String())
	}
	stored := d.er.items["ev1"]
	if len(stored.DeclinedPlayers) != 1 || stored.DeclinedPlayers[0].Reason != "krank" {
		t.Fatalf("declined wrong: %+v", stored.DeclinedPlayers)
	}
}

func TestVoteAfterDeadlineConflicts(t *testing.T) {
	d := setupServerWithDeps(t)
	seedTeam(d, "team1")
	ev := seedEvent(d, "ev1")
	past := time.Now().Add(-time.Hour)
	ev.VotingDeadline = &past
	d.er.items["ev1"] = ev

	w := doReq(d.s, http.MethodPost, "/events/ev1/accept", "", authToken(t, 2))
	if w.Code != http.StatusConflict {
		t.Fatalf("want 409, got %d: %s", w.Code, w.Body.String())
	}
	if len(d.er.items["ev1"].AttendingPlayers) != 0 {
		t.Fatalf("late vote must not be stored")
	}
}

func TestGuestAdministration(t *testing.T) {
	d := setupServerWithDeps(t)
	seedTeam(d, "team1")
	seedEvent(d, "ev1")
	coach := authToken(t, 1)

	w := doReq(d.s, http.MethodPost, "/events/ev1/guests",
		`{"playerId":42,"fromTeamId":"team2"}`, coach)
	if w.Code != http.StatusOK {
		t.Fatalf("add guest got %d: %s", w.Code, w.Body.String())
	}

	// adding an invited player as guest conflicts
	w = doReq(d.s, http.MethodPost, "/events/ev1/guests",
		`{"playerId":2,"fromTeamId":"team2"}`, coach)
	if w.Code != http.StatusConflict {
		t.Fatalf("want 409, got %d: %s", w.Code, w.Body.String())
	}

	// players cannot manage guests
	w = doReq(d.s, http.MethodPost, "/events/ev1/guests",
		`{"playerId":43,"fromTeamId":"team2"}`, authToken(t, 2))
	if w.Code != http.StatusForbidden {
		t.Fatalf("want 403, got %d: %s", w.Code, w.Body.String())
	}

	w = doReq(d.s, http.MethodDelete, "/events/ev1/guests/42", "", coach)
	if w.Code != http.StatusOK {
		t.Fatalf("remove guest got %d: %s", w.Code, w.Body.String())
	}
	if len(d.er.items["ev1"].GuestPlayers) != 0 {
		t.Fatalf("guest not removed: %+v", d.er.items["ev1"].GuestPlayers)
	}
}

func TestUninviteSurfacesDistinctState(t *testing.T) {
	d := setupServerWithDeps(t)
	seedTeam(d, "team1")
	seedEvent(d, "ev1")

	w := doReq(d.s, http.MethodDelete, "/events/ev1/invitedPlayers/2", "", authToken(t, 1))
	if w.Code != http.StatusOK {
		t.Fatalf("uninvite got %d: %s", w.Code, w.Body.String())
	}

	// the uninvited player sees the distinct state
	w = doReq(d.s, http.MethodGet, "/events/ev1/my-status", "", authToken(t, 2))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"uninvited"`) {
		t.Fatalf("my-status got %d: %s", w.Code, w.Body.String())
	}

	// a stranger resolves to unknown
	w = doReq(d.s, http.MethodGet, "/events/ev1/my-status", "", authToken(t, 77))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"unknown"`) {
		t.Fatalf("stranger my-status got %d: %s", w.Code, w.Body.String())
	}
}

func TestPendingView(t *testing.T) {
	d := setupServerWithDeps(t)
	seedTeam(d, "team1")
	seedEvent(d, "ev1") // player 2 invited, future

	// past event never shows up
	past := seedEvent(d, "old")
	past.StartTime = time.Now().Add(-48 * time.Hour)
	past.EndTime = past.StartTime.Add(2 * time.Hour)
	d.er.items["old"] = past

	w := doReq(d.s, http.MethodGet, "/views/pending", "", authToken(t, 2))
	if w.Code != http.StatusOK {
		t.Fatalf("pending got %d: %s", w.Code, w.Body.String())
	}
	var got []models.Event
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(got) != 1 || got[0].ID != "ev1" {
		t.Fatalf("pending = %+v", got)
	}
}

func TestPositionStatsRoute(t *testing.T) {
	d := setupServerWithDeps(t)
	seedTeam(d, "team1")
	ev := seedEvent(d, "ev1")
	ev.AttendingPlayers = []int64{1, 2}
	d.er.items["ev1"] = ev
	d.ur.users["a@b.com"] = models.User{ID: 1, Position: "Libero"}
	d.ur.users["c@d.com"] = models.User{ID: 2, Position: "Libero"}

	w := doReq(d.s, http.MethodGet, "/events/ev1/position-stats", "", authToken(t, 2))
	if w.Code != http.StatusOK {
		t.Fatalf("stats got %d: %s", w.Code, w.Body.String())
	}
	var stats []models.PositionCount
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(stats) != 1 || stats[0].Count != 2 || stats[0].Percent != 100 {
		t.Fatalf("stats = %+v", stats)
	}
}
