package routes

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"teamevents/models"
)

// withEvent fetches the event, applies fn and persists the result; the
// refetched record goes back to the caller so the client state can be
// replaced wholesale.
func (d *deps) withEvent(c *gin.Context, fn func(ev *models.Event) error) {
	ev, err := d.events.GetByID(c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	if err := fn(&ev); err != nil {
		respondErr(c, err)
		return
	}
	if err := d.events.Update(&ev); err != nil {
		respondErr(c, err)
		return
	}
	d.purgeEvent(c, ev.ID)
	c.JSON(http.StatusOK, gin.H{"message": "ok", "event": ev})
}

type reasonBody struct {
	Reason string `json:"reason"`
}

// POST /events/:id/accept
func (d *deps) acceptEvent(c *gin.Context) {
	uid := c.GetInt64("userId")
	d.withEvent(c, func(ev *models.Event) error {
		return ev.Accept(uid, time.Now())
	})
}

// POST /events/:id/decline
func (d *deps) declineEvent(c *gin.Context) {
	uid := c.GetInt64("userId")
	var body reasonBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}
	d.withEvent(c, func(ev *models.Event) error {
		return ev.Decline(uid, body.Reason, time.Now())
	})
}

// POST /events/:id/unsure
func (d *deps) unsureEvent(c *gin.Context) {
	uid := c.GetInt64("userId")
	var body reasonBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}
	d.withEvent(c, func(ev *models.Event) error {
		return ev.MarkUnsure(uid, body.Reason, time.Now())
	})
}

// POST /events/:id/guests
func (d *deps) addGuest(c *gin.Context) {
	uid := c.GetInt64("userId")
	var body struct {
		PlayerID   int64  `json:"playerId" binding:"required"`
		FromTeamID string `json:"fromTeamId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}
	d.withEvent(c, func(ev *models.Event) error {
		if err := d.requireCoach(uid, ev.TeamIDs); err != nil {
			return err
		}
		return ev.AddGuest(body.PlayerID, body.FromTeamID)
	})
}

func parsePlayerID(c *gin.Context) (int64, bool) {
	pid, err := strconv.ParseInt(c.Param("playerId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "playerId must be numeric."})
		return 0, false
	}
	return pid, true
}

// DELETE /events/:id/guests/:playerId
func (d *deps) removeGuest(c *gin.Context) {
	uid := c.GetInt64("userId")
	pid, ok := parsePlayerID(c)
	if !ok {
		return
	}
	d.withEvent(c, func(ev *models.Event) error {
		if err := d.requireCoach(uid, ev.TeamIDs); err != nil {
			return err
		}
		ev.RemoveGuest(pid)
		return nil
	})
}

// DELETE /events/:id/invitedPlayers/:playerId
func (d *deps) uninvitePlayer(c *gin.Context) {
	uid := c.GetInt64("userId")
	pid, ok := parsePlayerID(c)
	if !ok {
		return
	}
	d.withEvent(c, func(ev *models.Event) error {
		if err := d.requireCoach(uid, ev.TeamIDs); err != nil {
			return err
		}
		ev.Uninvite(pid)
		return nil
	})
}
