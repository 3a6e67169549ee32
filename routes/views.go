package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"teamevents/models"
)

// GET /views/upcoming?teamId
func (d *deps) upcomingEvents(c *gin.Context) {
	events, err := d.events.GetAll(models.EventFilter{TeamID: c.Query("teamId")})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, models.UpcomingEvents(events, time.Now()))
}

// GET /views/past?teamId
func (d *deps) pastEvents(c *gin.Context) {
	events, err := d.events.GetAll(models.EventFilter{TeamID: c.Query("teamId")})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, models.PastEvents(events, time.Now()))
}

// GET /views/pending — future events still waiting for the caller's vote.
func (d *deps) pendingEvents(c *gin.Context) {
	uid := c.GetInt64("userId")

	events, err := d.events.GetAll(models.EventFilter{})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, models.PendingForPlayer(events, uid, time.Now()))
}

// GET /events/:id/my-status — the caller's resolved attendance state,
// including the uninvited-vs-unknown distinction.
func (d *deps) myStatus(c *gin.Context) {
	uid := c.GetInt64("userId")

	ev, err := d.events.GetByID(c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	memberTeams, err := d.teams.TeamsOfPlayer(uid)
	if err != nil {
		respondErr(c, err)
		return
	}
	member := false
	for _, teamID := range ev.TeamIDs {
		for _, mine := range memberTeams {
			if teamID == mine {
				member = true
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": ev.StatusOf(uid, member)})
}

// GET /events/:id/position-stats
func (d *deps) positionStats(c *gin.Context) {
	ev, err := d.events.GetByID(c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	players, err := d.users.GetByIDs(ev.AttendingPlayers)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, models.PositionStatistics(ev, players))
}
