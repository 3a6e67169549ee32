package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"teamevents/models"
)

// POST /teams — the creator becomes a coach of the new team.
func (d *deps) createTeam(c *gin.Context) {
	var req struct {
		Name      string          `json:"name"`
		Type      models.TeamType `json:"type"`
		PlayerIDs []int64         `json:"playerIds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondErr(c, &models.ValidationError{Field: "name", Msg: "name must not be empty"})
		return
	}
	if req.Type != models.TeamAdult && req.Type != models.TeamYouth {
		respondErr(c, &models.ValidationError{Field: "type", Msg: "type must be adult or youth"})
		return
	}

	team := models.Team{
		Name:      req.Name,
		Type:      req.Type,
		PlayerIDs: req.PlayerIDs,
		CoachIDs:  []int64{c.GetInt64("userId")},
	}
	if err := d.teams.Create(&team); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "team created!", "team": team})
}

// GET /teams
func (d *deps) getTeams(c *gin.Context) {
	teams, err := d.teams.GetAll()
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, teams)
}

// GET /teams/:id
func (d *deps) getTeam(c *gin.Context) {
	team, err := d.teams.GetByID(c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, team)
}

// POST /teams/:id/players
func (d *deps) addTeamPlayer(c *gin.Context) {
	teamID := c.Param("id")
	if err := d.requireCoach(c.GetInt64("userId"), []string{teamID}); err != nil {
		respondErr(c, err)
		return
	}

	var req struct {
		PlayerID int64 `json:"playerId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}
	if err := d.teams.AddPlayer(teamID, req.PlayerID); err != nil {
		c.JSON(http.StatusConflict, gin.H{"message": "Already on the roster or failed."})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "player added!"})
}

// DELETE /teams/:id/players/:playerId
func (d *deps) removeTeamPlayer(c *gin.Context) {
	teamID := c.Param("id")
	if err := d.requireCoach(c.GetInt64("userId"), []string{teamID}); err != nil {
		respondErr(c, err)
		return
	}
	pid, ok := parsePlayerID(c)
	if !ok {
		return
	}
	if err := d.teams.RemovePlayer(teamID, pid); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "player removed!"})
}
