package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"teamevents/models"
)

// eventPayload is the create/update body. Update additionally honors the
// recurring flags.
type eventPayload struct {
	Title            string                  `json:"title"`
	Type             models.EventType        `json:"type"`
	Location         string                  `json:"location"`
	Description      string                  `json:"description"`
	Notes            string                  `json:"notes"`
	StartTime        time.Time               `json:"startTime" binding:"required"`
	EndTime          time.Time               `json:"endTime" binding:"required"`
	VotingDeadline   *time.Time              `json:"votingDeadline"`
	TeamIDs          []string                `json:"teamIds"`
	OrganizingTeamID string                  `json:"organizingTeamId"`
	OpenAccess       bool                    `json:"isOpenAccess"`
	InvitedPlayers   []int64                 `json:"invitedPlayers"`
	IsRecurring      bool                    `json:"isRecurring"`
	RecurringPattern models.RecurringPattern `json:"recurringPattern"`
	RecurringEndDate *time.Time              `json:"recurringEndDate"`

	UpdateRecurring    bool `json:"updateRecurring"`
	ConvertToRecurring bool `json:"convertToRecurring"`
	Weekday            *int `json:"weekday"` // 0 = Monday
}

func (p *eventPayload) toEvent(createdBy int64) models.Event {
	org := p.OrganizingTeamID
	if org == "" && len(p.TeamIDs) == 1 {
		org = p.TeamIDs[0]
	}
	return models.Event{
		ID:               uuid.NewString(),
		Title:            p.Title,
		Type:             p.Type,
		Location:         p.Location,
		Description:      p.Description,
		Notes:            p.Notes,
		StartTime:        p.StartTime,
		EndTime:          p.EndTime,
		VotingDeadline:   p.VotingDeadline,
		TeamIDs:          p.TeamIDs,
		OrganizingTeamID: org,
		OpenAccess:       p.OpenAccess,
		InvitedPlayers:   p.InvitedPlayers,
		IsRecurring:      p.IsRecurring,
		RecurringPattern: p.RecurringPattern,
		RecurringEndDate: p.RecurringEndDate,
		CreatedBy:        createdBy,
	}
}

func (d *deps) purgeEvent(c *gin.Context, id string) {
	if d.inv != nil {
		d.inv.PurgeEventsList(c)
		d.inv.PurgeEventItem(c, id)
	}
}

// GET /events?teamId&startDate&endDate
func (d *deps) getEvents(c *gin.Context) {
	filter := models.EventFilter{TeamID: c.Query("teamId")}
	if v := c.Query("startDate"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "startDate must be RFC3339."})
			return
		}
		filter.Start = &ts
	}
	if v := c.Query("endDate"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "endDate must be RFC3339."})
			return
		}
		filter.End = &ts
	}

	events, err := d.events.GetAll(filter)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// GET /events/:id
func (d *deps) getEvent(c *gin.Context) {
	event, err := d.events.GetByID(c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// POST /events
//
// One team: a single event (or a whole series when isRecurring). Several
// teams: one independent event per team with no shared group id.
func (d *deps) createEvent(c *gin.Context) {
	var p eventPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}
	uid := c.GetInt64("userId")

	if len(p.TeamIDs) > 1 && !p.IsRecurring {
		created := make([]models.Event, 0, len(p.TeamIDs))
		for _, teamID := range p.TeamIDs {
			clone := p
			clone.TeamIDs = []string{teamID}
			clone.OrganizingTeamID = teamID
			ev := clone.toEvent(uid)
			if err := ev.Validate(); err != nil {
				respondErr(c, err)
				return
			}
			if err := d.requireCoach(uid, []string{teamID}); err != nil {
				respondErr(c, err)
				return
			}
			created = append(created, ev)
		}
		if err := d.events.CreateMany(created); err != nil {
			respondErr(c, err)
			return
		}
		d.purgeEvent(c, "")
		c.JSON(http.StatusCreated, gin.H{"message": "events created!", "events": created})
		return
	}

	event := p.toEvent(uid)
	if err := event.Validate(); err != nil {
		respondErr(c, err)
		return
	}
	if err := d.requireCoach(uid, []string{event.OrganizingTeamID}); err != nil {
		respondErr(c, err)
		return
	}

	if event.IsRecurring {
		instances, err := models.MaterializeSeries(&event)
		if err != nil {
			respondErr(c, err)
			return
		}
		if err := d.events.Create(&event); err != nil {
			respondErr(c, err)
			return
		}
		if err := d.events.CreateMany(instances); err != nil {
			respondErr(c, err)
			return
		}
		d.purgeEvent(c, event.ID)
		c.JSON(http.StatusCreated, gin.H{"message": "event series created!", "mainEvent": event, "events": instances})
		return
	}

	if err := d.events.Create(&event); err != nil {
		respondErr(c, err)
		return
	}
	d.purgeEvent(c, event.ID)
	c.JSON(http.StatusCreated, gin.H{"message": "event created!", "event": event})
}

// PUT /events/:id
//
// updateRecurring cascades the edit across every instance sharing the
// group id (each keeps its own date); convertToRecurring expands a single
// event into a series. A plain edit of a series member leaves it attached
// to its group and lets it diverge.
func (d *deps) updateEvent(c *gin.Context) {
	id := c.Param("id")
	uid := c.GetInt64("userId")

	old, err := d.events.GetByID(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	if err := d.requireCoach(uid, old.TeamIDs); err != nil {
		respondErr(c, err)
		return
	}

	var p eventPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}

	updated := old
	updated.Title = p.Title
	updated.Type = p.Type
	updated.Location = p.Location
	updated.Description = p.Description
	updated.Notes = p.Notes
	updated.StartTime = p.StartTime
	updated.EndTime = p.EndTime
	updated.VotingDeadline = p.VotingDeadline
	updated.OpenAccess = p.OpenAccess
	if len(p.TeamIDs) > 0 {
		updated.TeamIDs = p.TeamIDs
	}
	if p.OrganizingTeamID != "" {
		updated.OrganizingTeamID = p.OrganizingTeamID
	}
	if err := updated.Validate(); err != nil {
		respondErr(c, err)
		return
	}

	switch {
	case p.UpdateRecurring && old.RecurringGroupID != "":
		group, err := d.events.GetByGroupID(old.RecurringGroupID)
		if err != nil {
			respondErr(c, err)
			return
		}
		edit := models.SeriesEdit{
			Title:       updated.Title,
			Type:        updated.Type,
			Location:    updated.Location,
			Description: updated.Description,
			Notes:       updated.Notes,
			OpenAccess:  updated.OpenAccess,
			StartClock:  updated.StartTime,
			EndClock:    updated.EndTime,
		}
		if p.Weekday != nil {
			// payload weekday is Monday-based
			wd := time.Weekday((*p.Weekday + 1) % 7)
			edit.Weekday = &wd
		}
		for i := range group {
			models.ApplySeriesEdit(&group[i], edit)
			if err := d.events.Update(&group[i]); err != nil {
				respondErr(c, err)
				return
			}
		}
		d.purgeEvent(c, id)
		c.JSON(http.StatusOK, gin.H{"message": "Event series updated successfully!", "events": group})

	case p.ConvertToRecurring && old.RecurringGroupID == "":
		updated.IsRecurring = true
		updated.RecurringPattern = p.RecurringPattern
		updated.RecurringEndDate = p.RecurringEndDate
		if err := updated.Validate(); err != nil {
			respondErr(c, err)
			return
		}
		instances, err := models.MaterializeSeries(&updated)
		if err != nil {
			respondErr(c, err)
			return
		}
		if err := d.events.Update(&updated); err != nil {
			respondErr(c, err)
			return
		}
		if err := d.events.CreateMany(instances); err != nil {
			respondErr(c, err)
			return
		}
		d.purgeEvent(c, id)
		c.JSON(http.StatusOK, gin.H{"message": "Event converted to series!", "mainEvent": updated, "events": instances})

	default:
		if err := d.events.Update(&updated); err != nil {
			respondErr(c, err)
			return
		}
		d.purgeEvent(c, id)
		c.JSON(http.StatusOK, gin.H{"message": "Event updated successfully!", "event": updated})
	}
}

// DELETE /events/:id?deleteRecurring=true|false
func (d *deps) deleteEvent(c *gin.Context) {
	id := c.Param("id")
	uid := c.GetInt64("userId")

	ev, err := d.events.GetByID(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	if err := d.requireCoach(uid, ev.TeamIDs); err != nil {
		respondErr(c, err)
		return
	}

	if c.Query("deleteRecurring") == "true" && ev.RecurringGroupID != "" {
		if err := d.events.DeleteByGroupID(ev.RecurringGroupID); err != nil {
			respondErr(c, err)
			return
		}
	} else if err := d.events.Delete(id); err != nil {
		respondErr(c, err)
		return
	}

	d.purgeEvent(c, id)
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully!"})
}

// GET /events/:id/can-edit
func (d *deps) canEdit(c *gin.Context) {
	ev, err := d.events.GetByID(c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	ok, err := d.teams.CoachesAny(c.GetInt64("userId"), ev.TeamIDs)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"canEdit": ok})
}
