package routes

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"teamevents/logger"
	"teamevents/middlewares"
	"teamevents/models"
	"teamevents/utils"
)

// deps is the dependency container the handlers hang off.
type deps struct {
	users  models.UserRepository
	teams  models.TeamRepository
	events models.EventRepository
	inv    *utils.CacheInvalidator
}

// RegisterRoutes wires repositories, limiters and the route table onto the
// engine. Redis backs the per-user daily quota; inv purges cached event
// responses after every mutation.
func RegisterRoutes(
	server *gin.Engine,
	u models.UserRepository,
	t models.TeamRepository,
	e models.EventRepository,
	rdb *redis.Client,
	inv *utils.CacheInvalidator,
) {
	d := &deps{users: u, teams: t, events: e, inv: inv}

	// global IP limiter
	globalLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
		RPS:     20,
		Burst:   40,
		IdleTTL: 3 * time.Minute,
	})
	server.Use(globalLimiter.Middleware(func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	}))

	// stricter limiter on the credential endpoints
	authLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
		RPS:     0.5,
		Burst:   2,
		IdleTTL: 10 * time.Minute,
	})
	server.POST("/signup",
		authLimiter.Middleware(func(c *gin.Context) string { return "signup:" + c.ClientIP() }),
		d.signup,
	)
	server.POST("/login",
		authLimiter.Middleware(func(c *gin.Context) string { return "login:" + c.ClientIP() }),
		d.login,
	)

	// public reads, served through the response cache mounted in main
	server.GET("/events", d.getEvents)
	server.GET("/events/:id", d.getEvent)

	// authenticated group: token check, per-user limiter, daily quota
	auth := server.Group("/")
	auth.Use(middlewares.Authenticate)

	userLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
		RPS:     5,
		Burst:   10,
		IdleTTL: 10 * time.Minute,
	})
	auth.Use(userLimiter.Middleware(func(c *gin.Context) string {
		return "u:" + strconv.FormatInt(c.GetInt64("userId"), 10)
	}))

	auth.Use(middlewares.Quota(rdb, middlewares.QuotaRule{
		Limit:  2000,
		Window: 24 * time.Hour,
		KeyFn: func(c *gin.Context) string {
			uid := c.GetInt64("userId")
			if uid == 0 {
				return ""
			}
			return fmt.Sprintf("quota:user:%d:day", uid)
		},
	}))

	// event administration (coach)
	auth.POST("/events", d.createEvent)
	auth.PUT("/events/:id", d.updateEvent)
	auth.DELETE("/events/:id", d.deleteEvent)
	auth.GET("/events/:id/can-edit", d.canEdit)

	// attendance responses (player)
	auth.POST("/events/:id/accept", d.acceptEvent)
	auth.POST("/events/:id/decline", d.declineEvent)
	auth.POST("/events/:id/unsure", d.unsureEvent)

	// guest and invitation administration (coach)
	auth.POST("/events/:id/guests", d.addGuest)
	auth.DELETE("/events/:id/guests/:playerId", d.removeGuest)
	auth.DELETE("/events/:id/invitedPlayers/:playerId", d.uninvitePlayer)

	// derived views
	auth.GET("/events/:id/position-stats", d.positionStats)
	auth.GET("/events/:id/my-status", d.myStatus)
	auth.GET("/views/upcoming", d.upcomingEvents)
	auth.GET("/views/past", d.pastEvents)
	auth.GET("/views/pending", d.pendingEvents)

	// teams
	auth.POST("/teams", d.createTeam)
	auth.GET("/teams", d.getTeams)
	auth.GET("/teams/:id", d.getTeam)
	auth.POST("/teams/:id/players", d.addTeamPlayer)
	auth.DELETE("/teams/:id/players/:playerId", d.removeTeamPlayer)
}

// respondErr maps the error taxonomy onto HTTP statuses, keeping the
// message field every consumer reads. Unexpected errors are logged and
// hidden behind a generic message.
func respondErr(c *gin.Context, err error) {
	switch {
	case models.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, models.ErrDeadlinePassed),
		errors.Is(err, models.ErrAlreadyGuest),
		errors.Is(err, models.ErrGuestConflict),
		errors.Is(err, models.ErrIsGuest):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found."})
	case errors.Is(err, models.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized."})
	default:
		logger.Log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong. Try again later."})
	}
}

// requireCoach resolves 403 unless the user coaches one of the teams.
func (d *deps) requireCoach(userID int64, teamIDs []string) error {
	ok, err := d.teams.CoachesAny(userID, teamIDs)
	if err != nil {
		return err
	}
	if !ok {
		return models.ErrNotAuthorized
	}
	return nil
}
