package models

import (
	"strings"
	"time"
)

type EventType string

const (
	EventTraining EventType = "training"
	EventGame     EventType = "game"
)

type TeamType string

const (
	TeamAdult TeamType = "adult"
	TeamYouth TeamType = "youth"
)

type Role string

const (
	RolePlayer      Role = "player"
	RoleYouthPlayer Role = "youth_player"
	RoleCoach       Role = "coach"
)

type RecurringPattern string

const (
	PatternWeekly   RecurringPattern = "weekly"
	PatternBiweekly RecurringPattern = "biweekly"
	PatternMonthly  RecurringPattern = "monthly"
)

// ResponseEntry is a declined/unsure vote together with the reason the
// player gave.
type ResponseEntry struct {
	PlayerID    int64     `json:"playerId" bson:"playerId"`
	Reason      string    `json:"reason" bson:"reason"`
	RespondedAt time.Time `json:"respondedAt" bson:"respondedAt"`
}

// Guest is a player brought into an event from outside the event's teams.
type Guest struct {
	PlayerID   int64  `json:"playerId" bson:"playerId"`
	FromTeamID string `json:"fromTeamId" bson:"fromTeamId"`
}

// Event is the canonical event record. The four response sets plus the
// guest set are mutually exclusive per player; UninvitedPlayers keeps the
// explicitly-uninvited ids so that state survives a refetch.
type Event struct {
	ID          string    `json:"id" bson:"id"`
	Title       string    `json:"title" bson:"title"`
	Type        EventType `json:"type" bson:"type"`
	Location    string    `json:"location" bson:"location"`
	Description string    `json:"description" bson:"description"`
	Notes       string    `json:"notes" bson:"notes"` // coach-only free text

	StartTime      time.Time  `json:"startTime" bson:"startTime"`
	EndTime        time.Time  `json:"endTime" bson:"endTime"`
	VotingDeadline *time.Time `json:"votingDeadline,omitempty" bson:"votingDeadline"`

	TeamIDs          []string `json:"teamIds" bson:"teamIds"`
	OrganizingTeamID string   `json:"organizingTeamId" bson:"organizingTeamId"`
	OpenAccess       bool     `json:"isOpenAccess" bson:"isOpenAccess"`

	InvitedPlayers   []int64         `json:"invitedPlayers" bson:"invitedPlayers"`
	AttendingPlayers []int64         `json:"attendingPlayers" bson:"attendingPlayers"`
	DeclinedPlayers  []ResponseEntry `json:"declinedPlayers" bson:"declinedPlayers"`
	UnsurePlayers    []ResponseEntry `json:"unsurePlayers" bson:"unsurePlayers"`
	GuestPlayers     []Guest         `json:"guestPlayers" bson:"guestPlayers"`
	UninvitedPlayers []int64         `json:"uninvitedPlayers" bson:"uninvitedPlayers"`

	IsRecurring         bool             `json:"isRecurring" bson:"isRecurring"`
	IsRecurringInstance bool             `json:"isRecurringInstance" bson:"isRecurringInstance"`
	RecurringGroupID    string           `json:"recurringGroupId,omitempty" bson:"recurringGroupId"`
	RecurringPattern    RecurringPattern `json:"recurringPattern,omitempty" bson:"recurringPattern"`
	RecurringEndDate    *time.Time       `json:"recurringEndDate,omitempty" bson:"recurringEndDate"`

	CreatedBy int64 `json:"createdBy" bson:"createdBy"`
}

// Validate checks the creation/edit rules that must hold before the event
// touches any store. The voting deadline is deliberately not compared with
// the start time: a deadline after the start is accepted as given.
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return &ValidationError{Field: "title", Msg: "title must not be empty"}
	}
	if strings.TrimSpace(e.Location) == "" {
		return &ValidationError{Field: "location", Msg: "location must not be empty"}
	}
	if e.Type != EventTraining && e.Type != EventGame {
		return &ValidationError{Field: "type", Msg: "type must be training or game"}
	}
	if !e.EndTime.After(e.StartTime) {
		return &ValidationError{Field: "endTime", Msg: "end time must be after start time"}
	}
	if len(e.TeamIDs) == 0 {
		return &ValidationError{Field: "teamIds", Msg: "at least one team is required"}
	}
	if e.OrganizingTeamID == "" {
		return &ValidationError{Field: "organizingTeamId", Msg: "organizing team is required"}
	}
	found := false
	for _, id := range e.TeamIDs {
		if id == e.OrganizingTeamID {
			found = true
			break
		}
	}
	if !found {
		return &ValidationError{Field: "organizingTeamId", Msg: "organizing team must be one of the event's teams"}
	}
	if e.IsRecurring {
		switch e.RecurringPattern {
		case PatternWeekly, PatternBiweekly, PatternMonthly:
		default:
			return &ValidationError{Field: "recurringPattern", Msg: "recurring pattern must be weekly, biweekly or monthly"}
		}
		if e.RecurringEndDate == nil {
			return &ValidationError{Field: "recurringEndDate", Msg: "recurring end date is required"}
		}
		if e.RecurringEndDate.Before(e.StartTime) {
			return &ValidationError{Field: "recurringEndDate", Msg: "recurring end date must not be before the start time"}
		}
	}
	return nil
}

type User struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	Password  string     `json:"-"`
	Name      string     `json:"name"`
	Role      Role       `json:"role"`
	Position  string     `json:"position,omitempty"`
	BirthDate *time.Time `json:"birthDate,omitempty"`
}

type Team struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Type      TeamType `json:"type"`
	PlayerIDs []int64  `json:"playerIds"`
	CoachIDs  []int64  `json:"coachIds"`
}

// EventFilter narrows GetAll; zero values mean "no constraint".
type EventFilter struct {
	TeamID string
	Start  *time.Time
	End    *time.Time
}

// ===== Events =====
type EventRepository interface {
	GetAll(f EventFilter) ([]Event, error)
	GetByID(id string) (Event, error)
	GetByGroupID(groupID string) ([]Event, error)
	Create(e *Event) error
	CreateMany(events []Event) error
	Update(e *Event) error
	Delete(id string) error
	DeleteByGroupID(groupID string) error
}

// ===== Users =====
type UserRepository interface {
	Create(u *User) error
	ValidateCredentials(email, plain string) (User, error)
	GetByID(id int64) (User, error)
	GetByIDs(ids []int64) (map[int64]User, error)
}

// ===== Teams =====
type TeamRepository interface {
	Create(t *Team) error
	GetAll() ([]Team, error)
	GetByID(id string) (Team, error)
	AddPlayer(teamID string, playerID int64) error
	RemovePlayer(teamID string, playerID int64) error
	// CoachesAny reports whether the user coaches at least one of the teams.
	CoachesAny(userID int64, teamIDs []string) (bool, error)
	// TeamsOfPlayer returns the ids of every team the player is rostered on.
	TeamsOfPlayer(playerID int64) ([]string, error)
}
