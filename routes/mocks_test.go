package routes

import (
	"errors"
	"sort"

	"teamevents/models"
)

type mockUserRepo struct {
	users map[string]models.User // keyed by email
}

func (m *mockUserRepo) Create(u *models.User) error {
	if _, ok := m.users[u.Email]; ok {
		return errors.New("dup")
	}
	u.ID = int64(len(m.users) + 1)
	m.users[u.Email] = *u
	return nil
}

func (m *mockUserRepo) ValidateCredentials(email, plain string) (models.User, error) {
	u, ok := m.users[email]
	if !ok {
		return models.User{}, errors.New("not found")
	}
	// plain comparison is enough for the route tests
	if u.Password != plain {
		return models.User{}, errors.New("bad")
	}
	return u, nil
}

func (m *mockUserRepo) GetByID(id int64) (models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, models.ErrNotFound
}

func (m *mockUserRepo) GetByIDs(ids []int64) (map[int64]models.User, error) {
	out := map[int64]models.User{}
	for _, u := range m.users {
		for _, id := range ids {
			if u.ID == id {
				out[id] = u
			}
		}
	}
	return out, nil
}

type mockTeamRepo struct {
	teams map[string]models.Team
}

func (m *mockTeamRepo) Create(t *models.Team) error {
	if t.ID == "" {
		t.ID = "team-mock"
	}
	m.teams[t.ID] = *t
	return nil
}

func (m *mockTeamRepo) GetAll() ([]models.Team, error) {
	out := make([]models.Team, 0, len(m.teams))
	for _, t := range m.teams {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockTeamRepo) GetByID(id string) (models.Team, error) {
	t, ok := m.teams[id]
	if !ok {
		return models.Team{}, models.ErrNotFound
	}
	return t, nil
}

func (m *mockTeamRepo) AddPlayer(teamID string, playerID int64) error {
	t, ok := m.teams[teamID]
	if !ok {
		return models.ErrNotFound
	}
	for _, id := range t.PlayerIDs {
		if id == playerID {
			return errors.New("dup")
		}
	}
	t.PlayerIDs = append(t.PlayerIDs, playerID)
	m.teams[teamID] = t
	return nil
}

func (m *mockTeamRepo) RemovePlayer(teamID string, playerID int64) error {
	t, ok := m.teams[teamID]
	if !ok {
		return models.ErrNotFound
	}
	kept := t.PlayerIDs[:0]
	for _, id := range t.PlayerIDs {
		if id != playerID {
			kept = append(kept, id)
		}
	}
	t.PlayerIDs = kept
	m.teams[teamID] = t
	return nil
}

func (m *mockTeamRepo) CoachesAny(userID int64, teamIDs []string) (bool, error) {
	for _, tid := range teamIDs {
		if t, ok := m.teams[tid]; ok {
			for _, cid := range t.CoachIDs {
				if cid == userID {
					return true, nil
				}
			}
		}
	}
	return false, nil
}

func (m *mockTeamRepo) TeamsOfPlayer(playerID int64) ([]string, error) {
	out := []string{}
	for id, t := range m.teams {
		for _, pid := range t.PlayerIDs {
			if pid == playerID {
				out = append(out, id)
			}
		}
	}
	return out, nil
}

type mockEventRepo struct {
	items map[string]models.Event
}

func (m *mockEventRepo) GetAll(f models.EventFilter) ([]models.Event, error) {
	out := []models.Event{}
	for _, e := range m.items {
		if f.TeamID != "" {
			onTeam := false
			for _, id := range e.TeamIDs {
				if id == f.TeamID {
					onTeam = true
				}
			}
			if !onTeam {
				continue
			}
		}
		if f.Start != nil && e.StartTime.Before(*f.Start) {
			continue
		}
		if f.End != nil && e.StartTime.After(*f.End) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockEventRepo) GetByID(id string) (models.Event, error) {
	e, ok := m.items[id]
	if !ok {
		return models.Event{}, models.ErrNotFound
	}
	return e, nil
}

func (m *mockEventRepo) GetByGroupID(groupID string) ([]models.Event, error) {
	out := []models.Event{}
	for _, e := range m.items {
		if e.RecurringGroupID == groupID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (m *mockEventRepo) Create(e *models.Event) error {
	m.items[e.ID] = *e
	return nil
}

func (m *mockEventRepo) CreateMany(events []models.Event) error {
	for _, e := range events {
		m.items[e.ID] = e
	}
	return nil
}

func (m *mockEventRepo) Update(e *models.Event) error {
	if _, ok := m.items[e.ID]; !ok {
		return models.ErrNotFound
	}
	m.items[e.ID] = *e
	return nil
}

func (m *mockEventRepo) Delete(id string) error {
	delete(m.items, id)
	return nil
}

func (m *mockEventRepo) DeleteByGroupID(groupID string) error {
	for id, e := range m.items {
		if e.RecurringGroupID == groupID {
			delete(m.items, id)
		}
	}
	return nil
}
