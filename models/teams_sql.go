package models

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type sqlTeamRepo struct{ db *sql.DB }

func NewSQLTeamRepository(db *sql.DB) TeamRepository { return &sqlTeamRepo{db} }

func (r *sqlTeamRepo) Create(t *Team) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO teams(id, name, type) VALUES ($1,$2,$3)`,
		t.ID, t.Name, t.Type); err != nil {
		return err
	}
	for _, pid := range t.PlayerIDs {
		if _, err := tx.Exec(`INSERT INTO team_players(team_id, player_id) VALUES ($1,$2)`,
			t.ID, pid); err != nil {
			return err
		}
	}
	for _, cid := range t.CoachIDs {
		if _, err := tx.Exec(`INSERT INTO team_coaches(team_id, coach_id) VALUES ($1,$2)`,
			t.ID, cid); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *sqlTeamRepo) GetAll() ([]Team, error) {
	rows, err := r.db.Query(`SELECT id, name, type FROM teams ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Team{}
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Type); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := r.loadMembers(&out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *sqlTeamRepo) GetByID(id string) (Team, error) {
	var t Team
	err := r.db.QueryRow(`SELECT id, name, type FROM teams WHERE id=$1`, id).
		Scan(&t.ID, &t.Name, &t.Type)
	if errors.Is(err, sql.ErrNoRows) {
		return Team{}, ErrNotFound
	}
	if err != nil {
		return Team{}, err
	}
	if err := r.loadMembers(&t); err != nil {
		return Team{}, err
	}
	return t, nil
}

func (r *sqlTeamRepo) loadMembers(t *Team) error {
	t.PlayerIDs = []int64{}
	t.CoachIDs = []int64{}

	rows, err := r.db.Query(`SELECT player_id FROM team_players WHERE team_id=$1 ORDER BY player_id`, t.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return err
		}
		t.PlayerIDs = append(t.PlayerIDs, id)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	crows, err := r.db.Query(`SELECT coach_id FROM team_coaches WHERE team_id=$1 ORDER BY coach_id`, t.ID)
	if err != nil {
		return err
	}
	defer crows.Close()
	for crows.Next() {
		var id int64
		if err := crows.Scan(&id); err != nil {
			return err
		}
		t.CoachIDs = append(t.CoachIDs, id)
	}
	return crows.Err()
}

func (r *sqlTeamRepo) AddPlayer(teamID string, playerID int64) error {
	// UNIQUE(team_id, player_id) rejects duplicates
	_, err := r.db.Exec(`INSERT INTO team_players(team_id, player_id) VALUES ($1,$2)`,
		teamID, playerID)
	return err
}

func (r *sqlTeamRepo) RemovePlayer(teamID string, playerID int64) error {
	_, err := r.db.Exec(`DELETE FROM team_players WHERE team_id=$1 AND player_id=$2`,
		teamID, playerID)
	return err
}

func (r *sqlTeamRepo) CoachesAny(userID int64, teamIDs []string) (bool, error) {
	if len(teamIDs) == 0 {
		return false, nil
	}
	var n int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM team_coaches WHERE coach_id=$1 AND team_id = ANY($2)`,
		userID, pq.Array(teamIDs)).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *sqlTeamRepo) TeamsOfPlayer(playerID int64) ([]string, error) {
	rows, err := r.db.Query(`SELECT team_id FROM team_players WHERE player_id=$1`, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
