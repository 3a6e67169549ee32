package db

import (
	"database/sql"

	_ "github.com/lib/pq"
)

// Open connects to Postgres and makes sure the schema exists.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)

	if err := createTables(db); err != nil {
		return nil, err
	}
	return db, nil
}

func createTables(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			name TEXT NOT NULL,
			role TEXT NOT NULL,
			position TEXT,
			birth_date DATE
		);`,
		`CREATE TABLE IF NOT EXISTS teams (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			type TEXT NOT NULL
		);`,
		// composite unique keys keep membership pairs single
		`CREATE TABLE IF NOT EXISTS team_players (
			id BIGSERIAL PRIMARY KEY,
			team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
			player_id BIGINT NOT NULL REFERENCES users(id),
			UNIQUE (team_id, player_id)
		);`,
		`CREATE TABLE IF NOT EXISTS team_coaches (
			id BIGSERIAL PRIMARY KEY,
			team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
			coach_id BIGINT NOT NULL REFERENCES users(id),
			UNIQUE (team_id, coach_id)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}
