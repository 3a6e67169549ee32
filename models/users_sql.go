package models

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"teamevents/utils"
)

type sqlUserRepo struct{ db *sql.DB }

func NewSQLUserRepository(db *sql.DB) UserRepository { return &sqlUserRepo{db} }

func (r *sqlUserRepo) Create(u *User) error {
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed

	return r.db.QueryRow(
		`INSERT INTO users(email, password, name, role, position, birth_date)
		 VALUES ($1,$2,$3,$4,$5,$6) RETURNING id`,
		u.Email, u.Password, u.Name, u.Role, u.Position, u.BirthDate,
	).Scan(&u.ID)
}

func (r *sqlUserRepo) ValidateCredentials(email, plain string) (User, error) {
	var u User
	err := r.db.QueryRow(
		`SELECT id, email, password, name, role, COALESCE(position,''), birth_date
		 FROM users WHERE email=$1`, email).
		Scan(&u.ID, &u.Email, &u.Password, &u.Name, &u.Role, &u.Position, &u.BirthDate)
	if err != nil {
		return User{}, errors.New("invalid credentials")
	}

	if !utils.CheckPasswordHash(plain, u.Password) {
		return User{}, errors.New("invalid credentials")
	}
	return u, nil
}

func (r *sqlUserRepo) GetByID(id int64) (User, error) {
	var u User
	err := r.db.QueryRow(
		`SELECT id, email, name, role, COALESCE(position,''), birth_date
		 FROM users WHERE id=$1`, id).
		Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.Position, &u.BirthDate)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *sqlUserRepo) GetByIDs(ids []int64) (map[int64]User, error) {
	out := make(map[int64]User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(
		`SELECT id, email, name, role, COALESCE(position,''), birth_date
		 FROM users WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.Position, &u.BirthDate); err != nil {
			return nil, err
		}
		out[u.ID] = u
	}
	return out, rows.Err()
}
