package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pet-adoption/internal/domain/pets"
)

const petColumns = `id, name, species, photo_url, age, notes, available`

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

func (r *PetsRepo) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE id = $1
	`, id)

	p, err := scanPet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) Create(ctx context.Context, in pets.NewPet) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO pets (name, species, photo_url, age, notes, available)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING `+petColumns+`
	`,
		in.Name,
		string(in.Species),
		toNullString(in.PhotoURL),
		toNullInt(in.Age),
		toNullString(in.Notes),
	)
	return scanPet(row)
}

// Update no toca name/species/age: la sentencia solo escribe los mutables.
func (r *PetsRepo) Update(ctx context.Context, id int64, ch pets.Changes) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE pets
		SET
			photo_url = $2,
			notes = $3,
			available = $4
		WHERE id = $1
		RETURNING `+petColumns+`
	`,
		id,
		toNullString(ch.PhotoURL),
		toNullString(ch.Notes),
		ch.Available,
	)

	p, err := scanPet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPet(s scanner) (pets.Pet, error) {
	var (
		p        pets.Pet
		species  string
		photoURL sql.NullString
		age      sql.NullInt64
		notes    sql.NullString
	)
	if err := s.Scan(&p.ID, &p.Name, &species, &photoURL, &age, &notes, &p.Available); err != nil {
		return pets.Pet{}, err
	}

	p.Species = pets.Species(species)
	if photoURL.Valid {
		v := photoURL.String
		p.PhotoURL = &v
	}
	if age.Valid {
		v := int(age.Int64)
		p.Age = &v
	}
	if notes.Valid {
		v := notes.String
		p.Notes = &v
	}
	return p, nil
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: *s, Valid: true}
}

func toNullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{Valid: false}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}
