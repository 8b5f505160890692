package perfume

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) List(ctx context.Context) ([]Perfume, error) {
	const query = `
		SELECT id, name, category, price, image_url, description, notes, created_at, updated_at
		FROM perfumes
		ORDER BY created_at DESC
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Perfume{}
	for rows.Next() {
		var p Perfume
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Category, &p.Price, &p.ImageURL, &p.Description, &p.Notes,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Perfume, error) {
	const query = `
		SELECT id, name, category, price, image_url, description, notes, created_at, updated_at
		FROM perfumes
		WHERE id = $1
		LIMIT 1
	`
	var p Perfume
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, id).Scan(
		&p.ID, &p.Name, &p.Category, &p.Price, &p.ImageURL, &p.Description, &p.Notes,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Perfume{}, ErrNotFound
		}
		return Perfume{}, err
	}
	return p, nil
}

// Insert persists a new record. The database assigns the identifier and both
// timestamps; they are written back into p.
func (r *PostgresRepo) Insert(ctx context.Context, p *Perfume) error {
	const sql = `
		INSERT INTO perfumes (name, category, price, image_url, description, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.db.QueryRow(timeoutCtx, sql,
		p.Name, p.Category, p.Price, p.ImageURL, p.Description, p.Notes,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// Update replaces every mutable field of the record with id p.ID. There is
// no concurrency token; concurrent editors silently overwrite each other.
func (r *PostgresRepo) Update(ctx context.Context, p *Perfume) error {
	const sql = `
		UPDATE perfumes
		SET name = $2, category = $3, price = $4, image_url = $5, description = $6,
		    notes = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, sql,
		p.ID, p.Name, p.Category, p.Price, p.ImageURL, p.Description, p.Notes,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, `DELETE FROM perfumes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
