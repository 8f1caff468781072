package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Drawing is a saved canvas. The strokes themselves live in their own
// table and repository; StrokeCount is denormalized here so listings do
// not have to join.
type Drawing struct {
	ID          string
	Name        string
	StrokeCount int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DrawingRepository provides CRUD operations for drawings.
type DrawingRepository struct {
	db *sql.DB
}

// Drawings returns the drawing repository for this store.
func (s *Store) Drawings() *DrawingRepository {
	return &DrawingRepository{db: s.db}
}

// Create inserts a new drawing.
func (r *DrawingRepository) Create(d *Drawing) error {
	now := time.Now()
	d.CreatedAt = now
	d.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO drawings (id, name, stroke_count, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		d.ID, d.Name, d.StrokeCount, d.CreatedAt, d.UpdatedAt,
	)
	return err
}

// GetByID retrieves a drawing by its ID.
func (r *DrawingRepository) GetByID(id string) (*Drawing, error) {
	d := &Drawing{}

	err := r.db.QueryRow(
		`SELECT id, name, stroke_count, created_at, updated_at
		 FROM drawings WHERE id = ?`,
		id,
	).Scan(&d.ID, &d.Name, &d.StrokeCount, &d.CreatedAt, &d.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

// List retrieves all drawings, newest first.
func (r *DrawingRepository) List() ([]*Drawing, error) {
	rows, err := r.db.Query(
		`SELECT id, name, stroke_count, created_at, updated_at
		 FROM drawings ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drawings []*Drawing
	for rows.Next() {
		d := &Drawing{}
		if err := rows.Scan(&d.ID, &d.Name, &d.StrokeCount, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		drawings = append(drawings, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return drawings, nil
}

// Rename changes a drawing's name.
func (r *DrawingRepository) Rename(id, name string) error {
	result, err := r.db.Exec(
		`UPDATE drawings SET name = ?, updated_at = ? WHERE id = ?`,
		name, time.Now(), id,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a drawing and, through the foreign key, its strokes.
func (r *DrawingRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM drawings WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
