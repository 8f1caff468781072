package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/zdtango/finger-drawing/internal/draw"
)

// StrokeRepository persists the strokes belonging to drawings. Stroke
// points are stored as a JSON array per row; the drawing pipeline never
// queries individual points.
type StrokeRepository struct {
	db *sql.DB
}

// Strokes returns the stroke repository for this store.
func (s *Store) Strokes() *StrokeRepository {
	return &StrokeRepository{db: s.db}
}

// Replace swaps a drawing's strokes for the given set in one transaction
// and refreshes the denormalized stroke count.
func (r *StrokeRepository) Replace(drawingID string, strokes []draw.Stroke) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM strokes WHERE drawing_id = ?`, drawingID); err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO strokes (id, drawing_id, sequence, points, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, s := range strokes {
		points, err := json.Marshal(s.Points)
		if err != nil {
			return fmt.Errorf("marshal stroke %d: %w", i, err)
		}
		if _, err := stmt.Exec(s.ID, drawingID, i, string(points), s.StartedAt, s.EndedAt); err != nil {
			return err
		}
	}

	result, err := tx.Exec(
		`UPDATE drawings SET stroke_count = ?, updated_at = ? WHERE id = ?`,
		len(strokes), time.Now(), drawingID,
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

	return tx.Commit()
}

// ListByDrawing returns a drawing's strokes in the order they were drawn.
func (r *StrokeRepository) ListByDrawing(drawingID string) ([]draw.Stroke, error) {
	rows, err := r.db.Query(
		`SELECT id, points, started_at, ended_at
		 FROM strokes WHERE drawing_id = ?
		 ORDER BY sequence`,
		drawingID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var strokes []draw.Stroke
	for rows.Next() {
		var s draw.Stroke
		var points string
		if err := rows.Scan(&s.ID, &points, &s.StartedAt, &s.EndedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(points), &s.Points); err != nil {
			return nil, fmt.Errorf("unmarshal stroke %s: %w", s.ID, err)
		}
		strokes = append(strokes, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return strokes, nil
}

// DeleteByDrawing removes all strokes for a drawing without touching the
// drawing row itself.
func (r *StrokeRepository) DeleteByDrawing(drawingID string) error {
	_, err := r.db.Exec(`DELETE FROM strokes WHERE drawing_id = ?`, drawingID)
	return err
}
