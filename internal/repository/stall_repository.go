package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hawkerhub/hawker-reserve/internal/model"
)

// ErrStallNotFound is returned when a stall cannot be found in the DB.
var ErrStallNotFound = errors.New("stall not found")

// StallRepo encapsulates database queries for food stalls. Stalls are
// catalog entries under a venue; they are browsed publicly and
// referenced by the points ledger when photo uploads are rewarded.
type StallRepo struct {
	db *sql.DB
}

// NewStallRepo returns a new StallRepo bound to the given database.
func NewStallRepo(db *sql.DB) *StallRepo { return &StallRepo{db: db} }

// Create inserts a new stall and populates the generated ID plus
// timestamp defaults on the provided record.
func (r *StallRepo) Create(ctx context.Context, s *model.Stall) error {
	const qInsert = "INSERT INTO stalls (venue_id, name, cuisine, unit_no, is_active) VALUES (?, ?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, s.VenueID, s.Name, s.Cuisine, s.UnitNo, s.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)

	const qSelect = "SELECT venue_id, name, cuisine, unit_no, is_active, created_at, updated_at FROM stalls WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, s.ID).Scan(
		&s.VenueID, &s.Name, &s.Cuisine, &s.UnitNo, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
}

// GetByID fetches a stall by id, returning ErrStallNotFound when it
// does not exist.
func (r *StallRepo) GetByID(ctx context.Context, id uint64) (*model.Stall, error) {
	const q = "SELECT id, venue_id, name, cuisine, unit_no, is_active, created_at, updated_at FROM stalls WHERE id = ?"
	var s model.Stall
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &s.VenueID, &s.Name, &s.Cuisine, &s.UnitNo, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStallNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListByVenue returns the active stalls of a venue ordered by unit
// number then name. An unknown venue yields an empty slice.
func (r *StallRepo) ListByVenue(ctx context.Context, venueID uint64) ([]*model.Stall, error) {
	const q = `SELECT id, venue_id, name, cuisine, unit_no, is_active, created_at, updated_at
	           FROM stalls WHERE venue_id = ? AND is_active = 1 ORDER BY unit_no, name`
	rows, err := r.db.QueryContext(ctx, q, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Stall, 0)
	for rows.Next() {
		s := new(model.Stall)
		if err := rows.Scan(&s.ID, &s.VenueID, &s.Name, &s.Cuisine, &s.UnitNo, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update modifies a stall's mutable fields.
func (r *StallRepo) Update(ctx context.Context, s *model.Stall) error {
	const q = "UPDATE stalls SET name = ?, cuisine = ?, unit_no = ?, is_active = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, s.Name, s.Cuisine, s.UnitNo, s.IsActive, s.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, s.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete marks a stall inactive; rows are kept for points history
// references.
func (r *StallRepo) Delete(ctx context.Context, id uint64) error {
	const q = "UPDATE stalls SET is_active = 0 WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
