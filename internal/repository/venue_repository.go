// Package repository contains data access logic separated from HTTP handlers.
// This file defines repository methods for hawker-centre venues. A venue
// hosts multiple stalls and bookable tables. Public API responses should
// only expose active venues.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hawkerhub/hawker-reserve/internal/model"
)

// ErrVenueNotFound is returned when a venue cannot be found in the DB.
var ErrVenueNotFound = errors.New("venue not found")

// VenueRepo encapsulates all database queries related to venues. It
// depends on a sql.DB connection which should be configured elsewhere.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle. This
// function allows dependency injection of the database in tests and at
// startup.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

// Create inserts a new venue. On success the venue's ID field is
// populated with the auto-generated value and a follow-up SELECT
// fills in timestamp defaults so callers receive a complete record.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	const qInsert = "INSERT INTO venues (name, address, description, is_active) VALUES (?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, v.Name, v.Address, v.Description, v.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)

	const qSelect = "SELECT name, address, description, is_active, created_at, updated_at FROM venues WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, v.ID).Scan(
		&v.Name, &v.Address, &v.Description, &v.IsActive, &v.CreatedAt, &v.UpdatedAt)
}

// GetByID fetches a venue by its ID. It returns ErrVenueNotFound when
// no row exists.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	const q = "SELECT id, name, address, description, is_active, created_at, updated_at FROM venues WHERE id = ?"
	var v model.Venue
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&v.ID, &v.Name, &v.Address, &v.Description, &v.IsActive, &v.CreatedAt, &v.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &v, nil
}

// ListActive returns all publicly listed venues ordered by name.
func (r *VenueRepo) ListActive(ctx context.Context) ([]*model.Venue, error) {
	const q = `SELECT id, name, address, description, is_active, created_at, updated_at
	           FROM venues WHERE is_active = 1 ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Venue, 0)
	for rows.Next() {
		v := new(model.Venue)
		if err := rows.Scan(&v.ID, &v.Name, &v.Address, &v.Description, &v.IsActive, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update modifies a venue's mutable fields. It returns
// ErrVenueNotFound when no row was affected.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue) error {
	const q = "UPDATE venues SET name = ?, address = ?, description = ?, is_active = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, v.Name, v.Address, v.Description, v.IsActive, v.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish "no such row" from "no change": re-check existence.
		if _, err := r.GetByID(ctx, v.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete marks a venue inactive rather than removing the row so that
// historical reservations keep a valid reference.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) error {
	const q = "UPDATE venues SET is_active = 0 WHERE id = ?"
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
