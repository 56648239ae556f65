package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hawkerhub/hawker-reserve/internal/model"
)

// ErrTableNotFound is returned when a table cannot be found in the DB.
var ErrTableNotFound = errors.New("table not found")

// TableRepo provides data access to bookable tables. The reservation
// repository takes its own row lock on tables when booking; TableRepo
// only covers catalog reads and admin CRUD.
type TableRepo struct {
	db *sql.DB
}

// NewTableRepo returns a new TableRepo bound to the given database.
func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{db: db} }

// Create inserts a new table and populates generated fields.
func (r *TableRepo) Create(ctx context.Context, t *model.Table) error {
	const qInsert = "INSERT INTO tables (venue_id, label, capacity, is_active) VALUES (?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, t.VenueID, t.Label, t.Capacity, t.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)

	const qSelect = "SELECT venue_id, label, capacity, is_active, created_at, updated_at FROM tables WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, t.ID).Scan(
		&t.VenueID, &t.Label, &t.Capacity, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
}

// GetByID fetches a table by id, returning ErrTableNotFound when it
// does not exist.
func (r *TableRepo) GetByID(ctx context.Context, id uint64) (*model.Table, error) {
	const q = "SELECT id, venue_id, label, capacity, is_active, created_at, updated_at FROM tables WHERE id = ?"
	var t model.Table
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&t.ID, &t.VenueID, &t.Label, &t.Capacity, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTableNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListByVenue returns the active tables of a venue ordered by label.
// An unknown venue yields an empty slice rather than an error.
func (r *TableRepo) ListByVenue(ctx context.Context, venueID uint64) ([]*model.Table, error) {
	const q = `SELECT id, venue_id, label, capacity, is_active, created_at, updated_at
	           FROM tables WHERE venue_id = ? AND is_active = 1 ORDER BY label`
	rows, err := r.db.QueryContext(ctx, q, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Table, 0)
	for rows.Next() {
		t := new(model.Table)
		if err := rows.Scan(&t.ID, &t.VenueID, &t.Label, &t.Capacity, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update modifies a table's mutable fields.
func (r *TableRepo) Update(ctx context.Context, t *model.Table) error {
	const q = "UPDATE tables SET label = ?, capacity = ?, is_active = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, t.Label, t.Capacity, t.IsActive, t.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, t.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete marks a table inactive. Reservation history keeps pointing
// at the row.
func (r *TableRepo) Delete(ctx context.Context, id uint64) error {
	const q = "UPDATE tables SET is_active = 0 WHERE id = ?"
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
