package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/hawkerhub/hawker-reserve/internal/booking"
	"github.com/hawkerhub/hawker-reserve/internal/model"
)

// ReservationRepo owns the reservation ledger. Its single invariant:
// for a given (table_id, date), the CONFIRMED reservations are
// pairwise non-overlapping in [start_time, end_time). Create is the
// only write path that adds rows and it enforces the invariant under
// a per-table row lock, so concurrent overlapping requests cannot
// both succeed. Rows are never deleted; cancellation is a soft
// status transition that preserves history.
type ReservationRepo struct {
	db *sql.DB
	// now is stubbed in tests; defaults to time.Now.
	now func() time.Time
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo {
	return &ReservationRepo{db: db, now: time.Now}
}

const reservationCols = "id, user_id, table_id, date, start_time, end_time, status, special_requests, created_at, updated_at"

func scanReservation(row interface{ Scan(...any) error }) (*model.Reservation, error) {
	var res model.Reservation
	err := row.Scan(&res.ID, &res.UserID, &res.TableID, &res.Date, &res.StartTime, &res.EndTime,
		&res.Status, &res.SpecialRequests, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// FindConflictsTx returns the CONFIRMED reservations for the table and
// date whose [start_time, end_time) window overlaps [start, end).
// Half-open semantics: a reservation ending exactly at start, or
// starting exactly at end, does not conflict. Zero-padded HH:MM
// strings compare correctly with plain string comparison, which lets
// the overlap predicate run in SQL. Run inside the booking
// transaction so the result is read under the table lock.
func (r *ReservationRepo) FindConflictsTx(ctx context.Context, tx *sql.Tx, tableID uint64, date, start, end string) ([]*model.Reservation, error) {
	const q = `SELECT ` + reservationCols + `
	           FROM reservations
	           WHERE table_id = ? AND date = ? AND status = 'CONFIRMED'
	             AND start_time < ? AND ? < end_time
	           ORDER BY start_time`
	rows, err := tx.QueryContext(ctx, q, tableID, date, end, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create validates and books a reservation. The whole check-then-insert
// sequence runs in one transaction that first locks the table row with
// SELECT ... FOR UPDATE, serializing all bookings per table: under
// concurrent overlapping requests at most one insert can happen, the
// rest observe the winner's row and fail with ErrBookingConflict.
//
// Validation errors (booking.ErrPastDate, booking.ErrPastTime,
// booking.ErrInvalidInterval, format errors) are returned before any
// write. ErrTableNotFound is returned when the table does not exist
// or is not bookable.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	if err := booking.Validate(res.Date, res.StartTime, res.EndTime, r.now()); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Lock the table row for the duration of the check and insert.
	var tableID uint64
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM tables WHERE id = ? AND is_active = 1 FOR UPDATE",
		res.TableID).Scan(&tableID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTableNotFound
		}
		return err
	}

	conflicts, err := r.FindConflictsTx(ctx, tx, res.TableID, res.Date, res.StartTime, res.EndTime)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return ErrBookingConflict
	}

	const qInsert = `INSERT INTO reservations (user_id, table_id, date, start_time, end_time, status, special_requests)
	                 VALUES (?, ?, ?, ?, ?, 'CONFIRMED', ?)`
	result, err := tx.ExecContext(ctx, qInsert,
		res.UserID, res.TableID, res.Date, res.StartTime, res.EndTime, res.SpecialRequests)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)

	// Query back the full row to populate timestamps and defaults.
	const qSelect = `SELECT ` + reservationCols + ` FROM reservations WHERE id = ?`
	full, err := scanReservation(tx.QueryRowContext(ctx, qSelect, res.ID))
	if err != nil {
		return err
	}
	*res = *full

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByID fetches a single reservation regardless of status. It
// returns sql.ErrNoRows when the reservation does not exist.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations WHERE id = ?`
	return scanReservation(r.db.QueryRowContext(ctx, q, id))
}

// Cancel transitions a reservation to CANCELLED on behalf of its
// owner. It returns sql.ErrNoRows when the reservation does not
// exist and ErrForbidden when it belongs to a different user.
// Cancelling an already-cancelled reservation is a harmless no-op
// that returns the current state. The row is never removed, so the
// slot becomes immediately bookable while history is preserved.
func (r *ReservationRepo) Cancel(ctx context.Context, reservationID, userID uint64) (*model.Reservation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const q = `SELECT ` + reservationCols + ` FROM reservations WHERE id = ? FOR UPDATE`
	res, err := scanReservation(tx.QueryRowContext(ctx, q, reservationID))
	if err != nil {
		return nil, err
	}
	if res.UserID != userID {
		return nil, ErrForbidden
	}
	if res.Status != model.ReservationCancelled {
		if _, err := tx.ExecContext(ctx,
			"UPDATE reservations SET status = 'CANCELLED' WHERE id = ?", reservationID); err != nil {
			return nil, err
		}
		res.Status = model.ReservationCancelled
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return res, nil
}

// ListByTableAndDate returns the CONFIRMED reservations for a table
// on a date ordered by start time ascending. Cancelled rows are
// excluded so freed slots show as available.
func (r *ReservationRepo) ListByTableAndDate(ctx context.Context, tableID uint64, date string) ([]*model.Reservation, error) {
	const q = `SELECT ` + reservationCols + `
	           FROM reservations
	           WHERE table_id = ? AND date = ? AND status = 'CONFIRMED'
	           ORDER BY start_time`
	rows, err := r.db.QueryContext(ctx, q, tableID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByUser returns a user's reservations, newest first (date
// descending, then start time descending), excluding cancelled rows.
// When no reservations exist an empty slice is returned.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.Reservation, error) {
	const q = `SELECT ` + reservationCols + `
	           FROM reservations
	           WHERE user_id = ? AND status = 'CONFIRMED'
	           ORDER BY date DESC, start_time DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
