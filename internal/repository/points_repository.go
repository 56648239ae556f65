package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/hawkerhub/hawker-reserve/internal/model"
)

// PointsRepo owns the loyalty points ledger: per-user balance plus an
// append-only history. Each balance mutation appends exactly one
// history entry and updates the balance in the same transaction while
// holding a row lock on the account, so concurrent awards cannot lose
// an update and the balance always equals the sum of history deltas.
// If drift is ever detected the balance is recomputed from history.
type PointsRepo struct {
	db *sql.DB
}

// NewPointsRepo returns a new PointsRepo bound to the given database.
func NewPointsRepo(db *sql.DB) *PointsRepo { return &PointsRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning the points and voucher repositories.
func (r *PointsRepo) DB() *sql.DB { return r.db }

// GetAccount returns the user's account, materializing a zero-balance
// view when none exists yet. No row is written for absent accounts;
// they are created lazily by the first earning event.
func (r *PointsRepo) GetAccount(ctx context.Context, userID uint64) (*model.PointsAccount, error) {
	const q = "SELECT user_id, total_points, created_at, updated_at FROM points_accounts WHERE user_id = ?"
	var a model.PointsAccount
	err := r.db.QueryRowContext(ctx, q, userID).Scan(&a.UserID, &a.TotalPoints, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		now := time.Now().UTC()
		return &model.PointsAccount{UserID: userID, TotalPoints: 0, CreatedAt: now, UpdatedAt: now}, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// lockBalanceTx reads the user's balance under FOR UPDATE, creating
// the account with a zero balance when absent so the lock always
// lands on a row. The lock is held until the transaction ends.
func (r *PointsRepo) lockBalanceTx(ctx context.Context, tx *sql.Tx, userID uint64) (int64, error) {
	const q = "SELECT total_points FROM points_accounts WHERE user_id = ? FOR UPDATE"
	var balance int64
	err := tx.QueryRowContext(ctx, q, userID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO points_accounts (user_id, total_points) VALUES (?, 0)", userID); err != nil {
			return 0, err
		}
		if err := tx.QueryRowContext(ctx, q, userID).Scan(&balance); err != nil {
			return 0, err
		}
		return balance, nil
	}
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// historySumTx recomputes the balance as the sum of the user's history
// deltas. Used for drift recovery before applying a mutation.
func (r *PointsRepo) historySumTx(ctx context.Context, tx *sql.Tx, userID uint64) (int64, error) {
	const q = "SELECT COALESCE(SUM(points), 0) FROM points_history WHERE user_id = ?"
	var sum int64
	if err := tx.QueryRowContext(ctx, q, userID).Scan(&sum); err != nil {
		return 0, err
	}
	return sum, nil
}

// MutateTx applies a signed delta to the user's balance and appends
// the matching history entry, all inside the caller's transaction.
// Before applying, the stored balance is reconciled against the sum
// of history: if a crash between the two writes ever left them apart,
// the history sum wins. A delta that would drive the balance below
// zero fails with ErrInsufficientPoints and writes nothing. The new
// balance and the created entry are returned.
func (r *PointsRepo) MutateTx(ctx context.Context, tx *sql.Tx, userID uint64, txType string, delta int64, description string, reference *string) (int64, *model.PointsHistoryEntry, error) {
	balance, err := r.lockBalanceTx(ctx, tx, userID)
	if err != nil {
		return 0, nil, err
	}
	sum, err := r.historySumTx(ctx, tx, userID)
	if err != nil {
		return 0, nil, err
	}
	if sum != balance {
		// Stored balance drifted from the ledger; the ledger is the
		// source of truth.
		balance = sum
	}
	newBalance := balance + delta
	if newBalance < 0 {
		return 0, nil, ErrInsufficientPoints
	}

	const qHist = `INSERT INTO points_history (user_id, transaction_type, points, description, reference)
	               VALUES (?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, qHist, userID, txType, delta, description, reference)
	if err != nil {
		return 0, nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, nil, err
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE points_accounts SET total_points = ? WHERE user_id = ?", newBalance, userID); err != nil {
		return 0, nil, err
	}

	entry := &model.PointsHistoryEntry{
		ID:              uint64(id),
		UserID:          userID,
		TransactionType: txType,
		Points:          delta,
		Description:     description,
		Reference:       reference,
		CreatedAt:       time.Now().UTC(),
	}
	return newBalance, entry, nil
}

// Award grants a fixed number of points for an action. The caller
// passes one of the model.PointsTx* earning types; the delta must be
// positive. The account is created on first award.
func (r *PointsRepo) Award(ctx context.Context, userID uint64, txType string, points int64, description string, reference *string) (int64, *model.PointsHistoryEntry, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	newBalance, entry, err := r.MutateTx(ctx, tx, userID, txType, points, description, reference)
	if err != nil {
		return 0, nil, err
	}
	if err := tx.Commit(); err != nil {
		return 0, nil, err
	}
	committed = true
	return newBalance, entry, nil
}

// Adjust applies a manual correction. The delta may be negative but
// the balance never goes below zero.
func (r *PointsRepo) Adjust(ctx context.Context, userID uint64, delta int64, description string) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	newBalance, _, err := r.MutateTx(ctx, tx, userID, model.PointsTxAdjust, delta, description, nil)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return newBalance, nil
}

// ListHistory returns the user's ledger entries newest first.
func (r *PointsRepo) ListHistory(ctx context.Context, userID uint64) ([]*model.PointsHistoryEntry, error) {
	const q = `SELECT id, user_id, transaction_type, points, description, reference, created_at
	           FROM points_history WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.PointsHistoryEntry, 0)
	for rows.Next() {
		e := new(model.PointsHistoryEntry)
		if err := rows.Scan(&e.ID, &e.UserID, &e.TransactionType, &e.Points, &e.Description, &e.Reference, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
