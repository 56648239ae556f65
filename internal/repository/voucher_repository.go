package repository

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/hawkerhub/hawker-reserve/internal/model"
)

// VoucherRepo provides data access to the voucher catalog and to
// redeemed voucher instances. Redemption itself is orchestrated by
// the handler inside one transaction together with the points
// deduction, so the code mint and the negative ledger entry commit or
// roll back as a unit.
type VoucherRepo struct {
	db *sql.DB
}

// NewVoucherRepo returns a new VoucherRepo bound to the given database.
func NewVoucherRepo(db *sql.DB) *VoucherRepo { return &VoucherRepo{db: db} }

// GenerateVoucherCode returns a random uppercase hex code of n bytes
// (2n characters). Uniqueness is guaranteed by the unique index on
// redeemed_vouchers.code; InsertRedeemedTx retries on collision.
func GenerateVoucherCode(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(b)), nil
}

// GetActive fetches a voucher that is available for redemption. A
// missing or inactive voucher both report ErrVoucherNotFound.
func (r *VoucherRepo) GetActive(ctx context.Context, id uint64) (*model.Voucher, error) {
	const q = `SELECT id, name, description, points_required, discount_value, validity_days, is_active, created_at, updated_at
	           FROM vouchers WHERE id = ? AND is_active = 1`
	var v model.Voucher
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&v.ID, &v.Name, &v.Description, &v.PointsRequired, &v.DiscountValue, &v.ValidityDays,
		&v.IsActive, &v.CreatedAt, &v.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVoucherNotFound
		}
		return nil, err
	}
	return &v, nil
}

// GetByID fetches a voucher regardless of its active flag (admin use).
func (r *VoucherRepo) GetByID(ctx context.Context, id uint64) (*model.Voucher, error) {
	const q = `SELECT id, name, description, points_required, discount_value, validity_days, is_active, created_at, updated_at
	           FROM vouchers WHERE id = ?`
	var v model.Voucher
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&v.ID, &v.Name, &v.Description, &v.PointsRequired, &v.DiscountValue, &v.ValidityDays,
		&v.IsActive, &v.CreatedAt, &v.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVoucherNotFound
		}
		return nil, err
	}
	return &v, nil
}

// ListActive returns the redeemable catalog ordered by points cost.
func (r *VoucherRepo) ListActive(ctx context.Context) ([]*model.Voucher, error) {
	const q = `SELECT id, name, description, points_required, discount_value, validity_days, is_active, created_at, updated_at
	           FROM vouchers WHERE is_active = 1 ORDER BY points_required, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Voucher, 0)
	for rows.Next() {
		v := new(model.Voucher)
		if err := rows.Scan(&v.ID, &v.Name, &v.Description, &v.PointsRequired, &v.DiscountValue,
			&v.ValidityDays, &v.IsActive, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a catalog voucher (admin only) and populates
// generated fields.
func (r *VoucherRepo) Create(ctx context.Context, v *model.Voucher) error {
	const qInsert = `INSERT INTO vouchers (name, description, points_required, discount_value, validity_days, is_active)
	                 VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert,
		v.Name, v.Description, v.PointsRequired, v.DiscountValue, v.ValidityDays, v.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)

	const qSelect = `SELECT name, description, points_required, discount_value, validity_days, is_active, created_at, updated_at
	                 FROM vouchers WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, v.ID).Scan(
		&v.Name, &v.Description, &v.PointsRequired, &v.DiscountValue, &v.ValidityDays,
		&v.IsActive, &v.CreatedAt, &v.UpdatedAt)
}

// Update modifies a catalog voucher (admin only). It returns
// ErrVoucherNotFound when the voucher does not exist.
func (r *VoucherRepo) Update(ctx context.Context, v *model.Voucher) error {
	const q = `UPDATE vouchers SET name = ?, description = ?, points_required = ?, discount_value = ?, validity_days = ?, is_active = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		v.Name, v.Description, v.PointsRequired, v.DiscountValue, v.ValidityDays, v.IsActive, v.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists uint64
		err := r.db.QueryRowContext(ctx, "SELECT id FROM vouchers WHERE id = ?", v.ID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVoucherNotFound
		}
		return err
	}
	return nil
}

// InsertRedeemedTx mints a RedeemedVoucher inside the caller's
// transaction. A fresh random code is generated; on the unlikely
// unique-index collision (MySQL error 1062) a new code is tried, up
// to a few attempts. Expiry is redemption time plus the voucher's
// validity days.
func (r *VoucherRepo) InsertRedeemedTx(ctx context.Context, tx *sql.Tx, userID uint64, v *model.Voucher, now time.Time) (*model.RedeemedVoucher, error) {
	expiry := now.Add(time.Duration(v.ValidityDays) * 24 * time.Hour)
	const qInsert = `INSERT INTO redeemed_vouchers (user_id, voucher_id, code, expiry_date, is_used)
	                 VALUES (?, ?, ?, ?, 0)`
	for attempt := 0; attempt < 5; attempt++ {
		code, err := GenerateVoucherCode(8)
		if err != nil {
			return nil, err
		}
		res, err := tx.ExecContext(ctx, qInsert, userID, v.ID, code,
			expiry.UTC().Format("2006-01-02 15:04:05"))
		if err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "1062") {
				continue // code collision, mint another
			}
			return nil, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		return &model.RedeemedVoucher{
			ID:         uint64(id),
			UserID:     userID,
			VoucherID:  v.ID,
			Code:       code,
			ExpiryDate: expiry.UTC(),
			IsUsed:     false,
			CreatedAt:  now.UTC(),
		}, nil
	}
	return nil, errors.New("could not generate a unique voucher code")
}

// Use consumes a redeemed voucher code for the given user. The three
// failure modes are checked in order and are mutually exclusive:
// unknown code (or someone else's code) -> ErrVoucherNotFound, code
// already consumed -> ErrVoucherAlreadyUsed, code past its expiry ->
// ErrVoucherExpired. On success is_used flips to true, used_date is
// set, and the optional order linkage is recorded. The row is locked
// across check and update so a code cannot be consumed twice by
// concurrent requests.
func (r *VoucherRepo) Use(ctx context.Context, userID uint64, code string, orderID *string) (*model.RedeemedVoucher, error) {
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

	const q = `SELECT id, user_id, voucher_id, code, expiry_date, is_used, used_date, order_id, created_at
	           FROM redeemed_vouchers WHERE code = ? AND user_id = ? FOR UPDATE`
	var rv model.RedeemedVoucher
	err = tx.QueryRowContext(ctx, q, code, userID).Scan(
		&rv.ID, &rv.UserID, &rv.VoucherID, &rv.Code, &rv.ExpiryDate,
		&rv.IsUsed, &rv.UsedDate, &rv.OrderID, &rv.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVoucherNotFound
		}
		return nil, err
	}
	if rv.IsUsed {
		return nil, ErrVoucherAlreadyUsed
	}
	now := time.Now().UTC()
	if rv.ExpiryDate.Before(now) {
		return nil, ErrVoucherExpired
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE redeemed_vouchers SET is_used = 1, used_date = ?, order_id = ? WHERE id = ?",
		now.Format("2006-01-02 15:04:05"), orderID, rv.ID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	rv.IsUsed = true
	rv.UsedDate = &now
	rv.OrderID = orderID
	return &rv, nil
}

// ListRedeemedByUser returns the user's redeemed vouchers newest first.
func (r *VoucherRepo) ListRedeemedByUser(ctx context.Context, userID uint64) ([]*model.RedeemedVoucher, error) {
	const q = `SELECT id, user_id, voucher_id, code, expiry_date, is_used, used_date, order_id, created_at
	           FROM redeemed_vouchers WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.RedeemedVoucher, 0)
	for rows.Next() {
		rv := new(model.RedeemedVoucher)
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.VoucherID, &rv.Code, &rv.ExpiryDate,
			&rv.IsUsed, &rv.UsedDate, &rv.OrderID, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
