package model

import "time"

// Voucher is a catalog entry customers can redeem points for.
//
// Fields:
//  ID             – primary key identifier.
//  Name           – display name of the reward.
//  Description    – optional detail text.
//  PointsRequired – points deducted on redemption.
//  DiscountValue  – discount amount in cents applied at the stall.
//  ValidityDays   – days from redemption until the code expires.
//  IsActive       – whether the voucher can currently be redeemed.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Voucher struct {
	ID             uint64    // vouchers.id
	Name           string    // vouchers.name
	Description    *string   // vouchers.description (nullable)
	PointsRequired int64     // vouchers.points_required
	DiscountValue  uint32    // vouchers.discount_value
	ValidityDays   int       // vouchers.validity_days
	IsActive       bool      // vouchers.is_active
	CreatedAt      time.Time // vouchers.created_at
	UpdatedAt      time.Time // vouchers.updated_at
}

// RedeemedVoucher is a user-owned instance of a catalog voucher. The
// Code is unique across all redemptions. A redeemed voucher cannot be
// used after ExpiryDate or more than once; IsUsed only ever flips
// from false to true.
//
// Fields:
//  ID         – primary key identifier.
//  UserID     – user who redeemed the voucher.
//  VoucherID  – catalog voucher this instance was minted from.
//  Code       – unique redemption code presented at the stall.
//  ExpiryDate – redemption time plus the voucher's validity days.
//  IsUsed     – whether the code has been consumed.
//  UsedDate   – when the code was consumed (nil until used).
//  OrderID    – optional order the code was applied to.
//  CreatedAt  – redemption timestamp.
type RedeemedVoucher struct {
	ID         uint64     // redeemed_vouchers.id
	UserID     uint64     // redeemed_vouchers.user_id
	VoucherID  uint64     // redeemed_vouchers.voucher_id
	Code       string     // redeemed_vouchers.code
	ExpiryDate time.Time  // redeemed_vouchers.expiry_date
	IsUsed     bool       // redeemed_vouchers.is_used
	UsedDate   *time.Time // redeemed_vouchers.used_date (nullable)
	OrderID    *string    // redeemed_vouchers.order_id (nullable)
	CreatedAt  time.Time  // redeemed_vouchers.created_at
}
