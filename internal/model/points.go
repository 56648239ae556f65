package model

import "time"

// Point grants are fixed policy constants, not caller-supplied values.
const (
	PointsPhotoUpload = 10 // awarded for uploading a stall photo
	PointsUpvote      = 5  // awarded when a user's photo receives an upvote
)

// Points transaction types recorded in points_history. The history is
// append-only; entries are never updated or deleted.
const (
	PointsTxUpload = "upload"
	PointsTxUpvote = "upvote"
	PointsTxRedeem = "redeem"
	PointsTxAdjust = "adjust"
)

// PointsAccount holds a user's loyalty point balance. One account
// exists per user, created lazily on the first earning event. The
// balance is never negative and must always equal the sum of the
// user's points_history deltas.
//
// Fields:
//  UserID      – owning user, primary key.
//  TotalPoints – current balance, >= 0.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type PointsAccount struct {
	UserID      uint64    // points_accounts.user_id
	TotalPoints int64     // points_accounts.total_points
	CreatedAt   time.Time // points_accounts.created_at
	UpdatedAt   time.Time // points_accounts.updated_at
}

// PointsHistoryEntry is a single append-only ledger line. Every
// balance mutation writes exactly one entry; the signed Points delta
// sums to the account balance.
//
// Fields:
//  ID              – primary key identifier.
//  UserID          – user whose balance changed.
//  TransactionType – one of the PointsTx* constants.
//  Points          – signed delta applied to the balance.
//  Description     – human-readable reason.
//  Reference       – optional free-form reference (e.g. stall or voucher id).
//  CreatedAt       – creation timestamp.
type PointsHistoryEntry struct {
	ID              uint64    // points_history.id
	UserID          uint64    // points_history.user_id
	TransactionType string    // points_history.transaction_type
	Points          int64     // points_history.points
	Description     string    // points_history.description
	Reference       *string   // points_history.reference (nullable)
	CreatedAt       time.Time // points_history.created_at
}
