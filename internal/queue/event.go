// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when a table reservation is
// successfully confirmed. It contains enough information for downstream
// consumers to log, notify, or trigger analytics without querying the
// primary database.
type ReservationConfirmedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	UserID        uint64 `json:"user_id"`
	TableID       uint64 `json:"table_id"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	ConfirmedAt   string `json:"confirmed_at"`
}

// PointsAwardedEvent is published whenever a user's points balance
// changes: photo-upload and upvote awards, voucher redemptions and
// admin adjustments all produce one event with the signed delta.
type PointsAwardedEvent struct {
	UserID     uint64 `json:"user_id"`
	TxType     string `json:"tx_type"`
	Points     int64  `json:"points"`
	NewBalance int64  `json:"new_balance"`
	AwardedAt  string `json:"awarded_at"`
}
