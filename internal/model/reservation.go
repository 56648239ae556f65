package model

import "time"

// Reservation status values. A reservation is created CONFIRMED and
// can only transition to CANCELLED; the transition is terminal and
// rows are never physically deleted.
const (
	ReservationConfirmed = "CONFIRMED"
	ReservationCancelled = "CANCELLED"
)

// Reservation records a user's booking of a table for a time window
// on a calendar date. For any (table, date) pair the CONFIRMED rows
// must be pairwise non-overlapping in [StartTime, EndTime); the
// repository enforces this under a per-table lock.
//
// Date is the literal YYYY-MM-DD string supplied by the caller and
// StartTime/EndTime are zero-padded HH:MM strings; both compare
// correctly as plain strings so no time zone conversion is applied.
//
// Fields:
//  ID              – primary key identifier.
//  UserID          – user who made the reservation (immutable).
//  TableID         – table being reserved (immutable).
//  Date            – calendar date, YYYY-MM-DD.
//  StartTime       – start of the window, HH:MM, inclusive.
//  EndTime         – end of the window, HH:MM, exclusive.
//  Status          – CONFIRMED or CANCELLED.
//  SpecialRequests – optional free text from the customer.
//  CreatedAt       – creation timestamp (immutable).
//  UpdatedAt       – last update timestamp.
type Reservation struct {
	ID              uint64    // reservations.id
	UserID          uint64    // reservations.user_id
	TableID         uint64    // reservations.table_id
	Date            string    // reservations.date
	StartTime       string    // reservations.start_time
	EndTime         string    // reservations.end_time
	Status          string    // reservations.status
	SpecialRequests *string   // reservations.special_requests (nullable)
	CreatedAt       time.Time // reservations.created_at
	UpdatedAt       time.Time // reservations.updated_at
}
