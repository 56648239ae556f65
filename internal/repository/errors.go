// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by
// someone else, while ErrBookingConflict signals that a requested
// time window overlaps an existing confirmed reservation.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrBookingConflict is returned when a reservation cannot be created
// because another confirmed reservation overlaps the requested
// [start, end) window on the same table and date. Handlers should
// translate this into an HTTP 409 response; the caller can retry
// with a different slot.
var ErrBookingConflict = errors.New("time slot already booked")

// ErrInsufficientPoints is returned when a redemption or adjustment
// would drive a points balance below zero. No history entry is
// written when this error is returned.
var ErrInsufficientPoints = errors.New("insufficient points")

// Voucher failure modes. They are mutually exclusive terminal states:
// a missing or inactive voucher reports ErrVoucherNotFound, a code
// consumed once reports ErrVoucherAlreadyUsed, and a code past its
// expiry date reports ErrVoucherExpired.
var (
	ErrVoucherNotFound    = errors.New("voucher not found")
	ErrVoucherAlreadyUsed = errors.New("voucher already used")
	ErrVoucherExpired     = errors.New("voucher expired")
)
