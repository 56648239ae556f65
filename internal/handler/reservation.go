package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hawkerhub/hawker-reserve/internal/booking"
	"github.com/hawkerhub/hawker-reserve/internal/model"
	"github.com/hawkerhub/hawker-reserve/internal/queue"
	"github.com/hawkerhub/hawker-reserve/internal/repository"
	queue_publisher "github.com/hawkerhub/hawker-reserve/internal/service"
	"github.com/hawkerhub/hawker-reserve/internal/timeslot"
)

// ReservationHandler serves table booking endpoints. All temporal and
// conflict validation lives in the reservation repository so every
// create path enforces the same rules; the handler only binds input,
// maps ledger errors to HTTP statuses and publishes events. Methods
// that require authentication assume the JWT middleware has run.
type ReservationHandler struct {
	Reservations *repository.ReservationRepo
	Tables       *repository.TableRepo
}

// NewReservationHandler constructs a ReservationHandler with the
// provided repositories. All dependencies must be non-nil.
func NewReservationHandler(reservations *repository.ReservationRepo, tables *repository.TableRepo) *ReservationHandler {
	if reservations == nil || tables == nil {
		panic("nil repository passed to NewReservationHandler")
	}
	return &ReservationHandler{Reservations: reservations, Tables: tables}
}

type createReservationReq struct {
	TableID         uint64  `json:"table_id"`
	Date            string  `json:"date"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	SpecialRequests *string `json:"special_requests"`
}

// reservationView is the response shape for a single reservation.
type reservationView struct {
	ID              uint64  `json:"id"`
	TableID         uint64  `json:"table_id"`
	Date            string  `json:"date"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	Status          string  `json:"status"`
	SpecialRequests *string `json:"special_requests,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

func toReservationView(r *model.Reservation) reservationView {
	return reservationView{
		ID:              r.ID,
		TableID:         r.TableID,
		Date:            r.Date,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		Status:          r.Status,
		SpecialRequests: r.SpecialRequests,
		CreatedAt:       r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Create handles POST /v1/reservations. It books a table for the
// authenticated user. Returns 201 with the created reservation, 400
// for malformed or past-dated requests, 404 for an unknown table and
// 409 when the requested window overlaps an existing booking.
func (h *ReservationHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.TableID == 0 || req.Date == "" || req.StartTime == "" || req.EndTime == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "table_id, date, start_time and end_time are required"})
	}

	res := &model.Reservation{
		UserID:          userID,
		TableID:         req.TableID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		SpecialRequests: req.SpecialRequests,
	}
	ctx := c.Request().Context()
	if err := h.Reservations.Create(ctx, res); err != nil {
		switch {
		case errors.Is(err, booking.ErrInvalidDate), errors.Is(err, timeslot.ErrInvalidTimeFormat):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, booking.ErrInvalidInterval):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_time must be after start_time"})
		case errors.Is(err, booking.ErrPastDate):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot book a past date"})
		case errors.Is(err, booking.ErrPastTime):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot book a time that has already passed"})
		case errors.Is(err, repository.ErrTableNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		case errors.Is(err, repository.ErrBookingConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "time slot already booked"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
	}

	// Publish the confirmation event; booking succeeds even when the
	// broker is down.
	_ = queue_publisher.PublishReservationConfirmed(ctx, queue.ReservationConfirmedEvent{
		ReservationID: res.ID,
		UserID:        res.UserID,
		TableID:       res.TableID,
		Date:          res.Date,
		StartTime:     res.StartTime,
		EndTime:       res.EndTime,
		ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{"item": toReservationView(res)})
}

// Cancel handles DELETE /v1/reservations/:id. It soft-cancels the
// authenticated user's reservation. Cancelling twice is harmless and
// returns the cancelled state again; the freed window is immediately
// bookable by anyone.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	resID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	ctx := c.Request().Context()
	res, err := h.Reservations.Cancel(ctx, resID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		if errors.Is(err, repository.ErrForbidden) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel reservation"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toReservationView(res)})
}

// ListMine handles GET /v1/my-reservations. It returns the user's
// active reservations newest first. When none exist it returns an
// empty array.
func (h *ReservationHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	list, err := h.Reservations.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	items := make([]reservationView, 0, len(list))
	for _, r := range list {
		items = append(items, toReservationView(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
