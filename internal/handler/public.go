package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hawkerhub/hawker-reserve/internal/booking"
	"github.com/hawkerhub/hawker-reserve/internal/repository"
	"github.com/hawkerhub/hawker-reserve/internal/timeslot"
)

// PublicHandler exposes unauthenticated browse endpoints: hawker
// centres, their stalls and tables, a table's confirmed reservations
// for a date and the derived slot availability grid. These are the
// read paths a guest needs before deciding to register and book.
type PublicHandler struct {
	Venues       *repository.VenueRepo
	Stalls       *repository.StallRepo
	Tables       *repository.TableRepo
	Reservations *repository.ReservationRepo
	Vouchers     *repository.VoucherRepo
}

// NewPublicHandler constructs a PublicHandler with the provided
// repositories. All dependencies must be non-nil.
func NewPublicHandler(venues *repository.VenueRepo, stalls *repository.StallRepo, tables *repository.TableRepo, reservations *repository.ReservationRepo, vouchers *repository.VoucherRepo) *PublicHandler {
	if venues == nil || stalls == nil || tables == nil || reservations == nil || vouchers == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{Venues: venues, Stalls: stalls, Tables: tables, Reservations: reservations, Vouchers: vouchers}
}

// PublicVenue is a hawker centre exposed via the public API. Only
// safe fields are included.
type PublicVenue struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Description *string `json:"description,omitempty"`
}

// PublicStall is a stall exposed via the public API.
type PublicStall struct {
	ID      uint64  `json:"id"`
	Name    string  `json:"name"`
	Cuisine string  `json:"cuisine"`
	UnitNo  *string `json:"unit_no,omitempty"`
}

// PublicTable is a bookable table exposed via the public API.
type PublicTable struct {
	ID       uint64 `json:"id"`
	Label    string `json:"label"`
	Capacity uint32 `json:"capacity"`
}

// PublicVoucher is a reward catalog entry exposed via the public API.
type PublicVoucher struct {
	ID             uint64  `json:"id"`
	Name           string  `json:"name"`
	Description    *string `json:"description,omitempty"`
	PointsRequired int64   `json:"points_required"`
	DiscountValue  uint32  `json:"discount_value"`
	ValidityDays   int     `json:"validity_days"`
}

// ListVenues handles GET /v1/venues.
func (h *PublicHandler) ListVenues(c echo.Context) error {
	venues, err := h.Venues.ListActive(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load venues"})
	}
	out := make([]PublicVenue, 0, len(venues))
	for _, v := range venues {
		out = append(out, PublicVenue{ID: v.ID, Name: v.Name, Address: v.Address, Description: v.Description})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// ListStalls handles GET /v1/venues/:id/stalls. An unknown venue
// yields an empty list rather than an error.
func (h *PublicHandler) ListStalls(c echo.Context) error {
	venueID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	stalls, err := h.Stalls.ListByVenue(c.Request().Context(), venueID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load stalls"})
	}
	out := make([]PublicStall, 0, len(stalls))
	for _, s := range stalls {
		out = append(out, PublicStall{ID: s.ID, Name: s.Name, Cuisine: s.Cuisine, UnitNo: s.UnitNo})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// ListTables handles GET /v1/venues/:id/tables. Tables come back
// ordered by label; an unknown venue yields an empty list.
func (h *PublicHandler) ListTables(c echo.Context) error {
	venueID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	tables, err := h.Tables.ListByVenue(c.Request().Context(), venueID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load tables"})
	}
	out := make([]PublicTable, 0, len(tables))
	for _, t := range tables {
		out = append(out, PublicTable{ID: t.ID, Label: t.Label, Capacity: t.Capacity})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// ListTableReservations handles GET /v1/tables/:id/reservations?date=.
// It returns the table's confirmed reservations for the date ordered
// by start time so clients can render the day's bookings.
func (h *PublicHandler) ListTableReservations(c echo.Context) error {
	tableID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
	}
	date := c.QueryParam("date")
	if _, err := time.Parse(booking.DateLayout, date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date query parameter must be YYYY-MM-DD"})
	}
	list, err := h.Reservations.ListByTableAndDate(c.Request().Context(), tableID, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	items := make([]reservationView, 0, len(list))
	for _, r := range list {
		items = append(items, toReservationView(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListTableSlots handles GET /v1/tables/:id/slots?date=. It combines
// the operating-hours slot grid with the day's confirmed reservations:
// a slot is unavailable when its start time falls inside an existing
// [start, end) window.
func (h *PublicHandler) ListTableSlots(c echo.Context) error {
	tableID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
	}
	date := c.QueryParam("date")
	if _, err := time.Parse(booking.DateLayout, date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date query parameter must be YYYY-MM-DD"})
	}
	ctx := c.Request().Context()
	if _, err := h.Tables.GetByID(ctx, tableID); err != nil {
		if err == repository.ErrTableNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	list, err := h.Reservations.ListByTableAndDate(ctx, tableID, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	reserved := make([]booking.Interval, 0, len(list))
	for _, r := range list {
		start, err := timeslot.ToMinutes(r.StartTime)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "corrupt reservation times"})
		}
		end, err := timeslot.ToMinutes(r.EndTime)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "corrupt reservation times"})
		}
		reserved = append(reserved, booking.Interval{Start: start, End: end})
	}
	slots, err := booking.AvailableSlots(reserved)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to compute slots"})
	}
	return c.JSON(http.StatusOK, echo.Map{"date": date, "slots": slots})
}

// ListVouchers handles GET /v1/vouchers, the public reward catalog.
func (h *PublicHandler) ListVouchers(c echo.Context) error {
	vouchers, err := h.Vouchers.ListActive(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load vouchers"})
	}
	out := make([]PublicVoucher, 0, len(vouchers))
	for _, v := range vouchers {
		out = append(out, PublicVoucher{
			ID:             v.ID,
			Name:           v.Name,
			Description:    v.Description,
			PointsRequired: v.PointsRequired,
			DiscountValue:  v.DiscountValue,
			ValidityDays:   v.ValidityDays,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
