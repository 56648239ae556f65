package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hawkerhub/hawker-reserve/internal/model"
	"github.com/hawkerhub/hawker-reserve/internal/queue"
	"github.com/hawkerhub/hawker-reserve/internal/repository"
	queue_publisher "github.com/hawkerhub/hawker-reserve/internal/service"
)

// AdminHandler serves the catalog management endpoints: venues,
// stalls, tables, the voucher catalog and manual point adjustments.
// The router guards every route with RequireRole("ADMIN").
type AdminHandler struct {
	Venues   *repository.VenueRepo
	Stalls   *repository.StallRepo
	Tables   *repository.TableRepo
	Vouchers *repository.VoucherRepo
	Points   *repository.PointsRepo
}

// NewAdminHandler constructs an AdminHandler with the provided
// repositories. All dependencies must be non-nil.
func NewAdminHandler(venues *repository.VenueRepo, stalls *repository.StallRepo, tables *repository.TableRepo, vouchers *repository.VoucherRepo, points *repository.PointsRepo) *AdminHandler {
	if venues == nil || stalls == nil || tables == nil || vouchers == nil || points == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Venues: venues, Stalls: stalls, Tables: tables, Vouchers: vouchers, Points: points}
}

// adminVenueView is the admin response shape for a venue; unlike the
// public view it exposes the active flag.
type adminVenueView struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Description *string `json:"description,omitempty"`
	IsActive    bool    `json:"is_active"`
}

func toAdminVenueView(v *model.Venue) adminVenueView {
	return adminVenueView{ID: v.ID, Name: v.Name, Address: v.Address, Description: v.Description, IsActive: v.IsActive}
}

type createVenueReq struct {
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Description *string `json:"description"`
}

// CreateVenue handles POST /v1/admin/venues.
func (h *AdminHandler) CreateVenue(c echo.Context) error {
	var req createVenueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Name == "" || req.Address == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and address are required"})
	}
	v := &model.Venue{Name: req.Name, Address: req.Address, Description: req.Description, IsActive: true}
	if err := h.Venues.Create(c.Request().Context(), v); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create venue"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": toAdminVenueView(v)})
}

type updateVenueReq struct {
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// UpdateVenue handles PATCH /v1/admin/venues/:id. Absent fields keep
// their current value.
func (h *AdminHandler) UpdateVenue(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	var req updateVenueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()
	v, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if req.Name != nil {
		v.Name = *req.Name
	}
	if req.Address != nil {
		v.Address = *req.Address
	}
	if req.Description != nil {
		v.Description = req.Description
	}
	if req.IsActive != nil {
		v.IsActive = *req.IsActive
	}
	if err := h.Venues.Update(ctx, v); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update venue"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toAdminVenueView(v)})
}

// DeleteVenue handles DELETE /v1/admin/venues/:id (soft delete).
func (h *AdminHandler) DeleteVenue(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	if err := h.Venues.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete venue"})
	}
	return c.NoContent(http.StatusNoContent)
}

type adminStallView struct {
	ID       uint64  `json:"id"`
	VenueID  uint64  `json:"venue_id"`
	Name     string  `json:"name"`
	Cuisine  string  `json:"cuisine"`
	UnitNo   *string `json:"unit_no,omitempty"`
	IsActive bool    `json:"is_active"`
}

func toAdminStallView(s *model.Stall) adminStallView {
	return adminStallView{ID: s.ID, VenueID: s.VenueID, Name: s.Name, Cuisine: s.Cuisine, UnitNo: s.UnitNo, IsActive: s.IsActive}
}

type createStallReq struct {
	VenueID uint64  `json:"venue_id"`
	Name    string  `json:"name"`
	Cuisine string  `json:"cuisine"`
	UnitNo  *string `json:"unit_no"`
}

// CreateStall handles POST /v1/admin/stalls.
func (h *AdminHandler) CreateStall(c echo.Context) error {
	var req createStallReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.VenueID == 0 || req.Name == "" || req.Cuisine == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "venue_id, name and cuisine are required"})
	}
	ctx := c.Request().Context()
	if _, err := h.Venues.GetByID(ctx, req.VenueID); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	s := &model.Stall{VenueID: req.VenueID, Name: req.Name, Cuisine: req.Cuisine, UnitNo: req.UnitNo, IsActive: true}
	if err := h.Stalls.Create(ctx, s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create stall"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": toAdminStallView(s)})
}

type updateStallReq struct {
	Name     *string `json:"name"`
	Cuisine  *string `json:"cuisine"`
	UnitNo   *string `json:"unit_no"`
	IsActive *bool   `json:"is_active"`
}

// UpdateStall handles PATCH /v1/admin/stalls/:id.
func (h *AdminHandler) UpdateStall(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid stall id"})
	}
	var req updateStallReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()
	s, err := h.Stalls.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrStallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "stall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if req.Name != nil {
		s.Name = *req.Name
	}
	if req.Cuisine != nil {
		s.Cuisine = *req.Cuisine
	}
	if req.UnitNo != nil {
		s.UnitNo = req.UnitNo
	}
	if req.IsActive != nil {
		s.IsActive = *req.IsActive
	}
	if err := h.Stalls.Update(ctx, s); err != nil {
		if errors.Is(err, repository.ErrStallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "stall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update stall"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toAdminStallView(s)})
}

// DeleteStall handles DELETE /v1/admin/stalls/:id (soft delete).
func (h *AdminHandler) DeleteStall(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid stall id"})
	}
	if err := h.Stalls.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrStallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "stall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete stall"})
	}
	return c.NoContent(http.StatusNoContent)
}

type adminTableView struct {
	ID       uint64 `json:"id"`
	VenueID  uint64 `json:"venue_id"`
	Label    string `json:"label"`
	Capacity uint32 `json:"capacity"`
	IsActive bool   `json:"is_active"`
}

func toAdminTableView(t *model.Table) adminTableView {
	return adminTableView{ID: t.ID, VenueID: t.VenueID, Label: t.Label, Capacity: t.Capacity, IsActive: t.IsActive}
}

type createTableReq struct {
	VenueID  uint64 `json:"venue_id"`
	Label    string `json:"label"`
	Capacity uint32 `json:"capacity"`
}

// CreateTable handles POST /v1/admin/tables.
func (h *AdminHandler) CreateTable(c echo.Context) error {
	var req createTableReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.VenueID == 0 || req.Label == "" || req.Capacity == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "venue_id, label and capacity are required"})
	}
	ctx := c.Request().Context()
	if _, err := h.Venues.GetByID(ctx, req.VenueID); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	t := &model.Table{VenueID: req.VenueID, Label: req.Label, Capacity: req.Capacity, IsActive: true}
	if err := h.Tables.Create(ctx, t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create table"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": toAdminTableView(t)})
}

type updateTableReq struct {
	Label    *string `json:"label"`
	Capacity *uint32 `json:"capacity"`
	IsActive *bool   `json:"is_active"`
}

// UpdateTable handles PATCH /v1/admin/tables/:id.
func (h *AdminHandler) UpdateTable(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
	}
	var req updateTableReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()
	t, err := h.Tables.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTableNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if req.Label != nil {
		t.Label = *req.Label
	}
	if req.Capacity != nil {
		t.Capacity = *req.Capacity
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}
	if err := h.Tables.Update(ctx, t); err != nil {
		if errors.Is(err, repository.ErrTableNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update table"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toAdminTableView(t)})
}

// DeleteTable handles DELETE /v1/admin/tables/:id. Deactivating a
// table blocks new bookings; existing reservations stay visible.
func (h *AdminHandler) DeleteTable(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
	}
	if err := h.Tables.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrTableNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete table"})
	}
	return c.NoContent(http.StatusNoContent)
}

type adminVoucherView struct {
	ID             uint64  `json:"id"`
	Name           string  `json:"name"`
	Description    *string `json:"description,omitempty"`
	PointsRequired int64   `json:"points_required"`
	DiscountValue  uint32  `json:"discount_value"`
	ValidityDays   int     `json:"validity_days"`
	IsActive       bool    `json:"is_active"`
}

func toAdminVoucherView(v *model.Voucher) adminVoucherView {
	return adminVoucherView{
		ID:             v.ID,
		Name:           v.Name,
		Description:    v.Description,
		PointsRequired: v.PointsRequired,
		DiscountValue:  v.DiscountValue,
		ValidityDays:   v.ValidityDays,
		IsActive:       v.IsActive,
	}
}

type createVoucherReq struct {
	Name           string  `json:"name"`
	Description    *string `json:"description"`
	PointsRequired int64   `json:"points_required"`
	DiscountValue  uint32  `json:"discount_value"`
	ValidityDays   int     `json:"validity_days"`
}

// CreateVoucher handles POST /v1/admin/vouchers.
func (h *AdminHandler) CreateVoucher(c echo.Context) error {
	var req createVoucherReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Name == "" || req.PointsRequired <= 0 || req.ValidityDays <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, a positive points_required and a positive validity_days are required"})
	}
	v := &model.Voucher{
		Name:           req.Name,
		Description:    req.Description,
		PointsRequired: req.PointsRequired,
		DiscountValue:  req.DiscountValue,
		ValidityDays:   req.ValidityDays,
		IsActive:       true,
	}
	if err := h.Vouchers.Create(c.Request().Context(), v); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create voucher"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": toAdminVoucherView(v)})
}

type updateVoucherReq struct {
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	PointsRequired *int64  `json:"points_required"`
	DiscountValue  *uint32 `json:"discount_value"`
	ValidityDays   *int    `json:"validity_days"`
	IsActive       *bool   `json:"is_active"`
}

// UpdateVoucher handles PATCH /v1/admin/vouchers/:id. Changing a
// voucher never touches codes already redeemed from it.
func (h *AdminHandler) UpdateVoucher(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid voucher id"})
	}
	var req updateVoucherReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()
	v, err := h.Vouchers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVoucherNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "voucher not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if req.Name != nil {
		v.Name = *req.Name
	}
	if req.Description != nil {
		v.Description = req.Description
	}
	if req.PointsRequired != nil {
		if *req.PointsRequired <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "points_required must be positive"})
		}
		v.PointsRequired = *req.PointsRequired
	}
	if req.DiscountValue != nil {
		v.DiscountValue = *req.DiscountValue
	}
	if req.ValidityDays != nil {
		if *req.ValidityDays <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "validity_days must be positive"})
		}
		v.ValidityDays = *req.ValidityDays
	}
	if req.IsActive != nil {
		v.IsActive = *req.IsActive
	}
	if err := h.Vouchers.Update(ctx, v); err != nil {
		if errors.Is(err, repository.ErrVoucherNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "voucher not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update voucher"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toAdminVoucherView(v)})
}

type adjustPointsReq struct {
	UserID      uint64 `json:"user_id"`
	Delta       int64  `json:"delta"`
	Description string `json:"description"`
}

// AdjustPoints handles POST /v1/admin/points/adjust. The delta may be
// negative but can never push a balance below zero; that case returns
// 409 with the balance untouched.
func (h *AdminHandler) AdjustPoints(c echo.Context) error {
	var req adjustPointsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.UserID == 0 || req.Delta == 0 || req.Description == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id, a non-zero delta and description are required"})
	}
	ctx := c.Request().Context()
	balance, err := h.Points.Adjust(ctx, req.UserID, req.Delta, req.Description)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientPoints) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "adjustment would make balance negative"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to adjust points"})
	}

	_ = queue_publisher.PublishPointsAwarded(ctx, queue.PointsAwardedEvent{
		UserID:     req.UserID,
		TxType:     model.PointsTxAdjust,
		Points:     req.Delta,
		NewBalance: balance,
		AwardedAt:  time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{"user_id": req.UserID, "total_points": balance})
}
