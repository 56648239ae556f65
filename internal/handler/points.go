package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hawkerhub/hawker-reserve/internal/model"
	"github.com/hawkerhub/hawker-reserve/internal/queue"
	"github.com/hawkerhub/hawker-reserve/internal/repository"
	queue_publisher "github.com/hawkerhub/hawker-reserve/internal/service"
)

// PointsHandler serves the loyalty points and voucher endpoints. The
// points ledger itself guarantees that every balance change writes a
// matching history entry; the handler binds input, maps ledger errors
// to HTTP statuses and publishes events.
type PointsHandler struct {
	Points   *repository.PointsRepo
	Vouchers *repository.VoucherRepo
}

// NewPointsHandler constructs a PointsHandler with the provided
// repositories. All dependencies must be non-nil.
func NewPointsHandler(points *repository.PointsRepo, vouchers *repository.VoucherRepo) *PointsHandler {
	if points == nil || vouchers == nil {
		panic("nil repository passed to NewPointsHandler")
	}
	return &PointsHandler{Points: points, Vouchers: vouchers}
}

type awardPointsReq struct {
	Action    string  `json:"action"`
	Reference *string `json:"reference"`
}

type redeemVoucherView struct {
	ID         uint64  `json:"id"`
	VoucherID  uint64  `json:"voucher_id"`
	Code       string  `json:"code"`
	ExpiryDate string  `json:"expiry_date"`
	IsUsed     bool    `json:"is_used"`
	UsedDate   *string `json:"used_date,omitempty"`
	OrderID    *string `json:"order_id,omitempty"`
}

func toRedeemedVoucherView(rv *model.RedeemedVoucher) redeemVoucherView {
	v := redeemVoucherView{
		ID:         rv.ID,
		VoucherID:  rv.VoucherID,
		Code:       rv.Code,
		ExpiryDate: rv.ExpiryDate.UTC().Format(time.RFC3339),
		IsUsed:     rv.IsUsed,
		OrderID:    rv.OrderID,
	}
	if rv.UsedDate != nil {
		s := rv.UsedDate.UTC().Format(time.RFC3339)
		v.UsedDate = &s
	}
	return v
}

type historyEntryView struct {
	ID              uint64  `json:"id"`
	TransactionType string  `json:"transaction_type"`
	Points          int64   `json:"points"`
	Description     string  `json:"description"`
	Reference       *string `json:"reference,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

// GetBalance handles GET /v1/points. A user who has never earned a
// point sees a zero balance rather than a 404.
func (h *PointsHandler) GetBalance(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	acc, err := h.Points.GetAccount(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load points balance"})
	}
	return c.JSON(http.StatusOK, echo.Map{"total_points": acc.TotalPoints})
}

// ListHistory handles GET /v1/points/history, newest entries first.
func (h *PointsHandler) ListHistory(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	entries, err := h.Points.ListHistory(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load points history"})
	}
	items := make([]historyEntryView, 0, len(entries))
	for _, e := range entries {
		items = append(items, historyEntryView{
			ID:              e.ID,
			TransactionType: e.TransactionType,
			Points:          e.Points,
			Description:     e.Description,
			Reference:       e.Reference,
			CreatedAt:       e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Award handles POST /v1/points/award. The action decides the grant:
// "upload" earns 10 points, "upvote" earns 5. Point amounts are fixed
// policy; the request never carries one.
func (h *PointsHandler) Award(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req awardPointsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	var (
		txType      string
		points      int64
		description string
	)
	switch req.Action {
	case "upload":
		txType, points, description = model.PointsTxUpload, model.PointsPhotoUpload, "photo upload"
	case "upvote":
		txType, points, description = model.PointsTxUpvote, model.PointsUpvote, "photo upvote"
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "action must be \"upload\" or \"upvote\""})
	}

	ctx := c.Request().Context()
	balance, entry, err := h.Points.Award(ctx, userID, txType, points, description, req.Reference)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to award points"})
	}

	_ = queue_publisher.PublishPointsAwarded(ctx, queue.PointsAwardedEvent{
		UserID:     userID,
		TxType:     txType,
		Points:     entry.Points,
		NewBalance: balance,
		AwardedAt:  time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{"points_awarded": entry.Points, "total_points": balance})
}

// Redeem handles POST /v1/vouchers/:id/redeem. It deducts the
// voucher's point cost and mints a unique redemption code in a single
// transaction, so a failed code insert never leaves points missing.
// Returns 404 for an unknown or inactive voucher and 409 when the
// balance cannot cover the cost.
func (h *PointsHandler) Redeem(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	voucherID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid voucher id"})
	}

	ctx := c.Request().Context()
	voucher, err := h.Vouchers.GetActive(ctx, voucherID)
	if err != nil {
		if errors.Is(err, repository.ErrVoucherNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "voucher not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	tx, err := h.Points.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	ref := strconv.FormatUint(voucher.ID, 10)
	balance, entry, err := h.Points.MutateTx(ctx, tx, userID, model.PointsTxRedeem, -voucher.PointsRequired,
		fmt.Sprintf("redeemed voucher %q", voucher.Name), &ref)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientPoints) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "insufficient points"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to redeem voucher"})
	}

	redeemed, err := h.Vouchers.InsertRedeemedTx(ctx, tx, userID, voucher, time.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to redeem voucher"})
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to redeem voucher"})
	}
	committed = true

	_ = queue_publisher.PublishPointsAwarded(ctx, queue.PointsAwardedEvent{
		UserID:     userID,
		TxType:     model.PointsTxRedeem,
		Points:     entry.Points,
		NewBalance: balance,
		AwardedAt:  time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"item":         toRedeemedVoucherView(redeemed),
		"total_points": balance,
	})
}

type useVoucherReq struct {
	Code    string  `json:"code"`
	OrderID *string `json:"order_id"`
}

// Use handles POST /v1/vouchers/use. It consumes a redemption code at
// the point of sale. Codes are single-use: 404 for an unknown code,
// 409 when it was already used and 410 when it has expired.
func (h *PointsHandler) Use(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req useVoucherReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code is required"})
	}

	rv, err := h.Vouchers.Use(c.Request().Context(), userID, req.Code, req.OrderID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrVoucherNotFound), errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "voucher code not found"})
		case errors.Is(err, repository.ErrVoucherAlreadyUsed):
			return c.JSON(http.StatusConflict, echo.Map{"error": "voucher code already used"})
		case errors.Is(err, repository.ErrVoucherExpired):
			return c.JSON(http.StatusGone, echo.Map{"error": "voucher code expired"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to use voucher"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toRedeemedVoucherView(rv)})
}

// ListMyVouchers handles GET /v1/my-vouchers, newest first.
func (h *PointsHandler) ListMyVouchers(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	list, err := h.Vouchers.ListRedeemedByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load vouchers"})
	}
	items := make([]redeemVoucherView, 0, len(list))
	for _, rv := range list {
		items = append(items, toRedeemedVoucherView(rv))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
