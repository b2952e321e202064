package http

import (
	"net/http"
	"time"

	"github.com/SahanThiwanka/pawn-platform-sub000/internal/usecase/auction"

	"github.com/labstack/echo/v4"
)

type AuctionHandler struct{ uc *auction.Usecase }

func NewAuctionHandler(uc *auction.Usecase) *AuctionHandler { return &AuctionHandler{uc: uc} }

type scheduleAuctionReq struct {
	CollateralID string    `json:"collateral_id" validate:"required,hex32"`
	StartPrice   float64   `json:"start_price"   validate:"required,gt=0,dec2"`
	StartAt      time.Time `json:"start_at"      validate:"required"`
	EndAt        time.Time `json:"end_at"        validate:"required,gtfield=StartAt"`
}

func (h *AuctionHandler) Schedule(c echo.Context) error {
	var req scheduleAuctionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "validation failed", Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Schedule(c.Request().Context(), auction.ScheduleInput{
		ShopID:       actorID(c),
		CollateralID: req.CollateralID,
		StartPrice:   req.StartPrice,
		StartAt:      req.StartAt,
		EndAt:        req.EndAt,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type placeBidReq struct {
	Amount float64 `json:"amount" validate:"required,gt=0,dec2"`
}

func (h *AuctionHandler) PlaceBid(c echo.Context) error {
	var req placeBidReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "validation failed", Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.PlaceBid(c.Request().Context(), c.Param("auction_id"), actorID(c), req.Amount)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *AuctionHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("auction_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AuctionHandler) Settle(c echo.Context) error {
	dto, err := h.uc.Settle(c.Request().Context(), c.Param("auction_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
