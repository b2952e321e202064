package http

import (
	"net/http"

	paymentDomain "github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/payment"
	"github.com/SahanThiwanka/pawn-platform-sub000/internal/usecase/ledger"
	"github.com/SahanThiwanka/pawn-platform-sub000/internal/usecase/offer"

	"github.com/labstack/echo/v4"
)

// LoanHandler covers offer negotiation and the loan ledger: both surfaces
// read and mutate the same loan rows.
type LoanHandler struct {
	offers *offer.Usecase
	ledger *ledger.Usecase
}

func NewLoanHandler(offers *offer.Usecase, l *ledger.Usecase) *LoanHandler {
	return &LoanHandler{offers: offers, ledger: l}
}

type createOfferReq struct {
	AppraisedValue float64 `json:"appraised_value" validate:"required,gt=0,dec2"`
	LTVPercent     float64 `json:"ltv_percent"     validate:"required,gt=0,lte=100"`
	RatePercent    float64 `json:"rate_percent"    validate:"required,gt=0"`
	TermDays       int     `json:"term_days"       validate:"required,gt=0"`
}

func (h *LoanHandler) CreateOffer(c echo.Context) error {
	var req createOfferReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "validation failed", Details: ToFieldErrors(err),
		})
	}
	dto, err := h.offers.CreateOffer(c.Request().Context(), offer.CreateOfferInput{
		ShopID:         actorID(c),
		CollateralID:   c.Param("collateral_id"),
		AppraisedValue: req.AppraisedValue,
		LTVPercent:     req.LTVPercent,
		RatePercent:    req.RatePercent,
		TermDays:       req.TermDays,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) AcceptOffer(c echo.Context) error {
	dto, err := h.offers.AcceptOffer(c.Request().Context(), actorID(c), c.Param("loan_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type submitRequestReq struct {
	CollateralID string  `json:"collateral_id" validate:"required,hex32"`
	ShopID       string  `json:"shop_id"       validate:"required,hex32"`
	Amount       float64 `json:"amount"        validate:"required,gt=0,dec2"`
	TermDays     int     `json:"term_days"     validate:"required,gt=0"`
	RatePercent  float64 `json:"rate_percent"  validate:"required,gt=0"`
}

func (h *LoanHandler) SubmitRequest(c echo.Context) error {
	var req submitRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "validation failed", Details: ToFieldErrors(err),
		})
	}
	dto, err := h.offers.SubmitRequest(c.Request().Context(), offer.SubmitRequestInput{
		CustomerID:   actorID(c),
		CollateralID: req.CollateralID,
		ShopID:       req.ShopID,
		Amount:       req.Amount,
		TermDays:     req.TermDays,
		RatePercent:  req.RatePercent,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) AcceptRequest(c echo.Context) error {
	dto, err := h.offers.AcceptRequest(c.Request().Context(), actorID(c), c.Param("request_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) DeclineRequest(c echo.Context) error {
	dto, err := h.offers.DeclineRequest(c.Request().Context(), actorID(c), c.Param("request_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// GetLoan is the read-through balance view: it accrues before reporting the
// total due, so interest never "disappears" between views.
func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.ledger.TotalDue(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type amountReq struct {
	Amount float64 `json:"amount" validate:"required,gt=0,dec2"`
}

func (h *LoanHandler) Topup(c echo.Context) error {
	var req amountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "validation failed", Details: ToFieldErrors(err),
		})
	}
	dto, err := h.ledger.ApplyTopup(c.Request().Context(), c.Param("loan_id"), req.Amount)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Settle(c echo.Context) error {
	dto, err := h.ledger.Settle(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) MarkDefaulted(c echo.Context) error {
	dto, err := h.ledger.MarkDefaulted(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) AddLateFee(c echo.Context) error {
	var req amountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "validation failed", Details: ToFieldErrors(err),
		})
	}
	dto, err := h.ledger.AddLateFee(c.Request().Context(), c.Param("loan_id"), req.Amount)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type recordCashReq struct {
	Amount float64 `json:"amount" validate:"required,gt=0,dec2"`
	Kind   string  `json:"kind"   validate:"required,oneof=principal interest late_fee"`
}

// RecordCash enters a shop-collected payment into the review queue; the
// balance moves only when a reviewer approves it.
func (h *LoanHandler) RecordCash(c echo.Context) error {
	var req recordCashReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "validation failed", Details: ToFieldErrors(err),
		})
	}
	p, err := h.ledger.RecordCash(c.Request().Context(), c.Param("loan_id"),
		actorID(c), paymentDomain.Kind(req.Kind), req.Amount)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}
