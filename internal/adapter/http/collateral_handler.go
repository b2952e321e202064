package http

import (
	"net/http"

	"github.com/SahanThiwanka/pawn-platform-sub000/internal/usecase/collateral"

	"github.com/labstack/echo/v4"
)

type CollateralHandler struct{ uc *collateral.Usecase }

func NewCollateralHandler(uc *collateral.Usecase) *CollateralHandler {
	return &CollateralHandler{uc: uc}
}

type registerCollateralReq struct {
	Title          string  `json:"title"           validate:"required"`
	Description    string  `json:"description"`
	EstimatedValue float64 `json:"estimated_value" validate:"required,gt=0,dec2"`
	ImageURL       string  `json:"image_url"       validate:"omitempty,url"`
}

func (h *CollateralHandler) Register(c echo.Context) error {
	var req registerCollateralReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Register(c.Request().Context(), collateral.RegisterInput{
		OwnerID:        actorID(c),
		Title:          req.Title,
		Description:    req.Description,
		EstimatedValue: req.EstimatedValue,
		ImageURL:       req.ImageURL,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *CollateralHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("collateral_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
