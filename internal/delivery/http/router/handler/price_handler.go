package handler

import (
	"net/http"

	"gahana/internal/delivery/http/dto"
	"gahana/internal/delivery/http/response"
	"gahana/internal/errors"
	"gahana/internal/usecase"

	"github.com/labstack/echo/v4"
)

type PriceHandler struct {
	uc usecase.PriceUsecase
}

func NewPriceHandler(uc usecase.PriceUsecase) *PriceHandler {
	return &PriceHandler{uc: uc}
}

func (h *PriceHandler) List(c echo.Context) error {
	prices, err := h.uc.ListPrices(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dto.NewPriceListResponse(prices), "")
}

// Update sets one price. Admin only.
func (h *PriceHandler) Update(c echo.Context) error {
	adminID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req dto.UpdatePriceRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid price input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	price, err := h.uc.UpdatePrice(c.Request().Context(), req.ToInput(adminID))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dto.NewPriceResponse(price), "Price updated")
}
