package handler

import (
	"net/http"

	"gahana/internal/delivery/http/dto"
	"gahana/internal/delivery/http/response"
	"gahana/internal/domain/entity"
	"gahana/internal/errors"
	"gahana/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const defaultStoreListLimit = 50

type StoreHandler struct {
	uc usecase.StoreUsecase
}

func NewStoreHandler(uc usecase.StoreUsecase) *StoreHandler {
	return &StoreHandler{uc: uc}
}

// List returns the catalogue. ?limit= caps the result.
func (h *StoreHandler) List(c echo.Context) error {
	limit := defaultStoreListLimit
	if err := echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "limit must be an integer")
	}

	stores, err := h.uc.ListStores(c.Request().Context(), limit)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dto.NewStoreListResponse(stores), "")
}

// Nearby ranks stores around ?lat=&lng= within ?radius= kilometres.
func (h *StoreHandler) Nearby(c echo.Context) error {
	var (
		origin entity.GeoPoint
		radius float64
	)
	err := echo.QueryParamsBinder(c).
		MustFloat64("lat", &origin.Lat).
		MustFloat64("lng", &origin.Lng).
		Float64("radius", &radius).
		BindError()
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "lat and lng are required numbers")
	}

	output, err := h.uc.NearbyStores(c.Request().Context(), &usecase.NearbyInput{Origin: origin, RadiusKm: radius})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dto.NewNearbyResponse(output), "")
}

func (h *StoreHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid store ID")
	}

	store, err := h.uc.GetStore(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dto.NewStoreResponse(store), "")
}

// Mine returns the store owned by the caller.
func (h *StoreHandler) Mine(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return err
	}

	store, err := h.uc.GetOwnerStore(c.Request().Context(), ownerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dto.NewStoreResponse(store), "")
}

func (h *StoreHandler) Create(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req dto.CreateStoreRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid store input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	store, err := h.uc.CreateStore(c.Request().Context(), req.ToInput(ownerID))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, dto.NewStoreResponse(store), "Store created")
}

// QRCode serves the store's share link as a PNG.
func (h *StoreHandler) QRCode(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid store ID")
	}

	png, err := h.uc.StoreQRCode(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
