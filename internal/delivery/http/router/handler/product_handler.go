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

type ProductHandler struct {
	uc usecase.ProductUsecase
}

func NewProductHandler(uc usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// List filters products by ?storeId=&category=&q=&minPrice=&maxPrice=&purity=&limit=.
// purity may repeat.
func (h *ProductHandler) List(c echo.Context) error {
	var (
		filter   entity.ProductFilter
		storeID  string
		minPrice float64
		maxPrice float64
	)
	err := echo.QueryParamsBinder(c).
		String("storeId", &storeID).
		String("category", &filter.Category).
		String("q", &filter.Search).
		Float64("minPrice", &minPrice).
		Float64("maxPrice", &maxPrice).
		Strings("purity", &filter.Purities).
		Int("limit", &filter.Limit).
		BindError()
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product filter")
	}

	if storeID != "" {
		if filter.StoreID, err = uuid.Parse(storeID); err != nil {
			return response.BindingError(c, "INVALID_ID", "Invalid store ID")
		}
	}
	if c.QueryParam("minPrice") != "" {
		filter.MinPrice = &minPrice
	}
	if c.QueryParam("maxPrice") != "" {
		filter.MaxPrice = &maxPrice
	}

	products, err := h.uc.ListProducts(c.Request().Context(), filter)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dto.NewProductListResponse(products), "")
}

func (h *ProductHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid product ID")
	}

	product, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dto.NewProductResponse(product), "")
}

// Create lists a product in the caller's store. Store owners only.
func (h *ProductHandler) Create(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req dto.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.uc.AddProduct(c.Request().Context(), req.ToInput(ownerID))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, dto.NewProductResponse(product), "Product added")
}
