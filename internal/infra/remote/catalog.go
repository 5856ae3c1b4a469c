package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"gahana/internal/delivery/http/dto"
	"gahana/internal/domain/entity"
	domainerrors "gahana/internal/domain/errors"
	"gahana/internal/errors"

	"github.com/google/uuid"
)

// GetProfile fetches the role-tagged profile of a user.
func (c *Client) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	var resp dto.ProfileResponse
	err := c.authorized(ctx, http.MethodGet, "/profiles/"+url.PathEscape(userID.String()), nil, &resp)
	if errors.Is(err, domainerrors.ErrNotFound) || errors.Is(err, domainerrors.ErrProfileNotFound) {
		return nil, domainerrors.ErrProfileNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "profile request failed")
	}

	return resp.ToEntity(), nil
}

// CurrentUser returns the account behind the stored session.
func (c *Client) CurrentUser(ctx context.Context) (*dto.UserResponse, error) {
	var resp dto.UserResponse
	if err := c.authorized(ctx, http.MethodGet, "/auth/session", nil, &resp); err != nil {
		return nil, errors.Wrap(err, "session request failed")
	}

	return &resp, nil
}

// ListStores returns stores newest first. A non-positive limit lists all.
func (c *Client) ListStores(ctx context.Context, limit int) ([]*entity.Store, error) {
	path := "/stores"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var resp []*dto.StoreResponse
	if err := c.do(ctx, http.MethodGet, path, "", nil, &resp); err != nil {
		return nil, errors.Wrap(err, "store list request failed")
	}

	stores := make([]*entity.Store, 0, len(resp))
	for _, s := range resp {
		stores = append(stores, s.ToEntity())
	}

	return stores, nil
}

// ListPrices returns the current metal prices.
func (c *Client) ListPrices(ctx context.Context) ([]*entity.MetalPrice, error) {
	var resp []*dto.PriceResponse
	if err := c.do(ctx, http.MethodGet, "/metal-prices", "", nil, &resp); err != nil {
		return nil, errors.Wrap(err, "price list request failed")
	}

	prices := make([]*entity.MetalPrice, 0, len(resp))
	for _, p := range resp {
		prices = append(prices, p.ToEntity())
	}

	return prices, nil
}

// ListProducts returns products matching filter, newest first.
func (c *Client) ListProducts(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error) {
	var resp []*dto.ProductResponse
	if err := c.do(ctx, http.MethodGet, productListPath(filter), "", nil, &resp); err != nil {
		return nil, errors.Wrap(err, "product list request failed")
	}

	products := make([]*entity.Product, 0, len(resp))
	for _, p := range resp {
		products = append(products, p.ToEntity())
	}

	return products, nil
}

// GetProduct returns one product.
func (c *Client) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var resp dto.ProductResponse
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id.String()), "", nil, &resp); err != nil {
		return nil, errors.Wrap(err, "product request failed")
	}

	return resp.ToEntity(), nil
}

func productListPath(filter entity.ProductFilter) string {
	query := url.Values{}
	if filter.StoreID != uuid.Nil {
		query.Set("storeId", filter.StoreID.String())
	}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.Search != "" {
		query.Set("q", filter.Search)
	}
	if filter.MinPrice != nil {
		query.Set("minPrice", strconv.FormatFloat(*filter.MinPrice, 'f', -1, 64))
	}
	if filter.MaxPrice != nil {
		query.Set("maxPrice", strconv.FormatFloat(*filter.MaxPrice, 'f', -1, 64))
	}
	for _, p := range filter.Purities {
		query.Add("purity", p)
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}

	if len(query) == 0 {
		return "/products"
	}

	return "/products?" + query.Encode()
}
