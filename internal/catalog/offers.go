package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	domain "github.com/donaldgifford/offer-catalog/pkg/types"
)

const (
	storeOffersPerPage = 50
	noStoreID          = -1
)

// FindOffers searches offers around loc.
func (c *Client) FindOffers(
	ctx context.Context,
	loc domain.Location,
	sensor bool,
	filter *domain.FilterOptions,
	pagination *domain.PaginationInfo,
) ([]domain.Coupon, error) {
	params := ComposeParams(locationParams(loc, sensor), pagination, filter)
	return c.getOffers(ctx, "find", "offers/find", params)
}

// RecommendedOffers returns the offers recommended for loc.
func (c *Client) RecommendedOffers(
	ctx context.Context,
	loc domain.Location,
	sensor bool,
	pagination *domain.PaginationInfo,
) ([]domain.Coupon, error) {
	params := ComposeParams(locationParams(loc, sensor), pagination, nil)
	return c.getOffers(ctx, "recommended", "offers/recommended", params)
}

// RelatedOffers returns offers related to offer. An offer without a store is
// sent with storeId -1.
func (c *Client) RelatedOffers(
	ctx context.Context,
	offer *domain.Coupon,
	pagination *domain.PaginationInfo,
) ([]domain.Coupon, error) {
	storeID := noStoreID
	if id, ok := offer.StoreID(); ok {
		storeID = id
	}

	base := Params{
		"storeId": storeID,
		"offerId": offer.ID,
	}
	params := ComposeParams(base, pagination, nil)
	return c.getOffers(ctx, "related", "offers/related", params)
}

// StoreOffers returns up to 50 in-store offers within radiusMeters of loc.
func (c *Client) StoreOffers(
	ctx context.Context,
	loc domain.Location,
	radiusMeters float64,
	sensor bool,
	filter *domain.FilterOptions,
) ([]domain.Coupon, error) {
	return c.getOffers(ctx, "store", "offers/find", storeOffersParams(loc, radiusMeters, sensor, filter))
}

func storeOffersParams(
	loc domain.Location,
	radiusMeters float64,
	sensor bool,
	filter *domain.FilterOptions,
) Params {
	base := locationParams(loc, sensor)
	base["radiusInKm"] = radiusMeters / 1000
	base["includeOnline"] = false
	base["perPage"] = storeOffersPerPage
	return ComposeParams(base, nil, filter)
}

// OfferDetails fetches the offers with the given ids.
func (c *Client) OfferDetails(
	ctx context.Context,
	ids []int,
	loc domain.Location,
	sensor bool,
) ([]domain.Coupon, error) {
	params := locationParams(loc, sensor)
	params["ids"] = joinIDs(ids)
	params["includeOnline"] = false
	return c.getOffers(ctx, "get", "offers/get", params)
}

// Categories returns every company category.
func (c *Client) Categories(ctx context.Context) ([]domain.CompanyCategory, error) {
	n, err := c.get(ctx, "categories", "categories", nil)
	if err != nil {
		return nil, err
	}
	return ParseCompanyCategories(n), nil
}

// RedemptionCode requests a redemption code for offer. A nil code with a nil
// error means the API answered with an empty body.
func (c *Client) RedemptionCode(
	ctx context.Context,
	offer *domain.Coupon,
) (*domain.RedemptionCode, error) {
	path := fmt.Sprintf("offers/%d/code", offer.ID)
	n, err := c.get(ctx, "code", path, nil)
	if err != nil {
		return nil, classifyRedemptionError(err)
	}
	return ParseRedemptionCode(n), nil
}

func (c *Client) getOffers(
	ctx context.Context,
	operation, path string,
	params Params,
) ([]domain.Coupon, error) {
	n, err := c.get(ctx, operation, path, params)
	if err != nil {
		return nil, err
	}
	coupons := ParseCoupons(n)
	c.logger.Debug("offers fetched", "operation", operation, "count", len(coupons))
	return coupons, nil
}

func joinIDs(ids []int) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, ",")
}
