package catalog

import (
	"fmt"
	"net/url"
	"strconv"

	domain "github.com/donaldgifford/offer-catalog/pkg/types"
)

// HighlightedOfferURL returns the highlighted offer page, scoped to the API
// key when one is configured.
func (c *Client) HighlightedOfferURL() string {
	u := c.baseURL + "offers/highlighted"
	if c.apiKey != "" {
		return u + "/" + url.PathEscape(c.apiKey)
	}
	return u
}

// RedemptionCodeImageURL returns the rendered code image for offerID. It
// reports false when no user token is known yet.
func (c *Client) RedemptionCodeImageURL(offerID int, format string, width, height int) (string, bool) {
	if c.tokens == nil {
		return "", false
	}
	token, ok := c.tokens.UserToken()
	if !ok {
		return "", false
	}

	q := url.Values{"userToken": {token}}
	return fmt.Sprintf(
		"%soffers/%d/code/%s/%d/%d?%s",
		c.baseURL, offerID, url.PathEscape(format), width, height, q.Encode(),
	), true
}

// ReportErrorURL returns the page used to report a problem with offer.
func (c *Client) ReportErrorURL(offer *domain.Coupon) string {
	u := fmt.Sprintf("%soffers/%d/report", c.baseURL, offer.ID)
	if id, ok := offer.StoreID(); ok {
		return u + "?storeId=" + strconv.Itoa(id)
	}
	return u
}
