// Package domain defines the core business types for the offer catalog.
package domain

import (
	"fmt"
	"time"
)

// Location is a WGS84 coordinate used to anchor catalog queries.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Coupon is an offer returned by catalog queries.
type Coupon struct {
	ID               int      `json:"id"`
	ShortText        string   `json:"short_text"`
	ShortDescription string   `json:"short_description"`
	Description      string   `json:"description"`
	Tags             []string `json:"tags"`
	Online           bool     `json:"online"`
	Link             string   `json:"link,omitempty"`

	ExpirationDate *time.Time `json:"expiration_date,omitempty"`

	Thumbnail *CouponImage `json:"thumbnail,omitempty"`
	Image     *CouponImage `json:"image,omitempty"`

	Store          *Store              `json:"store,omitempty"`
	Company        Company             `json:"company"`
	RedemptionCode *RedemptionCodeInfo `json:"redemption_code,omitempty"`
}

// StoreID returns the id of the coupon's store and whether it has one.
func (c *Coupon) StoreID() (int, bool) {
	if c.Store == nil {
		return 0, false
	}
	return c.Store.ID, true
}

// CouponImage is a remote image with its display hints.
type CouponImage struct {
	SourceURL string  `json:"source_url"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Color     *Color  `json:"color,omitempty"`
}

// Color is an opaque RGB color.
type Color struct {
	R uint8
	G uint8
	B uint8
}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// Store is a physical location where an offer can be redeemed.
type Store struct {
	ID        int      `json:"id"`
	Name      *string  `json:"name,omitempty"`
	Address   *string  `json:"address,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Company is the brand publishing an offer.
type Company struct {
	ID   int          `json:"id"`
	Name string       `json:"name"`
	Logo *CouponImage `json:"logo,omitempty"`
}

// CompanyWithCount is a company annotated with its number of live offers.
type CompanyWithCount struct {
	Company
	OfferCount int `json:"offer_count"`
}

// CompanyCategory groups companies under a browsable category.
type CompanyCategory struct {
	ID        int                `json:"id"`
	Name      string             `json:"name"`
	Tags      []string           `json:"tags"`
	Companies []CompanyWithCount `json:"companies"`
}

// RedemptionCodeInfo describes the code stock attached to an offer.
type RedemptionCodeInfo struct {
	Limited         bool `json:"limited"`
	TotalCodes      *int `json:"total_codes,omitempty"`
	AvailableCodes  *int `json:"available_codes,omitempty"`
	AlreadyAssigned bool `json:"already_assigned"`
}

// RedemptionCode is a code assigned to the current user for an offer.
type RedemptionCode struct {
	Code        string   `json:"code"`
	DisplayCode string   `json:"display_code"`
	Formats     []string `json:"formats"`
}

// SearchResult is the response of a free-text catalog search.
type SearchResult struct {
	Companies []Company `json:"companies"`
	Tags      []string  `json:"tags"`
}

// FilterOptions narrows an offer query. Nil fields are not sent.
type FilterOptions struct {
	SearchTerm *string
	Tags       []string
	CompanyID  *int
	CategoryID *int
}

// PaginationInfo selects a page of results. Nil fields are not sent.
type PaginationInfo struct {
	Page    *int
	PerPage *int
}
