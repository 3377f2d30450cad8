package catalog

import (
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	domain "github.com/donaldgifford/offer-catalog/pkg/types"
)

const (
	dateLayout = "2006-01-02"

	defaultImageSize = 100
)

// ParseCoupons converts a JSON array of offers into coupons. A non-array node
// yields an empty slice.
func ParseCoupons(n Node) []domain.Coupon {
	elems := n.Array()
	coupons := make([]domain.Coupon, 0, len(elems))
	for _, e := range elems {
		coupons = append(coupons, ParseCoupon(e))
	}
	return coupons
}

// ParseCoupon converts a single offer node. It never fails: missing or
// malformed fields fall back to their zero value or are left absent.
func ParseCoupon(n Node) domain.Coupon {
	c := domain.Coupon{
		ID:               n.Get("id").IntValue(),
		ShortText:        n.Get("shortOffer").StringValue(),
		ShortDescription: n.Get("shortDescription").StringValue(),
		Description:      n.Get("description").StringValue(),
		Tags:             n.Get("tags").StringArray(),
		Online:           n.Get("isOnline").BoolValue(),
		Thumbnail:        ParseImage(n.Get("thumbnail")),
		Image:            ParseImage(n.Get("image")),
		Store:            ParseStore(n.Get("store")),
		Company:          ParseCompany(n.Get("company")),
		RedemptionCode:   ParseRedemptionCodeInfo(n.Get("redemptionCode")),
	}

	if link, ok := n.Get("link").URL(); ok {
		c.Link = link
	}

	if s, ok := n.Get("expirationDate").String(); ok {
		c.ExpirationDate = ParseDate(s)
	}

	return c
}

// ParseImage returns nil when the node is empty or has no usable URL, even if
// the remaining fields are valid.
func ParseImage(n Node) *domain.CouponImage {
	if n.IsEmpty() {
		return nil
	}

	src, ok := n.Get("url").URL()
	if !ok {
		return nil
	}

	img := &domain.CouponImage{
		SourceURL: src,
		Width:     defaultImageSize,
		Height:    defaultImageSize,
		Color:     ParseColor(n.Get("rgbColor").StringValue()),
	}
	if w, ok := n.Get("width").Float(); ok {
		img.Width = w
	}
	if h, ok := n.Get("height").Float(); ok {
		img.Height = h
	}
	return img
}

// ParseColor parses #rgb or #rrggbb (the leading # is optional). It returns
// nil for anything else.
func ParseColor(s string) *domain.Color {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return nil
	}

	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return nil
	}
	r, g, b := c.RGB255()
	return &domain.Color{R: r, G: g, B: b}
}

// ParseDate parses a YYYY-MM-DD date in UTC, returning nil when it does not
// match.
func ParseDate(s string) *time.Time {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &t
}

// ParseStore returns nil for an empty node; there is no zero-valued store.
func ParseStore(n Node) *domain.Store {
	if n.IsEmpty() {
		return nil
	}

	s := &domain.Store{ID: n.Get("id").IntValue()}
	if name, ok := n.Get("name").String(); ok {
		s.Name = &name
	}
	if addr, ok := n.Get("address").String(); ok {
		s.Address = &addr
	}
	if lat, ok := n.Get("latitude").Float(); ok {
		s.Latitude = &lat
	}
	if lng, ok := n.Get("longitude").Float(); ok {
		s.Longitude = &lng
	}
	return s
}

// ParseCompany converts a company node, including its logo.
func ParseCompany(n Node) domain.Company {
	return domain.Company{
		ID:   n.Get("id").IntValue(),
		Name: n.Get("name").StringValue(),
		Logo: ParseImage(n.Get("logo")),
	}
}

// ParseCompanyWithCount converts a company node carrying an offerCount.
func ParseCompanyWithCount(n Node) domain.CompanyWithCount {
	return domain.CompanyWithCount{
		Company:    ParseCompany(n),
		OfferCount: n.Get("offerCount").IntValue(),
	}
}

// ParseCompanyCategory converts a category node and its companies.
func ParseCompanyCategory(n Node) domain.CompanyCategory {
	elems := n.Get("companies").Array()
	companies := make([]domain.CompanyWithCount, 0, len(elems))
	for _, e := range elems {
		companies = append(companies, ParseCompanyWithCount(e))
	}

	return domain.CompanyCategory{
		ID:        n.Get("id").IntValue(),
		Name:      n.Get("name").StringValue(),
		Tags:      n.Get("tags").StringArray(),
		Companies: companies,
	}
}

// ParseCompanyCategories converts a JSON array of categories.
func ParseCompanyCategories(n Node) []domain.CompanyCategory {
	elems := n.Array()
	categories := make([]domain.CompanyCategory, 0, len(elems))
	for _, e := range elems {
		categories = append(categories, ParseCompanyCategory(e))
	}
	return categories
}

// ParseRedemptionCodeInfo returns nil for an empty node.
func ParseRedemptionCodeInfo(n Node) *domain.RedemptionCodeInfo {
	if n.IsEmpty() {
		return nil
	}

	info := &domain.RedemptionCodeInfo{
		Limited:         n.Get("limited").BoolValue(),
		AlreadyAssigned: n.Get("alreadyAssigned").BoolValue(),
	}
	if total, ok := n.Get("totalCodes").Int(); ok {
		info.TotalCodes = &total
	}
	if available, ok := n.Get("availableCodes").Int(); ok {
		info.AvailableCodes = &available
	}
	return info
}

// ParseRedemptionCode returns nil for an empty node.
func ParseRedemptionCode(n Node) *domain.RedemptionCode {
	if n.IsEmpty() {
		return nil
	}

	return &domain.RedemptionCode{
		Code:        n.Get("code").StringValue(),
		DisplayCode: n.Get("displayCode").StringValue(),
		Formats:     n.Get("formats").StringArray(),
	}
}
