package catalog_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/offer-catalog/internal/catalog"
	domain "github.com/donaldgifford/offer-catalog/pkg/types"
)

func floatPtr(f float64) *float64 { return &f }

const completeCouponJSON = `{
	"id": 1234,
	"shortOffer": "2x1",
	"shortDescription": "Two pizzas for one",
	"description": "Valid Monday to Thursday.",
	"tags": ["food", "pizza"],
	"isOnline": true,
	"link": "https://shop.example.com/offer/1234",
	"expirationDate": "2026-12-31",
	"thumbnail": {"url": "https://cdn.example.com/t.png", "width": 50, "height": 60, "rgbColor": "#FF0000"},
	"image": {"url": "https://cdn.example.com/i.png"},
	"store": {"id": 88, "name": "Downtown", "address": "Main St 1", "latitude": 40.5, "longitude": -3.7},
	"company": {"id": 9, "name": "Pizza Co", "logo": {"url": "https://cdn.example.com/logo.png", "rgbColor": "0f0"}},
	"redemptionCode": {"limited": true, "totalCodes": 100, "availableCodes": 12, "alreadyAssigned": false}
}`

func TestParseCoupon_Complete(t *testing.T) {
	t.Parallel()

	c := catalog.ParseCoupon(mustNode(t, completeCouponJSON))

	wantExpiry := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	want := domain.Coupon{
		ID:               1234,
		ShortText:        "2x1",
		ShortDescription: "Two pizzas for one",
		Description:      "Valid Monday to Thursday.",
		Tags:             []string{"food", "pizza"},
		Online:           true,
		Link:             "https://shop.example.com/offer/1234",
		ExpirationDate:   &wantExpiry,
		Thumbnail: &domain.CouponImage{
			SourceURL: "https://cdn.example.com/t.png",
			Width:     50,
			Height:    60,
			Color:     &domain.Color{R: 255},
		},
		Image: &domain.CouponImage{
			SourceURL: "https://cdn.example.com/i.png",
			Width:     100,
			Height:    100,
		},
		Store: &domain.Store{
			ID:        88,
			Name:      strPtr("Downtown"),
			Address:   strPtr("Main St 1"),
			Latitude:  floatPtr(40.5),
			Longitude: floatPtr(-3.7),
		},
		Company: domain.Company{
			ID:   9,
			Name: "Pizza Co",
			Logo: &domain.CouponImage{
				SourceURL: "https://cdn.example.com/logo.png",
				Width:     100,
				Height:    100,
				Color:     &domain.Color{G: 255},
			},
		},
		RedemptionCode: &domain.RedemptionCodeInfo{
			Limited:        true,
			TotalCodes:     intPtr(100),
			AvailableCodes: intPtr(12),
		},
	}

	assert.Equal(t, want, c)
}

func TestParseCoupon_Minimal(t *testing.T) {
	t.Parallel()

	c := catalog.ParseCoupon(mustNode(t, `{"id": 5, "company": {"id": 3}}`))

	assert.Equal(t, 5, c.ID)
	assert.Equal(t, 3, c.Company.ID)
	assert.Empty(t, c.Company.Name)
	assert.Nil(t, c.Company.Logo)
	assert.Empty(t, c.ShortText)
	assert.Empty(t, c.ShortDescription)
	assert.Empty(t, c.Description)
	assert.False(t, c.Online)
	require.NotNil(t, c.Tags)
	assert.Empty(t, c.Tags)
	assert.Empty(t, c.Link)
	assert.Nil(t, c.ExpirationDate)
	assert.Nil(t, c.Thumbnail)
	assert.Nil(t, c.Image)
	assert.Nil(t, c.Store)
	assert.Nil(t, c.RedemptionCode)
}

func TestParseCoupon_Degradation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		raw   string
		check func(t *testing.T, c domain.Coupon)
	}{
		{
			name: "missing id defaults to zero",
			raw:  `{"company": {"id": 1}}`,
			check: func(t *testing.T, c domain.Coupon) {
				t.Helper()
				assert.Equal(t, 0, c.ID)
			},
		},
		{
			name: "id as numeric string",
			raw:  `{"id": "77"}`,
			check: func(t *testing.T, c domain.Coupon) {
				t.Helper()
				assert.Equal(t, 77, c.ID)
			},
		},
		{
			name: "unparsable expiration date is absent",
			raw:  `{"id": 1, "expirationDate": "31/12/2026"}`,
			check: func(t *testing.T, c domain.Coupon) {
				t.Helper()
				assert.Nil(t, c.ExpirationDate)
			},
		},
		{
			name: "non-string expiration date is absent",
			raw:  `{"id": 1, "expirationDate": 20261231}`,
			check: func(t *testing.T, c domain.Coupon) {
				t.Helper()
				assert.Nil(t, c.ExpirationDate)
			},
		},
		{
			name: "empty store object is absent",
			raw:  `{"id": 1, "store": {}}`,
			check: func(t *testing.T, c domain.Coupon) {
				t.Helper()
				assert.Nil(t, c.Store)
			},
		},
		{
			name: "store with only id keeps optional fields absent",
			raw:  `{"id": 1, "store": {"id": 4, "latitude": "north"}}`,
			check: func(t *testing.T, c domain.Coupon) {
				t.Helper()
				require.NotNil(t, c.Store)
				assert.Equal(t, 4, c.Store.ID)
				assert.Nil(t, c.Store.Name)
				assert.Nil(t, c.Store.Address)
				assert.Nil(t, c.Store.Latitude)
				assert.Nil(t, c.Store.Longitude)
			},
		},
		{
			name: "invalid link is absent",
			raw:  `{"id": 1, "link": "not a url"}`,
			check: func(t *testing.T, c domain.Coupon) {
				t.Helper()
				assert.Empty(t, c.Link)
			},
		},
		{
			name: "tags with mixed element types are kept",
			raw:  `{"id": 1, "tags": ["a", 3]}`,
			check: func(t *testing.T, c domain.Coupon) {
				t.Helper()
				assert.Equal(t, []string{"a", "3"}, c.Tags)
			},
		},
		{
			name: "online as string flag",
			raw:  `{"id": 1, "isOnline": "true"}`,
			check: func(t *testing.T, c domain.Coupon) {
				t.Helper()
				assert.True(t, c.Online)
			},
		},
		{
			name: "redemption info without counts",
			raw:  `{"id": 1, "redemptionCode": {"limited": false, "alreadyAssigned": true}}`,
			check: func(t *testing.T, c domain.Coupon) {
				t.Helper()
				require.NotNil(t, c.RedemptionCode)
				assert.True(t, c.RedemptionCode.AlreadyAssigned)
				assert.Nil(t, c.RedemptionCode.TotalCodes)
				assert.Nil(t, c.RedemptionCode.AvailableCodes)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.check(t, catalog.ParseCoupon(mustNode(t, tt.raw)))
		})
	}
}

func TestParseImage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want *domain.CouponImage
	}{
		{
			name: "missing url drops the whole image",
			raw:  `{"width": 50, "height": 60, "rgbColor": "#FF0000"}`,
			want: nil,
		},
		{
			name: "unparsable url drops the whole image",
			raw:  `{"url": "::::", "width": 50}`,
			want: nil,
		},
		{
			name: "empty object",
			raw:  `{}`,
			want: nil,
		},
		{
			name: "null",
			raw:  `null`,
			want: nil,
		},
		{
			name: "defaults for size and color",
			raw:  `{"url": "https://cdn.example.com/x.jpg", "rgbColor": "purple"}`,
			want: &domain.CouponImage{SourceURL: "https://cdn.example.com/x.jpg", Width: 100, Height: 100},
		},
		{
			name: "non-numeric size falls back to default",
			raw:  `{"url": "https://cdn.example.com/x.jpg", "width": "wide", "height": 20.5}`,
			want: &domain.CouponImage{SourceURL: "https://cdn.example.com/x.jpg", Width: 100, Height: 20.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, catalog.ParseImage(mustNode(t, tt.raw)))
		})
	}
}

func TestParseColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want *domain.Color
	}{
		{in: "#FF0000", want: &domain.Color{R: 255}},
		{in: "00ff80", want: &domain.Color{G: 255, B: 128}},
		{in: "#fff", want: &domain.Color{R: 255, G: 255, B: 255}},
		{in: "", want: nil},
		{in: "#12345", want: nil},
		{in: "#FF0000AA", want: nil},
		{in: "#GG0000", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, catalog.ParseColor(tt.in))
		})
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	d := catalog.ParseDate("2025-02-28")
	require.NotNil(t, d)
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), *d)

	assert.Nil(t, catalog.ParseDate("2025-02-30"))
	assert.Nil(t, catalog.ParseDate("2025-2-3T00:00"))
	assert.Nil(t, catalog.ParseDate(""))
}

func TestParseCompanyCategories(t *testing.T) {
	t.Parallel()

	n := mustNode(t, `[
		{"id": 1, "name": "Food", "tags": ["food", "restaurants"], "companies": [
			{"id": 10, "name": "Pizza Co", "offerCount": 4},
			{"id": 11, "name": "Burger Co", "logo": {"url": "https://cdn.example.com/b.png"}}
		]},
		{"name": "Empty"}
	]`)

	got := catalog.ParseCompanyCategories(n)
	require.Len(t, got, 2)

	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, "Food", got[0].Name)
	assert.Equal(t, []string{"food", "restaurants"}, got[0].Tags)
	require.Len(t, got[0].Companies, 2)
	assert.Equal(t, 4, got[0].Companies[0].OfferCount)
	assert.Equal(t, "Pizza Co", got[0].Companies[0].Name)
	assert.Equal(t, 0, got[0].Companies[1].OfferCount)
	require.NotNil(t, got[0].Companies[1].Logo)

	assert.Equal(t, 0, got[1].ID)
	assert.Equal(t, []string{}, got[1].Tags)
	assert.Equal(t, []domain.CompanyWithCount{}, got[1].Companies)
}

func TestParseRedemptionCode(t *testing.T) {
	t.Parallel()

	got := catalog.ParseRedemptionCode(mustNode(t, `{"code":"ABC123","displayCode":"ABC-123","formats":["qr","ean13"]}`))
	require.NotNil(t, got)
	assert.Equal(t, domain.RedemptionCode{Code: "ABC123", DisplayCode: "ABC-123", Formats: []string{"qr", "ean13"}}, *got)

	noFormats := catalog.ParseRedemptionCode(mustNode(t, `{"code":"X"}`))
	require.NotNil(t, noFormats)
	assert.Equal(t, []string{}, noFormats.Formats)

	assert.Nil(t, catalog.ParseRedemptionCode(mustNode(t, `{}`)))
}

func TestParseCoupons_NonArray(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []domain.Coupon{}, catalog.ParseCoupons(mustNode(t, `{"id": 1}`)))
	assert.Len(t, catalog.ParseCoupons(mustNode(t, `[{"id":1},{"id":2}]`)), 2)
}
