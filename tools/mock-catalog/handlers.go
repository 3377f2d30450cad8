package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	apiTokenHeader  = "API-Token"
	userTokenHeader = "User-Token"

	defaultPerPage = 20
)

type catalogFixture struct {
	Offers     []json.RawMessage `json:"offers"`
	Categories []json.RawMessage `json:"categories"`
}

// offerIndex holds the offer fields the handlers filter on.
type offerIndex struct {
	ID         int      `json:"id"`
	ShortOffer string   `json:"shortOffer"`
	Tags       []string `json:"tags"`
	IsOnline   bool     `json:"isOnline"`
	Store      *struct {
		ID int `json:"id"`
	} `json:"store"`
	Company struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"company"`
	RedemptionCode *struct {
		Limited        bool `json:"limited"`
		AvailableCodes *int `json:"availableCodes"`
	} `json:"redemptionCode"`
}

type indexedOffer struct {
	raw json.RawMessage
	offerIndex
}

type fixture struct {
	offers     []indexedOffer
	categories []json.RawMessage
}

func loadFixture(path string) (*fixture, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	return parseFixture(data)
}

func parseFixture(data []byte) (*fixture, error) {
	var raw catalogFixture
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}

	fx := &fixture{
		offers:     make([]indexedOffer, 0, len(raw.Offers)),
		categories: raw.Categories,
	}
	for i, o := range raw.Offers {
		var idx offerIndex
		if err := json.Unmarshal(o, &idx); err != nil {
			return nil, fmt.Errorf("parsing fixture offer %d: %w", i, err)
		}
		fx.offers = append(fx.offers, indexedOffer{raw: o, offerIndex: idx})
	}
	if fx.categories == nil {
		fx.categories = []json.RawMessage{}
	}
	return fx, nil
}

type handlers struct {
	fx  *fixture
	log *slog.Logger
}

type registerRequest struct {
	DeviceID string `json:"deviceId"`
}

func (h *handlers) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return apiError(c, http.StatusBadRequest, "invalid_body", "request body must be JSON")
	}
	if req.DeviceID == "" {
		return apiError(c, http.StatusBadRequest, "missing_device", "deviceId is required")
	}

	token := "mock-user-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	h.log.Info("registered device", "device_id", req.DeviceID)
	return c.JSON(http.StatusCreated, map[string]string{"userToken": token})
}

func (h *handlers) find(c echo.Context) error {
	if key := missingLocation(c); key != "" {
		return apiError(c, http.StatusBadRequest, "missing_location", key+" is required")
	}

	query := strings.ToLower(c.QueryParam("query"))
	tags := splitList(c.QueryParam("tags"))
	companyID, hasCompany := intParam(c, "companyId")
	onlineAllowed := c.QueryParam("includeOnline") != "false"

	matched := h.filter(func(o *indexedOffer) bool {
		if !onlineAllowed && (o.IsOnline || o.Store == nil) {
			return false
		}
		if hasCompany && o.Company.ID != companyID {
			return false
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(o.ShortOffer), query) &&
			!strings.Contains(strings.ToLower(o.Company.Name), query) {
			return false
		}
		for _, t := range tags {
			if !slices.Contains(o.Tags, t) {
				return false
			}
		}
		return true
	})

	return c.JSON(http.StatusOK, paginate(c, matched))
}

func (h *handlers) recommended(c echo.Context) error {
	if key := missingLocation(c); key != "" {
		return apiError(c, http.StatusBadRequest, "missing_location", key+" is required")
	}
	matched := h.filter(func(o *indexedOffer) bool {
		return o.RedemptionCode == nil || !o.RedemptionCode.Limited || hasCodesLeft(o)
	})
	return c.JSON(http.StatusOK, paginate(c, matched))
}

func (h *handlers) related(c echo.Context) error {
	offerID, ok := intParam(c, "offerId")
	if !ok {
		return apiError(c, http.StatusBadRequest, "missing_offer", "offerId is required")
	}

	var company int
	for i := range h.fx.offers {
		if h.fx.offers[i].ID == offerID {
			company = h.fx.offers[i].Company.ID
		}
	}

	matched := h.filter(func(o *indexedOffer) bool {
		return o.ID != offerID && o.Company.ID == company
	})
	return c.JSON(http.StatusOK, paginate(c, matched))
}

func (h *handlers) get(c echo.Context) error {
	ids := map[int]bool{}
	for _, s := range splitList(c.QueryParam("ids")) {
		id, err := strconv.Atoi(s)
		if err != nil {
			return apiError(c, http.StatusBadRequest, "invalid_ids", "ids must be comma-separated integers")
		}
		ids[id] = true
	}

	matched := h.filter(func(o *indexedOffer) bool { return ids[o.ID] })
	return c.JSON(http.StatusOK, matched)
}

func (h *handlers) code(c echo.Context) error {
	if c.Request().Header.Get(userTokenHeader) == "" {
		return apiError(c, http.StatusUnauthorized, "missing_user_token", "a user token is required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apiError(c, http.StatusBadRequest, "invalid_offer", "offer id must be an integer")
	}

	for i := range h.fx.offers {
		o := &h.fx.offers[i]
		if o.ID != id {
			continue
		}
		if o.RedemptionCode == nil {
			return apiError(c, http.StatusConflict, "no_code", "offer has no redemption code")
		}
		if o.RedemptionCode.Limited && !hasCodesLeft(o) {
			return apiError(c, http.StatusConflict, "no_codes_left", "all codes for this offer have been assigned")
		}
		code := fmt.Sprintf("MOCK%06d", id)
		return c.JSON(http.StatusOK, map[string]any{
			"code":        code,
			"displayCode": code[:4] + "-" + code[4:],
			"formats":     []string{"qr", "ean13"},
		})
	}

	return apiError(c, http.StatusNotFound, "offer_not_found", "offer does not exist")
}

func (h *handlers) categoryList(c echo.Context) error {
	return c.JSON(http.StatusOK, h.fx.categories)
}

type searchCompany struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (h *handlers) search(c echo.Context) error {
	if c.Request().Header.Get(userTokenHeader) == "" {
		return apiError(c, http.StatusUnauthorized, "missing_user_token", "a user token is required")
	}

	q := strings.ToLower(c.QueryParam("q"))
	companies := []searchCompany{}
	tags := []string{}
	seen := map[int]bool{}

	for i := range h.fx.offers {
		o := &h.fx.offers[i]
		if !seen[o.Company.ID] && strings.Contains(strings.ToLower(o.Company.Name), q) {
			seen[o.Company.ID] = true
			companies = append(companies, searchCompany{ID: o.Company.ID, Name: o.Company.Name})
		}
		for _, t := range o.Tags {
			if strings.Contains(t, q) && !slices.Contains(tags, t) {
				tags = append(tags, t)
			}
		}
	}
	slices.Sort(tags)

	h.log.Info("search", "query", q, "companies", len(companies), "tags", len(tags))
	return c.JSON(http.StatusOK, map[string]any{"companies": companies, "tags": tags})
}

func (h *handlers) filter(keep func(*indexedOffer) bool) []json.RawMessage {
	out := []json.RawMessage{}
	for i := range h.fx.offers {
		if keep(&h.fx.offers[i]) {
			out = append(out, h.fx.offers[i].raw)
		}
	}
	return out
}

func hasCodesLeft(o *indexedOffer) bool {
	return o.RedemptionCode.AvailableCodes == nil || *o.RedemptionCode.AvailableCodes > 0
}

// paginate applies the zero-based page and perPage query parameters.
func paginate(c echo.Context, items []json.RawMessage) []json.RawMessage {
	perPage := defaultPerPage
	if v, ok := intParam(c, "perPage"); ok && v > 0 {
		perPage = v
	}
	page := 0
	if v, ok := intParam(c, "page"); ok && v >= 0 {
		page = v
	}

	start := page * perPage
	if start >= len(items) {
		return []json.RawMessage{}
	}
	return items[start:min(start+perPage, len(items))]
}

// missingLocation returns the first coordinate parameter that is absent or
// not a number.
func missingLocation(c echo.Context) string {
	for _, key := range []string{"latitude", "longitude"} {
		if _, err := strconv.ParseFloat(c.QueryParam(key), 64); err != nil {
			return key
		}
	}
	return ""
}

func intParam(c echo.Context, key string) (int, bool) {
	v, err := strconv.Atoi(c.QueryParam(key))
	if err != nil {
		return 0, false
	}
	return v, true
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func apiError(c echo.Context, status int, code, message string) error {
	return c.JSON(status, map[string]string{"code": code, "message": message})
}
