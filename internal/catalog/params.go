package catalog

import (
	"fmt"
	"maps"
	"net/url"
	"strconv"
	"strings"

	domain "github.com/donaldgifford/offer-catalog/pkg/types"
)

// Params is the flat set of query parameters sent with a catalog request.
type Params map[string]any

// ComposeParams overlays pagination and then filter fields onto a copy of
// base. Later stages overwrite keys set by earlier ones, and absent inputs
// leave no key behind. Values are not validated.
func ComposeParams(
	base Params,
	pagination *domain.PaginationInfo,
	filter *domain.FilterOptions,
) Params {
	out := make(Params, len(base)+6)
	maps.Copy(out, base)

	if pagination != nil {
		if pagination.Page != nil {
			out["page"] = *pagination.Page
		}
		if pagination.PerPage != nil {
			out["perPage"] = *pagination.PerPage
		}
	}

	if filter != nil {
		if filter.SearchTerm != nil {
			out["query"] = *filter.SearchTerm
		}
		if len(filter.Tags) > 0 {
			out["tags"] = strings.Join(filter.Tags, ",")
		}
		if filter.CompanyID != nil {
			out["companyId"] = *filter.CompanyID
		}
		if filter.CategoryID != nil {
			out["categoryId"] = *filter.CategoryID
		}
	}

	return out
}

// locationParams is the base set shared by location-anchored queries.
func locationParams(loc domain.Location, sensor bool) Params {
	return Params{
		"latitude":  loc.Latitude,
		"longitude": loc.Longitude,
		"sensor":    strconv.FormatBool(sensor),
	}
}

// Values renders the parameters as URL query values.
func (p Params) Values() url.Values {
	q := make(url.Values, len(p))
	for k, v := range p {
		q.Set(k, formatValue(v))
	}
	return q
}

// Encode renders the parameters as a sorted query string.
func (p Params) Encode() string {
	return p.Values().Encode()
}

func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
