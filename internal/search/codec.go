package search

import (
	"github.com/donaldgifford/offer-catalog/internal/catalog"
	domain "github.com/donaldgifford/offer-catalog/pkg/types"
)

// entryJSON is the on-disk shape of a history entry. Every field is written
// so that a saved entry reads back equal to the one in memory.
type entryJSON struct {
	Type      domain.HistoryKind `json:"type"`
	Text      string             `json:"text"`
	CompanyID int                `json:"id"`
	Address   string             `json:"address"`
	Latitude  float64            `json:"latitude"`
	Longitude float64            `json:"longitude"`
}

func toJSON(e domain.SearchHistoryEntry) entryJSON {
	return entryJSON{
		Type:      e.Kind,
		Text:      e.Text,
		CompanyID: e.CompanyID,
		Address:   e.Address,
		Latitude:  e.Latitude,
		Longitude: e.Longitude,
	}
}

// entryFromNode decodes one stored entry. Unknown kinds and entries missing
// their identifying field are rejected; an empty text is a valid search.
func entryFromNode(n catalog.Node) (domain.SearchHistoryEntry, bool) {
	kindStr, ok := n.Get("type").String()
	if !ok {
		return domain.SearchHistoryEntry{}, false
	}
	kind := domain.HistoryKind(kindStr)
	if !kind.Valid() {
		return domain.SearchHistoryEntry{}, false
	}

	text, textOK := n.Get("text").String()
	id, idOK := n.Get("id").Int()
	lat, latOK := n.Get("latitude").Float()
	lng, lngOK := n.Get("longitude").Float()

	switch kind {
	case domain.HistoryText, domain.HistoryTag:
		if !textOK {
			return domain.SearchHistoryEntry{}, false
		}
	case domain.HistoryCompany:
		if !idOK {
			return domain.SearchHistoryEntry{}, false
		}
	case domain.HistoryLocation:
		if !latOK || !lngOK {
			return domain.SearchHistoryEntry{}, false
		}
	}

	return domain.SearchHistoryEntry{
		Kind:      kind,
		Text:      text,
		CompanyID: id,
		Address:   n.Get("address").StringValue(),
		Latitude:  lat,
		Longitude: lng,
	}, true
}
