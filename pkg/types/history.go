package domain

// HistoryKind identifies what a search history entry refers to.
type HistoryKind string

// History kind constants.
const (
	HistoryText     HistoryKind = "text"
	HistoryTag      HistoryKind = "tag"
	HistoryCompany  HistoryKind = "company"
	HistoryLocation HistoryKind = "location"
)

// Valid reports whether k is a known history kind.
func (k HistoryKind) Valid() bool {
	switch k {
	case HistoryText, HistoryTag, HistoryCompany, HistoryLocation:
		return true
	default:
		return false
	}
}

// SearchHistoryEntry is a past search selection. Entries are compared with ==,
// so every field must stay comparable.
type SearchHistoryEntry struct {
	Kind HistoryKind `json:"type"`

	// Text holds the search term, the tag, the company name or the
	// location name depending on Kind.
	Text string `json:"text"`

	CompanyID int     `json:"company_id,omitempty"`
	Address   string  `json:"address,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// Normalized returns e with the fields its Kind does not use cleared.
func (e SearchHistoryEntry) Normalized() SearchHistoryEntry {
	switch e.Kind {
	case HistoryText, HistoryTag:
		return SearchHistoryEntry{Kind: e.Kind, Text: e.Text}
	case HistoryCompany:
		return SearchHistoryEntry{Kind: e.Kind, Text: e.Text, CompanyID: e.CompanyID}
	case HistoryLocation:
		return LocationEntry(e.Text, e.Address, Location{Latitude: e.Latitude, Longitude: e.Longitude})
	default:
		return e
	}
}

// TextEntry returns a history entry for a free-text search.
func TextEntry(text string) SearchHistoryEntry {
	return SearchHistoryEntry{Kind: HistoryText, Text: text}
}

// TagEntry returns a history entry for a tag selection.
func TagEntry(tag string) SearchHistoryEntry {
	return SearchHistoryEntry{Kind: HistoryTag, Text: tag}
}

// CompanyEntry returns a history entry for a company selection.
func CompanyEntry(id int, name string) SearchHistoryEntry {
	return SearchHistoryEntry{Kind: HistoryCompany, CompanyID: id, Text: name}
}

// LocationEntry returns a history entry for a place selection.
func LocationEntry(name, address string, loc Location) SearchHistoryEntry {
	return SearchHistoryEntry{
		Kind:      HistoryLocation,
		Text:      name,
		Address:   address,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
	}
}
