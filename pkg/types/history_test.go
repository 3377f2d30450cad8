package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/donaldgifford/offer-catalog/pkg/types"
)

func TestSearchHistoryEntry_Normalized(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		entry domain.SearchHistoryEntry
		want  domain.SearchHistoryEntry
	}{
		{
			name:  "text drops company and place fields",
			entry: domain.SearchHistoryEntry{Kind: domain.HistoryText, Text: "a", CompanyID: 7, Latitude: 1},
			want:  domain.TextEntry("a"),
		},
		{
			name:  "tag drops address",
			entry: domain.SearchHistoryEntry{Kind: domain.HistoryTag, Text: "food", Address: "x"},
			want:  domain.TagEntry("food"),
		},
		{
			name:  "company keeps id and name",
			entry: domain.SearchHistoryEntry{Kind: domain.HistoryCompany, Text: "Acme", CompanyID: 3, Longitude: 2},
			want:  domain.CompanyEntry(3, "Acme"),
		},
		{
			name: "location drops company id",
			entry: domain.SearchHistoryEntry{
				Kind: domain.HistoryLocation, Text: "Sol", Address: "Madrid",
				Latitude: 40.4, Longitude: -3.7, CompanyID: 9,
			},
			want: domain.LocationEntry("Sol", "Madrid", domain.Location{Latitude: 40.4, Longitude: -3.7}),
		},
		{
			name:  "unknown kind is untouched",
			entry: domain.SearchHistoryEntry{Kind: "other", Text: "x", CompanyID: 1},
			want:  domain.SearchHistoryEntry{Kind: "other", Text: "x", CompanyID: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.entry.Normalized())
		})
	}
}
