package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"

	domain "github.com/donaldgifford/offer-catalog/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printCouponsTable(w io.Writer, coupons []domain.Coupon) error {
	tw := newTabWriter(w)
	tw.writef("ID\tCOMPANY\tOFFER\tSTORE\tONLINE\tEXPIRES\n")
	for i := range coupons {
		c := &coupons[i]
		tw.writef("%d\t%s\t%s\t%s\t%v\t%s\n",
			c.ID,
			truncate(c.Company.Name, 24),
			truncate(c.ShortText, 40),
			storeLabel(c.Store),
			c.Online,
			dateLabel(c),
		)
	}
	return tw.finish()
}

func printCouponDetail(w io.Writer, c *domain.Coupon) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%d\n", c.ID)
	tw.writef("Company:\t%s (%d)\n", c.Company.Name, c.Company.ID)
	tw.writef("Offer:\t%s\n", c.ShortText)
	tw.writef("Summary:\t%s\n", c.ShortDescription)
	tw.writef("Description:\t%s\n", truncate(c.Description, 80))
	tw.writef("Tags:\t%s\n", strings.Join(c.Tags, ", "))
	tw.writef("Online:\t%v\n", c.Online)
	if c.Link != "" {
		tw.writef("Link:\t%s\n", c.Link)
	}
	tw.writef("Expires:\t%s\n", dateLabel(c))
	tw.writef("Store:\t%s\n", storeLabel(c.Store))
	if c.Image != nil {
		tw.writef("Image:\t%s\n", c.Image.SourceURL)
	}
	if rc := c.RedemptionCode; rc != nil {
		tw.writef("Codes:\t%s\n", codeStockLabel(rc))
	}
	return tw.finish()
}

func printCategoriesTable(w io.Writer, categories []domain.CompanyCategory) error {
	tw := newTabWriter(w)
	tw.writef("ID\tNAME\tCOMPANIES\tOFFERS\tTAGS\n")
	for i := range categories {
		c := &categories[i]
		offers := 0
		for _, co := range c.Companies {
			offers += co.OfferCount
		}
		tw.writef("%d\t%s\t%d\t%d\t%s\n",
			c.ID,
			c.Name,
			len(c.Companies),
			offers,
			truncate(strings.Join(c.Tags, ", "), 40),
		)
	}
	return tw.finish()
}

func printRedemptionCode(w io.Writer, code *domain.RedemptionCode) error {
	tw := newTabWriter(w)
	tw.writef("Code:\t%s\n", code.Code)
	tw.writef("Display:\t%s\n", code.DisplayCode)
	tw.writef("Formats:\t%s\n", strings.Join(code.Formats, ", "))
	return tw.finish()
}

func printSearchResult(w io.Writer, r *domain.SearchResult) error {
	tw := newTabWriter(w)
	tw.writef("KIND\tID\tNAME\n")
	for _, c := range r.Companies {
		tw.writef("company\t%d\t%s\n", c.ID, c.Name)
	}
	for _, tag := range r.Tags {
		tw.writef("tag\t-\t%s\n", tag)
	}
	return tw.finish()
}

func printHistoryTable(w io.Writer, entries []domain.SearchHistoryEntry) error {
	tw := newTabWriter(w)
	tw.writef("#\tKIND\tTEXT\tDETAIL\n")
	for i, e := range entries {
		detail := "-"
		switch e.Kind {
		case domain.HistoryCompany:
			detail = "id=" + strconv.Itoa(e.CompanyID)
		case domain.HistoryLocation:
			detail = fmt.Sprintf("%.5f,%.5f", e.Latitude, e.Longitude)
			if e.Address != "" {
				detail = e.Address + " (" + detail + ")"
			}
		}
		tw.writef("%d\t%s\t%s\t%s\n", i+1, e.Kind, e.Text, detail)
	}
	return tw.finish()
}

func storeLabel(s *domain.Store) string {
	if s == nil {
		return "-"
	}
	if s.Name != nil {
		return fmt.Sprintf("%s (%d)", *s.Name, s.ID)
	}
	return strconv.Itoa(s.ID)
}

func dateLabel(c *domain.Coupon) string {
	if c.ExpirationDate == nil {
		return "-"
	}
	return c.ExpirationDate.Format("2006-01-02")
}

func codeStockLabel(rc *domain.RedemptionCodeInfo) string {
	if !rc.Limited {
		return "unlimited"
	}
	if rc.AlreadyAssigned {
		return "already assigned"
	}
	if rc.AvailableCodes != nil && rc.TotalCodes != nil {
		return fmt.Sprintf("%d of %d left", *rc.AvailableCodes, *rc.TotalCodes)
	}
	return "limited"
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
