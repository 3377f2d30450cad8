package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	domain "github.com/donaldgifford/offer-catalog/pkg/types"
)

// locationFlags are the coordinates every location-scoped command takes.
type locationFlags struct {
	lat    float64
	lng    float64
	sensor bool
}

func (f *locationFlags) bind(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&f.lng, "lng", 0, "longitude")
	cmd.Flags().BoolVar(&f.sensor, "sensor", false, "location comes from a device sensor")
	cmd.MarkFlagsRequiredTogether("lat", "lng")
}

func (f *locationFlags) location() domain.Location {
	return domain.Location{Latitude: f.lat, Longitude: f.lng}
}

// pageFlags select a page of results. Unset flags are not sent.
type pageFlags struct {
	page    int
	perPage int
}

func (f *pageFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.page, "page", 0, "page number")
	cmd.Flags().IntVar(&f.perPage, "per-page", 0, "results per page")
}

func (f *pageFlags) pagination(cmd *cobra.Command) *domain.PaginationInfo {
	var p domain.PaginationInfo
	if cmd.Flags().Changed("page") {
		p.Page = &f.page
	}
	if cmd.Flags().Changed("per-page") {
		p.PerPage = &f.perPage
	}
	if p.Page == nil && p.PerPage == nil {
		return nil
	}
	return &p
}

// filterFlags narrow an offer query. Unset flags are not sent.
type filterFlags struct {
	query    string
	tags     []string
	company  int
	category int
}

func (f *filterFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.query, "query", "", "free-text search term")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "tag filter (repeatable)")
	cmd.Flags().IntVar(&f.company, "company", 0, "company id filter")
	cmd.Flags().IntVar(&f.category, "category", 0, "category id filter")
}

func (f *filterFlags) filter(cmd *cobra.Command) *domain.FilterOptions {
	var o domain.FilterOptions
	set := false
	if cmd.Flags().Changed("query") {
		o.SearchTerm = &f.query
		set = true
	}
	if len(f.tags) > 0 {
		o.Tags = f.tags
		set = true
	}
	if cmd.Flags().Changed("company") {
		o.CompanyID = &f.company
		set = true
	}
	if cmd.Flags().Changed("category") {
		o.CategoryID = &f.category
		set = true
	}
	if !set {
		return nil
	}
	return &o
}

func findCmd() *cobra.Command {
	var (
		loc    locationFlags
		page   pageFlags
		filter filterFlags
	)

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find offers around a location",
		Example: `  # Offers around Puerta del Sol
  offers find --lat 40.4169 --lng -3.7035

  # Only pizza offers from company 12, second page
  offers find --lat 40.4169 --lng -3.7035 --tag pizza --company 12 --page 1 --per-page 20`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			coupons, err := a.client.FindOffers(
				cmd.Context(), loc.location(), loc.sensor, filter.filter(cmd), page.pagination(cmd),
			)
			if err != nil {
				return err
			}
			return printCoupons(cmd, coupons)
		},
	}
	loc.bind(cmd)
	page.bind(cmd)
	filter.bind(cmd)

	return cmd
}

func recommendedCmd() *cobra.Command {
	var (
		loc  locationFlags
		page pageFlags
	)

	cmd := &cobra.Command{
		Use:     "recommended",
		Short:   "List offers recommended for a location",
		Example: `  offers recommended --lat 40.4169 --lng -3.7035 --per-page 5`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			coupons, err := a.client.RecommendedOffers(
				cmd.Context(), loc.location(), loc.sensor, page.pagination(cmd),
			)
			if err != nil {
				return err
			}
			return printCoupons(cmd, coupons)
		},
	}
	loc.bind(cmd)
	page.bind(cmd)

	return cmd
}

func relatedCmd() *cobra.Command {
	var (
		storeID int
		page    pageFlags
	)

	cmd := &cobra.Command{
		Use:   "related <offerId>",
		Short: "List offers related to an offer",
		Example: `  offers related 1042
  offers related 1042 --store 77`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			offer, err := offerArg(cmd, args[0], storeID)
			if err != nil {
				return err
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			coupons, err := a.client.RelatedOffers(cmd.Context(), offer, page.pagination(cmd))
			if err != nil {
				return err
			}
			return printCoupons(cmd, coupons)
		},
	}
	cmd.Flags().IntVar(&storeID, "store", 0, "store id of the offer")
	page.bind(cmd)

	return cmd
}

func nearbyCmd() *cobra.Command {
	var (
		loc    locationFlags
		radius float64
		filter filterFlags
	)

	cmd := &cobra.Command{
		Use:   "nearby",
		Short: "List in-store offers within a radius",
		Long: "List up to 50 offers redeemable in stores within --radius meters\n" +
			"of the given location. Online-only offers are excluded.",
		Example: `  offers nearby --lat 40.4169 --lng -3.7035 --radius 2000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			coupons, err := a.client.StoreOffers(
				cmd.Context(), loc.location(), radius, loc.sensor, filter.filter(cmd),
			)
			if err != nil {
				return err
			}
			return printCoupons(cmd, coupons)
		},
	}
	loc.bind(cmd)
	filter.bind(cmd)
	cmd.Flags().Float64Var(&radius, "radius", 1000, "search radius in meters")

	return cmd
}

func getCmd() *cobra.Command {
	var loc locationFlags

	cmd := &cobra.Command{
		Use:     "get <id>...",
		Short:   "Show offer details",
		Example: `  offers get 1042 1043 --lat 40.4169 --lng -3.7035`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int, 0, len(args))
			for _, arg := range args {
				id, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("invalid offer id %q: %w", arg, err)
				}
				ids = append(ids, id)
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			coupons, err := a.client.OfferDetails(cmd.Context(), ids, loc.location(), loc.sensor)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), coupons)
			}
			if len(coupons) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No offers found.")
				return nil
			}
			for i := range coupons {
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				if err := printCouponDetail(cmd.OutOrStdout(), &coupons[i]); err != nil {
					return err
				}
			}
			return nil
		},
	}
	loc.bind(cmd)

	return cmd
}

// offerArg builds the minimal offer value the id-based endpoints need.
func offerArg(cmd *cobra.Command, arg string, storeID int) (*domain.Coupon, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return nil, fmt.Errorf("invalid offer id %q: %w", arg, err)
	}
	offer := &domain.Coupon{ID: id}
	if cmd.Flags().Changed("store") {
		offer.Store = &domain.Store{ID: storeID}
	}
	return offer, nil
}

func printCoupons(cmd *cobra.Command, coupons []domain.Coupon) error {
	if jsonOutput() {
		return outputJSON(cmd.OutOrStdout(), coupons)
	}
	if len(coupons) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No offers found.")
		return nil
	}
	return printCouponsTable(cmd.OutOrStdout(), coupons)
}
