package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	domain "github.com/donaldgifford/offer-catalog/pkg/types"
)

func historyCmd() *cobra.Command {
	historyRoot := &cobra.Command{
		Use:   "history",
		Short: "Manage the local search history",
		Long: "Inspect and edit the most-recent-first search history kept in the\n" +
			"user cache directory (or history.path in the config file).",
	}

	historyRoot.AddCommand(
		historyListCmd(),
		historyAddCmd(),
		historyClearCmd(),
	)

	return historyRoot
}

func historyListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "Show the search history",
		Example: `  offers history list`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			entries := a.history.Entries()

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Search history is empty.")
				return nil
			}
			return printHistoryTable(cmd.OutOrStdout(), entries)
		},
	}
}

func historyAddCmd() *cobra.Command {
	var (
		text      string
		tag       string
		companyID int
		company   string
		place     string
		address   string
		lat       float64
		lng       float64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a search selection",
		Long: "Record a search selection at the front of the history. Exactly one\n" +
			"of --text, --tag, --company-id or --place must be given.",
		Example: `  offers history add --tag pizza
  offers history add --company-id 12 --company "Burger Co"
  offers history add --place Sol --address "Puerta del Sol" --lat 40.4169 --lng -3.7035`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var entry domain.SearchHistoryEntry
			switch {
			case cmd.Flags().Changed("text"):
				entry = domain.TextEntry(text)
			case cmd.Flags().Changed("tag"):
				entry = domain.TagEntry(tag)
			case cmd.Flags().Changed("company-id"):
				entry = domain.CompanyEntry(companyID, company)
			case cmd.Flags().Changed("place"):
				entry = domain.LocationEntry(place, address, domain.Location{Latitude: lat, Longitude: lng})
			default:
				return errors.New("one of --text, --tag, --company-id or --place is required")
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			entries := a.history.Add(entry)

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), entries)
			}
			return printHistoryTable(cmd.OutOrStdout(), entries)
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "free-text search")
	cmd.Flags().StringVar(&tag, "tag", "", "tag selection")
	cmd.Flags().IntVar(&companyID, "company-id", 0, "company selection id")
	cmd.Flags().StringVar(&company, "company", "", "company name")
	cmd.Flags().StringVar(&place, "place", "", "place name")
	cmd.Flags().StringVar(&address, "address", "", "place address")
	cmd.Flags().Float64Var(&lat, "lat", 0, "place latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "place longitude")
	cmd.MarkFlagsMutuallyExclusive("text", "tag", "company-id", "place")
	cmd.MarkFlagsRequiredTogether("lat", "lng")

	return cmd
}

func historyClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "clear",
		Short:   "Delete the search history",
		Example: `  offers history clear`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.history.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Search history cleared.")
			return nil
		},
	}
}
