package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	domain "github.com/donaldgifford/offer-catalog/pkg/types"
)

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search companies and tags",
		Long: "Search companies and tags matching a free-text query. The query\n" +
			"is recorded in the local search history.",
		Example: `  offers search pizza
  offers search "burger king" --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			a, err := newApp()
			if err != nil {
				return err
			}
			result, err := a.search.GenericSearch(cmd.Context(), query)
			if err != nil {
				return err
			}
			a.history.Add(domain.TextEntry(query))

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), result)
			}
			if len(result.Companies) == 0 && len(result.Tags) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No matches.")
				return nil
			}
			return printSearchResult(cmd.OutOrStdout(), result)
		},
	}
}
