package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/offer-catalog/internal/catalog"
)

func codeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "code <offerId>",
		Short: "Request a redemption code for an offer",
		Long: "Request a redemption code for an offer. The device is registered\n" +
			"with the catalog first when no user token is configured.",
		Example: `  offers code 1042`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			offer, err := offerArg(cmd, args[0], 0)
			if err != nil {
				return err
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.tokens.FetchUserToken(cmd.Context()); err != nil {
				return fmt.Errorf("fetching user token: %w", err)
			}

			code, err := a.client.RedemptionCode(cmd.Context(), offer)
			if err != nil {
				var refused *catalog.RedemptionError
				if errors.As(err, &refused) {
					return fmt.Errorf("code refused for offer %d: %w", offer.ID, err)
				}
				return err
			}

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), code)
			}
			if code == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No code returned.")
				return nil
			}
			return printRedemptionCode(cmd.OutOrStdout(), code)
		},
	}
}

type offerURLs struct {
	Highlighted string `json:"highlighted"`
	ReportError string `json:"report_error"`
	CodeImage   string `json:"code_image,omitempty"`
}

func urlsCmd() *cobra.Command {
	var (
		storeID int
		format  string
		width   int
		height  int
	)

	cmd := &cobra.Command{
		Use:   "urls <offerId>",
		Short: "Print the web URLs associated with an offer",
		Long: "Print the highlighted offers page, the error report page and, when\n" +
			"a user token is known, the redemption code image for an offer.",
		Example: `  offers urls 1042 --store 77
  offers urls 1042 --format qr --width 300 --height 300 --user-token abc`,
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

			urls := offerURLs{
				Highlighted: a.client.HighlightedOfferURL(),
				ReportError: a.client.ReportErrorURL(offer),
			}
			if u, ok := a.client.RedemptionCodeImageURL(offer.ID, format, width, height); ok {
				urls.CodeImage = u
			}

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), urls)
			}

			tw := newTabWriter(cmd.OutOrStdout())
			tw.writef("Highlighted:\t%s\n", urls.Highlighted)
			tw.writef("Report error:\t%s\n", urls.ReportError)
			if urls.CodeImage != "" {
				tw.writef("Code image:\t%s\n", urls.CodeImage)
			} else {
				tw.writef("Code image:\t%s\n", "- (no user token)")
			}
			return tw.finish()
		},
	}
	cmd.Flags().IntVar(&storeID, "store", 0, "store id of the offer")
	cmd.Flags().StringVar(&format, "format", "qr", "code image format")
	cmd.Flags().IntVar(&width, "width", 200, "code image width")
	cmd.Flags().IntVar(&height, "height", 200, "code image height")

	return cmd
}
