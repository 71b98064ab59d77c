package main

import (
	"context"
	"io"

	"github.com/diwise/veda-client/pkg/veda/client"
	"github.com/spf13/cobra"
)

var (
	getReopen bool
)

var getCmd = &cobra.Command{
	Use:   "get [uri]...",
	Short: "Print one or more individuals",
	Long:  `Fetch individuals by uri and print them as json in the platform's wire format.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		c, err := connect(ctx)
		if err != nil {
			return err
		}

		return getIndividuals(ctx, c, args, cmd.OutOrStdout())
	},
}

func getIndividuals(ctx context.Context, c client.VedaClient, uris []string, w io.Writer) error {
	if len(uris) == 1 {
		i, err := c.GetIndividual(ctx, uris[0], client.Reopen(getReopen))
		if err != nil {
			return err
		}
		return printJSON(w, i)
	}

	list, err := c.GetIndividuals(ctx, uris)
	if err != nil {
		return err
	}

	return printJSON(w, list)
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().BoolVar(&getReopen, "reopen", false, "Ask the platform to reopen its storage before reading")
}
