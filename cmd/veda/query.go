package main

import (
	"context"
	"fmt"
	"io"

	"github.com/diwise/veda-client/pkg/veda/client"
	"github.com/diwise/veda-client/pkg/veda/types/individuals"
	"github.com/spf13/cobra"
)

var (
	querySort  string
	queryTop   int
	queryFetch bool
)

var queryCmd = &cobra.Command{
	Use:   "query [query]",
	Short: "Search for individuals",
	Long: `Run a full text query and print the uris of the matching individuals.
With --fetch all matching individuals are fetched in batches and printed as json.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		c, err := connect(ctx)
		if err != nil {
			return err
		}

		if queryFetch {
			return fetchAll(ctx, c, args[0], cmd.OutOrStdout())
		}

		return queryURIs(ctx, c, args[0], cmd.OutOrStdout())
	},
}

func sortParams() []client.RequestDecoratorFunc {
	if querySort == "" {
		return nil
	}
	return []client.RequestDecoratorFunc{client.Sort(querySort)}
}

func queryURIs(ctx context.Context, c client.VedaClient, q string, w io.Writer) error {
	params := append(sortParams(), client.Top(queryTop))

	qr, err := c.Query(ctx, q, params...)
	if err != nil {
		return err
	}

	for _, uri := range qr.Result {
		fmt.Fprintln(w, uri)
	}

	if qr.HasMore() {
		fmt.Fprintf(w, "... %d of %d shown\n", len(qr.Result), qr.Estimated)
	}

	return nil
}

func fetchAll(ctx context.Context, c client.VedaClient, q string, w io.Writer) error {
	var printErr error

	_, err := client.QueryIndividuals(ctx, c, q, queryTop, client.Identity, func(i *individuals.Individual) {
		if printErr == nil {
			printErr = printJSON(w, i)
		}
	}, sortParams()...)
	if err != nil {
		return err
	}

	return printErr
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVar(&querySort, "sort", "", "Sort order, e.g. \"'rdfs:label' asc\"")
	queryCmd.Flags().IntVar(&queryTop, "top", 100, "Number of results per page")
	queryCmd.Flags().BoolVar(&queryFetch, "fetch", false, "Fetch and print the matching individuals")
}
