package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/diwise/veda-client/pkg/veda/client"
	"github.com/diwise/veda-client/pkg/veda/rights"
	"github.com/spf13/cobra"
)

var (
	rightsOrigin bool
)

var rightsCmd = &cobra.Command{
	Use:   "rights [uri]",
	Short: "Show the current user's rights on an individual",
	Long: `Print the rights as a CRUD string, where a dash marks a missing right,
followed by the groups the individual is a member of. With --origin the
permission statements that grant the rights are listed as well.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		c, err := connect(ctx)
		if err != nil {
			return err
		}

		return showRights(ctx, c, args[0], cmd.OutOrStdout())
	},
}

func showRights(ctx context.Context, c client.VedaClient, uri string, w io.Writer) error {
	r, err := c.GetRights(ctx, uri)
	if err != nil {
		return err
	}

	m, err := c.GetMembership(ctx, uri)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s %s\n", r.String(), uri)
	fmt.Fprintf(w, "member of: %s\n", strings.Join(m.Groups, ", "))

	if !rightsOrigin {
		return nil
	}

	origins, err := c.GetRightsOrigin(ctx, uri)
	if err != nil {
		return err
	}

	for _, o := range origins {
		granted, err := rights.FromIndividual(o)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s via %s\n", granted.String(), o.GetFirstValue(rights.PermissionSubject, "?"))
	}

	return nil
}

func init() {
	rootCmd.AddCommand(rightsCmd)
	rightsCmd.Flags().BoolVar(&rightsOrigin, "origin", false, "List where the rights come from")
}
