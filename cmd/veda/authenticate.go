package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/diwise/veda-client/pkg/veda/auth"
	"github.com/diwise/veda-client/pkg/veda/client"
	"github.com/spf13/cobra"
)

var authenticateCmd = &cobra.Command{
	Use:   "authenticate",
	Short: "Authenticate and print the issued ticket",
	Long: `Authenticate with the login and password from the profile, the environment
or flags and print the ticket. The ticket can be passed to other tools.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		p, err := resolveProfile(ctx, profilePath)
		if err != nil {
			return err
		}

		return authenticate(ctx, client.NewVedaClient(p.URL), p, cmd.OutOrStdout())
	},
}

func authenticate(ctx context.Context, c client.VedaClient, p *Profile, w io.Writer) error {
	ticket, err := c.Authenticate(ctx, p.Login, auth.HashPassword(p.Password), "")
	if err != nil {
		return fmt.Errorf("failed to authenticate as %s: %w", p.Login, err)
	}

	return printJSON(w, ticket)
}

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func init() {
	rootCmd.AddCommand(authenticateCmd)
}
