package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove [uri]",
	Short: "Remove an individual",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		c, err := connect(ctx)
		if err != nil {
			return err
		}

		result, err := c.RemoveIndividual(ctx, args[0], eventParams()...)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s removed (op_id %d)\n", args[0], result.OpID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
	removeCmd.Flags().BoolVar(&prepareEvents, "prepare-events", false, "Let the platform notify subscribers")
	removeCmd.Flags().StringVar(&eventID, "event-id", "", "Event id to attach to the change")
}
