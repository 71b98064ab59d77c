package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	debug       bool
	profilePath string

	serverURL string
	login     string
	password  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "veda",
	Short: "A command line client for the Veda semantic platform",
	Long: `veda reads and writes individuals, queries and checks access rights
on a Veda platform using the login from a profile, the environment or flags.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)

		cmd.SetContext(logging.NewContextWithLogger(cmd.Context(), logger))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Dump requests and responses")
	rootCmd.PersistentFlags().StringVarP(&profilePath, "profile", "p", defaultProfilePath(), "Path to a profile file")
	rootCmd.PersistentFlags().StringVar(&serverURL, "url", "", "Base url of the platform (overrides VEDA_URL)")
	rootCmd.PersistentFlags().StringVar(&login, "login", "", "Login name (overrides VEDA_LOGIN)")
	rootCmd.PersistentFlags().StringVar(&password, "password", "", "Password (overrides VEDA_PASSWORD)")
}
