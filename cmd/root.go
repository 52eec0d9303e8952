// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-licenses/internal/gateway"
	"github.com/naka-gawa/github-licenses/internal/logging"
	"github.com/naka-gawa/github-licenses/internal/usecase"
)

var rootCmd = &cobra.Command{
	Use:   "github-licenses",
	Short: "A CLI tool to report license coverage of a GitHub account's repositories.",
	Long: `github-licenses lists the public repositories of a GitHub account and
shows how many of them carry each license. Results can be filtered by
language and sorted by most recent update.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("log-file", "", "Also write logs to this file (rotated)")
	rootCmd.PersistentFlags().String("api-url", "", "GitHub REST API root (default https://api.github.com/)")
	rootCmd.PersistentFlags().Duration("timeout", gateway.DefaultTimeout, "Timeout of the repository request")
}

// newBrowser wires the logger, the gateway and the use case from the
// persistent flags. quiet keeps logs off stderr.
func newBrowser(cmd *cobra.Command, quiet bool) (*usecase.Browser, *slog.Logger, func() error, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logFile, _ := cmd.Flags().GetString("log-file")
	apiURL, _ := cmd.Flags().GetString("api-url")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	logger, closeLog, err := logging.SetupLogger(logging.Options{
		Verbose: verbose,
		File:    logFile,
		Quiet:   quiet,
		Stderr:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, nil, nil, err
	}

	opts := []gateway.Option{gateway.WithTimeout(timeout)}
	if apiURL != "" {
		opts = append(opts, gateway.WithBaseURL(apiURL))
	}
	githubGateway, err := gateway.NewGitHubGateway(logger, opts...)
	if err != nil {
		closeLog()
		return nil, nil, nil, err
	}
	logger.Debug("gateway ready", "api_url", apiURL, "timeout", timeout.Round(time.Millisecond))
	return usecase.NewBrowser(githubGateway, logger), logger, closeLog, nil
}
