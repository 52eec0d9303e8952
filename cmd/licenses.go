package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-licenses/internal/domain"
)

var licensesCmd = &cobra.Command{
	Use:   "licenses ACCOUNT...",
	Short: "Prints the license breakdown of one or more accounts as JSON",
	Long: `Fetches the repositories of each account (one request per account, fetched
concurrently) and prints the languages, the filtered repository list and the
license breakdown in JSON format. The breakdown always covers every repository.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		language, _ := cmd.Flags().GetString("language")
		sortRecent, _ := cmd.Flags().GetBool("sort-recent")
		for _, a := range args {
			if a == "" {
				return fmt.Errorf("account name must not be empty")
			}
		}

		browser, _, closeLog, err := newBrowser(cmd, false)
		if err != nil {
			return fmt.Errorf("failed to set up: %w", err)
		}
		defer closeLog()

		filter := domain.Filter{Language: language, SortByRecent: sortRecent}
		reports, err := browser.Report(cmd.Context(), args, filter)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}

		jsonData, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results to JSON: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(licensesCmd)
	licensesCmd.Flags().StringP("language", "l", domain.AllLanguages, `Only list repositories in this language ("all" for every language)`)
	licensesCmd.Flags().Bool("sort-recent", false, "Sort repositories by last update, newest first")
}
