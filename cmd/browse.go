package cmd

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-licenses/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Opens the interactive license browser",
	Long: `Opens a terminal view with a search box, a language selector, a recency
toggle, the repository list and the license statistics. Logs go only to
--log-file while the view is open.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
			return errors.New("browse needs an interactive terminal; use the licenses command instead")
		}

		browser, logger, closeLog, err := newBrowser(cmd, true)
		if err != nil {
			return err
		}
		defer closeLog()

		logger.Info("browser starting")
		p := tea.NewProgram(tui.NewModel(cmd.Context(), browser), tea.WithContext(cmd.Context()))
		if _, err := p.Run(); err != nil {
			logger.Error("browser stopped", "err", err)
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
