// ABOUTME: Browse command launching the interactive storefront TUI
// ABOUTME: Thin wrapper; all screen logic lives in internal/tui

package cmd

import (
	"fmt"
	"os"

	"github.com/lazybrownass/zorel-leather/internal/tui"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the storefront interactively",
	Long:  `Open an interactive terminal storefront: featured pieces, the full catalog, search, and sign-in.`,
	Run: func(cmd *cobra.Command, args []string) {
		api, sess := newSession()
		if err := tui.Run(api, sess); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
