package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/liseur-glitch/gedbridge/cmd/gedbridge/commands"
	"github.com/liseur-glitch/gedbridge/logger"
)

var rootCmd = &cobra.Command{
	Use:   "gedbridge",
	Short: "gedbridge - Migrate source-tree relationships into a flat record store",
	Long: `gedbridge - Genealogical data migration between a hierarchical source
tree and a flat record store.

gedbridge correlates the individuals of an exported source tree with the
persons of the target store via their shared reference numbers, then fills
the gaps the export format cannot carry: sentence phrases for custom tag
definitions, and witness rows for shared-event participants.

Available commands:
  inject - Write missing sentence phrases and witness rows to the store
  tags   - Inspect tag definitions and their sentence blobs
  db     - Manage store database operations

Examples:
  gedbridge inject sentences              # Fill missing sentence phrases
  gedbridge inject witnesses tree.ged     # Append witness rows from a source tree
  gedbridge inject witnesses tree.ged --dry-run
  gedbridge tags ls                       # List custom tag definitions
  gedbridge db stats                      # Show store row counts`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.Initialize(jsonOutput, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json", false, "Output machine-readable JSON")

	rootCmd.AddCommand(commands.InjectCmd)
	rootCmd.AddCommand(commands.TagsCmd)
	rootCmd.AddCommand(commands.DbCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
