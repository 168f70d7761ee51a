package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liseur-glitch/gedbridge/config"
	"github.com/liseur-glitch/gedbridge/store"
)

// DbCmd represents the db (database) command
var DbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage store database operations",
	Long: `db — Manage store database operations

Examples:
  gedbridge db stats            # Show store row counts`,
}

var dbStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show store row counts",
	Long:  "Display row counts for tag definitions, persons, events, and witness rows",
	RunE:  runDbStats,
}

func init() {
	DbCmd.AddCommand(dbStatsCmd)
	dbStatsCmd.Flags().String("store", "", "Store database path (overrides configuration)")
}

func runDbStats(cmd *cobra.Command, args []string) error {
	storePath, _ := cmd.Flags().GetString("store")
	useJSON, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	database, err := openStore(storePath)
	if err != nil {
		return err
	}
	defer database.Close()

	stats, err := store.NewSQLStore(database, nil).Stats(cmd.Context())
	if err != nil {
		return err
	}

	if useJSON {
		return printJSON(struct {
			Path           string `json:"path"`
			TagDefinitions int    `json:"tag_definitions"`
			CustomTags     int    `json:"custom_tags"`
			Persons        int    `json:"persons"`
			Events         int    `json:"events"`
			Witnesses      int    `json:"witnesses"`
		}{
			Path:           cfg.GetStorePath(),
			TagDefinitions: stats.TagDefinitions,
			CustomTags:     stats.CustomTags,
			Persons:        stats.Persons,
			Events:         stats.Events,
			Witnesses:      stats.Witnesses,
		})
	}

	fmt.Printf("Store Statistics\n")
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")
	fmt.Printf("Store Path:       %s\n", cfg.GetStorePath())
	fmt.Printf("Tag Definitions:  %d (%d custom)\n", stats.TagDefinitions, stats.CustomTags)
	fmt.Printf("Persons:          %d\n", stats.Persons)
	fmt.Printf("Events:           %d\n", stats.Events)
	fmt.Printf("Witness Rows:     %d\n", stats.Witnesses)

	return nil
}
