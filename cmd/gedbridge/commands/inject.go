package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/liseur-glitch/gedbridge/config"
	"github.com/liseur-glitch/gedbridge/db"
	"github.com/liseur-glitch/gedbridge/errors"
	"github.com/liseur-glitch/gedbridge/gedcom"
	"github.com/liseur-glitch/gedbridge/inject"
	"github.com/liseur-glitch/gedbridge/logger"
	"github.com/liseur-glitch/gedbridge/sentence"
	"github.com/liseur-glitch/gedbridge/store"
)

// InjectCmd represents the inject command
var InjectCmd = &cobra.Command{
	Use:   "inject",
	Short: "Write missing sentence phrases and witness rows to the store",
	Long: `inject — Write the data the source-tree export format cannot carry.

Both subcommands refuse to run while the consuming desktop application
has the store open, and both are idempotent: a second run over the same
input changes nothing.

Examples:
  gedbridge inject sentences              # Fill missing sentence phrases
  gedbridge inject sentences --dry-run    # Preview without writing
  gedbridge inject witnesses tree.ged     # Append witness rows from a source tree`,
}

var injectSentencesCmd = &cobra.Command{
	Use:   "sentences",
	Short: "Fill missing sentence phrases on custom tag definitions",
	Long: `Parse every custom tag definition's sentence blob, add role labels and
generated phrases for each expected (role, language) pair that is
missing, and write the changed blobs back.`,
	RunE: runInjectSentences,
}

var injectWitnessesCmd = &cobra.Command{
	Use:   "witnesses [source-file]",
	Short: "Append witness rows for shared-event participants",
	Long: `Scan a source tree, resolve its individuals to store persons via their
reference numbers, match each shared-event participant to a store event
by principal, type, and year proximity, and append the witness rows that
resolve cleanly. Ambiguous and self-referential candidates are reported,
never guessed at. The source file defaults to source.path from the
configuration when omitted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInjectWitnesses,
}

func init() {
	InjectCmd.AddCommand(injectSentencesCmd)
	InjectCmd.AddCommand(injectWitnessesCmd)

	for _, cmd := range []*cobra.Command{injectSentencesCmd, injectWitnessesCmd} {
		cmd.Flags().Bool("dry-run", false, "Preview changes without writing to the store")
		cmd.Flags().String("store", "", "Store database path (overrides configuration)")
		cmd.Flags().String("mapping", "", "Token mapping file path (overrides configuration)")
	}
}

func runInjectSentences(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	storePath, _ := cmd.Flags().GetString("store")
	mappingPath, _ := cmd.Flags().GetString("mapping")
	useJSON, _ := cmd.Flags().GetBool("json")

	if !useJSON {
		pterm.DefaultHeader.WithFullWidth().Printf("Sentence Injection")
		pterm.Println()
		if dryRun {
			pterm.Warning.Println("DRY RUN MODE: No rows will be written")
			pterm.Println()
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	database, err := openGuardedStore(storePath)
	if err != nil {
		return err
	}
	defer database.Close()

	m, err := loadMapping(mappingPath)
	if err != nil {
		return err
	}

	var languages []sentence.Language
	for _, name := range cfg.GetLanguages() {
		languages = append(languages, sentence.ParseLanguage(name))
	}

	injector := inject.NewSentenceInjector(
		store.NewSQLStore(database, logger.Logger), m, languages, logger.Logger, dryRun)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report := injector.Run(ctx)
	if report.IsFatal() {
		return fatalRunError(report.Fatal)
	}

	if useJSON {
		return printJSON(report)
	}

	pterm.Println()
	if report.Cancelled() {
		pterm.Warning.Printf("Interrupted with %d tags unexamined", report.Remaining)
	} else {
		pterm.Success.Printf("Sentence injection completed!")
	}
	pterm.Println()
	pterm.Info.Printf("Statistics:")
	pterm.Printf("  Tags seen:      %d", report.TagsSeen)
	pterm.Printf("  Tags modified:  %d", report.TagsModified)
	pterm.Printf("  Tags skipped:   %d", report.TagsSkipped)
	pterm.Printf("  Phrases added:  %d", report.PhrasesAdded)
	pterm.Printf("  Roles added:    %d", report.RolesAdded)
	pterm.Println()

	printDiagnostics(report.Diagnostics)
	if report.Partial() {
		pterm.Warning.Printf("%d tags errored; see diagnostics above", report.TagsErrored)
		pterm.Println()
	}
	return nil
}

func runInjectWitnesses(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	storePath, _ := cmd.Flags().GetString("store")
	mappingPath, _ := cmd.Flags().GetString("mapping")
	useJSON, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	sourcePath := cfg.Source.Path
	if len(args) > 0 {
		sourcePath = args[0]
	}
	if sourcePath == "" {
		return fmt.Errorf("no source file given and source.path is not configured")
	}

	if !useJSON {
		pterm.DefaultHeader.WithFullWidth().Printf("Witness Injection")
		pterm.Println()
		if dryRun {
			pterm.Warning.Println("DRY RUN MODE: No rows will be written")
			pterm.Println()
		}
		pterm.Info.Printf("Processing source tree: %s", sourcePath)
		pterm.Println()
	}

	matchCfg := cfg.GetMatchConfig()

	tree, err := gedcom.ScanFile(sourcePath)
	if err != nil {
		return err
	}

	database, err := openGuardedStore(storePath)
	if err != nil {
		return err
	}
	defer database.Close()

	m, err := loadMapping(mappingPath)
	if err != nil {
		return err
	}

	injector := inject.NewWitnessInjector(
		store.NewSQLStore(database, logger.Logger), m,
		matchCfg.NarrowTolerance, matchCfg.WideTolerance,
		logger.Logger, dryRun)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var spinner *pterm.SpinnerPrinter
	if !useJSON {
		spinner, _ = pterm.DefaultSpinner.Start("Matching participants against the store...")
	}

	report := injector.Run(ctx, tree)

	if spinner != nil {
		if report.IsFatal() {
			spinner.Fail("Witness injection failed")
		} else {
			spinner.Success("Matching complete")
		}
	}
	if report.IsFatal() {
		return fatalRunError(report.Fatal)
	}

	if useJSON {
		return printJSON(report)
	}

	pterm.Println()
	if report.Cancelled() {
		pterm.Warning.Printf("Interrupted with %d source records unexamined", report.Remaining)
	} else {
		pterm.Success.Printf("Witness injection completed!")
	}
	pterm.Println()
	pterm.Info.Printf("Statistics:")
	pterm.Printf("  Candidates seen:   %d", report.CandidatesSeen)
	pterm.Printf("  Witnesses added:   %d", report.WitnessesAdded)
	pterm.Printf("  Duplicates:        %d", report.Duplicates)
	pterm.Printf("  Self-referential:  %d", report.SelfReferential)
	pterm.Printf("  Ambiguous:         %d", report.Ambiguous)
	pterm.Printf("  Unmatched:         %d", report.Unmatched)
	pterm.Printf("  Roles added:       %d", report.RolesAdded)
	pterm.Printf("  Tags updated:      %d", report.TagsUpdated)
	pterm.Println()

	printDiagnostics(report.Diagnostics)
	if report.Partial() {
		pterm.Warning.Printf("%d candidates need manual review; see diagnostics above", report.Errored+report.Ambiguous)
		pterm.Println()
	}
	return nil
}

// printDiagnostics lists per-item findings, capped so a large run does
// not scroll the summary away.
func printDiagnostics(diags []inject.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	const maxShown = 20

	pterm.Info.Printf("Diagnostics (%d):", len(diags))
	for i, d := range diags {
		if i == maxShown {
			pterm.Printf("  ... and %d more (use --json for the full list)", len(diags)-maxShown)
			break
		}
		switch {
		case d.Tag != "":
			pterm.Printf("  tag %q: %s", d.Tag, d.Reason)
		case d.SourceID != "":
			pterm.Printf("  individual %s (role %s): %s", d.SourceID, d.Role, d.Reason)
		default:
			pterm.Printf("  %s", d.Reason)
		}
	}
	pterm.Println()
}

// fatalRunError dresses up an engine's fatal precondition error for the
// terminal, distinguishing a closed store connection from other causes.
func fatalRunError(err error) error {
	if db.IsDatabaseClosed(err) {
		return errors.Wrap(err, "store connection closed before the run could start")
	}
	return err
}

func printJSON(v interface{}) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format JSON: %w", err)
	}
	fmt.Println(string(output))
	return nil
}
