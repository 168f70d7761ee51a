package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/liseur-glitch/gedbridge/sentence"
	"github.com/liseur-glitch/gedbridge/store"
)

// TagsCmd represents the tags command
var TagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Inspect tag definitions and their sentence blobs",
	Long: `tags — Inspect the store's tag definitions.

Examples:
  gedbridge tags ls             # List custom tag definitions
  gedbridge tags ls --all       # Include built-in tag definitions
  gedbridge tags show 42        # Show one tag's roles and phrases`,
}

var tagsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List tag definitions",
	RunE:  runTagsLs,
}

var tagsShowCmd = &cobra.Command{
	Use:   "show <tag-id>",
	Short: "Show one tag's parsed roles and phrases",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagsShow,
}

func init() {
	TagsCmd.AddCommand(tagsLsCmd)
	TagsCmd.AddCommand(tagsShowCmd)

	tagsLsCmd.Flags().Bool("all", false, "Include built-in tag definitions")
	TagsCmd.PersistentFlags().String("store", "", "Store database path (overrides configuration)")
}

func runTagsLs(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	storePath, _ := cmd.Flags().GetString("store")
	useJSON, _ := cmd.Flags().GetBool("json")

	database, err := openStore(storePath)
	if err != nil {
		return err
	}
	defer database.Close()

	s := store.NewSQLStore(database, nil)
	var tags []store.TagDefinition
	if all {
		tags, err = s.Tags(cmd.Context())
	} else {
		tags, err = s.CustomTags(cmd.Context())
	}
	if err != nil {
		return err
	}

	if useJSON {
		type tagSummary struct {
			ID      int    `json:"id"`
			Origin  int    `json:"origin"`
			Name    string `json:"name"`
			Roles   int    `json:"roles"`
			Phrases int    `json:"phrases"`
		}
		summaries := make([]tagSummary, 0, len(tags))
		for _, tag := range tags {
			model, _ := sentence.Parse(tag.Sentence)
			summaries = append(summaries, tagSummary{
				ID: tag.ID, Origin: tag.Origin, Name: tag.Name,
				Roles: model.RoleCount(), Phrases: model.PhraseCount(),
			})
		}
		return printJSON(summaries)
	}

	fmt.Printf("Tag Definitions (%d)\n", len(tags))
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	for _, tag := range tags {
		model, _ := sentence.Parse(tag.Sentence)
		kind := "custom"
		if !tag.IsCustom() {
			kind = "built-in"
		}
		fmt.Printf("  %5d  %-30s %-8s %d roles, %d phrases\n",
			tag.ID, tag.Name, kind, model.RoleCount(), model.PhraseCount())
	}
	return nil
}

func runTagsShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid tag id %q", args[0])
	}
	storePath, _ := cmd.Flags().GetString("store")
	useJSON, _ := cmd.Flags().GetBool("json")

	database, err := openStore(storePath)
	if err != nil {
		return err
	}
	defer database.Close()

	s := store.NewSQLStore(database, nil)
	tag, err := s.TagByID(cmd.Context(), id)
	if err != nil {
		return err
	}

	model, lines := sentence.Parse(tag.Sentence)

	if useJSON {
		type roleView struct {
			Ordinal int                          `json:"ordinal"`
			Labels  map[sentence.Language]string `json:"labels"`
			Phrases map[sentence.Language]string `json:"phrases"`
		}
		view := struct {
			ID    int        `json:"id"`
			Name  string     `json:"name"`
			Roles []roleView `json:"roles"`
		}{ID: tag.ID, Name: tag.Name}
		for _, ordinal := range model.RoleOrdinals() {
			rv := roleView{
				Ordinal: ordinal,
				Labels:  make(map[sentence.Language]string),
				Phrases: make(map[sentence.Language]string),
			}
			for _, lang := range sentence.SupportedLanguages {
				if text, ok := model.RoleLabelText(ordinal, lang); ok {
					rv.Labels[lang] = text
				}
				if text, ok := model.Phrase(ordinal, lang); ok {
					rv.Phrases[lang] = text
				}
			}
			view.Roles = append(view.Roles, rv)
		}
		return printJSON(view)
	}

	fmt.Printf("Tag %d: %s\n", tag.ID, tag.Name)
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")
	for _, ordinal := range model.RoleOrdinals() {
		fmt.Printf("Role %s\n", sentence.Ordinal(ordinal))
		for _, lang := range sentence.SupportedLanguages {
			if text, ok := model.RoleLabelText(ordinal, lang); ok {
				fmt.Printf("  %-8s label:  %s\n", lang, text)
			}
			if text, ok := model.Phrase(ordinal, lang); ok {
				fmt.Printf("  %-8s phrase: %s\n", lang, text)
			}
		}
		fmt.Println()
	}

	rejected := 0
	for _, line := range lines {
		if line.Outcome == sentence.LineRejected {
			rejected++
		}
	}
	if rejected > 0 {
		fmt.Printf("Warning: %d blob lines could not be parsed\n", rejected)
	}
	return nil
}
