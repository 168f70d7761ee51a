package inject

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/liseur-glitch/gedbridge/errors"
	"github.com/liseur-glitch/gedbridge/mapping"
	"github.com/liseur-glitch/gedbridge/sentence"
	"github.com/liseur-glitch/gedbridge/store"
)

// defaultRoles is the expected role set when the mapping file does not
// describe a tag: one primary participant plus the standard witness.
var defaultRoles = []string{"Principal", "Witness"}

// SentenceInjector fills the gaps in custom tag definitions' sentence
// blobs: every expected (role, language) pair gets a phrase.
type SentenceInjector struct {
	store     store.Store
	mapping   *mapping.Mapping
	languages []sentence.Language
	logger    *zap.SugaredLogger
	dryRun    bool
}

// NewSentenceInjector wires a sentence-injection engine.
func NewSentenceInjector(st store.Store, m *mapping.Mapping, languages []sentence.Language, logger *zap.SugaredLogger, dryRun bool) *SentenceInjector {
	if len(languages) == 0 {
		languages = sentence.SupportedLanguages
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &SentenceInjector{
		store:     st,
		mapping:   m,
		languages: languages,
		logger:    logger,
		dryRun:    dryRun,
	}
}

// Run processes every custom tag definition. Running twice on a
// complete store is a no-op: nothing grows, nothing changes. The
// context cancels between tags, never mid-row.
func (si *SentenceInjector) Run(ctx context.Context) *SentenceReport {
	report := &SentenceReport{runInfo: newRunInfo(si.dryRun)}
	defer report.finish()

	// The snapshot load is read-only and must not race the caller's
	// cancellation: a run stopped before its first row still has to
	// report how many tags remained, not a fatal abort.
	tags, err := si.store.CustomTags(context.Background())
	if err != nil {
		report.Fatal = errors.Wrap(err, "load custom tag definitions")
		return report
	}

	for i, tag := range tags {
		if ctx.Err() != nil {
			report.Remaining = len(tags) - i
			break
		}
		si.injectTag(ctx, tag, report)
	}

	return report
}

// injectTag parses one tag's blob, adds missing roles and phrases, and
// writes the row back only when something was added.
func (si *SentenceInjector) injectTag(ctx context.Context, tag store.TagDefinition, report *SentenceReport) {
	report.TagsSeen++

	model, lines := sentence.Parse(tag.Sentence)
	for _, line := range lines {
		switch line.Outcome {
		case sentence.LineRecovered:
			si.logger.Debugw("Recovered blob line",
				"tag", tag.Name, "line", line.Line, "reason", line.Reason)
		case sentence.LineRejected:
			si.logger.Warnw("Rejected blob line",
				"tag", tag.Name, "line", line.Line, "reason", line.Reason)
		}
	}

	expected := si.mapping.ExpectedRoles(tag.Name)
	if len(expected) == 0 {
		expected = defaultRoles
	}

	added := 0
	for _, roleName := range expected {
		labels := si.mapping.RoleLabelsOrDefault(roleName)

		ordinal, ok := model.FindRole(labels.English)
		if !ok {
			ordinal, ok = model.FindRole(roleName)
		}
		if !ok {
			ordinal = model.NextRoleOrdinal()
			model.SetRoleLabel(ordinal, sentence.LangEnglish, labels.English)
			model.SetRoleLabel(ordinal, sentence.LangFrench, labels.French)
			report.RolesAdded++
			si.logger.Debugw("Added role label",
				"tag", tag.Name, "role", labels.English)
		}

		kind := sentence.RoleSecondary
		if isPrimaryRole(roleName) {
			kind = sentence.RolePrimary
		}

		for _, lang := range si.languages {
			if model.HasPhrase(ordinal, lang) {
				continue
			}
			model.SetPhrase(ordinal, lang, sentence.Generate(kind, tag.Name, roleName, lang))
			added++
		}
	}

	if added == 0 {
		report.TagsSkipped++
		si.logger.Debugw("Tag already complete", "tag", tag.Name)
		return
	}

	blob, err := sentence.Serialize(model)
	if err != nil {
		report.TagsErrored++
		report.diagnose(Diagnostic{Tag: tag.Name, Reason: err.Error()})
		si.logger.Errorw("Serialize failed", "tag", tag.Name, "error", err)
		return
	}

	if !si.dryRun {
		if err := si.store.UpdateTagSentence(ctx, tag.ID, blob); err != nil {
			report.TagsErrored++
			report.diagnose(Diagnostic{Tag: tag.Name, Reason: err.Error()})
			si.logger.Errorw("Row update rejected", "tag", tag.Name, "error", err)
			return
		}
	}

	report.TagsModified++
	report.PhrasesAdded += added
	si.logger.Infow("Tag complete", "tag", tag.Name, "phrases", added)
}

// isPrimaryRole recognizes the primary-participant role by name.
func isPrimaryRole(roleName string) bool {
	norm := mapping.Normalize(roleName)
	return norm == "PRINCIPAL" || strings.HasPrefix(norm, "PRINCIPAL ")
}
