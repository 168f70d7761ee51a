package inject

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/liseur-glitch/gedbridge/errors"
	"github.com/liseur-glitch/gedbridge/gedcom"
	"github.com/liseur-glitch/gedbridge/mapping"
	"github.com/liseur-glitch/gedbridge/match"
	"github.com/liseur-glitch/gedbridge/sentence"
	"github.com/liseur-glitch/gedbridge/store"
)

// WitnessInjector appends secondary-participant rows to target events
// for the shared-event participants found in a source tree.
type WitnessInjector struct {
	store   store.Store
	mapping *mapping.Mapping
	narrow  int
	wide    int
	logger  *zap.SugaredLogger
	dryRun  bool
}

// NewWitnessInjector wires a witness-injection engine. The narrow
// tolerance governs type-filtered matching; the wide one applies only
// when the event-type mapping has no entry and the type filter is
// structurally unavailable.
func NewWitnessInjector(st store.Store, m *mapping.Mapping, narrowTolerance, wideTolerance int, logger *zap.SugaredLogger, dryRun bool) *WitnessInjector {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &WitnessInjector{
		store:   st,
		mapping: m,
		narrow:  narrowTolerance,
		wide:    wideTolerance,
		logger:  logger,
		dryRun:  dryRun,
	}
}

// runState carries the per-run indexes built from one store snapshot.
type runState struct {
	resolver *match.Resolver
	matcher  *match.Matcher

	refByGedID map[string]string        // source id -> reference number
	tagsByID   map[int]*taggedModel     // tag id -> parsed sentence model
	tagIDs     map[string]int           // normalized tag name -> tag id
	eventsByID map[int]store.EventRow
	existing   map[store.WitnessKey]bool
	nextSeq    map[int]int // event id -> next witness sequence
}

// taggedModel tracks one tag's parsed blob and whether roles were added.
type taggedModel struct {
	tag   store.TagDefinition
	model *sentence.SentenceModel
	dirty bool
}

// Run matches every shared-event participant of the source tree against
// the store and appends the rows that are cleanly resolved. Cancellation
// is cooperative at record granularity: the report counts unexamined
// source records in Remaining.
func (wi *WitnessInjector) Run(ctx context.Context, tree *gedcom.Tree) *WitnessReport {
	report := &WitnessReport{runInfo: newRunInfo(wi.dryRun)}
	defer report.finish()

	// The snapshot load is read-only and must not race the caller's
	// cancellation: a run stopped before its first record still has to
	// report how many remained, not a fatal abort.
	state, err := wi.buildState(context.Background(), tree)
	if err != nil {
		report.Fatal = err
		return report
	}
	wi.logger.Infow("Store indexed",
		"run_id", report.RunID,
		"references", state.resolver.Size(),
		"rows", len(state.existing))

	records := len(tree.Individuals) + len(tree.Families)
	processed := 0

	for _, indi := range tree.Individuals {
		if ctx.Err() != nil {
			report.Remaining = records - processed
			return report
		}
		wi.processRecord(ctx, state, indi.ID, indi.Events, report)
		processed++
	}
	for _, fam := range tree.Families {
		if ctx.Err() != nil {
			report.Remaining = records - processed
			return report
		}
		wi.processRecord(ctx, state, fam.PrincipalID(), fam.Events, report)
		processed++
	}

	wi.flushTagModels(ctx, state, report)
	return report
}

// buildState loads one snapshot of the store and builds the run indexes.
// Any failure here is fatal: no row has been touched yet.
func (wi *WitnessInjector) buildState(ctx context.Context, tree *gedcom.Tree) (*runState, error) {
	persons, err := wi.store.Persons(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load persons")
	}
	events, err := wi.store.Events(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load events")
	}
	witnesses, err := wi.store.Witnesses(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load witnesses")
	}
	tags, err := wi.store.Tags(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load tag definitions")
	}

	state := &runState{
		resolver:   match.NewResolver(persons),
		matcher:    match.NewMatcher(events),
		refByGedID: make(map[string]string, len(tree.Individuals)),
		tagsByID:   make(map[int]*taggedModel, len(tags)),
		tagIDs:     make(map[string]int, len(tags)),
		eventsByID: make(map[int]store.EventRow, len(events)),
		existing:   make(map[store.WitnessKey]bool, len(witnesses)),
		nextSeq:    make(map[int]int),
	}

	for _, indi := range tree.Individuals {
		if indi.Reference != "" {
			state.refByGedID[indi.ID] = indi.Reference
		}
	}
	for _, tag := range tags {
		model, _ := sentence.Parse(tag.Sentence)
		state.tagsByID[tag.ID] = &taggedModel{tag: tag, model: model}
		state.tagIDs[mapping.Normalize(tag.Name)] = tag.ID
	}
	for _, e := range events {
		state.eventsByID[e.ID] = e
	}
	for _, w := range witnesses {
		state.existing[w.Key()] = true
		if w.Sequence >= state.nextSeq[w.EventID] {
			state.nextSeq[w.EventID] = w.Sequence + 1
		}
	}

	return state, nil
}

// processRecord handles all shared-event participants of one source
// record's events.
func (wi *WitnessInjector) processRecord(ctx context.Context, state *runState, principalGedID string, events []gedcom.Event, report *WitnessReport) {
	if principalGedID == "" {
		return
	}
	principal, err := state.resolver.Resolve(state.refByGedID[principalGedID])
	if err != nil {
		// The principal is absent from the store; every participant
		// of their events is unmatched.
		for _, event := range events {
			for range event.Participants {
				report.CandidatesSeen++
				report.Unmatched++
			}
		}
		return
	}

	for _, event := range events {
		if len(event.Participants) == 0 {
			continue
		}

		tagID := wi.resolveTagID(state, event.TypeToken())
		tolerance := wi.narrow
		if tagID == 0 {
			tolerance = wi.wide
		}
		year, _ := strconv.Atoi(event.Year())

		for _, participant := range event.Participants {
			report.CandidatesSeen++
			wi.processParticipant(ctx, state, report, participant, match.Candidate{
				TagTypeID: tagID,
				Principal: principal,
				Year:      year,
			}, tolerance)
		}
	}
}

// processParticipant resolves, matches, and appends one witness row.
func (wi *WitnessInjector) processParticipant(ctx context.Context, state *runState, report *WitnessReport, p gedcom.Participant, c match.Candidate, tolerance int) {
	witness, err := state.resolver.Resolve(state.refByGedID[p.ID])
	if err != nil {
		report.Unmatched++
		wi.logger.Debugw("Participant not in store", "person", p.ID)
		return
	}
	c.Witness = witness

	eventID, err := state.matcher.MatchEvent(c, tolerance)
	switch {
	case err == nil:
	case errors.Is(err, errors.ErrSelfReferential):
		report.SelfReferential++
		report.diagnose(Diagnostic{SourceID: p.ID, Role: p.Role, Reason: err.Error()})
		return
	case errors.IsAmbiguous(err):
		report.Ambiguous++
		report.diagnose(Diagnostic{SourceID: p.ID, Role: p.Role, Reason: err.Error()})
		wi.logger.Warnw("Ambiguous event match", "person", p.ID, "reason", err.Error())
		return
	default:
		report.Unmatched++
		wi.logger.Debugw("No event match", "person", p.ID, "reason", err.Error())
		return
	}

	role, err := wi.resolveRole(state, eventID, p.Role, report)
	if err != nil {
		report.Errored++
		report.diagnose(Diagnostic{SourceID: p.ID, EventID: eventID, Role: p.Role, Reason: err.Error()})
		return
	}

	key := store.WitnessKey{EventID: eventID, PersonID: witness, Role: role}
	if state.existing[key] {
		report.Duplicates++
		wi.logger.Debugw("Witness already present",
			"event", eventID, "person", witness, "reason", errors.ErrDuplicate.Error())
		return
	}

	row := store.WitnessRow{
		EventID:  eventID,
		PersonID: witness,
		Role:     role,
		Primary:  false,
		Sequence: state.nextWitnessSequence(eventID),
		Memo:     p.Note,
	}
	if !wi.dryRun {
		if err := wi.store.AddWitness(ctx, row); err != nil {
			report.Errored++
			report.diagnose(Diagnostic{SourceID: p.ID, EventID: eventID, Role: p.Role, Reason: err.Error()})
			wi.logger.Errorw("Row insert rejected", "event", eventID, "person", p.ID, "error", err)
			return
		}
	}

	state.existing[key] = true
	report.WitnessesAdded++
	wi.logger.Debugw("Witness added", "event", eventID, "person", p.ID, "role", p.Role)
}

// resolveTagID maps a source event-type token to a tag id through the
// mapping file, then to the store's tag definitions. 0 means the type
// filter is unavailable.
func (wi *WitnessInjector) resolveTagID(state *runState, token string) int {
	name, ok := wi.mapping.TagName(token)
	if !ok {
		name = token
	}
	return state.tagIDs[mapping.Normalize(name)]
}

// resolveRole returns the role ordinal for a participant's role within
// the matched event's tag definition, adding the role label to the
// tag's sentence model when absent.
func (wi *WitnessInjector) resolveRole(state *runState, eventID int, roleToken string, report *WitnessReport) (int, error) {
	tagID := state.eventTagID(eventID)
	tm, ok := state.tagsByID[tagID]
	if !ok {
		return 0, errors.Newf("event %d references unknown tag %d", eventID, tagID)
	}

	labels := wi.mapping.RoleLabelsOrDefault(roleToken)
	if ordinal, ok := tm.model.FindRole(labels.English); ok {
		return ordinal, nil
	}
	if ordinal, ok := tm.model.FindRole(roleToken); ok {
		return ordinal, nil
	}

	// Only custom tag definitions are mutable; a built-in tag's sentence
	// blob stays untouched even when the source names a role it lacks.
	if !tm.tag.IsCustom() {
		return 0, errors.Newf("role %q is not defined on built-in tag %q", roleToken, tm.tag.Name)
	}

	ordinal := tm.model.NextRoleOrdinal()
	tm.model.SetRoleLabel(ordinal, sentence.LangEnglish, labels.English)
	tm.model.SetRoleLabel(ordinal, sentence.LangFrench, labels.French)
	tm.dirty = true
	report.RolesAdded++
	wi.logger.Debugw("Added role label", "tag", tm.tag.Name, "role", labels.English)
	return ordinal, nil
}

// flushTagModels writes back the sentence blobs of tags that gained
// role labels during the run.
func (wi *WitnessInjector) flushTagModels(ctx context.Context, state *runState, report *WitnessReport) {
	for _, tm := range state.tagsByID {
		if !tm.dirty {
			continue
		}
		blob, err := sentence.Serialize(tm.model)
		if err != nil {
			report.Errored++
			report.diagnose(Diagnostic{Tag: tm.tag.Name, Reason: err.Error()})
			continue
		}
		if !wi.dryRun {
			if err := wi.store.UpdateTagSentence(ctx, tm.tag.ID, blob); err != nil {
				report.Errored++
				report.diagnose(Diagnostic{Tag: tm.tag.Name, Reason: err.Error()})
				continue
			}
		}
		report.TagsUpdated++
	}
}

// nextWitnessSequence hands out ordering positions within one event.
func (s *runState) nextWitnessSequence(eventID int) int {
	seq := s.nextSeq[eventID]
	if seq == 0 {
		seq = 1
	}
	s.nextSeq[eventID] = seq + 1
	return seq
}

// eventTagID finds the tag type of a matched event.
func (s *runState) eventTagID(eventID int) int {
	return s.eventsByID[eventID].TypeID
}
