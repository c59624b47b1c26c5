package hansardgraph

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/openparl/hansardgraph/core/names"
	"github.com/openparl/hansardgraph/core/pipeline"
	"github.com/openparl/hansardgraph/core/resolve"
	"github.com/openparl/hansardgraph/database"
	"github.com/openparl/hansardgraph/helper"
	"github.com/openparl/hansardgraph/model"
	loadSql "github.com/openparl/hansardgraph/sql"
)

// Hansard provides a unified interface to the registries, the extraction
// pipeline and the resolution layer
type Hansard struct {
	DB         *helper.Database
	Persons    *database.PersonsDBHandler
	Bills      *database.BillsDBHandler
	Committees *database.CommitteesDBHandler
	Petitions  *database.PetitionsDBHandler
	Statements *database.StatementsDBHandler
	Edges      *database.MentionEdgesDBHandler

	Extractor *pipeline.PatternExtractor
	Resolver  *resolve.MentionResolver
	Emitter   *resolve.RelationshipEmitter

	config    model.ExtractConfig
	nameIndex *names.NameIndex
	// Logging
	log *slog.Logger
}

// NewHansard creates a new Hansard instance with all handlers initialized
// and the name index built from the current member registry
func NewHansard(config *helper.DatabaseConfiguration, extractConfig model.ExtractConfig) (*Hansard, error) {
	// Logger
	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))

	// Initialize database
	db := helper.NewDatabase("hansardgraph", config, logger)
	err := loadSql.Init(db.Instance)
	if err != nil {
		return nil, helper.NewError("initialize database extensions", err)
	}

	// Create all handlers
	// force=false to not reload if functions already exist
	persons, err := database.NewPersonsDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create persons handler", err)
	}

	bills, err := database.NewBillsDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create bills handler", err)
	}

	committees, err := database.NewCommitteesDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create committees handler", err)
	}

	petitions, err := database.NewPetitionsDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create petitions handler", err)
	}

	statements, err := database.NewStatementsDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create statements handler", err)
	}

	edges, err := database.NewMentionEdgesDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create mention edges handler", err)
	}

	extractor := pipeline.NewPatternExtractor(pipeline.DefaultRules(), extractConfig, logger)
	resolver := resolve.NewMentionResolver(persons, bills, committees, petitions, nil, logger)
	emitter := resolve.NewRelationshipEmitter(edges, logger)

	hansard := &Hansard{
		DB:         db,
		Persons:    persons,
		Bills:      bills,
		Committees: committees,
		Petitions:  petitions,
		Statements: statements,
		Edges:      edges,
		Extractor:  extractor,
		Resolver:   resolver,
		Emitter:    emitter,
		config:     extractConfig,
		log:        logger,
	}

	err = hansard.RebuildNameIndex()
	if err != nil {
		return nil, helper.NewError("build name index", err)
	}

	return hansard, nil
}

// Close closes the database connection
func (h *Hansard) Close() error {
	if h.DB != nil && h.DB.Instance != nil {
		return h.DB.Instance.Close()
	}
	return nil
}

// NameIndex returns the current name index
func (h *Hansard) NameIndex() *names.NameIndex {
	return h.nameIndex
}

// RebuildNameIndex rebuilds the name index from a fresh snapshot of current
// members and hands it to the resolver. Call after registry updates.
func (h *Hansard) RebuildNameIndex() error {
	persons, err := h.Persons.SelectCurrentPersons()
	if err != nil {
		return helper.NewError("select current persons", err)
	}

	h.nameIndex = names.NewNameIndex(persons, h.log)
	h.Resolver.SetNameIndex(h.nameIndex)

	h.log.Info("Rebuilt name index",
		slog.Int("persons", len(persons)),
		slog.Int("variants", h.nameIndex.Size()),
		slog.Int("collisions", h.nameIndex.Collisions()),
	)

	return nil
}

// ResetCaches drops the resolver's lookup caches. Long batch runs call this
// periodically to bound memory.
func (h *Hansard) ResetCaches() {
	h.Resolver.ResetCaches()
}

// ExtractAndResolve extracts candidate mentions from free text and resolves
// them against the registries without writing any edges. This is the dry-run
// building block: the returned mentions carry resolution state but nothing
// is persisted.
func (h *Hansard) ExtractAndResolve(text string) ([]*model.Mention, error) {
	mentions := h.Extractor.Extract(text, h.config.MinConfidence)
	if err := h.Resolver.ResolveAll(mentions); err != nil {
		return nil, helper.NewError("resolve mentions", err)
	}
	return mentions, nil
}

// ProcessStatement processes a single statement by:
// 1. Extracting candidate mentions from its content
// 2. Resolving them against the registries
// 3. Emitting one reference edge per resolved mention
// Statistics are accumulated into stats when non-nil. Unresolvable mentions
// are counted, not errors; only registry faults abort processing.
func (h *Hansard) ProcessStatement(statement *model.Statement, stats *model.BatchStats) ([]*model.Mention, error) {
	if statement == nil {
		return nil, helper.NewError("process statement", fmt.Errorf("statement is nil"))
	}

	mentions, err := h.ExtractAndResolve(statement.Content)
	if err != nil {
		return nil, err
	}

	extra := model.Metadata{
		"statement_id": statement.RID.String(),
	}
	if stage := pipeline.StageTag(statement.Heading); stage != "" {
		extra["stage"] = stage
	}

	written := h.Emitter.Emit(model.LabelStatement, statement.RID, mentions, extra)

	if stats != nil {
		stats.Processed++
		if len(mentions) > 0 {
			stats.WithMentions++
		}
		for _, mention := range mentions {
			if mention.Resolved() {
				stats.CountResolved(mention.EntityType)
				continue
			}
			if props, ok := mention.Properties.(model.PersonProperties); ok && props.Name != "" {
				stats.AddUnmatchedName(props.Name)
			}
		}
		stats.RelationshipsCreated += written
	}

	return mentions, nil
}

// AttributeSpeaker resolves the statement's raw speaker label against the
// name index and persists the resolved speaker. Returns false without error
// when the label does not match any current member.
func (h *Hansard) AttributeSpeaker(statement *model.Statement) (bool, error) {
	if statement == nil {
		return false, helper.NewError("attribute speaker", fmt.Errorf("statement is nil"))
	}
	if h.nameIndex == nil {
		return false, helper.NewError("attribute speaker", fmt.Errorf("name index not built"))
	}

	name := names.SpeakerName(statement.Speaker)
	id, ok := h.nameIndex.Lookup(name)
	if !ok {
		return false, nil
	}

	updated, err := h.Statements.UpdateStatementSpeaker(statement.RID, &id)
	if err != nil {
		return false, helper.NewError("update statement speaker", err)
	}
	statement.SpeakerID = updated.SpeakerID

	return true, nil
}
