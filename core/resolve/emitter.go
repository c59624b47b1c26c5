package resolve

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/openparl/hansardgraph/model"
)

// EdgeWriter is the write side of the graph store needed for emission.
// MergeMentionEdge is idempotent: it creates the edge if absent, otherwise
// updates its properties, and reports whether the edge was created.
type EdgeWriter interface {
	MergeMentionEdge(edge *model.MentionEdge) (bool, error)
}

// RelationshipEmitter records "references" edges from a source text unit to
// the canonical targets of its resolved mentions, with provenance metadata.
type RelationshipEmitter struct {
	writer EdgeWriter
	log    *slog.Logger
}

// NewRelationshipEmitter creates an emitter over the given edge writer
func NewRelationshipEmitter(writer EdgeWriter, logger *slog.Logger) *RelationshipEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &RelationshipEmitter{
		writer: writer,
		log:    logger,
	}
}

// Emit writes one edge per resolved mention, attaching confidence, raw
// text, position, the type-specific properties and any extra metadata.
// Unresolved mentions are skipped and not counted. A failing write is
// logged and does not abort the remaining mentions; Emit returns the number
// of edges successfully written.
func (e *RelationshipEmitter) Emit(sourceLabel model.NodeLabel, sourceID uuid.UUID, mentions []*model.Mention, extra model.Metadata) int {
	written := 0

	for _, mention := range mentions {
		if !mention.Resolved() {
			continue
		}

		targetLabel := model.LabelForEntityType(mention.EntityType)
		if targetLabel == "" {
			continue
		}

		metadata := model.Metadata{}
		for k, v := range extra {
			metadata[k] = v
		}
		if mention.Properties != nil {
			for k, v := range mention.Properties.Metadata() {
				metadata[k] = v
			}
		}
		metadata["entity_type"] = string(mention.EntityType)

		edge := &model.MentionEdge{
			SourceLabel: sourceLabel,
			SourceID:    sourceID,
			TargetLabel: targetLabel,
			TargetID:    *mention.ResolvedID,
			Confidence:  mention.Confidence,
			RawText:     mention.RawText,
			Position:    mention.Position,
			Metadata:    metadata,
		}

		if _, err := e.writer.MergeMentionEdge(edge); err != nil {
			e.log.Warn("Failed to write mention edge",
				slog.String("source_id", sourceID.String()),
				slog.String("target_id", mention.ResolvedID.String()),
				slog.String("raw_text", mention.RawText),
				slog.String("error", err.Error()),
			)
			continue
		}

		written++
	}

	return written
}
