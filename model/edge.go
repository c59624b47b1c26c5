package model

import (
	"time"

	"github.com/google/uuid"
)

// NodeLabel identifies the node kind on either end of a mention edge
type NodeLabel string

const (
	LabelStatement NodeLabel = "Statement"
	LabelBill      NodeLabel = "Bill"
	LabelPerson    NodeLabel = "Person"
	LabelCommittee NodeLabel = "Committee"
	LabelPetition  NodeLabel = "Petition"
)

// LabelForEntityType maps a mention entity type to its target node label.
// Returns an empty label for types without a canonical node kind.
func LabelForEntityType(entityType EntityType) NodeLabel {
	switch entityType {
	case EntityTypeBill:
		return LabelBill
	case EntityTypePerson:
		return LabelPerson
	case EntityTypeCommittee:
		return LabelCommittee
	case EntityTypePetition:
		return LabelPetition
	default:
		return ""
	}
}

// MentionEdge represents a "references" relationship from a source text unit
// to a canonical entity record, with provenance metadata
type MentionEdge struct {
	ID          uuid.UUID `json:"id"`
	SourceLabel NodeLabel `json:"source_label"`
	SourceID    uuid.UUID `json:"source_id"`
	TargetLabel NodeLabel `json:"target_label"`
	TargetID    uuid.UUID `json:"target_id"`
	Confidence  float64   `json:"confidence"`
	RawText     string    `json:"raw_text"`
	Position    int       `json:"position"`
	Metadata    Metadata  `json:"metadata,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
