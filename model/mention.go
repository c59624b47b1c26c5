package model

import (
	"github.com/google/uuid"
)

// EntityType represents the kind of domain entity a mention refers to
type EntityType string

const (
	EntityTypeBill      EntityType = "bill"
	EntityTypePerson    EntityType = "person"
	EntityTypeCommittee EntityType = "committee"
	EntityTypePetition  EntityType = "petition"
	EntityTypeVote      EntityType = "vote"
	EntityTypeDistrict  EntityType = "district"
)

// Mention represents a candidate reference to a domain entity found in free text.
// It is created per extraction call and immutable after creation except for
// ResolvedID, which is set once resolution succeeds. Mentions are not persisted.
type Mention struct {
	EntityType EntityType        `json:"entity_type"`
	RawText    string            `json:"raw_text"`
	Position   int               `json:"position"`
	Context    string            `json:"context"`
	Confidence float64           `json:"confidence"`
	Properties MentionProperties `json:"properties,omitempty"`
	ResolvedID *uuid.UUID        `json:"resolved_id,omitempty"`
}

// Resolved reports whether the mention has been mapped to a canonical record
func (m *Mention) Resolved() bool {
	return m.ResolvedID != nil
}

// MentionProperties holds type-specific structured extras for a mention.
// It is a closed set: exactly one implementation exists per entity type.
type MentionProperties interface {
	// Metadata flattens the properties into edge metadata keys
	Metadata() Metadata

	mentionProperties()
}

// BillProperties holds extras for bill mentions
type BillProperties struct {
	BillCode string `json:"bill_code"`
}

func (p BillProperties) Metadata() Metadata {
	return Metadata{"bill_code": p.BillCode}
}

// PersonProperties holds extras for person mentions.
// Exactly one of Riding or Name is set, depending on which alternative of the
// person pattern matched.
type PersonProperties struct {
	Riding string `json:"riding,omitempty"`
	Name   string `json:"name,omitempty"`
}

func (p PersonProperties) Metadata() Metadata {
	md := Metadata{}
	if p.Riding != "" {
		md["riding"] = p.Riding
	}
	if p.Name != "" {
		md["name"] = p.Name
	}
	return md
}

// CommitteeProperties holds extras for committee mentions
type CommitteeProperties struct {
	Code string `json:"committee_code,omitempty"`
	Name string `json:"committee_name,omitempty"`
}

func (p CommitteeProperties) Metadata() Metadata {
	md := Metadata{}
	if p.Code != "" {
		md["committee_code"] = p.Code
	}
	if p.Name != "" {
		md["committee_name"] = p.Name
	}
	return md
}

// PetitionKind classifies a petition number format
type PetitionKind string

const (
	PetitionKindElectronic PetitionKind = "electronic"
	PetitionKindPaper      PetitionKind = "paper"
)

// PetitionProperties holds extras for petition mentions
type PetitionProperties struct {
	Number string       `json:"petition_number"`
	Kind   PetitionKind `json:"petition_kind"`
}

func (p PetitionProperties) Metadata() Metadata {
	return Metadata{"petition_number": p.Number, "petition_kind": string(p.Kind)}
}

// VoteProperties holds extras for vote mentions
type VoteProperties struct {
	Number string `json:"vote_number"`
}

func (p VoteProperties) Metadata() Metadata {
	return Metadata{"vote_number": p.Number}
}

// DistrictProperties holds extras for electoral district mentions
type DistrictProperties struct {
	Name string `json:"district_name"`
}

func (p DistrictProperties) Metadata() Metadata {
	return Metadata{"district_name": p.Name}
}

func (BillProperties) mentionProperties()      {}
func (PersonProperties) mentionProperties()    {}
func (CommitteeProperties) mentionProperties() {}
func (PetitionProperties) mentionProperties()  {}
func (VoteProperties) mentionProperties()      {}
func (DistrictProperties) mentionProperties()  {}
