package model

import (
	"time"

	"github.com/google/uuid"
)

// Person represents a canonical member-of-parliament record in the registry.
// GivenName and FamilyName may be empty for historical records; name matching
// then falls back to the display name only.
type Person struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	GivenName  string    `json:"given_name,omitempty"`
	FamilyName string    `json:"family_name,omitempty"`
	Riding     string    `json:"riding,omitempty"`
	Current    bool      `json:"current"`
	Metadata   Metadata  `json:"metadata,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Bill represents a canonical bill record.
// The same code (e.g. "C-2") recurs across parliamentary sessions, so lookups
// by code prefer the most recent session.
type Bill struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Session   string    `json:"session"`
	Title     string    `json:"title,omitempty"`
	Metadata  Metadata  `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Committee represents a canonical committee record, identified by its
// uppercase acronym (e.g. "ETHI") and display name.
type Committee struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Metadata  Metadata  `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Petition represents a canonical petition record. The number is stored in
// canonical form: "e-" plus digits for electronic petitions, digits with
// hyphens for paper petitions.
type Petition struct {
	ID        uuid.UUID    `json:"id"`
	Number    string       `json:"number"`
	Kind      PetitionKind `json:"kind"`
	Metadata  Metadata     `json:"metadata,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}
