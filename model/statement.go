package model

import (
	"time"

	"github.com/google/uuid"
)

// Statement represents one source text unit of a proceeding: a speech in
// debate or an intervention in committee testimony.
type Statement struct {
	ID       int64     `json:"id"`
	RID      uuid.UUID `json:"rid"`
	Speaker  string    `json:"speaker,omitempty"` // raw speaker label, e.g. "Freeland, Hon. Chrystia"
	Heading  string    `json:"heading,omitempty"` // section heading, used for stage-tag derivation
	Content  string    `json:"content"`
	Metadata Metadata  `json:"metadata,omitempty"`
	// SpeakerID is set once speaker attribution succeeds
	SpeakerID *uuid.UUID `json:"speaker_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
