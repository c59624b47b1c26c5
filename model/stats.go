package model

// BatchStats accumulates aggregate counters over a batch run. Partial
// resolution failures are surfaced here rather than as errors.
type BatchStats struct {
	Processed            int                `json:"processed"`
	WithMentions         int                `json:"with_mentions"`
	ResolvedByType       map[EntityType]int `json:"resolved_by_type"`
	RelationshipsCreated int                `json:"relationships_created"`
	UnmatchedNames       []string           `json:"unmatched_names,omitempty"`

	// maxUnmatchedSamples bounds UnmatchedNames; 0 means unbounded
	maxUnmatchedSamples int
}

// NewBatchStats creates empty statistics keeping at most maxUnmatchedSamples
// unmatched name samples
func NewBatchStats(maxUnmatchedSamples int) *BatchStats {
	return &BatchStats{
		ResolvedByType:      map[EntityType]int{},
		maxUnmatchedSamples: maxUnmatchedSamples,
	}
}

// CountResolved increments the per-type resolution counter
func (s *BatchStats) CountResolved(entityType EntityType) {
	s.ResolvedByType[entityType]++
}

// AddUnmatchedName records an unmatched name sample, up to the configured bound
func (s *BatchStats) AddUnmatchedName(name string) {
	if s.maxUnmatchedSamples > 0 && len(s.UnmatchedNames) >= s.maxUnmatchedSamples {
		return
	}
	s.UnmatchedNames = append(s.UnmatchedNames, name)
}

// TotalResolved sums resolution counts across entity types
func (s *BatchStats) TotalResolved() int {
	total := 0
	for _, n := range s.ResolvedByType {
		total += n
	}
	return total
}
