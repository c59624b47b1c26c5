package model

// ExtractConfig represents configuration for the extraction pipeline
type ExtractConfig struct {
	// MinConfidence filters out mentions below this rule confidence
	MinConfidence float64 `json:"min_confidence"`

	// ContextWindow is the half-width in runes of the context captured
	// around each match
	ContextWindow int `json:"context_window"`

	// UnmatchedNameSamples bounds how many unmatched name strings are kept
	// in the aggregate statistics
	UnmatchedNameSamples int `json:"unmatched_name_samples"`
}

// DefaultExtractConfig returns a sensible default configuration
func DefaultExtractConfig() ExtractConfig {
	return ExtractConfig{
		MinConfidence:        0.5,
		ContextWindow:        50,
		UnmatchedNameSamples: 25,
	}
}
