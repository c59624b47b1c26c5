// Package names provides name normalization and fuzzy identity matching for
// speaker labels and person mentions in proceedings text.
package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var punctuationReplacer = strings.NewReplacer(".", "", ",", "")

// Normalize canonicalizes a raw name string for comparison: accents are
// folded to their base letters, periods and commas dropped, the result
// lowercased and internal whitespace collapsed. Normalize is idempotent.
func Normalize(name string) string {
	folded, _, err := transform.String(foldAccents, name)
	if err != nil {
		folded = name
	}
	folded = punctuationReplacer.Replace(folded)
	folded = strings.ToLower(folded)
	return strings.Join(strings.Fields(folded), " ")
}

// honorifics that prefix speaker names, longest titles first so that
// "Right Hon." is not consumed as a partial match
var honorifics = []string{
	"Right Hon.",
	"Rt. Hon.",
	"Hon.",
	"Dr.",
	"Rev.",
	"Prof.",
	"Mr.",
	"Mrs.",
	"Ms.",
	"Miss",
}

// StripHonorifics removes leading honorific titles from a raw name string.
// It is intentionally separate from Normalize: some call sites need the
// un-stripped form for display.
func StripHonorifics(name string) string {
	trimmed := strings.TrimSpace(name)
	for {
		stripped := stripOneHonorific(trimmed)
		if stripped == trimmed {
			return trimmed
		}
		trimmed = stripped
	}
}

func stripOneHonorific(name string) string {
	for _, h := range honorifics {
		if len(name) < len(h) || !strings.EqualFold(name[:len(h)], h) {
			continue
		}
		rest := name[len(h):]
		// titles without a trailing period need a word boundary
		if !strings.HasSuffix(h, ".") && rest != "" && rest[0] != ' ' {
			continue
		}
		return strings.TrimSpace(rest)
	}
	return name
}

// SpeakerName converts a "LastName, Title FirstName" speaker label into
// "FirstName LastName" with honorifics removed. Labels without a comma are
// returned honorific-stripped as is.
func SpeakerName(label string) string {
	family, given, found := strings.Cut(label, ",")
	if !found {
		return StripHonorifics(strings.TrimSpace(label))
	}
	given = StripHonorifics(strings.TrimSpace(given))
	family = strings.TrimSpace(family)
	if given == "" {
		return family
	}
	return given + " " + family
}

// nicknameToFormal maps common nicknames to their formal given name. The
// table is consulted in both directions.
var nicknameToFormal = map[string]string{
	"bob":     "robert",
	"bobby":   "robert",
	"rob":     "robert",
	"bill":    "william",
	"will":    "william",
	"jim":     "james",
	"jimmy":   "james",
	"dick":    "richard",
	"rick":    "richard",
	"rich":    "richard",
	"tom":     "thomas",
	"mike":    "michael",
	"dave":    "david",
	"dan":     "daniel",
	"danny":   "daniel",
	"joe":     "joseph",
	"tony":    "anthony",
	"andy":    "andrew",
	"drew":    "andrew",
	"chris":   "christopher",
	"matt":    "matthew",
	"steve":   "stephen",
	"ed":      "edward",
	"ted":     "edward",
	"chuck":   "charles",
	"charlie": "charles",
	"ken":     "kenneth",
	"pat":     "patrick",
	"beth":    "elizabeth",
	"liz":     "elizabeth",
	"kate":    "katherine",
	"kathy":   "katherine",
	"peggy":   "margaret",
	"maggie":  "margaret",
	"sue":     "susan",
	"becky":   "rebecca",
	"jen":     "jennifer",
	"jenny":   "jennifer",
	"alex":    "alexander",
	"nick":    "nicholas",
	"sam":     "samuel",
	"ben":     "benjamin",
	"greg":    "gregory",
	"jeff":    "jeffrey",
	"fred":    "frederick",
	"frank":   "francis",
	"terry":   "terence",
	"gerry":   "gerald",
	"larry":   "lawrence",
}

// FormalName returns the formal given name for a known nickname.
// The input must already be normalized.
func FormalName(nickname string) (string, bool) {
	formal, ok := nicknameToFormal[nickname]
	return formal, ok
}

// Nicknames returns all known nicknames for a formal given name.
// The input must already be normalized.
func Nicknames(formal string) []string {
	var nicks []string
	for nick, f := range nicknameToFormal {
		if f == formal {
			nicks = append(nicks, nick)
		}
	}
	return nicks
}
