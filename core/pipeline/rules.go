package pipeline

import (
	"regexp"
	"strings"

	"github.com/openparl/hansardgraph/model"
)

// PropsFunc builds type-specific mention properties from regex submatches.
// match[0] is the full matched text, match[1:] the capture groups.
type PropsFunc func(match []string) model.MentionProperties

// MentionRule is one declared extraction rule: a pattern with a fixed
// confidence prior and the entity type it produces. Rules are evaluated
// independently and are not mutually exclusive, the same span may match
// several rules of the same or different types.
type MentionRule struct {
	Name       string
	EntityType model.EntityType
	Pattern    *regexp.Regexp
	Confidence float64
	Props      PropsFunc
}

// ridingName matches capitalized riding names, including hyphenated and
// em-dash compounds ("Rosemont—La Petite-Patrie") and French connectives
const ridingName = `[A-Z][\p{L}'’.]*(?:(?:—|–|-| )(?:[A-Z][\p{L}'’.]*|de|du|des|la|le|les|aux|et|sur|en))*`

// DefaultRules returns the ordered extraction rule table for proceedings
// text. Confidence values are heuristic priors fixed per rule, never
// adjusted at runtime.
func DefaultRules() []MentionRule {
	return []MentionRule{
		// bills
		{
			Name:       "bill_explicit",
			EntityType: model.EntityTypeBill,
			Pattern:    regexp.MustCompile(`\bBill ([CS])-(\d+[A-Z]?)\b`),
			Confidence: 1.0,
			Props: func(match []string) model.MentionProperties {
				return model.BillProperties{BillCode: match[1] + "-" + match[2]}
			},
		},
		{
			// two digits minimum, single-digit codes are too ambiguous
			// outside an explicit "Bill C-2" phrasing
			Name:       "bill_code_bare",
			EntityType: model.EntityTypeBill,
			Pattern:    regexp.MustCompile(`\b([CS])-(\d{2,4})\b`),
			Confidence: 0.9,
			Props: func(match []string) model.MentionProperties {
				return model.BillProperties{BillCode: match[1] + "-" + match[2]}
			},
		},
		{
			Name:       "bill_anaphoric",
			EntityType: model.EntityTypeBill,
			Pattern:    regexp.MustCompile(`(?i)\b(?:the|this) bill\b`),
			Confidence: 0.5,
			Props: func(match []string) model.MentionProperties {
				return model.BillProperties{}
			},
		},
		// persons
		{
			Name:       "person_member_for_riding",
			EntityType: model.EntityTypePerson,
			Pattern:    regexp.MustCompile(`\b[Mm]ember for (` + ridingName + `)`),
			Confidence: 0.9,
			Props: func(match []string) model.MentionProperties {
				return model.PersonProperties{Riding: match[1]}
			},
		},
		{
			Name:       "person_titled_name",
			EntityType: model.EntityTypePerson,
			Pattern:    regexp.MustCompile(`\b(?:Right Hon|Rt\. Hon|Hon|Mrs|Ms|Mr|Dr)\.\s+([A-Z][\p{L}'’-]+(?:\s+[A-Z][\p{L}'’.-]+)+)`),
			Confidence: 0.8,
			Props: func(match []string) model.MentionProperties {
				return model.PersonProperties{Name: match[1]}
			},
		},
		{
			Name:       "person_prime_minister",
			EntityType: model.EntityTypePerson,
			Pattern:    regexp.MustCompile(`(?i)\bthe Prime Minister\b`),
			Confidence: 0.6,
			Props: func(match []string) model.MentionProperties {
				return model.PersonProperties{}
			},
		},
		{
			Name:       "person_colleague",
			EntityType: model.EntityTypePerson,
			Pattern:    regexp.MustCompile(`(?i)\bmy (?:hon\. )?colleague\b`),
			Confidence: 0.4,
			Props: func(match []string) model.MentionProperties {
				return model.PersonProperties{}
			},
		},
		// committees
		{
			Name:       "committee_full_name",
			EntityType: model.EntityTypeCommittee,
			Pattern:    regexp.MustCompile(`\b(?:Standing|Special|Legislative|Joint) Committee on ([A-Z][\p{L}'’-]*(?:[,\s]+(?:[A-Z][\p{L}'’-]*|and|of|the|to))*)`),
			Confidence: 1.0,
			Props: func(match []string) model.MentionProperties {
				return model.CommitteeProperties{Name: trimTrailingConnectives(match[1])}
			},
		},
		{
			Name:       "committee_code",
			EntityType: model.EntityTypeCommittee,
			Pattern:    regexp.MustCompile(`\bthe ([A-Z]{3,5}) committee\b`),
			Confidence: 0.85,
			Props: func(match []string) model.MentionProperties {
				return model.CommitteeProperties{Code: match[1]}
			},
		},
		{
			Name:       "committee_anaphoric",
			EntityType: model.EntityTypeCommittee,
			Pattern:    regexp.MustCompile(`(?i)\b(?:the|this) committee\b`),
			Confidence: 0.5,
			Props: func(match []string) model.MentionProperties {
				return model.CommitteeProperties{}
			},
		},
		// petitions
		{
			Name:       "petition_electronic",
			EntityType: model.EntityTypePetition,
			Pattern:    regexp.MustCompile(`(?i)\bpetition (?:no\. ?)?(e-\d+)\b`),
			Confidence: 1.0,
			Props:      petitionProps,
		},
		{
			Name:       "petition_paper",
			EntityType: model.EntityTypePetition,
			Pattern:    regexp.MustCompile(`(?i)\bpetition (?:no\. ?)?(\d{3}-\d{2,8})\b`),
			Confidence: 1.0,
			Props:      petitionProps,
		},
		{
			Name:       "petition_number_bare",
			EntityType: model.EntityTypePetition,
			Pattern:    regexp.MustCompile(`\b(e-\d{3,5})\b`),
			Confidence: 0.85,
			Props:      petitionProps,
		},
		{
			Name:       "petition_anaphoric",
			EntityType: model.EntityTypePetition,
			Pattern:    regexp.MustCompile(`(?i)\b(?:the|this) petition\b`),
			Confidence: 0.5,
			Props: func(match []string) model.MentionProperties {
				return model.PetitionProperties{}
			},
		},
		// votes
		{
			Name:       "vote_number",
			EntityType: model.EntityTypeVote,
			Pattern:    regexp.MustCompile(`(?i)\b(?:vote|division) no\. ?(\d+)\b`),
			Confidence: 1.0,
			Props: func(match []string) model.MentionProperties {
				return model.VoteProperties{Number: match[1]}
			},
		},
		// districts
		{
			Name:       "district_riding_of",
			EntityType: model.EntityTypeDistrict,
			Pattern:    regexp.MustCompile(`\briding of (` + ridingName + `)`),
			Confidence: 0.9,
			Props: func(match []string) model.MentionProperties {
				return model.DistrictProperties{Name: match[1]}
			},
		},
	}
}

// petitionProps classifies the captured petition number as electronic or
// paper based on its format and builds the petition properties
func petitionProps(match []string) model.MentionProperties {
	number := match[1]
	return model.PetitionProperties{
		Number: number,
		Kind:   ClassifyPetitionNumber(number),
	}
}

// ClassifyPetitionNumber derives the petition kind from the number format:
// an "e-" prefix marks an electronic petition, everything else follows the
// hyphenated paper-petition format.
func ClassifyPetitionNumber(number string) model.PetitionKind {
	if strings.HasPrefix(strings.ToLower(number), "e-") {
		return model.PetitionKindElectronic
	}
	return model.PetitionKindPaper
}

// committee names captured greedily may end on a connective when the
// following word is lowercase, trim those
func trimTrailingConnectives(name string) string {
	name = strings.TrimRight(strings.TrimSpace(name), ",")
	tokens := strings.Fields(name)
	for len(tokens) > 0 {
		switch tokens[len(tokens)-1] {
		case "and", "of", "the", "to":
			tokens = tokens[:len(tokens)-1]
		default:
			return strings.TrimRight(strings.Join(tokens, " "), ",")
		}
	}
	return ""
}
