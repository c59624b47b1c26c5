package names

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/openparl/hansardgraph/model"
)

// NameIndex maps normalized name variants to canonical person ids. It is
// built once from a registry snapshot and never updated incrementally; a
// changed registry needs a rebuild. The index is intended for single-owner
// use per batch run and is not safe for concurrent mutation.
type NameIndex struct {
	byName     map[string]uuid.UUID
	collisions int
	log        *slog.Logger
}

// NewNameIndex builds an index from a snapshot of person records. For every
// person with given and family names it registers the full normalized name
// plus variants: the core form (first given token + first family token),
// nickname substitutions in both directions, the first word of compound
// family names and the pre-hyphen part of hyphenated family names. The bare
// display name is registered as well. On variant collisions between two
// persons the first registration wins; collisions are counted and logged at
// debug level.
func NewNameIndex(persons []*model.Person, logger *slog.Logger) *NameIndex {
	if logger == nil {
		logger = slog.Default()
	}

	index := &NameIndex{
		byName: map[string]uuid.UUID{},
		log:    logger,
	}

	for _, person := range persons {
		index.registerPerson(person)
	}

	logger.Debug("Built name index",
		slog.Int("persons", len(persons)),
		slog.Int("variants", len(index.byName)),
		slog.Int("collisions", index.collisions),
	)

	return index
}

func (i *NameIndex) registerPerson(person *model.Person) {
	if name := Normalize(person.Name); name != "" {
		i.register(name, person.ID)
	}

	given := Normalize(person.GivenName)
	family := Normalize(person.FamilyName)
	if given == "" || family == "" {
		// historical records may carry a display name only
		return
	}

	for _, g := range givenVariants(given) {
		for _, f := range familyVariants(family) {
			i.register(g+" "+f, person.ID)
		}
	}
}

// register maps a normalized variant to an id, first registration wins
func (i *NameIndex) register(variant string, id uuid.UUID) {
	if existing, ok := i.byName[variant]; ok {
		if existing != id {
			i.collisions++
			i.log.Debug("Name variant collision", slog.String("variant", variant))
		}
		return
	}
	i.byName[variant] = id
}

// givenVariants returns the normalized given name, its first token (middle
// names and initials stripped) and nickname substitutions of the first token
// in both directions
func givenVariants(given string) []string {
	variants := []string{given}

	first := strings.Fields(given)[0]
	variants = appendUnique(variants, first)

	if formal, ok := FormalName(first); ok {
		variants = appendUnique(variants, formal)
	}
	for _, nick := range Nicknames(first) {
		variants = appendUnique(variants, nick)
	}

	return variants
}

// familyVariants returns the normalized family name, the first word for
// compound family names and the pre-hyphen part for hyphenated ones
func familyVariants(family string) []string {
	variants := []string{family}

	if first, _, found := strings.Cut(family, " "); found {
		variants = appendUnique(variants, first)
	}
	if before, _, found := strings.Cut(family, "-"); found && before != "" {
		variants = appendUnique(variants, before)
	}

	return variants
}

func appendUnique(variants []string, v string) []string {
	for _, existing := range variants {
		if existing == v {
			return variants
		}
	}
	return append(variants, v)
}

// Lookup resolves a raw name string to a canonical person id, trying
// successively looser strategies: exact normalized match, first + last
// token, first + second token, then nickname substitution of the first
// token in either direction. A miss returns (uuid.Nil, false) and is not
// an error.
func (i *NameIndex) Lookup(raw string) (uuid.UUID, bool) {
	name := Normalize(StripHonorifics(raw))
	if name == "" {
		return uuid.Nil, false
	}

	if id, ok := i.byName[name]; ok {
		return id, true
	}

	tokens := strings.Fields(name)
	if len(tokens) < 2 {
		return uuid.Nil, false
	}

	// drop middle tokens
	if id, ok := i.byName[tokens[0]+" "+tokens[len(tokens)-1]]; ok {
		return id, true
	}

	// compound family names where only the first surname word was indexed
	if id, ok := i.byName[tokens[0]+" "+tokens[1]]; ok {
		return id, true
	}

	return i.lookupNicknameSubstituted(tokens)
}

func (i *NameIndex) lookupNicknameSubstituted(tokens []string) (uuid.UUID, bool) {
	first := tokens[0]
	rest := strings.Join(tokens[1:], " ")
	last := tokens[len(tokens)-1]

	candidates := []string{}
	if formal, ok := FormalName(first); ok {
		candidates = append(candidates, formal)
	}
	candidates = append(candidates, Nicknames(first)...)

	for _, candidate := range candidates {
		if id, ok := i.byName[candidate+" "+rest]; ok {
			return id, true
		}
		if id, ok := i.byName[candidate+" "+last]; ok {
			return id, true
		}
	}

	return uuid.Nil, false
}

// Size returns the number of registered name variants
func (i *NameIndex) Size() int {
	return len(i.byName)
}

// Collisions returns how many variant registrations pointed at a different
// person than the one already indexed
func (i *NameIndex) Collisions() int {
	return i.collisions
}
