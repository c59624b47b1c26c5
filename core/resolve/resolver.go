// Package resolve maps extracted mentions to canonical registry records and
// records reference edges for the resolved ones.
package resolve

import (
	"database/sql"
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/openparl/hansardgraph/core/names"
	"github.com/openparl/hansardgraph/model"
)

// PersonRegistry is the read side of the person registry needed for
// resolution. Implementations return (nil, nil) or a wrapped sql.ErrNoRows
// when no record matches; both count as a miss, not an error.
type PersonRegistry interface {
	SelectCurrentPersons() ([]*model.Person, error)
	SelectPersonByRiding(riding string) (*model.Person, error)
}

// BillRegistry resolves bill codes, preferring the most recent session when
// a code recurs
type BillRegistry interface {
	SelectBillByCode(code string) (*model.Bill, error)
}

// CommitteeRegistry resolves committees by acronym or by display-name
// substring
type CommitteeRegistry interface {
	SelectCommitteeByCode(code string) (*model.Committee, error)
	SelectCommitteeByName(name string) (*model.Committee, error)
}

// PetitionRegistry resolves canonical petition numbers
type PetitionRegistry interface {
	SelectPetitionByNumber(number string) (*model.Petition, error)
}

var committeeCodePattern = regexp.MustCompile(`^[A-Z]{2,6}$`)

// MentionResolver maps candidate mentions to canonical ids using per-type
// strategies and per-type lookup caches. Caches grow for the life of the
// resolver and are cleared with ResetCaches; one resolver is intended to be
// driven by one logical batch of calls, it is not safe for unsynchronized
// concurrent use.
type MentionResolver struct {
	persons    PersonRegistry
	bills      BillRegistry
	committees CommitteeRegistry
	petitions  PetitionRegistry
	nameIndex  *names.NameIndex
	log        *slog.Logger

	// cached lookups, nil value marks an attempted lookup that missed
	billCache      map[string]*uuid.UUID
	personCache    map[string]*uuid.UUID
	committeeCache map[string]*uuid.UUID
	petitionCache  map[string]*uuid.UUID
}

// NewMentionResolver creates a resolver over the given registries. The name
// index may be nil until SetNameIndex is called; person name resolution
// misses until then.
func NewMentionResolver(
	persons PersonRegistry,
	bills BillRegistry,
	committees CommitteeRegistry,
	petitions PetitionRegistry,
	nameIndex *names.NameIndex,
	logger *slog.Logger,
) *MentionResolver {
	if logger == nil {
		logger = slog.Default()
	}

	r := &MentionResolver{
		persons:    persons,
		bills:      bills,
		committees: committees,
		petitions:  petitions,
		nameIndex:  nameIndex,
		log:        logger,
	}
	r.ResetCaches()

	return r
}

// SetNameIndex replaces the fuzzy name index, used after a registry refresh
func (r *MentionResolver) SetNameIndex(index *names.NameIndex) {
	r.nameIndex = index
}

// ResetCaches drops all per-type lookup caches. Long batch runs call this
// periodically to bound memory.
func (r *MentionResolver) ResetCaches() {
	r.billCache = map[string]*uuid.UUID{}
	r.personCache = map[string]*uuid.UUID{}
	r.committeeCache = map[string]*uuid.UUID{}
	r.petitionCache = map[string]*uuid.UUID{}
}

// Resolve attempts to set the mention's ResolvedID from the registry. A
// failed lookup is not an error and leaves ResolvedID unset; only registry
// faults (store unreachable, bad statement) return an error, unchanged.
func (r *MentionResolver) Resolve(mention *model.Mention) error {
	if mention.Resolved() {
		return nil
	}

	switch mention.EntityType {
	case model.EntityTypeBill:
		return r.resolveBill(mention)
	case model.EntityTypePerson:
		return r.resolvePerson(mention)
	case model.EntityTypeCommittee:
		return r.resolveCommittee(mention)
	case model.EntityTypePetition:
		return r.resolvePetition(mention)
	default:
		// vote and district mentions carry no resolution strategy
		return nil
	}
}

// ResolveAll resolves every mention in place, stopping on the first
// registry fault
func (r *MentionResolver) ResolveAll(mentions []*model.Mention) error {
	for _, mention := range mentions {
		if err := r.Resolve(mention); err != nil {
			return err
		}
	}
	return nil
}

func (r *MentionResolver) resolveBill(mention *model.Mention) error {
	props, ok := mention.Properties.(model.BillProperties)
	if !ok || props.BillCode == "" {
		return nil
	}

	code := strings.ToUpper(props.BillCode)
	if id, cached := r.billCache[code]; cached {
		setResolved(mention, id)
		return nil
	}

	bill, err := r.bills.SelectBillByCode(code)
	if err != nil {
		if isNoRows(err) {
			r.billCache[code] = nil
			return nil
		}
		return err
	}

	var id *uuid.UUID
	if bill != nil {
		id = &bill.ID
	}
	r.billCache[code] = id
	setResolved(mention, id)

	return nil
}

func (r *MentionResolver) resolvePerson(mention *model.Mention) error {
	props, ok := mention.Properties.(model.PersonProperties)
	if !ok {
		return nil
	}

	if props.Riding != "" {
		return r.resolvePersonByRiding(mention, props.Riding)
	}
	if props.Name != "" {
		return r.resolvePersonByName(mention, props.Name)
	}

	// anaphoric person mentions ("my colleague") stay unresolved
	return nil
}

func (r *MentionResolver) resolvePersonByRiding(mention *model.Mention, riding string) error {
	key := "riding:" + names.Normalize(riding)
	if id, cached := r.personCache[key]; cached {
		setResolved(mention, id)
		return nil
	}

	person, err := r.persons.SelectPersonByRiding(riding)
	if err != nil {
		if isNoRows(err) {
			r.personCache[key] = nil
			return nil
		}
		return err
	}

	var id *uuid.UUID
	if person != nil {
		id = &person.ID
	}
	r.personCache[key] = id
	setResolved(mention, id)

	return nil
}

func (r *MentionResolver) resolvePersonByName(mention *model.Mention, name string) error {
	key := "name:" + names.Normalize(names.StripHonorifics(name))
	if id, cached := r.personCache[key]; cached {
		setResolved(mention, id)
		return nil
	}

	var id *uuid.UUID
	if r.nameIndex != nil {
		if matched, ok := r.nameIndex.Lookup(name); ok {
			id = &matched
		}
	}
	r.personCache[key] = id
	setResolved(mention, id)

	return nil
}

func (r *MentionResolver) resolveCommittee(mention *model.Mention) error {
	props, ok := mention.Properties.(model.CommitteeProperties)
	if !ok {
		return nil
	}

	switch {
	case props.Code != "" && committeeCodePattern.MatchString(props.Code):
		return r.resolveCommitteeCached("code:"+props.Code, mention, func() (*model.Committee, error) {
			return r.committees.SelectCommitteeByCode(props.Code)
		})
	case props.Name != "":
		return r.resolveCommitteeCached("name:"+names.Normalize(props.Name), mention, func() (*model.Committee, error) {
			return r.committees.SelectCommitteeByName(props.Name)
		})
	default:
		return nil
	}
}

func (r *MentionResolver) resolveCommitteeCached(key string, mention *model.Mention, lookup func() (*model.Committee, error)) error {
	if id, cached := r.committeeCache[key]; cached {
		setResolved(mention, id)
		return nil
	}

	committee, err := lookup()
	if err != nil {
		if isNoRows(err) {
			r.committeeCache[key] = nil
			return nil
		}
		return err
	}

	var id *uuid.UUID
	if committee != nil {
		id = &committee.ID
	}
	r.committeeCache[key] = id
	setResolved(mention, id)

	return nil
}

func (r *MentionResolver) resolvePetition(mention *model.Mention) error {
	props, ok := mention.Properties.(model.PetitionProperties)
	if !ok || props.Number == "" {
		return nil
	}

	number := CanonicalPetitionNumber(props.Number, props.Kind)
	if id, cached := r.petitionCache[number]; cached {
		setResolved(mention, id)
		return nil
	}

	petition, err := r.petitions.SelectPetitionByNumber(number)
	if err != nil {
		if isNoRows(err) {
			r.petitionCache[number] = nil
			return nil
		}
		return err
	}

	var id *uuid.UUID
	if petition != nil {
		id = &petition.ID
	}
	r.petitionCache[number] = id
	setResolved(mention, id)

	return nil
}

// CanonicalPetitionNumber normalizes a captured petition number: electronic
// petitions become "e-" plus bare digits, paper petitions keep their
// digits-with-hyphens form
func CanonicalPetitionNumber(number string, kind model.PetitionKind) string {
	number = strings.TrimSpace(number)
	if kind == model.PetitionKindElectronic {
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, number)
		return "e-" + digits
	}
	return number
}

func setResolved(mention *model.Mention, id *uuid.UUID) {
	if id != nil {
		resolved := *id
		mention.ResolvedID = &resolved
	}
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
