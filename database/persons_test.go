package database

import (
	"testing"
	"time"

	"github.com/openparl/hansardgraph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonsNewPersonsDBHandler(t *testing.T) {
	database := initDB(t)

	t.Run("Valid call NewPersonsDBHandler", func(t *testing.T) {
		personsDbHandler, err := NewPersonsDBHandler(database, true)
		assert.NoError(t, err, "Expected NewPersonsDBHandler to not return an error")
		require.NotNil(t, personsDbHandler, "Expected NewPersonsDBHandler to return a non-nil instance")
		require.NotNil(t, personsDbHandler.db, "Expected NewPersonsDBHandler to have a non-nil database instance")
		require.NotNil(t, personsDbHandler.db.Instance, "Expected NewPersonsDBHandler to have a non-nil database connection instance")
	})

	t.Run("Invalid call NewPersonsDBHandler with nil database", func(t *testing.T) {
		_, err := NewPersonsDBHandler(nil, false)
		assert.Error(t, err, "Expected error when creating PersonsDBHandler with nil database")
		assert.Contains(t, err.Error(), "database connection is nil", "Expected specific error message for nil database connection")
	})
}

func TestPersonsInsert(t *testing.T) {
	database := initDB(t)

	personsDbHandler, err := NewPersonsDBHandler(database, true)
	require.NoError(t, err, "Expected NewPersonsDBHandler to not return an error")

	t.Run("Insert person", func(t *testing.T) {
		person := &model.Person{
			Name:       "Chrystia Freeland",
			GivenName:  "Chrystia",
			FamilyName: "Freeland",
			Riding:     "University—Rosedale",
			Current:    true,
			Metadata:   model.Metadata{"party": "Liberal"},
		}

		err := personsDbHandler.InsertPerson(person)
		assert.NoError(t, err, "Expected Insert to not return an error")
		assert.NotEmpty(t, person.ID, "Expected inserted person to have an ID")
		assert.WithinDuration(t, person.CreatedAt, time.Now(), 2*time.Second, "Expected CreatedAt to be set")

		// Cleanup
		personsDbHandler.DeletePerson(person.ID)
	})

	t.Run("Insert person without given and family name", func(t *testing.T) {
		person := &model.Person{
			Name:    "The Speaker",
			Current: true,
		}

		err := personsDbHandler.InsertPerson(person)
		assert.NoError(t, err, "Expected Insert to not return an error")
		assert.NotEmpty(t, person.ID, "Expected inserted person to have an ID")

		// Cleanup
		personsDbHandler.DeletePerson(person.ID)
	})
}

func TestPersonsGet(t *testing.T) {
	database := initDB(t)

	personsDbHandler, err := NewPersonsDBHandler(database, true)
	require.NoError(t, err)

	// Create a person
	person := &model.Person{
		Name:       "Pierre Poilievre",
		GivenName:  "Pierre",
		FamilyName: "Poilievre",
		Riding:     "Carleton",
		Current:    true,
	}
	err = personsDbHandler.InsertPerson(person)
	require.NoError(t, err)

	// Test Get
	retrievedPerson, err := personsDbHandler.SelectPerson(person.ID)
	assert.NoError(t, err, "Expected Get to not return an error")
	assert.NotNil(t, retrievedPerson, "Expected Get to return a non-nil person")
	assert.Equal(t, person.ID, retrievedPerson.ID, "Expected person IDs to match")
	assert.Equal(t, person.Name, retrievedPerson.Name, "Expected names to match")
	assert.Equal(t, person.Riding, retrievedPerson.Riding, "Expected ridings to match")

	// Cleanup
	personsDbHandler.DeletePerson(person.ID)
}

func TestPersonsGetCurrent(t *testing.T) {
	database := initDB(t)

	personsDbHandler, err := NewPersonsDBHandler(database, true)
	require.NoError(t, err)

	current := &model.Person{
		Name:       "Elizabeth May",
		GivenName:  "Elizabeth",
		FamilyName: "May",
		Riding:     "Saanich—Gulf Islands",
		Current:    true,
	}
	former := &model.Person{
		Name:       "Rona Ambrose",
		GivenName:  "Rona",
		FamilyName: "Ambrose",
		Riding:     "Sturgeon River—Parkland",
		Current:    false,
	}
	err = personsDbHandler.InsertPerson(current)
	require.NoError(t, err)
	err = personsDbHandler.InsertPerson(former)
	require.NoError(t, err)

	// Test SelectCurrentPersons
	persons, err := personsDbHandler.SelectCurrentPersons()
	assert.NoError(t, err, "Expected SelectCurrentPersons to not return an error")

	ids := []string{}
	for _, p := range persons {
		assert.True(t, p.Current, "Expected only current members")
		ids = append(ids, p.ID.String())
	}
	assert.Contains(t, ids, current.ID.String(), "Expected current member in result")
	assert.NotContains(t, ids, former.ID.String(), "Expected former member to be excluded")

	// Cleanup
	personsDbHandler.DeletePerson(current.ID)
	personsDbHandler.DeletePerson(former.ID)
}

func TestPersonsGetByRiding(t *testing.T) {
	database := initDB(t)

	personsDbHandler, err := NewPersonsDBHandler(database, true)
	require.NoError(t, err)

	person := &model.Person{
		Name:       "Bobby Morrissey",
		GivenName:  "Bobby",
		FamilyName: "Morrissey",
		Riding:     "Egmont",
		Current:    true,
	}
	err = personsDbHandler.InsertPerson(person)
	require.NoError(t, err)

	t.Run("Riding lookup is case insensitive", func(t *testing.T) {
		retrievedPerson, err := personsDbHandler.SelectPersonByRiding("egmont")
		assert.NoError(t, err, "Expected SelectPersonByRiding to not return an error")
		require.NotNil(t, retrievedPerson, "Expected SelectPersonByRiding to return a non-nil person")
		assert.Equal(t, person.ID, retrievedPerson.ID, "Expected person IDs to match")
	})

	t.Run("Unknown riding returns an error", func(t *testing.T) {
		_, err := personsDbHandler.SelectPersonByRiding("Atlantis")
		assert.Error(t, err, "Expected error for unknown riding")
	})

	// Cleanup
	personsDbHandler.DeletePerson(person.ID)
}

func TestPersonsDelete(t *testing.T) {
	database := initDB(t)

	personsDbHandler, err := NewPersonsDBHandler(database, true)
	require.NoError(t, err)

	person := &model.Person{
		Name:    "To Delete",
		Current: false,
	}
	err = personsDbHandler.InsertPerson(person)
	require.NoError(t, err)

	// Delete the person
	err = personsDbHandler.DeletePerson(person.ID)
	assert.NoError(t, err, "Expected Delete to not return an error")

	// Verify deletion
	_, err = personsDbHandler.SelectPerson(person.ID)
	assert.Error(t, err, "Expected Get to return an error for deleted person")
}
