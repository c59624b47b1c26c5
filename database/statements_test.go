package database

import (
	"testing"
	"time"

	"github.com/openparl/hansardgraph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatementsNewStatementsDBHandler(t *testing.T) {
	database := initDB(t)

	t.Run("Valid call NewStatementsDBHandler", func(t *testing.T) {
		statementsDbHandler, err := NewStatementsDBHandler(database, true)
		assert.NoError(t, err, "Expected NewStatementsDBHandler to not return an error")
		require.NotNil(t, statementsDbHandler, "Expected NewStatementsDBHandler to return a non-nil instance")
		require.NotNil(t, statementsDbHandler.db, "Expected NewStatementsDBHandler to have a non-nil database instance")
	})

	t.Run("Invalid call NewStatementsDBHandler with nil database", func(t *testing.T) {
		_, err := NewStatementsDBHandler(nil, false)
		assert.Error(t, err, "Expected error when creating StatementsDBHandler with nil database")
		assert.Contains(t, err.Error(), "database connection is nil", "Expected specific error message for nil database connection")
	})
}

func TestStatementsInsertAndGet(t *testing.T) {
	database := initDB(t)

	statementsDbHandler, err := NewStatementsDBHandler(database, true)
	require.NoError(t, err)

	t.Run("Insert statement", func(t *testing.T) {
		statement := &model.Statement{
			Speaker: "Freeland, Hon. Chrystia",
			Heading: "Government Orders",
			Content: "Mr. Speaker, I rise today to speak to Bill C-2.",
		}

		err := statementsDbHandler.InsertStatement(statement)
		assert.NoError(t, err, "Expected Insert to not return an error")
		assert.NotZero(t, statement.ID, "Expected inserted statement to have an ID")
		assert.NotEmpty(t, statement.RID, "Expected inserted statement to have a reference ID")
		assert.WithinDuration(t, statement.CreatedAt, time.Now(), 2*time.Second, "Expected CreatedAt to be set")

		// Cleanup
		statementsDbHandler.DeleteStatement(statement.RID)
	})

	t.Run("Get statement by reference ID", func(t *testing.T) {
		statement := &model.Statement{
			Speaker: "The Speaker",
			Content: "Order, please.",
		}
		err := statementsDbHandler.InsertStatement(statement)
		require.NoError(t, err)

		retrievedStatement, err := statementsDbHandler.SelectStatement(statement.RID)
		assert.NoError(t, err, "Expected Get to not return an error")
		require.NotNil(t, retrievedStatement, "Expected Get to return a non-nil statement")
		assert.Equal(t, statement.ID, retrievedStatement.ID, "Expected statement IDs to match")
		assert.Equal(t, statement.Content, retrievedStatement.Content, "Expected contents to match")
		assert.Nil(t, retrievedStatement.SpeakerID, "Expected no resolved speaker on a fresh statement")

		// Cleanup
		statementsDbHandler.DeleteStatement(statement.RID)
	})
}

func TestStatementsPage(t *testing.T) {
	database := initDB(t)

	statementsDbHandler, err := NewStatementsDBHandler(database, true)
	require.NoError(t, err)

	statements := []*model.Statement{}
	for i := 0; i < 5; i++ {
		statement := &model.Statement{
			Speaker: "Member " + string(rune('A'+i)),
			Content: "Intervention " + string(rune('A'+i)),
		}
		err = statementsDbHandler.InsertStatement(statement)
		require.NoError(t, err)
		statements = append(statements, statement)
	}

	t.Run("Page from the beginning", func(t *testing.T) {
		page, err := statementsDbHandler.SelectStatementsPage(0, 3)
		assert.NoError(t, err, "Expected SelectStatementsPage to not return an error")
		assert.Len(t, page, 3, "Expected page of 3 statements")
		for i := 1; i < len(page); i++ {
			assert.Greater(t, page[i].ID, page[i-1].ID, "Expected page ordered by ID")
		}
	})

	t.Run("Page after a cursor", func(t *testing.T) {
		page, err := statementsDbHandler.SelectStatementsPage(statements[2].ID, 10)
		assert.NoError(t, err, "Expected SelectStatementsPage to not return an error")
		require.GreaterOrEqual(t, len(page), 2, "Expected remaining statements after cursor")
		for _, s := range page {
			assert.Greater(t, s.ID, statements[2].ID, "Expected only statements after the cursor")
		}
	})

	t.Run("Count statements", func(t *testing.T) {
		count, err := statementsDbHandler.CountStatements()
		assert.NoError(t, err, "Expected CountStatements to not return an error")
		assert.GreaterOrEqual(t, count, int64(5), "Expected at least the inserted statements")
	})

	// Cleanup
	for _, statement := range statements {
		statementsDbHandler.DeleteStatement(statement.RID)
	}
}

func TestStatementsUpdateSpeaker(t *testing.T) {
	database := initDB(t)

	statementsDbHandler, err := NewStatementsDBHandler(database, true)
	require.NoError(t, err)
	personsDbHandler, err := NewPersonsDBHandler(database, true)
	require.NoError(t, err)

	person := &model.Person{
		Name:       "Chrystia Freeland",
		GivenName:  "Chrystia",
		FamilyName: "Freeland",
		Riding:     "University—Rosedale",
		Current:    true,
	}
	err = personsDbHandler.InsertPerson(person)
	require.NoError(t, err)

	statement := &model.Statement{
		Speaker: "Freeland, Hon. Chrystia",
		Content: "Mr. Speaker, the budget will balance itself.",
	}
	err = statementsDbHandler.InsertStatement(statement)
	require.NoError(t, err)

	t.Run("Set resolved speaker", func(t *testing.T) {
		updated, err := statementsDbHandler.UpdateStatementSpeaker(statement.RID, &person.ID)
		assert.NoError(t, err, "Expected UpdateStatementSpeaker to not return an error")
		require.NotNil(t, updated, "Expected UpdateStatementSpeaker to return the updated statement")
		require.NotNil(t, updated.SpeakerID, "Expected resolved speaker to be set")
		assert.Equal(t, person.ID, *updated.SpeakerID, "Expected resolved speaker to match the person")
	})

	t.Run("Clear resolved speaker", func(t *testing.T) {
		updated, err := statementsDbHandler.UpdateStatementSpeaker(statement.RID, nil)
		assert.NoError(t, err, "Expected UpdateStatementSpeaker to not return an error")
		require.NotNil(t, updated, "Expected UpdateStatementSpeaker to return the updated statement")
		assert.Nil(t, updated.SpeakerID, "Expected resolved speaker to be cleared")
	})

	// Cleanup
	statementsDbHandler.DeleteStatement(statement.RID)
	personsDbHandler.DeletePerson(person.ID)
}
