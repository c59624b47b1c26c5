package database

import (
	"testing"

	"github.com/google/uuid"
	"github.com/openparl/hansardgraph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMentionEdgesNewMentionEdgesDBHandler(t *testing.T) {
	database := initDB(t)

	t.Run("Valid call NewMentionEdgesDBHandler", func(t *testing.T) {
		edgesDbHandler, err := NewMentionEdgesDBHandler(database, true)
		assert.NoError(t, err, "Expected NewMentionEdgesDBHandler to not return an error")
		require.NotNil(t, edgesDbHandler, "Expected NewMentionEdgesDBHandler to return a non-nil instance")
		require.NotNil(t, edgesDbHandler.db, "Expected NewMentionEdgesDBHandler to have a non-nil database instance")
	})

	t.Run("Invalid call NewMentionEdgesDBHandler with nil database", func(t *testing.T) {
		_, err := NewMentionEdgesDBHandler(nil, false)
		assert.Error(t, err, "Expected error when creating MentionEdgesDBHandler with nil database")
		assert.Contains(t, err.Error(), "database connection is nil", "Expected specific error message for nil database connection")
	})
}

func TestMentionEdgesMerge(t *testing.T) {
	database := initDB(t)

	edgesDbHandler, err := NewMentionEdgesDBHandler(database, true)
	require.NoError(t, err)

	sourceID := uuid.New()
	targetID := uuid.New()

	t.Run("Merge creates a new edge", func(t *testing.T) {
		edge := &model.MentionEdge{
			SourceLabel: model.LabelStatement,
			SourceID:    sourceID,
			TargetLabel: model.LabelBill,
			TargetID:    targetID,
			Confidence:  1.0,
			RawText:     "Bill C-234",
			Position:    17,
			Metadata:    model.Metadata{"entity_type": "bill"},
		}

		created, err := edgesDbHandler.MergeMentionEdge(edge)
		assert.NoError(t, err, "Expected Merge to not return an error")
		assert.True(t, created, "Expected first merge to create the edge")
		assert.NotEmpty(t, edge.ID, "Expected merged edge to have an ID")

		// Cleanup
		edgesDbHandler.DeleteMentionEdge(edge.ID)
	})

	t.Run("Merge of the same mention is idempotent", func(t *testing.T) {
		edge := &model.MentionEdge{
			SourceLabel: model.LabelStatement,
			SourceID:    sourceID,
			TargetLabel: model.LabelBill,
			TargetID:    targetID,
			Confidence:  0.9,
			RawText:     "C-234",
			Position:    42,
		}

		created, err := edgesDbHandler.MergeMentionEdge(edge)
		require.NoError(t, err)
		require.True(t, created, "Expected first merge to create the edge")
		firstID := edge.ID

		again := &model.MentionEdge{
			SourceLabel: model.LabelStatement,
			SourceID:    sourceID,
			TargetLabel: model.LabelBill,
			TargetID:    targetID,
			Confidence:  1.0,
			RawText:     "Bill C-234",
			Position:    42,
		}

		created, err = edgesDbHandler.MergeMentionEdge(again)
		assert.NoError(t, err, "Expected second merge to not return an error")
		assert.False(t, created, "Expected second merge to update the existing edge")
		assert.Equal(t, firstID, again.ID, "Expected the same edge row")
		assert.Equal(t, 1.0, again.Confidence, "Expected confidence to be updated")
		assert.Equal(t, "Bill C-234", again.RawText, "Expected raw text to be updated")

		// Cleanup
		edgesDbHandler.DeleteMentionEdge(firstID)
	})

	t.Run("Different positions create separate edges", func(t *testing.T) {
		first := &model.MentionEdge{
			SourceLabel: model.LabelStatement,
			SourceID:    sourceID,
			TargetLabel: model.LabelBill,
			TargetID:    targetID,
			Confidence:  1.0,
			RawText:     "Bill C-234",
			Position:    10,
		}
		second := &model.MentionEdge{
			SourceLabel: model.LabelStatement,
			SourceID:    sourceID,
			TargetLabel: model.LabelBill,
			TargetID:    targetID,
			Confidence:  0.9,
			RawText:     "C-234",
			Position:    80,
		}

		created, err := edgesDbHandler.MergeMentionEdge(first)
		require.NoError(t, err)
		assert.True(t, created)
		created, err = edgesDbHandler.MergeMentionEdge(second)
		require.NoError(t, err)
		assert.True(t, created, "Expected mention at a different position to create a new edge")
		assert.NotEqual(t, first.ID, second.ID, "Expected separate edge rows")

		// Cleanup
		edgesDbHandler.DeleteMentionEdge(first.ID)
		edgesDbHandler.DeleteMentionEdge(second.ID)
	})
}

func TestMentionEdgesGet(t *testing.T) {
	database := initDB(t)

	edgesDbHandler, err := NewMentionEdgesDBHandler(database, true)
	require.NoError(t, err)

	sourceID := uuid.New()
	personID := uuid.New()
	billID := uuid.New()

	edges := []*model.MentionEdge{
		{
			SourceLabel: model.LabelStatement,
			SourceID:    sourceID,
			TargetLabel: model.LabelPerson,
			TargetID:    personID,
			Confidence:  0.9,
			RawText:     "member for Carleton",
			Position:    4,
		},
		{
			SourceLabel: model.LabelStatement,
			SourceID:    sourceID,
			TargetLabel: model.LabelBill,
			TargetID:    billID,
			Confidence:  1.0,
			RawText:     "Bill C-2",
			Position:    31,
		},
	}
	for _, edge := range edges {
		_, err := edgesDbHandler.MergeMentionEdge(edge)
		require.NoError(t, err)
	}

	t.Run("Get edge by ID", func(t *testing.T) {
		retrievedEdge, err := edgesDbHandler.SelectMentionEdge(edges[0].ID)
		assert.NoError(t, err, "Expected Get to not return an error")
		require.NotNil(t, retrievedEdge, "Expected Get to return a non-nil edge")
		assert.Equal(t, edges[0].RawText, retrievedEdge.RawText, "Expected raw texts to match")
	})

	t.Run("Get edges from source ordered by position", func(t *testing.T) {
		fromSource, err := edgesDbHandler.SelectMentionEdgesFromSource(sourceID)
		assert.NoError(t, err, "Expected SelectMentionEdgesFromSource to not return an error")
		require.Len(t, fromSource, 2, "Expected both edges from the source")
		assert.Less(t, fromSource[0].Position, fromSource[1].Position, "Expected edges ordered by position")
	})

	t.Run("Get edges to target", func(t *testing.T) {
		toTarget, err := edgesDbHandler.SelectMentionEdgesToTarget(billID)
		assert.NoError(t, err, "Expected SelectMentionEdgesToTarget to not return an error")
		require.Len(t, toTarget, 1, "Expected a single edge to the bill")
		assert.Equal(t, model.LabelBill, toTarget[0].TargetLabel, "Expected bill target label")
	})

	// Cleanup
	for _, edge := range edges {
		edgesDbHandler.DeleteMentionEdge(edge.ID)
	}
}
