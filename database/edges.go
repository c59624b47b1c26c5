package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/openparl/hansardgraph/helper"
	"github.com/openparl/hansardgraph/model"
	loadSql "github.com/openparl/hansardgraph/sql"
)

// MentionEdgesDBHandlerFunctions defines the interface for MentionEdges database operations.
type MentionEdgesDBHandlerFunctions interface {
	MergeMentionEdge(edge *model.MentionEdge) (bool, error)
	SelectMentionEdge(id uuid.UUID) (*model.MentionEdge, error)
	SelectMentionEdgesFromSource(sourceID uuid.UUID) ([]*model.MentionEdge, error)
	SelectMentionEdgesToTarget(targetID uuid.UUID) ([]*model.MentionEdge, error)
	DeleteMentionEdge(id uuid.UUID) error
}

// MentionEdgesDBHandler handles mention-edge database operations
type MentionEdgesDBHandler struct {
	db *helper.Database
}

// NewMentionEdgesDBHandler creates a new mention-edges database handler.
// It initializes the database connection and loads edge-related SQL functions.
// If force is true, it will reload the SQL functions even if they already exist.
func NewMentionEdgesDBHandler(db *helper.Database, force bool) (*MentionEdgesDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	edgesDbHandler := &MentionEdgesDBHandler{
		db: db,
	}

	err := loadSql.LoadMentionEdgesSql(edgesDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load mention edges sql", err)
	}

	err = edgesDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized MentionEdgesDBHandler")

	return edgesDbHandler, nil
}

// CreateTable creates the 'mention_edges' table in the database.
// If the table already exists, it does not create it again.
func (h *MentionEdgesDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_mention_edges();`)
	if err != nil {
		log.Panicf("error initializing mention_edges table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table mention_edges")

	return nil
}

func (h *MentionEdgesDBHandler) scanMentionEdge(row interface{ Scan(...any) error }, edge *model.MentionEdge) error {
	return row.Scan(
		&edge.ID,
		&edge.SourceLabel,
		&edge.SourceID,
		&edge.TargetLabel,
		&edge.TargetID,
		&edge.Confidence,
		&edge.RawText,
		&edge.Position,
		&edge.Metadata,
		&edge.CreatedAt,
	)
}

// MergeMentionEdge upserts a mention edge. The edge identity is the tuple
// (source_label, source_id, target_label, target_id, text_position); merging
// the same tuple again updates confidence, raw text and metadata in place.
// Returns true when a new edge row was created.
func (h *MentionEdgesDBHandler) MergeMentionEdge(edge *model.MentionEdge) (bool, error) {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM merge_mention_edge($1, $2, $3, $4, $5, $6, $7, $8)`,
		edge.SourceLabel,
		edge.SourceID,
		edge.TargetLabel,
		edge.TargetID,
		edge.Confidence,
		edge.RawText,
		edge.Position,
		edge.Metadata,
	)

	var created bool
	err := row.Scan(
		&edge.ID,
		&edge.SourceLabel,
		&edge.SourceID,
		&edge.TargetLabel,
		&edge.TargetID,
		&edge.Confidence,
		&edge.RawText,
		&edge.Position,
		&edge.Metadata,
		&edge.CreatedAt,
		&created,
	)
	if err != nil {
		return false, helper.NewError("scan", err)
	}

	return created, nil
}

// SelectMentionEdge retrieves a mention edge by ID
func (h *MentionEdgesDBHandler) SelectMentionEdge(id uuid.UUID) (*model.MentionEdge, error) {
	edge := &model.MentionEdge{}
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_mention_edge($1)`,
		id,
	)

	err := h.scanMentionEdge(row, edge)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return edge, nil
}

// SelectMentionEdgesFromSource retrieves all mention edges originating from
// the given source node, ordered by their position in the source text
func (h *MentionEdgesDBHandler) SelectMentionEdgesFromSource(sourceID uuid.UUID) ([]*model.MentionEdge, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_mention_edges_from_source($1)`,
		sourceID,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	edges := []*model.MentionEdge{}
	for rows.Next() {
		edge := &model.MentionEdge{}
		err := h.scanMentionEdge(rows, edge)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}
		edges = append(edges, edge)
	}
	if err := rows.Err(); err != nil {
		return nil, helper.NewError("rows", err)
	}

	return edges, nil
}

// SelectMentionEdgesToTarget retrieves all mention edges pointing at the
// given target node
func (h *MentionEdgesDBHandler) SelectMentionEdgesToTarget(targetID uuid.UUID) ([]*model.MentionEdge, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_mention_edges_to_target($1)`,
		targetID,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	edges := []*model.MentionEdge{}
	for rows.Next() {
		edge := &model.MentionEdge{}
		err := h.scanMentionEdge(rows, edge)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}
		edges = append(edges, edge)
	}
	if err := rows.Err(); err != nil {
		return nil, helper.NewError("rows", err)
	}

	return edges, nil
}

// DeleteMentionEdge deletes a mention edge by ID
func (h *MentionEdgesDBHandler) DeleteMentionEdge(id uuid.UUID) error {
	_, err := h.db.Instance.Exec(
		`SELECT delete_mention_edge($1)`,
		id,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}
