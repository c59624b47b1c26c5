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

// CommitteesDBHandlerFunctions defines the interface for Committees database operations.
type CommitteesDBHandlerFunctions interface {
	InsertCommittee(committee *model.Committee) error
	SelectCommittee(id uuid.UUID) (*model.Committee, error)
	SelectCommitteeByCode(code string) (*model.Committee, error)
	SelectCommitteeByName(name string) (*model.Committee, error)
	DeleteCommittee(id uuid.UUID) error
}

// CommitteesDBHandler handles committee-registry database operations
type CommitteesDBHandler struct {
	db *helper.Database
}

// NewCommitteesDBHandler creates a new committees database handler.
// It initializes the database connection and loads committee-related SQL functions.
// If force is true, it will reload the SQL functions even if they already exist.
func NewCommitteesDBHandler(db *helper.Database, force bool) (*CommitteesDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	committeesDbHandler := &CommitteesDBHandler{
		db: db,
	}

	err := loadSql.LoadCommitteesSql(committeesDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load committees sql", err)
	}

	err = committeesDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized CommitteesDBHandler")

	return committeesDbHandler, nil
}

// CreateTable creates the 'committees' table in the database.
// If the table already exists, it does not create it again.
// It also creates the trigram index used for name search.
func (h *CommitteesDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_committees();`)
	if err != nil {
		log.Panicf("error initializing committees table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table committees")

	return nil
}

// InsertCommittee inserts a new committee record
func (h *CommitteesDBHandler) InsertCommittee(committee *model.Committee) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_committee($1, $2, $3)`,
		committee.Code,
		committee.Name,
		committee.Metadata,
	)

	err := row.Scan(
		&committee.ID,
		&committee.Code,
		&committee.Name,
		&committee.Metadata,
		&committee.CreatedAt,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectCommittee retrieves a committee by ID
func (h *CommitteesDBHandler) SelectCommittee(id uuid.UUID) (*model.Committee, error) {
	committee := &model.Committee{}
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_committee($1)`,
		id,
	)

	err := row.Scan(
		&committee.ID,
		&committee.Code,
		&committee.Name,
		&committee.Metadata,
		&committee.CreatedAt,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return committee, nil
}

// SelectCommitteeByCode retrieves a committee by its acronym
func (h *CommitteesDBHandler) SelectCommitteeByCode(code string) (*model.Committee, error) {
	committee := &model.Committee{}
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_committee_by_code($1)`,
		code,
	)

	err := row.Scan(
		&committee.ID,
		&committee.Code,
		&committee.Name,
		&committee.Metadata,
		&committee.CreatedAt,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return committee, nil
}

// SelectCommitteeByName retrieves the committee whose display name contains
// the given substring, shortest matching name first
func (h *CommitteesDBHandler) SelectCommitteeByName(name string) (*model.Committee, error) {
	committee := &model.Committee{}
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_committee_by_name($1)`,
		name,
	)

	err := row.Scan(
		&committee.ID,
		&committee.Code,
		&committee.Name,
		&committee.Metadata,
		&committee.CreatedAt,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return committee, nil
}

// DeleteCommittee deletes a committee by ID
func (h *CommitteesDBHandler) DeleteCommittee(id uuid.UUID) error {
	_, err := h.db.Instance.Exec(
		`SELECT delete_committee($1)`,
		id,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}
