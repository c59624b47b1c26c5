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

// PetitionsDBHandlerFunctions defines the interface for Petitions database operations.
type PetitionsDBHandlerFunctions interface {
	InsertPetition(petition *model.Petition) error
	SelectPetition(id uuid.UUID) (*model.Petition, error)
	SelectPetitionByNumber(number string) (*model.Petition, error)
	DeletePetition(id uuid.UUID) error
}

// PetitionsDBHandler handles petition-registry database operations
type PetitionsDBHandler struct {
	db *helper.Database
}

// NewPetitionsDBHandler creates a new petitions database handler.
// It initializes the database connection and loads petition-related SQL functions.
// If force is true, it will reload the SQL functions even if they already exist.
func NewPetitionsDBHandler(db *helper.Database, force bool) (*PetitionsDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	petitionsDbHandler := &PetitionsDBHandler{
		db: db,
	}

	err := loadSql.LoadPetitionsSql(petitionsDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load petitions sql", err)
	}

	err = petitionsDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized PetitionsDBHandler")

	return petitionsDbHandler, nil
}

// CreateTable creates the 'petitions' table in the database.
// If the table already exists, it does not create it again.
func (h *PetitionsDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_petitions();`)
	if err != nil {
		log.Panicf("error initializing petitions table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table petitions")

	return nil
}

// InsertPetition inserts a new petition record
func (h *PetitionsDBHandler) InsertPetition(petition *model.Petition) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_petition($1, $2, $3)`,
		petition.Number,
		petition.Kind,
		petition.Metadata,
	)

	err := row.Scan(
		&petition.ID,
		&petition.Number,
		&petition.Kind,
		&petition.Metadata,
		&petition.CreatedAt,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectPetition retrieves a petition by ID
func (h *PetitionsDBHandler) SelectPetition(id uuid.UUID) (*model.Petition, error) {
	petition := &model.Petition{}
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_petition($1)`,
		id,
	)

	err := row.Scan(
		&petition.ID,
		&petition.Number,
		&petition.Kind,
		&petition.Metadata,
		&petition.CreatedAt,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return petition, nil
}

// SelectPetitionByNumber retrieves a petition by its canonical number
func (h *PetitionsDBHandler) SelectPetitionByNumber(number string) (*model.Petition, error) {
	petition := &model.Petition{}
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_petition_by_number($1)`,
		number,
	)

	err := row.Scan(
		&petition.ID,
		&petition.Number,
		&petition.Kind,
		&petition.Metadata,
		&petition.CreatedAt,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return petition, nil
}

// DeletePetition deletes a petition by ID
func (h *PetitionsDBHandler) DeletePetition(id uuid.UUID) error {
	_, err := h.db.Instance.Exec(
		`SELECT delete_petition($1)`,
		id,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}
