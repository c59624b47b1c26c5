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

// PersonsDBHandlerFunctions defines the interface for Persons database operations.
type PersonsDBHandlerFunctions interface {
	InsertPerson(person *model.Person) error
	SelectPerson(id uuid.UUID) (*model.Person, error)
	SelectCurrentPersons() ([]*model.Person, error)
	SelectPersonByRiding(riding string) (*model.Person, error)
	DeletePerson(id uuid.UUID) error
}

// PersonsDBHandler handles person-registry database operations
type PersonsDBHandler struct {
	db *helper.Database
}

// NewPersonsDBHandler creates a new persons database handler.
// It initializes the database connection and loads person-related SQL functions.
// If force is true, it will reload the SQL functions even if they already exist.
func NewPersonsDBHandler(db *helper.Database, force bool) (*PersonsDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	personsDbHandler := &PersonsDBHandler{
		db: db,
	}

	err := loadSql.LoadPersonsSql(personsDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load persons sql", err)
	}

	err = personsDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized PersonsDBHandler")

	return personsDbHandler, nil
}

// CreateTable creates the 'persons' table in the database.
// If the table already exists, it does not create it again.
// It also creates all necessary indexes.
func (h *PersonsDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_persons();`)
	if err != nil {
		log.Panicf("error initializing persons table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table persons")

	return nil
}

// InsertPerson inserts a new person record
func (h *PersonsDBHandler) InsertPerson(person *model.Person) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_person($1, $2, $3, $4, $5, $6)`,
		person.Name,
		person.GivenName,
		person.FamilyName,
		person.Riding,
		person.Current,
		person.Metadata,
	)

	err := row.Scan(
		&person.ID,
		&person.Name,
		&person.GivenName,
		&person.FamilyName,
		&person.Riding,
		&person.Current,
		&person.Metadata,
		&person.CreatedAt,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectPerson retrieves a person by ID
func (h *PersonsDBHandler) SelectPerson(id uuid.UUID) (*model.Person, error) {
	person := &model.Person{}
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_person($1)`,
		id,
	)

	err := row.Scan(
		&person.ID,
		&person.Name,
		&person.GivenName,
		&person.FamilyName,
		&person.Riding,
		&person.Current,
		&person.Metadata,
		&person.CreatedAt,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return person, nil
}

// SelectCurrentPersons retrieves all currently sitting persons, used to
// build the fuzzy name index
func (h *PersonsDBHandler) SelectCurrentPersons() ([]*model.Person, error) {
	rows, err := h.db.Instance.Query(`SELECT * FROM select_current_persons()`)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var persons []*model.Person
	for rows.Next() {
		person := &model.Person{}
		err := rows.Scan(
			&person.ID,
			&person.Name,
			&person.GivenName,
			&person.FamilyName,
			&person.Riding,
			&person.Current,
			&person.Metadata,
			&person.CreatedAt,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		persons = append(persons, person)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return persons, nil
}

// SelectPersonByRiding retrieves the current representative of a riding
func (h *PersonsDBHandler) SelectPersonByRiding(riding string) (*model.Person, error) {
	person := &model.Person{}
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_person_by_riding($1)`,
		riding,
	)

	err := row.Scan(
		&person.ID,
		&person.Name,
		&person.GivenName,
		&person.FamilyName,
		&person.Riding,
		&person.Current,
		&person.Metadata,
		&person.CreatedAt,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return person, nil
}

// DeletePerson deletes a person by ID
func (h *PersonsDBHandler) DeletePerson(id uuid.UUID) error {
	_, err := h.db.Instance.Exec(
		`SELECT delete_person($1)`,
		id,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}
