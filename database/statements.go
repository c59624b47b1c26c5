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

// StatementsDBHandlerFunctions defines the interface for Statements database operations.
type StatementsDBHandlerFunctions interface {
	InsertStatement(statement *model.Statement) error
	SelectStatement(rid uuid.UUID) (*model.Statement, error)
	SelectStatementsPage(afterID int64, limit int) ([]*model.Statement, error)
	UpdateStatementSpeaker(rid uuid.UUID, speakerID *uuid.UUID) (*model.Statement, error)
	CountStatements() (int64, error)
	DeleteStatement(rid uuid.UUID) error
}

// StatementsDBHandler handles statement database operations
type StatementsDBHandler struct {
	db *helper.Database
}

// NewStatementsDBHandler creates a new statements database handler.
// It initializes the database connection and loads statement-related SQL functions.
// If force is true, it will reload the SQL functions even if they already exist.
func NewStatementsDBHandler(db *helper.Database, force bool) (*StatementsDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	statementsDbHandler := &StatementsDBHandler{
		db: db,
	}

	err := loadSql.LoadStatementsSql(statementsDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load statements sql", err)
	}

	err = statementsDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized StatementsDBHandler")

	return statementsDbHandler, nil
}

// CreateTable creates the 'statements' table in the database.
// If the table already exists, it does not create it again.
func (h *StatementsDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_statements();`)
	if err != nil {
		log.Panicf("error initializing statements table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table statements")

	return nil
}

func (h *StatementsDBHandler) scanStatement(row interface{ Scan(...any) error }, statement *model.Statement) error {
	return row.Scan(
		&statement.ID,
		&statement.RID,
		&statement.Speaker,
		&statement.Heading,
		&statement.Content,
		&statement.Metadata,
		&statement.SpeakerID,
		&statement.CreatedAt,
		&statement.UpdatedAt,
	)
}

// InsertStatement inserts a new statement record
func (h *StatementsDBHandler) InsertStatement(statement *model.Statement) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_statement($1, $2, $3, $4)`,
		statement.Speaker,
		statement.Heading,
		statement.Content,
		statement.Metadata,
	)

	err := h.scanStatement(row, statement)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectStatement retrieves a statement by its reference ID
func (h *StatementsDBHandler) SelectStatement(rid uuid.UUID) (*model.Statement, error) {
	statement := &model.Statement{}
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_statement($1)`,
		rid,
	)

	err := h.scanStatement(row, statement)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return statement, nil
}

// SelectStatementsPage retrieves up to limit statements with ID greater than
// afterID, ordered by ID. Used for keyset pagination over batch runs.
func (h *StatementsDBHandler) SelectStatementsPage(afterID int64, limit int) ([]*model.Statement, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_statements_page($1, $2)`,
		afterID,
		limit,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	statements := []*model.Statement{}
	for rows.Next() {
		statement := &model.Statement{}
		err := h.scanStatement(rows, statement)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}
		statements = append(statements, statement)
	}
	if err := rows.Err(); err != nil {
		return nil, helper.NewError("rows", err)
	}

	return statements, nil
}

// UpdateStatementSpeaker sets (or clears) the resolved speaker of a statement
func (h *StatementsDBHandler) UpdateStatementSpeaker(rid uuid.UUID, speakerID *uuid.UUID) (*model.Statement, error) {
	statement := &model.Statement{}
	row := h.db.Instance.QueryRow(
		`SELECT * FROM update_statement_speaker($1, $2)`,
		rid,
		speakerID,
	)

	err := h.scanStatement(row, statement)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return statement, nil
}

// CountStatements returns the total number of statements
func (h *StatementsDBHandler) CountStatements() (int64, error) {
	var count int64
	row := h.db.Instance.QueryRow(`SELECT count_statements()`)

	err := row.Scan(&count)
	if err != nil {
		return 0, helper.NewError("scan", err)
	}

	return count, nil
}

// DeleteStatement deletes a statement by its reference ID
func (h *StatementsDBHandler) DeleteStatement(rid uuid.UUID) error {
	_, err := h.db.Instance.Exec(
		`SELECT delete_statement($1)`,
		rid,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}
