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

// BillsDBHandlerFunctions defines the interface for Bills database operations.
type BillsDBHandlerFunctions interface {
	InsertBill(bill *model.Bill) error
	SelectBill(id uuid.UUID) (*model.Bill, error)
	SelectBillByCode(code string) (*model.Bill, error)
	DeleteBill(id uuid.UUID) error
}

// BillsDBHandler handles bill-registry database operations
type BillsDBHandler struct {
	db *helper.Database
}

// NewBillsDBHandler creates a new bills database handler.
// It initializes the database connection and loads bill-related SQL functions.
// If force is true, it will reload the SQL functions even if they already exist.
func NewBillsDBHandler(db *helper.Database, force bool) (*BillsDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	billsDbHandler := &BillsDBHandler{
		db: db,
	}

	err := loadSql.LoadBillsSql(billsDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load bills sql", err)
	}

	err = billsDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized BillsDBHandler")

	return billsDbHandler, nil
}

// CreateTable creates the 'bills' table in the database.
// If the table already exists, it does not create it again.
func (h *BillsDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_bills();`)
	if err != nil {
		log.Panicf("error initializing bills table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table bills")

	return nil
}

// InsertBill inserts a new bill record
func (h *BillsDBHandler) InsertBill(bill *model.Bill) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_bill($1, $2, $3, $4)`,
		bill.Code,
		bill.Session,
		bill.Title,
		bill.Metadata,
	)

	err := row.Scan(
		&bill.ID,
		&bill.Code,
		&bill.Session,
		&bill.Title,
		&bill.Metadata,
		&bill.CreatedAt,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectBill retrieves a bill by ID
func (h *BillsDBHandler) SelectBill(id uuid.UUID) (*model.Bill, error) {
	bill := &model.Bill{}
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_bill($1)`,
		id,
	)

	err := row.Scan(
		&bill.ID,
		&bill.Code,
		&bill.Session,
		&bill.Title,
		&bill.Metadata,
		&bill.CreatedAt,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return bill, nil
}

// SelectBillByCode retrieves the bill with the given code from the most
// recent session
func (h *BillsDBHandler) SelectBillByCode(code string) (*model.Bill, error) {
	bill := &model.Bill{}
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_bill_by_code($1)`,
		code,
	)

	err := row.Scan(
		&bill.ID,
		&bill.Code,
		&bill.Session,
		&bill.Title,
		&bill.Metadata,
		&bill.CreatedAt,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return bill, nil
}

// DeleteBill deletes a bill by ID
func (h *BillsDBHandler) DeleteBill(id uuid.UUID) error {
	_, err := h.db.Instance.Exec(
		`SELECT delete_bill($1)`,
		id,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}
