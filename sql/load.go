package sql

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"
)

//go:embed init.sql
var initSQL string

//go:embed persons.sql
var personsSQL string

//go:embed bills.sql
var billsSQL string

//go:embed committees.sql
var committeesSQL string

//go:embed petitions.sql
var petitionsSQL string

//go:embed statements.sql
var statementsSQL string

//go:embed edges.sql
var edgesSQL string

// Function lists for verification
var PersonsFunctions = []string{
	"init_persons",
	"insert_person",
	"select_person",
	"select_current_persons",
	"select_person_by_riding",
	"delete_person",
}

var BillsFunctions = []string{
	"init_bills",
	"insert_bill",
	"select_bill",
	"select_bill_by_code",
	"delete_bill",
}

var CommitteesFunctions = []string{
	"init_committees",
	"insert_committee",
	"select_committee",
	"select_committee_by_code",
	"select_committee_by_name",
	"delete_committee",
}

var PetitionsFunctions = []string{
	"init_petitions",
	"insert_petition",
	"select_petition",
	"select_petition_by_number",
	"delete_petition",
}

var StatementsFunctions = []string{
	"init_statements",
	"insert_statement",
	"select_statement",
	"select_statements_page",
	"update_statement_speaker",
	"count_statements",
	"delete_statement",
}

var MentionEdgesFunctions = []string{
	"init_mention_edges",
	"merge_mention_edge",
	"select_mention_edge",
	"select_mention_edges_from_source",
	"select_mention_edges_to_target",
	"delete_mention_edge",
}

// Init intializes db extensions
func Init(db *sql.DB) error {
	_, err := db.Exec(initSQL)
	if err != nil {
		return fmt.Errorf("error executing schema SQL: %w", err)
	}

	log.Println("Database extensions initialized successfully")
	return nil
}

// LoadPersonsSql loads person-related SQL functions
func LoadPersonsSql(db *sql.DB, force bool) error {
	return loadSql(db, force, personsSQL, PersonsFunctions, "persons")
}

// LoadBillsSql loads bill-related SQL functions
func LoadBillsSql(db *sql.DB, force bool) error {
	return loadSql(db, force, billsSQL, BillsFunctions, "bills")
}

// LoadCommitteesSql loads committee-related SQL functions
func LoadCommitteesSql(db *sql.DB, force bool) error {
	return loadSql(db, force, committeesSQL, CommitteesFunctions, "committees")
}

// LoadPetitionsSql loads petition-related SQL functions
func LoadPetitionsSql(db *sql.DB, force bool) error {
	return loadSql(db, force, petitionsSQL, PetitionsFunctions, "petitions")
}

// LoadStatementsSql loads statement-related SQL functions
func LoadStatementsSql(db *sql.DB, force bool) error {
	return loadSql(db, force, statementsSQL, StatementsFunctions, "statements")
}

// LoadMentionEdgesSql loads mention-edge-related SQL functions
func LoadMentionEdgesSql(db *sql.DB, force bool) error {
	return loadSql(db, force, edgesSQL, MentionEdgesFunctions, "mention edges")
}

// LoadAllSql loads all SQL functions
func LoadAllSql(db *sql.DB, force bool) error {
	if err := LoadPersonsSql(db, force); err != nil {
		return err
	}

	if err := LoadBillsSql(db, force); err != nil {
		return err
	}

	if err := LoadCommitteesSql(db, force); err != nil {
		return err
	}

	if err := LoadPetitionsSql(db, force); err != nil {
		return err
	}

	if err := LoadStatementsSql(db, force); err != nil {
		return err
	}

	if err := LoadMentionEdgesSql(db, force); err != nil {
		return err
	}

	return nil
}

// loadSql loads one SQL function file unless all its functions already exist
func loadSql(db *sql.DB, force bool, fileSQL string, functions []string, name string) error {
	if !force {
		exist, err := checkFunctions(db, functions)
		if err != nil {
			return fmt.Errorf("error checking existing %s functions: %w", name, err)
		}
		if exist {
			return nil
		}
	}

	_, err := db.Exec(fileSQL)
	if err != nil {
		return fmt.Errorf("error executing %s SQL: %w", name, err)
	}

	exist, err := checkFunctions(db, functions)
	if err != nil {
		return fmt.Errorf("error checking existing functions: %w", err)
	}
	if !exist {
		return fmt.Errorf("not all required SQL functions were created")
	}

	log.Printf("SQL %s functions loaded successfully", name)
	return nil
}

// checkFunctions verifies that all required functions exist in the database
func checkFunctions(db *sql.DB, sqlFunctions []string) (bool, error) {
	var allExist bool
	for _, f := range sqlFunctions {
		err := db.QueryRow(
			`SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);`,
			f,
		).Scan(&allExist)
		if err != nil {
			return false, fmt.Errorf("error checking existence of function %s: %w", f, err)
		}
		if !allExist {
			log.Printf("Function %s does not exist", f)
			break
		}
	}
	return allExist, nil
}
