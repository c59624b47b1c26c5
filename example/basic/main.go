package main

import (
	"context"
	"fmt"
	"log"

	"github.com/openparl/hansardgraph"
	"github.com/openparl/hansardgraph/helper"
	"github.com/openparl/hansardgraph/model"
)

const sampleContent = `Mr. Speaker, I rise today to speak to Bill C-234. ` +
	`The member for Carleton has already noted that the ETHI committee studied ` +
	`this question at length. Petition e-4321, signed by thousands of Canadians, ` +
	`asks us to act. I urge the House to send the bill to the Standing Committee ` +
	`on Finance without delay.`

func main() {
	// Start a test PostgreSQL container
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(context.Background())

	// Create database configuration using the container port
	dbConfig := &helper.DatabaseConfiguration{
		Host:     "localhost",
		Port:     dbPort,
		Database: "database",
		Username: "user",
		Password: "password",
		Schema:   "public",
		SSLMode:  "disable",
	}

	h, err := hansardgraph.NewHansard(dbConfig, model.DefaultExtractConfig())
	if err != nil {
		log.Fatalf("Failed to create hansard: %v", err)
	}
	defer h.Close()

	// Seed a small registry snapshot
	person := &model.Person{
		Name:       "Pierre Poilievre",
		GivenName:  "Pierre",
		FamilyName: "Poilievre",
		Riding:     "Carleton",
		Current:    true,
	}
	if err := h.Persons.InsertPerson(person); err != nil {
		log.Fatalf("Failed to insert person: %v", err)
	}

	bill := &model.Bill{
		Code:    "C-234",
		Session: "44-1",
		Title:   "An Act to amend the Greenhouse Gas Pollution Pricing Act",
	}
	if err := h.Bills.InsertBill(bill); err != nil {
		log.Fatalf("Failed to insert bill: %v", err)
	}

	for _, committee := range []*model.Committee{
		{Code: "ETHI", Name: "Standing Committee on Access to Information, Privacy and Ethics"},
		{Code: "FINA", Name: "Standing Committee on Finance"},
	} {
		if err := h.Committees.InsertCommittee(committee); err != nil {
			log.Fatalf("Failed to insert committee: %v", err)
		}
	}

	petition := &model.Petition{
		Number: "e-4321",
		Kind:   model.PetitionKindElectronic,
	}
	if err := h.Petitions.InsertPetition(petition); err != nil {
		log.Fatalf("Failed to insert petition: %v", err)
	}

	// Pick up the seeded members
	if err := h.RebuildNameIndex(); err != nil {
		log.Fatalf("Failed to rebuild name index: %v", err)
	}

	// Insert a statement and process it
	statement := &model.Statement{
		Speaker: "Poilievre, Hon. Pierre",
		Heading: "Government Orders - Second Reading",
		Content: sampleContent,
	}
	if err := h.Statements.InsertStatement(statement); err != nil {
		log.Fatalf("Failed to insert statement: %v", err)
	}

	matched, err := h.AttributeSpeaker(statement)
	if err != nil {
		log.Fatalf("Failed to attribute speaker: %v", err)
	}
	fmt.Printf("Speaker %q attributed: %v\n", statement.Speaker, matched)

	fmt.Println("Processing statement...")
	stats := model.NewBatchStats(10)
	mentions, err := h.ProcessStatement(statement, stats)
	if err != nil {
		log.Fatalf("Failed to process statement: %v", err)
	}

	// Display mentions
	fmt.Printf("\nFound %d mentions:\n", len(mentions))
	for i, mention := range mentions {
		fmt.Printf("\n--- Mention %d ---\n", i+1)
		fmt.Printf("Type: %s\n", mention.EntityType)
		fmt.Printf("Text: %q at rune %d\n", mention.RawText, mention.Position)
		fmt.Printf("Confidence: %.2f\n", mention.Confidence)
		if mention.Resolved() {
			fmt.Printf("Resolved: %s\n", mention.ResolvedID)
		} else {
			fmt.Println("Resolved: no")
		}
	}

	fmt.Printf("\nResolved %d mentions, wrote %d edges\n", stats.TotalResolved(), stats.RelationshipsCreated)

	// Show the persisted edges
	edges, err := h.Edges.SelectMentionEdgesFromSource(statement.RID)
	if err != nil {
		log.Fatalf("Failed to select edges: %v", err)
	}
	for _, edge := range edges {
		fmt.Printf("Edge %s -> %s (%s, confidence %.2f)\n",
			edge.SourceLabel, edge.TargetLabel, edge.RawText, edge.Confidence)
	}

	fmt.Println("\nBasic example completed successfully!")
}
