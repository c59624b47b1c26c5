package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/openparl/hansardgraph"
	"github.com/openparl/hansardgraph/helper"
	"github.com/openparl/hansardgraph/model"
	"github.com/spf13/cobra"
)

var (
	minConfidence     float64
	dryRun            bool
	pageSize          int
	resetEvery        int
	attributeSpeakers bool
)

func newBackfillCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hansard-backfill",
		Short: "Extract and resolve entity mentions over stored statements",
		Long: `Walk every stored statement, extract candidate entity mentions
(bills, members, committees, petitions), resolve them against the
registries and record one reference edge per resolved mention.

Reprocessing is safe: edges are merged on their identity, so running
the backfill twice does not duplicate relationships.

Database connection settings are read from the environment (or a .env
file): DB_HOST, DB_PORT, DB_DATABASE, DB_USERNAME, DB_PASSWORD.

Examples:
  # Full backfill
  hansard-backfill

  # Preview extraction without writing edges
  hansard-backfill --dry-run

  # Only high-confidence rules, smaller pages
  hansard-backfill --min-confidence 0.8 --page-size 200`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackfill()
		},
	}

	cmd.Flags().Float64Var(&minConfidence, "min-confidence", model.DefaultExtractConfig().MinConfidence, "Drop mentions from rules below this confidence")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Extract and resolve without writing edges")
	cmd.Flags().IntVar(&pageSize, "page-size", 500, "Statements fetched per page")
	cmd.Flags().IntVar(&resetEvery, "reset-every", 0, "Reset resolver caches every N statements (0 disables)")
	cmd.Flags().BoolVar(&attributeSpeakers, "attribute-speakers", false, "Also resolve raw speaker labels to members")

	return cmd
}

func runBackfill() error {
	dbConfig, err := helper.NewDatabaseConfiguration()
	if err != nil {
		return fmt.Errorf("loading database configuration: %w", err)
	}

	extractConfig := model.DefaultExtractConfig()
	extractConfig.MinConfidence = minConfidence

	h, err := hansardgraph.NewHansard(dbConfig, extractConfig)
	if err != nil {
		return fmt.Errorf("initializing: %w", err)
	}
	defer h.Close()

	total, err := h.Statements.CountStatements()
	if err != nil {
		return fmt.Errorf("counting statements: %w", err)
	}

	fmt.Printf("Backfill over %d statements\n", total)
	fmt.Printf("  Min confidence: %.2f\n", minConfidence)
	fmt.Printf("  Name variants:  %d\n", h.NameIndex().Size())
	if dryRun {
		fmt.Printf("  Mode:           DRY RUN (no edges will be written)\n")
	}
	fmt.Println()

	stats := model.NewBatchStats(extractConfig.UnmatchedNameSamples)
	startTime := time.Now()
	speakersMatched := 0

	var afterID int64
	for {
		page, err := h.Statements.SelectStatementsPage(afterID, pageSize)
		if err != nil {
			return fmt.Errorf("fetching statements after %d: %w", afterID, err)
		}
		if len(page) == 0 {
			break
		}

		for _, statement := range page {
			if dryRun {
				mentions, err := h.ExtractAndResolve(statement.Content)
				if err != nil {
					return fmt.Errorf("processing statement %s: %w", statement.RID, err)
				}
				stats.Processed++
				if len(mentions) > 0 {
					stats.WithMentions++
				}
				for _, mention := range mentions {
					if mention.Resolved() {
						stats.CountResolved(mention.EntityType)
					}
				}
			} else {
				if _, err := h.ProcessStatement(statement, stats); err != nil {
					return fmt.Errorf("processing statement %s: %w", statement.RID, err)
				}
				if attributeSpeakers && statement.SpeakerID == nil {
					matched, err := h.AttributeSpeaker(statement)
					if err != nil {
						return fmt.Errorf("attributing speaker of %s: %w", statement.RID, err)
					}
					if matched {
						speakersMatched++
					}
				}
			}

			if resetEvery > 0 && stats.Processed%resetEvery == 0 {
				h.ResetCaches()
			}
		}

		afterID = page[len(page)-1].ID
		fmt.Printf("  processed %d/%d\n", stats.Processed, total)
	}

	duration := time.Since(startTime)
	fmt.Println()
	fmt.Println("Backfill Complete")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("  Statements:    %d\n", stats.Processed)
	fmt.Printf("  With mentions: %d\n", stats.WithMentions)
	fmt.Printf("  Resolved:      %d\n", stats.TotalResolved())
	for entityType, count := range stats.ResolvedByType {
		fmt.Printf("    %-12s %d\n", string(entityType)+":", count)
	}
	if !dryRun {
		fmt.Printf("  Edges written: %d\n", stats.RelationshipsCreated)
	}
	if attributeSpeakers {
		fmt.Printf("  Speakers matched: %d\n", speakersMatched)
	}
	fmt.Printf("  Duration:      %s\n", duration.Round(time.Millisecond))

	if len(stats.UnmatchedNames) > 0 {
		fmt.Println("\nUnmatched names (sample):")
		for _, name := range stats.UnmatchedNames {
			fmt.Printf("  - %s\n", name)
		}
	}

	return nil
}

func main() {
	if err := newBackfillCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
