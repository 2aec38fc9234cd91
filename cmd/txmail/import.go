package main

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/skothari/txmail/internal/auth"
	"github.com/skothari/txmail/internal/config"
	"github.com/skothari/txmail/internal/display"
	"github.com/skothari/txmail/internal/gmailx"
	"github.com/skothari/txmail/internal/importer"
	"github.com/skothari/txmail/internal/store"
	"github.com/skothari/txmail/internal/types"
	"github.com/spf13/cobra"
)

var (
	importAccount string
	importWorkers int
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Scan Gmail and import transactions into the local database",
	Long: `Run the import engine for each discovered Gmail account.

Discovery runs a fixed battery of financial search queries, each message
passes through the promotional filter, the classifier and the amount
resolver, and surviving candidates are inserted unless their dedupe hash
already exists. Re-running over the same mailbox imports nothing new.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root := store.FindProjectRoot()
		if root == "" {
			return fmt.Errorf("could not find project root (no .git directory)")
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if importWorkers > 0 {
			cfg.Engine.Workers = importWorkers
		}

		var accounts []string
		if importAccount != "" {
			accounts = []string{importAccount}
		} else {
			accounts = importer.DiscoverAccounts(root)
		}
		if len(accounts) == 0 {
			return fmt.Errorf("no accounts found — add account directories with credentials.json to the project root")
		}

		ctx := context.Background()
		run := &types.RunSummary{}
		for _, account := range accounts {
			if !quietFlag {
				fmt.Printf("\n  %s — importing\n", account)
			}

			summary, err := importAccountRun(ctx, cfg, root, account)
			if err != nil {
				return err
			}
			run.Accounts = append(run.Accounts, *summary)
			run.TotalImported += summary.ImportedCount
		}
		run.TotalInDB = db.Count()

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(run)
		}

		if !quietFlag {
			fmt.Println()
			display.SuccessMsg("Done! %d new transactions imported. Total in DB: %d", run.TotalImported, run.TotalInDB)
		}
		return nil
	},
}

// importAccountRun authenticates one account and runs the engine over it.
// Auth failure is recorded on the summary, not fatal to the other accounts.
func importAccountRun(ctx context.Context, cfg *config.Config, root, account string) (*types.ImportSummary, error) {
	credPath := filepath.Join(root, account, "credentials.json")
	svc, err := auth.LoadGmailService(ctx, credPath)
	if err != nil {
		if !quietFlag {
			display.ErrorMsg("%s — auth failed: %v", account, err)
		}
		return &types.ImportSummary{Account: account, Error: fmt.Sprintf("auth failed: %v", err)}, nil
	}

	engine := importer.New(gmailx.NewClient(svc), db, cfg)
	engine.Quiet = quietFlag
	return engine.Run(ctx, account)
}

func init() {
	importCmd.Flags().StringVar(&importAccount, "account", "", "Import single account")
	importCmd.Flags().IntVar(&importWorkers, "workers", 0, "Concurrent message workers (default from config)")
	rootCmd.AddCommand(importCmd)
}
