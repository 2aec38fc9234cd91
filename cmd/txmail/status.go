package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/skothari/txmail/internal/display"
	"github.com/skothari/txmail/internal/importer"
	"github.com/skothari/txmail/internal/store"
	"github.com/spf13/cobra"
)

type accountStatus struct {
	Account    string `json:"account"`
	HasToken   bool   `json:"has_token"`
	TxCount    int    `json:"tx_count"`
	LastImport string `json:"last_import,omitempty"`
}

type statusOutput struct {
	Database string          `json:"database"`
	Accounts []accountStatus `json:"accounts"`
	Total    int             `json:"total_transactions"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show accounts and store status",
	RunE: func(cmd *cobra.Command, args []string) error {
		root := store.FindProjectRoot()
		if root == "" {
			return fmt.Errorf("could not find project root (no .git directory)")
		}

		var statuses []accountStatus
		for _, acc := range importer.DiscoverAccounts(root) {
			tokenPath := filepath.Join(root, acc, "token.json")
			_, tokenErr := os.Stat(tokenPath)
			statuses = append(statuses, accountStatus{
				Account:    acc,
				HasToken:   tokenErr == nil,
				TxCount:    db.CountByUser(acc),
				LastImport: db.LatestImportAt(acc),
			})
		}

		out := statusOutput{
			Database: db.Path(),
			Accounts: statuses,
			Total:    db.Count(),
		}

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		display.Header("Txmail Status")
		fmt.Println()
		fmt.Printf("  Database: %s\n\n", display.Dim.Render(out.Database))

		if len(statuses) == 0 {
			fmt.Println("  No accounts found — add account directories with credentials.json to the project root.")
			return nil
		}

		for _, s := range statuses {
			token := display.Success.Render("token ok")
			if !s.HasToken {
				token = display.ErrStyle.Render("no token")
			}
			lastImport := ""
			if s.LastImport != "" {
				lastImport = display.Dim.Render(fmt.Sprintf("(last import: %s)", display.TimeAgo(s.LastImport)))
			}
			fmt.Printf("    %-28s %4d transactions  %s  %s\n",
				display.AccountLabel(s.Account), s.TxCount, token, lastImport)
		}
		fmt.Printf("\n  Total: %d transactions\n", out.Total)
		return nil
	},
}

var queriesCmd = &cobra.Command{
	Use:   "queries",
	Short: "Print the fixed discovery query battery",
	Run: func(cmd *cobra.Command, args []string) {
		for _, q := range importer.Queries() {
			fmt.Println(q)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(queriesCmd)
}
