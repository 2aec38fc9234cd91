package main

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/skothari/txmail/internal/auth"
	"github.com/skothari/txmail/internal/display"
	"github.com/skothari/txmail/internal/extract"
	"github.com/skothari/txmail/internal/gmailx"
	"github.com/skothari/txmail/internal/importer"
	"github.com/skothari/txmail/internal/store"
	"github.com/spf13/cobra"
)

var (
	gmailAccount    string
	gmailMaxResults int
)

// gmailCmd is the parent command for raw Gmail operations, useful
// when debugging why a message did or didn't import.
var gmailCmd = &cobra.Command{
	Use:   "gmail",
	Short: "Gmail operations (search, read)",
	Long:  "Search Gmail and read messages the way the import engine sees them.",
}

var gmailSearchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search Gmail messages",
	Long: `Search Gmail messages matching a query.

Uses the same query syntax as Gmail's search box. Searches all discovered
accounts by default, or use --account to search one.`,
	Example: `  txmail gmail search "subject:(invoice OR receipt)"
  txmail gmail search "from:zomato.com newer_than:30d" -n 20
  txmail gmail search "subject:refund" --account user@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]
		ctx := context.Background()
		root := store.FindProjectRoot()
		if root == "" {
			return fmt.Errorf("could not find project root (no .git directory)")
		}

		accounts := resolveAccounts(root, gmailAccount)
		if len(accounts) == 0 {
			return fmt.Errorf("no accounts found — add account directories with credentials.json to the project root")
		}

		type hit struct {
			Account string `json:"account"`
			ID      string `json:"id"`
		}
		var hits []hit
		for _, account := range accounts {
			credPath := filepath.Join(root, account, "credentials.json")
			svc, err := auth.LoadGmailService(ctx, credPath)
			if err != nil {
				if !quietFlag {
					fmt.Fprintf(cmd.ErrOrStderr(), "  ! %s — %v, skipping\n", account, err)
				}
				continue
			}

			ids, err := gmailx.NewClient(svc).Search(ctx, query, int64(gmailMaxResults))
			if err != nil {
				if !quietFlag {
					fmt.Fprintf(cmd.ErrOrStderr(), "  ! %s — search failed: %v\n", account, err)
				}
				continue
			}
			for _, id := range ids {
				hits = append(hits, hit{Account: account, ID: id})
			}
		}

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(hits)
		}

		if len(hits) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No messages found matching: %s\n", query)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Found %d message(s) matching: %s\n\n", len(hits), query)
		for i, h := range hits {
			fmt.Fprintf(cmd.OutOrStdout(), "[%d] %s  %s\n", i+1, h.ID, display.Dim.Render(display.AccountLabel(h.Account)))
		}
		return nil
	},
}

var gmailReadCmd = &cobra.Command{
	Use:   "read MESSAGE_ID",
	Short: "Read a Gmail message by ID",
	Long: `Read a message with its body normalized exactly as the import
engine sees it. Automatically detects which account the message belongs to.`,
	Example: `  txmail gmail read 18d5a7b3c4e5f6a7
  txmail gmail read 18d5a7b3c4e5f6a7 --json
  txmail gmail read 18d5a7b3c4e5f6a7 --account user@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		messageID := args[0]
		ctx := context.Background()
		root := store.FindProjectRoot()
		if root == "" {
			return fmt.Errorf("could not find project root (no .git directory)")
		}

		accounts := resolveAccounts(root, gmailAccount)
		if len(accounts) == 0 {
			return fmt.Errorf("no accounts found — add account directories with credentials.json to the project root")
		}

		// Try each account until we find the message.
		for _, account := range accounts {
			credPath := filepath.Join(root, account, "credentials.json")
			svc, err := auth.LoadGmailService(ctx, credPath)
			if err != nil {
				continue
			}

			msg, err := gmailx.NewClient(svc).Fetch(ctx, messageID)
			if err != nil {
				continue // Try next account.
			}
			return outputMessage(cmd, msg, account)
		}

		return fmt.Errorf("message %s not found in any account", messageID)
	},
}

func outputMessage(cmd *cobra.Command, msg *gmailx.Message, account string) error {
	body := extract.Body(msg.Payload)

	if jsonOutput {
		out := struct {
			ID      string `json:"id"`
			Account string `json:"account"`
			From    string `json:"from"`
			To      string `json:"to,omitempty"`
			Subject string `json:"subject"`
			Date    string `json:"date"`
			Body    string `json:"body"`
		}{msg.ID, account, msg.From, msg.To, msg.Subject, msg.Date, body}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "From: %s\n", msg.From)
	fmt.Fprintf(w, "Subject: %s\n", msg.Subject)
	fmt.Fprintf(w, "Date: %s\n", msg.Date)
	fmt.Fprintf(w, "Account: %s\n", display.AccountLabel(account))
	fmt.Fprintf(w, "Merchant: %s\n", extract.Merchant(msg.From, nil))
	if orderID := extract.OrderID(body); orderID != "" {
		fmt.Fprintf(w, "Order ID: %s\n", orderID)
	}
	fmt.Fprintf(w, "\n%s\n", body)
	return nil
}

// resolveAccounts returns the list of accounts to operate on.
func resolveAccounts(root, account string) []string {
	if account != "" {
		return []string{account}
	}
	return importer.DiscoverAccounts(root)
}

func init() {
	gmailCmd.PersistentFlags().StringVar(&gmailAccount, "account", "", "Gmail account to use (default: all accounts)")
	gmailSearchCmd.Flags().IntVarP(&gmailMaxResults, "max-results", "n", 10, "Maximum results to return")

	gmailCmd.AddCommand(gmailSearchCmd)
	gmailCmd.AddCommand(gmailReadCmd)
	rootCmd.AddCommand(gmailCmd)
}
