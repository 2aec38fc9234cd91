package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/skothari/txmail/internal/display"
	"github.com/skothari/txmail/internal/store"
	"github.com/skothari/txmail/internal/types"
	"github.com/spf13/cobra"
)

var (
	listAccount  string
	listType     string
	listMerchant string
	listLimit    int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored transactions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		if listType != "" && !types.IsValidType(listType) {
			return fmt.Errorf("invalid type %q (expense, refund or cashback)", listType)
		}

		txs, err := db.List(store.ListFilter{
			UserID:   listAccount,
			Type:     listType,
			Merchant: listMerchant,
			Limit:    listLimit,
		})
		if err != nil {
			return fmt.Errorf("list transactions: %w", err)
		}

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(txs)
		}

		if len(txs) == 0 {
			fmt.Println("No transactions.")
			return nil
		}

		for _, tx := range txs {
			ref := ""
			if tx.OrderRef != "" {
				ref = display.Dim.Render(display.Truncate(tx.OrderRef, 22))
			}
			fmt.Printf("  %s %s %10s  %-24s %s  %s\n",
				display.TypeDot(tx.Type),
				display.TypeLabel(tx.Type),
				display.Rupee(tx.Amount),
				display.Truncate(tx.Merchant, 24),
				display.Dim.Render(tx.Date.Format(time.DateOnly)),
				ref,
			)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listAccount, "account", "", "Filter by account")
	listCmd.Flags().StringVar(&listType, "type", "", "Filter by type (expense, refund, cashback)")
	listCmd.Flags().StringVar(&listMerchant, "merchant", "", "Filter by merchant")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 50, "Maximum transactions to show")
	rootCmd.AddCommand(listCmd)
}
