package main

import (
	"encoding/json"
	"fmt"

	"github.com/skothari/txmail/internal/display"
	"github.com/skothari/txmail/internal/types"
	"github.com/spf13/cobra"
)

var summaryAccount string

type summaryOutput struct {
	Account  string              `json:"account,omitempty"`
	Types    []types.TypeSummary `json:"types"`
	NetSpend float64             `json:"net_spend"`
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show totals by transaction type",
	RunE: func(cmd *cobra.Command, args []string) error {
		accounts := resolveStoreAccounts(summaryAccount)

		var outputs []summaryOutput
		for _, acc := range accounts {
			byType, err := db.SummaryByType(acc)
			if err != nil {
				return fmt.Errorf("summary for %s: %w", acc, err)
			}

			out := summaryOutput{Account: acc, Types: byType}
			for _, s := range byType {
				if types.IsCredit(s.Type) {
					out.NetSpend -= s.Total
				} else {
					out.NetSpend += s.Total
				}
			}
			outputs = append(outputs, out)
		}

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(outputs)
		}

		if len(outputs) == 0 {
			fmt.Println("No transactions.")
			return nil
		}

		for _, out := range outputs {
			display.Header(out.Account)
			for _, s := range out.Types {
				fmt.Printf("  %s %s %4d  %12s\n",
					display.TypeDot(s.Type), display.TypeLabel(s.Type), s.Count, display.Rupee(s.Total))
			}
			fmt.Printf("  Net spend: %s\n\n", display.Rupee(out.NetSpend))
		}
		return nil
	},
}

var merchantsLimit int

var merchantsCmd = &cobra.Command{
	Use:   "merchants",
	Short: "Show expense totals grouped by merchant",
	RunE: func(cmd *cobra.Command, args []string) error {
		accounts := resolveStoreAccounts(summaryAccount)

		type merchantsOutput struct {
			Account   string                  `json:"account"`
			Merchants []types.MerchantSummary `json:"merchants"`
		}
		var outputs []merchantsOutput
		for _, acc := range accounts {
			byMerchant, err := db.SummaryByMerchant(acc, merchantsLimit)
			if err != nil {
				return fmt.Errorf("merchant summary for %s: %w", acc, err)
			}
			outputs = append(outputs, merchantsOutput{Account: acc, Merchants: byMerchant})
		}

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(outputs)
		}

		if len(outputs) == 0 {
			fmt.Println("No transactions.")
			return nil
		}

		for _, out := range outputs {
			display.Header(out.Account)
			for _, m := range out.Merchants {
				fmt.Printf("  %-28s %4d  %12s\n",
					display.Truncate(m.Merchant, 28), m.Count, display.Rupee(m.Total))
			}
			fmt.Println()
		}
		return nil
	},
}

// resolveStoreAccounts returns the accounts to report on: the explicit
// flag, or every user id present in the store.
func resolveStoreAccounts(explicit string) []string {
	if explicit != "" {
		return []string{explicit}
	}
	return db.Users()
}

func init() {
	summaryCmd.Flags().StringVar(&summaryAccount, "account", "", "Report single account")
	merchantsCmd.Flags().StringVar(&summaryAccount, "account", "", "Report single account")
	merchantsCmd.Flags().IntVarP(&merchantsLimit, "limit", "n", 20, "Maximum merchants to show")
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(merchantsCmd)
}
