// Package types defines core data structures for txmail.
package types

import "time"

// Transaction type constants.
const (
	TypeExpense  = "expense"
	TypeRefund   = "refund"
	TypeCashback = "cashback"
)

// ValidTypes is the set of allowed transaction types.
var ValidTypes = []string{TypeExpense, TypeRefund, TypeCashback}

// IsValidType checks if a transaction type string is valid.
func IsValidType(t string) bool {
	for _, v := range ValidTypes {
		if v == t {
			return true
		}
	}
	return false
}

// IsCredit reports whether a transaction type represents money returning
// to the user.
func IsCredit(t string) bool {
	return t == TypeRefund || t == TypeCashback
}

// Transaction represents a stored financial transaction.
type Transaction struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Merchant   string    `json:"merchant"`
	OrderRef   string    `json:"order_ref,omitempty"`
	Amount     float64   `json:"amount"`
	Date       time.Time `json:"date"`
	Type       string    `json:"type"`
	DedupeHash string    `json:"dedupe_hash"`
	CreatedAt  string    `json:"created_at"`
}

// Classification is the transient result of scoring a message.
type Classification struct {
	Type  string `json:"type"`
	Score int    `json:"score"`
}

// ImportedTx describes one newly stored transaction in a run summary.
type ImportedTx struct {
	Merchant string  `json:"merchant"`
	Amount   float64 `json:"amount"`
	Type     string  `json:"type"`
	OrderRef string  `json:"order_ref"`
}

// GateRecord explains why a message was skipped or rejected.
type GateRecord struct {
	Reason  string `json:"reason"`
	Subject string `json:"subject"`
}

// Gate reasons recorded for observability.
const (
	ReasonNonFinancial = "non-financial"
	ReasonPromotional  = "promotional"
	ReasonPromoBody    = "promo body"
	ReasonEmptyBody    = "empty body"
	ReasonUnclassified = "unclassified"
	ReasonNoAmount     = "no amount"
)

// ImportSummary is the structured result of one import run.
type ImportSummary struct {
	Account        string       `json:"account"`
	ImportedCount  int          `json:"imported_count"`
	DuplicateCount int          `json:"duplicate_count"`
	SkippedCount   int          `json:"skipped_count"`
	RejectedCount  int          `json:"rejected_count"`
	Imported       []ImportedTx `json:"imported"`
	Skipped        []GateRecord `json:"skipped,omitempty"`
	Rejected       []GateRecord `json:"rejected,omitempty"`
	Error          string       `json:"error,omitempty"`
}

// RunSummary aggregates import summaries across accounts.
type RunSummary struct {
	Accounts      []ImportSummary `json:"accounts"`
	TotalImported int             `json:"total_imported"`
	TotalInDB     int             `json:"total_in_db"`
}

// TypeSummary holds per-type aggregates for reporting.
type TypeSummary struct {
	Type  string  `json:"type"`
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

// MerchantSummary holds per-merchant aggregates for reporting.
type MerchantSummary struct {
	Merchant string  `json:"merchant"`
	Count    int     `json:"count"`
	Total    float64 `json:"total"`
}
