// Package importer drives the per-account import run: discover candidate
// messages, push each through the extraction and classification pipeline,
// and offer the resulting candidates to the transaction store.
package importer

import (
	"context"
	"fmt"
	"io"
	"net/mail"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/skothari/txmail/internal/classify"
	"github.com/skothari/txmail/internal/config"
	"github.com/skothari/txmail/internal/dedupe"
	"github.com/skothari/txmail/internal/extract"
	"github.com/skothari/txmail/internal/gmailx"
	"github.com/skothari/txmail/internal/types"
)

// MailAccess is the search/fetch surface the engine consumes.
type MailAccess interface {
	Search(ctx context.Context, query string, maxResults int64) ([]string, error)
	Fetch(ctx context.Context, id string) (*gmailx.Message, error)
}

// TransactionStore persists candidates behind an idempotent conditional
// insert keyed on the dedupe hash.
type TransactionStore interface {
	InsertIfAbsent(tx *types.Transaction) (bool, error)
}

// Engine is the single import implementation every caller goes through.
type Engine struct {
	mail       MailAccess
	store      TransactionStore
	policy     *classify.Policy
	classifier classify.Classifier
	amounts    extract.AmountRule
	merchants  map[string]string
	workers    int
	pageSize   int64

	// Quiet suppresses the per-import console trail.
	Quiet bool
	// Out and Err default to stdout/stderr; tests redirect them.
	Out io.Writer
	Err io.Writer
}

// New builds an engine from injected collaborators and configuration.
func New(m MailAccess, s TransactionStore, cfg *config.Config) *Engine {
	return &Engine{
		mail:   m,
		store:  s,
		policy: classify.DefaultPolicy(),
		classifier: classify.Classifier{
			ExpenseThreshold: cfg.Engine.ExpenseThreshold,
			CreditThreshold:  cfg.Engine.CreditThreshold,
		},
		amounts: extract.AmountRule{
			Window: cfg.Engine.AnchorWindow,
			Min:    cfg.Engine.MinAmount,
			Max:    cfg.Engine.MaxAmount,
		},
		merchants: cfg.Merchants,
		workers:   cfg.Engine.Workers,
		pageSize:  cfg.Engine.QueryPageSize,
		Out:       os.Stdout,
		Err:       os.Stderr,
	}
}

type outcomeKind int

const (
	outcomeImported outcomeKind = iota
	outcomeDuplicate
	outcomeSkipped
	outcomeRejected
	outcomeFailed
)

type outcome struct {
	kind     outcomeKind
	record   types.GateRecord
	imported types.ImportedTx
}

// Run executes one bounded import batch for a user. Query and message
// failures are recovered locally; only context cancellation surfaces as
// an error, and the partially filled summary remains valid.
func (e *Engine) Run(ctx context.Context, userID string) (*types.ImportSummary, error) {
	summary := &types.ImportSummary{Account: userID}

	ids := e.discover(ctx)
	if !e.Quiet {
		fmt.Fprintf(e.Out, "  Found %d candidate messages\n", len(ids))
	}

	var mu sync.Mutex
	apply := func(o outcome) {
		mu.Lock()
		defer mu.Unlock()
		switch o.kind {
		case outcomeImported:
			summary.ImportedCount++
			summary.Imported = append(summary.Imported, o.imported)
		case outcomeDuplicate:
			summary.DuplicateCount++
		case outcomeSkipped:
			summary.SkippedCount++
			summary.Skipped = append(summary.Skipped, o.record)
		case outcomeRejected:
			summary.RejectedCount++
			summary.Rejected = append(summary.Rejected, o.record)
		}
	}

	// Bounded pool: each message is independent and the store insert is
	// idempotent, so same-transaction races resolve to one winner.
	sem := make(chan struct{}, e.workers)
	var wg sync.WaitGroup
loop:
	for _, id := range ids {
		select {
		case <-ctx.Done():
			break loop
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			defer func() { <-sem }()
			apply(e.processMessage(ctx, userID, id))
		}(id)
	}
	wg.Wait()

	if !e.Quiet {
		fmt.Fprintf(e.Out, "  Done — %d new | %d dupes | %d skipped | %d rejected\n",
			summary.ImportedCount, summary.DuplicateCount, summary.SkippedCount, summary.RejectedCount)
	}
	return summary, ctx.Err()
}

// discover runs the query battery and merges the returned ids into a
// deduplicated, order-preserving set. A failing query contributes zero
// messages; the rest still run.
func (e *Engine) discover(ctx context.Context) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, q := range searchQueries {
		if ctx.Err() != nil {
			break
		}
		result, err := e.mail.Search(ctx, q, e.pageSize)
		if err != nil {
			if !e.Quiet {
				fmt.Fprintf(e.Err, "  ! query failed: %q — %v\n", q, err)
			}
			continue
		}
		for _, id := range result {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// processMessage pushes one message through the gates. Every early exit
// is a deliberate decision recorded with a reason; only fetch/store
// errors are failures, and those abandon just this message.
func (e *Engine) processMessage(ctx context.Context, userID, id string) outcome {
	msg, err := e.mail.Fetch(ctx, id)
	if err != nil {
		if !e.Quiet {
			fmt.Fprintf(e.Err, "  ! fetch %s: %v\n", id, err)
		}
		return outcome{kind: outcomeFailed}
	}

	switch e.policy.Check(msg.Subject, msg.From) {
	case classify.VerdictSkip:
		return gated(outcomeSkipped, types.ReasonNonFinancial, msg.Subject)
	case classify.VerdictPromo:
		return gated(outcomeRejected, types.ReasonPromotional, msg.Subject)
	}

	body := extract.Body(msg.Payload)
	if body == "" {
		return gated(outcomeSkipped, types.ReasonEmptyBody, msg.Subject)
	}
	if e.policy.RejectsBody(body) {
		return gated(outcomeRejected, types.ReasonPromoBody, msg.Subject)
	}

	classification := e.classifier.Classify(msg.Subject, body)
	if classification == nil {
		return gated(outcomeSkipped, types.ReasonUnclassified, msg.Subject)
	}

	amount, ok := e.amounts.Resolve(body, classification.Type)
	if !ok {
		return gated(outcomeSkipped, types.ReasonNoAmount, msg.Subject)
	}

	merchant := extract.Merchant(msg.From, e.merchants)
	txDate := parseMessageDate(msg.Date)
	orderID := extract.OrderID(body)
	hash, orderRef := dedupe.Build(userID, classification.Type, orderID, merchant, msg.ID, amount, txDate)

	inserted, err := e.store.InsertIfAbsent(&types.Transaction{
		UserID:     userID,
		Merchant:   merchant,
		OrderRef:   orderRef,
		Amount:     amount,
		Date:       txDate,
		Type:       classification.Type,
		DedupeHash: hash,
	})
	if err != nil {
		if !e.Quiet {
			fmt.Fprintf(e.Err, "  ! store %s: %v\n", id, err)
		}
		return outcome{kind: outcomeFailed}
	}
	if !inserted {
		return outcome{kind: outcomeDuplicate}
	}

	if !e.Quiet {
		fmt.Fprintf(e.Out, "  ✓ %s ₹%v | %s\n", classification.Type, amount, merchant)
	}
	return outcome{
		kind: outcomeImported,
		imported: types.ImportedTx{
			Merchant: merchant,
			Amount:   amount,
			Type:     classification.Type,
			OrderRef: orderRef,
		},
	}
}

func gated(kind outcomeKind, reason, subject string) outcome {
	return outcome{kind: kind, record: types.GateRecord{Reason: reason, Subject: subject}}
}

// parseMessageDate parses an RFC 5322 Date header, falling back to now.
func parseMessageDate(header string) time.Time {
	if header != "" {
		if t, err := mail.ParseDate(header); err == nil {
			return t
		}
	}
	return time.Now().UTC()
}

// DiscoverAccounts finds accounts by scanning for */credentials.json
// directories in the project root. Returns email addresses (directory names).
func DiscoverAccounts(projectRoot string) []string {
	entries, err := os.ReadDir(projectRoot)
	if err != nil {
		return nil
	}

	var accounts []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.Contains(name, "@") {
			continue
		}
		credPath := filepath.Join(projectRoot, name, "credentials.json")
		if _, err := os.Stat(credPath); err == nil {
			accounts = append(accounts, name)
		}
	}

	sort.Strings(accounts)
	return accounts
}
