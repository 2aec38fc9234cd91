package importer

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gm "google.golang.org/api/gmail/v1"

	"github.com/skothari/txmail/internal/config"
	"github.com/skothari/txmail/internal/gmailx"
	"github.com/skothari/txmail/internal/store"
	"github.com/skothari/txmail/internal/types"
)

// fakeMail serves a fixed message set. Every query returns the full id
// list (discovery dedups), except failQuery which errors.
type fakeMail struct {
	order     []string
	msgs      map[string]*gmailx.Message
	failQuery string
	failFetch map[string]bool
}

func (f *fakeMail) Search(_ context.Context, query string, _ int64) ([]string, error) {
	if query == f.failQuery {
		return nil, errors.New("rate limited")
	}
	return f.order, nil
}

func (f *fakeMail) Fetch(_ context.Context, id string) (*gmailx.Message, error) {
	if f.failFetch[id] {
		return nil, errors.New("backend error")
	}
	msg, ok := f.msgs[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return msg, nil
}

func plainMsg(id, subject, from, date, body string) *gmailx.Message {
	return &gmailx.Message{
		ID:      id,
		Subject: subject,
		From:    from,
		Date:    date,
		Payload: &gm.MessagePart{
			MimeType: "text/plain",
			Body:     &gm.MessagePartBody{Data: base64.RawURLEncoding.EncodeToString([]byte(body))},
		},
	}
}

func fixtureMail() *fakeMail {
	date := "Mon, 12 Aug 2024 10:30:00 +0530"
	msgs := map[string]*gmailx.Message{
		// A receipt that imports, and a second mail for the same order
		// that dedups against it.
		"m-receipt": plainMsg("m-receipt", "Your order is confirmed!",
			`"Amazon Orders" <no-reply@amazon.in>`, date,
			"Order Total: ₹499. Order ID: FLP-88219. Thank you for your order."),
		"m-invoice": plainMsg("m-invoice", "Payment confirmed",
			`"Amazon Orders" <no-reply@amazon.in>`, date,
			"Order ID: FLP-88219. Order Total: ₹499."),

		"m-promo": plainMsg("m-promo", "Use code SAVE50 for your next order",
			"noreply@myntra.com", date, "Big savings inside."),
		"m-promo-body": plainMsg("m-promo-body", "Your rewards update",
			"noreply@paytm.com", date,
			"Get ₹100 cashback on your next order. Use code NEXT100 to get it."),

		"m-shipped": plainMsg("m-shipped", "Your order has shipped",
			"noreply@amazon.in", date, "It is on the way."),
		"m-noise": plainMsg("m-noise", "Hello there",
			"friend@example.com", date, "Nothing financial in this message."),
		"m-no-amount": plainMsg("m-no-amount", "Your order is confirmed!",
			"noreply@flipkart.com", date,
			"Thank you for your order. Order ID: FLP-99999."),
		"m-empty": {
			ID: "m-empty", Subject: "Payment confirmed",
			From: "noreply@bank.example", Date: date,
			Payload: &gm.MessagePart{},
		},
	}
	return &fakeMail{
		order: []string{
			"m-receipt", "m-invoice", "m-promo", "m-promo-body",
			"m-shipped", "m-noise", "m-no-amount", "m-empty", "m-gone",
		},
		msgs:      msgs,
		failQuery: Queries()[3],
		failFetch: map[string]bool{"m-gone": true},
	}
}

func testStore(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "transactions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testEngine(mail MailAccess, db *store.DB, workers int) *Engine {
	cfg := config.Default()
	cfg.Engine.Workers = workers
	e := New(mail, db, cfg)
	e.Out = io.Discard
	e.Err = io.Discard
	return e
}

func TestRunGates(t *testing.T) {
	db := testStore(t)
	e := testEngine(fixtureMail(), db, 1)

	summary, err := e.Run(context.Background(), "alice@gmail.com")
	require.NoError(t, err)

	assert.Equal(t, 1, summary.ImportedCount)
	assert.Equal(t, 1, summary.DuplicateCount)
	assert.Equal(t, 4, summary.SkippedCount)
	assert.Equal(t, 2, summary.RejectedCount)

	require.Len(t, summary.Imported, 1)
	got := summary.Imported[0]
	assert.Equal(t, "Amazon", got.Merchant)
	assert.Equal(t, 499.0, got.Amount)
	assert.Equal(t, types.TypeExpense, got.Type)
	assert.Equal(t, "FLP-88219", got.OrderRef)

	skipReasons := map[string]bool{}
	for _, r := range summary.Skipped {
		skipReasons[r.Reason] = true
	}
	assert.Equal(t, map[string]bool{
		types.ReasonNonFinancial: true,
		types.ReasonUnclassified: true,
		types.ReasonNoAmount:     true,
		types.ReasonEmptyBody:    true,
	}, skipReasons)

	rejectReasons := map[string]bool{}
	for _, r := range summary.Rejected {
		rejectReasons[r.Reason] = true
	}
	assert.Equal(t, map[string]bool{
		types.ReasonPromotional: true,
		types.ReasonPromoBody:   true,
	}, rejectReasons)

	// The fetch failure is abandoned, not counted anywhere.
	assert.Equal(t, 1, db.Count())
}

func TestRunIsIdempotent(t *testing.T) {
	db := testStore(t)
	mail := fixtureMail()

	first, err := testEngine(mail, db, 1).Run(context.Background(), "alice@gmail.com")
	require.NoError(t, err)
	require.Equal(t, 1, first.ImportedCount)

	second, err := testEngine(mail, db, 1).Run(context.Background(), "alice@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, 0, second.ImportedCount)
	assert.Equal(t, 2, second.DuplicateCount)
	assert.Equal(t, 1, db.Count())
}

func TestRunConcurrentWorkers(t *testing.T) {
	db := testStore(t)
	e := testEngine(fixtureMail(), db, 4)

	summary, err := e.Run(context.Background(), "alice@gmail.com")
	require.NoError(t, err)

	// The conditional insert resolves the same-order race to one winner
	// regardless of scheduling.
	assert.Equal(t, 1, summary.ImportedCount)
	assert.Equal(t, 1, summary.DuplicateCount)
	assert.Equal(t, 1, db.Count())
}

func TestRunCancelled(t *testing.T) {
	db := testStore(t)
	e := testEngine(fixtureMail(), db, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := e.Run(ctx, "alice@gmail.com")
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, summary)
	assert.Equal(t, 0, summary.ImportedCount)
}

func TestRunAccountsSeparately(t *testing.T) {
	db := testStore(t)
	mail := fixtureMail()

	_, err := testEngine(mail, db, 1).Run(context.Background(), "alice@gmail.com")
	require.NoError(t, err)
	bob, err := testEngine(mail, db, 1).Run(context.Background(), "bob@gmail.com")
	require.NoError(t, err)

	// Same order id, different account: not a duplicate.
	assert.Equal(t, 1, bob.ImportedCount)
	assert.Equal(t, 1, db.CountByUser("alice@gmail.com"))
	assert.Equal(t, 1, db.CountByUser("bob@gmail.com"))
}

func TestQueries(t *testing.T) {
	qs := Queries()
	assert.Len(t, qs, 18)

	// Callers get a copy, not the backing array.
	qs[0] = "mutated"
	assert.NotEqual(t, "mutated", Queries()[0])
}

func TestDiscoverAccounts(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"bob@gmail.com", "alice@gmail.com"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, dir, "credentials.json"), []byte("{}"), 0o644))
	}
	// A directory without credentials and one without an @ are ignored.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "carol@gmail.com"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "notes"), 0o755))

	assert.Equal(t, []string{"alice@gmail.com", "bob@gmail.com"}, DiscoverAccounts(root))
}
