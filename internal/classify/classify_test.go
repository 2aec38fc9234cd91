package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skothari/txmail/internal/types"
)

func testClassifier() Classifier {
	return Classifier{ExpenseThreshold: 5, CreditThreshold: 7}
}

func TestClassifyExpense(t *testing.T) {
	c := testClassifier()
	got := c.Classify(
		"Your order is confirmed!",
		"Order Total: ₹499. Order ID: FLP-88219. Thank you for your order.",
	)
	require.NotNil(t, got)
	assert.Equal(t, types.TypeExpense, got.Type)
	assert.GreaterOrEqual(t, got.Score, c.ExpenseThreshold)
}

func TestClassifyRefundDespiteOrderMention(t *testing.T) {
	// The body mentions the original order confirmation, which costs
	// refund score, but the refund signal still dominates.
	c := testClassifier()
	got := c.Classify(
		"Refund processed for your order",
		"Your refund of ₹250 has been processed. Original order confirmed on 12 Aug. "+
			"Amount will be credited back to your bank account in 5 business days.",
	)
	require.NotNil(t, got)
	assert.Equal(t, types.TypeRefund, got.Type)
}

func TestClassifyCashback(t *testing.T) {
	c := testClassifier()
	got := c.Classify(
		"Cashback credited to your wallet",
		"Cashback of ₹45 has been credited to your Paytm wallet.",
	)
	require.NotNil(t, got)
	assert.Equal(t, types.TypeCashback, got.Type)
}

func TestClassifyRefundWinsEqualCashbackScore(t *testing.T) {
	c := testClassifier()
	got := c.Classify(
		"",
		"Refund of ₹100 credited. Cashback of ₹100 has been credited.",
	)
	require.NotNil(t, got)
	assert.Equal(t, types.TypeRefund, got.Type)
}

func TestClassifyCreditMustBeatExpense(t *testing.T) {
	// Refund clears the credit threshold but the debit language scores
	// higher, so the message stays an expense.
	c := testClassifier()
	got := c.Classify(
		"Payment successful for order",
		"Amount of ₹500 debited. Refund of ₹500 promised.",
	)
	require.NotNil(t, got)
	assert.Equal(t, types.TypeExpense, got.Type)
}

func TestClassifyNilBelowThresholds(t *testing.T) {
	c := testClassifier()
	assert.Nil(t, c.Classify("Hello there", "Nothing financial in this message."))
}

func TestScoreSumsAllMatches(t *testing.T) {
	rules := []Rule{
		rule(`(?i)alpha`, 3),
		rule(`(?i)beta`, 4),
		rule(`(?i)gamma`, -2),
	}
	assert.Equal(t, 7, score(rules, "Alpha and beta"))
	assert.Equal(t, 5, score(rules, "alpha beta gamma"))
	assert.Equal(t, 0, score(rules, "delta"))
}

func TestPolicyCheck(t *testing.T) {
	p := DefaultPolicy()
	tests := []struct {
		name    string
		subject string
		from    string
		want    Verdict
	}{
		{"shipping update is a skip", "Your order has shipped", "noreply@amazon.in", VerdictSkip},
		{"otp mail is a skip", "Your OTP for login", "alerts@hdfcbank.net", VerdictSkip},
		{"coupon code subject is promo", "Use code SAVE50 for your next order", "noreply@myntra.com", VerdictPromo},
		{"percentage offer is promo", "Get 40% off this weekend", "noreply@ajio.in", VerdictPromo},
		{"promotional sender is promo", "Order update", "deals@shop.example", VerdictPromo},
		{"skip wins over promo", "Shipped! Don't miss our mega sale", "offers@shop.example", VerdictSkip},
		{"plain receipt proceeds", "Payment confirmed", "noreply@bank.example", VerdictProceed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Check(tt.subject, tt.from))
		})
	}
}

func TestPolicyRejectsBody(t *testing.T) {
	p := DefaultPolicy()

	promo := "Get ₹100 cashback on your next order. Use code NEXT100 to get it."
	assert.True(t, p.RejectsBody(promo))

	// A real receipt that merely advertises a future offer passes.
	receipt := "Payment of ₹450 successful. Earn ₹50 cashback on your next order."
	assert.False(t, p.RejectsBody(receipt))

	assert.False(t, p.RejectsBody("Order Total: ₹499"))
}
