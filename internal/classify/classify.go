package classify

import "github.com/skothari/txmail/internal/types"

// Classifier scores messages against the expense, refund and cashback
// rule tables. Thresholds are injected so tests and deployments can tune
// them without touching the tables.
type Classifier struct {
	// ExpenseThreshold is the minimum expense score. Candidates were
	// already pre-selected by financial-sounding search queries, so a
	// moderate subject-only signal is trustworthy.
	ExpenseThreshold int
	// CreditThreshold is the minimum refund/cashback score. Credit
	// events are rarer and easily confused with marketing language, so
	// they need stronger corroboration and must dominate the expense
	// score.
	CreditThreshold int
}

// Classify assigns one of the transaction types or nil when no
// accumulator clears its threshold. Refund is checked first and must
// reach cashback and beat expense; cashback must beat expense; expense
// only has to clear its own threshold. A credit score that clears the
// threshold without strictly beating expense falls through, possibly to
// no match at all.
func (c Classifier) Classify(subject, body string) *types.Classification {
	expenseScore := score(expenseSubjectRules, subject) + score(expenseBodyRules, body)
	refundScore := score(refundSubjectRules, subject) + score(refundBodyRules, body)
	cashbackScore := score(cashbackSubjectRules, subject) + score(cashbackBodyRules, body)

	switch {
	case refundScore >= c.CreditThreshold && refundScore >= cashbackScore && refundScore > expenseScore:
		return &types.Classification{Type: types.TypeRefund, Score: refundScore}
	case cashbackScore >= c.CreditThreshold && cashbackScore > expenseScore:
		return &types.Classification{Type: types.TypeCashback, Score: cashbackScore}
	case expenseScore >= c.ExpenseThreshold:
		return &types.Classification{Type: types.TypeExpense, Score: expenseScore}
	}
	return nil
}
