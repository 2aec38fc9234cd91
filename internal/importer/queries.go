package importer

// searchQueries is the fixed discovery battery. Queries are grouped by
// the signal they target; the same message often satisfies several
// queries, so results are merged into a deduplicated id set before any
// fetch. Not user-editable.
var searchQueries = []string{
	// Standard purchase confirmations and invoices.
	`subject:(confirmed) subject:(order OR booking OR payment OR purchase)`,
	`subject:("payment successful" OR "payment confirmed" OR "payment received")`,
	`subject:("amount debited" OR "payment debited" OR "transaction successful")`,
	`subject:(invoice OR receipt) (₹ OR rs OR inr OR rupee)`,
	`subject:("thank you for your order" OR "purchase confirmation" OR "order placed")`,
	`subject:("ticket confirmed" OR "booking confirmed" OR "trip receipt")`,
	`subject:("subscription confirmed" OR "subscription renewed" OR "membership")`,

	// Food delivery senders bury totals in distinctive subjects.
	`subject:("your order from") from:(zomato.com OR swiggy.com)`,
	`subject:("your zomato order" OR "your swiggy order" OR "your blinkit order")`,
	`subject:("your order") from:(zomato.com OR swiggy.com OR blinkit.com OR zepto.in OR bigbasket.com)`,

	// Bank and UPI debit alerts.
	`subject:("debit alert" OR "debited" OR "debit intimation")`,
	`subject:(txn OR transaction) (debited OR inr OR "a/c")`,

	// Refund and cancellation language.
	`subject:(refund OR refunded OR "refund processed" OR "refund initiated")`,
	`subject:("money back" OR "cancellation confirmed" OR "order cancelled" OR "return processed")`,
	`subject:("amount credited" OR "amount refunded" OR "credit note" OR reversal)`,
	`"your refund" (processed OR initiated OR credited)`,

	// Cashback and reward language.
	`subject:("cashback credited" OR "cashback added" OR "cash back credited")`,
	`subject:("reward credited" OR "supercoins added" OR "wallet credit" OR "points credited")`,
}

// Queries returns a copy of the discovery battery.
func Queries() []string {
	out := make([]string, len(searchQueries))
	copy(out, searchQueries)
	return out
}
