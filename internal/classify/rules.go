// Package classify decides whether a message represents a financial event
// and which kind: three independent weighted-pattern accumulators over
// subject and body, guarded by a promotional filter.
package classify

import "regexp"

// Rule pairs a compiled pattern with a signed weight. Negative weights
// cancel false signals, e.g. a refund-sounding mail that also says
// "payment successful" loses refund score.
type Rule struct {
	re     *regexp.Regexp
	weight int
}

func rule(expr string, weight int) Rule {
	return Rule{re: regexp.MustCompile(expr), weight: weight}
}

// score sums the weights of every rule matching text. All applicable
// rules count, not just the first.
func score(rules []Rule, text string) int {
	total := 0
	for _, r := range rules {
		if r.re.MatchString(text) {
			total += r.weight
		}
	}
	return total
}

var expenseSubjectRules = []Rule{
	rule(`(?i)\border\b.{0,15}\b(confirmed|placed|successful|received)\b`, 8),
	rule(`(?i)\bpayment\b.{0,15}\b(confirmed|successful|received|done|complete)\b`, 8),
	rule(`(?i)\b(purchase|booking)\b.{0,15}\b(confirmed|successful|placed)\b`, 8),
	rule(`(?i)\bthank you for (your )?(order|purchase|payment|shopping)\b`, 8),
	rule(`(?i)\binvoice\b.{0,20}\b(for|from|generated|attached)\b`, 7),
	rule(`(?i)\b(receipt|bill)\b.{0,15}\b(for|from|generated)\b`, 7),
	rule(`(?i)\bpurchase\s*confirmation\b`, 9),
	rule(`(?i)\bticket.{0,10}(confirmed|booked|booking confirmed)\b`, 8),
	rule(`(?i)\bbooking.{0,10}confirmed\b`, 8),
	rule(`(?i)\bamount\s*debited\b`, 9),
	rule(`(?i)\bpayment\s*debited\b`, 9),
	rule(`(?i)\btransaction\b.{0,15}\b(successful|confirmed|complete)\b`, 7),
	rule(`(?i)\bsubscription\b.{0,20}\b(confirmed|activated|renewed|started)\b`, 7),
	rule(`(?i)\b(order|trip|ride|purchase)\s*(receipt|summary|details|invoice)\b`, 8),
	rule(`(?i)\bconfirmed[!.]?\s*$`, 5),
	rule(`(?i)\byour\b.{0,20}\border\b.{0,30}\bfrom\b`, 8),
	rule(`(?i)\byour\b.{0,30}\border\s*$`, 6),
	rule(`(?i)^order\b.{0,5}\bfrom\b`, 6),
	rule(`(?i)\bdebit\s*(alert|notification|intimation)\b`, 8),
	rule(`(?i)\ba/c\b.{0,30}\bdebited\b`, 9),
	rule(`(?i)\baccount\b.{0,20}\bdebited\b`, 9),
	rule(`(?i)\btxn\b.{0,20}\b(of|for)\b.{0,10}(inr|rs)`, 8),
	rule(`(?i)\b(inr|rs\.?)\s*[\d,]+.{0,20}\bdebited\b`, 9),
}

var expenseBodyRules = []Rule{
	rule(`(?i)payment\s*(?:of\s*)?₹\s*[\d,]+\s*(?:was|has been|is)\s*(?:successful|confirmed|received|processed)`, 10),
	rule(`(?i)₹\s*[\d,]+\s*(?:was|has been)\s*debited`, 10),
	rule(`(?i)amount\s*(?:of\s*)?₹\s*[\d,]+\s*(?:debited|charged|paid)`, 10),
	rule(`(?i)(?:order|grand|invoice)\s*total\s*[:\-]?\s*₹\s*[\d,]+`, 9),
	rule(`(?i)total\s*(?:amount\s*)?(?:paid|charged|billed)\s*[:\-]?\s*₹\s*[\d,]+`, 9),
	rule(`(?i)total\s*paid\s*[-:\s]\s*₹\s*[\d,]+`, 10),
	rule(`(?i)amount\s*[:\-]\s*₹\s*[\d,]+`, 7),
	rule(`(?i)you\s*(?:have\s*)?(?:paid|spent)\s*₹\s*[\d,]+`, 8),
	rule(`(?i)charged\s*(?:to\s*your)?.{0,30}₹\s*[\d,]+`, 8),
	rule(`(?i)thank you for (your )?(order|purchase|payment|shopping)`, 7),
	rule(`(?i)your\s*(?:order|booking|purchase)\b.{0,30}\b(?:confirmed|placed|successful)`, 7),
	rule(`(?i)(?:order|booking)\s*(?:id|no|number|#)\s*[:\-]?\s*[A-Z0-9]`, 5),
	rule(`(?i)invoice\s*(?:no|number|#)?.{0,20}₹\s*[\d,]+`, 7),
	rule(`(?i)billed\s*(?:amount\s*)?[:\-]?\s*₹\s*[\d,]+`, 8),
	rule(`(?i)total\s*[:\-]?\s*₹\s*[\d,]+`, 7),
	rule(`(?i)₹\s*[\d,]+\s*(?:only|paid|total)`, 6),
	rule(`(?i)thank you for ordering from`, 7),
	rule(`(?i)(?:debited|deducted)\s*(?:from\s*(?:your\s*)?(?:a/c|account))?.{0,30}₹\s*[\d,]+`, 9),
	rule(`(?i)₹\s*[\d,]+\s*(?:debited|deducted)\s*from`, 9),
	rule(`(?i)refund(?:ed)?\s*(?:of\s*)?₹`, -10),
	rule(`(?i)has been refunded|refund processed|refund initiated`, -10),
	rule(`(?i)credited back to your`, -8),
	rule(`(?i)cashback\s*(?:of\s*)?₹.{0,20}(?:credited|added)`, -8),
}

var refundSubjectRules = []Rule{
	rule(`(?i)\brefund(ed)?\b`, 5),
	rule(`(?i)\bmoney.?back\b`, 5),
	rule(`(?i)\brefund\b.{0,20}\b(processed|initiated|successful)\b`, 8),
	rule(`(?i)\bamount\b.{0,15}\b(refunded|credited back)\b`, 8),
	rule(`(?i)\b(order|booking)\b.{0,10}\bcancell(ed|ation)\b`, 4),
	rule(`(?i)\breturn\b.{0,15}\b(processed|accepted|approved)\b`, 7),
	rule(`(?i)\bcancellation\b.{0,15}\b(confirmed|successful)\b`, 6),
	rule(`(?i)\bcredit.?note\b`, 6),
	rule(`(?i)\breimburse(ment|d)?\b`, 6),
	rule(`(?i)\breversal\b`, 5),
}

var refundBodyRules = []Rule{
	rule(`(?i)refund of\s*₹\s*[\d,]+`, 10),
	rule(`(?i)₹\s*[\d,]+\s*(?:has been|will be)\s*refunded`, 10),
	rule(`(?i)refund\s*(?:of\s*)?₹\s*[\d,]+\s*(?:has been|is)\s*(?:processed|initiated|credited)`, 10),
	rule(`(?i)your refund (?:of|for|amounting)`, 9),
	rule(`(?i)we.?ve (processed|initiated) (your )?refund`, 9),
	rule(`(?i)refund\s*(?:has been\s*)?successfully\s*(processed|initiated|credited)`, 9),
	rule(`(?i)amount.{0,20}refunded.{0,30}(?:bank|account|wallet|upi)`, 8),
	rule(`(?i)credited back to your\s*(?:bank|account|card|wallet)`, 8),
	rule(`(?i)will be (?:credited|refunded).{0,40}(?:\d+.?\d*)\s*(?:working|business)?\s*days`, 8),
	rule(`(?i)return.{0,30}refund.{0,30}₹`, 7),
	rule(`(?i)cancell(?:ed|ation).{0,40}₹.{0,40}refund`, 7),
	rule(`(?i)refund.{0,30}(?:neft|imps|upi|wallet)`, 7),
	rule(`(?i)your order.{0,30}cancell`, 4),
	rule(`(?i)payment (?:successful|confirmed|received)`, -8),
	rule(`(?i)order (?:placed|confirmed|received)`, -8),
	rule(`(?i)thank you for your (?:purchase|payment|order)`, -7),
	rule(`(?i)₹\s*[\d,]+\s*(?:was|has been)\s*debited`, -10),
	rule(`(?i)amount debited`, -9),
}

var cashbackSubjectRules = []Rule{
	rule(`(?i)\bcashback\b.{0,15}\b(credited|added|received)\b`, 8),
	rule(`(?i)\bcash back\b.{0,15}\b(credited|added)\b`, 8),
	rule(`(?i)\breward(s)?\b.{0,15}\b(credited|added|earned)\b`, 7),
	rule(`(?i)\bsupercoins?\b.{0,15}\b(added|credited)\b`, 8),
	rule(`(?i)\bwallet\b.{0,10}\bcredit\b`, 6),
	rule(`(?i)\bpoints?\b.{0,15}\b(credited|added)\b`, 6),
}

var cashbackBodyRules = []Rule{
	rule(`(?i)cashback of\s*₹\s*[\d,]+.{0,20}(?:credited|added)`, 10),
	rule(`(?i)₹\s*[\d,]+\s*cashback\s*(?:has been|is)\s*(?:credited|added)`, 10),
	rule(`(?i)we.?ve added\s*₹\s*[\d,]+.{0,20}(?:cashback|reward)`, 9),
	rule(`(?i)your (cashback|reward|supercoins?).{0,30}₹\s*[\d,]+.{0,20}(?:credited|added)`, 9),
	rule(`(?i)₹\s*[\d,]+\s*(?:supercoins?|coins?|points?).{0,20}(?:credited|added)`, 8),
	rule(`(?i)cashback.{0,30}credited.{0,20}(?:wallet|account|paytm|phonepe|gpay)`, 8),
	rule(`(?i)you.?ve earned\s*₹\s*[\d,]+\s*cashback`, 9),
	rule(`(?i)earn.*cashback.*next|cashback on your next`, -8),
	rule(`(?i)up to\s*₹\s*[\d,]+\s*cashback`, -7),
	rule(`(?i)payment (?:successful|confirmed)`, -6),
}
