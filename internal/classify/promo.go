package classify

import "regexp"

// Verdict is the promotional pre-filter decision for a message.
type Verdict int

const (
	// VerdictProceed lets the message through to classification.
	VerdictProceed Verdict = iota
	// VerdictSkip marks a subject as unambiguously non-financial.
	VerdictSkip
	// VerdictPromo marks a subject or sender as unambiguously marketing.
	VerdictPromo
)

// Policy is the two-stage promotional guard: a subject/sender pre-filter
// before body extraction, then body arbitration afterwards. Both lists
// are deliberately narrow: a false skip/promo permanently loses a
// transaction, so ambiguous mail must fall through to the scorer.
type Policy struct {
	SkipSubject     []*regexp.Regexp
	PromoSubject    []*regexp.Regexp
	PromoFrom       []*regexp.Regexp
	StrongPromoBody []*regexp.Regexp
	StrongTxBody    []*regexp.Regexp
}

// DefaultPolicy returns the built-in promotional policy.
func DefaultPolicy() *Policy {
	return &Policy{
		SkipSubject: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(shipped|dispatched|out for delivery|arriving|on its way)\b`),
			regexp.MustCompile(`(?i)\b(password reset|verify your email|otp|security code|two.factor)\b`),
			regexp.MustCompile(`(?i)\b(welcome to|confirm your email|activate your account|email verification)\b`),
			regexp.MustCompile(`(?i)\b(survey|rate your experience|how was your (order|ride|experience))\b`),
			regexp.MustCompile(`(?i)\b(track your order|shipment update|delivery update|package update)\b`),
		},
		PromoSubject: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bup to\s*\d+%\s*(off|discount|cashback)\b`),
			regexp.MustCompile(`(?i)\bearn\b.{0,20}\bcashback\b.{0,30}\b(next|every|when)\b`),
			regexp.MustCompile(`(?i)\bget\b.{0,15}\b\d+%\s*(off|discount)\b`),
			regexp.MustCompile(`(?i)\b(mega|big|flash|end of season)\s*sale\b`),
			regexp.MustCompile(`(?i)\b(last chance|don.?t miss|ends tonight|ends today)\b`),
			regexp.MustCompile(`(?i)\buse code\s+[A-Z0-9]{3,}\b`),
			regexp.MustCompile(`(?i)\b(new arrival|just launched|back in stock)\b`),
			regexp.MustCompile(`(?i)\b(referral bonus|refer a friend|invite friends)\b`),
			regexp.MustCompile(`(?i)\bnewsletter\b|\bunsubscribe\b`),
		},
		PromoFrom: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(offers?|deals?|newsletter|marketing|campaign|promotions?)\b[^@]*@`),
			regexp.MustCompile(`(?i)@[^>]*\b(offers?|deals?|newsletter|marketing|campaign)\b`),
		},
		StrongPromoBody: []*regexp.Regexp{
			regexp.MustCompile(`(?i)earn\s*(?:up to\s*)?₹\s*[\d,]+\s*cashback\s*on\s*(your\s*next|every)`),
			regexp.MustCompile(`(?i)get\s*(?:up to\s*)?₹\s*[\d,]+\s*(cashback|off|discount)\s*on\s*(your\s*next|every)`),
			regexp.MustCompile(`(?i)use\s*code\s+[A-Z0-9]{3,}\s+to\s+(?:get|avail)`),
		},
		StrongTxBody: []*regexp.Regexp{
			regexp.MustCompile(`(?i)payment\s*(?:of\s*)?₹\s*[\d,]+\s*(?:successful|confirmed|received|debited)`),
			regexp.MustCompile(`(?i)₹\s*[\d,]+\s*(?:was|has been)\s*debited`),
			regexp.MustCompile(`(?i)your\s*(?:order|booking)\b.{0,30}\b(?:confirmed|placed)`),
			regexp.MustCompile(`(?i)refund\s*(?:of\s*)?₹\s*[\d,]+\s*(?:has been|will be)\s*(?:processed|credited)`),
			regexp.MustCompile(`(?i)cashback\s*of\s*₹\s*[\d,]+\s*(?:has been|is)\s*(?:credited|added)`),
		},
	}
}

// Check runs the subject/sender pre-filter. First match wins: hard skips
// never reach classification, promotional matches are rejected.
func (p *Policy) Check(subject, from string) Verdict {
	if matchAny(p.SkipSubject, subject) {
		return VerdictSkip
	}
	if matchAny(p.PromoSubject, subject) || matchAny(p.PromoFrom, from) {
		return VerdictPromo
	}
	return VerdictProceed
}

// RejectsBody is the post-extraction guard: promotional-by-body only when
// a strong promotional phrase matches and no strong transactional phrase
// does. Legitimate receipts that merely mention an unrelated promotion
// pass.
func (p *Policy) RejectsBody(body string) bool {
	return matchAny(p.StrongPromoBody, body) && !matchAny(p.StrongTxBody, body)
}

func matchAny(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
