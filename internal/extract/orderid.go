package extract

import (
	"regexp"
	"strings"
)

// orderIDREs are tried in priority order; the first match anywhere in the
// body wins. Labeled references beat the bare #-token fallback, and the
// provider's message id is never used here: message ids differ per message
// even for the same logical order, which defeats dedup.
var orderIDREs = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:order|booking)\s*(?:id|no\.?|number|#)\s*[:\-#]?\s*([A-Z0-9_\-/]{5,30})`),
	regexp.MustCompile(`(?i)\binvoice\s*(?:id|no\.?|number|#)\s*[:\-]?\s*([A-Z0-9_\-/]{5,30})`),
	regexp.MustCompile(`(?i)\btransaction\s*(?:id|no\.?|number|#)\s*[:\-]?\s*([A-Z0-9_\-/]{6,30})`),
	regexp.MustCompile(`(?i)\brefund\s*(?:id|no\.?|number|#)\s*[:\-]?\s*([A-Z0-9_\-/]{5,30})`),
	regexp.MustCompile(`(?i)\breference\s*(?:id|no\.?|number|#)?\s*[:\-]?\s*([A-Z0-9_\-]{6,30})`),
	regexp.MustCompile(`(?i)\bpnr\s*[:\-]?\s*([A-Z0-9]{6,15})`),
	regexp.MustCompile(`(?i)\bupi\s*ref\s*(?:no\.?)?\s*[:\-]?\s*(\d{10,})`),
	regexp.MustCompile(`#([A-Z0-9_\-]{6,30})\b`),
}

// OrderID extracts a merchant-assigned reference id from a normalized
// body, uppercased. Returns "" when no pattern matches.
func OrderID(body string) string {
	for _, re := range orderIDREs {
		if m := re.FindStringSubmatch(body); len(m) > 1 && m[1] != "" {
			return strings.ToUpper(strings.TrimSpace(m[1]))
		}
	}
	return ""
}
