package extract

import (
	"regexp"
	"strings"
)

// UnknownMerchant is returned when no name or domain can be parsed from
// the sender header.
const UnknownMerchant = "Unknown"

// knownMerchants maps lower-cased, space-stripped names and bare domain
// labels to canonical display names.
var knownMerchants = map[string]string{
	"amazon": "Amazon", "flipkart": "Flipkart", "myntra": "Myntra", "ajio": "AJIO",
	"nykaa": "Nykaa", "meesho": "Meesho", "snapdeal": "Snapdeal", "tatacliq": "Tata CLiQ",
	"swiggy": "Swiggy", "zomato": "Zomato", "blinkit": "Blinkit", "zepto": "Zepto",
	"bigbasket": "BigBasket", "dunzo": "Dunzo", "instamart": "Instamart",
	"paytm": "Paytm", "phonepe": "PhonePe", "gpay": "Google Pay",
	"razorpay": "Razorpay", "cashfree": "Cashfree", "juspay": "Juspay",
	"makemytrip": "MakeMyTrip", "goibibo": "Goibibo", "cleartrip": "Cleartrip",
	"easemytrip": "EaseMyTrip", "redbus": "redBus", "indigo": "IndiGo", "airindia": "Air India",
	"airtel": "Airtel", "jio": "Jio", "vodafone": "Vodafone Vi", "bsnl": "BSNL",
	"irctc": "IRCTC", "ola": "Ola", "uber": "Uber", "rapido": "Rapido",
	"cred": "CRED", "slice": "Slice", "simpl": "Simpl", "lazypay": "LazyPay",
	"hdfc": "HDFC Bank", "icici": "ICICI Bank", "sbi": "SBI", "axis": "Axis Bank",
	"kotak": "Kotak Bank", "idfcfirst": "IDFC First", "payu": "PayU",
	"netflix": "Netflix", "spotify": "Spotify", "hotstar": "Hotstar",
	"bookmyshow": "BookMyShow", "swipe": "Swipe", "ixigo": "ixigo",
}

var (
	displayNameRE = regexp.MustCompile(`^"?([^"<]{2,50}?)"?\s*<`)
	roleSuffixRE  = regexp.MustCompile(`(?i)\s*(support|team|no.?reply|noreply|notifications?|alerts?|orders?|info|help|care|service|billing|invoice|payments?|customer)\s*$`)
	senderDomainRE = regexp.MustCompile(`@([\w.\-]+)`)
	genericLabelRE = regexp.MustCompile(`(?i)^(mail|mailer|email|info|support|noreply|no-reply|notifications?|orders?|payments?|alerts?|team|accounts?|customer|do-not-reply|billing|transact|connect)\.`)
)

var commonTLDs = map[string]bool{
	"com": true, "co": true, "in": true, "net": true, "org": true,
	"io": true, "app": true, "ai": true, "biz": true, "gov": true, "edu": true,
}

// Merchant derives a human-readable counterparty name from a From header.
// The display name before the address wins when present; otherwise the
// sender domain is reduced to its organization label. overrides extends
// the built-in known-merchant table (deployment config) and is consulted
// first.
func Merchant(from string, overrides map[string]string) string {
	if m := displayNameRE.FindStringSubmatch(from); m != nil {
		name := strings.TrimSpace(roleSuffixRE.ReplaceAllString(strings.TrimSpace(m[1]), ""))
		lower := strings.ReplaceAll(strings.ToLower(name), " ", "")
		if canonical, ok := lookupMerchant(lower, overrides); ok {
			return canonical
		}
		if len(name) >= 2 && len(name) <= 40 {
			return name
		}
	}

	dm := senderDomainRE.FindStringSubmatch(from)
	if dm == nil {
		return UnknownMerchant
	}

	domain := genericLabelRE.ReplaceAllString(strings.ToLower(dm[1]), "")
	var labels []string
	for _, p := range strings.Split(domain, ".") {
		if !commonTLDs[p] {
			labels = append(labels, p)
		}
	}
	raw := ""
	if len(labels) > 0 {
		raw = labels[0]
	} else {
		raw = strings.Split(domain, ".")[0]
	}
	if raw == "" {
		return UnknownMerchant
	}

	if canonical, ok := lookupMerchant(raw, overrides); ok {
		return canonical
	}
	return strings.ToUpper(raw[:1]) + raw[1:]
}

func lookupMerchant(key string, overrides map[string]string) (string, bool) {
	if canonical, ok := overrides[key]; ok {
		return canonical, true
	}
	canonical, ok := knownMerchants[key]
	return canonical, ok
}
