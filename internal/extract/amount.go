package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/skothari/txmail/internal/types"
)

// rupeeAmountRE matches a ₹-marked numeric literal with optional thousands
// separators. Normalize has already collapsed Rs./INR into ₹.
var rupeeAmountRE = regexp.MustCompile(`₹\s*([\d,]+\.?\d*)`)

// Anchor phrases locate the textual neighborhood most likely to contain
// the authoritative amount for each transaction type.
var anchorREs = map[string]*regexp.Regexp{
	types.TypeExpense:  regexp.MustCompile(`(?i)total\s*paid|(?:order|grand|invoice|bill)?\s*total|amount\s*(?:paid|charged|billed|debited)|you\s*(?:paid|spent)|payment\s*(?:of|amount)|grand\s*total`),
	types.TypeRefund:   regexp.MustCompile(`(?i)refund(?:ed)?(?:\s+of)?|credited back|has been credited|will be credited|reversal|reimburs`),
	types.TypeCashback: regexp.MustCompile(`(?i)cashback(?:\s+of)?|cash back(?:\s+of)?|coins?\s*(?:added|credited)|reward(?:s)?\s*credited`),
}

// AmountRule bounds and locates transaction amounts in normalized bodies.
type AmountRule struct {
	// Window is the max character distance between an anchor phrase and
	// a currency amount for the amount to count as anchored.
	Window int
	// Min and Max bound accepted values, inclusive.
	Min, Max float64
}

type foundAmount struct {
	value float64
	index int
}

// Resolve finds the currency amount that best represents a transaction of
// the given type. Expenses pick the maximum of the anchored pool (the
// grand total dominates itemized lines); refunds and cashback pick the
// minimum to avoid an unrelated larger total mentioned nearby. With no
// anchored amounts the same rule applies over every amount in the body.
func (r AmountRule) Resolve(body, typ string) (float64, bool) {
	var amounts []foundAmount
	for _, m := range rupeeAmountRE.FindAllStringSubmatchIndex(body, -1) {
		lit := strings.ReplaceAll(body[m[2]:m[3]], ",", "")
		v, err := strconv.ParseFloat(lit, 64)
		if err != nil || v < r.Min || v > r.Max {
			continue
		}
		amounts = append(amounts, foundAmount{value: v, index: m[0]})
	}
	if len(amounts) == 0 {
		return 0, false
	}

	if anchors := anchorREs[typ].FindAllStringIndex(body, -1); len(anchors) > 0 {
		var nearby []float64
		for _, anchor := range anchors {
			for _, amt := range amounts {
				if abs(amt.index-anchor[0]) <= r.Window {
					nearby = append(nearby, amt.value)
				}
			}
		}
		if len(nearby) > 0 {
			return pick(nearby, typ), true
		}
	}

	values := make([]float64, len(amounts))
	for i, a := range amounts {
		values[i] = a.value
	}
	return pick(values, typ), true
}

func pick(values []float64, typ string) float64 {
	if typ == types.TypeExpense {
		best := math.Inf(-1)
		for _, v := range values {
			best = math.Max(best, v)
		}
		return best
	}
	best := math.Inf(1)
	for _, v := range values {
		best = math.Min(best, v)
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
