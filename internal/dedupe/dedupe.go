// Package dedupe builds the stable identity hash that keeps repeated
// imports from duplicating a transaction.
package dedupe

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

// Build returns the dedupe hash and the order reference to persist.
//
// With a resolved order id the key is user_order_type, which collapses
// the several emails one order produces (confirmation, invoice, receipt)
// into a single row. Without one the key is the
// user_merchant_day_amount_type composite and the provider message id is
// stored as the reference for traceability only — it never enters the
// key, since message ids differ per message even for the same logical
// transaction.
func Build(userID, typ, orderID, merchant, messageID string, amount float64, date time.Time) (hash, orderRef string) {
	var key string
	if orderID != "" {
		key = fmt.Sprintf("%s_%s_%s", userID, orderID, typ)
		orderRef = orderID
	} else {
		day := date.UTC().Format("2006-01-02")
		key = fmt.Sprintf("%s_%s_%s_%s_%s",
			userID, merchant, day, strconv.FormatFloat(amount, 'f', -1, 64), typ)
		orderRef = messageID
	}

	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:]), orderRef
}
