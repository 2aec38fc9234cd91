package dedupe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildWithOrderID(t *testing.T) {
	date := time.Date(2024, 8, 12, 10, 30, 0, 0, time.UTC)

	h1, ref1 := Build("alice@gmail.com", "expense", "FLP-88219", "Flipkart", "msg-001", 499, date)
	h2, ref2 := Build("alice@gmail.com", "expense", "FLP-88219", "Amazon", "msg-002", 1299, date.AddDate(0, 0, 3))

	// Same user, order and type collapse regardless of message, merchant,
	// amount or date.
	assert.Equal(t, h1, h2)
	assert.Equal(t, "FLP-88219", ref1)
	assert.Equal(t, "FLP-88219", ref2)
	assert.Len(t, h1, 64)

	h3, _ := Build("alice@gmail.com", "refund", "FLP-88219", "Flipkart", "msg-003", 499, date)
	assert.NotEqual(t, h1, h3, "type is part of the key")

	h4, _ := Build("bob@gmail.com", "expense", "FLP-88219", "Flipkart", "msg-004", 499, date)
	assert.NotEqual(t, h1, h4, "user is part of the key")
}

func TestBuildCompositeKey(t *testing.T) {
	date := time.Date(2024, 8, 12, 13, 45, 0, 0, time.UTC)

	h1, ref1 := Build("alice@gmail.com", "expense", "", "Swiggy", "msg-010", 350, date)
	assert.Equal(t, "msg-010", ref1, "message id kept as reference when no order id")
	assert.Len(t, h1, 64)

	// Different message id, same logical transaction: still a duplicate.
	h2, _ := Build("alice@gmail.com", "expense", "", "Swiggy", "msg-011", 350, date.Add(30*time.Minute))
	assert.Equal(t, h1, h2)

	h3, _ := Build("alice@gmail.com", "expense", "", "Zomato", "msg-012", 350, date)
	assert.NotEqual(t, h1, h3, "merchant is part of the key")

	h4, _ := Build("alice@gmail.com", "expense", "", "Swiggy", "msg-013", 351, date)
	assert.NotEqual(t, h1, h4, "amount is part of the key")

	h5, _ := Build("alice@gmail.com", "expense", "", "Swiggy", "msg-014", 350, date.AddDate(0, 0, 1))
	assert.NotEqual(t, h1, h5, "calendar day is part of the key")
}

func TestBuildDayIsUTC(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	// 01:00 IST on the 13th is 19:30 UTC on the 12th.
	local := time.Date(2024, 8, 13, 1, 0, 0, 0, ist)
	utc := time.Date(2024, 8, 12, 19, 30, 0, 0, time.UTC)

	h1, _ := Build("alice@gmail.com", "expense", "", "Swiggy", "m1", 350, local)
	h2, _ := Build("alice@gmail.com", "expense", "", "Swiggy", "m2", 350, utc)
	assert.Equal(t, h1, h2)
}
