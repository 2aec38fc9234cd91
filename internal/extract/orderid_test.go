package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderID(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "labeled order id",
			body: "Thanks! Order ID: FLP-88219 will arrive soon",
			want: "FLP-88219",
		},
		{
			name: "labeled beats bare hash token",
			body: "ref #XYZ999A mentioned, but Order ID: ABC123 is the real one",
			want: "ABC123",
		},
		{
			name: "booking number",
			body: "Booking No. MMT12345 confirmed",
			want: "MMT12345",
		},
		{
			name: "invoice id",
			body: "Invoice Number: INV/2024/0042",
			want: "INV/2024/0042",
		},
		{
			name: "transaction id",
			body: "Transaction ID: TXN88412345",
			want: "TXN88412345",
		},
		{
			name: "order id beats transaction id regardless of position",
			body: "Transaction ID: TXN88412345 for Order #OD4411",
			want: "OD4411",
		},
		{
			name: "pnr",
			body: "Your PNR: 4JX8B2 for the 6:00 departure",
			want: "4JX8B2",
		},
		{
			name: "upi reference digits only",
			body: "UPI Ref No. 326712345678",
			want: "326712345678",
		},
		{
			name: "bare hash fallback",
			body: "your purchase #AB12CD34 was recorded",
			want: "AB12CD34",
		},
		{
			name: "lowercase uppercased",
			body: "order id: flp-88219",
			want: "FLP-88219",
		},
		{
			name: "nothing",
			body: "no references of any kind here",
			want: "",
		},
		{
			name: "too-short token ignored",
			body: "Order ID: AB1",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OrderID(tt.body))
		})
	}
}
