package payhere

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestComputeHashKnownVectors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		merchantID string
		orderID    string
		amount     string
		currency   string
		secret     string
		want       string
	}{
		{
			name:       "advance payment",
			merchantID: "1211149",
			orderID:    "CM_1750000000000_AB12CD",
			amount:     "1600.00",
			currency:   "LKR",
			secret:     "TestSecret#42",
			want:       "A0337F6894ADAB85BC2FD8317551C0EC",
		},
		{
			name:       "small usd order",
			merchantID: "M2001",
			orderID:    "ORD_1",
			amount:     "250.50",
			currency:   "USD",
			secret:     "super-secret",
			want:       "B085F46FE853B745F5FCDBEBC20DA4CF",
		},
	}

	for _, tt := range tests {
		got := ComputeHash(tt.merchantID, tt.orderID, tt.amount, tt.currency, tt.secret)
		if got != tt.want {
			t.Fatalf("%s: expected %s got %s", tt.name, tt.want, got)
		}
	}
}

func TestComputeHashDeterministic(t *testing.T) {
	t.Parallel()

	first := ComputeHash("1211149", "CM_1", "10.00", "LKR", "secret")
	second := ComputeHash("1211149", "CM_1", "10.00", "LKR", "secret")
	if first != second {
		t.Fatalf("hash not deterministic: %s vs %s", first, second)
	}
}

func TestComputeHashSensitiveToEveryInput(t *testing.T) {
	t.Parallel()

	base := ComputeHash("1211149", "CM_1", "10.00", "LKR", "secret")
	variants := []string{
		ComputeHash("1211148", "CM_1", "10.00", "LKR", "secret"),
		ComputeHash("1211149", "CM_2", "10.00", "LKR", "secret"),
		ComputeHash("1211149", "CM_1", "10.01", "LKR", "secret"),
		ComputeHash("1211149", "CM_1", "10.00", "USD", "secret"),
		ComputeHash("1211149", "CM_1", "10.00", "LKR", "secret2"),
	}
	for i, variant := range variants {
		if variant == base {
			t.Fatalf("variant %d collided with base hash", i)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"1200", "1200.00"},
		{"1234.5", "1234.50"},
		{"0", "0.00"},
		{"1600", "1600.00"},
		{"10.005", "10.01"},
		{"-3.335", "-3.34"},
	}
	for _, tt := range tests {
		d, err := decimal.NewFromString(tt.in)
		if err != nil {
			t.Fatalf("parsing %q: %v", tt.in, err)
		}
		if got := FormatAmount(d); got != tt.want {
			t.Fatalf("FormatAmount(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
