package payhere

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount renders a money value exactly as the gateway expects it:
// fixed-point, two fractional digits, round half away from zero. The same
// formatted string must feed both the request's amount field and the hash;
// callers format once and pass the string to both.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// ComputeHash derives the integrity hash over the outbound payment fields.
// The concatenation order and uppercase hex output are fixed by the
// gateway's wire contract:
//
//	hash = upper(md5(merchant_id + order_id + amount + currency + upper(md5(merchant_secret))))
//
// Malformed inputs still produce a digest; it will simply fail verification
// on the gateway side.
func ComputeHash(merchantID, orderID, formattedAmount, currency, merchantSecret string) string {
	secretDigest := md5Hex(merchantSecret)
	return md5Hex(merchantID + orderID + formattedAmount + currency + secretDigest)
}

func md5Hex(input string) string {
	sum := md5.Sum([]byte(input))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}
