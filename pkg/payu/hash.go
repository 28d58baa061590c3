package payu

import (
	"crypto/sha512"
	"encoding/hex"
	"strconv"
)

// FormatAmount renders an amount the way the provider expects: no trailing
// zeros, no decimal point for whole amounts (250 -> "250", 250.5 -> "250.5").
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

// GenerateHash computes the PayU request signature:
// sha512(key|txnid|amount|productinfo|firstname|email|||||||||||salt)
// The eleven empty positions are the unused udf1..udf5 and reserved fields.
func GenerateHash(txnid string, amount float64, productinfo, firstname, email, merchantKey, merchantSalt string) string {
	str := merchantKey + "|" + txnid + "|" + FormatAmount(amount) + "|" + productinfo +
		"|" + firstname + "|" + email + "|||||||||||" + merchantSalt
	sum := sha512.Sum512([]byte(str))
	return hex.EncodeToString(sum[:])
}

// VerifyHash checks a callback signature against a freshly computed one.
func VerifyHash(gotHash, txnid string, amount float64, productinfo, firstname, email, merchantKey, merchantSalt string) bool {
	return gotHash == GenerateHash(txnid, amount, productinfo, firstname, email, merchantKey, merchantSalt)
}
