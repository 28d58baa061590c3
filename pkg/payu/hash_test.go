package payu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "250", FormatAmount(250.0))
	assert.Equal(t, "99.99", FormatAmount(99.99))
	assert.Equal(t, "0.5", FormatAmount(0.5))
	assert.Equal(t, "1349.97", FormatAmount(1349.97))
}

func TestGenerateHashWholeAmount(t *testing.T) {
	// key|txnid|amount|productinfo|firstname|email|||||||||||salt with a
	// whole-number amount rendered without trailing zeros.
	got := GenerateHash("TXN_42_1700000000000", 250.0, "Order #42", "Jane Doe", "jane@example.com", "testkey", "testsalt")
	want := "33f6dcba2bc778bb133a69708d2cc675c4157999d296c9666807b53f6477536cf30a595ab9aa4194ca054176362d5512e12c100853019fa6f5fe465963f5be28"
	assert.Equal(t, want, got)
}

func TestGenerateHashFractionalAmount(t *testing.T) {
	got := GenerateHash("t", 99.99, "p", "f", "e", "k", "s")
	want := "bed4b1723f52855f0606c78a08f30c754555e3570577c4c5cb600bcd1700908ef44c1770f01253d58ef717c14c79c61a8316705c8238b6e9d3a295156cdcdf46"
	assert.Equal(t, want, got)
}

func TestVerifyHash(t *testing.T) {
	hash := GenerateHash("t", 99.99, "p", "f", "e", "k", "s")
	assert.True(t, VerifyHash(hash, "t", 99.99, "p", "f", "e", "k", "s"))
	assert.False(t, VerifyHash(hash, "t", 100.0, "p", "f", "e", "k", "s"))
	assert.False(t, VerifyHash("deadbeef", "t", 99.99, "p", "f", "e", "k", "s"))
}
