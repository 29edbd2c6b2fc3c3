package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignature(t *testing.T) {
	sig := Signature("secret", "order_1", "pay_1")
	assert.Len(t, sig, 64)
	assert.Equal(t, sig, Signature("secret", "order_1", "pay_1"))
	assert.NotEqual(t, sig, Signature("secret", "order_1", "pay_2"))
	assert.NotEqual(t, sig, Signature("other", "order_1", "pay_1"))

	assert.True(t, verifySignature("secret", "order_1", "pay_1", sig))
	assert.False(t, verifySignature("secret", "order_1", "pay_2", sig))
	assert.False(t, verifySignature("secret", "order_1", "pay_1", ""))
	assert.False(t, verifySignature("", "order_1", "pay_1", Signature("", "order_1", "pay_1")), "an unset secret never verifies")
}

func TestToMinor(t *testing.T) {
	assert.Equal(t, int64(3000), toMinor(float64(3000)))
	assert.Equal(t, int64(42), toMinor(int64(42)))
	assert.Equal(t, int64(7), toMinor(7))
	assert.Equal(t, int64(1234), toMinor(json.Number("1234")))
	assert.Equal(t, int64(0), toMinor("3000"))
	assert.Equal(t, int64(0), toMinor(nil))
}
