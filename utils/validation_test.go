package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	for _, pw := range []string{"Coconut@123", "Aa1!aaaa"} {
		ok, _ := ValidatePassword(pw)
		assert.True(t, ok, pw)
	}
	for _, pw := range []string{"", "Aa1!", "coconut@123", "COCONUT@123", "Coconut@abc", "Coconut1234"} {
		ok, msg := ValidatePassword(pw)
		assert.False(t, ok, pw)
		assert.NotEmpty(t, msg)
	}
}

func TestValidateEmailPhoneName(t *testing.T) {
	ok, _ := ValidateEmail("vendor@example.com")
	assert.True(t, ok)
	ok, _ = ValidateEmail("vendor@")
	assert.False(t, ok)

	ok, _ = ValidatePhone("")
	assert.True(t, ok, "phone is optional")
	ok, _ = ValidatePhone("+91 98765 43210")
	assert.True(t, ok)
	ok, _ = ValidatePhone("12ab")
	assert.False(t, ok)

	ok, _ = ValidateName("Al")
	assert.True(t, ok)
	ok, _ = ValidateName(" A ")
	assert.False(t, ok)
}

func TestValidatePriceAndRoundMoney(t *testing.T) {
	assert.NoError(t, ValidatePrice(0.01))
	assert.Error(t, ValidatePrice(0))
	assert.Error(t, ValidatePrice(-1))
	assert.Error(t, ValidatePrice(math.NaN()))
	assert.Error(t, ValidatePrice(math.Inf(1)))

	assert.Equal(t, 10.0, RoundMoney(9.999))
	assert.Equal(t, 0.3, RoundMoney(0.1+0.2))
	assert.Equal(t, 12.35, RoundMoney(12.345000001))
}
