package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSMTPMailer(t *testing.T) {
	assert.Nil(t, NewSMTPMailer("", 587, "user", "pass", ""))

	m := NewSMTPMailer("smtp.example.com", 587, "noreply@cocomart.in", "pass", "")
	require.NotNil(t, m)
	assert.Equal(t, "noreply@cocomart.in", m.from)
}
