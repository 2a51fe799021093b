package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	s := &AuthService{}

	assert.NoError(t, s.validateUsername("taner"))
	assert.Error(t, s.validateUsername(""))
	assert.Error(t, s.validateUsername(strings.Repeat("a", MaxUsernameLen+1)))
	assert.NoError(t, s.validateUsername(strings.Repeat("a", MaxUsernameLen)))
}

func TestValidateEmail(t *testing.T) {
	s := &AuthService{}

	assert.NoError(t, s.validateEmail(""), "email is optional")
	assert.NoError(t, s.validateEmail("taner@example.com"))
	assert.NoError(t, s.validateEmail("a.b+tag@sub.example.co"))
	assert.Error(t, s.validateEmail("not-an-email"))
	assert.Error(t, s.validateEmail("missing@tld"))
	assert.Error(t, s.validateEmail("@example.com"))
}

func TestValidatePassword(t *testing.T) {
	s := &AuthService{}

	assert.Error(t, s.validatePassword("short"))
	assert.Error(t, s.validatePassword("1234567"))
	assert.NoError(t, s.validatePassword("12345678"))
}
