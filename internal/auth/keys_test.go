package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateID(t *testing.T) {
	id := GenerateID(16)
	assert.Len(t, id, 16)

	// ids should not repeat
	assert.NotEqual(t, id, GenerateID(16))
}

func TestGenerateSecretKey(t *testing.T) {
	test := GenerateSecretKey(false)
	live := GenerateSecretKey(true)

	assert.True(t, strings.HasPrefix(test, TestKeyPrefix))
	assert.True(t, strings.HasPrefix(live, LiveKeyPrefix))
	assert.False(t, IsLiveKey(test))
	assert.True(t, IsLiveKey(live))
	assert.NotEqual(t, GenerateSecretKey(true), live)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPassword("correct horse battery staple", hash))
	assert.False(t, CheckPassword("wrong password", hash))
}

func TestOTPRoundTrip(t *testing.T) {
	secret, err := GenerateOTPSecret("micro-cloud", "john.doe@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, secret)

	code, err := GenerateOTP(secret)
	require.NoError(t, err)
	assert.True(t, ValidateOTP(code, secret))
	assert.False(t, ValidateOTP("000000", secret))

	reset, err := GenerateResetOTP(secret)
	require.NoError(t, err)
	assert.True(t, ValidateResetOTP(reset, secret))
	assert.False(t, ValidateOTP(reset, ""))
}
