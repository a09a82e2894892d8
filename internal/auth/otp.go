package auth

import (
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// otpPeriod is the validity window of a generated one-time code, in seconds.
// Password-reset codes use a longer window than login codes.
const (
	otpPeriod      uint = 30
	resetOTPPeriod uint = 300
)

// GenerateOTPSecret creates a new base32 secret for a user's one-time codes.
func GenerateOTPSecret(issuer, account string) (string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: account,
	})
	if err != nil {
		return "", err
	}
	return key.Secret(), nil
}

// GenerateOTP produces the current one-time code for the given secret.
func GenerateOTP(secret string) (string, error) {
	return totp.GenerateCodeCustom(secret, time.Now(), totp.ValidateOpts{
		Period: otpPeriod,
		Digits: otp.DigitsSix,
	})
}

// ValidateOTP checks a one-time code against the given secret.
func ValidateOTP(code, secret string) bool {
	ok, err := totp.ValidateCustom(code, secret, time.Now(), totp.ValidateOpts{
		Period: otpPeriod,
		Skew:   1,
		Digits: otp.DigitsSix,
	})
	return err == nil && ok
}

// GenerateResetOTP produces a one-time code in the password-reset window.
func GenerateResetOTP(secret string) (string, error) {
	return totp.GenerateCodeCustom(secret, time.Now(), totp.ValidateOpts{
		Period: resetOTPPeriod,
		Digits: otp.DigitsSix,
	})
}

// ValidateResetOTP checks a password-reset one-time code.
func ValidateResetOTP(code, secret string) bool {
	ok, err := totp.ValidateCustom(code, secret, time.Now(), totp.ValidateOpts{
		Period: resetOTPPeriod,
		Skew:   1,
		Digits: otp.DigitsSix,
	})
	return err == nil && ok
}
