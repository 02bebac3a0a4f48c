package auth

import "regexp"

const minPasswordLength = 8

// RFC-5322-derived pattern. Lowercase-only on purpose: addresses are stored
// and matched case-sensitively.
var emailRegex = regexp.MustCompile("^(?:[a-z0-9!#$%&'*+/=?^_`{|}~-]+(?:\\.[a-z0-9!#$%&'*+/=?^_`{|}~-]+)*|\"(?:[\\x01-\\x08\\x0b\\x0c\\x0e-\\x1f\\x21\\x23-\\x5b\\x5d-\\x7f]|\\\\[\\x01-\\x09\\x0b\\x0c\\x0e-\\x7f])*\")@(?:(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\\.)+[a-z0-9](?:[a-z0-9-]*[a-z0-9])?|\\[(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?|[a-z0-9-]*[a-z0-9]:(?:[\\x01-\\x08\\x0b\\x0c\\x0e-\\x1f\\x21-\\x5a\\x53-\\x7f]|\\\\[\\x01-\\x09\\x0b\\x0c\\x0e-\\x7f])+)\\])$")

func validEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// validateRegistration applies the registration checks in their documented
// order; the first failure wins.
func validateRegistration(creds Credentials) error {
	if creds.Email == "" || creds.Password == "" || creds.PasswordConfirmation == "" {
		return ErrInvalidInput
	}
	if !validEmail(creds.Email) {
		return ErrInvalidEmail
	}
	if len(creds.Password) < minPasswordLength {
		return ErrWeakPassword
	}
	if creds.Password != creds.PasswordConfirmation {
		return ErrPasswordMismatch
	}
	return nil
}
