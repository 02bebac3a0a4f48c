package auth

import "errors"

// The error texts below are the stable messages the API returns to clients;
// existing clients match on them, so they must not change.
var (
	ErrInvalidInput       = errors.New("API Error - expected fields are undefined!")
	ErrInvalidEmail       = errors.New("Invalid email format!")
	ErrWeakPassword       = errors.New("Password must be at least 8 characters long!")
	ErrPasswordMismatch   = errors.New("Passwords do not match!")
	ErrDuplicateEmail     = errors.New("Email already exists!")
	ErrInvalidCredentials = errors.New("Email and/or password is incorrect!")
	ErrForbidden          = errors.New("Access is forbidden.")
	ErrTokenSuperseded    = errors.New("Refresh token is wrong")
	ErrUnauthorized       = errors.New("Token is invalid")
	ErrInternal           = errors.New("Seems to be something wrong on our side.")
)
