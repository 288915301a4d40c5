package commission

import "errors"

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrMisconfiguredTierTable = errors.New("misconfigured tier table")
)
