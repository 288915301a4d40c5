package payment

import "errors"

var (
	ErrFeeExceedsAmount    = errors.New("platform fee exceeds payment amount")
	ErrMissingDestination  = errors.New("contractor payout account is required")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
)
