package validation

const (
	// Amount limits, in cents
	MinTransactionAmount = 1
	MaxTransactionAmount = 10_000_000

	MinPasswordLength = 8
	MaxPasswordLength = 72
)
