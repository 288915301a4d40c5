package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIntentParams(t *testing.T) {
	params := buildIntentParams(IntentRequest{
		Amount:             10000,
		Currency:           "usd",
		ApplicationFee:     2500,
		DestinationAccount: "acct_123",
		Description:        "Booking HF-1",
		IdempotencyKey:     "key-1",
		Metadata:           map[string]string{"tier_name": "Growing"},
	})

	require.NotNil(t, params.Amount)
	assert.Equal(t, int64(10000), *params.Amount)
	assert.Equal(t, "usd", *params.Currency)
	assert.Equal(t, int64(2500), *params.ApplicationFeeAmount)
	assert.Equal(t, "acct_123", *params.TransferData.Destination)
	assert.Equal(t, "Booking HF-1", *params.Description)
	assert.Equal(t, "key-1", *params.IdempotencyKey)
	assert.Equal(t, "Growing", params.Metadata["tier_name"])
}

func TestBuildIntentParams_OptionalFields(t *testing.T) {
	params := buildIntentParams(IntentRequest{Amount: 500, Currency: "usd", ApplicationFee: 150, DestinationAccount: "acct_9"})

	assert.Nil(t, params.Description)
	assert.Nil(t, params.IdempotencyKey)
	assert.Empty(t, params.Metadata)
}
