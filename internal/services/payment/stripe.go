package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
)

// StripeIntentCreator creates destination-charge PaymentIntents whose application fee is
// the platform fee.
type StripeIntentCreator struct {
	api *client.API
}

func NewStripeIntentCreator(secretKey string) *StripeIntentCreator {
	return &StripeIntentCreator{api: client.New(secretKey, nil)}
}

func (c *StripeIntentCreator) CreatePaymentIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	params := buildIntentParams(req)
	params.Context = ctx

	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe payment intent: %w", err)
	}

	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
	}, nil
}

func (c *StripeIntentCreator) GetPaymentIntent(ctx context.Context, id string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := c.api.PaymentIntents.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("stripe payment intent %s: %w", id, err)
	}

	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
	}, nil
}

func buildIntentParams(req IntentRequest) *stripe.PaymentIntentParams {
	params := &stripe.PaymentIntentParams{
		Amount:               stripe.Int64(req.Amount),
		Currency:             stripe.String(req.Currency),
		ApplicationFeeAmount: stripe.Int64(req.ApplicationFee),
		PaymentMethodTypes:   stripe.StringSlice([]string{"card"}),
		TransferData: &stripe.PaymentIntentTransferDataParams{
			Destination: stripe.String(req.DestinationAccount),
		},
	}
	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	return params
}
