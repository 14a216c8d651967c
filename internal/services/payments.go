package services

import (
	"context"
	"encoding/json"
	"os"

	stripe "github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"github.com/stripe/stripe-go/v74/webhook"
)

// IntentStatusSucceeded is the gateway status that releases a booking into
// the confirmed/paid state. Any other status leaves the booking unchanged.
const IntentStatusSucceeded = "succeeded"

// EventPaymentSucceeded is the webhook event type the reconciliation path
// reacts to.
const EventPaymentSucceeded = "payment_intent.succeeded"

// PaymentIntent is the gateway-side charge attempt as seen by the handlers.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
}

// WebhookEvent is a signature-verified event pushed by the gateway.
type WebhookEvent struct {
	Type            string
	PaymentIntentID string
	BookingID       string
}

// PaymentGateway abstracts the card-payment processor so handlers can be
// exercised against a fake in tests.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amountMinorUnits int64, currency, description string, metadata map[string]string) (*PaymentIntent, error)
	RetrieveIntent(ctx context.Context, id string) (*PaymentIntent, error)
	ConstructWebhookEvent(payload []byte, sigHeader string) (*WebhookEvent, error)
}

// StripeGateway is a thin wrapper around stripe-go PaymentIntents.
type StripeGateway struct {
	webhookSecret string
}

// NewStripeGateway initializes the stripe client from the STRIPE_SECRET_KEY
// and STRIPE_WEBHOOK_SECRET env vars.
func NewStripeGateway() *StripeGateway {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	return &StripeGateway{
		webhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
	}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amountMinorUnits int64, currency, description string, metadata map[string]string) (*PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(amountMinorUnits),
		Currency:    stripe.String(currency),
		Description: stripe.String(description),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, err
	}

	return &PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
	}, nil
}

func (g *StripeGateway) RetrieveIntent(ctx context.Context, id string) (*PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := paymentintent.Get(id, params)
	if err != nil {
		return nil, err
	}

	return &PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
	}, nil
}

// ConstructWebhookEvent verifies the Stripe-Signature header against the
// shared webhook secret and extracts the fields the reconciliation path
// needs. A signature mismatch returns an error and the payload is discarded.
func (g *StripeGateway) ConstructWebhookEvent(payload []byte, sigHeader string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, g.webhookSecret)
	if err != nil {
		return nil, err
	}

	evt := &WebhookEvent{Type: string(event.Type)}
	if evt.Type == EventPaymentSucceeded {
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return nil, err
		}
		evt.PaymentIntentID = pi.ID
		evt.BookingID = pi.Metadata["bookingId"]
	}

	return evt, nil
}
