package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/beintransports/booking-api/internal/models"
	"github.com/beintransports/booking-api/internal/services"
	"github.com/gin-gonic/gin"
)

type fakeGateway struct {
	intent   *services.PaymentIntent
	event    *services.WebhookEvent
	eventErr error
}

func (f *fakeGateway) CreateIntent(ctx context.Context, amount int64, currency, description string, metadata map[string]string) (*services.PaymentIntent, error) {
	return f.intent, nil
}

func (f *fakeGateway) RetrieveIntent(ctx context.Context, id string) (*services.PaymentIntent, error) {
	return f.intent, nil
}

func (f *fakeGateway) ConstructWebhookEvent(payload []byte, sigHeader string) (*services.WebhookEvent, error) {
	if f.eventErr != nil {
		return nil, f.eventErr
	}
	return f.event, nil
}

func TestCanCreateIntent(t *testing.T) {
	cases := []struct {
		status models.PaymentStatus
		want   bool
	}{
		{models.PaymentStatusPending, true},
		{models.PaymentStatusPaid, false},
		{models.PaymentStatusRefunded, true},
	}

	for _, tc := range cases {
		b := &models.Booking{PaymentStatus: tc.status}
		if got := canCreateIntent(b); got != tc.want {
			t.Errorf("canCreateIntent(%s) = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestPaymentCompleted(t *testing.T) {
	cases := []struct {
		name   string
		intent *services.PaymentIntent
		want   bool
	}{
		{"succeeded", &services.PaymentIntent{Status: services.IntentStatusSucceeded}, true},
		{"processing", &services.PaymentIntent{Status: "processing"}, false},
		{"requires_payment_method", &services.PaymentIntent{Status: "requires_payment_method"}, false},
		{"canceled", &services.PaymentIntent{Status: "canceled"}, false},
		{"nil intent", nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := paymentCompleted(tc.intent); got != tc.want {
				t.Errorf("paymentCompleted = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestConfirmPaymentMissingIntentID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/payments/confirm/:id", func(c *gin.Context) {
		c.Set("userId", uint(1))
		c.Next()
	}, ConfirmPayment(nil, &fakeGateway{}, services.NewHub()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments/confirm/1", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != 400 {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestPaymentWebhookBadSignature(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gateway := &fakeGateway{eventErr: errors.New("signature mismatch")}

	r := gin.New()
	r.POST("/payments/webhook", PaymentWebhook(nil, gateway, services.NewHub()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", bytes.NewBufferString(`{"type":"payment_intent.succeeded"}`))
	req.Header.Set("Stripe-Signature", "t=0,v1=bogus")
	r.ServeHTTP(w, req)

	if w.Code != 400 {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestPaymentWebhookIgnoresOtherEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gateway := &fakeGateway{event: &services.WebhookEvent{Type: "payment_intent.created"}}

	r := gin.New()
	r.POST("/payments/webhook", PaymentWebhook(nil, gateway, services.NewHub()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", bytes.NewBufferString(`{"type":"payment_intent.created"}`))
	req.Header.Set("Stripe-Signature", "t=0,v1=ok")
	r.ServeHTTP(w, req)

	// Acknowledged without touching any booking
	if w.Code != 200 {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
