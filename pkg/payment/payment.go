package payment

import (
	"context"
	"time"
)

// PaymentRequest describes a wallet top-up to initiate with a provider.
type PaymentRequest struct {
	UserID         uint
	AmountCents    int64
	Currency       string
	IdempotencyKey string
	Description    string
	ExpiresIn      time.Duration
	CustomerEmail  string
	CallbackURL    string
}

type PaymentResponse struct {
	Reference   string
	Status      string
	CheckoutURL string
	ExpiresAt   time.Time
}

// PayoutRequest describes a creator withdrawal to push through a provider.
type PayoutRequest struct {
	UserID      uint
	OrderID     string
	AmountCents int64
	Currency    string
	Destination string // provider-specific account reference
}

type PayoutResponse struct {
	Reference string
	Status    string
}

type Provider interface {
	InitiatePayment(ctx context.Context, req PaymentRequest) (*PaymentResponse, error)
	VerifyPayment(ctx context.Context, reference string) (bool, error)
	InitiatePayout(ctx context.Context, req PayoutRequest) (*PayoutResponse, error)
}
