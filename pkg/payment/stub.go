package payment

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// StubProvider is a no-op provider for development; replace with Stripe/PayPal etc.
type StubProvider struct{}

func (s *StubProvider) InitiatePayment(ctx context.Context, req PaymentRequest) (*PaymentResponse, error) {
	ref := fmt.Sprintf("stub_%d_%d", time.Now().UnixNano(), req.UserID)
	return &PaymentResponse{
		Reference:   ref,
		Status:      "PENDING",
		CheckoutURL: "",
		ExpiresAt:   time.Now().Add(req.ExpiresIn),
	}, nil
}

func (s *StubProvider) VerifyPayment(ctx context.Context, reference string) (bool, error) {
	return strings.HasPrefix(reference, "stub_"), nil
}

func (s *StubProvider) InitiatePayout(ctx context.Context, req PayoutRequest) (*PayoutResponse, error) {
	return &PayoutResponse{
		Reference: fmt.Sprintf("stub_payout_%d_%d", time.Now().UnixNano(), req.UserID),
		Status:    "PENDING",
	}, nil
}
