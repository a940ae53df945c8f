package gateways

import (
	"context"

	"launchboard_backend/internal/models"
)

// Verification status values surfaced to the registration flow.
const (
	StatusPaid              = "PAID"
	StatusPending           = "PENDING"
	StatusFailed            = "FAILED"
	StatusNotFound          = "NOT_FOUND"
	StatusVerificationError = "VERIFICATION_ERROR"
)

// VerificationResult is the gateway-neutral outcome of verifying a payment
// id. Amount/Currency are only meaningful when Success is true.
type VerificationResult struct {
	Success  bool    `json:"success"`
	Status   string  `json:"status"`
	Amount   float64 `json:"amount,omitempty"`
	Currency string  `json:"currency,omitempty"`
}

// Gateway verifies payments with one external processor. Implementations must
// not return an error for gateway failures: the registration flow degrades to
// pending-payment instead of crashing, so failures come back as
// {Success:false, Status:StatusVerificationError}.
type Gateway interface {
	Provider() models.PaymentProvider
	// ExpectedCurrency is the single currency this gateway settles in.
	ExpectedCurrency() string
	VerifyPaymentByID(ctx context.Context, paymentID string) VerificationResult
}

// Registry resolves a gateway by provider name.
type Registry struct {
	gateways map[models.PaymentProvider]Gateway
}

func NewRegistry(gws ...Gateway) *Registry {
	registry := &Registry{gateways: make(map[models.PaymentProvider]Gateway)}
	for _, gw := range gws {
		registry.gateways[gw.Provider()] = gw
	}
	return registry
}

func (r *Registry) Get(provider models.PaymentProvider) (Gateway, bool) {
	gw, ok := r.gateways[provider]
	return gw, ok
}

func errorResult() VerificationResult {
	return VerificationResult{Success: false, Status: StatusVerificationError}
}
