package dto

import (
	"time"

	"launchboard_backend/internal/models"
)

type UpdatePaymentRequest struct {
	UserID          string `json:"userId" validate:"required,uuid4"`
	PaymentID       string `json:"paymentId" validate:"required"`
	PaymentProvider string `json:"paymentProvider" validate:"required,oneof=cashfree paypal"`
}

type UpdatePaymentResponse struct {
	Success            bool                      `json:"success"`
	Message            string                    `json:"message"`
	SubscriptionStatus models.SubscriptionStatus `json:"subscriptionStatus"`
}

type CompletePendingRequest struct {
	UserID          string `json:"userId" validate:"required,uuid4"`
	PaymentID       string `json:"paymentId" validate:"required"`
	PaymentProvider string `json:"paymentProvider" validate:"required,oneof=cashfree paypal"`
}

type CompletePendingResponse struct {
	Success            bool                      `json:"success"`
	Message            string                    `json:"message"`
	SubscriptionStatus models.SubscriptionStatus `json:"subscriptionStatus"`
	ReferralSettled    bool                      `json:"referralSettled"`
	DelayBonusAmount   float64                   `json:"delayBonusAmount,omitempty"`
	DelayBonusPercent  float64                   `json:"delayBonusPercent,omitempty"`
}

type PendingStatusResponse struct {
	Status            models.PaymentIntentStatus `json:"status"`
	Amount            float64                    `json:"amount"`
	Currency          string                     `json:"currency"`
	GlitchFlaggedAt   *time.Time                 `json:"glitchFlaggedAt,omitempty"`
	DelayBonusPercent float64                    `json:"delayBonusPercent,omitempty"`
	DelayBonusAmount  float64                    `json:"delayBonusAmount,omitempty"`
}

type VerifyIntentRequest struct {
	Approve    bool   `json:"approve"`
	PaymentRef string `json:"paymentRef" validate:"omitempty,max=120"`
	FailReason string `json:"failReason" validate:"omitempty,max=250"`
}
