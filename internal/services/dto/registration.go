package dto

import "launchboard_backend/internal/models"

type RegisterRequest struct {
	Name              string `json:"name" validate:"required,min=2,max=120"`
	Email             string `json:"email" validate:"omitempty,email"`
	Phone             string `json:"phone" validate:"omitempty,e164"`
	Role              string `json:"role" validate:"required,min=2,max=30"`
	Country           string `json:"country" validate:"omitempty,max=60"`
	Sector            string `json:"sector" validate:"omitempty,max=60"`
	Currency          string `json:"currency" validate:"required,oneof=INR USD"`
	DisplayPreference string `json:"displayPreference" validate:"omitempty,oneof=standard preview live"`
	ReferredBy        string `json:"referredBy" validate:"omitempty,max=40"`

	PaymentID       string `json:"paymentId"`
	PaymentStatus   string `json:"paymentStatus"`
	PaymentProvider string `json:"paymentProvider" validate:"required,oneof=cashfree paypal none"`
}

type RegisterResponse struct {
	Success        bool         `json:"success"`
	Message        string       `json:"message"`
	UserID         string       `json:"userId"`
	ReferralCode   string       `json:"referralCode"`
	User           *models.User `json:"user"`
	PaymentPending bool         `json:"paymentPending"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,e164"`
	Username string `json:"username" validate:"omitempty,max=40"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Success      bool         `json:"success"`
	SessionToken string       `json:"-"`
	User         *models.User `json:"user"`
}
