package gateways

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"launchboard_backend/internal/logger"
	"launchboard_backend/internal/models"
)

// PayPalGateway verifies USD payments against the PayPal Orders API.
type PayPalGateway struct {
	ClientID string
	Secret   string
	BaseURL  string
	Client   *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewPayPalGateway(clientID, secret, baseURL string) *PayPalGateway {
	return &PayPalGateway{
		ClientID: clientID,
		Secret:   secret,
		BaseURL:  baseURL,
		Client:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *PayPalGateway) Provider() models.PaymentProvider {
	return models.ProviderPayPal
}

func (g *PayPalGateway) ExpectedCurrency() string {
	return "USD"
}

type paypalAmount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type paypalPurchaseUnit struct {
	Amount paypalAmount `json:"amount"`
}

// paypalOrder models the order payload explicitly instead of walking an
// untyped blob. status: CREATED, APPROVED, COMPLETED, VOIDED.
type paypalOrder struct {
	ID            string               `json:"id"`
	Status        string               `json:"status"`
	PurchaseUnits []paypalPurchaseUnit `json:"purchase_units"`
}

type paypalTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

func (g *PayPalGateway) token(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.accessToken != "" && time.Now().Before(g.tokenExpiry) {
		return g.accessToken, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.BaseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(g.ClientID, g.Secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("paypal token request failed with status %d", resp.StatusCode)
	}

	var tr paypalTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", err
	}

	g.accessToken = tr.AccessToken
	// Refresh a minute early.
	g.tokenExpiry = time.Now().Add(time.Duration(tr.ExpiresIn-60) * time.Second)
	return g.accessToken, nil
}

func (g *PayPalGateway) VerifyPaymentByID(ctx context.Context, paymentID string) VerificationResult {
	if g.ClientID == "" || g.Secret == "" {
		logger.CtxWarn(ctx, "paypal credentials not configured")
		return errorResult()
	}

	token, err := g.token(ctx)
	if err != nil {
		logger.CtxWithError(ctx, "paypal token fetch failed", err)
		return errorResult()
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		g.BaseURL+"/v2/checkout/orders/"+paymentID, nil)
	if err != nil {
		return errorResult()
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.Client.Do(req)
	logger.GatewayLog("paypal", "get_order", time.Since(start), err)
	if err != nil {
		return errorResult()
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return VerificationResult{Success: false, Status: StatusNotFound}
	}
	if resp.StatusCode != http.StatusOK {
		logger.CtxWarn(ctx, "paypal order lookup failed", "status", resp.StatusCode)
		return errorResult()
	}

	var order paypalOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		logger.CtxWithError(ctx, "paypal order decode failed", err)
		return errorResult()
	}

	switch order.Status {
	case "COMPLETED":
		if len(order.PurchaseUnits) == 0 {
			return errorResult()
		}
		amount, err := strconv.ParseFloat(order.PurchaseUnits[0].Amount.Value, 64)
		if err != nil {
			return errorResult()
		}
		return VerificationResult{
			Success:  true,
			Status:   StatusPaid,
			Amount:   amount,
			Currency: order.PurchaseUnits[0].Amount.CurrencyCode,
		}
	case "CREATED", "APPROVED":
		return VerificationResult{Success: false, Status: StatusPending}
	default:
		return VerificationResult{Success: false, Status: StatusFailed}
	}
}
