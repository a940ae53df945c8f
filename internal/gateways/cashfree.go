package gateways

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"launchboard_backend/internal/logger"
	"launchboard_backend/internal/models"
)

// CashfreeGateway verifies INR card/UPI payments against the Cashfree PG
// order API.
type CashfreeGateway struct {
	AppID         string
	SecretKey     string
	WebhookSecret string
	BaseURL       string
	Client        *http.Client
}

func NewCashfreeGateway(appID, secretKey, webhookSecret, baseURL string) *CashfreeGateway {
	return &CashfreeGateway{
		AppID:         appID,
		SecretKey:     secretKey,
		WebhookSecret: webhookSecret,
		BaseURL:       baseURL,
		Client:        &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *CashfreeGateway) Provider() models.PaymentProvider {
	return models.ProviderCashfree
}

func (g *CashfreeGateway) ExpectedCurrency() string {
	return "INR"
}

// cashfreeOrder is the subset of the order payload the verification path
// needs. order_status: PAID, ACTIVE, EXPIRED, TERMINATED.
type cashfreeOrder struct {
	OrderID       string  `json:"order_id"`
	OrderStatus   string  `json:"order_status"`
	OrderAmount   float64 `json:"order_amount"`
	OrderCurrency string  `json:"order_currency"`
}

func (g *CashfreeGateway) VerifyPaymentByID(ctx context.Context, paymentID string) VerificationResult {
	if g.AppID == "" || g.SecretKey == "" {
		logger.CtxWarn(ctx, "cashfree credentials not configured")
		return errorResult()
	}

	start := time.Now()
	url := fmt.Sprintf("%s/orders/%s", g.BaseURL, paymentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errorResult()
	}
	req.Header.Set("x-client-id", g.AppID)
	req.Header.Set("x-client-secret", g.SecretKey)
	req.Header.Set("x-api-version", "2023-08-01")

	resp, err := g.Client.Do(req)
	logger.GatewayLog("cashfree", "get_order", time.Since(start), err)
	if err != nil {
		return errorResult()
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return VerificationResult{Success: false, Status: StatusNotFound}
	}
	if resp.StatusCode != http.StatusOK {
		logger.CtxWarn(ctx, "cashfree order lookup failed", "status", resp.StatusCode)
		return errorResult()
	}

	var order cashfreeOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		logger.CtxWithError(ctx, "cashfree order decode failed", err)
		return errorResult()
	}

	switch order.OrderStatus {
	case "PAID":
		return VerificationResult{
			Success:  true,
			Status:   StatusPaid,
			Amount:   order.OrderAmount,
			Currency: order.OrderCurrency,
		}
	case "ACTIVE":
		return VerificationResult{Success: false, Status: StatusPending}
	default:
		return VerificationResult{Success: false, Status: StatusFailed}
	}
}

// VerifyWebhookSignature checks the x-webhook-signature header: base64 of
// HMAC-SHA256 over timestamp + raw body. Returns true when no secret is
// configured so unconfigured environments keep accepting webhooks.
func (g *CashfreeGateway) VerifyWebhookSignature(timestamp string, body []byte, signature string) bool {
	if g.WebhookSecret == "" {
		return true
	}

	mac := hmac.New(sha256.New, []byte(g.WebhookSecret))
	mac.Write([]byte(timestamp))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
