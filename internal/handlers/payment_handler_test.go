package handlers_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"testing"

	"launchboard_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signWebhook(secret, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestCashfreeWebhook_ValidSignatureAccepted(t *testing.T) {
	app := newTestApp(t)

	body := []byte(`{"type":"PAYMENT_SUCCESS_WEBHOOK","data":{"order":{"order_id":"order_1"}}}`)
	timestamp := "1756600000"

	rec := app.doRaw(t, http.MethodPost, "/api/cashfree/webhook", body, map[string]string{
		"x-webhook-timestamp": timestamp,
		"x-webhook-signature": signWebhook(webhookTestSecret, timestamp, body),
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, decodeBody(t, rec)["success"])
}

func TestCashfreeWebhook_TamperedSignatureIs401(t *testing.T) {
	app := newTestApp(t)

	body := []byte(`{"type":"PAYMENT_SUCCESS_WEBHOOK"}`)
	timestamp := "1756600000"
	signature := signWebhook(webhookTestSecret, timestamp, append(body, ' '))

	rec := app.doRaw(t, http.MethodPost, "/api/cashfree/webhook", body, map[string]string{
		"x-webhook-timestamp": timestamp,
		"x-webhook-signature": signature,
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())
}

func TestPendingStatus_RequiresSession(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/api/payment/pending-status", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())
}

func TestListIntents_AdminOnly(t *testing.T) {
	app := newTestApp(t)

	member := createUser(t, app.db, nil)
	rec := app.do(t, http.MethodGet, "/api/admin/payment-intents", nil, sessionCookie(t, member))
	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())

	admin := createUser(t, app.db, func(u *models.User) {
		u.IsAdmin = true
	})
	rec = app.do(t, http.MethodGet, "/api/admin/payment-intents", nil, sessionCookie(t, admin))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	assert.Contains(t, body, "intents")
	assert.Equal(t, float64(0), body["total"])
}
