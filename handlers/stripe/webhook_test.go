package stripe

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"predictive-hub-backend/testutils"

	"github.com/stretchr/testify/assert"
)

func postStripeWebhook(t *testing.T, body []byte, signature string) *httptest.ResponseRecorder {
	t.Helper()

	r := testutils.SetupTestRouter()
	r.POST("/payments/stripe/webhook", StripeWebhookHandler)

	req, _ := http.NewRequest(http.MethodPost, "/payments/stripe/webhook", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("Stripe-Signature", signature)
	}
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)
	return resp
}

func TestStripeWebhook_MissingSecret(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", "")

	resp := postStripeWebhook(t, []byte(`{}`), "t=1,v1=abc")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

func TestStripeWebhook_MissingSignature(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_test")

	resp := postStripeWebhook(t, []byte(`{"type":"payment_intent.succeeded"}`), "")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestStripeWebhook_InvalidSignature(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_test")

	resp := postStripeWebhook(t, []byte(`{"type":"payment_intent.succeeded"}`), "t=1,v1=deadbeef")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
