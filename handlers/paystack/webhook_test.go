package paystack

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"predictive-hub-backend/payment"
	"predictive-hub-backend/testutils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

const testSecret = "sk_test_webhook_secret"

func TestMain(m *testing.M) {
	testutils.InitTestMain()

	log.SetOutput(io.Discard)

	exitCode := m.Run()

	log.SetOutput(os.Stdout)

	os.Exit(exitCode)
}

func postWebhook(t *testing.T, body []byte, signature string) *httptest.ResponseRecorder {
	t.Helper()

	r := testutils.SetupTestRouter()
	r.POST("/payments/paystack/webhook", PaystackWebhookHandler)

	req, _ := http.NewRequest(http.MethodPost, "/payments/paystack/webhook", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("x-paystack-signature", signature)
	}
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)
	return resp
}

func TestWebhook_MissingSignature(t *testing.T) {
	t.Setenv("PAYSTACK_SECRET_KEY", testSecret)

	resp := postWebhook(t, []byte(`{"event":"charge.success"}`), "")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestWebhook_InvalidSignature(t *testing.T) {
	t.Setenv("PAYSTACK_SECRET_KEY", testSecret)

	resp := postWebhook(t, []byte(`{"event":"charge.success"}`), "deadbeef")

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestWebhook_UnknownEventAcknowledged(t *testing.T) {
	t.Setenv("PAYSTACK_SECRET_KEY", testSecret)

	body := []byte(`{"event":"subscription.create","data":{}}`)
	sig := payment.ComputeSignature(testSecret, body)

	resp := postWebhook(t, body, sig)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "Event ignored", respBody["message"])
}

func TestWebhook_ChargeSuccess_Settles(t *testing.T) {
	t.Setenv("PAYSTACK_SECRET_KEY", testSecret)

	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	userID := "abc12345-e89b-12d3-a456-426614174000"
	reference := "PSK_1717000000_abcdef123456"

	mock.ExpectQuery(`SELECT (.+) FROM "payments" WHERE reference = (.+)`).
		WithArgs(reference, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "reference", "user_id", "amount", "currency", "provider", "status"}).
			AddRow("pay-1", reference, userID, 5000, "usd", "PAYSTACK", "PENDING"))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "payments" SET (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = (.+)`).
		WithArgs(userID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role", "subscription_status"}).
			AddRow(userID, "user@example.com", "GUEST", "INACTIVE"))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	body := []byte(`{"event":"charge.success","data":{"reference":"` + reference + `","amount":5000,"currency":"usd","metadata":{"user_id":"` + userID + `","plan_name":"Investor"},"customer":{"customer_code":"CUS_abc123"}}}`)
	sig := payment.ComputeSignature(testSecret, body)

	resp := postWebhook(t, body, sig)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhook_ChargeSuccess_ReplayIsNoOp(t *testing.T) {
	t.Setenv("PAYSTACK_SECRET_KEY", testSecret)

	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	userID := "abc12345-e89b-12d3-a456-426614174000"
	reference := "PSK_1717000000_abcdef123456"

	// The record is already completed, no update may follow
	mock.ExpectQuery(`SELECT (.+) FROM "payments" WHERE reference = (.+)`).
		WithArgs(reference, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "reference", "user_id", "amount", "currency", "provider", "status"}).
			AddRow("pay-1", reference, userID, 5000, "usd", "PAYSTACK", "COMPLETED"))

	body := []byte(`{"event":"charge.success","data":{"reference":"` + reference + `","amount":5000,"currency":"usd","metadata":{"user_id":"` + userID + `","plan_name":"Investor"},"customer":{"customer_code":"CUS_abc123"}}}`)
	sig := payment.ComputeSignature(testSecret, body)

	resp := postWebhook(t, body, sig)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "Payment already settled", respBody["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhook_ChargeSuccess_MissingUserID(t *testing.T) {
	t.Setenv("PAYSTACK_SECRET_KEY", testSecret)

	body := []byte(`{"event":"charge.success","data":{"reference":"PSK_1_abc","amount":5000,"metadata":{"plan_name":"Investor"},"customer":{}}}`)
	sig := payment.ComputeSignature(testSecret, body)

	resp := postWebhook(t, body, sig)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestWebhook_ChargeSuccess_PaymentNotFound(t *testing.T) {
	t.Setenv("PAYSTACK_SECRET_KEY", testSecret)

	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "payments" WHERE reference = (.+)`).
		WillReturnError(gorm.ErrRecordNotFound)

	body := []byte(`{"event":"charge.success","data":{"reference":"PSK_unknown","amount":5000,"metadata":{"user_id":"u1","plan_name":"Pro"},"customer":{}}}`)
	sig := payment.ComputeSignature(testSecret, body)

	resp := postWebhook(t, body, sig)

	// 500 so the processor retries the delivery
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

func TestWebhook_ChargeFailed_MarksPaymentFailed(t *testing.T) {
	t.Setenv("PAYSTACK_SECRET_KEY", testSecret)

	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	reference := "PSK_1717000000_abcdef123456"

	mock.ExpectQuery(`SELECT (.+) FROM "payments" WHERE reference = (.+)`).
		WithArgs(reference, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "reference", "user_id", "status"}).
			AddRow("pay-1", reference, "u1", "PENDING"))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "payments" SET (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	body := []byte(`{"event":"charge.failed","data":{"reference":"` + reference + `","amount":5000,"metadata":{"user_id":"u1"},"customer":{}}}`)
	sig := payment.ComputeSignature(testSecret, body)

	resp := postWebhook(t, body, sig)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhook_ChargeFailed_CompletedNotDemoted(t *testing.T) {
	t.Setenv("PAYSTACK_SECRET_KEY", testSecret)

	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	reference := "PSK_1717000000_abcdef123456"

	mock.ExpectQuery(`SELECT (.+) FROM "payments" WHERE reference = (.+)`).
		WithArgs(reference, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "reference", "user_id", "status"}).
			AddRow("pay-1", reference, "u1", "COMPLETED"))

	body := []byte(`{"event":"charge.failed","data":{"reference":"` + reference + `","amount":5000,"metadata":{},"customer":{}}}`)
	sig := payment.ComputeSignature(testSecret, body)

	resp := postWebhook(t, body, sig)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
