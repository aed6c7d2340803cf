package payment

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const paystackAPIBase = "https://api.paystack.co"

// PaystackClient wraps the Paystack REST API. The secret key doubles as the
// webhook signing secret, which is how Paystack works.
type PaystackClient struct {
	secretKey  string
	apiBase    string
	httpClient *http.Client
}

func NewPaystackClient() *PaystackClient {
	return &PaystackClient{
		secretKey: os.Getenv("PAYSTACK_SECRET_KEY"),
		apiBase:   paystackAPIBase,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewPaystackClientWithBase is used by tests to point the client at a fake server.
func NewPaystackClientWithBase(secretKey string, apiBase string) *PaystackClient {
	return &PaystackClient{
		secretKey:  secretKey,
		apiBase:    apiBase,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type InitializeTransactionRequest struct {
	Email       string            `json:"email"`
	Amount      int               `json:"amount"`
	Currency    string            `json:"currency,omitempty"`
	Reference   string            `json:"reference"`
	CallbackURL string            `json:"callback_url,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type initializeTransactionResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

// InitializeTransaction asks Paystack for an authorization URL the client
// redirects to. The reference must be unique, it correlates the transaction
// with the webhook that settles it.
func (p *PaystackClient) InitializeTransaction(req InitializeTransactionRequest) (authorizationURL string, err error) {
	if p.secretKey == "" {
		return "", fmt.Errorf("PAYSTACK_SECRET_KEY is required in environment variables")
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("error encoding transaction request: %v", err)
	}

	httpReq, err := http.NewRequest("POST", p.apiBase+"/transaction/initialize", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("error creating request: %v", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.secretKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("error making request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("paystack API error: status=%d", resp.StatusCode)
	}

	var apiResp initializeTransactionResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("error decoding response: %v", err)
	}
	if !apiResp.Status {
		return "", fmt.Errorf("paystack API refused the transaction: %s", apiResp.Message)
	}

	return apiResp.Data.AuthorizationURL, nil
}

// ComputeSignature returns the hex HMAC-SHA512 of the raw body under secret.
func ComputeSignature(secret string, rawBody []byte) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(rawBody)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a webhook signature against the raw body exactly as
// received. Re-serializing parsed JSON before verifying would break on key
// order or whitespace differences.
func VerifySignature(secret string, rawBody []byte, signature string) bool {
	expected := ComputeSignature(secret, rawBody)
	return hmac.Equal([]byte(signature), []byte(expected))
}

// Event is the webhook envelope. Data stays raw until the event type is
// known; unrecognized events are acknowledged without parsing further.
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

const (
	EventChargeSuccess = "charge.success"
	EventChargeFailed  = "charge.failed"
)

// ChargeData is the payload of charge.success and charge.failed events.
type ChargeData struct {
	Reference string            `json:"reference"`
	Amount    int               `json:"amount"`
	Currency  string            `json:"currency"`
	Metadata  map[string]string `json:"metadata"`
	Customer  struct {
		Email        string `json:"email"`
		CustomerCode string `json:"customer_code"`
	} `json:"customer"`
}
