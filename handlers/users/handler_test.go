package users

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"predictive-hub-backend/testutils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()

	log.SetOutput(io.Discard)

	exitCode := m.Run()

	log.SetOutput(os.Stdout)

	os.Exit(exitCode)
}

func TestGetMe_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	userID := "abc12345-e89b-12d3-a456-426614174000"

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = (.+)`).
		WithArgs(userID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role", "subscription_status"}).
			AddRow(userID, "test@example.com", "INVESTOR", "ACTIVE"))

	r := testutils.SetupTestRouter()
	r.GET("/users/me", func(c *gin.Context) {
		c.Set("user_id", userID)
		GetMe(c)
	})

	req, _ := http.NewRequest(http.MethodGet, "/users/me", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "test@example.com", respBody["email"])
	assert.Equal(t, "INVESTOR", respBody["role"])
	assert.Equal(t, "ACTIVE", respBody["subscriptionStatus"])
}

func TestGetMe_Unauthenticated(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.GET("/users/me", GetMe)

	req, _ := http.NewRequest(http.MethodGet, "/users/me", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestGetMyPayments_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	userID := "abc12345-e89b-12d3-a456-426614174000"

	mock.ExpectQuery(`SELECT (.+) FROM "payments" WHERE user_id = (.+)`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "reference", "user_id", "amount", "status"}).
			AddRow("pay-1", "PSK_1_abc", userID, 5000, "COMPLETED").
			AddRow("pay-2", "pi_123", userID, 2500, "PENDING"))

	r := testutils.SetupTestRouter()
	r.GET("/users/me/payments", func(c *gin.Context) {
		c.Set("user_id", userID)
		GetMyPayments(c)
	})

	req, _ := http.NewRequest(http.MethodGet, "/users/me/payments", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var payments []map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &payments)
	assert.Len(t, payments, 2)
	assert.Equal(t, "PSK_1_abc", payments[0]["reference"])
}
