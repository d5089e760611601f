package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindCompleteRequest(t *testing.T, body string) (CompleteBookingRequest, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req CompleteBookingRequest
	err := c.ShouldBindJSON(&req)
	return req, err
}

// A venue can legitimately report zero spend, e.g. a fully comped visit.
// Zero must bind as a present value, not as a missing field.
func TestCompleteBookingRequestAcceptsZeroSpend(t *testing.T) {
	req, err := bindCompleteRequest(t, `{"actual_spend": 0}`)

	require.NoError(t, err)
	require.NotNil(t, req.ActualSpend)
	assert.Equal(t, int64(0), *req.ActualSpend)
}

func TestCompleteBookingRequestBindsSpend(t *testing.T) {
	req, err := bindCompleteRequest(t, `{"actual_spend": 1000000}`)

	require.NoError(t, err)
	require.NotNil(t, req.ActualSpend)
	assert.Equal(t, int64(1_000_000), *req.ActualSpend)
}

func TestCompleteBookingRequestRejectsMissingSpend(t *testing.T) {
	_, err := bindCompleteRequest(t, `{}`)

	assert.Error(t, err)
}
