package stripepay

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient("sk_test_123")
	client.BaseURL = server.URL
	return client, server
}

func TestCreateSubscriptionCheckout(t *testing.T) {
	client, server := testClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "subscription", r.PostForm.Get("mode"))
		assert.Equal(t, "price_abc", r.PostForm.Get("line_items[0][price]"))
		assert.Equal(t, "guide@example.com", r.PostForm.Get("customer_email"))
		assert.Equal(t, "g-1", r.PostForm.Get("metadata[guide_id]"))

		w.Write([]byte(`{"id":"cs_1","url":"https://checkout.stripe.com/pay/cs_1","status":"open"}`))
	})
	defer server.Close()

	session, err := client.CreateSubscriptionCheckout(
		"price_abc", "guide@example.com",
		"https://app.example.com/ok", "https://app.example.com/cancel",
		map[string]string{"guide_id": "g-1"},
	)
	require.NoError(t, err)
	assert.Equal(t, "cs_1", session.ID)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_1", session.URL)
}

func TestGetSubscription(t *testing.T) {
	client, server := testClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/subscriptions/sub_1", r.URL.Path)
		w.Write([]byte(`{"id":"sub_1","status":"active","current_period_end":1764547200}`))
	})
	defer server.Close()

	sub, err := client.GetSubscription("sub_1")
	require.NoError(t, err)
	assert.Equal(t, "active", sub.Status)
	assert.Equal(t, int64(1764547200), sub.CurrentPeriodEnd)
}

func TestCancelSubscriptionSendsPeriodEnd(t *testing.T) {
	client, server := testClient(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "true", r.PostForm.Get("cancel_at_period_end"))
		w.Write([]byte(`{"id":"sub_1","status":"active","cancel_at_period_end":true}`))
	})
	defer server.Close()

	sub, err := client.CancelSubscription("sub_1")
	require.NoError(t, err)
	assert.True(t, sub.CancelAtPeriodEnd)
}

func TestAPIErrorEnvelope(t *testing.T) {
	client, server := testClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"type":"card_error","code":"card_declined","message":"Your card was declined."}}`))
	})
	defer server.Close()

	_, err := client.GetSubscription("sub_1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "card_error")
	assert.Contains(t, err.Error(), "Your card was declined.")
}
