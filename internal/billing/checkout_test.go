package billing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/editflowhq/editflow/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCheckout_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/create-checkout", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req checkoutRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "pro", req.Plan)
		assert.Equal(t, "sam@example.com", req.Email)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(checkoutResponse{CheckoutURL: "https://pay.example.com/session/abc"})
	}))
	defer srv.Close()

	client := NewCheckoutClient(srv.URL)
	session, err := client.CreateCheckout(context.Background(), CheckoutRequest{
		Plan:  domain.TierPro,
		Email: "sam@example.com",
		Name:  "Sam",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/session/abc", session.URL)
}

func TestCreateCheckout_TrailingSlashEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/create-checkout", r.URL.Path)
		json.NewEncoder(w).Encode(checkoutResponse{CheckoutURL: "https://pay.example.com/x"})
	}))
	defer srv.Close()

	client := NewCheckoutClient(srv.URL + "/")
	_, err := client.CreateCheckout(context.Background(), CheckoutRequest{Plan: domain.TierPro})
	require.NoError(t, err)
}

func TestCreateCheckout_Declined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(checkoutResponse{Error: "unknown plan"})
	}))
	defer srv.Close()

	client := NewCheckoutClient(srv.URL)
	_, err := client.CreateCheckout(context.Background(), CheckoutRequest{Plan: "platinum"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCheckoutDeclined)
	assert.Contains(t, err.Error(), "unknown plan")
}

func TestCreateCheckout_ErrorFieldWithOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(checkoutResponse{Error: "billing disabled"})
	}))
	defer srv.Close()

	client := NewCheckoutClient(srv.URL)
	_, err := client.CreateCheckout(context.Background(), CheckoutRequest{Plan: domain.TierPro})

	assert.ErrorIs(t, err, ErrCheckoutDeclined)
}

func TestCreateCheckout_HTMLResponseIsBadGateway(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("<!doctype html><html><body>not found</body></html>"))
	}))
	defer srv.Close()

	client := NewCheckoutClient(srv.URL)
	_, err := client.CreateCheckout(context.Background(), CheckoutRequest{Plan: domain.TierPro})

	assert.ErrorIs(t, err, ErrBadGateway)
}

func TestCreateCheckout_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewCheckoutClient(srv.URL)
	_, err := client.CreateCheckout(context.Background(), CheckoutRequest{Plan: domain.TierPro})

	assert.ErrorIs(t, err, ErrServiceUnavailable)
}
