package sparkapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mintgate/sparkd/money"
	"github.com/mintgate/sparkd/wallet"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(server.URL, "test-api-key", WithHTTPClient(server.Client()))
}

func TestGetInfo(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/v1/info", r.URL.Path)
		require.Equal(t, "test-api-key", r.Header.Get("X-Api-Key"))

		_, _ = w.Write([]byte(`{"balance": "0.00021000"}`))
	})

	info, err := client.GetInfo(context.Background())
	require.NoError(t, err)
	require.Equal(t, money.Money(21_000), info.BalanceSat)
}

func TestReceivePayment(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/payments/receive", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "a cup of coffee", body["description"])
		require.Equal(t, "0.00001", body["amount"])

		_, _ = w.Write([]byte(`{"paymentRequest": "lnbcrt10u1..."}`))
	})

	amount := money.Money(1000)
	resp, err := client.ReceivePayment(context.Background(), &wallet.ReceivePaymentRequest{
		Description: "a cup of coffee",
		AmountSat:   &amount,
	})
	require.NoError(t, err)
	require.Equal(t, "lnbcrt10u1...", resp.PaymentRequest)
}

func TestReceivePaymentOpenAmount(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.NotContains(t, body, "amount")

		_, _ = w.Write([]byte(`{"paymentRequest": "lnbcrt1..."}`))
	})

	resp, err := client.ReceivePayment(context.Background(), &wallet.ReceivePaymentRequest{Description: "Payment"})
	require.NoError(t, err)
	require.Equal(t, "lnbcrt1...", resp.PaymentRequest)
}

func TestPrepareSendPayment(t *testing.T) {
	t.Run("with transfer fee", func(t *testing.T) {
		client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/v1/payments/prepare-send", r.URL.Path)

			_, _ = w.Write([]byte(`{
				"paymentRequest": "lnbcrt10u1...",
				"amount": "0.00001000",
				"transferFee": "0.00000002",
				"routingFee": "0.00000005"
			}`))
		})

		resp, err := client.PrepareSendPayment(context.Background(), &wallet.PrepareSendRequest{PaymentRequest: "lnbcrt10u1..."})
		require.NoError(t, err)
		require.Equal(t, money.Money(1000), resp.AmountSat)
		require.Equal(t, money.Money(5), resp.RoutingFeeSat)
		require.NotNil(t, resp.TransferFeeSat)
		require.Equal(t, money.Money(2), *resp.TransferFeeSat)
	})

	t.Run("without transfer fee", func(t *testing.T) {
		client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{
				"paymentRequest": "lnbcrt10u1...",
				"amount": "0.00001000",
				"routingFee": "0.00000005"
			}`))
		})

		resp, err := client.PrepareSendPayment(context.Background(), &wallet.PrepareSendRequest{PaymentRequest: "lnbcrt10u1..."})
		require.NoError(t, err)
		require.Nil(t, resp.TransferFeeSat)
	})
}

func TestSendPayment(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/payments/send", r.URL.Path)

		_, _ = w.Write([]byte(`{
			"payment": {
				"id": "payment-1",
				"amount": "0.00001000",
				"fees": "0.00000005",
				"status": "completed",
				"paymentHash": "d78a8ba8b6251027f37fd6febff0315f2d45be831ba313fb23c6e03a2abe3ca5"
			}
		}`))
	})

	resp, err := client.SendPayment(context.Background(), &wallet.SendRequest{
		Prepared: wallet.PrepareSendResponse{PaymentRequest: "lnbcrt10u1...", AmountSat: 1000},
	})
	require.NoError(t, err)
	require.Equal(t, "payment-1", resp.Payment.ID)
	require.Equal(t, money.Money(1000), resp.Payment.AmountSat)
	require.Equal(t, money.Money(5), resp.Payment.FeeSat)
	require.Equal(t, wallet.PaymentCompleted, resp.Payment.Status)
}

func TestListPayments(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/payments", r.URL.Path)
		require.Equal(t, "send", r.URL.Query().Get("type"))

		_, _ = w.Write([]byte(`{
			"payments": [
				{"id": "a", "amount": "0.00001000", "fees": "0", "status": "completed"},
				{"id": "b", "amount": "0.00002000", "fees": "0.00000001", "status": "pending"}
			]
		}`))
	})

	payments, err := client.ListPayments(context.Background(), &wallet.ListPaymentsRequest{
		TypeFilter: []wallet.PaymentType{wallet.PaymentTypeSend},
	})
	require.NoError(t, err)
	require.Len(t, payments, 2)
	require.Equal(t, money.Money(2000), payments[1].AmountSat)
	require.Equal(t, wallet.PaymentPending, payments[1].Status)
}

func TestGatewayErrorDecoding(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"statusCode": 404, "message": "payment not found"}`))
	})

	_, err := client.WaitForPayment(context.Background(), "lnbcrt10u1...")
	require.Error(t, err)
	require.Contains(t, err.Error(), "payment not found")
}

func TestSubscribeEvents(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/events", r.URL.Path)
		require.Equal(t, "test-api-key", r.Header.Get("X-Api-Key"))

		flusher, ok := w.(http.Flusher)
		require.True(t, ok)

		_, _ = w.Write([]byte(`{"kind": "synced", "payment": {"id": "", "amount": "0", "fees": "0", "status": ""}}` + "\n"))
		_, _ = w.Write([]byte(`not json` + "\n"))
		_, _ = w.Write([]byte(`{"kind": "payment_succeeded", "payment": {"id": "payment-1", "amount": "0.00001000", "fees": "0.00000003", "status": "completed"}}` + "\n"))
		flusher.Flush()
	})

	sub, err := client.SubscribeEvents(context.Background())
	require.NoError(t, err)
	defer sub.Close()

	first := receiveNotification(t, sub.Events())
	require.Equal(t, wallet.KindSynced, first.Kind)

	// The undecodable line is skipped, not fatal.
	second := receiveNotification(t, sub.Events())
	require.Equal(t, wallet.KindPaymentSucceeded, second.Kind)
	require.Equal(t, "payment-1", second.Payment.ID)
	require.Equal(t, money.Money(1000), second.Payment.AmountSat)
	require.Equal(t, money.Money(3), second.Payment.FeeSat)

	// The handler returned, so the stream ends and the channel closes.
	select {
	case _, ok := <-sub.Events():
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the stream to close")
	}
}

func TestSubscribeEventsRejectedByGateway(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.SubscribeEvents(context.Background())
	require.Error(t, err)
}

func receiveNotification(t *testing.T, events <-chan wallet.Notification) wallet.Notification {
	t.Helper()

	select {
	case n, ok := <-events:
		require.True(t, ok, "notification stream closed unexpectedly")

		return n
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a notification")

		return wallet.Notification{}
	}
}
