// Package sparkapi implements the wallet capability surface over the Spark
// wallet gateway's HTTP JSON API.
package sparkapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mintgate/sparkd/money"
	"github.com/mintgate/sparkd/wallet"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const apiKeyHeader = "X-Api-Key"

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client, mainly for tests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	client := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		// No timeout: streaming subscriptions and wait calls are
		// cancelled through the request context by the caller.
		httpClient: &http.Client{},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// ConnectRequest initializes the gateway-side wallet session.
type ConnectRequest struct {
	Mnemonic   string
	Passphrase string
	StorageDir string
	Network    string
}

type connectDto struct {
	Mnemonic   string `json:"mnemonic"`
	Passphrase string `json:"passphrase,omitempty"`
	StorageDir string `json:"storageDir,omitempty"`
	Network    string `json:"network"`
}

// Connect establishes the wallet session on the gateway. Idempotent on the
// gateway side; safe to call on every startup.
func (c *Client) Connect(ctx context.Context, req ConnectRequest) error {
	body := connectDto{
		Mnemonic:   req.Mnemonic,
		Passphrase: req.Passphrase,
		StorageDir: req.StorageDir,
		Network:    req.Network,
	}

	return c.post(ctx, "/api/v1/connect", body, nil)
}

type clientError struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// Wire amounts are BTC decimals; everything internal is satoshis.
type paymentDto struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Fees        decimal.Decimal `json:"fees"`
	Status      string          `json:"status"`
	PaymentHash string          `json:"paymentHash,omitempty"`
	Invoice     string          `json:"invoice,omitempty"`
}

func (p *paymentDto) toPayment() (wallet.Payment, error) {
	amount, err := money.NewFromBtc(p.Amount)
	if err != nil {
		return wallet.Payment{}, fmt.Errorf("invalid payment amount %s: %w", p.Amount, err)
	}
	fees, err := money.NewFromBtc(p.Fees)
	if err != nil {
		return wallet.Payment{}, fmt.Errorf("invalid payment fees %s: %w", p.Fees, err)
	}

	return wallet.Payment{
		ID:          p.ID,
		AmountSat:   amount,
		FeeSat:      fees,
		Status:      wallet.PaymentStatus(p.Status),
		PaymentHash: p.PaymentHash,
		Invoice:     p.Invoice,
	}, nil
}

func (c *Client) GetInfo(ctx context.Context) (*wallet.Info, error) {
	var dto struct {
		Balance decimal.Decimal `json:"balance"`
	}
	if err := c.get(ctx, "/api/v1/info", &dto); err != nil {
		return nil, err
	}

	balance, err := money.NewFromBtc(dto.Balance)
	if err != nil {
		return nil, fmt.Errorf("invalid balance %s: %w", dto.Balance, err)
	}

	return &wallet.Info{BalanceSat: balance}, nil
}

func (c *Client) ReceivePayment(ctx context.Context, req *wallet.ReceivePaymentRequest) (*wallet.ReceivePaymentResponse, error) {
	body := struct {
		Description string           `json:"description"`
		Amount      *decimal.Decimal `json:"amount,omitempty"`
	}{
		Description: req.Description,
	}
	if req.AmountSat != nil {
		amount := req.AmountSat.ToBtc()
		body.Amount = &amount
	}

	var dto struct {
		PaymentRequest string `json:"paymentRequest"`
	}
	if err := c.post(ctx, "/api/v1/payments/receive", body, &dto); err != nil {
		return nil, err
	}

	return &wallet.ReceivePaymentResponse{PaymentRequest: dto.PaymentRequest}, nil
}

func (c *Client) PrepareSendPayment(ctx context.Context, req *wallet.PrepareSendRequest) (*wallet.PrepareSendResponse, error) {
	body := struct {
		PaymentRequest string           `json:"paymentRequest"`
		Amount         *decimal.Decimal `json:"amount,omitempty"`
	}{
		PaymentRequest: req.PaymentRequest,
	}
	if req.AmountSat != nil {
		amount := req.AmountSat.ToBtc()
		body.Amount = &amount
	}

	var dto struct {
		PaymentRequest string           `json:"paymentRequest"`
		Amount         decimal.Decimal  `json:"amount"`
		TransferFee    *decimal.Decimal `json:"transferFee,omitempty"`
		RoutingFee     decimal.Decimal  `json:"routingFee"`
	}
	if err := c.post(ctx, "/api/v1/payments/prepare-send", body, &dto); err != nil {
		return nil, err
	}

	amount, err := money.NewFromBtc(dto.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid prepared amount %s: %w", dto.Amount, err)
	}
	routingFee, err := money.NewFromBtc(dto.RoutingFee)
	if err != nil {
		return nil, fmt.Errorf("invalid routing fee %s: %w", dto.RoutingFee, err)
	}

	resp := &wallet.PrepareSendResponse{
		PaymentRequest: dto.PaymentRequest,
		AmountSat:      amount,
		RoutingFeeSat:  routingFee,
	}
	if dto.TransferFee != nil {
		transferFee, err := money.NewFromBtc(*dto.TransferFee)
		if err != nil {
			return nil, fmt.Errorf("invalid transfer fee %s: %w", dto.TransferFee, err)
		}
		resp.TransferFeeSat = transferFee.Ptr()
	}

	return resp, nil
}

func (c *Client) SendPayment(ctx context.Context, req *wallet.SendRequest) (*wallet.SendResponse, error) {
	body := struct {
		PaymentRequest string          `json:"paymentRequest"`
		Amount         decimal.Decimal `json:"amount"`
	}{
		PaymentRequest: req.Prepared.PaymentRequest,
		Amount:         req.Prepared.AmountSat.ToBtc(),
	}

	var dto struct {
		Payment paymentDto `json:"payment"`
	}
	if err := c.post(ctx, "/api/v1/payments/send", body, &dto); err != nil {
		return nil, err
	}

	p, err := dto.Payment.toPayment()
	if err != nil {
		return nil, err
	}

	return &wallet.SendResponse{Payment: p}, nil
}

func (c *Client) ListPayments(ctx context.Context, req *wallet.ListPaymentsRequest) ([]wallet.Payment, error) {
	path := "/api/v1/payments"
	if len(req.TypeFilter) > 0 {
		values := url.Values{}
		for _, t := range req.TypeFilter {
			values.Add("type", string(t))
		}
		path += "?" + values.Encode()
	}

	var dto struct {
		Payments []paymentDto `json:"payments"`
	}
	if err := c.get(ctx, path, &dto); err != nil {
		return nil, err
	}

	payments := make([]wallet.Payment, 0, len(dto.Payments))
	for i := range dto.Payments {
		p, err := dto.Payments[i].toPayment()
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}

	return payments, nil
}

func (c *Client) WaitForPayment(ctx context.Context, paymentRequest string) (*wallet.Payment, error) {
	body := struct {
		PaymentRequest string `json:"paymentRequest"`
	}{
		PaymentRequest: paymentRequest,
	}

	var dto paymentDto
	if err := c.post(ctx, "/api/v1/payments/wait", body, &dto); err != nil {
		return nil, err
	}

	p, err := dto.toPayment()
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request body: %w", err)
	}

	return c.do(ctx, http.MethodPost, path, bytes.NewReader(encoded), out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling gateway %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	log.WithFields(log.Fields{
		"method":   method,
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("gateway call")

	if resp.StatusCode >= 400 {
		var bodyResponse clientError
		if err := json.NewDecoder(resp.Body).Decode(&bodyResponse); err != nil {
			return fmt.Errorf("gateway %s %s failed: %d - %s", method, path, resp.StatusCode, resp.Status)
		}

		return fmt.Errorf("gateway %s %s failed: %d - %s: %s", method, path, bodyResponse.StatusCode, resp.Status, bodyResponse.Message)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding gateway response: %w", err)
	}

	return nil
}
