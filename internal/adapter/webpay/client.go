package webpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/sxtvrno/storefront/internal/domain/model"
)

// GatewayError reports a transport failure or malformed response from the
// payment gateway. A business rejection on commit is not a GatewayError.
type GatewayError struct {
	Operation  string
	StatusCode int
	Message    string
}

func (e *GatewayError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gateway %s failed: status %d: %s", e.Operation, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("gateway %s failed: %s", e.Operation, e.Message)
}

// Client exposes the three-call contract of the card payment gateway.
type Client interface {
	Create(ctx context.Context, buyOrder, sessionID string, amount int64, returnURL string) (*model.GatewayCreateResponse, error)
	Commit(ctx context.Context, token string) (*model.GatewayCommitResponse, error)
	Refund(ctx context.Context, token string, amount int64) (*model.GatewayRefundResponse, error)
}

// HTTPClient implements Client against a Webpay-style REST API.
type HTTPClient struct {
	baseURL      *url.URL
	commerceCode string
	apiKey       string
	httpClient   *http.Client
	logger       *slog.Logger
}

type createRequest struct {
	BuyOrder  string `json:"buy_order"`
	SessionID string `json:"session_id"`
	Amount    int64  `json:"amount"`
	ReturnURL string `json:"return_url"`
}

type createResponse struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

type commitResponse struct {
	Status            string `json:"status"`
	BuyOrder          string `json:"buy_order"`
	SessionID         string `json:"session_id"`
	Amount            int64  `json:"amount"`
	AuthorizationCode string `json:"authorization_code"`
	ResponseCode      int    `json:"response_code"`
	TransactionDate   string `json:"transaction_date"`
}

type refundRequest struct {
	Amount int64 `json:"amount"`
}

type refundResponse struct {
	Type              string `json:"type"`
	AuthorizationCode string `json:"authorization_code"`
	NullifiedAmount   int64  `json:"nullified_amount"`
	Balance           int64  `json:"balance"`
}

// NewHTTPClient creates an HTTP gateway client with default timeout.
func NewHTTPClient(baseURL, commerceCode, apiKey string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}
	return &HTTPClient{
		baseURL:      parsed,
		commerceCode: commerceCode,
		apiKey:       apiKey,
		logger:       logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Create opens a remote transaction and returns the redirect token and URL.
func (c *HTTPClient) Create(ctx context.Context, buyOrder, sessionID string, amount int64, returnURL string) (*model.GatewayCreateResponse, error) {
	var data createResponse
	err := c.do(ctx, http.MethodPost, "/transactions", createRequest{
		BuyOrder:  buyOrder,
		SessionID: sessionID,
		Amount:    amount,
		ReturnURL: returnURL,
	}, &data, "create")
	if err != nil {
		return nil, err
	}
	if data.Token == "" || data.URL == "" {
		return nil, &GatewayError{Operation: "create", Message: "response missing token or url"}
	}
	return &model.GatewayCreateResponse{Token: data.Token, URL: data.URL}, nil
}

// Commit finalizes a transaction. A non-authorized status is a successful
// call with a negative business outcome, never an error.
func (c *HTTPClient) Commit(ctx context.Context, token string) (*model.GatewayCommitResponse, error) {
	var data commitResponse
	err := c.do(ctx, http.MethodPut, "/transactions/"+token, nil, &data, "commit")
	if err != nil {
		return nil, err
	}
	if data.Status == "" {
		return nil, &GatewayError{Operation: "commit", Message: "response missing status"}
	}
	return &model.GatewayCommitResponse{
		Status:            data.Status,
		BuyOrder:          data.BuyOrder,
		SessionID:         data.SessionID,
		Amount:            data.Amount,
		AuthorizationCode: data.AuthorizationCode,
		ResponseCode:      data.ResponseCode,
		TransactionDate:   data.TransactionDate,
	}, nil
}

// Refund nullifies part or all of a committed transaction.
func (c *HTTPClient) Refund(ctx context.Context, token string, amount int64) (*model.GatewayRefundResponse, error) {
	var data refundResponse
	err := c.do(ctx, http.MethodPost, "/transactions/"+token+"/refunds", refundRequest{Amount: amount}, &data, "refund")
	if err != nil {
		return nil, err
	}
	return &model.GatewayRefundResponse{
		Type:              data.Type,
		AuthorizationCode: data.AuthorizationCode,
		NullifiedAmount:   data.NullifiedAmount,
		Balance:           data.Balance,
	}, nil
}

func (c *HTTPClient) do(ctx context.Context, method, endpoint string, payload, out any, operation string) error {
	target := *c.baseURL
	target.Path = path.Join(target.Path, endpoint)

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return &GatewayError{Operation: operation, Message: err.Error()}
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return &GatewayError{Operation: operation, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Tbk-Api-Key-Id", c.commerceCode)
	req.Header.Set("Tbk-Api-Key-Secret", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &GatewayError{Operation: operation, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &GatewayError{Operation: operation, Message: err.Error()}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Error("gateway request failed",
			slog.String("operation", operation),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(raw)),
		)
		return &GatewayError{Operation: operation, StatusCode: resp.StatusCode, Message: string(raw)}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &GatewayError{Operation: operation, Message: fmt.Sprintf("malformed response: %v", err)}
	}
	return nil
}
