// Package client is the wallet-side HTTP adapter for the backend API. It
// implements the lifecycle ports (ledger, notifications) and the identity
// resolver against the /v1 endpoints. It performs no retries; retry policy
// belongs to callers.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dcert/contracts/walletapi"
	"dcert/internal/wallet/identity"
	id "dcert/pkg/domain"
	dErrors "dcert/pkg/domain-errors"
	"dcert/pkg/platform/sentinel"
)

// Client talks to one backend instance with one bearer token.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

func New(baseURL string, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateRecord implements the lifecycle LedgerAPI port.
func (c *Client) CreateRecord(ctx context.Context, req walletapi.CreateLedgerRecordRequest) error {
	return c.do(ctx, http.MethodPost, "/v1/ledger-records", req, nil)
}

// UpdateRecord implements the lifecycle LedgerAPI port.
func (c *Client) UpdateRecord(ctx context.Context, lineageID id.LineageID, req walletapi.UpdateLedgerRecordRequest) error {
	return c.do(ctx, http.MethodPut, "/v1/ledger-records/"+lineageID.String(), req, nil)
}

// GetRecord implements the lifecycle LedgerAPI port.
func (c *Client) GetRecord(ctx context.Context, lineageID id.LineageID) (*walletapi.LedgerRecordResponse, error) {
	var out walletapi.LedgerRecordResponse
	if err := c.do(ctx, http.MethodGet, "/v1/ledger-records/"+lineageID.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Notify implements the lifecycle NotificationAPI port.
func (c *Client) Notify(ctx context.Context, req walletapi.NotifyRequest) error {
	return c.do(ctx, http.MethodPost, "/v1/notifications", req, nil)
}

// Inbox fetches the authenticated holder's notifications, newest first.
func (c *Client) Inbox(ctx context.Context) ([]walletapi.NotificationResponse, error) {
	var out []walletapi.NotificationResponse
	if err := c.do(ctx, http.MethodGet, "/v1/notifications", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PublishDocument publishes the caller's DID document.
func (c *Client) PublishDocument(ctx context.Context, document identity.Document) error {
	return c.do(ctx, http.MethodPut, "/v1/dids/"+document.ID.String()+"/document", document, nil)
}

// Resolve implements identity.Resolver against the DID registry.
func (c *Client) Resolve(ctx context.Context, did id.DID) (*identity.Document, error) {
	var out identity.Document
	if err := c.do(ctx, http.MethodGet, "/v1/dids/"+did.String()+"/document", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RequestPresentation creates a presentation request towards a holder.
func (c *Client) RequestPresentation(ctx context.Context, holderDID id.DID, requirements []walletapi.SchemaRequirement) (*walletapi.PresentationRequestResponse, error) {
	body := map[string]any{
		"holder_did":   holderDID.String(),
		"requirements": requirements,
	}
	var out walletapi.PresentationRequestResponse
	if err := c.do(ctx, http.MethodPost, "/v1/presentation-requests", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PendingPresentationRequests lists the authenticated holder's pending requests.
func (c *Client) PendingPresentationRequests(ctx context.Context) ([]walletapi.PresentationRequestResponse, error) {
	var out []walletapi.PresentationRequestResponse
	if err := c.do(ctx, http.MethodGet, "/v1/presentation-requests", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPresentationRequest fetches one request, including the submitted
// presentation once accepted.
func (c *Client) GetPresentationRequest(ctx context.Context, requestID string) (*walletapi.PresentationRequestResponse, error) {
	var out walletapi.PresentationRequestResponse
	if err := c.do(ctx, http.MethodGet, "/v1/presentation-requests/"+requestID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AcceptPresentationRequest submits a signed presentation for a request.
func (c *Client) AcceptPresentationRequest(ctx context.Context, requestID string, presentation json.RawMessage) error {
	req := walletapi.AcceptPresentationRequest{Presentation: presentation}
	return c.do(ctx, http.MethodPost, "/v1/presentation-requests/"+requestID+"/accept", req, nil)
}

// DeclinePresentationRequest declines a request.
func (c *Client) DeclinePresentationRequest(ctx context.Context, requestID string) error {
	return c.do(ctx, http.MethodPost, "/v1/presentation-requests/"+requestID+"/decline", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, sentinel.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.errorFromResponse(method, path, resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) errorFromResponse(method, path string, resp *http.Response) error {
	var body walletapi.ErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", method, path, sentinel.ErrNotFound)
	case http.StatusConflict:
		return fmt.Errorf("%s %s: %s: %w", method, path, body.Error, sentinel.ErrConflict)
	case http.StatusUnauthorized:
		return dErrors.New(dErrors.CodeUnauthorized, "backend rejected token")
	case http.StatusBadRequest:
		return dErrors.New(dErrors.CodeBadRequest, body.ErrorDescription)
	default:
		return fmt.Errorf("%s %s: backend returned %d (%s): %w", method, path, resp.StatusCode, body.Error, sentinel.ErrUnavailable)
	}
}
