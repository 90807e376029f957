// Package gateway is the adapter for the external media-provisioning
// gateway — the service that hosts the actual audio/video transport.
// This core only ever asks it two things: create a room, mint a
// per-participant session token.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/naivedh/roomgate/internal/errs"
	"go.uber.org/zap"
)

// MediaGateway is what the services depend on. Implemented by Client and
// by test fakes.
type MediaGateway interface {
	// CreateRoom provisions a media room and returns its authoritative id.
	CreateRoom(ctx context.Context, name string) (string, error)

	// CreateToken mints a single-use media session token scoped to
	// (roomID, userID, role).
	CreateToken(ctx context.Context, roomID, userID, role string) (string, error)
}

// Client talks REST to the gateway. Every failure — transport, non-2xx,
// malformed body — surfaces as errs.ErrGatewayUnavailable; retry policy
// belongs to the caller, not here.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL, apiKey string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

type createRoomRequest struct {
	Name string `json:"name"`
	P2P  bool   `json:"p2p"`
}

type createRoomResponse struct {
	ID string `json:"id"`
}

func (c *Client) CreateRoom(ctx context.Context, name string) (string, error) {
	var resp createRoomResponse
	err := c.post(ctx, "/v1/rooms", createRoomRequest{Name: name, P2P: true}, &resp)
	if err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", fmt.Errorf("%w: gateway returned empty room id", errs.ErrGatewayUnavailable)
	}
	return resp.ID, nil
}

type createTokenRequest struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

type createTokenResponse struct {
	Content string `json:"content"`
}

func (c *Client) CreateToken(ctx context.Context, roomID, userID, role string) (string, error) {
	var resp createTokenResponse
	err := c.post(ctx, "/v1/rooms/"+roomID+"/tokens", createTokenRequest{UserID: userID, Role: role}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Content == "" {
		return "", fmt.Errorf("%w: gateway returned empty session token", errs.ErrGatewayUnavailable)
	}
	return resp.Content, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal gateway request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	res, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("gateway call failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: %v", errs.ErrGatewayUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		// Drain a little of the body for the log; the sentinel is what
		// callers branch on.
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 256))
		c.logger.Warn("gateway returned error status",
			zap.String("path", path),
			zap.Int("status", res.StatusCode),
			zap.ByteString("body", snippet),
		)
		return fmt.Errorf("%w: status %d", errs.ErrGatewayUnavailable, res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", errs.ErrGatewayUnavailable, err)
	}
	return nil
}
