// Package api is the HTTP client for the dungeon server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/younwookim/dungeonmenu/internal/domain/dungeon"
)

const (
	dungeonsPath = "/api/dungeons/"
	configsPath  = "/api/configs/"
	newGamePath  = "/api/game/new/"

	// maxErrorBody caps how much of an error response is kept.
	maxErrorBody = 4 << 10
)

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: server returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: server returned status %d: %s", e.Op, e.StatusCode, e.Message)
}

// Client talks to the dungeon server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for the server at baseURL. timeout bounds each request.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL for dungeon server: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.Named("DungeonAPIClient"),
	}, nil
}

// ListDungeons returns the dungeons the server can create.
func (c *Client) ListDungeons(ctx context.Context) ([]dungeon.DungeonSummary, error) {
	var out []dungeon.DungeonSummary
	if err := c.getJSON(ctx, "list dungeons", dungeonsPath, &out); err != nil {
		return nil, err
	}
	kept := dungeon.CompactDungeons(out)
	c.logDropped(dungeonsPath, len(out)-len(kept))
	return kept, nil
}

// ListConfigs returns the configuration profiles the server offers.
func (c *Client) ListConfigs(ctx context.Context) ([]dungeon.ConfigSummary, error) {
	var out []dungeon.ConfigSummary
	if err := c.getJSON(ctx, "list configs", configsPath, &out); err != nil {
		return nil, err
	}
	kept := dungeon.CompactConfigs(out)
	c.logDropped(configsPath, len(out)-len(kept))
	return kept, nil
}

func (c *Client) logDropped(path string, n int) {
	if n > 0 {
		c.logger.Warn("Skipped catalog entries without an id", zap.String("path", path), zap.Int("count", n))
	}
}

// CreateGame asks the server to start a new game. An empty body or a falsy
// JSON value (null, false, 0, "") yields a nil instance and a nil error.
func (c *Client) CreateGame(ctx context.Context, dungeonID, configID string) (*dungeon.Instance, error) {
	const op = "create game"
	log := c.logger.With(zap.String("dungeon", dungeonID), zap.String("config", configID))

	form := url.Values{}
	form.Set("dungeonName", dungeonID)
	form.Set("configName", configID)

	req, err := c.newRequest(ctx, http.MethodPost, newGamePath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := c.do(req, op)
	if err != nil {
		log.Error("Create game request failed", zap.Error(err))
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if isFalsy(trimmed) {
		log.Warn("Server returned no dungeon", zap.ByteString("body", trimmed))
		return nil, nil
	}
	if trimmed[0] != '{' {
		log.Error("Unexpected create game response", zap.ByteString("body", trimmed))
		return nil, fmt.Errorf("%s: decode response: unexpected body %.64q", op, trimmed)
	}

	var inst dungeon.Instance
	if err := json.Unmarshal(trimmed, &inst); err != nil {
		log.Error("Failed to decode dungeon", zap.Error(err))
		return nil, fmt.Errorf("%s: decode response: %w", op, err)
	}
	log.Debug("Dungeon created", zap.String("dungeon_id", inst.DungeonID), zap.Int("entities", len(inst.Entities)))
	return &inst, nil
}

// isFalsy reports whether body is empty or one of the JSON values null,
// false, 0 and "".
func isFalsy(body []byte) bool {
	if len(body) == 0 {
		return true
	}
	if body[0] == '{' || body[0] == '[' {
		return false
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return false
	}
	switch v := v.(type) {
	case nil:
		return true
	case bool:
		return !v
	case float64:
		return v == 0
	case string:
		return v == ""
	}
	return false
}

func (c *Client) getJSON(ctx context.Context, op, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	body, err := c.do(req, op)
	if err != nil {
		c.logger.Error("Catalog request failed", zap.String("path", path), zap.Error(err))
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Error("Failed to decode catalog", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

func (c *Client) do(req *http.Request, op string) ([]byte, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to execute request: %w", op, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Request finished",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.String("request_id", req.Header.Get("X-Request-ID")),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Op: op, StatusCode: resp.StatusCode, Message: errorMessage(msg)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read response: %w", op, err)
	}
	return body, nil
}

// errorMessage extracts a readable message from an error body. JSON bodies
// with a "message" or "error" field use that field.
func errorMessage(body []byte) string {
	body = bytes.TrimSpace(body)
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return string(body)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}
