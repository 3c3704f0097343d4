package zabbix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"zbxreport/internal/types"

	"go.uber.org/zap"
)

// Client talks JSON-RPC 2.0 to a Zabbix API endpoint.
// Calls are sequential; the client holds one session token after Login.
type Client struct {
	url    string
	client *http.Client
	logger *zap.Logger
	token  string
	seq    uint64
}

// NewClient creates new client for the given server address
func NewClient(server string, timeout time.Duration, logger *zap.Logger) *Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &Client{
		url: apiURL(server),
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		logger: logger,
	}
}

// apiURL normalizes a server address into the JSON-RPC endpoint URL
func apiURL(server string) string {
	s := strings.TrimRight(server, "/")
	if !strings.Contains(s, "://") {
		s = "http://" + s
	}
	if !strings.HasSuffix(s, "/api_jsonrpc.php") {
		s += "/api_jsonrpc.php"
	}
	return s
}

// URL returns the resolved endpoint URL
func (c *Client) URL() string {
	return c.url
}

// call performs one JSON-RPC request.
// user.login and apiinfo.version must not carry a session token.
func (c *Client) call(ctx context.Context, method string, params any, result any) error {
	c.seq++
	req := request{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      c.seq,
	}
	if c.token != "" && method != "user.login" && method != "apiinfo.version" {
		req.Auth = c.token
	}

	// Request params may hold credentials and are never logged
	c.logger.Debug("Calling Zabbix API",
		zap.String("method", method),
		zap.Uint64("id", req.ID))

	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", method, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json-rpc")
	httpReq.Header.Set("User-Agent", "zbxreport/1.0")

	// Send request
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(body))
	}

	var rpcResp response
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", method, err)
	}

	if rpcResp.Error != nil {
		return fmt.Errorf("%s failed: %w", method, rpcResp.Error)
	}

	if result != nil {
		if err := json.Unmarshal(rpcResp.Result, result); err != nil {
			return fmt.Errorf("failed to decode %s result: %w", method, err)
		}
	}

	return nil
}

// Login opens an API session and stores the session token
func (c *Client) Login(ctx context.Context, username, password string) error {
	params := map[string]string{
		"username": username,
		"password": password,
	}

	var token string
	if err := c.call(ctx, "user.login", params, &token); err != nil {
		return err
	}

	c.token = token
	c.logger.Debug("Authenticated against Zabbix API",
		zap.String("username", username))
	return nil
}

// Logout closes the API session
func (c *Client) Logout(ctx context.Context) error {
	if c.token == "" {
		return nil
	}

	if err := c.call(ctx, "user.logout", []any{}, nil); err != nil {
		return err
	}

	c.token = ""
	return nil
}

// Version reports the API version. The probe is unauthenticated.
func (c *Client) Version(ctx context.Context) (string, error) {
	var version string
	if err := c.call(ctx, "apiinfo.version", []any{}, &version); err != nil {
		return "", err
	}
	return version, nil
}

// HostByName resolves a host display name to its host record
func (c *Client) HostByName(ctx context.Context, name string) (*Host, error) {
	params := map[string]any{
		"filter": map[string]any{"name": name},
		"output": []string{"hostid", "host"},
	}

	var hosts []Host
	if err := c.call(ctx, "host.get", params, &hosts); err != nil {
		return nil, err
	}

	if len(hosts) == 0 {
		return nil, fmt.Errorf("%w: %s", types.ErrHostNotFound, name)
	}
	return &hosts[0], nil
}

// EnabledItems lists the enabled items of a host
func (c *Client) EnabledItems(ctx context.Context, hostID string) ([]Item, error) {
	params := map[string]any{
		"hostids":                hostID,
		"output":                 []string{"itemid", "name", "key_", "units"},
		"searchWildcardsEnabled": true,
		"filter":                 map[string]any{"status": 0},
	}

	var items []Item
	if err := c.call(ctx, "item.get", params, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ItemByKey fetches the first item of a host whose key matches the fragment.
// A miss returns nil without error.
func (c *Client) ItemByKey(ctx context.Context, hostID, key string) (*Item, error) {
	params := map[string]any{
		"hostids": hostID,
		"search":  map[string]any{"key_": key},
		"output":  []string{"itemid", "name", "key_", "units"},
	}

	var items []Item
	if err := c.call(ctx, "item.get", params, &items); err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

// History fetches raw samples of one item inside one time range, newest
// first. historyType selects the storage class to read; querying the wrong
// class yields no rows.
func (c *Client) History(ctx context.Context, itemID string, historyType int, timeFrom, timeTill int64) ([]HistoryValue, error) {
	params := map[string]any{
		"itemids":   itemID,
		"history":   historyType,
		"time_from": timeFrom,
		"time_till": timeTill,
		"output":    []string{"clock", "value"},
		"sortfield": "clock",
		"sortorder": "DESC",
	}

	var values []HistoryValue
	if err := c.call(ctx, "history.get", params, &values); err != nil {
		return nil, err
	}
	return values, nil
}
