package zabbix

import "encoding/json"

// History storage classes understood by history.get
const (
	HistoryFloat    = 0
	HistoryUnsigned = 3
)

// request represents a JSON-RPC 2.0 request envelope
type request struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
	Auth    string `json:"auth,omitempty"`
	ID      uint64 `json:"id"`
}

// response represents a JSON-RPC 2.0 response envelope
type response struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
	Error   *APIError       `json:"error"`
	ID      uint64          `json:"id"`
}

// Host represents a monitored host record
type Host struct {
	HostID string `json:"hostid"`
	Host   string `json:"host"`
}

// Item represents a collected item record
type Item struct {
	ItemID string `json:"itemid"`
	Name   string `json:"name"`
	Key    string `json:"key_"`
	Units  string `json:"units"`
}

// HistoryValue represents one raw history sample.
// The API returns clock and value as strings.
type HistoryValue struct {
	Clock string `json:"clock"`
	Value string `json:"value"`
}
