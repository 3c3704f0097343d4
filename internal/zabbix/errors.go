package zabbix

import "fmt"

// APIError represents the error object of a JSON-RPC response
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Data != "" {
		return fmt.Sprintf("api error %d: %s %s", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
}
