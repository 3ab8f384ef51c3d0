package common

import "time"

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
	Code    string            `json:"code,omitempty"`
}

// ListResponse wraps a list payload with its item count
type ListResponse struct {
	Data  interface{} `json:"data"`
	Count int         `json:"count"`
}

// TimestampResponse represents common timestamp fields
type TimestampResponse struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
