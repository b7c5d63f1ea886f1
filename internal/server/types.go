package server

import "github.com/njchilds90/polylead"

// ExpressionRequest is the body of every /v1 endpoint.
type ExpressionRequest struct {
	// Expression is the polynomial text, e.g. "3x^2 + 2x - 5".
	Expression string `json:"expression" binding:"max=65536"`
}

// ValidateResponse answers POST /v1/validate. An invalid expression is a
// normal answer, not an HTTP error.
type ValidateResponse struct {
	Valid    bool   `json:"valid"`
	Code     string `json:"code,omitempty"`
	Message  string `json:"message,omitempty"`
	Position *int   `json:"position,omitempty"`
}

// NormalizeResponse answers POST /v1/normalize.
type NormalizeResponse struct {
	Expression string `json:"expression"`
	Normalized string `json:"normalized"`
}

// AnalyzeResponse answers POST /v1/analyze.
type AnalyzeResponse struct {
	RequestID string             `json:"request_id"`
	Analysis  *polylead.Analysis `json:"analysis"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	// Error is the error message.
	Error string `json:"error"`

	// Code is the machine-readable error code.
	Code string `json:"code,omitempty"`

	// Position is the byte offset the error points at, when known.
	Position *int `json:"position,omitempty"`
}

// HealthResponse answers GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

const (
	codeInvalidRequest = "INVALID_REQUEST"
	codeRateLimited    = "RATE_LIMITED"
	codeInternal       = "INTERNAL"
)
