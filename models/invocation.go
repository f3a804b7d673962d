package models

import "time"

// Outcome of a journaled tool call.
const (
	InvocationOK      = "ok"
	InvocationInvalid = "invalid"
	InvocationError   = "error"
)

// Invocation is one journaled tool call.
type Invocation struct {
	ID         string    `json:"id"`
	Tool       string    `json:"tool"`
	Status     string    `json:"status"`
	DurationMS int64     `json:"durationMs"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToolUsage ranks one tool by how often it was called in a window.
type ToolUsage struct {
	Rank          int     `json:"rank"`
	Tool          string  `json:"tool"`
	Calls         int     `json:"calls"`
	Failures      int     `json:"failures"`
	AvgDurationMS float64 `json:"avgDurationMs"`
}
