package models

import "time"

// BackendStatus is the monitor's view of the prediction backend, served to
// the front end by the bridge's status route.
type BackendStatus struct {
	Reachable           bool      `json:"reachable"`
	LastAttempt         time.Time `json:"last_attempt"`
	LastContact         time.Time `json:"last_contact"` // last HTTP response, any status
	LastSuccess         time.Time `json:"last_success"` // last fully successful command
	LastError           string    `json:"last_error,omitempty"`
	ConsecutiveFailures int       `json:"consecutive_failures"`
}

// InvokeResult is the envelope every bridge command responds with: a result
// payload on success, or the error text the front end should display.
type InvokeResult struct {
	Success bool        `json:"success"`
	Result  interface{} `json:"result,omitempty"`
	Error   string      `json:"error,omitempty"`
}
