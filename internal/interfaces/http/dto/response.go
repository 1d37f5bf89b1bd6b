package dto

// ErrorResponse is the JSON shape of every error reply: a message string,
// the success flag, and optionally the list of allowed values (validation)
// or a retry-after estimate in minutes (throttling)
type ErrorResponse struct {
	Success    bool     `json:"success"`
	Error      string   `json:"error"`
	Allowed    []string `json:"allowed,omitempty"`
	RetryAfter int      `json:"retryAfter,omitempty"`
}

// NewErrorResponse creates an error response
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Success: false, Error: message}
}

// NewErrorResponseWithAllowed creates a validation error response carrying
// the allowed values for the rejected field
func NewErrorResponseWithAllowed(message string, allowed []string) ErrorResponse {
	return ErrorResponse{Success: false, Error: message, Allowed: allowed}
}

// NewRateLimitedResponse creates a throttling error response with the
// retry-after estimate in minutes
func NewRateLimitedResponse(message string, retryAfterMinutes int) ErrorResponse {
	return ErrorResponse{Success: false, Error: message, RetryAfter: retryAfterMinutes}
}
