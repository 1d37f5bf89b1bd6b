package dto

import (
	"net/http"
	"strings"
)

// Domain error codes with a non-default HTTP status. Validation codes all
// start with INVALID_ and map to 400 via the prefix rule below.
var errorCodeHTTPStatus = map[string]int{
	"NOT_FOUND":      http.StatusNotFound,
	"ALREADY_EXISTS": http.StatusConflict,
	"UNAUTHORIZED":   http.StatusUnauthorized,
	"RATE_LIMITED":   http.StatusTooManyRequests,
	"INTERNAL":       http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for a domain error code.
// Unknown codes are treated as internal errors.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
