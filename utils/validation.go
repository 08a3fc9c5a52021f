package utils

import (
	"strings"

	"github.com/google/uuid"
)

// maxRequestIDLength bounds client-supplied request IDs echoed back in headers.
const maxRequestIDLength = 64

// GenerateRequestID creates a unique request identifier using UUID v4.
func GenerateRequestID() string {
	return uuid.New().String()
}

// ValidRequestID reports whether a client-supplied request ID is a UUID that
// can be safely echoed in logs and response headers.
func ValidRequestID(id string) bool {
	id = strings.TrimSpace(id)
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
