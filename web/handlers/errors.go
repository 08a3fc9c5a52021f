package handlers

import (
	apperrors "analytics-core/errors"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondWithError logs the technical error and returns a user-friendly message
func respondWithError(c *gin.Context, statusCode int, technicalError error, userMessage string, logger *zap.Logger, fields ...zap.Field) {
	// Log technical error with context
	if logger != nil {
		fields = append(fields, zap.Error(technicalError))
		logger.Error("Request failed", fields...)
	}

	// Return user-friendly message
	c.JSON(statusCode, gin.H{"error": userMessage})
}

// respondWithClientError returns a client error (no logging needed for validation errors)
func respondWithClientError(c *gin.Context, statusCode int, userMessage string) {
	c.JSON(statusCode, gin.H{"error": userMessage})
}

// classifyBindError maps a request decoding failure onto the application's
// sentinel errors.
func classifyBindError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return apperrors.WrapErrorf(apperrors.ErrPayloadTooLarge, "request body over %d bytes", maxErr.Limit)
	}
	return apperrors.WrapError(apperrors.ErrInvalidInput, err.Error())
}

// respondWithBindError answers a request whose body could not be decoded.
func respondWithBindError(c *gin.Context, err error, logger *zap.Logger) {
	err = classifyBindError(err)
	if apperrors.IsPayloadTooLarge(err) {
		respondWithError(c, http.StatusRequestEntityTooLarge, err, "request body too large", logger,
			zap.String("path", c.FullPath()))
		return
	}
	respondWithClientError(c, http.StatusBadRequest, "invalid request body")
}
