package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"marketgo/internal/marketerrors"
	"marketgo/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message.
// A closed auction maps to 410 so clients can tell "this auction is over"
// apart from "raise your bid" (409).
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, marketerrors.ErrProductNotFound):
		return http.StatusNotFound, "product not found"
	case errors.Is(err, marketerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "auction not found"
	case errors.Is(err, marketerrors.ErrCartItemNotFound):
		return http.StatusNotFound, "cart item not found"
	case errors.Is(err, marketerrors.ErrRowNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, marketerrors.ErrBidBelowMinimum):
		return http.StatusConflict, "bid amount too low"
	case errors.Is(err, marketerrors.ErrAuctionClosed):
		return http.StatusGone, "auction closed"
	case errors.Is(err, marketerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid bid details"
	case errors.Is(err, marketerrors.ErrEmptyCart):
		return http.StatusBadRequest, "cart is empty"
	case errors.Is(err, marketerrors.ErrUsernameTaken):
		return http.StatusConflict, "username already taken"
	case errors.Is(err, marketerrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, marketerrors.ErrUnauthenticated):
		return http.StatusUnauthorized, "not signed in"
	case errors.Is(err, marketerrors.ErrInvalidInput):
		return http.StatusBadRequest, "invalid request"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// RespondError sends the mapped error and logs it in one step
func RespondError(c *gin.Context, handlerName string, err error) {
	status, message := MapErrorToHTTP(err)
	utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
	utils.Warn(handlerName+": "+message, map[string]any{"error": err.Error()})
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
