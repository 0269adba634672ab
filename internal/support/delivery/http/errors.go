package http

import (
	"errors"
	"net/http"

	"customer-support-agent/internal/support"
	pkgErrors "customer-support-agent/pkg/errors"
)

var (
	errMissingConversationID = pkgErrors.NewHTTPError(http.StatusBadRequest, "conversation_id is required")
	errInvalidBody           = pkgErrors.NewHTTPError(http.StatusBadRequest, "invalid request body")
	errNoPendingApproval     = pkgErrors.NewHTTPError(http.StatusNotFound, "no approval is pending for this conversation")
	errConversationNotFound  = pkgErrors.NewHTTPError(http.StatusNotFound, "conversation not found")
)

// mapError translates use case errors into HTTP errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, support.ErrMissingConversationID):
		return errMissingConversationID
	case errors.Is(err, support.ErrNoPendingApproval):
		return errNoPendingApproval
	case errors.Is(err, support.ErrConversationNotFound):
		return errConversationNotFound
	default:
		return pkgErrors.ErrInternalServerError
	}
}
