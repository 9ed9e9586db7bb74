package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velourstudio/salon-scheduler/internal/httperr"
)

// mapBookingError translates use-case failures into the wire error
// shape. Conflicts carry the occupying appointment so the caller can
// offer the next open slot.
func mapBookingError(c *gin.Context, err error) {
	var conflict httperr.ConflictError
	if errors.As(err, &conflict) {
		c.JSON(http.StatusConflict, gin.H{
			"error": "That time is no longer available.",
			"code":  httperr.CodeConflict,
			"conflict": gin.H{
				"appointment_id": conflict.AppointmentID,
				"start_time":     conflict.StartTime,
				"end_time":       conflict.EndTime,
			},
		})
		return
	}

	switch {
	case httperr.IsBusiness(err, "invalid_phone"):
		httperr.BadRequest(c, httperr.CodeMissingFields, "A valid phone number is required.")
	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "INVALID_DATE", "Invalid date or time.")
	case httperr.IsBusiness(err, "too_soon"):
		httperr.BadRequest(c, "TOO_SOON", "That time is too soon to book.")
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.BadRequest(c, "SERVICE_NOT_FOUND", "Unknown service.")
	case httperr.IsBusiness(err, "invalid_service_duration"):
		httperr.BadRequest(c, "SERVICE_NOT_FOUND", "Unknown service.")
	case httperr.IsBusiness(err, "technician_unavailable"):
		httperr.BadRequest(c, "TECHNICIAN_UNAVAILABLE", "The technician is unavailable at that time.")
	case httperr.IsBusiness(err, "client_blocked"):
		httperr.Forbidden(c, "Booking is not available for this number.")
	default:
		httperr.Internal(c)
	}
}

// mapVerificationError translates confirmation failures. Rate limits
// and invalid codes are expected, structured outcomes.
func mapVerificationError(c *gin.Context, err error) {
	var limited httperr.RateLimitedError
	if errors.As(err, &limited) {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":       "Too many attempts. Try again later.",
			"code":        httperr.CodeTooManyAttempts,
			"retry_after": int(limited.RetryAfter.Seconds()),
		})
		return
	}

	var invalid httperr.InvalidCodeError
	if errors.As(err, &invalid) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":              "That code is not correct.",
			"code":               httperr.CodeInvalidCode,
			"attempts_remaining": invalid.AttemptsRemaining,
		})
		return
	}

	switch {
	case httperr.IsBusiness(err, "missing_fields"), httperr.IsBusiness(err, "invalid_phone"):
		httperr.BadRequest(c, httperr.CodeMissingFields, "Phone and code are required.")
	case httperr.IsBusiness(err, "no_pending_verification"):
		httperr.Write(c, http.StatusNotFound, httperr.CodeNoPendingVerification, "No verification is pending for this number.")
	case httperr.IsBusiness(err, "code_expired"):
		httperr.BadRequest(c, httperr.CodeExpiredCode, "That code has expired. Request a new one.")
	case httperr.IsBusiness(err, "sms_send_failed"):
		httperr.Internal(c)
	default:
		httperr.Internal(c)
	}
}
