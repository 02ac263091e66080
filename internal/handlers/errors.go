package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/raksinkh/equipment-management/internal/httperr"
)

// ======================================================
// BUSINESS CODES
// ======================================================

var businessStatus = map[string]int{
	"missing_fields":        http.StatusBadRequest,
	"invalid_date":          http.StatusBadRequest,
	"start_in_past":         http.StatusBadRequest,
	"invalid_date_range":    http.StatusBadRequest,
	"missing_name":          http.StatusBadRequest,
	"missing_id":            http.StatusBadRequest,
	"invalid_mode":          http.StatusBadRequest,
	"invalid_status":        http.StatusBadRequest,
	"invalid_image":         http.StatusBadRequest,
	"confirmation_required": http.StatusBadRequest,

	"invalid_state":          http.StatusConflict,
	"equipment_unavailable":  http.StatusConflict,
	"duplicate_submission":   http.StatusConflict,
	"equipment_has_bookings": http.StatusConflict,

	"storage_disabled": http.StatusServiceUnavailable,
}

var businessMessages = map[string]string{
	"missing_fields":         "Start date, end date and purpose are required.",
	"invalid_date":           "Dates must be formatted as YYYY-MM-DD.",
	"start_in_past":          "The start date cannot be in the past.",
	"invalid_date_range":     "The end date cannot be before the start date.",
	"missing_name":           "Name is required.",
	"missing_id":             "Equipment id is required.",
	"invalid_mode":           "Unknown form mode.",
	"invalid_status":         "Unknown status.",
	"invalid_image":          "The file is not a supported image.",
	"confirmation_required":  "Deleting equipment must be confirmed.",
	"invalid_state":          "This status change is not allowed.",
	"equipment_unavailable":  "This equipment is not available.",
	"duplicate_submission":   "This request is already being submitted.",
	"equipment_has_bookings": "Equipment with bookings cannot be deleted.",
	"storage_disabled":       "Image storage is not configured.",
}

// failure is what a flow answers with when it cannot complete.
type failure struct {
	NotFoundCode string
	Code         string
	Message      string

	// Generic keeps Message for every failure, so users see one
	// message per flow while error_code tells causes apart.
	Generic bool
}

func respondError(c *gin.Context, log *zap.Logger, err error, f failure) {
	if code, ok := httperr.BusinessCode(err); ok {
		status, known := businessStatus[code]
		if !known {
			status = http.StatusBadRequest
		}
		msg := businessMessages[code]
		if f.Generic && status != http.StatusBadRequest {
			msg = f.Message
		}
		httperr.Write(c, status, code, msg)
		return
	}

	if f.NotFoundCode != "" && httperr.IsNotFound(err) {
		httperr.NotFound(c, f.NotFoundCode, "Not found.")
		return
	}

	log.Error("request failed",
		zap.String("code", f.Code),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	httperr.Internal(c, f.Code, f.Message)
}
