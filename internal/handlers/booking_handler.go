package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/raksinkh/equipment-management/internal/domain/booking"
	"github.com/raksinkh/equipment-management/internal/dto"
	"github.com/raksinkh/equipment-management/internal/httperr"
	"github.com/raksinkh/equipment-management/internal/httpresp"
	"github.com/raksinkh/equipment-management/internal/middleware"
	"github.com/raksinkh/equipment-management/internal/models"
	ucBooking "github.com/raksinkh/equipment-management/internal/usecase/booking"
)

const redirectBookingCreated = "/dashboard?success=booking_created"

var (
	createBookingFailure = failure{
		NotFoundCode: "equipment_not_found",
		Code:         "booking_create_failed",
		Message:      "Failed to create booking. Please try again.",
		Generic:      true,
	}
	reviewBookingFailure = failure{
		NotFoundCode: "booking_not_found",
		Code:         "booking_update_failed",
		Message:      "Failed to update booking.",
	}
	searchBookingFailure = failure{
		Code:    "booking_list_failed",
		Message: "Failed to load bookings.",
	}
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	form   *ucBooking.LoadBookingForm
	create *ucBooking.CreateBooking
	review *ucBooking.ReviewBooking
	mine   *ucBooking.ListMyBookings
	search *ucBooking.SearchBookings
	export *ucBooking.ExportBookings
	log    *zap.Logger
}

func NewBookingHandler(
	form *ucBooking.LoadBookingForm,
	create *ucBooking.CreateBooking,
	review *ucBooking.ReviewBooking,
	mine *ucBooking.ListMyBookings,
	search *ucBooking.SearchBookings,
	export *ucBooking.ExportBookings,
	log *zap.Logger,
) *BookingHandler {
	return &BookingHandler{
		form:   form,
		create: create,
		review: review,
		mine:   mine,
		search: search,
		export: export,
		log:    log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// Empty fields are left to the use case so they fail before any store call
// with missing_fields instead of a generic binding error.
type CreateBookingRequest struct {
	EquipmentID string `json:"equipment_id" binding:"required"`
	StartDate   string `json:"start_date" binding:"omitempty,isodate"`
	EndDate     string `json:"end_date" binding:"omitempty,isodate"`
	Purpose     string `json:"purpose"`
	Notes       string `json:"notes"`
}

// ======================================================
// FORM
// ======================================================

func (h *BookingHandler) NewForm(c *gin.Context) {
	equipmentID := c.Query("equipment")
	if equipmentID == "" {
		httperr.WriteRedirect(c, http.StatusNotFound, "equipment_not_found", "Equipment not found.", redirectDashboard)
		return
	}

	eq, err := h.form.Execute(c.Request.Context(), equipmentID)
	if err != nil {
		if !httperr.IsNotFound(err) {
			h.log.Error("failed to load booking form", zap.String("equipment_id", equipmentID), zap.Error(err))
		}
		httperr.WriteRedirect(c, http.StatusNotFound, "equipment_not_found", "Equipment not found.", redirectDashboard)
		return
	}

	httpresp.OK(c, gin.H{"equipment": eq})
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking data.")
		return
	}

	b, err := h.create.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		UserID:      c.GetString(middleware.ContextUserID),
		EquipmentID: req.EquipmentID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Purpose:     req.Purpose,
		Notes:       req.Notes,
	})
	if err != nil {
		respondError(c, h.log, err, createBookingFailure)
		return
	}

	httpresp.Redirect(c, http.StatusCreated, gin.H{"booking": b}, redirectBookingCreated)
}

// ======================================================
// LISTS
// ======================================================

func (h *BookingHandler) ListMine(c *gin.Context) {
	list, err := h.mine.Execute(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		respondError(c, h.log, err, searchBookingFailure)
		return
	}
	httpresp.List(c, dto.NewBookingList(list))
}

func (h *BookingHandler) Search(c *gin.Context) {
	f, ok := bindFilter(c)
	if !ok {
		return
	}

	list, counts, err := h.search.Execute(c.Request.Context(), f)
	if err != nil {
		respondError(c, h.log, err, searchBookingFailure)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":   dto.NewBookingList(list),
		"total":  len(list),
		"counts": counts,
	})
}

func (h *BookingHandler) Export(c *gin.Context) {
	f, ok := bindFilter(c)
	if !ok {
		return
	}

	data, err := h.export.Execute(c.Request.Context(), f)
	if err != nil {
		respondError(c, h.log, err, failure{
			Code:    "booking_export_failed",
			Message: "Failed to export bookings.",
		})
		return
	}

	name := fmt.Sprintf("bookings-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func bindFilter(c *gin.Context) (domain.Filter, bool) {
	f := domain.Filter{
		EquipmentID: c.Query("equipment_id"),
		UserID:      c.Query("user_id"),
	}

	if raw := c.Query("status"); raw != "" {
		s, err := domain.ParseStatus(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_status", "Unknown status.")
			return f, false
		}
		f.Status = s
	}

	for key, dst := range map[string]**models.Date{"from": &f.From, "to": &f.To} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		d, err := models.ParseDate(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Dates must be formatted as YYYY-MM-DD.")
			return f, false
		}
		*dst = &d
	}

	return f, true
}

// ======================================================
// REVIEW
// ======================================================

func (h *BookingHandler) Approve(c *gin.Context) {
	h.transition(c, domain.StatusApproved)
}

func (h *BookingHandler) Reject(c *gin.Context) {
	h.transition(c, domain.StatusRejected)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	h.transition(c, domain.StatusCompleted)
}

func (h *BookingHandler) transition(c *gin.Context, next domain.Status) {
	b, err := h.review.Execute(c.Request.Context(), ucBooking.ReviewBookingInput{
		BookingID: c.Param("id"),
		ManagerID: c.GetString(middleware.ContextUserID),
		Status:    next,
	})
	if err != nil {
		respondError(c, h.log, err, reviewBookingFailure)
		return
	}
	httpresp.OK(c, gin.H{"booking": b})
}
