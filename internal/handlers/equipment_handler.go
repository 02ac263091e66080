package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/raksinkh/equipment-management/internal/dto"
	"github.com/raksinkh/equipment-management/internal/httperr"
	"github.com/raksinkh/equipment-management/internal/httpresp"
	"github.com/raksinkh/equipment-management/internal/middleware"
	ucEquipment "github.com/raksinkh/equipment-management/internal/usecase/equipment"
)

const (
	redirectDashboard = "/dashboard"

	maxImageBytes = 10 << 20
)

var (
	saveEquipmentFailure = failure{
		NotFoundCode: "equipment_not_found",
		Code:         "equipment_save_failed",
		Message:      "Failed to save equipment. Please try again.",
		Generic:      true,
	}
	deleteEquipmentFailure = failure{
		NotFoundCode: "equipment_not_found",
		Code:         "equipment_delete_failed",
		Message:      "Failed to delete equipment.",
		Generic:      true,
	}
)

// ======================================================
// HANDLER
// ======================================================

type EquipmentHandler struct {
	list   *ucEquipment.ListEquipment
	detail *ucEquipment.GetEquipmentDetail
	save   *ucEquipment.SaveEquipment
	delete *ucEquipment.DeleteEquipment
	upload *ucEquipment.UploadImage
	log    *zap.Logger
}

func NewEquipmentHandler(
	list *ucEquipment.ListEquipment,
	detail *ucEquipment.GetEquipmentDetail,
	save *ucEquipment.SaveEquipment,
	del *ucEquipment.DeleteEquipment,
	upload *ucEquipment.UploadImage,
	log *zap.Logger,
) *EquipmentHandler {
	return &EquipmentHandler{
		list:   list,
		detail: detail,
		save:   save,
		delete: del,
		upload: upload,
		log:    log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type EquipmentRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
	Location    string `json:"location" binding:"max=255"`
	Status      string `json:"status" binding:"omitempty,equipmentstatus"`
}

// ======================================================
// READ
// ======================================================

func (h *EquipmentHandler) List(c *gin.Context) {
	items, err := h.list.Execute(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, h.log, err, failure{
			Code:    "equipment_list_failed",
			Message: "Failed to load equipment.",
		})
		return
	}
	httpresp.List(c, items)
}

func (h *EquipmentHandler) Get(c *gin.Context) {
	d, err := h.detail.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, failure{
			NotFoundCode: "equipment_not_found",
			Code:         "equipment_load_failed",
			Message:      "Failed to load equipment.",
		})
		return
	}

	httpresp.OK(c, dto.EquipmentDetailDTO{
		Equipment:           d.Equipment,
		Bookings:            dto.NewBookingList(d.Bookings),
		Counts:              d.Counts,
		BookingsUnavailable: d.BookingsUnavailable,
	})
}

// ======================================================
// WRITE
// ======================================================

func (h *EquipmentHandler) Create(c *gin.Context) {
	h.write(c, ucEquipment.ModeCreate, "", http.StatusCreated)
}

func (h *EquipmentHandler) Update(c *gin.Context) {
	h.write(c, ucEquipment.ModeEdit, c.Param("id"), http.StatusOK)
}

func (h *EquipmentHandler) write(c *gin.Context, mode ucEquipment.Mode, id string, status int) {
	var req EquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid equipment data.")
		return
	}

	eq, err := h.save.Execute(c.Request.Context(), ucEquipment.SaveEquipmentInput{
		Mode:        mode,
		ID:          id,
		ActorID:     c.GetString(middleware.ContextUserID),
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Status:      req.Status,
	})
	if err != nil {
		respondError(c, h.log, err, saveEquipmentFailure)
		return
	}

	httpresp.Redirect(c, status, gin.H{"equipment": eq}, redirectDashboard)
}

func (h *EquipmentHandler) Delete(c *gin.Context) {
	err := h.delete.Execute(c.Request.Context(), ucEquipment.DeleteEquipmentInput{
		ID:        c.Param("id"),
		ActorID:   c.GetString(middleware.ContextUserID),
		Confirmed: c.Query("confirm") == "true",
	})
	if err != nil {
		respondError(c, h.log, err, deleteEquipmentFailure)
		return
	}

	httpresp.Redirect(c, http.StatusOK, gin.H{"deleted": true}, redirectDashboard)
}

func (h *EquipmentHandler) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageBytes)

	fh, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "An image file is required.")
		return
	}
	file, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "An image file is required.")
		return
	}
	defer file.Close()

	eq, err := h.upload.Execute(c.Request.Context(), ucEquipment.UploadImageInput{
		ID:      c.Param("id"),
		ActorID: c.GetString(middleware.ContextUserID),
		Image:   file,
	})
	if err != nil {
		respondError(c, h.log, err, failure{
			NotFoundCode: "equipment_not_found",
			Code:         "equipment_image_failed",
			Message:      "Failed to upload image.",
		})
		return
	}

	httpresp.OK(c, gin.H{"equipment": eq})
}
