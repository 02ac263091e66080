package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/raksinkh/equipment-management/internal/httpresp"
	"github.com/raksinkh/equipment-management/internal/middleware"
	ucNotification "github.com/raksinkh/equipment-management/internal/usecase/notification"
)

type NotificationHandler struct {
	list     *ucNotification.ListNotifications
	markRead *ucNotification.MarkNotificationRead
	log      *zap.Logger
}

func NewNotificationHandler(
	list *ucNotification.ListNotifications,
	markRead *ucNotification.MarkNotificationRead,
	log *zap.Logger,
) *NotificationHandler {
	return &NotificationHandler{
		list:     list,
		markRead: markRead,
		log:      log,
	}
}

func (h *NotificationHandler) List(c *gin.Context) {
	list, err := h.list.Execute(
		c.Request.Context(),
		c.GetString(middleware.ContextUserID),
		c.Query("unread") == "true",
	)
	if err != nil {
		respondError(c, h.log, err, failure{
			Code:    "notification_list_failed",
			Message: "Failed to load notifications.",
		})
		return
	}
	httpresp.List(c, list)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	err := h.markRead.Execute(
		c.Request.Context(),
		c.Param("id"),
		c.GetString(middleware.ContextUserID),
	)
	if err != nil {
		respondError(c, h.log, err, failure{
			NotFoundCode: "notification_not_found",
			Code:         "notification_update_failed",
			Message:      "Failed to update notification.",
		})
		return
	}
	c.Status(http.StatusNoContent)
}
