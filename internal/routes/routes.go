package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/raksinkh/equipment-management/internal/audit"
	"github.com/raksinkh/equipment-management/internal/config"
	"github.com/raksinkh/equipment-management/internal/handlers"
	"github.com/raksinkh/equipment-management/internal/infra/cache"
	infraRepo "github.com/raksinkh/equipment-management/internal/infra/repository"
	"github.com/raksinkh/equipment-management/internal/infra/storage"
	"github.com/raksinkh/equipment-management/internal/metrics"
	"github.com/raksinkh/equipment-management/internal/middleware"
	"github.com/raksinkh/equipment-management/internal/models"
	"github.com/raksinkh/equipment-management/internal/notify"
	ucBooking "github.com/raksinkh/equipment-management/internal/usecase/booking"
	ucEquipment "github.com/raksinkh/equipment-management/internal/usecase/equipment"
	ucNotification "github.com/raksinkh/equipment-management/internal/usecase/notification"
)

// Deps are the process-wide clients built in main.
type Deps struct {
	DB      *gorm.DB
	Cfg     *config.Config
	Log     *zap.Logger
	Metrics *metrics.Metrics

	Guard cache.SubmitGuard
	Store storage.ObjectStore
	Chat  notify.ChatSender
	Hub   *notify.Hub
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	equipmentRepo := infraRepo.NewEquipmentGormRepository(d.DB)
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)
	notificationRepo := infraRepo.NewNotificationGormRepository(d.DB)
	userRepo := infraRepo.NewUserGormRepository(d.DB)

	auditDispatcher := audit.NewDispatcher(audit.New(d.DB), d.Log)
	notifier := notify.NewDispatcher(notificationRepo, d.Hub, d.Chat, d.Metrics, d.Log)

	// ======================================================
	// USE CASES / EQUIPMENT
	// ======================================================
	listEquipmentUC := ucEquipment.NewListEquipment(equipmentRepo)
	equipmentDetailUC := ucEquipment.NewGetEquipmentDetail(equipmentRepo, d.Log)
	saveEquipmentUC := ucEquipment.NewSaveEquipment(equipmentRepo, auditDispatcher, d.Metrics)
	deleteEquipmentUC := ucEquipment.NewDeleteEquipment(equipmentRepo, auditDispatcher, d.Metrics)
	uploadImageUC := ucEquipment.NewUploadImage(equipmentRepo, d.Store, auditDispatcher, d.Metrics)

	// ======================================================
	// USE CASES / BOOKINGS
	// ======================================================
	loadBookingFormUC := ucBooking.NewLoadBookingForm(bookingRepo)
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		d.Guard,
		notifier,
		auditDispatcher,
		d.Metrics,
		d.Log,
		d.Cfg.Timezone,
	)
	reviewBookingUC := ucBooking.NewReviewBooking(
		bookingRepo,
		notifier,
		auditDispatcher,
		d.Metrics,
		d.Log,
	)
	listMyBookingsUC := ucBooking.NewListMyBookings(bookingRepo)
	searchBookingsUC := ucBooking.NewSearchBookings(bookingRepo)
	exportBookingsUC := ucBooking.NewExportBookings(bookingRepo)

	// ======================================================
	// USE CASES / NOTIFICATIONS
	// ======================================================
	listNotificationsUC := ucNotification.NewListNotifications(notificationRepo)
	markNotificationReadUC := ucNotification.NewMarkNotificationRead(notificationRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	meHandler := handlers.NewMeHandler(userRepo, d.Log)

	equipmentHandler := handlers.NewEquipmentHandler(
		listEquipmentUC,
		equipmentDetailUC,
		saveEquipmentUC,
		deleteEquipmentUC,
		uploadImageUC,
		d.Log,
	)

	bookingHandler := handlers.NewBookingHandler(
		loadBookingFormUC,
		createBookingUC,
		reviewBookingUC,
		listMyBookingsUC,
		searchBookingsUC,
		exportBookingsUC,
		d.Log,
	)

	notificationHandler := handlers.NewNotificationHandler(
		listNotificationsUC,
		markNotificationReadUC,
		d.Log,
	)

	realtimeHandler := handlers.NewRealtimeHandler(d.Hub, d.Cfg, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, d.Log)

	managerOnly := middleware.RequireRole(userRepo, d.Log, models.RoleManager)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// token in query string, checked by the handler
		api.GET("/realtime", realtimeHandler.Connect)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/me/bookings", bookingHandler.ListMine)
			secured.GET("/me/notifications", notificationHandler.List)
			secured.PATCH("/me/notifications/:id/read", notificationHandler.MarkRead)

			// ------------------------------
			// EQUIPMENT
			// ------------------------------
			secured.GET("/equipment", equipmentHandler.List)
			secured.GET("/equipment/:id", equipmentHandler.Get)
			secured.POST("/equipment", managerOnly, equipmentHandler.Create)
			secured.PUT("/equipment/:id", managerOnly, equipmentHandler.Update)
			secured.DELETE("/equipment/:id", managerOnly, equipmentHandler.Delete)
			secured.POST("/equipment/:id/image", managerOnly, equipmentHandler.UploadImage)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.GET("/bookings/new", bookingHandler.NewForm)
			secured.POST("/bookings", bookingHandler.Create)
			secured.GET("/bookings", managerOnly, bookingHandler.Search)
			secured.GET("/bookings/export", managerOnly, bookingHandler.Export)
			secured.PATCH("/bookings/:id/approve", managerOnly, bookingHandler.Approve)
			secured.PATCH("/bookings/:id/reject", managerOnly, bookingHandler.Reject)
			secured.PATCH("/bookings/:id/complete", managerOnly, bookingHandler.Complete)

			secured.GET("/audit-logs", managerOnly, auditLogsHandler.List)
		}
	}
}
