package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/raksinkh/equipment-management/internal/config"
	"github.com/raksinkh/equipment-management/internal/httperr"
	"github.com/raksinkh/equipment-management/internal/middleware"
	"github.com/raksinkh/equipment-management/internal/notify"
)

// RealtimeHandler upgrades signed-in users to a websocket that receives
// their notifications as they are delivered.
type RealtimeHandler struct {
	hub      *notify.Hub
	cfg      *config.Config
	log      *zap.Logger
	upgrader websocket.Upgrader
}

func NewRealtimeHandler(hub *notify.Hub, cfg *config.Config, log *zap.Logger) *RealtimeHandler {
	return &RealtimeHandler{
		hub: hub,
		cfg: cfg,
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || middleware.OriginAllowed(cfg.CORSOrigins, origin)
			},
		},
	}
}

// Connect accepts the token as a query parameter because browsers cannot
// set headers on a websocket handshake.
func (h *RealtimeHandler) Connect(c *gin.Context) {
	raw := c.Query("token")
	if raw == "" {
		raw = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	}
	if raw == "" {
		httperr.Unauthorized(c, "missing_token", "A token is required.")
		return
	}

	userID, err := middleware.ParseToken(h.cfg.JWTSecret, raw)
	if err != nil {
		httperr.Unauthorized(c, "invalid_token", "Invalid or expired token.")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.String("user_id", userID), zap.Error(err))
		return
	}

	client := notify.NewClient(h.hub, conn, userID)
	h.hub.Register(client)
	h.log.Info("websocket connected",
		zap.String("user_id", userID),
		zap.Int("connections", h.hub.Connections(userID)),
	)

	go client.WritePump()
	go client.ReadPump()
}
