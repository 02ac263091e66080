package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/raksinkh/equipment-management/internal/httpresp"
	"github.com/raksinkh/equipment-management/internal/middleware"
)

type MeHandler struct {
	users middleware.UserLookup
	log   *zap.Logger
}

func NewMeHandler(users middleware.UserLookup, log *zap.Logger) *MeHandler {
	return &MeHandler{users: users, log: log}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	user, ok := middleware.LoadUser(c, h.users, h.log)
	if !ok {
		return
	}

	httpresp.OK(c, gin.H{
		"user": gin.H{
			"id":         user.ID,
			"name":       user.Name,
			"email":      user.Email,
			"role":       user.Role,
			"is_manager": user.IsManager(),
		},
	})
}
