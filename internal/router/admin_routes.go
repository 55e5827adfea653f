package router

import (
	"galerie-server/internal/handler"

	"github.com/gin-gonic/gin"
)

func registerAdminRoutes(admin *gin.RouterGroup, h *handler.Handler) {
	admin.POST("/blacklist", h.BlacklistUser)
	admin.PUT("/roles", h.UpdateUserRole)
	admin.POST("/beta-keys", h.CreateBetaKey)
}
