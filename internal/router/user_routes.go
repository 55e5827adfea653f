package router

import (
	"galerie-server/internal/handler"

	"github.com/gin-gonic/gin"
)

func registerUserRoutes(api *gin.RouterGroup, h *handler.Handler) {
	user := api.Group("/user")
	{
		user.DELETE("", h.DeleteAccount)
		user.POST("/profile-picture", h.SetProfilePicture)
		user.DELETE("/profile-picture/:id", h.DeleteProfilePicture)
		user.POST("/tickets", h.SubmitTicket)
		user.GET("/notifications", h.ListNotifications)
		user.PUT("/notifications/:id/seen", h.MarkNotificationSeen)
	}
}
