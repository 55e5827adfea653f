package router

import (
	"galerie-server/internal/handler"

	"github.com/gin-gonic/gin"
)

func registerGalerieRoutes(api *gin.RouterGroup, h *handler.Handler) {
	galeries := api.Group("/galeries")
	{
		galeries.POST("", h.CreateGalerie)
		galeries.DELETE("/:id", h.DeleteGalerie)
		galeries.POST("/subscribe", h.Subscribe)
		galeries.DELETE("/:id/subscription", h.Unsubscribe)
		galeries.POST("/:id/invitations", h.CreateInvitation)
		galeries.DELETE("/:id/invitations/expired", h.ExpireInvitations)
		galeries.POST("/:id/frames", h.PostFrame)
		galeries.DELETE("/:id/members/:userId", h.RemoveMember)
		galeries.POST("/:id/blacklist/:userId", h.BlacklistMember)
		galeries.PUT("/:id/roles", h.UpdateGalerieRole)
		galeries.PUT("/:id/cover/:pictureId", h.SetCoverPicture)
	}

	frames := api.Group("/frames")
	{
		frames.DELETE("/:id", h.DeleteFrame)
		frames.POST("/:id/like", h.ToggleLike)
	}
}
