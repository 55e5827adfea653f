package router

import (
	"galerie-server/internal/handler"
	"galerie-server/internal/middleware"
	"galerie-server/internal/repository"

	"github.com/gin-gonic/gin"
)

type Router struct {
	handler *handler.Handler
	stores  repository.Stores
}

func NewRouter(h *handler.Handler, stores repository.Stores) *Router {
	return &Router{handler: h, stores: stores}
}

func (rt *Router) Init(r *gin.Engine) {
	api := r.Group("/api")
	api.Use(middleware.RateLimit())

	registerAuthRoutes(api, rt.handler)

	authed := api.Group("")
	authed.Use(middleware.JWTAuth(), middleware.BanCheck(rt.stores.User))
	registerGalerieRoutes(authed, rt.handler)
	registerUserRoutes(authed, rt.handler)

	admin := authed.Group("/admin")
	admin.Use(middleware.AdminCheck())
	registerAdminRoutes(admin, rt.handler)
}
