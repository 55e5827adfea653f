package handler

import (
	"strconv"

	"galerie-server/internal/service"

	"github.com/gin-gonic/gin"
)

// Handler bundles the HTTP endpoints over the service layer.
type Handler struct {
	auth          *service.AuthService
	social        *service.SocialService
	lifecycle     *service.LifecycleService
	profile       *service.ProfileService
	notifications *service.NotificationService
	admin         *service.AdminService
}

func New(
	auth *service.AuthService,
	social *service.SocialService,
	lifecycle *service.LifecycleService,
	profile *service.ProfileService,
	notifications *service.NotificationService,
	admin *service.AdminService,
) *Handler {
	return &Handler{
		auth:          auth,
		social:        social,
		lifecycle:     lifecycle,
		profile:       profile,
		notifications: notifications,
		admin:         admin,
	}
}

// actorID reads the authenticated user id set by the JWT middleware.
func actorID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("id")
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

// pathID parses a uint path parameter.
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
