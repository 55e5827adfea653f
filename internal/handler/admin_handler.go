package handler

import (
	"net/http"

	"galerie-server/internal/common/httpx"
	"galerie-server/internal/consts"
	"galerie-server/internal/dto"
	"galerie-server/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) BlacklistUser(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	var req dto.BlacklistUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.admin.BlacklistUser(c.Request.Context(), actor, req.UserID, req.Reason); err != nil {
		httpx.WriteServiceError(c, err, "could not black-list user")
		return
	}
	middleware.ClearUserBanCache(req.UserID)

	c.JSON(http.StatusOK, gin.H{"message": "user black-listed"})
}

func (h *Handler) UpdateUserRole(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	var req dto.UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.admin.UpdateUserRole(c.Request.Context(), actor, req.UserID, consts.Role(req.Role)); err != nil {
		httpx.WriteServiceError(c, err, "could not update role")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "role updated"})
}

func (h *Handler) CreateBetaKey(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	var req dto.CreateBetaKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	key, err := h.admin.CreateBetaKey(c.Request.Context(), actor, req.Email)
	if err != nil {
		httpx.WriteServiceError(c, err, "could not create beta key")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"code": key.Code})
}
