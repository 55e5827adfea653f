package handler

import (
	"net/http"
	"time"

	"galerie-server/internal/common/httpx"
	"galerie-server/internal/consts"
	"galerie-server/internal/dto"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateGalerie(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	var req dto.CreateGalerieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	galerie, err := h.social.CreateGalerie(c.Request.Context(), actor, req.Name, req.Description)
	if err != nil {
		httpx.WriteServiceError(c, err, "could not create galerie")
		return
	}
	c.JSON(http.StatusCreated, galerie)
}

func (h *Handler) DeleteGalerie(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	galerieID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid galerie id"})
		return
	}

	if err := h.lifecycle.DeleteGalerie(c.Request.Context(), actor, galerieID); err != nil {
		httpx.WriteServiceError(c, err, "could not delete galerie")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "galerie deleted"})
}

func (h *Handler) CreateInvitation(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	galerieID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid galerie id"})
		return
	}
	var req dto.CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var ttl *time.Duration
	if req.TTLSeconds != nil {
		d := time.Duration(*req.TTLSeconds) * time.Second
		ttl = &d
	}
	invitation, err := h.social.CreateInvitation(c.Request.Context(), actor, galerieID, req.NumOfInvits, ttl)
	if err != nil {
		httpx.WriteServiceError(c, err, "could not create invitation")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"code": invitation.Code})
}

func (h *Handler) ExpireInvitations(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	galerieID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid galerie id"})
		return
	}

	if err := h.lifecycle.ExpireInvitations(c.Request.Context(), actor, galerieID); err != nil {
		httpx.WriteServiceError(c, err, "could not expire invitations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "expired invitations removed"})
}

func (h *Handler) Subscribe(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	galerie, err := h.social.SubscribeWithInvitation(c.Request.Context(), actor, req.Code)
	if err != nil {
		httpx.WriteServiceError(c, err, "could not subscribe")
		return
	}
	c.JSON(http.StatusOK, galerie)
}

func (h *Handler) Unsubscribe(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	galerieID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid galerie id"})
		return
	}

	if err := h.lifecycle.UnsubscribeGalerie(c.Request.Context(), actor, galerieID); err != nil {
		httpx.WriteServiceError(c, err, "could not unsubscribe")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "unsubscribed"})
}

func (h *Handler) RemoveMember(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	galerieID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid galerie id"})
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.lifecycle.RemoveGalerieMember(c.Request.Context(), actor, galerieID, userID); err != nil {
		httpx.WriteServiceError(c, err, "could not remove member")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "member removed"})
}

func (h *Handler) BlacklistMember(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	galerieID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid galerie id"})
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	var req dto.BlacklistMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.lifecycle.BlacklistGalerieMember(c.Request.Context(), actor, galerieID, userID, req.Reason); err != nil {
		httpx.WriteServiceError(c, err, "could not black-list member")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "member black-listed"})
}

func (h *Handler) UpdateGalerieRole(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	galerieID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid galerie id"})
		return
	}
	var req dto.UpdateGalerieRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.social.UpdateGalerieRole(c.Request.Context(), actor, galerieID, req.UserID, consts.GalerieRole(req.Role))
	if err != nil {
		httpx.WriteServiceError(c, err, "could not update role")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "role updated"})
}

func (h *Handler) SetCoverPicture(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	galerieID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid galerie id"})
		return
	}
	pictureID, ok := pathID(c, "pictureId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid picture id"})
		return
	}

	if err := h.social.SetCoverPicture(c.Request.Context(), actor, galerieID, pictureID); err != nil {
		httpx.WriteServiceError(c, err, "could not set cover picture")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cover picture updated"})
}
