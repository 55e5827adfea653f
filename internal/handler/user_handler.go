package handler

import (
	"net/http"

	"galerie-server/internal/common/httpx"
	"galerie-server/internal/dto"
	"galerie-server/internal/middleware"
	"galerie-server/internal/service"

	"github.com/gin-gonic/gin"
)

// DeleteAccount is self-deletion only: the password and confirmation
// sentence are verified before the cascade runs.
func (h *Handler) DeleteAccount(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	var req dto.DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	if err := h.auth.VerifyDeletion(ctx, actor, req.Password, req.Confirmation); err != nil {
		httpx.WriteServiceError(c, err, "could not delete account")
		return
	}
	if err := h.lifecycle.DeleteUser(ctx, actor); err != nil {
		httpx.WriteServiceError(c, err, "could not delete account")
		return
	}
	middleware.ClearUserBanCache(actor)

	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}

func (h *Handler) SetProfilePicture(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	var req dto.PictureUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	picture, err := h.profile.SetProfilePicture(c.Request.Context(), actor, service.PictureUpload{
		Original: req.Original,
		Cropped:  req.Cropped,
		Pending:  req.Pending,
		Format:   req.Format,
		Width:    req.Width,
		Height:   req.Height,
	})
	if err != nil {
		httpx.WriteServiceError(c, err, "could not set profile picture")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": picture.ID})
}

func (h *Handler) DeleteProfilePicture(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	pictureID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid picture id"})
		return
	}

	if err := h.profile.DeleteProfilePicture(c.Request.Context(), actor, pictureID); err != nil {
		httpx.WriteServiceError(c, err, "could not delete profile picture")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile picture deleted"})
}

func (h *Handler) SubmitTicket(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	var req dto.SubmitTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.social.SubmitTicket(c.Request.Context(), actor, req.Header, req.Body); err != nil {
		httpx.WriteServiceError(c, err, "could not submit ticket")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "ticket submitted"})
}

func (h *Handler) ListNotifications(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}

	views, err := h.notifications.List(c.Request.Context(), actor)
	if err != nil {
		httpx.WriteServiceError(c, err, "could not list notifications")
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *Handler) MarkNotificationSeen(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	notificationID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	if err := h.notifications.MarkSeen(c.Request.Context(), actor, notificationID); err != nil {
		httpx.WriteServiceError(c, err, "could not mark notification")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification seen"})
}
