package handler

import (
	"net/http"

	"galerie-server/internal/common/httpx"
	"galerie-server/internal/dto"
	"galerie-server/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) PostFrame(c *gin.Context) {
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
	var req dto.PostFrameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	uploads := make([]service.PictureUpload, len(req.Pictures))
	for i, p := range req.Pictures {
		uploads[i] = service.PictureUpload{
			Original: p.Original,
			Cropped:  p.Cropped,
			Pending:  p.Pending,
			Format:   p.Format,
			Width:    p.Width,
			Height:   p.Height,
		}
	}

	frame, err := h.social.PostFrame(c.Request.Context(), actor, galerieID, req.Description, uploads)
	if err != nil {
		httpx.WriteServiceError(c, err, "could not post frame")
		return
	}
	c.JSON(http.StatusCreated, frame)
}

func (h *Handler) DeleteFrame(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	frameID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid frame id"})
		return
	}

	if err := h.lifecycle.DeleteFrame(c.Request.Context(), actor, frameID); err != nil {
		httpx.WriteServiceError(c, err, "could not delete frame")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "frame deleted"})
}

func (h *Handler) ToggleLike(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	frameID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid frame id"})
		return
	}

	numOfLikes, err := h.lifecycle.ToggleLike(c.Request.Context(), actor, frameID)
	if err != nil {
		httpx.WriteServiceError(c, err, "could not toggle like")
		return
	}
	c.JSON(http.StatusOK, gin.H{"num_of_likes": numOfLikes})
}
