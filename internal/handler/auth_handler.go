package handler

import (
	"net/http"

	"galerie-server/internal/common/httpx"
	"galerie-server/internal/dto"
	"galerie-server/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Pseudonym: req.Pseudonym,
		UserName:  req.UserName,
		Email:     req.Email,
		Password:  req.Password,
		BetaKey:   req.BetaKey,
	})
	if err != nil {
		httpx.WriteServiceError(c, err, "registration failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "user_name": user.UserName})
}

func (h *Handler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.UserName, req.Password)
	if err != nil {
		httpx.WriteServiceError(c, err, "login failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
