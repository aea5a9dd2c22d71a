package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tourcraft/tourcraft-api/internal/metrics"
	"github.com/tourcraft/tourcraft-api/internal/services"
)

func (h *Handler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.Users.Register(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	token, user, err := h.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		metrics.IncLogin("failure")
		h.respondError(c, err)
		return
	}
	metrics.IncLogin("success")
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}
