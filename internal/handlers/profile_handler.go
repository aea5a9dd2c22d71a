package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tourcraft/tourcraft-api/internal/middleware"
)

func (h *Handler) GetProfile(c *gin.Context) {
	user, err := h.Users.GetProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.Users.UpdateProfile(c.Request.Context(), middleware.UserID(c), req.Name, req.Email)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
