package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tourcraft/tourcraft-api/internal/middleware"
	"github.com/tourcraft/tourcraft-api/internal/services"
)

func (h *Handler) CreateReview(c *gin.Context) {
	var req services.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	review, err := h.Reviews.Create(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// GetReviewsForTour is public: anyone can read a tour's reviews.
func (h *Handler) GetReviewsForTour(c *gin.Context) {
	reviews, err := h.Reviews.ListForTour(c.Request.Context(), c.Param("tourId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *Handler) DeleteReview(c *gin.Context) {
	err := h.Reviews.Delete(c.Request.Context(), middleware.UserID(c), middleware.UserRole(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}
