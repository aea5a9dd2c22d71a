package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tourcraft/tourcraft-api/internal/metrics"
	"github.com/tourcraft/tourcraft-api/internal/middleware"
	"github.com/tourcraft/tourcraft-api/internal/services"
)

func (h *Handler) CreateBooking(c *gin.Context) {
	var req services.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	booking, err := h.Bookings.Create(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	metrics.IncBookingCreated()
	c.JSON(http.StatusCreated, booking)
}

// GetBookings returns the caller's own bookings.
func (h *Handler) GetBookings(c *gin.Context) {
	bookings, err := h.Bookings.ListForUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetAllBookings returns every booking. Admin only.
func (h *Handler) GetAllBookings(c *gin.Context) {
	bookings, err := h.Bookings.ListAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *Handler) GetBooking(c *gin.Context) {
	booking, err := h.Bookings.Get(c.Request.Context(), middleware.UserID(c), middleware.UserRole(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *Handler) UpdateBooking(c *gin.Context) {
	var req services.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	booking, err := h.Bookings.Update(c.Request.Context(), middleware.UserID(c), middleware.UserRole(c), c.Param("id"), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *Handler) DeleteBooking(c *gin.Context) {
	err := h.Bookings.Cancel(c.Request.Context(), middleware.UserID(c), middleware.UserRole(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted"})
}
