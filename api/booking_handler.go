package api

import (
	"context"
	"errors"
	"net/http"

	bk "github.com/arch1tect/dj-booking-backend/booking"
	"github.com/gin-gonic/gin"
)

type BookingService interface {
	ListBookings(ctx context.Context) []bk.Booking
	ListBookedDates(ctx context.Context) []string
	CreateBooking(ctx context.Context, candidate bk.Booking) (bk.Booking, error)
	ConfirmBooking(ctx context.Context, id string) error
	CancelBooking(ctx context.Context, id string) error
}

type BookingHandler struct {
	service BookingService
}

func NewBookingHandler(service BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(rg *gin.RouterGroup, adminOnly gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.PUT("/:id/confirm", adminOnly, h.Confirm)
	rg.PUT("/:id/cancel", adminOnly, h.Cancel)
}

func (h *BookingHandler) List(c *gin.Context) {
	if c.Query("datesOnly") == "true" {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"dates":   h.service.ListBookedDates(c.Request.Context()),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"bookings": h.service.ListBookings(c.Request.Context()),
	})
}

func (h *BookingHandler) Create(c *gin.Context) {
	var candidate bk.Booking

	if err := c.ShouldBindJSON(&candidate); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid JSON body",
		})
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), candidate)

	if err != nil {
		c.Error(err)

		var validationErr *bk.ValidationError

		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   validationErr.Reason,
			})
		} else if errors.Is(err, bk.ErrDateAlreadyBooked) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error":   "This date is already booked",
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Failed to save booking",
			})
		}

		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"booking": created,
		"message": "Booking request submitted successfully",
	})
}

func (h *BookingHandler) Confirm(c *gin.Context) {
	id := c.Param("id")

	err := h.service.ConfirmBooking(c.Request.Context(), id)

	if err != nil {
		c.Error(err)
		h.transitionError(c, err, "Failed to confirm booking")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking confirmed"})
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	id := c.Param("id")

	err := h.service.CancelBooking(c.Request.Context(), id)

	if err != nil {
		c.Error(err)
		h.transitionError(c, err, "Failed to cancel booking")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking cancelled"})
}

func (h *BookingHandler) transitionError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, bk.ErrBookingNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Booking not found",
		})
	} else if errors.Is(err, bk.ErrInvalidBookingState) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid booking state",
		})
	} else {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fallback,
		})
	}
}
