// README: Booking submission handler.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wheels/internal/modules/booking"
)

type BookingHandler struct {
	booking *booking.Service
}

func NewBookingHandler(svc *booking.Service) *BookingHandler {
	return &BookingHandler{booking: svc}
}

func (h *BookingHandler) Submit(c *gin.Context) {
	var contact booking.Contact
	if err := c.ShouldBindJSON(&contact); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	res, err := h.booking.Submit(c.Request.Context(), c.Param("profile"), contact)
	switch {
	case errors.Is(err, booking.ErrNoSession):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case errors.Is(err, booking.ErrSubmissionInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if len(res.FieldErrors) > 0 {
		c.JSON(http.StatusUnprocessableEntity, res)
		return
	}
	c.JSON(http.StatusOK, res)
}
