// README: Inline trip validation for the booking widget.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wheels/internal/types"
)

type TripHandler struct{}

func NewTripHandler() *TripHandler {
	return &TripHandler{}
}

// Validate runs the field-level checks the widget shows next to each input.
// Always 200: validation problems are data, not an HTTP failure.
func (h *TripHandler) Validate(c *gin.Context) {
	var p tripPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	cfg, err := p.toConfiguration()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	errs := cfg.Validate()
	if errs == nil {
		errs = []types.FieldError{}
	}
	c.JSON(http.StatusOK, gin.H{"valid": len(errs) == 0, "errors": errs})
}
