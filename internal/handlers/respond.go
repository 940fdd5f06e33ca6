package handlers

import (
	"log"
	"net/http"

	"github.com/estebancatanoe/IngenieriaWeb/internal/booking"

	"github.com/gin-gonic/gin"
)

// rejectStatus maps a rejection kind to an HTTP status. Clients must branch
// on the "kind" field of the response, not on the message text.
func rejectStatus(kind booking.Kind) int {
	switch kind {
	case booking.KindInvalidInput:
		return http.StatusBadRequest
	case booking.KindNotFound:
		return http.StatusNotFound
	case booking.KindForbidden:
		return http.StatusForbidden
	default:
		// device retired/unavailable, sanctions, overdue loans, conflicts
		return http.StatusConflict
	}
}

// fail writes the engine error as JSON. Storage failures become a plain 500
// and are logged; business rejections carry their kind.
func fail(c *gin.Context, err error) {
	if kind, ok := booking.KindOf(err); ok {
		c.JSON(rejectStatus(kind), gin.H{
			"kind":  string(kind),
			"error": err.Error(),
		})
		return
	}
	log.Printf("storage error (request %v): %v", c.Value("RequestID"), err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
