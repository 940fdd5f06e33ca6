package handlers

import (
	"net/http"
	"time"

	"github.com/estebancatanoe/IngenieriaWeb/internal/database"
	"github.com/estebancatanoe/IngenieriaWeb/internal/models"

	"github.com/gin-gonic/gin"
)

type reservationForm struct {
	DeviceID uint      `json:"device_id"`
	StartsAt time.Time `json:"starts_at"`
	Hours    int       `json:"hours"`
}

// CreateReservation admits a reservation for the logged-in researcher.
func (a *API) CreateReservation(c *gin.Context) {
	var form reservationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	reservation, err := a.Engine.CreateReservation(
		c.Request.Context(),
		form.DeviceID,
		sessionUsername(c),
		form.StartsAt,
		form.Hours,
	)
	if err != nil {
		fail(c, err)
		return
	}

	if uid, ok := sessionUserID(c); ok {
		database.CreateAuditLog(uid, "reservation", reservation.ID, "create", "reserved device")
	}

	c.JSON(http.StatusCreated, gin.H{"reservation": reservation})
}

func (a *API) ListReservations(c *gin.Context) {
	reservations, err := a.Engine.ListReservations(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": reservations})
}

func (a *API) MyReservations(c *gin.Context) {
	reservations, err := a.Engine.ListUserReservations(c.Request.Context(), sessionUsername(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": reservations})
}

type statusForm struct {
	Status string `json:"status"`
}

// UpdateReservationStatus applies an administrative approval transition.
func (a *API) UpdateReservationStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var form statusForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	reservation, err := a.Engine.UpdateApprovalStatus(
		c.Request.Context(),
		id,
		sessionUsername(c),
		models.ApprovalStatus(form.Status),
	)
	if err != nil {
		fail(c, err)
		return
	}

	if uid, ok := sessionUserID(c); ok {
		database.CreateAuditLog(uid, "reservation", reservation.ID, "status_change", "set status to "+string(reservation.Status))
	}

	c.JSON(http.StatusOK, gin.H{"reservation": reservation})
}
