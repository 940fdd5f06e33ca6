package handlers

import (
	"net/http"
	"strconv"

	"github.com/estebancatanoe/IngenieriaWeb/internal/booking"
	"github.com/estebancatanoe/IngenieriaWeb/internal/database"
	"github.com/estebancatanoe/IngenieriaWeb/internal/models"

	"github.com/gin-gonic/gin"
)

type deviceForm struct {
	Description string `json:"description"`
	DeviceType  string `json:"device_type"`
	Brand       string `json:"brand"`
	Value       string `json:"value"`
	State       string `json:"state"`
	Note        string `json:"note"`
}

func (f deviceForm) input() booking.DeviceInput {
	return booking.DeviceInput{
		Description: f.Description,
		DeviceType:  f.DeviceType,
		Brand:       f.Brand,
		Value:       f.Value,
		State:       models.DeviceState(f.State),
		Note:        f.Note,
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// ListDevices returns the devices that have not been retired.
func (a *API) ListDevices(c *gin.Context) {
	devices, err := a.Engine.ListActiveDevices(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"devices": devices})
}

func (a *API) GetDevice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	device, err := a.Engine.GetDevice(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"device": device})
}

func (a *API) CreateDevice(c *gin.Context) {
	var form deviceForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	device, err := a.Engine.RegisterDevice(c.Request.Context(), form.input())
	if err != nil {
		fail(c, err)
		return
	}

	if uid, ok := sessionUserID(c); ok {
		database.CreateAuditLog(uid, "device", device.ID, "create", "registered device: "+device.DeviceType)
	}

	c.JSON(http.StatusCreated, gin.H{"device": device})
}

func (a *API) UpdateDevice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var form deviceForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	device, err := a.Engine.UpdateDevice(c.Request.Context(), id, form.input())
	if err != nil {
		fail(c, err)
		return
	}

	if uid, ok := sessionUserID(c); ok {
		database.CreateAuditLog(uid, "device", device.ID, "update", "updated device: "+device.DeviceType)
	}

	c.JSON(http.StatusOK, gin.H{"device": device})
}

// RetireDevice soft-deletes a device. Existing reservations are left
// untouched; new reservation attempts will be rejected.
func (a *API) RetireDevice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	device, err := a.Engine.RetireDevice(c.Request.Context(), id, sessionUsername(c))
	if err != nil {
		fail(c, err)
		return
	}

	if uid, ok := sessionUserID(c); ok {
		database.CreateAuditLog(uid, "device", device.ID, "retire", "retired device: "+device.DeviceType)
	}

	c.JSON(http.StatusOK, gin.H{"device": device})
}
