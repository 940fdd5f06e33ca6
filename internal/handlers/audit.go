package handlers

import (
	"net/http"

	"github.com/estebancatanoe/IngenieriaWeb/internal/database"
	"github.com/estebancatanoe/IngenieriaWeb/internal/models"

	"github.com/gin-gonic/gin"
)

func ListAuditLogs(c *gin.Context) {
	var logs []models.AuditLog
	err := database.DB.
		Preload("User").
		Order("created_at desc").
		Limit(200).
		Find(&logs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load audit log"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
