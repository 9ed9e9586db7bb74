package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/velourstudio/salon-scheduler/internal/httperr"
	"github.com/velourstudio/salon-scheduler/internal/httpresp"
	"github.com/velourstudio/salon-scheduler/internal/middleware"
	"github.com/velourstudio/salon-scheduler/internal/models"
)

// BlockHandler manages a technician's own unavailability intervals.
type BlockHandler struct {
	db *gorm.DB
}

func NewBlockHandler(db *gorm.DB) *BlockHandler {
	return &BlockHandler{db: db}
}

type CreateBlockRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	Reason    string    `json:"reason"`
}

func (h *BlockHandler) List(c *gin.Context) {
	technicianID := c.MustGet(middleware.ContextUserID).(uint)

	var blocks []models.TechnicianBlock
	if err := h.db.
		Where("technician_id = ? AND end_time > ?", technicianID, time.Now()).
		Order("start_time ASC").
		Find(&blocks).Error; err != nil {

		httperr.Internal(c)
		return
	}

	httpresp.List(c, blocks)
}

func (h *BlockHandler) Create(c *gin.Context) {
	technicianID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeMissingFields, "start_time and end_time are required.")
		return
	}

	if !req.EndTime.After(req.StartTime) {
		httperr.BadRequest(c, "INVALID_INTERVAL", "end_time must be after start_time.")
		return
	}

	block := models.TechnicianBlock{
		TechnicianID: technicianID,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Reason:       req.Reason,
	}

	if err := h.db.Create(&block).Error; err != nil {
		httperr.Internal(c)
		return
	}

	httpresp.Created(c, block)
}

func (h *BlockHandler) Delete(c *gin.Context) {
	technicianID := c.MustGet(middleware.ContextUserID).(uint)

	blockID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeMissingFields, "Invalid block id.")
		return
	}

	result := h.db.
		Where("id = ? AND technician_id = ?", blockID, technicianID).
		Delete(&models.TechnicianBlock{})

	if result.Error != nil {
		httperr.Internal(c)
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "Block not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
