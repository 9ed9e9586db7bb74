package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/velourstudio/salon-scheduler/internal/httperr"
	"github.com/velourstudio/salon-scheduler/internal/middleware"
	"github.com/velourstudio/salon-scheduler/internal/models"
	"github.com/velourstudio/salon-scheduler/internal/timezone"
)

type LocationHandler struct {
	db *gorm.DB
}

func NewLocationHandler(db *gorm.DB) *LocationHandler {
	return &LocationHandler{db: db}
}

type UpdateLocationConfigRequest struct {
	Name              *string `json:"name"`
	Phone             *string `json:"phone"`
	Address           *string `json:"address"`
	Timezone          *string `json:"timezone"`
	OpenTime          *string `json:"open_time"`
	CloseTime         *string `json:"close_time"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes"`
}

func (h *LocationHandler) GetMyLocation(c *gin.Context) {
	locationID := c.MustGet(middleware.ContextLocationID).(uint)

	var loc models.Location
	if err := h.db.First(&loc, locationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "Location not found.")
			return
		}
		httperr.Internal(c)
		return
	}

	c.JSON(http.StatusOK, loc)
}

func (h *LocationHandler) UpdateMyLocation(c *gin.Context) {
	locationID := c.MustGet(middleware.ContextLocationID).(uint)

	var loc models.Location
	if err := h.db.First(&loc, locationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "Location not found.")
			return
		}
		httperr.Internal(c)
		return
	}

	var req UpdateLocationConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeMissingFields, "Invalid request payload.")
		return
	}

	if req.Name != nil {
		loc.Name = *req.Name
	}
	if req.Phone != nil {
		loc.Phone = *req.Phone
	}
	if req.Address != nil {
		loc.Address = *req.Address
	}

	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "INVALID_TIMEZONE", "Unknown timezone identifier.")
			return
		}
		loc.Timezone = *req.Timezone
	}

	if req.OpenTime != nil {
		if !validHourMinute(*req.OpenTime) {
			httperr.BadRequest(c, "INVALID_HOURS", "open_time must be HH:mm.")
			return
		}
		loc.OpenTime = *req.OpenTime
	}

	if req.CloseTime != nil {
		if !validHourMinute(*req.CloseTime) {
			httperr.BadRequest(c, "INVALID_HOURS", "close_time must be HH:mm.")
			return
		}
		loc.CloseTime = *req.CloseTime
	}

	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "INVALID_MIN_ADVANCE", "min_advance_minutes must be zero or positive.")
			return
		}
		loc.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if err := h.db.Save(&loc).Error; err != nil {
		httperr.Internal(c)
		return
	}

	c.JSON(http.StatusOK, loc)
}
