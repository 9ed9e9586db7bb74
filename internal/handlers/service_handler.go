package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/velourstudio/salon-scheduler/internal/httperr"
	"github.com/velourstudio/salon-scheduler/internal/middleware"
	"github.com/velourstudio/salon-scheduler/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

type CreateServiceRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	DurationMin   int     `json:"duration_min" binding:"required"`
	Price         float64 `json:"price"`
	DepositAmount float64 `json:"deposit_amount"`
	Category      string  `json:"category"`
}

type UpdateServiceRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	DurationMin   *int     `json:"duration_min"`
	Price         *float64 `json:"price"`
	DepositAmount *float64 `json:"deposit_amount"`
	Category      *string  `json:"category"`
	Active        *bool    `json:"active"`
}

func (h *ServiceHandler) List(c *gin.Context) {
	locationID := c.MustGet(middleware.ContextLocationID).(uint)

	var services []models.Service
	if err := h.db.
		Where("location_id = ?", locationID).
		Order("id ASC").
		Find(&services).Error; err != nil {

		httperr.Internal(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"services": services})
}

func (h *ServiceHandler) Create(c *gin.Context) {
	locationID := c.MustGet(middleware.ContextLocationID).(uint)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeMissingFields, "Name and duration_min are required.")
		return
	}

	if req.DurationMin <= 0 {
		httperr.BadRequest(c, "INVALID_DURATION", "duration_min must be positive.")
		return
	}

	svc := models.Service{
		LocationID:    locationID,
		Name:          req.Name,
		Description:   req.Description,
		DurationMin:   req.DurationMin,
		Price:         req.Price,
		DepositAmount: req.DepositAmount,
		Category:      req.Category,
		Active:        true,
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c)
		return
	}

	c.JSON(http.StatusCreated, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	locationID := c.MustGet(middleware.ContextLocationID).(uint)

	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeMissingFields, "Invalid service id.")
		return
	}

	var svc models.Service
	if err := h.db.
		Where("id = ? AND location_id = ?", serviceID, locationID).
		First(&svc).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "Service not found.")
			return
		}
		httperr.Internal(c)
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeMissingFields, "Invalid request payload.")
		return
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.DurationMin != nil {
		if *req.DurationMin <= 0 {
			httperr.BadRequest(c, "INVALID_DURATION", "duration_min must be positive.")
			return
		}
		svc.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.DepositAmount != nil {
		svc.DepositAmount = *req.DepositAmount
	}
	if req.Category != nil {
		svc.Category = *req.Category
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c)
		return
	}

	c.JSON(http.StatusOK, svc)
}

// Delete deactivates rather than removes: past appointments keep a
// valid service reference.
func (h *ServiceHandler) Delete(c *gin.Context) {
	locationID := c.MustGet(middleware.ContextLocationID).(uint)

	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeMissingFields, "Invalid service id.")
		return
	}

	result := h.db.Model(&models.Service{}).
		Where("id = ? AND location_id = ?", serviceID, locationID).
		Update("active", false)

	if result.Error != nil {
		httperr.Internal(c)
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "Service not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deactivated": true})
}
