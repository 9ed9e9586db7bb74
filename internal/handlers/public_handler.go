package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/velourstudio/salon-scheduler/internal/domain/appointment"
	"github.com/velourstudio/salon-scheduler/internal/httperr"
	"github.com/velourstudio/salon-scheduler/internal/models"
	"github.com/velourstudio/salon-scheduler/internal/timezone"
	ucAppointment "github.com/velourstudio/salon-scheduler/internal/usecase/appointment"
	"github.com/velourstudio/salon-scheduler/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db            *gorm.DB
	createBooking *booking.CreateBooking
	getAvail      *ucAppointment.GetAvailability
}

func NewPublicHandler(
	db *gorm.DB,
	createBooking *booking.CreateBooking,
	getAvail *ucAppointment.GetAvailability,
) *PublicHandler {
	return &PublicHandler{
		db:            db,
		createBooking: createBooking,
		getAvail:      getAvail,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateBookingRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Email     string `json:"email"`

	TechnicianID uint `json:"technician_id" binding:"required"`
	ServiceID    uint `json:"service_id" binding:"required"`

	Date  string `json:"date" binding:"required"` // YYYY-MM-DD
	Time  string `json:"time" binding:"required"` // HH:mm
	Notes string `json:"notes"`
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	slug := c.Param("slug")

	var loc models.Location
	if err := h.db.Where("slug = ?", slug).First(&loc).Error; err != nil {
		httperr.NotFound(c, "Location not found.")
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))

	q := h.db.Where("location_id = ? AND active = true", loc.ID)
	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"location": loc,
		"services": services,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	slug := c.Param("slug")
	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")
	technicianIDStr := c.Query("technician_id")

	if dateStr == "" || serviceIDStr == "" || technicianIDStr == "" {
		httperr.BadRequest(c, httperr.CodeMissingFields, "date, service_id and technician_id are required.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeMissingFields, "Invalid service_id.")
		return
	}

	technicianID, err := strconv.ParseUint(technicianIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeMissingFields, "Invalid technician_id.")
		return
	}

	var loc models.Location
	if err := h.db.Where("slug = ?", slug).First(&loc).Error; err != nil {
		httperr.NotFound(c, "Location not found.")
		return
	}

	date, err := time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(loc.Timezone),
	)
	if err != nil {
		httperr.BadRequest(c, "INVALID_DATE", "Invalid date.")
		return
	}

	slots, err := h.getAvail.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			LocationID:   loc.ID,
			TechnicianID: uint(technicianID),
			ServiceID:    uint(serviceID),
			Date:         date,
		},
	)
	if err != nil {
		if httperr.IsBusiness(err, "service_not_found") {
			httperr.BadRequest(c, "SERVICE_NOT_FOUND", "Unknown service.")
			return
		}
		httperr.Internal(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	slug := c.Param("slug")

	var loc models.Location
	if err := h.db.Where("slug = ?", slug).First(&loc).Error; err != nil {
		httperr.NotFound(c, "Location not found.")
		return
	}

	var req PublicCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeMissingFields, "Missing or invalid booking fields.")
		return
	}

	var technician models.User
	if err := h.db.
		Where("id = ? AND location_id = ?", req.TechnicianID, loc.ID).
		First(&technician).Error; err != nil {

		httperr.BadRequest(c, "TECHNICIAN_NOT_FOUND", "Unknown technician.")
		return
	}

	result, err := h.createBooking.Execute(
		c.Request.Context(),
		booking.CreateBookingInput{
			LocationID:      loc.ID,
			TechnicianID:    technician.ID,
			ClientFirstName: req.FirstName,
			ClientLastName:  req.LastName,
			ClientPhone:     req.Phone,
			ClientEmail:     req.Email,
			ServiceID:       req.ServiceID,
			Date:            req.Date,
			Time:            req.Time,
			Notes:           req.Notes,
		},
	)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}
