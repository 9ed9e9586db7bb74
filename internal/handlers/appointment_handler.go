package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/velourstudio/salon-scheduler/internal/httperr"
	"github.com/velourstudio/salon-scheduler/internal/httpresp"
	"github.com/velourstudio/salon-scheduler/internal/middleware"
	"github.com/velourstudio/salon-scheduler/internal/models"
	ucAppointment "github.com/velourstudio/salon-scheduler/internal/usecase/appointment"
	"github.com/velourstudio/salon-scheduler/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type AppointmentHandler struct {
	createBooking *booking.CreateBooking
	listByDate    *ucAppointment.ListAppointmentsByDate
	listByMonth   *ucAppointment.ListAppointmentsByMonth
	cancel        *ucAppointment.CancelAppointment
	checkIn       *ucAppointment.CheckInAppointment
	complete      *ucAppointment.CompleteAppointment
	noShow        *ucAppointment.MarkNoShow
}

func NewAppointmentHandler(
	createBooking *booking.CreateBooking,
	listByDate *ucAppointment.ListAppointmentsByDate,
	listByMonth *ucAppointment.ListAppointmentsByMonth,
	cancel *ucAppointment.CancelAppointment,
	checkIn *ucAppointment.CheckInAppointment,
	complete *ucAppointment.CompleteAppointment,
	noShow *ucAppointment.MarkNoShow,
) *AppointmentHandler {
	return &AppointmentHandler{
		createBooking: createBooking,
		listByDate:    listByDate,
		listByMonth:   listByMonth,
		cancel:        cancel,
		checkIn:       checkIn,
		complete:      complete,
		noShow:        noShow,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type StaffCreateAppointmentRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Email     string `json:"email"`

	ServiceID uint `json:"service_id" binding:"required"`

	Date  string `json:"date" binding:"required"` // YYYY-MM-DD
	Time  string `json:"time" binding:"required"` // HH:mm
	Notes string `json:"notes"`
}

////////////////////////////////////////////////////////
// CREATE (walk-in / phone booking made by staff)
////////////////////////////////////////////////////////

func (h *AppointmentHandler) Create(c *gin.Context) {
	locationID := c.MustGet(middleware.ContextLocationID).(uint)
	technicianID := c.MustGet(middleware.ContextUserID).(uint)

	var req StaffCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeMissingFields, "Missing or invalid appointment fields.")
		return
	}

	result, err := h.createBooking.Execute(
		c.Request.Context(),
		booking.CreateBookingInput{
			LocationID:      locationID,
			TechnicianID:    technicianID,
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

////////////////////////////////////////////////////////
// LISTS
////////////////////////////////////////////////////////

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	locationID := c.MustGet(middleware.ContextLocationID).(uint)
	technicianID := c.MustGet(middleware.ContextUserID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, httperr.CodeMissingFields, "date is required.")
		return
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		httperr.BadRequest(c, "INVALID_DATE", "Invalid date.")
		return
	}

	out, err := h.listByDate.Execute(c.Request.Context(), technicianID, locationID, date)
	if err != nil {
		httperr.Internal(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":         dateStr,
		"appointments": out,
	})
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	locationID := c.MustGet(middleware.ContextLocationID).(uint)
	technicianID := c.MustGet(middleware.ContextUserID).(uint)

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "INVALID_DATE", "Invalid year.")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "INVALID_DATE", "Invalid month.")
		return
	}

	out, err := h.listByMonth.Execute(c.Request.Context(), technicianID, locationID, year, month)
	if err != nil {
		httperr.Internal(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": out,
	})
}

////////////////////////////////////////////////////////
// STATUS ACTIONS
////////////////////////////////////////////////////////

type statusAction func(ctx context.Context, locationID, technicianID, appointmentID uint) (*models.Appointment, error)

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.runStatusAction(c, h.cancel.Execute)
}

func (h *AppointmentHandler) CheckIn(c *gin.Context) {
	h.runStatusAction(c, h.checkIn.Execute)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.runStatusAction(c, h.complete.Execute)
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	h.runStatusAction(c, h.noShow.Execute)
}

func (h *AppointmentHandler) runStatusAction(c *gin.Context, action statusAction) {
	locationID := c.MustGet(middleware.ContextLocationID).(uint)
	technicianID := c.MustGet(middleware.ContextUserID).(uint)

	appointmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeMissingFields, "Invalid appointment id.")
		return
	}

	ap, err := action(c.Request.Context(), locationID, technicianID, uint(appointmentID))
	if err != nil {
		mapStatusActionError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func mapStatusActionError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "appointment_not_found"):
		httperr.NotFound(c, "Appointment not found.")
	case httperr.IsBusiness(err, "invalid_state"):
		httperr.Conflict(c, "The appointment's current status does not allow that action.")
	default:
		httperr.Internal(c)
	}
}
