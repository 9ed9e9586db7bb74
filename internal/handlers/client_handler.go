package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/velourstudio/salon-scheduler/internal/httperr"
	"github.com/velourstudio/salon-scheduler/internal/models"
	"github.com/velourstudio/salon-scheduler/internal/phone"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

type BlockClientRequest struct {
	Reason string `json:"reason"`
}

func (h *ClientHandler) List(c *gin.Context) {
	search := strings.TrimSpace(c.Query("search"))

	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "50")

	page, _ := strconv.Atoi(pageStr)
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	q := h.db.Model(&models.Client{})

	if search != "" {
		if digits := phone.Normalize(search); digits != "" && digits == search {
			q = q.Where("phone LIKE ?", "%"+digits+"%")
		} else {
			like := "%" + strings.ToLower(search) + "%"
			q = q.Where(
				"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?",
				like, like, like,
			)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c)
		return
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&clients).Error; err != nil {

		httperr.Internal(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":    page,
		"limit":   limit,
		"total":   total,
		"clients": clients,
	})
}

func (h *ClientHandler) Get(c *gin.Context) {
	clientID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeMissingFields, "Invalid client id.")
		return
	}

	var client models.Client
	if err := h.db.First(&client, clientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "Client not found.")
			return
		}
		httperr.Internal(c)
		return
	}

	var appointments []models.Appointment
	if err := h.db.
		Preload("Service").
		Preload("Technician").
		Where("client_id = ?", client.ID).
		Order("start_time DESC").
		Limit(20).
		Find(&appointments).Error; err != nil {

		httperr.Internal(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"client":       client,
		"appointments": appointments,
	})
}

func (h *ClientHandler) Block(c *gin.Context) {
	h.setBlocked(c, true)
}

func (h *ClientHandler) Unblock(c *gin.Context) {
	h.setBlocked(c, false)
}

func (h *ClientHandler) setBlocked(c *gin.Context, blocked bool) {
	clientID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeMissingFields, "Invalid client id.")
		return
	}

	var req BlockClientRequest
	if blocked {
		// Reason is optional; an empty body is fine.
		_ = c.ShouldBindJSON(&req)
	}

	reason := req.Reason
	if !blocked {
		reason = ""
	}

	result := h.db.Model(&models.Client{}).
		Where("id = ?", clientID).
		Updates(map[string]interface{}{
			"is_blocked":   blocked,
			"block_reason": reason,
		})

	if result.Error != nil {
		httperr.Internal(c)
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "Client not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_blocked": blocked})
}
