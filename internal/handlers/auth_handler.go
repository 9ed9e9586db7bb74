package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/velourstudio/salon-scheduler/internal/config"
	"github.com/velourstudio/salon-scheduler/internal/httperr"
	"github.com/velourstudio/salon-scheduler/internal/models"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	LocationName    string `json:"location_name" binding:"required"`
	LocationSlug    string `json:"location_slug" binding:"required"`
	LocationPhone   string `json:"location_phone"`
	LocationAddress string `json:"location_address"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeMissingFields, "Invalid registration payload.")
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.LocationSlug))

	var count int64
	h.db.Model(&models.Location{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "SLUG_TAKEN", "That location slug is already in use.")
		return
	}

	loc := models.Location{
		Name:    req.LocationName,
		Slug:    slug,
		Phone:   req.LocationPhone,
		Address: req.LocationAddress,
	}

	if err := h.db.Create(&loc).Error; err != nil {
		httperr.Internal(c)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user := models.User{
		LocationID:   loc.ID,
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         "manager",
	}

	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c)
		return
	}

	signed, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":          user.ID,
			"name":        user.Name,
			"email":       user.Email,
			"phone":       user.Phone,
			"location_id": user.LocationID,
		},
		"location": gin.H{
			"id":      loc.ID,
			"name":    loc.Name,
			"slug":    loc.Slug,
			"phone":   loc.Phone,
			"address": loc.Address,
		},
		"token": signed,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeMissingFields, "Email and password are required.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Preload("Location").
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.Unauthorized(c, "INVALID_CREDENTIALS", "Invalid email or password.")
			return
		}
		httperr.Internal(c)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "INVALID_CREDENTIALS", "Invalid email or password.")
		return
	}

	signed, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":          user.ID,
			"name":        user.Name,
			"email":       user.Email,
			"phone":       user.Phone,
			"location_id": user.LocationID,
		},
		"location": gin.H{
			"id":      user.Location.ID,
			"name":    user.Location.Name,
			"slug":    user.Location.Slug,
			"phone":   user.Location.Phone,
			"address": user.Location.Address,
		},
		"token": signed,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":        user.ID,
		"locationId": user.LocationID,
		"role":       user.Role,
		"exp":        time.Now().Add(24 * time.Hour).Unix(),
		"iat":        time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
