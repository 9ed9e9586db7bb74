package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/velourstudio/salon-scheduler/internal/httperr"
	"github.com/velourstudio/salon-scheduler/internal/media"
	"github.com/velourstudio/salon-scheduler/internal/middleware"
	"github.com/velourstudio/salon-scheduler/internal/models"
)

const maxPhotoBytes = 8 << 20 // 8 MiB

type MediaHandler struct {
	db       *gorm.DB
	uploader *media.Uploader
}

func NewMediaHandler(db *gorm.DB, uploader *media.Uploader) *MediaHandler {
	return &MediaHandler{db: db, uploader: uploader}
}

// UploadPhoto replaces the caller's profile photo.
func (h *MediaHandler) UploadPhoto(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, httperr.CodeMissingFields, "A photo file is required.")
		return
	}
	defer file.Close()

	if header.Size > maxPhotoBytes {
		httperr.BadRequest(c, "FILE_TOO_LARGE", "Photo must be 8 MB or smaller.")
		return
	}

	url, err := h.uploader.UploadPhoto(c.Request.Context(), file)
	if err != nil {
		httperr.BadRequest(c, "INVALID_IMAGE", "Could not read the image. Use JPEG or PNG.")
		return
	}

	if err := h.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("photo_url", url).Error; err != nil {

		httperr.Internal(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"photo_url": url})
}
