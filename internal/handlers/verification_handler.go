package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velourstudio/salon-scheduler/internal/httperr"
	"github.com/velourstudio/salon-scheduler/internal/usecase/verification"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type VerificationHandler struct {
	sendCode    *verification.SendCode
	confirmCode *verification.ConfirmCode
}

func NewVerificationHandler(
	sendCode *verification.SendCode,
	confirmCode *verification.ConfirmCode,
) *VerificationHandler {
	return &VerificationHandler{
		sendCode:    sendCode,
		confirmCode: confirmCode,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type SendCodeRequest struct {
	Phone string `json:"phone" binding:"required"`
}

type ConfirmCodeRequest struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

////////////////////////////////////////////////////////
// SEND
////////////////////////////////////////////////////////

func (h *VerificationHandler) Send(c *gin.Context) {
	var req SendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeMissingFields, "Phone is required.")
		return
	}

	if err := h.sendCode.Execute(c.Request.Context(), req.Phone); err != nil {
		mapVerificationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sent": true})
}

////////////////////////////////////////////////////////
// CONFIRM
////////////////////////////////////////////////////////

func (h *VerificationHandler) Confirm(c *gin.Context) {
	var req ConfirmCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeMissingFields, "Phone and code are required.")
		return
	}

	result, err := h.confirmCode.Execute(c.Request.Context(), req.Phone, req.Code)
	if err != nil {
		mapVerificationError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
