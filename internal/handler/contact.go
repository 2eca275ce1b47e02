package handler

import (
	"net/http"

	"github.com/Adarsha5421/Grainly-final/internal/models"
	"github.com/Adarsha5421/Grainly-final/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ContactHandler stores submissions from the public contact form.
type ContactHandler struct {
	DB *gorm.DB
}

func NewContactHandler(db *gorm.DB) *ContactHandler {
	return &ContactHandler{DB: db}
}

type contactReq struct {
	Name    string `json:"name" binding:"required,max=128"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required,max=4096"`
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req contactReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	msg := models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}
	if err := h.DB.Create(&msg).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save message")
		return
	}

	util.Success(c, util.Response{"message": "thanks, we'll get back to you"})
}
