package handler

import (
	"net/http"
	"strconv"

	"github.com/Adarsha5421/Grainly-final/internal/models"
	"github.com/Adarsha5421/Grainly-final/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PulseHandler serves the product catalog.
type PulseHandler struct {
	DB *gorm.DB
}

func NewPulseHandler(db *gorm.DB) *PulseHandler {
	return &PulseHandler{DB: db}
}

// List handles GET /api/pulses.
func (h *PulseHandler) List(c *gin.Context) {
	var pulses []models.Pulse
	if err := h.DB.Where("in_stock = ?", true).
		Order("name ASC").
		Find(&pulses).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to fetch products")
		return
	}
	util.Success(c, util.Response{"pulses": pulses})
}

// Get handles GET /api/pulses/:id.
func (h *PulseHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid product id")
		return
	}

	var pulse models.Pulse
	if err := h.DB.First(&pulse, uint(id)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "product not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to fetch product")
		}
		return
	}
	util.Success(c, util.Response{"pulse": pulse})
}
