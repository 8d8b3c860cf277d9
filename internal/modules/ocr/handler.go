package ocr

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/snapocr/core/internal/config"
	"github.com/snapocr/core/internal/middleware"
	"github.com/snapocr/core/internal/models"
	"github.com/snapocr/core/internal/pkg/response"
)

type Handler struct {
	db  *gorm.DB
	cfg *config.AppConfig
	svc *Service
}

func NewHandler(db *gorm.DB, cfg *config.AppConfig, svc *Service) *Handler {
	return &Handler{db: db, cfg: cfg, svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/ocr", h.extract)
	rg.POST("/test-connection", h.testConnection)
}

func (h *Handler) extract(c *gin.Context) {
	var dto ocrDTO
	if err := c.ShouldBindJSON(&dto); err != nil || dto.ImageURL == "" {
		response.BadRequest(c, "Image URL is required")
		return
	}

	settings := DefaultSettings(h.cfg.OCR)
	if userID := middleware.CurrentUserID(c); userID != "" {
		var stored models.OcrSettingsModel
		err := h.db.Where("user_id = ?", userID).First(&stored).Error
		switch {
		case err == nil:
			settings = ResolveSettings(&stored, settings)
		case errors.Is(err, gorm.ErrRecordNotFound):
			// no overrides stored
		default:
			response.InternalError(c, err)
			return
		}
	}

	markdown, err := h.svc.Invoke(context.Background(), settings, dto.ImageURL)
	if err != nil {
		var pe *ProviderError
		if errors.As(err, &pe) {
			response.InternalErrorMsg(c, pe.Error())
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.OK(c, gin.H{"markdown": markdown})
}

func (h *Handler) testConnection(c *gin.Context) {
	var dto testConnectionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if dto.APIKey == "" {
		response.BadRequest(c, "API key is required")
		return
	}
	result, err := h.svc.TestConnection(context.Background(), Provider(dto.Provider), dto.APIKey, dto.Model, dto.Endpoint)
	if err != nil {
		var pe *ProviderError
		if errors.As(err, &pe) {
			response.BadRequest(c, "API Error: "+pe.Err.Error())
			return
		}
		response.BadRequest(c, err.Error())
		return
	}
	if !result.Success {
		response.BadRequest(c, "No response from API")
		return
	}

	response.OK(c, result)
}
