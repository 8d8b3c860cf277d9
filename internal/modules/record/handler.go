package record

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gorm.io/gorm"

	"github.com/snapocr/core/internal/middleware"
	"github.com/snapocr/core/internal/models"
	"github.com/snapocr/core/internal/pkg/response"
)

type Handler struct {
	db *gorm.DB
	md goldmark.Markdown
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		db: db,
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/save", authMW, h.save)
	rg.GET("/history", authMW, h.history)
	rg.GET("/history/:id/html", authMW, h.renderHTML)
}

func (h *Handler) save(c *gin.Context) {
	var dto saveDTO
	if err := c.ShouldBindJSON(&dto); err != nil || dto.ImageURL == "" || dto.Markdown == "" {
		response.BadRequest(c, "Image URL and markdown are required")
		return
	}

	rec := models.OcrRecordModel{
		UserID:   middleware.CurrentUserID(c),
		ImageURL: dto.ImageURL,
		Markdown: dto.Markdown,
	}
	if err := h.db.Create(&rec).Error; err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"id": rec.ID})
}

func (h *Handler) history(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var records []models.OcrRecordModel
	err := h.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(historyLimit).
		Find(&records).Error
	if err != nil {
		response.InternalError(c, err)
		return
	}

	out := make([]recordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, recordResponse{
			ID:        rec.ID,
			ImageURL:  rec.ImageURL,
			Markdown:  rec.Markdown,
			CreatedAt: rec.CreatedAt,
		})
	}
	response.OK(c, out)
}

func (h *Handler) renderHTML(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var rec models.OcrRecordModel
	err := h.db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(c, "Record not found")
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := h.md.Convert([]byte(rec.Markdown), &buf); err != nil {
		response.InternalError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
