package settings

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/snapocr/core/internal/middleware"
	"github.com/snapocr/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{svc: NewService(db)}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	grp := rg.Group("/settings", authMW)
	grp.GET("", h.get)
	grp.POST("", h.update)
}

func (h *Handler) get(c *gin.Context) {
	stored, err := h.svc.Get(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, Render(stored))
}

func (h *Handler) update(c *gin.Context) {
	var dto settingsDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if _, err := h.svc.Upsert(middleware.CurrentUserID(c), dto); err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"success": true})
}
