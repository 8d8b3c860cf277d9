package auth

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/snapocr/core/internal/models"
	"github.com/snapocr/core/internal/pkg/response"
	"github.com/snapocr/core/internal/pkg/session"
)

// failureDelay slows down credential guessing.
const failureDelay = 3 * time.Second

type Handler struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewHandler(db *gorm.DB, logger *zap.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	grp := rg.Group("/auth")
	grp.POST("/register", h.register)
	grp.POST("/login", h.login)
}

func (h *Handler) register(c *gin.Context) {
	var dto registerDTO
	if err := c.ShouldBindJSON(&dto); err != nil || dto.Username == "" || dto.Password == "" {
		response.BadRequest(c, "Username and password are required")
		return
	}

	var count int64
	if err := h.db.Model(&models.UserModel{}).Where("username = ?", dto.Username).Count(&count).Error; err != nil {
		response.InternalError(c, err)
		return
	}
	if count > 0 {
		response.Conflict(c, "Username already taken")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	name := dto.Name
	if name == "" {
		name = dto.Username
	}
	user := models.UserModel{
		Username: dto.Username,
		Name:     name,
		Password: string(hashed),
	}
	if err := h.db.Create(&user).Error; err != nil {
		response.InternalError(c, err)
		return
	}

	response.Created(c, userResponse{ID: user.ID, Username: user.Username, Name: user.Name})
}

func (h *Handler) login(c *gin.Context) {
	var dto loginDTO
	if err := c.ShouldBindJSON(&dto); err != nil || dto.Username == "" || dto.Password == "" {
		response.BadRequest(c, "Username and password are required")
		return
	}

	var user models.UserModel
	err := h.db.Where("username = ?", dto.Username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		h.rejectLogin(c, dto.Username)
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(dto.Password)) != nil {
		h.rejectLogin(c, dto.Username)
		return
	}

	token, _, err := session.Issue(h.db, user.ID, c.ClientIP(), c.Request.UserAgent(), session.DefaultTTL)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	now := time.Now()
	ip := c.ClientIP()
	h.db.Model(&user).Updates(map[string]any{
		"last_login_time": &now,
		"last_login_ip":   ip,
	})

	response.OK(c, gin.H{
		"token": token,
		"user":  userResponse{ID: user.ID, Username: user.Username, Name: user.Name},
	})
}

func (h *Handler) rejectLogin(c *gin.Context, username string) {
	h.logger.Warn("login rejected",
		zap.String("username", username),
		zap.String("ip", c.ClientIP()),
	)
	time.Sleep(failureDelay)
	response.Unauthorized(c)
}
