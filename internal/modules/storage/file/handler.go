package file

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/snapocr/core/internal/config"
	"github.com/snapocr/core/internal/pkg/response"
)

// Store abstracts where uploaded files end up.
type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

type Handler struct {
	cfg    *config.AppConfig
	store  Store
	logger *zap.Logger
}

func NewHandler(cfg *config.AppConfig, logger *zap.Logger) *Handler {
	h := &Handler{cfg: cfg, logger: logger}
	if cfg.Storage.S3.Enable {
		h.store = NewS3Store(cfg.Storage.S3)
	} else {
		h.store = &localStore{cfg: cfg}
	}
	return h
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/upload", authMW, h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "File is required")
		return
	}

	maxBytes := int64(h.cfg.Storage.MaxUploadMB) << 20
	if fh.Size > maxBytes {
		response.BadRequest(c, "File too large")
		return
	}

	contentType := fh.Header.Get("Content-Type")
	if !isAllowedImage(contentType) {
		response.BadRequest(c, "Only image uploads are allowed")
		return
	}

	src, err := fh.Open()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxBytes+1))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if int64(len(data)) > maxBytes {
		response.BadRequest(c, "File too large")
		return
	}

	key := buildObjectKey(fh.Filename, contentType, time.Now())
	url, err := h.store.Put(c.Request.Context(), key, contentType, data)
	if err != nil {
		h.logger.Error("upload failed", zap.String("key", key), zap.Error(err))
		response.InternalErrorMsg(c, "Upload failed")
		return
	}

	response.Created(c, gin.H{"url": url})
}

// localStore writes uploads under the static directory and serves them via
// the /static route.
type localStore struct {
	cfg *config.AppConfig
}

func (l *localStore) Put(_ context.Context, key, _ string, data []byte) (string, error) {
	dst := filepath.Join(l.cfg.Storage.StaticDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", err
	}
	base := strings.TrimSuffix(l.cfg.Storage.PublicURL, "/")
	return base + "/static/" + key, nil
}
