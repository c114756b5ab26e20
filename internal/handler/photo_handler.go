package handler

import (
	"io"
	"strings"
	"time"

	"github.com/fatosaurus/HouseofRojanatorn-sub000/internal/service"
	"github.com/gin-gonic/gin"
)

// PhotoHandler 工单照片处理器
type PhotoHandler struct {
	svc *service.PhotoService
}

func NewPhotoHandler(svc *service.PhotoService) *PhotoHandler {
	return &PhotoHandler{svc: svc}
}

// Upload 上传照片，返回对象路径。路径由调用方写回工单的 photos 列表。
func (h *PhotoHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		BadRequest(c, "Photo file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	objectName, err := h.svc.Upload(c.Request.Context(), file, header.Filename, header.Size, contentType)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Created(c, gin.H{"path": objectName})
}

// Download 按对象路径取回照片
func (h *PhotoHandler) Download(c *gin.Context) {
	objectName := strings.TrimPrefix(c.Param("name"), "/")
	if objectName == "" {
		BadRequest(c, "Photo path is required")
		return
	}

	reader, err := h.svc.Download(c.Request.Context(), objectName)
	if err != nil {
		ServiceError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Type", "application/octet-stream")
	if _, err := io.Copy(c.Writer, reader); err != nil {
		InternalError(c, "write photo: "+err.Error())
	}
}

// PresignedURL 生成限时下载链接
func (h *PhotoHandler) PresignedURL(c *gin.Context) {
	objectName := c.Query("path")
	if objectName == "" {
		BadRequest(c, "Photo path is required")
		return
	}

	url, err := h.svc.PresignedURL(c.Request.Context(), objectName, 15*time.Minute)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, gin.H{"url": url})
}
