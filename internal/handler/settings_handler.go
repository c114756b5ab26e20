package handler

import (
	"github.com/fatosaurus/HouseofRojanatorn-sub000/internal/repository"
	"github.com/fatosaurus/HouseofRojanatorn-sub000/internal/service"
	"github.com/gin-gonic/gin"
)

// SettingsHandler 流程与字段配置处理器
type SettingsHandler struct {
	svc *service.SettingsService
}

func NewSettingsHandler(svc *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// Get 读取当前配置
func (h *SettingsHandler) Get(c *gin.Context) {
	steps, err := h.svc.GetSteps(c.Request.Context())
	if err != nil {
		ServiceError(c, err)
		return
	}
	fields, err := h.svc.GetFields(c.Request.Context())
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, gin.H{
		"steps":  steps,
		"fields": fields,
	})
}

// Replace 整体替换配置
func (h *SettingsHandler) Replace(c *gin.Context) {
	var req service.ReplaceSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	steps, fields, err := h.svc.ReplaceSettings(c.Request.Context(), req)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, gin.H{
		"steps":  steps,
		"fields": fields,
	})
}

// DirectoryHandler 设计师/工匠名录处理器
type DirectoryHandler struct {
	repo *repository.DirectoryRepository
}

func NewDirectoryHandler(repo *repository.DirectoryRepository) *DirectoryHandler {
	return &DirectoryHandler{repo: repo}
}

// List 名录列表，可按 role=designer/craftsman 过滤
func (h *DirectoryHandler) List(c *gin.Context) {
	people, err := h.repo.FindAll(c.Request.Context(), c.Query("role"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, people)
}
