package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/fatosaurus/HouseofRojanatorn-sub000/internal/model/entity"
	"github.com/fatosaurus/HouseofRojanatorn-sub000/internal/repository"
	"github.com/redis/go-redis/v9"
)

const (
	settingsCacheSteps  = "rojanatorn:settings:steps"
	settingsCacheFields = "rojanatorn:settings:fields"
	settingsCacheTTL    = 10 * time.Minute
)

// SettingsService 流程与字段配置服务。rdb 可为 nil，此时每次读库。
type SettingsService struct {
	repo *repository.SettingsRepository
	rdb  *redis.Client
}

func NewSettingsService(repo *repository.SettingsRepository, rdb *redis.Client) *SettingsService {
	return &SettingsService{repo: repo, rdb: rdb}
}

// WorkflowStepRequest 工序配置项
type WorkflowStepRequest struct {
	Key            string `json:"key"`
	Label          string `json:"label"`
	SortOrder      int    `json:"sort_order"`
	RequirePhoto   bool   `json:"require_photo"`
	RequireComment bool   `json:"require_comment"`
	IsActive       *bool  `json:"is_active"`
}

// CustomFieldRequest 自定义字段配置项
type CustomFieldRequest struct {
	Key       string   `json:"key"`
	Label     string   `json:"label"`
	Type      string   `json:"type"`
	Options   []string `json:"options"`
	Required  bool     `json:"required"`
	IsActive  *bool    `json:"is_active"`
	SortOrder int      `json:"sort_order"`
}

// ReplaceSettingsRequest 整体替换配置的请求体
type ReplaceSettingsRequest struct {
	Steps  []WorkflowStepRequest `json:"steps"`
	Fields []CustomFieldRequest  `json:"fields"`
}

// GetSteps 读取全部工序配置，库中为空时返回默认流水线（不落库）
func (s *SettingsService) GetSteps(ctx context.Context) ([]entity.WorkflowStep, error) {
	if cached, ok := cacheGet[[]entity.WorkflowStep](ctx, s.rdb, settingsCacheSteps); ok {
		return cached, nil
	}

	steps, err := s.repo.FindSteps(ctx)
	if err != nil {
		return nil, err
	}
	if len(steps) == 0 {
		steps = entity.DefaultWorkflowSteps()
	}

	cacheSet(ctx, s.rdb, settingsCacheSteps, steps)
	return steps, nil
}

// GetFields 读取全部字段配置，库中为空时返回内建系统字段（不落库）
func (s *SettingsService) GetFields(ctx context.Context) ([]entity.CustomFieldDef, error) {
	if cached, ok := cacheGet[[]entity.CustomFieldDef](ctx, s.rdb, settingsCacheFields); ok {
		return cached, nil
	}

	fields, err := s.repo.FindFields(ctx)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		fields = entity.DefaultCustomFields()
	}

	cacheSet(ctx, s.rdb, settingsCacheFields, fields)
	return fields, nil
}

// GetActiveSteps 仅返回启用的工序
func (s *SettingsService) GetActiveSteps(ctx context.Context) ([]entity.WorkflowStep, error) {
	steps, err := s.GetSteps(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]entity.WorkflowStep, 0, len(steps))
	for _, step := range steps {
		if step.IsActive {
			active = append(active, step)
		}
	}
	return active, nil
}

// GetActiveFields 仅返回启用的字段
func (s *SettingsService) GetActiveFields(ctx context.Context) ([]entity.CustomFieldDef, error) {
	fields, err := s.GetFields(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]entity.CustomFieldDef, 0, len(fields))
	for _, field := range fields {
		if field.IsActive {
			active = append(active, field)
		}
	}
	return active, nil
}

// ActiveStepRegistry 启用工序按key索引，供状态校验用
func (s *SettingsService) ActiveStepRegistry(ctx context.Context) (map[string]entity.WorkflowStep, error) {
	steps, err := s.GetActiveSteps(ctx)
	if err != nil {
		return nil, err
	}
	registry := make(map[string]entity.WorkflowStep, len(steps))
	for _, step := range steps {
		registry[step.Key] = step
	}
	return registry, nil
}

// ReplaceSettings 整体替换工序与字段配置。
// key 归一化后去重（先到先得），系统字段key不归一化；缺失的系统字段自动
// 以隐藏状态补回；启用工序不得为空。写入成功后失效缓存。
func (s *SettingsService) ReplaceSettings(ctx context.Context, req ReplaceSettingsRequest) ([]entity.WorkflowStep, []entity.CustomFieldDef, error) {
	steps, err := buildSteps(req.Steps)
	if err != nil {
		return nil, nil, err
	}
	fields, err := buildFields(req.Fields)
	if err != nil {
		return nil, nil, err
	}

	if err := s.repo.ReplaceAll(ctx, steps, fields); err != nil {
		return nil, nil, err
	}

	if s.rdb != nil {
		s.rdb.Del(ctx, settingsCacheSteps, settingsCacheFields)
	}
	return steps, fields, nil
}

func buildSteps(reqs []WorkflowStepRequest) ([]entity.WorkflowStep, error) {
	seen := make(map[string]bool)
	steps := make([]entity.WorkflowStep, 0, len(reqs))
	activeCount := 0

	for _, req := range reqs {
		key := entity.NormalizeKey(req.Key)
		if key == "" {
			return nil, validationErrorf("workflow step key %q normalizes to empty", req.Key)
		}
		if seen[key] {
			continue
		}
		seen[key] = true

		active := true
		if req.IsActive != nil {
			active = *req.IsActive
		}
		if active {
			activeCount++
		}

		label := req.Label
		if label == "" {
			label = key
		}
		steps = append(steps, entity.WorkflowStep{
			Key:            key,
			Label:          label,
			SortOrder:      req.SortOrder,
			RequirePhoto:   req.RequirePhoto,
			RequireComment: req.RequireComment,
			IsActive:       active,
		})
	}

	if activeCount == 0 {
		return nil, validationErrorf("at least one active workflow step is required")
	}

	sort.SliceStable(steps, func(i, j int) bool {
		if steps[i].SortOrder != steps[j].SortOrder {
			return steps[i].SortOrder < steps[j].SortOrder
		}
		return steps[i].Key < steps[j].Key
	})
	return steps, nil
}

func buildFields(reqs []CustomFieldRequest) ([]entity.CustomFieldDef, error) {
	seen := make(map[string]bool)
	fields := make([]entity.CustomFieldDef, 0, len(reqs))

	for _, req := range reqs {
		key := req.Key
		system := isSystemFieldKey(key)
		if !system {
			key = entity.NormalizeKey(key)
			if key == "" {
				return nil, validationErrorf("custom field key %q normalizes to empty", req.Key)
			}
		}
		if seen[key] {
			continue
		}
		seen[key] = true

		active := true
		if req.IsActive != nil {
			active = *req.IsActive
		}
		fieldType := req.Type
		if fieldType == "" {
			fieldType = entity.FieldTypeText
		}
		if !validFieldType(fieldType) {
			return nil, validationErrorf("unknown custom field type %q", req.Type)
		}
		label := req.Label
		if label == "" {
			label = key
		}

		fields = append(fields, entity.CustomFieldDef{
			Key:       key,
			Label:     label,
			Type:      fieldType,
			Options:   entity.StringArray(req.Options),
			Required:  req.Required,
			IsActive:  active,
			IsSystem:  system,
			SortOrder: req.SortOrder,
		})
	}

	// 系统字段不可删除，缺失时以隐藏状态补回
	for _, def := range entity.DefaultCustomFields() {
		if !seen[def.Key] {
			def.IsActive = false
			def.SortOrder = len(fields) + 1
			fields = append(fields, def)
		}
	}

	sort.SliceStable(fields, func(i, j int) bool {
		if fields[i].SortOrder != fields[j].SortOrder {
			return fields[i].SortOrder < fields[j].SortOrder
		}
		return fields[i].Key < fields[j].Key
	})
	return fields, nil
}

func isSystemFieldKey(key string) bool {
	return key == entity.SystemFieldDesigner || key == entity.SystemFieldCraftsman
}

func validFieldType(t string) bool {
	switch t {
	case entity.FieldTypeText, entity.FieldTypeTextarea, entity.FieldTypeNumber, entity.FieldTypeDate, entity.FieldTypeSelect:
		return true
	}
	return false
}

// StageEvidence 状态变更时随请求提交的或历史上已存在的证据
type StageEvidence struct {
	HasPhoto   bool
	HasComment bool
}

// ValidateStageRequirement 校验目标工序的照片/备注要求。
// registry 中查不到的工序不做要求（配置被并发修改时放行）。
func ValidateStageRequirement(registry map[string]entity.WorkflowStep, status string, evidence StageEvidence) error {
	step, ok := registry[status]
	if !ok {
		return nil
	}
	if step.RequirePhoto && !evidence.HasPhoto {
		return validationErrorf("stage %q requires a photo before entering", status)
	}
	if step.RequireComment && !evidence.HasComment {
		return validationErrorf("stage %q requires a comment before entering", status)
	}
	return nil
}

// === redis 读缓存 ===

func cacheGet[T any](ctx context.Context, rdb *redis.Client, key string) (T, bool) {
	var zero T
	if rdb == nil {
		return zero, false
	}
	raw, err := rdb.Get(ctx, key).Result()
	if err != nil {
		return zero, false
	}
	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return zero, false
	}
	return out, true
}

func cacheSet[T any](ctx context.Context, rdb *redis.Client, key string, value T) {
	if rdb == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	rdb.Set(ctx, key, raw, settingsCacheTTL)
}
