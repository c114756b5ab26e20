package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fatosaurus/HouseofRojanatorn-sub000/internal/model/entity"
	"github.com/fatosaurus/HouseofRojanatorn-sub000/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProjectService 制作工单服务
type ProjectService struct {
	db       *gorm.DB
	repos    *repository.Repositories
	settings *SettingsService
	logger   *zap.Logger
}

func NewProjectService(db *gorm.DB, repos *repository.Repositories, settings *SettingsService, logger *zap.Logger) *ProjectService {
	return &ProjectService{db: db, repos: repos, settings: settings, logger: logger}
}

// CreateProjectRequest 新建工单请求
type CreateProjectRequest struct {
	Code          string                `json:"code" binding:"required"`
	PieceName     string                `json:"piece_name" binding:"required"`
	PieceType     string                `json:"piece_type"`
	Status        string                `json:"status"`
	DesignerName  string                `json:"designer_name"`
	CraftsmanName string                `json:"craftsman_name"`
	PlatingTags   []string              `json:"plating_tags"`
	SettingCost   float64               `json:"setting_cost"`
	DiamondCost   float64               `json:"diamond_cost"`
	TotalCost     *float64              `json:"total_cost"`
	SellingPrice  float64               `json:"selling_price"`
	UsageNotes    string                `json:"usage_notes"`
	Photos        []string              `json:"photos"`
	CustomerID    *string               `json:"customer_id"`
	CompletedAt   *time.Time            `json:"completed_at"`
	SoldAt        *time.Time            `json:"sold_at"`
	CustomFields  map[string]*string    `json:"custom_fields"`
	Gemstones     []GemstoneLineRequest `json:"gemstones"`
	Note          string                `json:"note"`
}

// UpdateProjectRequest 部分更新请求：只有请求体里出现过的字段才会被改动
type UpdateProjectRequest struct {
	PieceName     Field[string]                `json:"piece_name"`
	PieceType     Field[string]                `json:"piece_type"`
	Status        Field[string]                `json:"status"`
	DesignerName  Field[string]                `json:"designer_name"`
	CraftsmanName Field[string]                `json:"craftsman_name"`
	PlatingTags   Field[[]string]              `json:"plating_tags"`
	SettingCost   Field[float64]               `json:"setting_cost"`
	DiamondCost   Field[float64]               `json:"diamond_cost"`
	TotalCost     Field[*float64]              `json:"total_cost"`
	SellingPrice  Field[float64]               `json:"selling_price"`
	UsageNotes    Field[string]                `json:"usage_notes"`
	Photos        Field[[]string]              `json:"photos"`
	CustomerID    Field[*string]               `json:"customer_id"`
	CompletedAt   Field[*time.Time]            `json:"completed_at"`
	SoldAt        Field[*time.Time]            `json:"sold_at"`
	CustomFields  Field[map[string]*string]    `json:"custom_fields"`
	Gemstones     Field[[]GemstoneLineRequest] `json:"gemstones"`
	Note          Field[string]                `json:"note"`
	StagePhotos   Field[[]string]              `json:"stage_photos"`
}

// Create 新建工单。宝石取价、名录建档、日志追加与工单写入在同一事务内完成。
func (s *ProjectService) Create(ctx context.Context, req CreateProjectRequest) (*entity.ManufacturingProject, error) {
	if s.db == nil {
		return nil, repository.ErrNotConfigured
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, validationErrorf("code is required")
	}
	if _, err := s.repos.Project.FindByCode(ctx, code); err == nil {
		return nil, validationErrorf("project code %q already exists", code)
	} else if err != repository.ErrNotFound {
		return nil, err
	}

	pieceName := strings.TrimSpace(req.PieceName)
	if pieceName == "" {
		return nil, validationErrorf("piece_name is required")
	}

	pieceType := strings.TrimSpace(req.PieceType)
	if pieceType == "" {
		pieceType = entity.PieceTypeOther
	}
	if !entity.ValidPieceTypes[pieceType] {
		return nil, validationErrorf("unknown piece type %q", req.PieceType)
	}

	registry, err := s.settings.ActiveStepRegistry(ctx)
	if err != nil {
		return nil, err
	}
	status := entity.NormalizeKey(req.Status)
	if status == "" {
		steps, err := s.settings.GetActiveSteps(ctx)
		if err != nil {
			return nil, err
		}
		if len(steps) == 0 {
			return nil, validationErrorf("no active workflow steps configured")
		}
		status = steps[0].Key
	}
	if _, ok := registry[status]; !ok {
		return nil, validationErrorf("status %q is not an active workflow step", req.Status)
	}

	evidence := StageEvidence{
		HasPhoto:   hasNonBlank(req.Photos),
		HasComment: strings.TrimSpace(req.Note) != "" || strings.TrimSpace(req.UsageNotes) != "",
	}
	if err := ValidateStageRequirement(registry, status, evidence); err != nil {
		return nil, err
	}

	project := &entity.ManufacturingProject{
		ID:            uuid.New().String()[:32],
		Code:          code,
		PieceName:     pieceName,
		PieceType:     pieceType,
		Status:        status,
		DesignerName:  strings.TrimSpace(req.DesignerName),
		CraftsmanName: strings.TrimSpace(req.CraftsmanName),
		PlatingTags:   sanitizeStringList(req.PlatingTags),
		SettingCost:   Round2(req.SettingCost),
		DiamondCost:   Round2(req.DiamondCost),
		SellingPrice:  Round2(req.SellingPrice),
		UsageNotes:    req.UsageNotes,
		Photos:        sanitizeStringList(req.Photos),
		CustomerID:    req.CustomerID,
		CompletedAt:   req.CompletedAt,
		CustomFields:  sanitizeCustomFields(req.CustomFields),
	}

	resolver := NewPricingResolver(s.repos.Inventory)
	lines := make([]entity.GemstoneLine, 0, len(req.Gemstones))
	for _, lineReq := range req.Gemstones {
		line, err := resolver.Resolve(ctx, project.ID, lineReq)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	project.GemstoneCost = SumGemstoneCost(lines)
	project.TotalCost = AggregateTotalCost(project.SettingCost, project.DiamondCost, project.GemstoneCost, req.TotalCost)

	if status == entity.StatusSold {
		soldAt := time.Now()
		if req.SoldAt != nil {
			soldAt = *req.SoldAt
		}
		project.SoldAt = &soldAt
	}

	note := strings.TrimSpace(req.Note)
	if note == "" {
		note = fmt.Sprintf("Project created with status: %s", status)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
		}
		log := &entity.ActivityLog{
			ID:            uuid.New().String()[:32],
			ProjectID:     project.ID,
			Status:        status,
			CraftsmanName: project.CraftsmanName,
			Note:          note,
			Photos:        sanitizeStringList(req.Photos),
		}
		if err := tx.Create(log).Error; err != nil {
			return err
		}
		return upsertDirectoryNames(tx, project.DesignerName, project.CraftsmanName)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("project created",
		zap.String("project_id", project.ID),
		zap.String("code", project.Code),
		zap.String("status", project.Status))

	return s.Get(ctx, project.ID)
}

// Update 部分更新工单。状态变更校验目标工序的照片/备注要求；
// 变更为 sold 时盖售出时间戳，离开 sold 时清掉；请求未携带 status 则售出信息原样保留。
func (s *ProjectService) Update(ctx context.Context, id string, req UpdateProjectRequest) (*entity.ManufacturingProject, error) {
	if s.db == nil {
		return nil, repository.ErrNotConfigured
	}

	project, err := s.repos.Project.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	statusChanged := false
	targetStatus := project.Status
	if req.Status.Set && strings.TrimSpace(req.Status.Value) != "" {
		targetStatus = entity.NormalizeKey(req.Status.Value)
		statusChanged = targetStatus != project.Status
	}

	if statusChanged {
		registry, err := s.settings.ActiveStepRegistry(ctx)
		if err != nil {
			return nil, err
		}
		if _, ok := registry[targetStatus]; !ok {
			return nil, validationErrorf("status %q is not an active workflow step", req.Status.Value)
		}

		// 照片证据按合并后的状态取：本次日志照片、工单照片列表、该工序的历史照片记录
		hasPhoto := req.StagePhotos.Set && hasNonBlank(req.StagePhotos.Value)
		if !hasPhoto {
			photos := project.Photos
			if req.Photos.Set {
				photos = req.Photos.Value
			}
			hasPhoto = hasNonBlank(photos)
		}
		if !hasPhoto {
			hasPhoto, err = s.repos.ActivityLog.HasPhotoEvidence(ctx, project.ID, targetStatus)
			if err != nil {
				return nil, err
			}
		}
		usageNotes := project.UsageNotes
		if req.UsageNotes.Set {
			usageNotes = req.UsageNotes.Value
		}
		evidence := StageEvidence{
			HasPhoto:   hasPhoto,
			HasComment: (req.Note.Set && strings.TrimSpace(req.Note.Value) != "") || strings.TrimSpace(usageNotes) != "",
		}
		if err := ValidateStageRequirement(registry, targetStatus, evidence); err != nil {
			return nil, err
		}
	}

	if req.PieceName.Set {
		name := strings.TrimSpace(req.PieceName.Value)
		if name == "" {
			return nil, validationErrorf("piece_name cannot be blank")
		}
		project.PieceName = name
	}
	if req.PieceType.Set {
		pieceType := strings.TrimSpace(req.PieceType.Value)
		if pieceType != "" && !entity.ValidPieceTypes[pieceType] {
			return nil, validationErrorf("unknown piece type %q", req.PieceType.Value)
		}
		project.PieceType = pieceType
	}
	if req.DesignerName.Set {
		project.DesignerName = strings.TrimSpace(req.DesignerName.Value)
	}
	if req.CraftsmanName.Set {
		project.CraftsmanName = strings.TrimSpace(req.CraftsmanName.Value)
	}
	if req.PlatingTags.Set {
		project.PlatingTags = sanitizeStringList(req.PlatingTags.Value)
	}
	if req.SettingCost.Set {
		project.SettingCost = Round2(req.SettingCost.Value)
	}
	if req.DiamondCost.Set {
		project.DiamondCost = Round2(req.DiamondCost.Value)
	}
	if req.SellingPrice.Set {
		project.SellingPrice = Round2(req.SellingPrice.Value)
	}
	if req.UsageNotes.Set {
		project.UsageNotes = req.UsageNotes.Value
	}
	if req.Photos.Set {
		project.Photos = sanitizeStringList(req.Photos.Value)
	}
	if req.CustomerID.Set {
		project.CustomerID = req.CustomerID.Value
	}
	if req.CompletedAt.Set {
		project.CompletedAt = req.CompletedAt.Value
	}
	if req.CustomFields.Set {
		project.CustomFields = sanitizeCustomFields(req.CustomFields.Value)
	}

	var newLines []entity.GemstoneLine
	if req.Gemstones.Set {
		resolver := NewPricingResolver(s.repos.Inventory)
		newLines = make([]entity.GemstoneLine, 0, len(req.Gemstones.Value))
		for _, lineReq := range req.Gemstones.Value {
			line, err := resolver.Resolve(ctx, project.ID, lineReq)
			if err != nil {
				return nil, err
			}
			newLines = append(newLines, line)
		}
		project.GemstoneCost = SumGemstoneCost(newLines)
	}

	var callerTotal *float64
	if req.TotalCost.Set && req.TotalCost.Value != nil {
		callerTotal = req.TotalCost.Value
	}
	project.TotalCost = AggregateTotalCost(project.SettingCost, project.DiamondCost, project.GemstoneCost, callerTotal)

	if statusChanged {
		project.Status = targetStatus
		if targetStatus == entity.StatusSold {
			soldAt := time.Now()
			if req.SoldAt.Set && req.SoldAt.Value != nil {
				soldAt = *req.SoldAt.Value
			} else if project.SoldAt != nil {
				soldAt = *project.SoldAt
			}
			project.SoldAt = &soldAt
		} else {
			project.SoldAt = nil
		}
	} else if req.SoldAt.Set && project.Status == entity.StatusSold && req.SoldAt.Value != nil {
		project.SoldAt = req.SoldAt.Value
	}

	note := ""
	if req.Note.Set {
		note = strings.TrimSpace(req.Note.Value)
	}
	stagePhotos := sanitizeStringList(req.StagePhotos.Value)
	appendLog := statusChanged || note != "" || len(stagePhotos) > 0

	lines := project.Gemstones
	project.Gemstones = nil

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(project).Error; err != nil {
			return err
		}
		if req.Gemstones.Set {
			if err := tx.Where("project_id = ?", project.ID).Delete(&entity.GemstoneLine{}).Error; err != nil {
				return err
			}
			if len(newLines) > 0 {
				if err := tx.Create(&newLines).Error; err != nil {
					return err
				}
			}
		}
		if appendLog {
			log := &entity.ActivityLog{
				ID:            uuid.New().String()[:32],
				ProjectID:     project.ID,
				Status:        project.Status,
				CraftsmanName: project.CraftsmanName,
				Note:          note,
				Photos:        stagePhotos,
			}
			if err := tx.Create(log).Error; err != nil {
				return err
			}
		}
		return upsertDirectoryNames(tx, project.DesignerName, project.CraftsmanName)
	})
	if err != nil {
		project.Gemstones = lines
		return nil, err
	}

	s.logger.Info("project updated",
		zap.String("project_id", project.ID),
		zap.String("status", project.Status),
		zap.Bool("status_changed", statusChanged))

	return s.Get(ctx, project.ID)
}

// Delete 删除工单及其用料行与日志
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if s.db == nil {
		return repository.ErrNotConfigured
	}

	project, err := s.repos.Project.FindByID(ctx, id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", project.ID).Delete(&entity.GemstoneLine{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&entity.ActivityLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.ManufacturingProject{}, "id = ?", project.ID).Error
	})
}

// Get 工单详情（含用料行与全部日志）
func (s *ProjectService) Get(ctx context.Context, id string) (*entity.ManufacturingProject, error) {
	project, err := s.repos.Project.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	activity, err := s.repos.ActivityLog.FindAllByProject(ctx, id)
	if err != nil {
		return nil, err
	}
	project.Activity = activity
	return project, nil
}

// List 工单列表
func (s *ProjectService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.ManufacturingProject, int64, error) {
	return s.repos.Project.FindAll(ctx, page, pageSize, filters)
}

// ListActivity 工单日志分页
func (s *ProjectService) ListActivity(ctx context.Context, projectID string, page, pageSize int) ([]entity.ActivityLog, int64, error) {
	if _, err := s.repos.Project.FindByID(ctx, projectID); err != nil {
		return nil, 0, err
	}
	return s.repos.ActivityLog.FindByProject(ctx, projectID, page, pageSize)
}

func upsertDirectoryNames(tx *gorm.DB, designerName, craftsmanName string) error {
	if designerName != "" {
		if err := repository.UpsertDirectoryPersonTx(tx, entity.DirectoryRoleDesigner, designerName); err != nil {
			return err
		}
	}
	if craftsmanName != "" {
		if err := repository.UpsertDirectoryPersonTx(tx, entity.DirectoryRoleCraftsman, craftsmanName); err != nil {
			return err
		}
	}
	return nil
}
