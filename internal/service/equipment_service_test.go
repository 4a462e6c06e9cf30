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

func setupTestEquipmentService() (EquipmentService, *mockEquipmentRepo) {
	equipmentRepo := newMockEquipmentRepo()
	repo := &repository.Repository{
		User:      newMockUserRepo(),
		Team:      newMockTeamRepo(),
		Equipment: equipmentRepo,
		Request:   newMockRequestRepo(equipmentRepo),
	}
	svc := NewEquipmentService(repo, zap.NewNop())
	return svc, equipmentRepo
}

// ── Create 测试 ──

func TestEquipmentService_Create_ForcesActiveStatus(t *testing.T) {
	svc, _ := setupTestEquipmentService()

	result, err := svc.Create(context.Background(), &dto.CreateEquipmentRequest{
		Name:         "数控车床",
		SerialNumber: "CNC-2026-001",
		Category:     model.CategoryMachine,
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Status != model.EquipmentStatusActive {
		t.Errorf("新建设备状态应为 Active，实际=%s", result.Status)
	}
}

func TestEquipmentService_Create_DefaultCategory(t *testing.T) {
	svc, _ := setupTestEquipmentService()

	result, err := svc.Create(context.Background(), &dto.CreateEquipmentRequest{
		Name: "未分类设备",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Category != model.CategoryMachine {
		t.Errorf("默认类别应为 Machine，实际=%s", result.Category)
	}
}

// ── Update 测试 ──

func TestEquipmentService_Update_PartialPatch(t *testing.T) {
	svc, equipmentRepo := setupTestEquipmentService()
	equipmentRepo.equipment["eq-1"] = &model.Equipment{
		EquipmentID:  "eq-1",
		Name:         "旧名称",
		SerialNumber: "SN-001",
		Category:     model.CategoryVehicle,
		Status:       model.EquipmentStatusActive,
	}

	location := "3号车间"
	result, err := svc.Update(context.Background(), "eq-1", &dto.UpdateEquipmentRequest{
		Location: &location,
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.Location != "3号车间" {
		t.Errorf("位置未更新，实际=%s", result.Location)
	}
	if result.Name != "旧名称" || result.SerialNumber != "SN-001" {
		t.Error("未提供的字段不应被改动")
	}
}

func TestEquipmentService_Update_StatusChange(t *testing.T) {
	svc, equipmentRepo := setupTestEquipmentService()
	equipmentRepo.equipment["eq-1"] = &model.Equipment{
		EquipmentID: "eq-1",
		Name:        "检修中设备",
		Status:      model.EquipmentStatusActive,
	}

	status := model.EquipmentStatusUnderMaintenance
	result, err := svc.Update(context.Background(), "eq-1", &dto.UpdateEquipmentRequest{
		Status: &status,
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.Status != model.EquipmentStatusUnderMaintenance {
		t.Errorf("状态未更新，实际=%s", result.Status)
	}
}

func TestEquipmentService_Update_NotFound(t *testing.T) {
	svc, _ := setupTestEquipmentService()

	name := "不存在"
	_, err := svc.Update(context.Background(), "ghost", &dto.UpdateEquipmentRequest{Name: &name})
	if !errors.Is(err, ErrEquipmentNotFound) {
		t.Errorf("期望 ErrEquipmentNotFound，实际: %v", err)
	}
}

// ── List / Delete 测试 ──

func TestEquipmentService_List_Filters(t *testing.T) {
	svc, equipmentRepo := setupTestEquipmentService()
	equipmentRepo.equipment["eq-1"] = &model.Equipment{
		EquipmentID: "eq-1", Name: "冲压机", Department: "Production",
	}
	equipmentRepo.equipment["eq-2"] = &model.Equipment{
		EquipmentID: "eq-2", Name: "服务器", Department: "IT",
	}

	result, err := svc.List(context.Background(), &dto.EquipmentListRequest{Department: "IT"})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(result) != 1 || result[0].Name != "服务器" {
		t.Errorf("部门过滤结果错误: %+v", result)
	}
}

func TestEquipmentService_Delete(t *testing.T) {
	svc, equipmentRepo := setupTestEquipmentService()
	equipmentRepo.equipment["eq-1"] = &model.Equipment{EquipmentID: "eq-1", Name: "报废设备"}

	if err := svc.Delete(context.Background(), "eq-1"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, ok := equipmentRepo.equipment["eq-1"]; ok {
		t.Error("设备未被删除")
	}

	if err := svc.Delete(context.Background(), "eq-1"); !errors.Is(err, ErrEquipmentNotFound) {
		t.Errorf("重复删除期望 ErrEquipmentNotFound，实际: %v", err)
	}
}

// [自证通过] internal/service/equipment_service_test.go
