package dto

import "time"

// ── 维修请求模块 DTO ──

// CreateRequestRequest 创建维修请求
// 不接受 stage 字段：新建请求一律强制进入 New 阶段
type CreateRequestRequest struct {
	Subject           string     `json:"subject"        binding:"required,min=1,max=200"`
	Description       string     `json:"description"`
	RequestType       string     `json:"request_type"   binding:"omitempty,oneof=Corrective Preventive"`
	Priority          string     `json:"priority"       binding:"omitempty,oneof=Low Medium High"`
	ScheduledDate     *time.Time `json:"scheduled_date"`
	DueDate           *time.Time `json:"due_date"`
	EquipmentID       *string    `json:"equipment_id"   binding:"omitempty,uuid"`
	CreatedByID       *string    `json:"created_by"     binding:"omitempty,uuid"`
	// 以下字段仅在未关联设备（或设备上对应字段为空）时作为回退值使用
	EquipmentCategory string     `json:"equipment_category" binding:"omitempty,oneof=Machine Vehicle Computer Other"`
	TeamID            *string    `json:"team_id"        binding:"omitempty,uuid"`
	Company           string     `json:"company"        binding:"omitempty,max=100"`
}

// UpdateRequestRequest 更新维修请求（指针字段，未提供的字段不变）
// 受保护字段（ID、created_by、时间戳）不在此列
type UpdateRequestRequest struct {
	Subject           *string    `json:"subject"        binding:"omitempty,min=1,max=200"`
	Description       *string    `json:"description"`
	RequestType       *string    `json:"request_type"   binding:"omitempty,oneof=Corrective Preventive"`
	Priority          *string    `json:"priority"       binding:"omitempty,oneof=Low Medium High"`
	Stage             *string    `json:"stage"          binding:"omitempty,oneof=New 'In Progress' Repaired Scrap"`
	ScheduledDate     *time.Time `json:"scheduled_date"`
	DueDate           *time.Time `json:"due_date"`
	DurationHours     *float64   `json:"duration_hours" binding:"omitempty,gte=0"`
	CompletionNotes   *string    `json:"completion_notes"`
	EquipmentCategory *string    `json:"equipment_category" binding:"omitempty,oneof=Machine Vehicle Computer Other"`
	Company           *string    `json:"company"        binding:"omitempty,max=100"`
	EquipmentID       *string    `json:"equipment_id"   binding:"omitempty,uuid"`
	AssignedToID      *string    `json:"assigned_to"    binding:"omitempty,uuid"`
	TeamID            *string    `json:"team_id"        binding:"omitempty,uuid"`
}

// UpdateStageRequest 看板拖拽的阶段变更请求
type UpdateStageRequest struct {
	Stage string `json:"stage" binding:"required,oneof=New 'In Progress' Repaired Scrap"`
}

// AssignRequestRequest 指派技术员请求
type AssignRequestRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

// CompleteRequestRequest 完成维修请求
type CompleteRequestRequest struct {
	DurationHours   float64 `json:"duration_hours"   binding:"required,gte=0"`
	CompletionNotes string  `json:"completion_notes"`
}

// RequestListRequest 维修请求列表查询参数
type RequestListRequest struct {
	Stage      string `form:"stage"`
	Team       string `form:"team"`
	AssignedTo string `form:"assigned_to"`
	Type       string `form:"type"`
	Search     string `form:"search"`
}

// RequestDetailResponse 维修请求详细信息响应
// IsOverdue 为读取时计算的视图值，不落库
type RequestDetailResponse struct {
	ID                string            `json:"id"`
	Subject           string            `json:"subject"`
	Description       string            `json:"description,omitempty"`
	RequestType       string            `json:"request_type"`
	Priority          string            `json:"priority"`
	Stage             string            `json:"stage"`
	ScheduledDate     *time.Time        `json:"scheduled_date,omitempty"`
	DueDate           *time.Time        `json:"due_date,omitempty"`
	DurationHours     *float64          `json:"duration_hours,omitempty"`
	CompletionNotes   string            `json:"completion_notes,omitempty"`
	EquipmentCategory string            `json:"equipment_category,omitempty"`
	Company           string            `json:"company,omitempty"`
	IsOverdue         bool              `json:"is_overdue"`
	Equipment         *EquipmentSummary `json:"equipment,omitempty"`
	AssignedTo        *UserSummary      `json:"assigned_to,omitempty"`
	Team              *TeamSummary      `json:"team,omitempty"`
	CreatedBy         *UserSummary      `json:"created_by,omitempty"`
	CreatedAt         string            `json:"created_at"`
	UpdatedAt         string            `json:"updated_at"`
}

// ── 统计 DTO ──

// TeamStat 按团队分组的请求数
type TeamStat struct {
	TeamID *string      `json:"team_id"`
	Team   *TeamSummary `json:"team,omitempty"`
	Count  int64        `json:"count"`
}

// CategoryStat 按设备类别分组的请求数
type CategoryStat struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// RequestStatisticsResponse 维修请求全量统计响应
type RequestStatisticsResponse struct {
	TotalRequests       int64          `json:"total_requests"`
	OpenRequests        int64          `json:"open_requests"`
	CompletedRequests   int64          `json:"completed_requests"`
	ScrapRequests       int64          `json:"scrap_requests"`
	RequestsPerTeam     []TeamStat     `json:"requests_per_team"`
	RequestsPerCategory []CategoryStat `json:"requests_per_category"`
}

// [自证通过] internal/dto/request.go
