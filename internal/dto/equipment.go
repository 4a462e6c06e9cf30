package dto

import "time"

// ── 设备模块 DTO ──

// CreateEquipmentRequest 创建设备请求
type CreateEquipmentRequest struct {
	Name           string     `json:"name"            binding:"required,min=1,max=100"`
	SerialNumber   string     `json:"serial_number"   binding:"omitempty,max=100"`
	Category       string     `json:"category"        binding:"omitempty,oneof=Machine Vehicle Computer Other"`
	Department     string     `json:"department"      binding:"omitempty,max=100"`
	Location       string     `json:"location"        binding:"omitempty,max=200"`
	PurchaseDate   *time.Time `json:"purchase_date"`
	WarrantyExpiry *time.Time `json:"warranty_expiry"`
	Notes          string     `json:"notes"`
	Company        string     `json:"company"         binding:"omitempty,max=100"`
	OwnerID        *string    `json:"owner_id"        binding:"omitempty,uuid"`
	TeamID         *string    `json:"team_id"         binding:"omitempty,uuid"`
	TechnicianID   *string    `json:"technician_id"   binding:"omitempty,uuid"`
}

// UpdateEquipmentRequest 更新设备请求（指针字段，未提供的字段不变）
// 受保护字段（ID、时间戳）不在此列，调用方无法覆盖
type UpdateEquipmentRequest struct {
	Name           *string    `json:"name"            binding:"omitempty,min=1,max=100"`
	SerialNumber   *string    `json:"serial_number"   binding:"omitempty,max=100"`
	Category       *string    `json:"category"        binding:"omitempty,oneof=Machine Vehicle Computer Other"`
	Department     *string    `json:"department"      binding:"omitempty,max=100"`
	Location       *string    `json:"location"        binding:"omitempty,max=200"`
	PurchaseDate   *time.Time `json:"purchase_date"`
	WarrantyExpiry *time.Time `json:"warranty_expiry"`
	Notes          *string    `json:"notes"`
	Status         *string    `json:"status"          binding:"omitempty,oneof=Active Scrapped 'Under Maintenance'"`
	Company        *string    `json:"company"         binding:"omitempty,max=100"`
	OwnerID        *string    `json:"owner_id"        binding:"omitempty,uuid"`
	TeamID         *string    `json:"team_id"         binding:"omitempty,uuid"`
	TechnicianID   *string    `json:"technician_id"   binding:"omitempty,uuid"`
}

// EquipmentListRequest 设备列表查询参数
type EquipmentListRequest struct {
	Department string `form:"department"`
	Owner      string `form:"owner"`
	Search     string `form:"search"`
}

// EquipmentSummary 关联引用解析出的设备摘要字段
type EquipmentSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	SerialNumber string `json:"serial_number,omitempty"`
	Location     string `json:"location,omitempty"`
	Category     string `json:"category"`
}

// EquipmentDetailResponse 设备详细信息响应
type EquipmentDetailResponse struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	SerialNumber   string       `json:"serial_number,omitempty"`
	Category       string       `json:"category"`
	Department     string       `json:"department,omitempty"`
	Location       string       `json:"location,omitempty"`
	PurchaseDate   *time.Time   `json:"purchase_date,omitempty"`
	WarrantyExpiry *time.Time   `json:"warranty_expiry,omitempty"`
	Notes          string       `json:"notes,omitempty"`
	Status         string       `json:"status"`
	Company        string       `json:"company,omitempty"`
	Owner          *UserSummary `json:"owner,omitempty"`
	Team           *TeamSummary `json:"team,omitempty"`
	Technician     *UserSummary `json:"technician,omitempty"`
	CreatedAt      string       `json:"created_at"`
	UpdatedAt      string       `json:"updated_at"`
}

// EquipmentRequestsResponse 某台设备的维修请求列表 + 未关闭数量
type EquipmentRequestsResponse struct {
	Requests  []RequestDetailResponse `json:"requests"`
	OpenCount int                     `json:"open_count"`
}

// [自证通过] internal/dto/equipment.go
