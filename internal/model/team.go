package model

// MaintenanceTeam 维修团队表 — 对应 maintenance_teams
type MaintenanceTeam struct {
	TeamID      string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"team_id"`
	Name        string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Description string  `gorm:"type:text"                                      json:"description,omitempty"`
	Specialty   string  `gorm:"type:varchar(50)"                               json:"specialty,omitempty"`
	TeamLeadID  *string `gorm:"type:uuid"                                      json:"team_lead_id,omitempty"`
	BaseModel

	// 关联
	TeamLead *User  `gorm:"foreignKey:TeamLeadID;references:UserID" json:"team_lead,omitempty"`
	Members  []User `gorm:"many2many:team_members;foreignKey:TeamID;joinForeignKey:team_id;references:UserID;joinReferences:user_id" json:"members,omitempty"`
}

// TableName 指定表名
func (MaintenanceTeam) TableName() string { return "maintenance_teams" }

// [自证通过] internal/model/team.go
