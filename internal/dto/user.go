package dto

// ── 用户模块响应 ──

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	FullName    string  `json:"full_name"`
	Role        string  `json:"role"`
	ManagerID   *string `json:"manager_id,omitempty"`
	ManagerName string  `json:"manager_name,omitempty"`
}

// ManagerResponse 注册页经理下拉框条目
type ManagerResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}

// [自证通过] internal/dto/user.go
