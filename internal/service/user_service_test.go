package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/ShwetaShaligram/Attendance-portal/internal/model"
)

func newUserForTest(t *testing.T) (UserService, *testRepos) {
	t.Helper()
	repo, mocks := newTestRepos()
	return NewUserService(repo, zap.NewNop()), mocks
}

func TestListManagers(t *testing.T) {
	svc, mocks := newUserForTest(t)
	addTestUser(mocks.user, "mgr-1", "mgr@example.com", "李经理", model.RoleManager, nil)
	addTestUser(mocks.user, "emp-1", "emp1@example.com", "张三", model.RoleEmployee, nil)
	addTestUser(mocks.user, "hr-1", "hr@example.com", "陈 HR", model.RoleHR, nil)

	managers, err := svc.ListManagers(context.Background())
	if err != nil {
		t.Fatalf("ListManagers 失败: %v", err)
	}
	if len(managers) != 1 {
		t.Fatalf("经理数 = %d, want 1", len(managers))
	}
	if managers[0].FullName != "李经理" {
		t.Errorf("FullName = %s, want 李经理", managers[0].FullName)
	}
}

func TestListNonHRUsers(t *testing.T) {
	svc, mocks := newUserForTest(t)
	addTestUser(mocks.user, "mgr-1", "mgr@example.com", "李经理", model.RoleManager, nil)
	addTestUser(mocks.user, "emp-1", "emp1@example.com", "张三", model.RoleEmployee, nil)
	addTestUser(mocks.user, "hr-1", "hr@example.com", "陈 HR", model.RoleHR, nil)

	users, err := svc.ListNonHRUsers(context.Background())
	if err != nil {
		t.Fatalf("ListNonHRUsers 失败: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("用户数 = %d, want 2", len(users))
	}
	for _, u := range users {
		if u.Role == model.RoleHR {
			t.Errorf("HR 端列表不应包含 hr 角色用户: %s", u.ID)
		}
	}
}

func TestListAllUsers(t *testing.T) {
	svc, mocks := newUserForTest(t)
	addTestUser(mocks.user, "mgr-1", "mgr@example.com", "李经理", model.RoleManager, nil)
	addTestUser(mocks.user, "hr-1", "hr@example.com", "陈 HR", model.RoleHR, nil)

	users, err := svc.ListAllUsers(context.Background())
	if err != nil {
		t.Fatalf("ListAllUsers 失败: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("用户数 = %d, want 2", len(users))
	}
}

// [自证通过] internal/service/user_service_test.go
