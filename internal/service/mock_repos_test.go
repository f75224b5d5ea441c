package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ShwetaShaligram/Attendance-portal/internal/model"
	"github.com/ShwetaShaligram/Attendance-portal/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id 或 "email:"+email
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("uid-%d", len(m.users)+1)
	}
	if _, ok := m.users["email:"+user.Email]; ok {
		return gorm.ErrDuplicatedKey
	}
	m.users[user.UserID] = user
	m.users["email:"+user.Email] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if u, ok := m.users["email:"+email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListByRole(_ context.Context, role string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.uniqueUsers() {
		if u.Role == role {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *mockUserRepo) ListExcludingRole(_ context.Context, role string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.uniqueUsers() {
		if u.Role != role {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.uniqueUsers() {
		result = append(result, *u)
	}
	return result, nil
}

func (m *mockUserRepo) uniqueUsers() []*model.User {
	seen := make(map[string]bool)
	var all []*model.User
	for _, u := range m.users {
		if !seen[u.UserID] {
			seen[u.UserID] = true
			all = append(all, u)
		}
	}
	return all
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	records map[string]*model.Attendance // key: user_id + "|" + 日期
	users   *mockUserRepo                // 解析关联与经理过滤
	seq     int
}

func newMockAttendanceRepo(users *mockUserRepo) *mockAttendanceRepo {
	return &mockAttendanceRepo{records: make(map[string]*model.Attendance), users: users}
}

func attKey(userID string, date time.Time) string {
	return userID + "|" + date.Format("2006-01-02")
}

func (m *mockAttendanceRepo) Create(_ context.Context, att *model.Attendance) error {
	key := attKey(att.UserID, att.Date)
	if _, ok := m.records[key]; ok {
		// 模拟 (user_id, date) 唯一索引
		return gorm.ErrDuplicatedKey
	}
	m.seq++
	if att.AttendanceID == "" {
		att.AttendanceID = fmt.Sprintf("att-%d", m.seq)
	}
	m.records[key] = att
	return nil
}

func (m *mockAttendanceRepo) GetByUserAndDate(_ context.Context, userID string, date time.Time) (*model.Attendance, error) {
	if att, ok := m.records[attKey(userID, date)]; ok {
		m.attachUser(att)
		return att, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) Update(_ context.Context, att *model.Attendance) error {
	m.records[attKey(att.UserID, att.Date)] = att
	return nil
}

func (m *mockAttendanceRepo) List(_ context.Context, filters *repository.AttendanceListFilters) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, att := range m.records {
		if filters != nil {
			if filters.UserID != "" && att.UserID != filters.UserID {
				continue
			}
			if filters.Date != nil && !att.Date.Equal(*filters.Date) {
				continue
			}
			if filters.ManagerID != "" {
				u, ok := m.users.users[att.UserID]
				if !ok || u.ManagerID == nil || *u.ManagerID != filters.ManagerID {
					continue
				}
			}
		}
		m.attachUser(att)
		result = append(result, *att)
	}
	return result, nil
}

func (m *mockAttendanceRepo) ListByDate(_ context.Context, date time.Time) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, att := range m.records {
		if att.Date.Equal(date) {
			m.attachUser(att)
			result = append(result, *att)
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) attachUser(att *model.Attendance) {
	if att.User == nil && m.users != nil {
		if u, ok := m.users.users[att.UserID]; ok {
			att.User = u
		}
	}
}

// ── Mock RegularizationRepository ──

type mockRegularizationRepo struct {
	requests map[string]*model.RegularizationRequest
	users    *mockUserRepo
	seq      int
}

func newMockRegularizationRepo(users *mockUserRepo) *mockRegularizationRepo {
	return &mockRegularizationRepo{requests: make(map[string]*model.RegularizationRequest), users: users}
}

func (m *mockRegularizationRepo) Create(_ context.Context, req *model.RegularizationRequest) error {
	m.seq++
	if req.RequestID == "" {
		req.RequestID = fmt.Sprintf("reg-%d", m.seq)
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}
	m.requests[req.RequestID] = req
	return nil
}

func (m *mockRegularizationRepo) GetByID(_ context.Context, id string) (*model.RegularizationRequest, error) {
	req, ok := m.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	m.attach(req)
	return req, nil
}

func (m *mockRegularizationRepo) Update(_ context.Context, req *model.RegularizationRequest) error {
	m.requests[req.RequestID] = req
	return nil
}

func (m *mockRegularizationRepo) List(_ context.Context, filters *repository.RegularizationListFilters) ([]model.RegularizationRequest, error) {
	var result []model.RegularizationRequest
	for _, req := range m.requests {
		if filters != nil {
			if filters.UserID != "" && req.UserID != filters.UserID {
				continue
			}
			if filters.ManagerID != "" {
				u, ok := m.users.users[req.UserID]
				if !ok || u.ManagerID == nil || *u.ManagerID != filters.ManagerID {
					continue
				}
			}
			if filters.SubmitterRole != "" {
				u, ok := m.users.users[req.UserID]
				if !ok || u.Role != filters.SubmitterRole {
					continue
				}
			}
		}
		m.attach(req)
		result = append(result, *req)
	}
	return result, nil
}

func (m *mockRegularizationRepo) ApprovedExists(_ context.Context, userID string, date time.Time) (bool, error) {
	for _, req := range m.requests {
		if req.UserID == userID && req.Date.Equal(date) && req.Status == model.RegularizationApproved {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRegularizationRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var count int64
	for _, req := range m.requests {
		if req.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *mockRegularizationRepo) attach(req *model.RegularizationRequest) {
	if m.users == nil {
		return
	}
	if req.User == nil {
		if u, ok := m.users.users[req.UserID]; ok {
			req.User = u
		}
	}
	if req.Approver == nil && req.ApproverID != nil {
		if u, ok := m.users.users[*req.ApproverID]; ok {
			req.Approver = u
		}
	}
}

// ── 公共测试辅助 ──

type testRepos struct {
	user *mockUserRepo
	att  *mockAttendanceRepo
	reg  *mockRegularizationRepo
}

func newTestRepos() (*repository.Repository, *testRepos) {
	userRepo := newMockUserRepo()
	attRepo := newMockAttendanceRepo(userRepo)
	regRepo := newMockRegularizationRepo(userRepo)
	repo := &repository.Repository{
		User:           userRepo,
		Attendance:     attRepo,
		Regularization: regRepo,
	}
	return repo, &testRepos{user: userRepo, att: attRepo, reg: regRepo}
}

// addTestUser 直接写入用户（绕过注册流程）
func addTestUser(users *mockUserRepo, userID, email, name, role string, managerID *string) *model.User {
	u := &model.User{
		UserID:    userID,
		Email:     email,
		FullName:  name,
		Role:      role,
		ManagerID: managerID,
	}
	users.users[userID] = u
	users.users["email:"+email] = u
	return u
}

// [自证通过] internal/service/mock_repos_test.go
