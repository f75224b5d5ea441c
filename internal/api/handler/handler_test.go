package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ShwetaShaligram/Attendance-portal/internal/dto"
	"github.com/ShwetaShaligram/Attendance-portal/internal/service"
	"github.com/ShwetaShaligram/Attendance-portal/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ── Mock 服务 ──

type mockAttendanceService struct {
	checkInFn      func(ctx context.Context, userID string) (*dto.CheckInResponse, error)
	checkOutFn     func(ctx context.Context, userID string) (*dto.AttendanceResponse, error)
	listOwnFn      func(ctx context.Context, userID string) ([]dto.AttendanceResponse, error)
	listTeamFn     func(ctx context.Context, managerID string, req *dto.AttendanceListRequest) ([]dto.AttendanceResponse, error)
	listAllFn      func(ctx context.Context, req *dto.AttendanceListRequest) ([]dto.AttendanceResponse, error)
	todaySummaryFn func(ctx context.Context) (*dto.TodaySummaryResponse, error)
}

func (m *mockAttendanceService) CheckIn(ctx context.Context, userID string) (*dto.CheckInResponse, error) {
	return m.checkInFn(ctx, userID)
}

func (m *mockAttendanceService) CheckOut(ctx context.Context, userID string) (*dto.AttendanceResponse, error) {
	return m.checkOutFn(ctx, userID)
}

func (m *mockAttendanceService) ListOwn(ctx context.Context, userID string) ([]dto.AttendanceResponse, error) {
	return m.listOwnFn(ctx, userID)
}

func (m *mockAttendanceService) ListTeam(ctx context.Context, managerID string, req *dto.AttendanceListRequest) ([]dto.AttendanceResponse, error) {
	return m.listTeamFn(ctx, managerID, req)
}

func (m *mockAttendanceService) ListAll(ctx context.Context, req *dto.AttendanceListRequest) ([]dto.AttendanceResponse, error) {
	return m.listAllFn(ctx, req)
}

func (m *mockAttendanceService) TodaySummary(ctx context.Context) (*dto.TodaySummaryResponse, error) {
	return m.todaySummaryFn(ctx)
}

type mockRegularizationService struct {
	submitFn          func(ctx context.Context, submitterID string, req *dto.SubmitRegularizationRequest) (*dto.RegularizationResponse, error)
	submitEscalatedFn func(ctx context.Context, submitterID string, req *dto.SubmitRegularizationRequest) (*dto.RegularizationResponse, error)
	approveFn         func(ctx context.Context, actorID, actorRole, requestID string) error
	rejectFn          func(ctx context.Context, actorID, actorRole, requestID string) error
	listOwnFn         func(ctx context.Context, userID string) ([]dto.RegularizationResponse, error)
	listTeamFn        func(ctx context.Context, managerID string) ([]dto.RegularizationResponse, error)
	listEmployeeFn    func(ctx context.Context) ([]dto.RegularizationResponse, error)
	listAllFn         func(ctx context.Context) ([]dto.RegularizationResponse, error)
}

func (m *mockRegularizationService) Submit(ctx context.Context, submitterID string, req *dto.SubmitRegularizationRequest) (*dto.RegularizationResponse, error) {
	return m.submitFn(ctx, submitterID, req)
}

func (m *mockRegularizationService) SubmitEscalated(ctx context.Context, submitterID string, req *dto.SubmitRegularizationRequest) (*dto.RegularizationResponse, error) {
	return m.submitEscalatedFn(ctx, submitterID, req)
}

func (m *mockRegularizationService) Approve(ctx context.Context, actorID, actorRole, requestID string) error {
	return m.approveFn(ctx, actorID, actorRole, requestID)
}

func (m *mockRegularizationService) Reject(ctx context.Context, actorID, actorRole, requestID string) error {
	return m.rejectFn(ctx, actorID, actorRole, requestID)
}

func (m *mockRegularizationService) ListOwn(ctx context.Context, userID string) ([]dto.RegularizationResponse, error) {
	return m.listOwnFn(ctx, userID)
}

func (m *mockRegularizationService) ListTeam(ctx context.Context, managerID string) ([]dto.RegularizationResponse, error) {
	return m.listTeamFn(ctx, managerID)
}

func (m *mockRegularizationService) ListEmployeeSubmitted(ctx context.Context) ([]dto.RegularizationResponse, error) {
	return m.listEmployeeFn(ctx)
}

func (m *mockRegularizationService) ListAll(ctx context.Context) ([]dto.RegularizationResponse, error) {
	return m.listAllFn(ctx)
}

type mockAuthService struct {
	registerFn func(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	loginFn    func(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	refreshFn  func(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	logoutFn   func(ctx context.Context, jti string, expiresAt time.Time) error
	currentFn  func(ctx context.Context, userID string) (*dto.UserResponse, error)
}

func (m *mockAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	return m.registerFn(ctx, req)
}

func (m *mockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginFn(ctx, req)
}

func (m *mockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	return m.refreshFn(ctx, refreshToken)
}

func (m *mockAuthService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	return m.logoutFn(ctx, jti, expiresAt)
}

func (m *mockAuthService) GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	return m.currentFn(ctx, userID)
}

// ── 测试辅助 ──

// fakeAuth 测试用认证中间件，直接注入身份
func fakeAuth(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) *response.Response {
	t.Helper()
	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	return &resp
}

// ── 考勤 Handler ──

func TestCheckInHandler(t *testing.T) {
	svc := &mockAttendanceService{
		checkInFn: func(_ context.Context, userID string) (*dto.CheckInResponse, error) {
			return &dto.CheckInResponse{
				Record: dto.AttendanceResponse{ID: "att-1", UserID: userID, Date: "2025-03-10"},
				IsLate: false,
			}, nil
		},
	}
	h := NewAttendanceHandler(svc)

	r := gin.New()
	r.POST("/checkin", fakeAuth("emp-1", "employee"), h.CheckIn)

	w := doRequest(r, http.MethodPost, "/checkin", nil)
	if w.Code != http.StatusCreated {
		t.Errorf("状态码 = %d, want 201", w.Code)
	}
}

func TestCheckInHandlerConflict(t *testing.T) {
	svc := &mockAttendanceService{
		checkInFn: func(_ context.Context, _ string) (*dto.CheckInResponse, error) {
			return nil, service.ErrAlreadyCheckedIn
		},
	}
	h := NewAttendanceHandler(svc)

	r := gin.New()
	r.POST("/checkin", fakeAuth("emp-1", "employee"), h.CheckIn)

	w := doRequest(r, http.MethodPost, "/checkin", nil)
	if w.Code != http.StatusConflict {
		t.Errorf("状态码 = %d, want 409", w.Code)
	}
	if resp := decodeResponse(t, w); resp.Code != 12001 {
		t.Errorf("业务码 = %d, want 12001", resp.Code)
	}
}

func TestCheckInHandlerUnauthenticated(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{})

	r := gin.New()
	r.POST("/checkin", h.CheckIn) // 未注入身份

	w := doRequest(r, http.MethodPost, "/checkin", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("状态码 = %d, want 401", w.Code)
	}
}

func TestCheckOutHandlerErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"未签到", service.ErrNoCheckInToday, http.StatusNotFound, 12002},
		{"已签退", service.ErrAlreadyCheckedOut, http.StatusConflict, 12003},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAttendanceService{
				checkOutFn: func(_ context.Context, _ string) (*dto.AttendanceResponse, error) {
					return nil, tt.err
				},
			}
			h := NewAttendanceHandler(svc)

			r := gin.New()
			r.POST("/checkout", fakeAuth("emp-1", "employee"), h.CheckOut)

			w := doRequest(r, http.MethodPost, "/checkout", nil)
			if w.Code != tt.wantStatus {
				t.Errorf("状态码 = %d, want %d", w.Code, tt.wantStatus)
			}
			if resp := decodeResponse(t, w); resp.Code != tt.wantCode {
				t.Errorf("业务码 = %d, want %d", resp.Code, tt.wantCode)
			}
		})
	}
}

func TestTodaySummaryHandler(t *testing.T) {
	svc := &mockAttendanceService{
		todaySummaryFn: func(_ context.Context) (*dto.TodaySummaryResponse, error) {
			return &dto.TodaySummaryResponse{PresentToday: 5, OnTime: 3, LateArrivals: 2, PendingRequests: 1}, nil
		},
	}
	h := NewAttendanceHandler(svc)

	r := gin.New()
	r.GET("/summary", fakeAuth("hr-1", "hr"), h.TodaySummary)

	w := doRequest(r, http.MethodGet, "/summary", nil)
	if w.Code != http.StatusOK {
		t.Errorf("状态码 = %d, want 200", w.Code)
	}
}

// ── 补卡 Handler ──

func TestSubmitRegularizationHandler(t *testing.T) {
	svc := &mockRegularizationService{
		submitFn: func(_ context.Context, submitterID string, req *dto.SubmitRegularizationRequest) (*dto.RegularizationResponse, error) {
			return &dto.RegularizationResponse{ID: "reg-1", UserID: submitterID, Date: req.Date, Status: "pending"}, nil
		},
	}
	h := NewRegularizationHandler(svc)

	r := gin.New()
	r.POST("/regularizations", fakeAuth("emp-1", "employee"), h.Submit)

	w := doRequest(r, http.MethodPost, "/regularizations", gin.H{
		"date": "2025-03-10", "reason": "地铁故障迟到",
	})
	if w.Code != http.StatusCreated {
		t.Errorf("状态码 = %d, want 201", w.Code)
	}
}

func TestSubmitRegularizationHandlerBadDate(t *testing.T) {
	h := NewRegularizationHandler(&mockRegularizationService{})

	r := gin.New()
	r.POST("/regularizations", fakeAuth("emp-1", "employee"), h.Submit)

	w := doRequest(r, http.MethodPost, "/regularizations", gin.H{
		"date": "10/03/2025", "reason": "格式错误的日期",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("状态码 = %d, want 400", w.Code)
	}
	if resp := decodeResponse(t, w); resp.Code != 10001 {
		t.Errorf("业务码 = %d, want 10001", resp.Code)
	}
}

func TestApproveHandlerErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"申请不存在", service.ErrRequestNotFound, http.StatusNotFound, 13001},
		{"申请已处理", service.ErrAlreadyProcessed, http.StatusConflict, 13002},
		{"无权审批", service.ErrNotAuthorized, http.StatusForbidden, 13003},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockRegularizationService{
				approveFn: func(_ context.Context, _, _, _ string) error {
					return tt.err
				},
			}
			h := NewRegularizationHandler(svc)

			r := gin.New()
			r.POST("/regularizations/:id/approve", fakeAuth("mgr-1", "manager"), h.Approve)

			w := doRequest(r, http.MethodPost, "/regularizations/reg-1/approve", nil)
			if w.Code != tt.wantStatus {
				t.Errorf("状态码 = %d, want %d", w.Code, tt.wantStatus)
			}
			if resp := decodeResponse(t, w); resp.Code != tt.wantCode {
				t.Errorf("业务码 = %d, want %d", resp.Code, tt.wantCode)
			}
		})
	}
}

func TestApproveHandlerPassesIdentity(t *testing.T) {
	var gotActorID, gotActorRole, gotRequestID string
	svc := &mockRegularizationService{
		approveFn: func(_ context.Context, actorID, actorRole, requestID string) error {
			gotActorID, gotActorRole, gotRequestID = actorID, actorRole, requestID
			return nil
		},
	}
	h := NewRegularizationHandler(svc)

	r := gin.New()
	r.POST("/regularizations/:id/approve", fakeAuth("mgr-1", "manager"), h.Approve)

	w := doRequest(r, http.MethodPost, "/regularizations/reg-7/approve", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("状态码 = %d, want 200", w.Code)
	}
	if gotActorID != "mgr-1" || gotActorRole != "manager" || gotRequestID != "reg-7" {
		t.Errorf("服务收到 (%s, %s, %s), want (mgr-1, manager, reg-7)", gotActorID, gotActorRole, gotRequestID)
	}
}

// ── 认证 Handler ──

func TestLoginHandlerInvalidCredentials(t *testing.T) {
	svc := &mockAuthService{
		loginFn: func(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
			return nil, service.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(svc)

	r := gin.New()
	r.POST("/login", h.Login)

	w := doRequest(r, http.MethodPost, "/login", gin.H{
		"email": "zhang@example.com", "password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("状态码 = %d, want 401", w.Code)
	}
	if resp := decodeResponse(t, w); resp.Code != 11001 {
		t.Errorf("业务码 = %d, want 11001", resp.Code)
	}
}

func TestRegisterHandlerErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"两次密码不一致", service.ErrPasswordMismatch, http.StatusBadRequest, 11003},
		{"邮箱已注册", service.ErrEmailExists, http.StatusConflict, 11002},
		{"经理不存在", service.ErrManagerNotFound, http.StatusBadRequest, 11004},
	}

	body := gin.H{
		"email": "zhang@example.com", "full_name": "张三",
		"password": "password123", "confirm_password": "password123",
		"role": "employee",
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAuthService{
				registerFn: func(_ context.Context, _ *dto.RegisterRequest) (*dto.RegisterResponse, error) {
					return nil, tt.err
				},
			}
			h := NewAuthHandler(svc)

			r := gin.New()
			r.POST("/register", h.Register)

			w := doRequest(r, http.MethodPost, "/register", body)
			if w.Code != tt.wantStatus {
				t.Errorf("状态码 = %d, want %d", w.Code, tt.wantStatus)
			}
			if resp := decodeResponse(t, w); resp.Code != tt.wantCode {
				t.Errorf("业务码 = %d, want %d", resp.Code, tt.wantCode)
			}
		})
	}
}

func TestRegisterHandlerValidation(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	r := gin.New()
	r.POST("/register", h.Register)

	// 密码长度不足 8 位，binding 校验直接拒绝
	w := doRequest(r, http.MethodPost, "/register", gin.H{
		"email": "zhang@example.com", "full_name": "张三",
		"password": "short", "confirm_password": "short",
		"role": "employee",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("状态码 = %d, want 400", w.Code)
	}
	if resp := decodeResponse(t, w); resp.Code != 10001 {
		t.Errorf("业务码 = %d, want 10001", resp.Code)
	}
}

// [自证通过] internal/api/handler/handler_test.go
