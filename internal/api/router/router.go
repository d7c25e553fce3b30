package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"noticedesk/config"
	"noticedesk/internal/api/handler"
	"noticedesk/internal/api/middleware"
	"noticedesk/internal/model"
	"noticedesk/pkg/jwt"
	"noticedesk/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	// 留出 multipart 编码开销
	r.Use(middleware.BodyLimit(cfg.Storage.MaxUploadBytes + 1<<20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 用户模块（管理员专用）
			users := authorized.Group("/users", middleware.RoleAuth(model.RoleAdmin))
			{
				users.POST("", h.User.CreateUser)
				users.GET("", h.User.ListUsers)
				users.PUT("/:id/active", h.User.SetUserActive)
				users.PUT("/:id/password", h.User.ResetPassword)
			}

			// 部门模块
			departments := authorized.Group("/departments")
			{
				departments.GET("", h.Department.ListDepartments)
				departments.GET("/:id", h.Department.GetDepartment)
				departments.POST("", middleware.RoleAuth(model.RoleAdmin), h.Department.CreateDepartment)
			}

			// 通知模块
			notices := authorized.Group("/notices")
			{
				notices.POST("", h.Notice.CreateNotice)
				notices.GET("/inbox", h.Notice.GetInbox)
				notices.GET("/outbox", h.Notice.GetOutbox)
				notices.GET("/:id", h.Notice.GetNotice)
				notices.PUT("/:id/status", h.Notice.UpdateStatus)
				notices.DELETE("/:id", h.Notice.CloseNotice) // 发布人或管理员（Service 层鉴权）
			}

			// 管理视图（管理员专用）
			admin := authorized.Group("/admin", middleware.RoleAuth(model.RoleAdmin))
			{
				admin.GET("/notices", h.Notice.AdminListNotices)
				admin.GET("/summary", h.Notice.AdminSummary)
				admin.GET("/stats/monthly", h.Notice.AdminMonthlyStats)
				admin.GET("/reports/delays", h.Notice.AdminDelayReport)
				admin.GET("/reports/export", h.Export.ExportAdminReports)
			}
		}
	}

	return r
}
