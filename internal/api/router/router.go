package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"aulanet/backend/config"
	"aulanet/backend/internal/api/handler"
	"aulanet/backend/internal/api/middleware"
	"aulanet/backend/internal/model"
	"aulanet/backend/pkg/jwt"
	"aulanet/backend/pkg/redis"
)

// Setup builds the Gin engine with all routes and middleware attached.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(1 << 20))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// auth (no token required)
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// everything below requires a valid access token
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.POST("/auth/password", h.Auth.ChangePassword)

			// users
			users := authorized.Group("/users")
			{
				users.GET("/me", h.User.GetCurrentUser)
				users.GET("", middleware.RoleAuth(model.RoleSecretary, model.RoleAdmin), h.User.List)
				users.GET("/:id", middleware.RoleAuth(model.RoleSecretary, model.RoleAdmin), h.User.GetByID)
				users.POST("", middleware.RoleAuth(model.RoleAdmin), h.User.Create)
				users.PATCH("/:id", middleware.RoleAuth(model.RoleAdmin), h.User.Update)
				users.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.User.Delete)
			}

			// rooms
			rooms := authorized.Group("/rooms")
			{
				rooms.GET("", h.Room.List)
				rooms.GET("/:id", h.Room.GetByID)
				rooms.GET("/:id/occupancy", h.Schedule.RoomOccupancy)
				rooms.POST("", middleware.RoleAuth(model.RoleAdmin), h.Room.Create)
				rooms.PATCH("/:id", middleware.RoleAuth(model.RoleAdmin), h.Room.Update)
				rooms.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Room.Delete)
			}

			// courses
			courses := authorized.Group("/courses")
			{
				courses.GET("", h.Course.List)
				courses.GET("/:id", h.Course.GetByID)
				courses.POST("", middleware.RoleAuth(model.RoleSecretary, model.RoleAdmin), h.Course.Create)
				courses.PATCH("/:id", middleware.RoleAuth(model.RoleSecretary, model.RoleAdmin), h.Course.Update)
				courses.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Course.Delete)
			}

			// weekly schedule entries
			schedule := authorized.Group("/schedule")
			{
				schedule.GET("", h.Schedule.List)
				schedule.GET("/mine", h.Schedule.MySchedule)
				schedule.GET("/:id", h.Schedule.GetByID)
				schedule.POST("", middleware.RoleAuth(model.RoleSecretary, model.RoleAdmin), h.Schedule.Create)
				schedule.PUT("/:id", middleware.RoleAuth(model.RoleSecretary, model.RoleAdmin), h.Schedule.Update)
				schedule.DELETE("/:id", middleware.RoleAuth(model.RoleSecretary, model.RoleAdmin), h.Schedule.Deactivate)
				schedule.POST("/deactivate-term", middleware.RoleAuth(model.RoleAdmin), h.Schedule.DeactivateTerm)
			}

			// room reservations
			reservations := authorized.Group("/reservations")
			{
				reservations.POST("", middleware.RoleAuth(model.RoleProfessor), h.Reservation.Create)
				reservations.GET("", middleware.RoleAuth(model.RoleSecretary, model.RoleAdmin), h.Reservation.List)
				reservations.GET("/mine", h.Reservation.MyReservations)
				reservations.GET("/quota", h.Reservation.Quota)
				reservations.GET("/:id", h.Reservation.GetByID)
				reservations.POST("/:id/confirm", middleware.RoleAuth(model.RoleSecretary, model.RoleAdmin), h.Reservation.Confirm)
				reservations.POST("/:id/cancel", h.Reservation.Cancel)
				reservations.POST("/sweep", middleware.RoleAuth(model.RoleAdmin), h.Reservation.Sweep)
			}

			// attendance check-in and location alerts
			attendance := authorized.Group("/attendance")
			{
				attendance.POST("/check-in", middleware.RoleAuth(model.RoleProfessor), h.Attendance.CheckIn)
				attendance.GET("/logs", middleware.RoleAuth(model.RoleSecretary, model.RoleAdmin), h.Attendance.ListAccessLogs)
				attendance.GET("/alerts", middleware.RoleAuth(model.RoleSecretary, model.RoleAdmin), h.Attendance.ListAlerts)
				attendance.POST("/alerts/:id/read", middleware.RoleAuth(model.RoleSecretary, model.RoleAdmin), h.Attendance.MarkAlertRead)

				networks := attendance.Group("/networks", middleware.RoleAuth(model.RoleAdmin))
				{
					networks.GET("", h.Attendance.ListNetworks)
					networks.POST("", h.Attendance.CreateNetwork)
					networks.PATCH("/:id", h.Attendance.UpdateNetwork)
					networks.DELETE("/:id", h.Attendance.DeleteNetwork)
				}
			}

			// timetable exports
			export := authorized.Group("/export")
			{
				export.GET("/timetable.xlsx", middleware.RoleAuth(model.RoleSecretary, model.RoleAdmin), h.Export.TimetableExcel)
				export.GET("/timetable.ics", h.Export.MyTimetableICS)
			}
		}
	}

	return r
}
