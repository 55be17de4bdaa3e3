package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskerrand-api/internal/authz"
	"github.com/yukikurage/taskerrand-api/internal/config"
	"github.com/yukikurage/taskerrand-api/internal/handlers"
	"github.com/yukikurage/taskerrand-api/internal/identity"
	"github.com/yukikurage/taskerrand-api/internal/middleware"
	"github.com/yukikurage/taskerrand-api/internal/services"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Task         *handlers.TaskHandler
	User         *handlers.UserHandler
	Message      *handlers.MessageHandler
	Feedback     *handlers.FeedbackHandler
	Report       *handlers.ReportHandler
	Notification *handlers.NotificationHandler
	Admin        *handlers.AdminHandler
}

// Deps carries what the router needs beyond the handlers.
type Deps struct {
	Config   *config.Config
	Logger   *slog.Logger
	Resolver identity.Resolver
	Users    *services.UserService
	Policy   *authz.AdminPolicy
}

func SetupRoutes(r *gin.Engine, deps Deps, h Handlers) *gin.Engine {
	cfg := deps.Config

	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	r.Use(middleware.RequestTimeout(cfg.RequestTimeout))

	// ---- public
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Taskerrand API is running",
		})
	})
	r.Static(cfg.UploadURLPath, cfg.UploadDir)

	// ---- protected
	api := r.Group("/api", middleware.RequireAuth(deps.Resolver, deps.Users))

	users := api.Group("/users")
	{
		users.GET("/me", h.User.GetMe)
		users.PUT("/me", h.User.UpdateMe)
		users.GET("/me/tasks", h.Task.ListMyTasks)
		users.GET("/:id", h.User.GetUser)
		users.GET("/:id/feedback", h.User.ListFeedback)
	}

	tasks := api.Group("/tasks")
	{
		tasks.POST("", h.Task.CreateTask)
		tasks.GET("", h.Task.ListTasks)
		tasks.GET("/search", h.Task.SearchTasks)

		task := tasks.Group("/:id", middleware.RequireTaskID())
		task.GET("", h.Task.GetTask)
		task.PUT("", h.Task.UpdateTask)
		task.DELETE("", h.Task.DeleteTask)
		task.POST("/accept", h.Task.AcceptTask)
		task.POST("/proof", h.Task.UploadProof)
		task.POST("/complete", h.Task.CompleteTask)
		task.POST("/confirm", h.Task.ConfirmTask)
		task.POST("/cancel", h.Task.CancelTask)
		task.GET("/messages", h.Message.ListTaskMessages)
	}

	messages := api.Group("/messages")
	{
		messages.POST("", h.Message.SendMessage)
		messages.GET("", h.Message.ListMessages)
	}

	api.POST("/feedback", h.Feedback.CreateFeedback)

	reports := api.Group("/reports")
	{
		reports.POST("", h.Report.CreateReport)
		reports.GET("", h.Report.ListReports)
		reports.GET("/:id", h.Report.GetReport)
		reports.DELETE("/:id", h.Report.DeleteReport)
	}

	notifications := api.Group("/notifications")
	{
		notifications.GET("", h.Notification.ListNotifications)
		notifications.PUT("/read-all", h.Notification.MarkAllRead)
		notifications.PUT("/:id/read", h.Notification.MarkRead)
		notifications.DELETE("/:id", h.Notification.DeleteNotification)
	}

	// ADMIN
	admin := api.Group("/admin", middleware.RequireAdmin(deps.Policy))
	{
		admin.GET("/users", h.Admin.ListUsers)
		admin.GET("/tasks", h.Task.ListTasks)
		admin.DELETE("/tasks/:id", middleware.RequireTaskID(), h.Task.DeleteTask)
		admin.GET("/reports", h.Report.ListReports)
		admin.GET("/reports/:id", h.Report.GetReport)
		admin.DELETE("/reports/:id", h.Report.DeleteReport)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	cfg.ExposeHeaders = []string{handlers.TotalCountHeader}

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
