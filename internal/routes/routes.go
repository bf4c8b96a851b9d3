package routes

import (
	"time"

	"fleet-management-api/internal/handlers"
	"fleet-management-api/internal/middleware"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func SetupRoutes(logger *zap.Logger) *gin.Engine {
	// Create a new GIN Router
	ginRouter := gin.New()

	// Structured request logging and panic recovery through zap
	ginRouter.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	ginRouter.Use(ginzap.RecoveryWithZap(logger, true))

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Fleet Management API is running",
		})
	})

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		api.POST("/register", handlers.Register)
		api.POST("/login", handlers.Login)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware())
	{
		// Task orchestration endpoints
		protectedRoutes.GET("/tasks", handlers.GetTasks)
		protectedRoutes.GET("/tasks/:id", handlers.GetTaskByID)
		protectedRoutes.POST("/tasks", handlers.CreateTask)
		protectedRoutes.PUT("/tasks/:id", handlers.UpdateTask)
		protectedRoutes.PATCH("/tasks/:id/status", handlers.UpdateTaskStatus)

		// Fleet task endpoints
		protectedRoutes.GET("/fleet-tasks", handlers.GetFleetTasks)
		protectedRoutes.GET("/fleet-tasks/stats/:companyId", handlers.GetFleetTaskStats)
		protectedRoutes.GET("/fleet-tasks/:id", handlers.GetFleetTaskByID)
		protectedRoutes.POST("/fleet-tasks", handlers.CreateFleetTask)
		protectedRoutes.PUT("/fleet-tasks/:id", handlers.UpdateFleetTask)
		protectedRoutes.DELETE("/fleet-tasks/:id", handlers.DeleteFleetTask)

		// Company endpoints
		protectedRoutes.GET("/companies", handlers.GetCompanies)
		protectedRoutes.GET("/companies/:id", handlers.GetCompanyByID)
		protectedRoutes.POST("/companies", handlers.CreateCompany)
		protectedRoutes.PUT("/companies/:id", handlers.UpdateCompany)

		// Employee endpoints
		protectedRoutes.GET("/employees", handlers.GetEmployees)
		protectedRoutes.GET("/employees/company/:companyId", handlers.GetEmployeesByCompany)
		protectedRoutes.POST("/employees", handlers.CreateEmployee)
		protectedRoutes.PUT("/employees/:id", handlers.UpdateEmployee)

		// Driver endpoints
		protectedRoutes.GET("/drivers", handlers.GetDrivers)
		protectedRoutes.GET("/drivers/company/:companyId", handlers.GetDriversByCompany)
		protectedRoutes.POST("/drivers", handlers.CreateDriver)
		protectedRoutes.DELETE("/drivers/:id", handlers.DeleteDriver)

		// Vehicle and project endpoints
		protectedRoutes.GET("/fleet-vehicles", handlers.GetVehicles)
		protectedRoutes.POST("/fleet-vehicles", handlers.CreateVehicle)
		protectedRoutes.GET("/projects", handlers.GetProjects)
		protectedRoutes.POST("/projects", handlers.CreateProject)

		// Fleet alert endpoints
		protectedRoutes.GET("/fleet-alerts", handlers.GetFleetAlerts)
		protectedRoutes.POST("/fleet-alerts", handlers.CreateFleetAlert)
		protectedRoutes.PATCH("/fleet-alerts/:id/resolve", handlers.ResolveFleetAlert)

		// Users endpoint
		protectedRoutes.GET("/users", handlers.GetAllUsers)

		// Fleet event stream
		protectedRoutes.GET("/ws", handlers.WebSocketHandler)
	}

	return ginRouter
}
