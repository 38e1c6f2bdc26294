// Package api wires the HTTP surface: one gin engine, a health endpoint and
// the versioned API group behind bearer-token authentication.
package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kutbudev/taskboard/api/handlers"
	"github.com/kutbudev/taskboard/api/middleware"
	"github.com/kutbudev/taskboard/internal/services"
	"gorm.io/gorm"
)

// NewRouter builds the gin engine over the given database connection.
func NewRouter(db *gorm.DB, jwtSecret string) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	// Ping endpoint for health check
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	projects := handlers.NewProjectHandler(services.NewProjectService(db))
	tasks := handlers.NewTaskHandler(services.NewTaskService(db))
	users := handlers.NewUserHandler(services.NewUserService(db))

	// API v1 routes
	v1 := r.Group("/v1")
	v1.Use(middleware.RequireAuth(jwtSecret))
	{
		// Project routes
		v1.POST("/projects", projects.Create)
		v1.GET("/projects", projects.List)
		v1.GET("/projects/:id", projects.Get)
		v1.PUT("/projects/:id", projects.Update)
		v1.DELETE("/projects/:id", projects.Delete)
		v1.POST("/projects/:id/members", projects.AddMember)
		v1.GET("/projects/:id/tasks", tasks.ListByProject)

		// Task routes
		v1.POST("/tasks", tasks.Create)
		v1.GET("/tasks", tasks.List)
		v1.GET("/tasks/:id", tasks.Get)
		v1.PUT("/tasks/:id", tasks.Update)
		v1.DELETE("/tasks/:id", tasks.Delete)
		v1.POST("/tasks/:id/comments", tasks.AddComment)

		// User directory routes
		v1.GET("/users", users.List)
		v1.GET("/users/search", users.Search)
		v1.GET("/users/me", users.GetCurrent)
		v1.GET("/users/me/notifications", users.ListNotifications)
		v1.GET("/users/:id", users.Get)
		v1.GET("/users/:id/assigned", tasks.ListAssigned)
		v1.GET("/users/:id/reported", tasks.ListReported)
		v1.PUT("/notifications/:id/read", users.MarkNotificationRead)
	}

	return r
}
