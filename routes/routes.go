package routes

import (
	"github.com/vishnukbarath/sharedtodo/controllers"
	"github.com/vishnukbarath/sharedtodo/middlewares"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Auth     *controllers.AuthController
	User     *controllers.UserController
	Couple   *controllers.CoupleController
	Todo     *controllers.TodoController
	Activity *controllers.ActivityController
	Device   *controllers.DeviceController
	Realtime *controllers.RealtimeController
}

func SetupRouter(c Controllers) *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
	}

	// Everything under /api requires an authenticated principal
	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())
	{
		api.GET("/user", c.User.GetCurrentUser)
		api.PATCH("/user", c.User.UpdateProfile)

		api.POST("/couples", c.Couple.Create)
		api.POST("/couples/join", c.Couple.Join)
		api.GET("/couple", c.Couple.Get)
		api.POST("/couple/invite", c.Couple.SendInvite)

		api.GET("/todos", c.Todo.List)
		api.POST("/todos", c.Todo.Create)
		api.PATCH("/todos/:id", c.Todo.Update)
		api.DELETE("/todos/:id", c.Todo.Delete)
		api.POST("/todos/:id/comments", c.Todo.AddComment)

		api.GET("/activity", c.Activity.List)

		api.POST("/devices", c.Device.Register)
		api.GET("/ws", c.Realtime.ActivityWS)
	}

	return r
}
