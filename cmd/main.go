package main

import (
	"log"
	"os"

	"github.com/vishnukbarath/sharedtodo/config"
	"github.com/vishnukbarath/sharedtodo/controllers"
	"github.com/vishnukbarath/sharedtodo/routes"
	"github.com/vishnukbarath/sharedtodo/services"
	"github.com/vishnukbarath/sharedtodo/utils"
)

func main() {
	db := config.InitDB()

	// AWS-backed collaborators are optional: the API runs without them,
	// the affected endpoints just report the feature as disabled.
	mailer, err := utils.NewMailer()
	if err != nil {
		log.Printf("SES mailer disabled: %v", err)
	}
	uploader, err := utils.NewUploader()
	if err != nil {
		log.Printf("S3 uploads disabled: %v", err)
	}
	push, err := services.NewPushService(db)
	if err != nil {
		log.Printf("SNS push disabled: %v", err)
	}

	hub := services.NewRealtimeHub()
	activity := services.NewActivityService(db, hub)
	auth := services.NewAuthService(db)
	couples := services.NewCoupleService(db, activity)
	todos := services.NewTodoService(db, activity, push)

	r := routes.SetupRouter(routes.Controllers{
		Auth:     controllers.NewAuthController(auth),
		User:     controllers.NewUserController(auth, couples, uploader),
		Couple:   controllers.NewCoupleController(couples, auth, mailer),
		Todo:     controllers.NewTodoController(todos, couples),
		Activity: controllers.NewActivityController(activity, couples),
		Device:   controllers.NewDeviceController(push),
		Realtime: controllers.NewRealtimeController(hub, couples),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
