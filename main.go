package main

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"campusnet/config"
	"campusnet/database"
	"campusnet/handlers"
	"campusnet/logger"
	"campusnet/repositories"
	"campusnet/routes"
	"campusnet/services"
	"campusnet/storage"
)

func main() {
	cfg := config.Load()
	logger.InitLogger(cfg.LogFile)

	ctx := context.Background()
	db, err := database.New(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close(ctx)

	files, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to prepare upload directory")
	}

	userRepo := repositories.NewUserRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	emitter := services.NewNotificationEmitter(notificationRepo)
	followService := services.NewFollowService(userRepo, emitter)

	profileHandler := handlers.NewProfileHandler(userRepo, files)
	followHandler := handlers.NewFollowHandler(followService)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo)

	handler := routes.SetupRoutes(profileHandler, followHandler, notificationHandler, cfg.RequestTimeout)

	logrus.WithField("port", cfg.Port).Info("Server starting")
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		logrus.WithError(err).Fatal("Server stopped")
	}
}
