package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Tariq-Monowar/timetree/config"
	"github.com/Tariq-Monowar/timetree/handlers"
	"github.com/Tariq-Monowar/timetree/logging"
	"github.com/Tariq-Monowar/timetree/middleware"
	"github.com/Tariq-Monowar/timetree/realtime"
	"github.com/Tariq-Monowar/timetree/repositories"
	"github.com/Tariq-Monowar/timetree/services"
)

func main() {
	logging.InitLogger()
	logging.Logger.Info("Starting timetree server...")

	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("No .env file loaded: %v", err)
	}
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		logging.Logger.Fatal("JWT_SECRET is not set in the environment")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logging.Logger.Fatalf("Database connection failed: %v", err)
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("MongoDB connection ping error: %v", err)
	}
	logging.Logger.Infof("Connected to MongoDB at %s", cfg.MongoURI)

	db := client.Database(cfg.MongoDBName)

	projectRepo := repositories.NewProjectRepo(db)
	taskRepo := repositories.NewTaskRepo(db)
	notificationRepo := repositories.NewNotificationRepo(db)
	userRepo := repositories.NewUserRepo(db)

	if err := userRepo.EnsureEmailIndex(ctx); err != nil {
		logging.Logger.Fatalf("Failed to create user email index: %v", err)
	}

	hub := realtime.NewHub()

	membership := services.NewMembershipStore(projectRepo)
	dispatcher := services.NewNotificationDispatcher(notificationRepo, hub)
	taskService := services.NewTaskService(taskRepo, projectRepo, dispatcher)
	projectService := services.NewProjectService(projectRepo, membership)
	notificationService := services.NewNotificationService(notificationRepo)
	userService := services.NewUserService(userRepo)

	taskHandler := handlers.NewTaskHandler(taskService)
	projectHandler := handlers.NewProjectHandler(projectService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	userHandler := handlers.NewUserHandler(userService)

	r := mux.NewRouter()
	r.NotFoundHandler = handlers.NotFoundHandler()

	// Public routes.
	r.HandleFunc("/users/register", userHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/users/login", userHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/ws", hub.HandleWS)

	// Everything below requires a bearer token.
	auth := r.PathPrefix("/").Subrouter()
	auth.Use(middleware.JWTAuth)
	auth.NotFoundHandler = handlers.NotFoundHandler()

	auth.HandleFunc("/users/me", userHandler.Me).Methods(http.MethodGet)

	auth.HandleFunc("/project", projectHandler.CreateProject).Methods(http.MethodPost)
	auth.HandleFunc("/project", projectHandler.GetAllProjects).Methods(http.MethodGet)
	auth.HandleFunc("/project/{id}", projectHandler.GetProjectByID).Methods(http.MethodGet)
	auth.HandleFunc("/project/{id}", projectHandler.UpdateProject).Methods(http.MethodPut)
	auth.HandleFunc("/project/{id}", projectHandler.DeleteProject).Methods(http.MethodDelete)
	auth.HandleFunc("/project/{id}/users", projectHandler.AddUserToProject).Methods(http.MethodPost)
	auth.HandleFunc("/project/{id}/users/role", projectHandler.UpdateUserRole).Methods(http.MethodPut)
	auth.HandleFunc("/project/{id}/users", projectHandler.RemoveUsersFromProject).Methods(http.MethodDelete)

	auth.HandleFunc("/task/{projectId}", taskHandler.CreateTask).Methods(http.MethodPost)
	auth.HandleFunc("/task/{id}", taskHandler.GetTaskByID).Methods(http.MethodGet)
	auth.HandleFunc("/task/project/{projectId}", taskHandler.GetTasksByProject).Methods(http.MethodGet)
	auth.HandleFunc("/task/{projectId}/{id}", taskHandler.UpdateTask).Methods(http.MethodPut)
	auth.HandleFunc("/task/{projectId}/{id}", taskHandler.DeleteTask).Methods(http.MethodDelete)
	auth.HandleFunc("/task/{id}/complete", taskHandler.CompleteTask).Methods(http.MethodPatch)

	auth.HandleFunc("/notification", notificationHandler.GetNotifications).Methods(http.MethodGet)
	auth.HandleFunc("/notification", notificationHandler.CreateNotification).Methods(http.MethodPost)
	auth.HandleFunc("/notification/read-all", notificationHandler.MarkAllNotificationsAsRead).Methods(http.MethodPatch)
	auth.HandleFunc("/notification/{id}/read", notificationHandler.MarkNotificationAsRead).Methods(http.MethodPatch)
	auth.HandleFunc("/notification/{id}", notificationHandler.DeleteNotification).Methods(http.MethodDelete)
	auth.HandleFunc("/notification", notificationHandler.DeleteAllNotifications).Methods(http.MethodDelete)

	handler := handlers.EnableCORS(handlers.Recover(r))

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	logging.Logger.Infof("Server running on http://localhost%s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logging.Logger.Fatalf("Server failed to start: %v", err)
	}
}
