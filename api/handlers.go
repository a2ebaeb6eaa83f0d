package api

import (
	"github.com/rpupo63/project-hub-backend/auth"
	"github.com/rpupo63/project-hub-backend/database"
	"github.com/rpupo63/project-hub-backend/services"
)

type routeHandlers struct {
	projectHandler projectHandler
	authHandler    authHandler
	uploadHandler  uploadHandler
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, objectStore services.ObjectStore, tokens auth.TokenIssuer) *routeHandlers {
	projectService := services.NewProjectService(database.ProjectRepo())
	uploadService := services.NewUploadService(objectStore)

	return &routeHandlers{
		projectHandler: newProjectHandler(projectService),
		authHandler:    newAuthHandler(database.UserRepo(), tokens),
		uploadHandler:  newUploadHandler(uploadService),
	}
}
