// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"notegrid/internal/gateway/app/dto"
	"notegrid/internal/gateway/app/http/auth"
	"notegrid/internal/gateway/app/http/middleware"
	"notegrid/internal/gateway/app/http/notes"
	"notegrid/internal/gateway/ports/services"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, identity services.IdentityService, sessions services.NoteSessions) {
	authHandler := auth.NewHandler(identity, sessions)
	notesHandler := notes.NewHandler(sessions)
	requireAuth := middleware.NewAuthMiddleware(identity)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	// API версии 1.
	apiV1 := app.Group("/api/v1")

	// Auth routes (публичные).
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/sign-up", authHandler.SignUp)
	authRoutes.Post("/sign-in", authHandler.SignIn)
	authRoutes.Post("/refresh", authHandler.Refresh)

	signOutRoutes := authRoutes.Group("/sign-out", requireAuth)
	signOutRoutes.Post("/", authHandler.SignOut)

	// Защищенные маршруты.
	noteRoutes := apiV1.Group("/notes", requireAuth)
	noteRoutes.Get("/", notesHandler.List)
	noteRoutes.Post("/", notesHandler.Create)
	noteRoutes.Post("/load", notesHandler.Load)
	noteRoutes.Put("/:"+notes.ParamNoteID, notesHandler.Update)
	noteRoutes.Delete("/:"+notes.ParamNoteID, notesHandler.Delete)
	noteRoutes.Post("/:"+notes.ParamNoteID+"/edit", notesHandler.BeginEdit)

	editRoutes := apiV1.Group("/edit", requireAuth)
	editRoutes.Put("/", notesHandler.UpdateDraft)
	editRoutes.Post("/commit", notesHandler.CommitEdit)
	editRoutes.Delete("/", notesHandler.CancelEdit)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "route not found"})
	})
}
