package config

import (
	"github.com/biosecret/voice-todo/docs"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// AddSwaggerRoutes serves the generated API documentation under /swagger.
func AddSwaggerRoutes(app *fiber.App) {
	docs.SwaggerInfo.BasePath = "/"
	app.Get("/swagger/*", swagger.New(swagger.Config{
		Title:       docs.SwaggerInfo.Title,
		DeepLinking: true,
	}))
}
