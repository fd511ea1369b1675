package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/daunku/daunku/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(
	app *fiber.App,
	auth *handlers.AuthHandler,
	health *handlers.HealthHandler,
	plants *handlers.PlantHandler,
	careLogs *handlers.CareLogHandler,
	ai *handlers.AIHandler,
	authMW fiber.Handler,
) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Welcome to DaunKu - your plant care companion!")
	})

	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", auth.Register)
	a.Post("/login", auth.Login)
	a.Post("/google", auth.GoogleLogin)

	// Plant collection
	pg := v1.Group("/plants", authMW)
	pg.Post("/identify", plants.Identify)
	pg.Get("/stats", plants.Stats)
	pg.Post("/", plants.Add)
	pg.Get("/", plants.List)
	pg.Get("/:id", plants.GetByID)
	pg.Put("/:id", plants.Update)
	pg.Delete("/:id", plants.Delete)

	// Care history (route spellings kept from the original client contract)
	cg := v1.Group("/care-logs", authMW)
	cg.Get("/", careLogs.ListAll)
	cg.Post("/add-care", careLogs.Add)
	cg.Get("/plant/:plantId", careLogs.ListByPlant)
	cg.Put("/updatecare/:id", careLogs.Update)
	cg.Delete("/delete/:id", careLogs.Delete)

	// AI assistance
	ag := v1.Group("/ai", authMW)
	ag.Post("/diagnose", ai.Diagnose)
	ag.Post("/care-advice", ai.CareAdvice)
}
