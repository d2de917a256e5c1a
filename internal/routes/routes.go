package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/jobtrail/jobtrail-api/internal/handlers"
	"github.com/jobtrail/jobtrail-api/internal/middleware"
	"github.com/jobtrail/jobtrail-api/internal/services"
)

func Setup(
	app *fiber.App,
	authService *services.AuthService,
	authHandler *handlers.AuthHandler,
	boardHandler *handlers.BoardHandler,
	healthHandler *handlers.HealthHandler,
) {
	// General rate limiter: 60 req/min per IP
	app.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	app.Get("/health", healthHandler.Check)

	// Credential endpoints get a stricter limit: 10 req/min per IP
	credentialLimiter := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	app.Post("/sign-up", credentialLimiter, authHandler.SignUp)
	app.Post("/sign-in", credentialLimiter, authHandler.SignIn)

	protected := middleware.Protected(authService)
	app.Patch("/change-password", protected, authHandler.ChangePassword)
	app.Delete("/sign-out", protected, authHandler.SignOut)

	app.Get("/board", protected, boardHandler.GetBoard)

	app.Post("/column", protected, boardHandler.CreateColumn)
	app.Put("/column", protected, boardHandler.MoveCell)
	app.Patch("/column/:id", protected, boardHandler.UpdateColumn)
	app.Delete("/column/:id", protected, boardHandler.DeleteColumn)

	app.Post("/cell", protected, boardHandler.CreateCell)
	app.Patch("/cell/:id", protected, boardHandler.UpdateCell)
	app.Delete("/cell/:id", protected, boardHandler.DeleteCell)
}
