package rest

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const DefaultBodyLimit = 10 << 20

type Installer interface {
	InstallTo(app *fiber.App)
}

type ServerConfig struct {
	// Max request body in bytes, DefaultBodyLimit if zero.
	BodyLimit    int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NewRouter creates app serving controllers with cors applied to every
// request and plain text 404 for everything unmatched.
func NewRouter(cfg ServerConfig, controllers ...Installer) *fiber.App {
	bodyLimit := cfg.BodyLimit
	if bodyLimit <= 0 {
		bodyLimit = DefaultBodyLimit
	}
	app := fiber.New(fiber.Config{
		CaseSensitive:         true,
		StrictRouting:         true,
		BodyLimit:             bodyLimit,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})
	app.Use(LogHandler())
	app.Use(CorsHandler)
	for _, controller := range controllers {
		controller.InstallTo(app)
	}
	app.Use(NotFoundHandler)
	return app
}
