package main

import (
	"errors"
	"log"
	"strings"

	"vonage-proxy/config"
	"vonage-proxy/db"
	"vonage-proxy/rest"
	"vonage-proxy/vonage"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Best-effort: a missing .env just means the environment is already set.
	_ = godotenv.Load()

	cfg := config.Load()

	if !cfg.HasVonageCredentials() {
		log.Println("Warning: Vonage API credentials not configured, send endpoints will fail")
	}
	if len(cfg.AllowedOrigins) == 0 {
		log.Println("Origin filtering disabled: ALLOWED_ORIGINS is empty")
	}
	if len(cfg.AllowedIPs) == 0 {
		log.Println("IP filtering disabled: ALLOWED_IPS is empty")
	}

	if err := db.Connect(); err != nil {
		log.Fatalf("Failed to connect to audit database: %v", err)
	}
	defer db.Close()

	if db.Enabled() {
		if err := db.RunMigrations(); err != nil {
			log.Fatalf("Failed to run audit database migrations: %v", err)
		}

		version, err := db.GetCurrentVersion()
		if err != nil {
			log.Printf("Warning: Failed to get current schema version: %v", err)
		} else {
			log.Printf("Audit database schema version: %d", version)
		}
	} else {
		log.Println("Audit trail disabled: AUDIT_DB_DRIVER is empty")
	}

	client := vonage.NewClient(cfg.VonageAPIKey, cfg.VonageAPISecret, cfg.UpstreamTimeout)

	app := fiber.New(fiber.Config{
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(compress.New())
	app.Use(corsMiddleware(cfg))

	rest.Init(app, cfg, client)

	log.Printf("Starting Vonage proxy server on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// errorHandler turns uncaught errors into the JSON envelope. Full detail
// is logged server-side; the caller only sees a generic message for 500s.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		if code != fiber.StatusInternalServerError {
			message = fiberErr.Message
		}
	}

	fiberlog.Errorw("Unhandled error",
		"error", err,
		"method", c.Method(),
		"url", c.OriginalURL(),
		"ip", c.IP(),
	)

	return c.Status(code).JSON(rest.ErrorResponse{
		Success: false,
		Error:   message,
	})
}

// corsMiddleware limits browsers to the configured origins. With no
// origins configured the allow-list check is off and CORS stays wide
// open, so credentials are only allowed for an explicit list.
func corsMiddleware(cfg *config.Config) fiber.Handler {
	if len(cfg.AllowedOrigins) == 0 {
		return cors.New(cors.Config{
			AllowOrigins: "*",
			AllowMethods: "GET, POST",
			AllowHeaders: "Content-Type, Authorization, X-Client-ID",
			MaxAge:       86400,
		})
	}

	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowedOrigins, ", "),
		AllowCredentials: true,
		AllowMethods:     "GET, POST",
		AllowHeaders:     "Content-Type, Authorization, X-Client-ID",
		MaxAge:           86400,
	})
}
