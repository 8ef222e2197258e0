package rest

import (
	"vonage-proxy/config"
	"vonage-proxy/vonage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Init wires the /api surface. Every endpoint runs the same pipeline:
// origin check, IP check, bearer auth, then the handler. Unmatched /api
// paths get a 404 without entering the pipeline.
func Init(app *fiber.App, cfg *config.Config, client *vonage.Client) {
	SetupSwagger(app)

	origin := OriginAccess(cfg)
	ip := IPAccess(cfg)
	auth := Authenticate(cfg)

	app.Get("/api/health", origin, ip, auth, HealthHandler(cfg))

	app.Post("/api/send-sms", origin, ip, auth, SendSMSHandler(cfg, client))
	app.Post("/api/send-voice", origin, ip, auth, SendVoiceHandler(cfg, client))
	app.Post("/api/send-whatsapp", origin, ip, auth, SendWhatsAppHandler(cfg, client))

	app.Get("/api/sms-status/:messageId", origin, ip, auth, SMSStatusHandler())
	app.Get("/api/balance", origin, ip, auth, BalanceHandler(cfg, client))
	app.Get("/api/pricing/:phone", origin, ip, auth, PricingHandler(cfg, client))

	app.Use("/api", func(c *fiber.Ctx) error {
		return ReturnNotFound(c, "API endpoint not found")
	})

	log.Info("REST API started")
}
