package rest

import (
	"strings"

	"vonage-proxy/config"
	"vonage-proxy/db"
	"vonage-proxy/vonage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// SendSMSHandler relays a text message to the upstream provider. After a
// successful send it looks up the per-country SMS price; that lookup is
// best-effort and falls back to the configured default cost.
func SendSMSHandler(cfg *config.Config, client *vonage.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req SendSMSRequest
		if err := c.BodyParser(&req); err != nil {
			return ReturnBadRequest(c, "Invalid request body")
		}

		if details := req.Validate(); len(details) > 0 {
			log.Warnw("Validation error in send-sms", "details", details, "clientId", ClientID(c))
			return ReturnValidationError(c, details)
		}

		if !cfg.HasVonageCredentials() {
			return ReturnUpstreamError(c, "Vonage API credentials not configured", nil)
		}

		sender := req.Sender
		if sender == "" {
			sender = cfg.VonageSender
		}

		log.Infow("Sending SMS",
			"phone", req.Phone,
			"sender", sender,
			"clientId", ClientID(c),
			"ip", ClientIP(c),
		)

		result, err := client.SendSMS(c.Context(), req.Phone, sender, req.Message)
		if err != nil {
			log.Errorw("Error sending SMS",
				"error", err,
				"clientId", ClientID(c),
				"ip", ClientIP(c),
			)
			auditEvent(c, "send_sms", db.OutcomeError, err.Error())
			return ReturnUpstreamError(c, "Failed to send SMS", err)
		}

		cost := cfg.DefaultSMSCost
		if price, err := client.SMSPricing(c.Context(), countryFromPhone(req.Phone)); err != nil {
			log.Warnw("Pricing lookup failed, using default cost",
				"error", err,
				"clientId", ClientID(c),
			)
		} else {
			cost = price
		}

		log.Infow("SMS sent successfully",
			"messageId", result.MessageID,
			"phone", req.Phone,
			"clientId", ClientID(c),
		)
		auditEvent(c, "send_sms", db.OutcomeSent, "messageId="+result.MessageID)

		return c.JSON(SendSMSResponse{
			Success:          true,
			Message:          "SMS sent successfully",
			MessageID:        result.MessageID,
			RemainingBalance: result.RemainingBalance,
			Cost:             cost,
		})
	}
}

// SendVoiceHandler places a text-to-speech call that reads a verification
// code to the recipient.
func SendVoiceHandler(cfg *config.Config, client *vonage.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req SendVoiceRequest
		if err := c.BodyParser(&req); err != nil {
			return ReturnBadRequest(c, "Invalid request body")
		}

		if details := req.Validate(); len(details) > 0 {
			log.Warnw("Validation error in send-voice", "details", details, "clientId", ClientID(c))
			return ReturnValidationError(c, details)
		}

		if !cfg.HasVonageCredentials() {
			return ReturnUpstreamError(c, "Vonage API credentials not configured", nil)
		}

		language := req.Language
		if language == "" {
			language = "ru"
		}

		log.Infow("Sending voice call",
			"phone", req.Phone,
			"language", language,
			"clientId", ClientID(c),
			"ip", ClientIP(c),
		)

		result, err := client.SendVoice(c.Context(), req.Phone, cfg.VonageSender, spokenCode(req.Code, language), language)
		if err != nil {
			log.Errorw("Error sending voice call",
				"error", err,
				"clientId", ClientID(c),
				"ip", ClientIP(c),
			)
			auditEvent(c, "send_voice", db.OutcomeError, err.Error())
			return ReturnUpstreamError(c, "Failed to send voice call", err)
		}

		log.Infow("Voice call sent successfully",
			"callId", result.CallID,
			"phone", req.Phone,
			"clientId", ClientID(c),
		)
		auditEvent(c, "send_voice", db.OutcomeSent, "callId="+result.CallID)

		return c.JSON(SendVoiceResponse{
			Success: true,
			Message: "Voice call sent successfully",
			CallID:  result.CallID,
			Status:  result.Status,
		})
	}
}

// SendWhatsAppHandler relays a WhatsApp text message.
func SendWhatsAppHandler(cfg *config.Config, client *vonage.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req SendWhatsAppRequest
		if err := c.BodyParser(&req); err != nil {
			return ReturnBadRequest(c, "Invalid request body")
		}

		if details := req.Validate(); len(details) > 0 {
			log.Warnw("Validation error in send-whatsapp", "details", details, "clientId", ClientID(c))
			return ReturnValidationError(c, details)
		}

		if !cfg.HasVonageCredentials() {
			return ReturnUpstreamError(c, "Vonage API credentials not configured", nil)
		}

		log.Infow("Sending WhatsApp message",
			"phone", req.Phone,
			"template", req.Template,
			"clientId", ClientID(c),
			"ip", ClientIP(c),
		)

		result, err := client.SendWhatsApp(c.Context(), req.Phone, cfg.WhatsAppFrom(), req.Message)
		if err != nil {
			log.Errorw("Error sending WhatsApp message",
				"error", err,
				"clientId", ClientID(c),
				"ip", ClientIP(c),
			)
			auditEvent(c, "send_whatsapp", db.OutcomeError, err.Error())
			return ReturnUpstreamError(c, "Failed to send WhatsApp message", err)
		}

		log.Infow("WhatsApp message sent successfully",
			"messageId", result.MessageID,
			"phone", req.Phone,
			"clientId", ClientID(c),
		)
		auditEvent(c, "send_whatsapp", db.OutcomeSent, "messageId="+result.MessageID)

		return c.JSON(SendWhatsAppResponse{
			Success:   true,
			Message:   "WhatsApp message sent successfully",
			MessageID: result.MessageID,
			Status:    result.Status,
		})
	}
}

// spokenCode builds the TTS text: digits read one by one.
func spokenCode(code, language string) string {
	spaced := strings.Join(strings.Split(code, ""), " ")
	if language == "ru" {
		return "Ваш код подтверждения: " + spaced
	}
	return "Your verification code is: " + spaced
}

// countryFromPhone extracts the two digits after the plus sign, the same
// country key the pricing endpoint uses.
func countryFromPhone(phone string) string {
	if len(phone) < 3 {
		return ""
	}
	return phone[1:3]
}
