package rest

import (
	"crypto/subtle"
	"strings"

	"vonage-proxy/config"
	"vonage-proxy/db"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

const (
	localClientIP = "clientIP"
	localClientID = "clientId"
)

// ClientIP returns the resolved caller IP stored by IPAccess.
func ClientIP(c *fiber.Ctx) string {
	if ip, ok := c.Locals(localClientIP).(string); ok {
		return ip
	}
	return c.IP()
}

// ClientID returns the authenticated client identifier, or "" before
// Authenticate has run.
func ClientID(c *fiber.Ctx) string {
	if id, ok := c.Locals(localClientID).(string); ok {
		return id
	}
	return ""
}

// resolveClientIP prefers the proxy-supplied headers (first entry of
// X-Forwarded-For is the real client behind nginx) over the socket peer,
// and strips the IPv4-mapped IPv6 prefix.
func resolveClientIP(c *fiber.Ctx) string {
	ip := c.IP()

	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if first = strings.TrimSpace(first); first != "" {
			ip = first
		}
	} else if realIP := c.Get("X-Real-IP"); realIP != "" {
		ip = realIP
	}

	return strings.TrimPrefix(ip, "::ffff:")
}

// OriginAccess rejects requests whose Origin header is present but not in
// the allow-list. An empty allow-list disables the check, and requests
// without an Origin header (non-browser callers) always pass; those are
// still gated by the IP filter and bearer auth.
func OriginAccess(cfg *config.Config) fiber.Handler {
	allowed := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		allowed[origin] = true
	}

	return func(c *fiber.Ctx) error {
		if len(allowed) == 0 {
			return c.Next()
		}

		origin := c.Get(fiber.HeaderOrigin)
		if origin == "" || allowed[origin] {
			return c.Next()
		}

		log.Warnw("Blocked request from disallowed origin",
			"origin", origin,
			"ip", resolveClientIP(c),
			"url", c.OriginalURL(),
		)
		auditEvent(c, "origin_check", db.OutcomeDenied, "origin="+origin)

		return ReturnAccessDenied(c, "Access denied from this origin")
	}
}

// IPAccess resolves the caller IP, stores it for later middleware and
// handlers, and rejects IPs absent from a non-empty allow-list.
func IPAccess(cfg *config.Config) fiber.Handler {
	allowed := make(map[string]bool, len(cfg.AllowedIPs))
	for _, ip := range cfg.AllowedIPs {
		allowed[ip] = true
	}

	return func(c *fiber.Ctx) error {
		ip := resolveClientIP(c)
		c.Locals(localClientIP, ip)

		if len(allowed) == 0 || allowed[ip] {
			return c.Next()
		}

		log.Warnw("Blocked request from disallowed IP",
			"ip", ip,
			"forwardedFor", c.Get("X-Forwarded-For"),
			"url", c.OriginalURL(),
		)
		auditEvent(c, "ip_check", db.OutcomeDenied, "ip="+ip)

		return ReturnAccessDenied(c, "Access denied from this IP address")
	}
}

// Authenticate checks the Authorization bearer token against the secret
// on file for the X-Client-ID header. Responses stay generic so a caller
// cannot tell which part of the credential pair was wrong, and neither
// the presented token nor the expected secret is ever logged.
func Authenticate(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		clientID := c.Get("X-Client-ID")

		if !strings.HasPrefix(authHeader, "Bearer ") {
			log.Warnw("Missing authorization header",
				"ip", ClientIP(c),
				"url", c.OriginalURL(),
			)
			auditEvent(c, "auth", db.OutcomeDenied, "missing authorization header")
			return ReturnUnauthorized(c, "Missing or invalid authorization header")
		}

		if clientID == "" {
			log.Warnw("Missing X-Client-ID header",
				"ip", ClientIP(c),
				"url", c.OriginalURL(),
			)
			auditEvent(c, "auth", db.OutcomeDenied, "missing X-Client-ID header")
			return ReturnUnauthorized(c, "Missing X-Client-ID header")
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		expectedSecret, ok := cfg.APIKeys[clientID]

		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(expectedSecret)) != 1 {
			log.Warnw("Unauthorized access attempt",
				"clientId", clientID,
				"ip", ClientIP(c),
				"url", c.OriginalURL(),
			)
			auditEvent(c, "auth", db.OutcomeDenied, "clientId="+clientID)
			return ReturnUnauthorized(c, "Invalid API key or client ID")
		}

		c.Locals(localClientID, clientID)
		return c.Next()
	}
}

// auditEvent records a pipeline decision, best-effort.
func auditEvent(c *fiber.Ctx, action, outcome, detail string) {
	if !db.Enabled() {
		return
	}

	if _, err := db.RecordAuditEvent(ClientID(c), ClientIP(c), action, outcome, detail); err != nil {
		log.Warnw("Failed to record audit event", "action", action, "error", err)
	}
}
