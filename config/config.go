package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds everything the proxy reads from the environment. It is
// built once in main and passed by reference into the REST layer; nothing
// mutates it after Load returns.
type Config struct {
	Port string

	VonageAPIKey         string
	VonageAPISecret      string
	VonageSender         string
	VonageWhatsAppNumber string

	// APIKeys maps client identifiers to their secret tokens.
	APIKeys map[string]string

	// AllowedOrigins and AllowedIPs are fail-open: an empty list disables
	// the corresponding check entirely.
	AllowedOrigins []string
	AllowedIPs     []string

	// DefaultSMSCost is the fallback cost (EUR) reported when the pricing
	// lookup fails during an SMS send.
	DefaultSMSCost float64

	UpstreamTimeout time.Duration
}

func Load() *Config {
	return &Config{
		Port:                 getEnvWithDefault("PROXY_PORT", "3001"),
		VonageAPIKey:         os.Getenv("VONAGE_API_KEY"),
		VonageAPISecret:      os.Getenv("VONAGE_API_SECRET"),
		VonageSender:         getEnvWithDefault("VONAGE_SENDER", "VerifyBox"),
		VonageWhatsAppNumber: os.Getenv("VONAGE_WHATSAPP_NUMBER"),
		APIKeys:              ParseAPIKeys(os.Getenv("PROXY_API_KEYS")),
		AllowedOrigins:       splitList(os.Getenv("ALLOWED_ORIGINS")),
		AllowedIPs:           splitList(os.Getenv("ALLOWED_IPS")),
		DefaultSMSCost:       getEnvFloat("DEFAULT_SMS_COST", 0.05),
		UpstreamTimeout:      time.Duration(getEnvInt("UPSTREAM_TIMEOUT_SECONDS", 10)) * time.Second,
	}
}

// ParseAPIKeys parses a comma-separated list of clientId:secret pairs.
// Malformed or blank pairs are skipped; a duplicated client id keeps the
// last secret seen.
func ParseAPIKeys(raw string) map[string]string {
	keys := make(map[string]string)

	for _, pair := range strings.Split(raw, ",") {
		clientID, secret, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		clientID = strings.TrimSpace(clientID)
		secret = strings.TrimSpace(secret)
		if clientID == "" || secret == "" {
			continue
		}
		keys[clientID] = secret
	}

	return keys
}

// WhatsAppFrom returns the WhatsApp sender number, falling back to the
// generic sender when no dedicated number is configured.
func (c *Config) WhatsAppFrom() string {
	if c.VonageWhatsAppNumber != "" {
		return c.VonageWhatsAppNumber
	}
	return c.VonageSender
}

// HasVonageCredentials reports whether the upstream credentials needed by
// the send endpoints are configured.
func (c *Config) HasVonageCredentials() bool {
	return c.VonageAPIKey != "" && c.VonageAPISecret != ""
}

func splitList(raw string) []string {
	var values []string
	for _, v := range strings.Split(raw, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			values = append(values, v)
		}
	}
	return values
}

func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return f
}
