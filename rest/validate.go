package rest

import (
	"fmt"
	"regexp"
)

var (
	phonePattern = regexp.MustCompile(`^\+\d{10,15}$`)
	codePattern  = regexp.MustCompile(`^\d{3,12}$`)
)

var voiceLanguages = map[string]bool{
	"ru": true,
	"en": true,
	"es": true,
	"fr": true,
	"de": true,
}

const (
	maxSMSMessageLength      = 1600
	maxWhatsAppMessageLength = 1000
	maxSenderLength          = 11
)

// Validation collects every field violation so the caller sees the full
// list in one response, not just the first failure.

func validatePhone(phone string, details []string) []string {
	if phone == "" {
		return append(details, "phone is required")
	}
	if !phonePattern.MatchString(phone) {
		return append(details, "phone must match pattern ^\\+\\d{10,15}$")
	}
	return details
}

func (r *SendSMSRequest) Validate() []string {
	var details []string

	details = validatePhone(r.Phone, details)

	if r.Message == "" {
		details = append(details, "message is required")
	} else if len(r.Message) > maxSMSMessageLength {
		details = append(details, fmt.Sprintf("message must be at most %d characters", maxSMSMessageLength))
	}

	if r.Sender != "" && len(r.Sender) > maxSenderLength {
		details = append(details, fmt.Sprintf("sender must be at most %d characters", maxSenderLength))
	}

	return details
}

func (r *SendVoiceRequest) Validate() []string {
	var details []string

	details = validatePhone(r.Phone, details)

	if r.Code == "" {
		details = append(details, "code is required")
	} else if !codePattern.MatchString(r.Code) {
		details = append(details, "code must be 3 to 12 digits")
	}

	if r.Language != "" && !voiceLanguages[r.Language] {
		details = append(details, "language must be one of: ru, en, es, fr, de")
	}

	return details
}

func (r *SendWhatsAppRequest) Validate() []string {
	var details []string

	details = validatePhone(r.Phone, details)

	if r.Message == "" {
		details = append(details, "message is required")
	} else if len(r.Message) > maxWhatsAppMessageLength {
		details = append(details, fmt.Sprintf("message must be at most %d characters", maxWhatsAppMessageLength))
	}

	return details
}
