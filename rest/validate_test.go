package rest

import (
	"strings"
	"testing"
)

func TestSendSMSRequestValidate(t *testing.T) {
	tests := []struct {
		name            string
		req             SendSMSRequest
		expectedDetails int
		mustMention     string
	}{
		{
			name: "Valid",
			req:  SendSMSRequest{Phone: "+15551234567", Message: "test"},
		},
		{
			name: "Valid with sender",
			req:  SendSMSRequest{Phone: "+15551234567", Message: "test", Sender: "Acme"},
		},
		{
			name:            "Missing phone",
			req:             SendSMSRequest{Message: "test"},
			expectedDetails: 1,
			mustMention:     "phone",
		},
		{
			name:            "Phone without plus",
			req:             SendSMSRequest{Phone: "15551234567", Message: "test"},
			expectedDetails: 1,
			mustMention:     "phone",
		},
		{
			name:            "Phone too short",
			req:             SendSMSRequest{Phone: "+123456789", Message: "test"},
			expectedDetails: 1,
			mustMention:     "phone",
		},
		{
			name:            "Phone too long",
			req:             SendSMSRequest{Phone: "+1234567890123456", Message: "test"},
			expectedDetails: 1,
			mustMention:     "phone",
		},
		{
			name:            "Missing message",
			req:             SendSMSRequest{Phone: "+15551234567"},
			expectedDetails: 1,
			mustMention:     "message",
		},
		{
			name:            "Message too long",
			req:             SendSMSRequest{Phone: "+15551234567", Message: strings.Repeat("a", 1601)},
			expectedDetails: 1,
			mustMention:     "message",
		},
		{
			name:            "Sender too long",
			req:             SendSMSRequest{Phone: "+15551234567", Message: "test", Sender: "TwelveChars!"},
			expectedDetails: 1,
			mustMention:     "sender",
		},
		{
			name:            "Everything wrong",
			req:             SendSMSRequest{Phone: "nope", Sender: strings.Repeat("x", 12)},
			expectedDetails: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := tt.req.Validate()

			if len(details) != tt.expectedDetails {
				t.Fatalf("Expected %d details, got %d: %v", tt.expectedDetails, len(details), details)
			}

			if tt.mustMention != "" && !strings.Contains(strings.Join(details, " "), tt.mustMention) {
				t.Errorf("Expected a detail mentioning '%s', got %v", tt.mustMention, details)
			}
		})
	}
}

func TestSendVoiceRequestValidate(t *testing.T) {
	tests := []struct {
		name            string
		req             SendVoiceRequest
		expectedDetails int
	}{
		{
			name: "Valid",
			req:  SendVoiceRequest{Phone: "+15551234567", Code: "123456"},
		},
		{
			name: "Valid with language",
			req:  SendVoiceRequest{Phone: "+15551234567", Code: "123", Language: "de"},
		},
		{
			name:            "Missing code",
			req:             SendVoiceRequest{Phone: "+15551234567"},
			expectedDetails: 1,
		},
		{
			name:            "Code too short",
			req:             SendVoiceRequest{Phone: "+15551234567", Code: "12"},
			expectedDetails: 1,
		},
		{
			name:            "Code too long",
			req:             SendVoiceRequest{Phone: "+15551234567", Code: "1234567890123"},
			expectedDetails: 1,
		},
		{
			name:            "Unsupported language",
			req:             SendVoiceRequest{Phone: "+15551234567", Code: "123456", Language: "jp"},
			expectedDetails: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := tt.req.Validate()
			if len(details) != tt.expectedDetails {
				t.Errorf("Expected %d details, got %d: %v", tt.expectedDetails, len(details), details)
			}
		})
	}
}

func TestSendWhatsAppRequestValidate(t *testing.T) {
	tests := []struct {
		name            string
		req             SendWhatsAppRequest
		expectedDetails int
	}{
		{
			name: "Valid",
			req:  SendWhatsAppRequest{Phone: "+15551234567", Message: "hello"},
		},
		{
			name: "Valid with template",
			req:  SendWhatsAppRequest{Phone: "+15551234567", Message: "hello", Template: "verify_code"},
		},
		{
			name:            "Missing message",
			req:             SendWhatsAppRequest{Phone: "+15551234567"},
			expectedDetails: 1,
		},
		{
			name:            "Message too long",
			req:             SendWhatsAppRequest{Phone: "+15551234567", Message: strings.Repeat("a", 1001)},
			expectedDetails: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := tt.req.Validate()
			if len(details) != tt.expectedDetails {
				t.Errorf("Expected %d details, got %d: %v", tt.expectedDetails, len(details), details)
			}
		})
	}
}

func TestSpokenCode(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		language string
		expected string
	}{
		{
			name:     "Russian phrasing",
			code:     "123",
			language: "ru",
			expected: "Ваш код подтверждения: 1 2 3",
		},
		{
			name:     "English phrasing",
			code:     "4567",
			language: "en",
			expected: "Your verification code is: 4 5 6 7",
		},
		{
			name:     "Other languages use English phrasing",
			code:     "89",
			language: "de",
			expected: "Your verification code is: 8 9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := spokenCode(tt.code, tt.language); got != tt.expected {
				t.Errorf("Expected '%s', got '%s'", tt.expected, got)
			}
		})
	}
}
