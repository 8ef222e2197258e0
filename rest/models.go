package rest

type SendSMSRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
	Sender  string `json:"sender,omitempty"`
}

type SendVoiceRequest struct {
	Phone    string `json:"phone"`
	Code     string `json:"code"`
	Language string `json:"language,omitempty"`
}

type SendWhatsAppRequest struct {
	Phone    string `json:"phone"`
	Message  string `json:"message"`
	Template string `json:"template,omitempty"`
}

type HealthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	ClientID  string `json:"clientId"`
}

type SendSMSResponse struct {
	Success          bool    `json:"success"`
	Message          string  `json:"message"`
	MessageID        string  `json:"messageId"`
	RemainingBalance string  `json:"remainingBalance"`
	Cost             float64 `json:"cost"`
}

type SendVoiceResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	CallID  string `json:"callId"`
	Status  string `json:"status"`
}

type SendWhatsAppResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	MessageID string `json:"messageId"`
	Status    string `json:"status"`
}

type SMSStatusResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type BalanceResponse struct {
	Success  bool    `json:"success"`
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`
	Message  string  `json:"message"`
}

type PricingResponse struct {
	Success  bool    `json:"success"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
	Message  string  `json:"message"`
}

type ErrorResponse struct {
	Success bool     `json:"success"`
	Error   string   `json:"error"`
	Message string   `json:"message,omitempty"`
	Details []string `json:"details,omitempty"`
}
