package vonage

// Results returned to handlers.

type SMSResult struct {
	MessageID        string
	RemainingBalance string
}

type VoiceResult struct {
	CallID string
	Status string
}

type WhatsAppResult struct {
	MessageID string
	Status    string
}

type BalanceResult struct {
	Value      float64
	AutoReload bool
}

// Wire formats.

type smsRequest struct {
	APIKey    string `json:"api_key"`
	APISecret string `json:"api_secret"`
	To        string `json:"to"`
	From      string `json:"from"`
	Text      string `json:"text"`
}

type smsResponse struct {
	Messages []smsMessage `json:"messages"`
}

type smsMessage struct {
	MessageID        string `json:"message-id"`
	Status           string `json:"status"`
	RemainingBalance string `json:"remaining-balance"`
	ErrorText        string `json:"error-text"`
}

type voiceEndpoint struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

type nccoAction struct {
	Action   string `json:"action"`
	Text     string `json:"text"`
	Language string `json:"language"`
	Style    int    `json:"style"`
}

type voiceRequest struct {
	To   []voiceEndpoint `json:"to"`
	From voiceEndpoint   `json:"from"`
	NCCO []nccoAction    `json:"ncco"`
}

type voiceResponse struct {
	UUID   string `json:"uuid"`
	Status string `json:"status"`
}

type whatsAppText struct {
	Body string `json:"body"`
}

type whatsAppRequest struct {
	To          string       `json:"to"`
	From        string       `json:"from"`
	Channel     string       `json:"channel"`
	MessageType string       `json:"message_type"`
	Text        whatsAppText `json:"text"`
}

type whatsAppResponse struct {
	MessageUUID string `json:"message_uuid"`
	Status      string `json:"status"`
}

type balanceResponse struct {
	Value      float64 `json:"value"`
	AutoReload bool    `json:"autoReload"`
}

type pricingResponse struct {
	Countries []pricingCountry `json:"countries"`
}

type pricingCountry struct {
	Networks []pricingNetwork `json:"networks"`
}

type pricingNetwork struct {
	Prices pricingPrices `json:"prices"`
}

type pricingPrices struct {
	SMS pricingPrice `json:"sms"`
}

type pricingPrice struct {
	Price string `json:"price"`
}
