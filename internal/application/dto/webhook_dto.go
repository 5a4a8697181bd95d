package dto

// WebhookResponse respuesta del endpoint que imita al consumidor de Kafka.
type WebhookResponse struct {
	Status     string         `json:"status"`
	MessageID  string         `json:"message_id,omitempty"`
	MovementID string         `json:"movement_id"`
	Details    map[string]any `json:"details,omitempty"`
}
