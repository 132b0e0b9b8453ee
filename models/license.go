package models

import "time"

// License representa uma licença de uso vendida sobre um asset, sem
// transferir a propriedade. O log de licenças de um asset é append-only e
// sobrevive ao burn do asset.
type License struct {
	ID          string    `json:"id"` // Identificador do registro (UUID)
	TokenID     uint64    `json:"token_id"`
	Licensee    Address   `json:"licensee"`
	LicenseType string    `json:"license_type"` // Ex: "personal", "commercial"
	PricePaid   Amount    `json:"price_paid"`
	PurchasedAt time.Time `json:"purchased_at"`
}
