package models

import "time"

// Asset representa um item digital único registrado no marketplace.
type Asset struct {
	ID          uint64    `json:"id"`
	Creator     Address   `json:"creator"`      // Imutável durante toda a vida do asset
	Owner       Address   `json:"owner"`        // Dono atual; muda a cada compra
	Price       Amount    `json:"price"`        // Preço de venda em unidades base
	ForSale     bool      `json:"for_sale"`     // ForSale == true implica Price > 0
	Category    string    `json:"category"`     // Ex: "art", "music"
	RoyaltyBps  uint16    `json:"royalty_bps"`  // Royalty do criador em basis points [0, 10000]
	CreatedAt   time.Time `json:"created_at"`
	MetadataRef string    `json:"metadata_ref"` // Referência opaca resolvida pelo storage de conteúdo
}
