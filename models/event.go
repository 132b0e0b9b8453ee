package models

import "time"

// Os eventos formam um log ordenado e append-only por componente: um registro
// por operação bem-sucedida que muda estado (duas no caso de compra, que
// registra royalty e venda). Não há callbacks nem subscrições; consumidores
// leem o log por snapshot a partir de uma sequência.

// RegistryEventKind identifica o tipo de evento do registro de assets.
type RegistryEventKind string

const (
	EventMinted           RegistryEventKind = "minted"
	EventListed           RegistryEventKind = "listed"
	EventUnlisted         RegistryEventKind = "unlisted"
	EventPurchased        RegistryEventKind = "purchased"
	EventRoyaltyPaid      RegistryEventKind = "royalty_paid"
	EventLicensePurchased RegistryEventKind = "license_purchased"
	EventBurned           RegistryEventKind = "burned"
)

// RegistryEvent é um registro do log do AssetRegistry. Seq é atribuído em
// ordem de aplicação, começando em 1.
type RegistryEvent struct {
	ID          string            `json:"id"` // UUID do registro
	Seq         uint64            `json:"seq"`
	Kind        RegistryEventKind `json:"kind"`
	At          time.Time         `json:"at"`
	TokenID     uint64            `json:"token_id"`
	Actor       Address           `json:"actor,omitempty"`  // Criador, comprador ou licenciado conforme o Kind
	Amount      Amount            `json:"amount,omitempty"` // Preço, royalty ou valor pago conforme o Kind
	LicenseType string            `json:"license_type,omitempty"`
}

// GovernanceEventKind identifica o tipo de evento do ledger de governança.
type GovernanceEventKind string

const (
	EventProposalCreated GovernanceEventKind = "proposal_created"
	EventVoteCast        GovernanceEventKind = "vote_cast"
)

// GovernanceEvent é um registro do log do GovernanceLedger.
type GovernanceEvent struct {
	ID          string              `json:"id"` // UUID do registro
	Seq         uint64              `json:"seq"`
	Kind        GovernanceEventKind `json:"kind"`
	At          time.Time           `json:"at"`
	ProposalID  uint64              `json:"proposal_id"`
	Actor       Address             `json:"actor"`
	Description string              `json:"description,omitempty"`
	Support     bool                `json:"support,omitempty"`
	Weight      Amount              `json:"weight,omitempty"`
}
