package models

import "time"

// GovernanceAccount é o snapshot do saldo de uma conta no ledger de
// governança. Balance é o valor disponível (não staked); Staked é o valor
// reservado que dá peso de voto.
type GovernanceAccount struct {
	Address Address `json:"address"`
	Balance Amount  `json:"balance"`
	Staked  Amount  `json:"staked"`
}

// Proposal é um item de governança que acumula peso de voto dos stakers.
// VotesFor e VotesAgainst nunca diminuem depois de criada.
type Proposal struct {
	ID           uint64    `json:"id"`
	Description  string    `json:"description"`
	VotesFor     Amount    `json:"votes_for"`
	VotesAgainst Amount    `json:"votes_against"`
	CreatedAt    time.Time `json:"created_at"`
}
