package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/digitalflow/backend/models"
	"github.com/digitalflow/backend/services"

	"github.com/gagliardetto/solana-go"
)

// GovernanceHandler lida com requisições HTTP do ledger de governança.
type GovernanceHandler struct {
	Governance *services.GovernanceService
}

// NewGovernanceHandler cria uma nova instância do handler de governança.
func NewGovernanceHandler(governance *services.GovernanceService) *GovernanceHandler {
	return &GovernanceHandler{Governance: governance}
}

// MintBalance emite saldo novo para uma conta. Restrito ao administrador.
// POST /governance/mint
func (h *GovernanceHandler) MintBalance(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerAddress(w, r)
	if !ok {
		return
	}

	var req struct {
		To     string        `json:"to"`
		Amount models.Amount `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	to, err := solana.PublicKeyFromBase58(req.To)
	if err != nil {
		writeBadRequest(w, "endereço de destino inválido: "+err.Error())
		return
	}

	if err := h.Governance.Mint(caller, models.Address(to.String()), req.Amount); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stake move saldo disponível do caller para o bucket de stake.
// POST /governance/stake
func (h *GovernanceHandler) Stake(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerAddress(w, r)
	if !ok {
		return
	}

	var req struct {
		Amount models.Amount `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	if err := h.Governance.Stake(caller, req.Amount); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.Governance.Account(caller))
}

// Unstake devolve stake para o saldo disponível do caller.
// POST /governance/unstake
func (h *GovernanceHandler) Unstake(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerAddress(w, r)
	if !ok {
		return
	}

	var req struct {
		Amount models.Amount `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	if err := h.Governance.Unstake(caller, req.Amount); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.Governance.Account(caller))
}

// CreateProposal registra uma proposta nova. Somente stakers.
// POST /governance/proposals
func (h *GovernanceHandler) CreateProposal(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerAddress(w, r)
	if !ok {
		return
	}

	var req struct {
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	id, err := h.Governance.CreateProposal(caller, req.Description)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	proposal, err := h.Governance.Proposal(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, proposal)
}

// Vote soma o stake do caller a favor ou contra a proposta.
// POST /governance/proposals/{id}/votes
func (h *GovernanceHandler) Vote(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerAddress(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req struct {
		Support bool `json:"support"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	if err := h.Governance.Vote(caller, id, req.Support); err != nil {
		writeServiceError(w, err)
		return
	}

	proposal, err := h.Governance.Proposal(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proposal)
}

// GetProposal retorna uma proposta.
// GET /governance/proposals/{id}
func (h *GovernanceHandler) GetProposal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	proposal, err := h.Governance.Proposal(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proposal)
}

// GetAccount retorna o snapshot de saldo e stake da conta.
// GET /governance/accounts/{address}
func (h *GovernanceHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	addr, ok := pathAddress(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, h.Governance.Account(addr))
}

// GetEvents retorna o log de eventos de governança a partir de ?since=.
// GET /events/governance
func (h *GovernanceHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	since, ok := sinceParam(w, r)
	if !ok {
		return
	}

	events := h.Governance.EventsSince(since)
	if events == nil {
		events = []models.GovernanceEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}
