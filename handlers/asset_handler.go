package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/digitalflow/backend/models"
	"github.com/digitalflow/backend/services"
)

// AssetHandler lida com requisições HTTP do registro de assets.
type AssetHandler struct {
	Registry *services.RegistryService
}

// NewAssetHandler cria uma nova instância do handler de assets.
func NewAssetHandler(registry *services.RegistryService) *AssetHandler {
	return &AssetHandler{Registry: registry}
}

// MintAsset registra um novo asset.
// POST /assets
func (h *AssetHandler) MintAsset(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerAddress(w, r)
	if !ok {
		return
	}

	var req struct {
		MetadataRef string        `json:"metadata_ref"`
		Price       models.Amount `json:"price"`
		Category    string        `json:"category"`
		RoyaltyBps  uint16        `json:"royalty_bps"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	id, err := h.Registry.Mint(caller, req.MetadataRef, req.Price, req.Category, req.RoyaltyBps)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	asset, err := h.Registry.Asset(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, asset)
}

// GetAsset retorna o snapshot do asset.
// GET /assets/{id}
func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	asset, err := h.Registry.Asset(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

// GetOwner retorna o dono atual do asset.
// GET /assets/{id}/owner
func (h *AssetHandler) GetOwner(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	owner, err := h.Registry.OwnerOf(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]models.Address{"owner": owner})
}

// GetMetadata retorna a referência de metadados do asset.
// GET /assets/{id}/metadata
func (h *AssetHandler) GetMetadata(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ref, err := h.Registry.MetadataOf(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"metadata_ref": ref})
}

// ListAsset coloca o asset à venda.
// POST /assets/{id}/list
func (h *AssetHandler) ListAsset(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerAddress(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req struct {
		Price models.Amount `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	if err := h.Registry.List(caller, id, req.Price); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UnlistAsset retira o asset de venda.
// POST /assets/{id}/unlist
func (h *AssetHandler) UnlistAsset(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerAddress(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Registry.Unlist(caller, id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PurchaseAsset compra o asset pelo preço exato.
// POST /assets/{id}/purchase
func (h *AssetHandler) PurchaseAsset(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerAddress(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req struct {
		Payment models.Amount `json:"payment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	if err := h.Registry.Purchase(caller, id, req.Payment); err != nil {
		writeServiceError(w, err)
		return
	}

	asset, err := h.Registry.Asset(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

// PurchaseLicense compra uma licença de uso sobre o asset.
// POST /assets/{id}/licenses
func (h *AssetHandler) PurchaseLicense(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerAddress(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req struct {
		LicenseType string        `json:"license_type"`
		Payment     models.Amount `json:"payment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	license, err := h.Registry.PurchaseLicense(caller, id, req.LicenseType, req.Payment)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, license)
}

// GetLicenses retorna as licenças vendidas sobre o asset.
// GET /assets/{id}/licenses
func (h *AssetHandler) GetLicenses(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, h.Registry.LicensesOf(id))
}

// BurnAsset remove o asset permanentemente.
// POST /assets/{id}/burn
func (h *AssetHandler) BurnAsset(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerAddress(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Registry.Burn(caller, id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetForSale retorna todos os assets à venda.
// GET /assets/for-sale
func (h *AssetHandler) GetForSale(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Registry.AllForSale())
}

// GetCreatedBy retorna os IDs mintados pelo endereço, em ordem de mint.
// GET /accounts/{address}/created
func (h *AssetHandler) GetCreatedBy(w http.ResponseWriter, r *http.Request) {
	addr, ok := pathAddress(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, h.Registry.CreatorTokensOf(addr))
}

// GetOwnedBy retorna os IDs atualmente possuídos pelo endereço.
// GET /accounts/{address}/owned
func (h *AssetHandler) GetOwnedBy(w http.ResponseWriter, r *http.Request) {
	addr, ok := pathAddress(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, h.Registry.OwnerTokensOf(addr))
}

// GetProceeds retorna o valor acumulado de vendas/royalties/licenças do endereço.
// GET /accounts/{address}/proceeds
func (h *AssetHandler) GetProceeds(w http.ResponseWriter, r *http.Request) {
	addr, ok := pathAddress(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]models.Amount{"proceeds": h.Registry.ProceedsOf(addr)})
}

// GetEvents retorna o log de eventos do registro a partir de ?since=.
// GET /events/registry
func (h *AssetHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	since, ok := sinceParam(w, r)
	if !ok {
		return
	}

	events := h.Registry.EventsSince(since)
	if events == nil {
		events = []models.RegistryEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}
