package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/digitalflow/backend/models"
	"github.com/digitalflow/backend/services"

	"github.com/gagliardetto/solana-go"
	"github.com/go-chi/chi/v5"
)

// callerHeader carrega a identidade já autenticada do caller. A assinatura e
// a resolução de conta acontecem antes de chegar ao backend.
const callerHeader = "X-Caller-Address"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Kind   string `json:"kind,omitempty"`
	Code   string `json:"code,omitempty"`
	Reason string `json:"reason"`
}

// writeServiceError traduz o erro discriminado dos serviços para um status
// HTTP e um corpo JSON com a categoria e o código.
func writeServiceError(w http.ResponseWriter, err error) {
	var svcErr *services.Error
	if !errors.As(err, &svcErr) {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Reason: err.Error()})
		return
	}

	status := http.StatusInternalServerError
	switch svcErr.Kind {
	case services.KindValidation:
		status = http.StatusBadRequest
	case services.KindPayment:
		status = http.StatusPaymentRequired
	case services.KindAuthorization:
		status = http.StatusForbidden
	case services.KindState:
		if svcErr.Code == services.CodeNotFound {
			status = http.StatusNotFound
		} else {
			status = http.StatusConflict
		}
	}
	writeJSON(w, status, errorResponse{Kind: string(svcErr.Kind), Code: svcErr.Code, Reason: svcErr.Reason})
}

func writeBadRequest(w http.ResponseWriter, reason string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Reason: reason})
}

// callerAddress extrai e valida a identidade do caller. Endereços são chaves
// públicas base58; a validação acontece aqui na borda, o core só recebe o
// endereço canônico já verificado.
func callerAddress(w http.ResponseWriter, r *http.Request) (models.Address, bool) {
	raw := r.Header.Get(callerHeader)
	if raw == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Reason: "cabeçalho " + callerHeader + " é obrigatório"})
		return "", false
	}
	pk, err := solana.PublicKeyFromBase58(raw)
	if err != nil {
		writeBadRequest(w, "endereço do caller inválido: "+err.Error())
		return "", false
	}
	return models.Address(pk.String()), true
}

// pathAddress valida um endereço vindo da URL.
func pathAddress(w http.ResponseWriter, r *http.Request) (models.Address, bool) {
	raw := chi.URLParam(r, "address")
	pk, err := solana.PublicKeyFromBase58(raw)
	if err != nil {
		writeBadRequest(w, "endereço inválido: "+err.Error())
		return "", false
	}
	return models.Address(pk.String()), true
}

// pathID extrai o parâmetro numérico {id} da URL.
func pathID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeBadRequest(w, "id inválido: "+chi.URLParam(r, "id"))
		return 0, false
	}
	return id, true
}

// sinceParam extrai o parâmetro opcional ?since= para leitura de eventos.
func sinceParam(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	raw := r.URL.Query().Get("since")
	if raw == "" {
		return 0, true
	}
	since, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		writeBadRequest(w, "parâmetro since inválido: "+raw)
		return 0, false
	}
	return since, true
}
