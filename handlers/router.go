package handlers

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router monta as rotas HTTP do backend sobre os dois handlers.
func Router(asset *AssetHandler, governance *GovernanceHandler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.URLFormat)

	r.Route("/assets", func(r chi.Router) {
		r.Post("/", asset.MintAsset)
		r.Get("/for-sale", asset.GetForSale)
		r.Get("/{id}", asset.GetAsset)
		r.Get("/{id}/owner", asset.GetOwner)
		r.Get("/{id}/metadata", asset.GetMetadata)
		r.Post("/{id}/list", asset.ListAsset)
		r.Post("/{id}/unlist", asset.UnlistAsset)
		r.Post("/{id}/purchase", asset.PurchaseAsset)
		r.Post("/{id}/licenses", asset.PurchaseLicense)
		r.Get("/{id}/licenses", asset.GetLicenses)
		r.Post("/{id}/burn", asset.BurnAsset)
	})

	r.Route("/accounts", func(r chi.Router) {
		r.Get("/{address}/created", asset.GetCreatedBy)
		r.Get("/{address}/owned", asset.GetOwnedBy)
		r.Get("/{address}/proceeds", asset.GetProceeds)
	})

	r.Route("/governance", func(r chi.Router) {
		r.Post("/mint", governance.MintBalance)
		r.Post("/stake", governance.Stake)
		r.Post("/unstake", governance.Unstake)
		r.Post("/proposals", governance.CreateProposal)
		r.Get("/proposals/{id}", governance.GetProposal)
		r.Post("/proposals/{id}/votes", governance.Vote)
		r.Get("/accounts/{address}", governance.GetAccount)
	})

	r.Route("/events", func(r chi.Router) {
		r.Get("/registry", asset.GetEvents)
		r.Get("/governance", governance.GetEvents)
	})

	return r
}
