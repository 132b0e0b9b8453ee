package main

import (
	"context"
	"log"
	"net/http"

	"github.com/digitalflow/backend/config"
	"github.com/digitalflow/backend/handlers"
	"github.com/digitalflow/backend/journal"
	"github.com/digitalflow/backend/models"
	"github.com/digitalflow/backend/services"
	"github.com/digitalflow/backend/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Falha fatal ao carregar configuração: %v", err)
	}

	registryService := services.NewRegistryService(models.Amount(cfg.MinLicenseFee))
	governanceService := services.NewGovernanceService(models.Address(cfg.GovAdminAddress))

	// O diário de eventos é opcional: sem DATABASE_URL os ledgers continuam
	// funcionando em memória e os eventos ficam acessíveis via /events.
	if cfg.DatabaseURL != "" {
		db, err := storage.NewDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Falha fatal ao conectar ao banco de dados e aplicar migrações: %v", err)
		}
		defer db.Close()

		j := journal.New(registryService, governanceService, db, cfg.JournalPollInterval)
		go j.Run(context.Background())
		log.Println("Diário de eventos iniciado.")
	} else {
		log.Println("DATABASE_URL ausente; diário de eventos desabilitado.")
	}

	assetHandler := handlers.NewAssetHandler(registryService)
	governanceHandler := handlers.NewGovernanceHandler(governanceService)
	r := handlers.Router(assetHandler, governanceHandler)

	log.Printf("Servidor backend rodando em %s...", cfg.ListenAddr)
	log.Fatal(http.ListenAndServe(cfg.ListenAddr, r))
}
