package journal

import (
	"context"
	"log"
	"time"

	"github.com/digitalflow/backend/models"
	"github.com/digitalflow/backend/services"
)

// EventStore é o destino persistente do diário de eventos. Implementado por
// storage.DB; mockável nos testes.
type EventStore interface {
	LastRegistrySeq() (uint64, error)
	LastGovernanceSeq() (uint64, error)
	SaveRegistryEvents([]models.RegistryEvent) error
	SaveGovernanceEvents([]models.GovernanceEvent) error
}

// Journal drena periodicamente os logs de eventos em memória dos dois
// ledgers para o banco de dados. Roda em uma goroutine própria e nunca está
// no caminho crítico das operações: se a gravação falhar, o lote é tentado
// de novo no próximo ciclo a partir da mesma sequência.
type Journal struct {
	registry   *services.RegistryService
	governance *services.GovernanceService
	store      EventStore
	interval   time.Duration

	registrySeq   uint64
	governanceSeq uint64
}

// New cria um diário. interval define o período de drenagem.
func New(registry *services.RegistryService, governance *services.GovernanceService, store EventStore, interval time.Duration) *Journal {
	return &Journal{
		registry:   registry,
		governance: governance,
		store:      store,
		interval:   interval,
	}
}

// Run inicia o loop de drenagem e bloqueia até o contexto ser cancelado.
// Retoma da última sequência já persistida no banco.
func (j *Journal) Run(ctx context.Context) {
	if seq, err := j.store.LastRegistrySeq(); err != nil {
		log.Printf("Falha ao ler sequência inicial do registro, recomeçando do zero: %v", err)
	} else {
		j.registrySeq = seq
	}
	if seq, err := j.store.LastGovernanceSeq(); err != nil {
		log.Printf("Falha ao ler sequência inicial de governança, recomeçando do zero: %v", err)
	} else {
		j.governanceSeq = seq
	}

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Última drenagem antes de encerrar.
			j.DrainOnce()
			return
		case <-ticker.C:
			j.DrainOnce()
		}
	}
}

// DrainOnce persiste os eventos novos de ambos os ledgers. Erros são
// registrados e o cursor não avança, então nada se perde entre ciclos.
func (j *Journal) DrainOnce() {
	if events := j.registry.EventsSince(j.registrySeq); len(events) > 0 {
		if err := j.store.SaveRegistryEvents(events); err != nil {
			log.Printf("Falha ao persistir %d eventos do registro: %v", len(events), err)
		} else {
			j.registrySeq = events[len(events)-1].Seq
		}
	}

	if events := j.governance.EventsSince(j.governanceSeq); len(events) > 0 {
		if err := j.store.SaveGovernanceEvents(events); err != nil {
			log.Printf("Falha ao persistir %d eventos de governança: %v", len(events), err)
		} else {
			j.governanceSeq = events[len(events)-1].Seq
		}
	}
}
