package storage_test

import (
	"os"
	"testing"
	"time"

	"github.com/digitalflow/backend/models"
	"github.com/digitalflow/backend/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEventJournalRoundTrip exercita o diário contra um PostgreSQL real.
// Roda apenas com TEST_DATABASE_URL definido.
func TestEventJournalRoundTrip(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL não definido; pulando teste de integração com PostgreSQL")
	}

	db, err := storage.NewDB(dsn)
	require.NoError(t, err)
	defer db.Close()

	t.Cleanup(func() {
		db.Exec(`DELETE FROM registry_events`)
		db.Exec(`DELETE FROM governance_events`)
	})

	seq, err := db.LastRegistrySeq()
	require.NoError(t, err)
	require.Equal(t, uint64(0), seq)

	now := time.Now().UTC()
	registryEvents := []models.RegistryEvent{
		{ID: uuid.New().String(), Seq: 1, Kind: models.EventMinted, At: now, TokenID: 0, Actor: "alice"},
		{ID: uuid.New().String(), Seq: 2, Kind: models.EventPurchased, At: now, TokenID: 0, Actor: "bob", Amount: models.OneFlow},
	}
	require.NoError(t, db.SaveRegistryEvents(registryEvents))

	seq, err = db.LastRegistrySeq()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), seq)

	// Regravar o mesmo lote é idempotente por sequência.
	require.NoError(t, db.SaveRegistryEvents(registryEvents))
	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM registry_events`))
	assert.Equal(t, 2, count)

	governanceEvents := []models.GovernanceEvent{
		{ID: uuid.New().String(), Seq: 1, Kind: models.EventProposalCreated, At: now, ProposalID: 1, Actor: "alice", Description: "Test"},
		{ID: uuid.New().String(), Seq: 2, Kind: models.EventVoteCast, At: now, ProposalID: 1, Actor: "alice", Support: true, Weight: 100},
	}
	require.NoError(t, db.SaveGovernanceEvents(governanceEvents))

	seq, err = db.LastGovernanceSeq()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), seq)
}
