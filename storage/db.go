package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"log"

	"github.com/digitalflow/backend/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB representa a conexão com o banco de dados PostgreSQL que guarda o
// diário de eventos dos ledgers. O diário é um read-model: os ledgers nunca
// dependem dele para corretude.
type DB struct {
	*sqlx.DB
}

// NewDB conecta-se ao PostgreSQL e executa as migrações embutidas.
func NewDB(dataSourceName string) (*DB, error) {
	db, err := sqlx.Connect("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar ao banco de dados: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("falha ao pingar o banco de dados: %w", err)
	}

	if err := runMigrations(db.DB); err != nil {
		return nil, fmt.Errorf("falha ao executar migrações: %w", err)
	}

	return &DB{db}, nil
}

// runMigrations executa as migrações usando sql-migrate.
func runMigrations(db *sql.DB) error {
	migrations := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationsFS,
		Root:       "migrations",
	}

	n, err := migrate.Exec(db, "postgres", migrations, migrate.Up)
	if err != nil {
		return fmt.Errorf("erro ao aplicar migrações: %w", err)
	}
	if n > 0 {
		log.Printf("Aplicadas %d migrações ao banco de dados.", n)
	}
	return nil
}

// LastRegistrySeq retorna a maior sequência do diário do registro de assets,
// ou 0 se o diário estiver vazio.
func (d *DB) LastRegistrySeq() (uint64, error) {
	var seq uint64
	if err := d.Get(&seq, `SELECT COALESCE(MAX(seq), 0) FROM registry_events`); err != nil {
		return 0, fmt.Errorf("falha ao ler última sequência do registro: %w", err)
	}
	return seq, nil
}

// LastGovernanceSeq retorna a maior sequência do diário de governança.
func (d *DB) LastGovernanceSeq() (uint64, error) {
	var seq uint64
	if err := d.Get(&seq, `SELECT COALESCE(MAX(seq), 0) FROM governance_events`); err != nil {
		return 0, fmt.Errorf("falha ao ler última sequência de governança: %w", err)
	}
	return seq, nil
}

// SaveRegistryEvents persiste um lote de eventos do registro. Inserções são
// idempotentes por sequência, então reexecutar um lote não duplica linhas.
func (d *DB) SaveRegistryEvents(events []models.RegistryEvent) error {
	tx, err := d.Beginx()
	if err != nil {
		return fmt.Errorf("falha ao abrir transação: %w", err)
	}
	defer tx.Rollback()

	const query = `INSERT INTO registry_events (seq, id, kind, at, token_id, actor, amount, license_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (seq) DO NOTHING`
	for _, ev := range events {
		if _, err := tx.Exec(query, ev.Seq, ev.ID, string(ev.Kind), ev.At, ev.TokenID, string(ev.Actor), uint64(ev.Amount), ev.LicenseType); err != nil {
			return fmt.Errorf("falha ao gravar evento %d do registro: %w", ev.Seq, err)
		}
	}
	return tx.Commit()
}

// SaveGovernanceEvents persiste um lote de eventos de governança.
func (d *DB) SaveGovernanceEvents(events []models.GovernanceEvent) error {
	tx, err := d.Beginx()
	if err != nil {
		return fmt.Errorf("falha ao abrir transação: %w", err)
	}
	defer tx.Rollback()

	const query = `INSERT INTO governance_events (seq, id, kind, at, proposal_id, actor, description, support, weight)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (seq) DO NOTHING`
	for _, ev := range events {
		if _, err := tx.Exec(query, ev.Seq, ev.ID, string(ev.Kind), ev.At, ev.ProposalID, string(ev.Actor), ev.Description, ev.Support, uint64(ev.Weight)); err != nil {
			return fmt.Errorf("falha ao gravar evento %d de governança: %w", ev.Seq, err)
		}
	}
	return tx.Commit()
}
