package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config reúne a configuração do backend, carregada de variáveis de ambiente.
type Config struct {
	// ListenAddr é o endereço HTTP do servidor.
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`
	// DatabaseURL é o DSN do PostgreSQL para o diário de eventos. Vazio
	// desabilita a persistência; os ledgers continuam funcionando em memória.
	DatabaseURL string `env:"DATABASE_URL"`
	// GovAdminAddress é a conta autorizada a emitir saldo de governança.
	GovAdminAddress string `env:"GOV_ADMIN_ADDRESS,required,notEmpty"`
	// MinLicenseFee é a taxa mínima de licença em unidades base (0.01 FLOW).
	MinLicenseFee uint64 `env:"MIN_LICENSE_FEE" envDefault:"10000000"`
	// JournalPollInterval é o intervalo de drenagem do diário de eventos.
	JournalPollInterval time.Duration `env:"JOURNAL_POLL_INTERVAL" envDefault:"2s"`
}

// Load lê a configuração do ambiente.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("falha ao carregar configuração do ambiente: %w", err)
	}
	return cfg, nil
}
