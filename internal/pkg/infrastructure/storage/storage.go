package storage

import (
	"context"
	"fmt"

	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/veda-client/pkg/veda/types/individuals"
)

// Store keeps the individuals and files held by the stub platform. Implementations
// hand out copies, so callers are free to modify what they get back.
type Store interface {
	Get(ctx context.Context, uri string) (*individuals.Individual, error)
	Put(ctx context.Context, list ...*individuals.Individual) error
	Remove(ctx context.Context, uri string) error
	Select(ctx context.Context, match func(*individuals.Individual) bool) ([]*individuals.Individual, error)

	PutFile(ctx context.Context, uri string, content []byte) error
	File(ctx context.Context, uri string) ([]byte, error)

	Close()
}

type Config struct {
	host     string
	user     string
	password string
	port     string
	dbname   string
	sslmode  string
}

func LoadConfiguration(ctx context.Context) Config {
	return Config{
		host:     env.GetVariableOrDefault(ctx, "POSTGRES_HOST", ""),
		user:     env.GetVariableOrDefault(ctx, "POSTGRES_USER", ""),
		password: env.GetVariableOrDefault(ctx, "POSTGRES_PASSWORD", ""),
		port:     env.GetVariableOrDefault(ctx, "POSTGRES_PORT", "5432"),
		dbname:   env.GetVariableOrDefault(ctx, "POSTGRES_DBNAME", "veda"),
		sslmode:  env.GetVariableOrDefault(ctx, "POSTGRES_SSLMODE", "disable"),
	}
}

// Enabled reports if a database host has been configured
func (c Config) Enabled() bool {
	return c.host != ""
}

func (c Config) ConnStr() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", c.user, c.password, c.host, c.port, c.dbname, c.sslmode)
}
