package storage

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/diwise/veda-client/pkg/veda/errors"
	"github.com/diwise/veda-client/pkg/veda/types/individuals"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgreSQLStore connects to the configured database and makes sure that
// the tables used by the store exist
func NewPostgreSQLStore(ctx context.Context, cfg Config) (Store, error) {
	p, err := connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	err = initialize(ctx, p)
	if err != nil {
		p.Close()
		return nil, err
	}

	return &postgresStore{pool: p}, nil
}

func connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	conn, err := pgxpool.New(ctx, cfg.ConnStr())
	if err != nil {
		return nil, err
	}

	err = conn.Ping(ctx)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return conn, err
}

func initialize(ctx context.Context, p *pgxpool.Pool) error {
	ddl := `
		CREATE TABLE IF NOT EXISTS individuals (
			uri TEXT PRIMARY KEY,
			individual JSONB NOT NULL,
			modified_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS files (
			uri TEXT PRIMARY KEY,
			content BYTEA NOT NULL,
			modified_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`

	_, err := p.Exec(ctx, ddl)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

func (s *postgresStore) Get(ctx context.Context, uri string) (*individuals.Individual, error) {
	var body []byte

	err := s.pool.QueryRow(ctx, `SELECT individual FROM individuals WHERE uri=$1`, uri).Scan(&body)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, errors.NewNotFoundError("no individual with uri " + uri)
		}
		return nil, err
	}

	return individuals.NewFromJSON(body)
}

func (s *postgresStore) Put(ctx context.Context, list ...*individuals.Individual) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}

	for _, i := range list {
		body, err := i.MarshalJSON()
		if err != nil {
			tx.Rollback(ctx)
			return err
		}

		sql := `
			INSERT INTO individuals (uri, individual) VALUES ($1, $2)
			ON CONFLICT (uri) DO UPDATE SET individual = EXCLUDED.individual, modified_at = NOW();`

		_, err = tx.Exec(ctx, sql, i.URI(), body)
		if err != nil {
			tx.Rollback(ctx)
			return err
		}
	}

	return tx.Commit(ctx)
}

func (s *postgresStore) Remove(ctx context.Context, uri string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM individuals WHERE uri=$1`, uri)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return errors.NewNotFoundError("no individual with uri " + uri)
	}

	return nil
}

func (s *postgresStore) Select(ctx context.Context, match func(*individuals.Individual) bool) ([]*individuals.Individual, error) {
	rows, err := s.pool.Query(ctx, `SELECT individual FROM individuals ORDER BY uri`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []*individuals.Individual{}

	for rows.Next() {
		var body []byte
		err := rows.Scan(&body)
		if err != nil {
			return nil, err
		}

		i, err := individuals.NewFromJSON(body)
		if err != nil {
			return nil, err
		}

		if match(i) {
			result = append(result, i)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (s *postgresStore) PutFile(ctx context.Context, uri string, content []byte) error {
	sql := `
		INSERT INTO files (uri, content) VALUES ($1, $2)
		ON CONFLICT (uri) DO UPDATE SET content = EXCLUDED.content, modified_at = NOW();`

	_, err := s.pool.Exec(ctx, sql, uri, content)
	return err
}

func (s *postgresStore) File(ctx context.Context, uri string) ([]byte, error) {
	var content []byte

	err := s.pool.QueryRow(ctx, `SELECT content FROM files WHERE uri=$1`, uri).Scan(&content)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, errors.NewNotFoundError("no file with uri " + uri)
		}
		return nil, err
	}

	return content, nil
}

func (s *postgresStore) Close() {
	s.pool.Close()
}

func (s *postgresStore) Vacuum(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "VACUUM ANALYZE individuals;")
	if err != nil {
		return err
	}

	return nil
}
