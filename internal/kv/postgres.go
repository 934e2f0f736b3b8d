package kv

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"

	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore is the optional shared backend, selected when
// DATABASE_URL is set.
type PostgresStore struct {
	conn *sql.DB
}

func ConnectPostgres(dsn string) (*PostgresStore, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("reading migrations dir: %w", err)
	}
	for _, entry := range entries {
		content, err := migrationsFS.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("reading migration %s: %w", entry.Name(), err)
		}
		if _, err := conn.Exec(string(content)); err != nil {
			return nil, fmt.Errorf("executing migration %s: %w", entry.Name(), err)
		}
		log.Printf("[KV] Applied migration: %s\n", entry.Name())
	}

	log.Println("[KV] Connected to PostgreSQL")
	return &PostgresStore{conn: conn}, nil
}

func (s *PostgresStore) Get(key string) (string, bool, error) {
	var value string
	err := s.conn.QueryRow(`SELECT value FROM kv WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("getting %s: %w", key, err)
	}
	return value, true, nil
}

func (s *PostgresStore) Set(key, value string) error {
	_, err := s.conn.Exec(`
		INSERT INTO kv (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = $2
	`, key, value)
	if err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Delete(key string) error {
	if _, err := s.conn.Exec(`DELETE FROM kv WHERE key = $1`, key); err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Reset() error {
	if _, err := s.conn.Exec(`DELETE FROM kv`); err != nil {
		return fmt.Errorf("resetting store: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.conn.Close()
}
