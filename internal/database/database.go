package database

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/rs/zerolog/log"
)

//go:embed schema.sql
var schemaSQL string

// Settings holds the connection parameters.
type Settings struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	ApplySchema bool
}

// DSN returns the lib/pq keyword connection string.
func (s Settings) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		s.Host, s.Port, s.User, s.Password, s.Name, s.SSLMode)
}

// InitDB opens and pings the PostgreSQL connection pool, applying the schema when requested.
func InitDB(s Settings) (*sql.DB, error) {
	db, err := sql.Open("postgres", s.DSN())
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	log.Info().Str("host", s.Host).Str("database", s.Name).Msg("Successfully connected to the database")

	if s.ApplySchema {
		if err = ApplySchema(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}

// ApplySchema executes the embedded schema. Every statement is idempotent.
func ApplySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("could not execute schema script: %w", err)
	}
	log.Info().Msg("Database schema applied successfully")
	return nil
}
