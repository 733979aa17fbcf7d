package database

import (
	"fmt"
	"io"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
)

const (
	embeddedUser     = "postgres"
	embeddedPassword = "postgres"
	embeddedDatabase = "basket"
)

// Embedded is a throwaway Postgres server for local development and
// integration tests.
type Embedded struct {
	pg   *embeddedpostgres.EmbeddedPostgres
	port uint32
}

// StartEmbedded downloads (on first use) and starts a Postgres server on port.
// Server output goes to logs; pass io.Discard to silence it.
func StartEmbedded(port uint32, logs io.Writer) (*Embedded, error) {
	pg := embeddedpostgres.NewDatabase(embeddedpostgres.DefaultConfig().
		Port(port).
		Username(embeddedUser).
		Password(embeddedPassword).
		Database(embeddedDatabase).
		Logger(logs))
	if err := pg.Start(); err != nil {
		return nil, fmt.Errorf("starting embedded postgres: %w", err)
	}
	return &Embedded{pg: pg, port: port}, nil
}

// DSN returns the connection string of the embedded server.
func (e *Embedded) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@localhost:%d/%s?sslmode=disable",
		embeddedUser, embeddedPassword, e.port, embeddedDatabase)
}

func (e *Embedded) Stop() error {
	return e.pg.Stop()
}
