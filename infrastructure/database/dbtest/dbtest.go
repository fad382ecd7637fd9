// Package dbtest abre bancos SQLite em memória com o schema aplicado para testes.
package dbtest

import (
	"database/sql"
	"testing"

	"github.com/vfg2006/ppc-flight-recorder/infrastructure/database"
	"github.com/vfg2006/ppc-flight-recorder/infrastructure/database/migrations"
)

// NewConnection devolve uma conexão SQLite em memória já migrada.
// A conexão é fechada no t.Cleanup.
func NewConnection(t *testing.T) *database.Connection {
	t.Helper()

	db, err := sql.Open(database.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("erro ao abrir banco em memória: %v", err)
	}
	db.SetMaxOpenConns(1)

	if err := migrations.MigrateUp(db, database.DriverSQLite); err != nil {
		_ = db.Close()
		t.Fatalf("erro ao migrar banco em memória: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return database.NewConnectionFromDB(db, database.DriverSQLite)
}
