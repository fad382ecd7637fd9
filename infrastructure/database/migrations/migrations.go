package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
)

//go:embed files/postgres/*.sql files/sqlite3/*.sql
var migrationFiles embed.FS

// MigrateUp aplica todas as migrações pendentes para o driver informado
func MigrateUp(db *sql.DB, driver string) error {
	m, err := newMigrate(db, driver)
	if err != nil {
		return fmt.Errorf("erro ao criar instância de migração: %w", err)
	}
	// m não é fechado aqui: fecharia a conexão, que pertence ao chamador

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("falha na migração: %w", err)
	}

	version, _, _ := m.Version()
	logrus.WithFields(logrus.Fields{
		"driver":  driver,
		"version": version,
	}).Info("Migrações aplicadas")

	return nil
}

// CheckStatus verifica se o schema está na última versão embutida no binário
func CheckStatus(db *sql.DB, driver string) error {
	m, err := newMigrate(db, driver)
	if err != nil {
		return fmt.Errorf("erro ao criar instância de migração: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return fmt.Errorf("banco sem versão de schema (precisa migrar)")
		}
		return fmt.Errorf("erro ao obter versão do banco: %w", err)
	}

	if dirty {
		return fmt.Errorf("banco em estado dirty na versão %d (migração anterior falhou)", version)
	}

	src, err := iofs.New(migrationFiles, dir(driver))
	if err != nil {
		return fmt.Errorf("erro ao ler arquivos de migração: %w", err)
	}
	defer src.Close()

	latest, err := latestVersion(src)
	if err != nil {
		return fmt.Errorf("erro ao determinar última versão: %w", err)
	}

	if version < latest {
		return fmt.Errorf("banco na versão %d, mas a última é %d", version, latest)
	}
	if version > latest {
		return fmt.Errorf("banco na versão %d à frente do binário (%d)", version, latest)
	}

	return nil
}

func dir(driver string) string {
	return "files/" + driver
}

func newMigrate(db *sql.DB, driver string) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationFiles, dir(driver))
	if err != nil {
		return nil, fmt.Errorf("erro ao criar source driver: %w", err)
	}

	var dbDriver database.Driver
	switch driver {
	case "postgres":
		dbDriver, err = postgres.WithInstance(db, &postgres.Config{})
	case "sqlite3":
		dbDriver, err = sqlite3.WithInstance(db, &sqlite3.Config{})
	default:
		err = fmt.Errorf("driver sem migrações: %s", driver)
	}
	if err != nil {
		src.Close()
		return nil, err
	}

	m, err := migrate.NewWithInstance("iofs", src, driver, dbDriver)
	if err != nil {
		src.Close()
		return nil, err
	}

	return m, nil
}

func latestVersion(src source.Driver) (uint, error) {
	version, err := src.First()
	if err != nil {
		return 0, err
	}

	for {
		next, err := src.Next(version)
		if err != nil {
			break
		}
		version = next
	}

	return version, nil
}
