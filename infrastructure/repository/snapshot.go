package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/ppc-flight-recorder/infrastructure/database"
	"github.com/vfg2006/ppc-flight-recorder/internal/domain"
	"github.com/vfg2006/ppc-flight-recorder/pkg/utils"
)

const snapshotTable = "snapshot_rows"

// linhas por INSERT; mantém o número de parâmetros abaixo do limite do sqlite
const insertBatchSize = 500

type SnapshotRepository interface {
	// Upsert grava as linhas do dia, sobrescrevendo entidades já existentes
	Upsert(ctx context.Context, name domain.Name, accountID, day string, rows []domain.Row) error
	// Get devolve o snapshot do dia na ordem de gravação; vazio quando não há
	Get(ctx context.Context, name domain.Name, accountID, day string) ([]domain.Row, error)
	// ReplaceDay apaga o dia e grava as linhas; sem linhas apenas apaga
	ReplaceDay(ctx context.Context, name domain.Name, accountID, day string, rows []domain.Row) error
}

type snapshotRepository struct {
	conn database.Conn
}

func NewSnapshotRepository(conn database.Conn) SnapshotRepository {
	return &snapshotRepository{
		conn: conn,
	}
}

func (s *snapshotRepository) Upsert(ctx context.Context, name domain.Name, accountID, day string, rows []domain.Row) error {
	if len(rows) == 0 {
		return nil
	}

	return s.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		return s.insert(ctx, tx, name, accountID, day, rows, true)
	})
}

func (s *snapshotRepository) ReplaceDay(ctx context.Context, name domain.Name, accountID, day string, rows []domain.Row) error {
	return s.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		deleteSQL, args, err := s.conn.Builder().
			Delete(snapshotTable).
			Where(dayFilter(name, accountID, day)).
			ToSql()
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, deleteSQL, args...); err != nil {
			return errors.Wrapf(err, "erro ao limpar snapshot %s de %s", name, day)
		}

		return s.insert(ctx, tx, name, accountID, day, rows, false)
	})
}

func (s *snapshotRepository) insert(
	ctx context.Context,
	q database.Queryer,
	name domain.Name,
	accountID, day string,
	rows []domain.Row,
	upsert bool,
) error {
	d, err := domain.Lookup(name)
	if err != nil {
		return err
	}

	for start := 0; start < len(rows); start += insertBatchSize {
		end := min(start+insertBatchSize, len(rows))

		builder := s.conn.Builder().
			Insert(snapshotTable).
			Columns("domain", "account_id", "as_of_date", "entity_key", "fields", "position")

		for i, r := range rows[start:end] {
			fields, err := utils.MarshalSorted(r)
			if err != nil {
				return errors.Wrapf(err, "erro ao serializar linha de %s", name)
			}
			builder = builder.Values(string(name), accountID, day, d.StorageKeyOf(r).String(), string(fields), start+i)
		}

		if upsert {
			builder = builder.Suffix(
				"ON CONFLICT (domain, account_id, as_of_date, entity_key) DO UPDATE SET " +
					"fields = excluded.fields, position = excluded.position, updated_at = CURRENT_TIMESTAMP",
			)
		}

		insertSQL, args, err := builder.ToSql()
		if err != nil {
			return err
		}

		if _, err := q.ExecContext(ctx, insertSQL, args...); err != nil {
			return errors.Wrapf(err, "erro ao gravar snapshot %s de %s", name, day)
		}
	}

	return nil
}

func (s *snapshotRepository) Get(ctx context.Context, name domain.Name, accountID, day string) ([]domain.Row, error) {
	selectSQL, args, err := s.conn.Builder().
		Select("fields").
		From(snapshotTable).
		Where(dayFilter(name, accountID, day)).
		OrderBy("position ASC", "entity_key ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.conn.QueryContext(ctx, selectSQL, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler snapshot %s de %s", name, day)
	}
	defer rows.Close()

	result := make([]domain.Row, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}

		row := domain.Row{}
		if err := utils.UnmarshalNumber(raw, &row); err != nil {
			return nil, errors.Wrapf(err, "erro ao decodificar snapshot %s de %s", name, day)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

func dayFilter(name domain.Name, accountID, day string) squirrel.Eq {
	return squirrel.Eq{
		"domain":     string(name),
		"account_id": accountID,
		"as_of_date": day,
	}
}
