package repository

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/vfg2006/ppc-flight-recorder/infrastructure/database"
	"github.com/vfg2006/ppc-flight-recorder/internal/domain"
	"github.com/vfg2006/ppc-flight-recorder/pkg/utils"
)

const fieldDiffsTable = "field_diffs"

type DiffRepository interface {
	// Replace apaga os diffs do dia e grava os novos na mesma transação.
	// Com records vazio apenas apaga.
	Replace(ctx context.Context, name domain.Name, accountID, day string, records []domain.DiffRecord) error
	List(ctx context.Context, name domain.Name, accountID, day string) ([]domain.DiffRecord, error)
}

type diffRepository struct {
	conn database.Conn
}

func NewDiffRepository(conn database.Conn) DiffRepository {
	return &diffRepository{
		conn: conn,
	}
}

func (r *diffRepository) Replace(ctx context.Context, name domain.Name, accountID, day string, records []domain.DiffRecord) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		deleteSQL, args, err := r.conn.Builder().
			Delete(fieldDiffsTable).
			Where(dayFilter(name, accountID, day)).
			ToSql()
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, deleteSQL, args...); err != nil {
			return errors.Wrapf(err, "erro ao limpar diffs %s de %s", name, day)
		}

		for start := 0; start < len(records); start += insertBatchSize {
			end := min(start+insertBatchSize, len(records))

			builder := r.conn.Builder().
				Insert(fieldDiffsTable).
				Columns("domain", "account_id", "as_of_date", "entity_key", "key_parts",
					"changed_field_name", "old_value", "new_value")

			for _, rec := range records[start:end] {
				parts, err := utils.MarshalSorted(rec.KeyParts)
				if err != nil {
					return err
				}
				builder = builder.Values(string(name), accountID, day, rec.EntityKey, string(parts),
					rec.ChangedFieldName, rec.OldValue, rec.NewValue)
			}

			insertSQL, args, err := builder.ToSql()
			if err != nil {
				return err
			}

			if _, err := tx.ExecContext(ctx, insertSQL, args...); err != nil {
				return errors.Wrapf(err, "erro ao gravar diffs %s de %s", name, day)
			}
		}

		return nil
	})
}

func (r *diffRepository) List(ctx context.Context, name domain.Name, accountID, day string) ([]domain.DiffRecord, error) {
	selectSQL, args, err := r.conn.Builder().
		Select("entity_key", "key_parts", "changed_field_name", "old_value", "new_value").
		From(fieldDiffsTable).
		Where(dayFilter(name, accountID, day)).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, selectSQL, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao listar diffs %s de %s", name, day)
	}
	defer rows.Close()

	records := make([]domain.DiffRecord, 0)
	for rows.Next() {
		var (
			rec        domain.DiffRecord
			parts      []byte
			oldV, newV sql.NullString
		)
		if err := rows.Scan(&rec.EntityKey, &parts, &rec.ChangedFieldName, &oldV, &newV); err != nil {
			return nil, err
		}
		if err := utils.JSON.Unmarshal(parts, &rec.KeyParts); err != nil {
			return nil, err
		}
		rec.OldValue = nullString(oldV)
		rec.NewValue = nullString(newV)
		records = append(records, rec)
	}

	return records, rows.Err()
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}
