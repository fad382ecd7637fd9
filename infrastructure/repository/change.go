package repository

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/vfg2006/ppc-flight-recorder/infrastructure/database"
	"github.com/vfg2006/ppc-flight-recorder/internal/domain"
	"github.com/vfg2006/ppc-flight-recorder/pkg/utils"
)

const changeRecordsTable = "change_records"

type ChangeRepository interface {
	Replace(ctx context.Context, name domain.Name, accountID, day string, records []domain.ChangeRecord) error
	List(ctx context.Context, name domain.Name, accountID, day string) ([]domain.ChangeRecord, error)
}

type changeRepository struct {
	conn database.Conn
}

func NewChangeRepository(conn database.Conn) ChangeRepository {
	return &changeRepository{
		conn: conn,
	}
}

// Replace segue a mesma disciplina dos diffs: delete do dia e insert na mesma transação
func (r *changeRepository) Replace(ctx context.Context, name domain.Name, accountID, day string, records []domain.ChangeRecord) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		deleteSQL, args, err := r.conn.Builder().
			Delete(changeRecordsTable).
			Where(dayFilter(name, accountID, day)).
			ToSql()
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, deleteSQL, args...); err != nil {
			return errors.Wrapf(err, "erro ao limpar mudanças %s de %s", name, day)
		}

		for start := 0; start < len(records); start += insertBatchSize {
			end := min(start+insertBatchSize, len(records))

			builder := r.conn.Builder().
				Insert(changeRecordsTable).
				Columns("domain", "account_id", "as_of_date", "entity_key", "key_parts",
					"change_type", "attributes", "old_value", "new_value")

			for _, rec := range records[start:end] {
				parts, err := utils.MarshalSorted(rec.KeyParts)
				if err != nil {
					return err
				}
				attrs, err := utils.MarshalSorted(rec.Attributes)
				if err != nil {
					return err
				}
				builder = builder.Values(string(name), accountID, day, rec.EntityKey, string(parts),
					string(rec.ChangeType), string(attrs), rec.OldValue, rec.NewValue)
			}

			insertSQL, args, err := builder.ToSql()
			if err != nil {
				return err
			}

			if _, err := tx.ExecContext(ctx, insertSQL, args...); err != nil {
				return errors.Wrapf(err, "erro ao gravar mudanças %s de %s", name, day)
			}
		}

		return nil
	})
}

func (r *changeRepository) List(ctx context.Context, name domain.Name, accountID, day string) ([]domain.ChangeRecord, error) {
	selectSQL, args, err := r.conn.Builder().
		Select("entity_key", "key_parts", "change_type", "attributes", "old_value", "new_value").
		From(changeRecordsTable).
		Where(dayFilter(name, accountID, day)).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, selectSQL, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao listar mudanças %s de %s", name, day)
	}
	defer rows.Close()

	records := make([]domain.ChangeRecord, 0)
	for rows.Next() {
		var (
			rec          domain.ChangeRecord
			parts, attrs []byte
			changeType   string
			oldV, newV   sql.NullString
		)
		if err := rows.Scan(&rec.EntityKey, &parts, &changeType, &attrs, &oldV, &newV); err != nil {
			return nil, err
		}
		if err := utils.JSON.Unmarshal(parts, &rec.KeyParts); err != nil {
			return nil, err
		}
		if err := utils.JSON.Unmarshal(attrs, &rec.Attributes); err != nil {
			return nil, err
		}
		rec.ChangeType = domain.ChangeType(changeType)
		rec.OldValue = nullString(oldV)
		rec.NewValue = nullString(newV)
		records = append(records, rec)
	}

	return records, rows.Err()
}
