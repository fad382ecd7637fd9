package syncing

import (
	"context"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ppc-flight-recorder/internal/domain"
	"github.com/vfg2006/ppc-flight-recorder/internal/usecases/diffing"
	"github.com/vfg2006/ppc-flight-recorder/pkg/utils"
)

const (
	snapshotBatchSize = 1000
	ga4BatchSize      = 2000
)

type storeOptions struct {
	diff bool
	// batchSize 0 grava tudo de uma vez
	batchSize int
}

// store grava o snapshot do dia e, quando há dia anterior, o diff.
// Devolve as linhas gravadas após o dedup.
func (s *Service) store(ctx context.Context, d *domain.Domain, accountID, day string, rows []domain.Row, opts storeOptions) ([]domain.Row, error) {
	logger := logrus.WithFields(logrus.Fields{
		"domain":     d.Name,
		"account_id": accountID,
		"date":       day,
	})

	if len(rows) == 0 {
		logger.Warn("Nenhuma linha retornada, domínio ignorado")
		if d.ClearOnEmpty {
			if err := s.repos.Snapshots.ReplaceDay(ctx, d.Name, accountID, day, nil); err != nil {
				return nil, &StoreError{Op: "replace", Domain: d.Name, Account: accountID, Err: err}
			}
		}
		return nil, nil
	}

	rows, dropped := diffing.Dedup(d, rows)
	if dropped > 0 {
		logger.WithField("dropped", dropped).Warn("Linhas duplicadas descartadas")
	}

	if err := s.write(ctx, d, accountID, day, rows, opts.batchSize); err != nil {
		return nil, err
	}

	logger.WithField("rows", len(rows)).Debug("Snapshot gravado")

	if !opts.diff || d.Diff == domain.NoDiff {
		return rows, nil
	}

	if err := s.diff(ctx, d, accountID, day, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Service) write(ctx context.Context, d *domain.Domain, accountID, day string, rows []domain.Row, batchSize int) error {
	if d.ReplaceAll {
		if err := s.repos.Snapshots.ReplaceDay(ctx, d.Name, accountID, day, rows); err != nil {
			return &StoreError{Op: "replace", Domain: d.Name, Account: accountID, Err: err}
		}
		return nil
	}

	if batchSize <= 0 {
		batchSize = len(rows)
	}
	for start := 0; start < len(rows); start += batchSize {
		end := min(start+batchSize, len(rows))
		if err := s.repos.Snapshots.Upsert(ctx, d.Name, accountID, day, rows[start:end]); err != nil {
			return &StoreError{Op: "upsert", Domain: d.Name, Account: accountID, Err: err}
		}
	}
	return nil
}

// diff compara com o snapshot do dia anterior. Sem dia anterior os registros
// do dia são apenas removidos, sem comparação.
func (s *Service) diff(ctx context.Context, d *domain.Domain, accountID, day string, current []domain.Row) error {
	prevDay, err := utils.PreviousDay(day)
	if err != nil {
		return err
	}

	prior, err := s.repos.Snapshots.Get(ctx, d.Name, accountID, prevDay)
	if err != nil {
		return &StoreError{Op: "get", Domain: d.Name, Account: accountID, Err: err}
	}

	if len(prior) == 0 {
		logrus.WithFields(logrus.Fields{
			"domain":     d.Name,
			"account_id": accountID,
			"prior_date": prevDay,
		}).Debug("Sem snapshot anterior, diff ignorado")
		return s.replaceDiff(ctx, d, accountID, day, nil, nil)
	}

	switch d.Diff {
	case domain.FieldDiff:
		return s.replaceDiff(ctx, d, accountID, day, diffing.FieldDiff(d, current, prior), nil)
	case domain.SetDiff:
		return s.replaceDiff(ctx, d, accountID, day, nil, diffing.SetDiff(d, prior, current))
	}
	return nil
}

// replaceDiff substitui os registros do dia no store do tipo de diff do domínio
func (s *Service) replaceDiff(ctx context.Context, d *domain.Domain, accountID, day string, diffs []domain.DiffRecord, changes []domain.ChangeRecord) error {
	switch d.Diff {
	case domain.FieldDiff:
		if err := s.repos.Diffs.Replace(ctx, d.Name, accountID, day, diffs); err != nil {
			return &StoreError{Op: "diff", Domain: d.Name, Account: accountID, Err: err}
		}
	case domain.SetDiff:
		if err := s.repos.Changes.Replace(ctx, d.Name, accountID, day, changes); err != nil {
			return &StoreError{Op: "changes", Domain: d.Name, Account: accountID, Err: err}
		}
	}
	return nil
}

// groupByDate separa linhas pelo campo de data informado
func groupByDate(rows []domain.Row, field string) map[string][]domain.Row {
	out := make(map[string][]domain.Row)
	for _, r := range rows {
		day := r.String(field)
		if day == "" {
			continue
		}
		out[day] = append(out[day], r)
	}
	return out
}

func sortedDays(byDay map[string][]domain.Row) []string {
	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}

func joinSorted(items []string) string {
	sort.Strings(items)
	return strings.Join(items, ", ")
}
