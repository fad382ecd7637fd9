package syncing

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ppc-flight-recorder/internal/domain"
	"github.com/vfg2006/ppc-flight-recorder/pkg/utils"
)

const defaultBatchDays = 30

var outcomeDomains = []domain.Name{
	domain.CampaignOutcome,
	domain.AdGroupOutcome,
	domain.KeywordOutcome,
}

// BackfillOptions parametriza a carga histórica de resultados
type BackfillOptions struct {
	Start     string
	End       string
	BatchDays int
	Projects  []string
	GA4       bool
	Diffs     bool
	// Delay entre projetos, respeitando o cancelamento do contexto
	Delay           time.Duration
	ContinueOnError bool
}

// Backfill carrega resultados diários de um intervalo em janelas de BatchDays
// dias. Ao final grava um snapshot de estado de controle para End.
func (s *Service) Backfill(ctx context.Context, opts BackfillOptions) (*domain.SyncRun, error) {
	start, err := domain.ParseDate(opts.Start)
	if err != nil {
		return nil, fmt.Errorf("%w: data inicial %q", ErrInvalidRange, opts.Start)
	}
	end, err := domain.ParseDate(opts.End)
	if err != nil {
		return nil, fmt.Errorf("%w: data final %q", ErrInvalidRange, opts.End)
	}
	if start.After(end) {
		return nil, fmt.Errorf("%w: %s é posterior a %s", ErrInvalidRange, opts.Start, opts.End)
	}

	batchDays := opts.BatchDays
	if batchDays <= 0 {
		batchDays = defaultBatchDays
	}

	projects := s.projects(opts.Projects)
	accounts, err := s.accounts(projects)
	if err != nil {
		return nil, err
	}

	run := &domain.SyncRun{
		Trigger:       domain.TriggerBackfill,
		SnapshotDates: utils.DateRange(start, end),
		Projects:      projects,
	}
	if err := s.repos.Runs.Start(ctx, run); err != nil {
		return nil, &StoreError{Op: "start", Err: err}
	}

	logger := logrus.WithFields(logrus.Fields{
		"run_id":     run.ID,
		"start":      opts.Start,
		"end":        opts.End,
		"batch_days": batchDays,
	})
	logger.Info("Iniciando backfill")

	fails := &failures{continueOnError: opts.ContinueOnError}
	runErr := s.backfillChunks(ctx, run, accounts, start, end, batchDays, opts, fails)
	if runErr == nil {
		runErr = fails.err()
	}

	if runErr == nil {
		s.finalControlState(ctx, accounts, opts.End)
	}

	s.finish(ctx, run, runErr)

	if runErr != nil {
		logger.WithError(runErr).Error("Backfill finalizado com erro")
		return run, runErr
	}

	logger.Info("Backfill finalizado")
	return run, nil
}

func (s *Service) backfillChunks(ctx context.Context, run *domain.SyncRun, accounts []domain.Account, start, end time.Time, batchDays int, opts BackfillOptions, fails *failures) error {
	for chunkStart := start; !chunkStart.After(end); chunkStart = chunkStart.AddDate(0, 0, batchDays) {
		chunkEnd := chunkStart.AddDate(0, 0, batchDays-1)
		if chunkEnd.After(end) {
			chunkEnd = end
		}
		from, to := domain.FormatDate(chunkStart), domain.FormatDate(chunkEnd)

		chunkFailed := false
		for _, account := range accounts {
			if err := sleep(ctx, opts.Delay); err != nil {
				return err
			}

			if err := s.backfillAccount(ctx, account, from, to, opts.Diffs); err != nil {
				chunkFailed = true
				if err := fails.add(err); err != nil {
					return err
				}
			}
		}

		if opts.GA4 && s.analytics != nil {
			for _, project := range run.Projects {
				s.syncGA4(ctx, project, from, to, opts.Diffs)
			}
		}

		if !chunkFailed {
			run.CompletedDates = append(run.CompletedDates, utils.DateRange(chunkStart, chunkEnd)...)
		}
	}
	return nil
}

// backfillAccount grava os resultados da janela agrupados por dia, em ordem
// crescente, para que o diff de cada dia encontre o anterior já gravado
func (s *Service) backfillAccount(ctx context.Context, account domain.Account, from, to string, diffs bool) error {
	logrus.WithFields(logrus.Fields{
		"project":     account.Project,
		"customer_id": account.CustomerID,
		"start":       from,
		"end":         to,
	}).Info("Backfill da conta")

	for _, name := range outcomeDomains {
		if err := ctx.Err(); err != nil {
			return err
		}

		rows, err := s.provider.FetchRange(ctx, name, account, from, to)
		if err != nil {
			return &ProviderError{Domain: name, Account: account.CustomerID, Err: err}
		}

		d := domain.MustLookup(name)
		byDay := groupByDate(rows, "outcome_date")
		for _, day := range sortedDays(byDay) {
			stored, err := s.store(ctx, d, account.CustomerID, day, byDay[day], storeOptions{diff: diffs, batchSize: snapshotBatchSize})
			if err != nil {
				return err
			}
			if err := s.upsertDims(ctx, name, account.CustomerID, day, stored); err != nil {
				return err
			}
		}
	}
	return nil
}

// finalControlState grava o estado de controle do último dia; falhas apenas
// geram aviso
func (s *Service) finalControlState(ctx context.Context, accounts []domain.Account, day string) {
	d := domain.MustLookup(domain.ControlState)
	for _, account := range accounts {
		logger := logrus.WithFields(logrus.Fields{
			"project":     account.Project,
			"customer_id": account.CustomerID,
			"date":        day,
		})

		rows, err := s.provider.Fetch(ctx, domain.ControlState, account, day)
		if err != nil {
			logger.WithError(err).Warn("Falha ao buscar estado de controle do backfill")
			continue
		}

		stored, err := s.store(ctx, d, account.CustomerID, day, rows, storeOptions{diff: true})
		if err == nil {
			err = s.upsertDims(ctx, domain.ControlState, account.CustomerID, day, stored)
		}
		if err != nil {
			logger.WithError(err).Warn("Falha ao gravar estado de controle do backfill")
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
