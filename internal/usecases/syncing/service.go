package syncing

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ppc-flight-recorder/infrastructure/repository"
	"github.com/vfg2006/ppc-flight-recorder/internal/config"
	"github.com/vfg2006/ppc-flight-recorder/internal/domain"
	"github.com/vfg2006/ppc-flight-recorder/pkg/utils"
)

// Repositories agrupa os armazenamentos usados pelo sync
type Repositories struct {
	Snapshots  repository.SnapshotRepository
	Diffs      repository.DiffRepository
	Changes    repository.ChangeRepository
	Dimensions repository.DimensionRepository
	Runs       repository.SyncRunRepository
}

// Service orquestra fetch, snapshot e diff por conta e domínio
type Service struct {
	cfg       *config.Config
	provider  Provider
	analytics AnalyticsProvider
	repos     Repositories
	now       func() time.Time
}

// NewService cria o orquestrador. analytics pode ser nil quando o GA4 não
// está configurado.
func NewService(cfg *config.Config, provider Provider, analytics AnalyticsProvider, repos Repositories) *Service {
	return &Service{
		cfg:       cfg,
		provider:  provider,
		analytics: analytics,
		repos:     repos,
		now:       time.Now,
	}
}

// RunOptions parametriza uma execução diária
type RunOptions struct {
	// Dates vazio usa ontem no fuso do agendamento
	Dates []string
	// Projects vazio usa os projetos configurados
	Projects        []string
	Scope           domain.Scope
	GA4             bool
	ContinueOnError bool
	Trigger         domain.SyncTrigger
}

// Run executa o sync dos dias informados. As contas e os domínios rodam em
// sequência; por padrão o primeiro erro aborta a execução.
func (s *Service) Run(ctx context.Context, opts RunOptions) (*domain.SyncRun, error) {
	dates, err := s.runDates(opts.Dates)
	if err != nil {
		return nil, err
	}

	projects := s.projects(opts.Projects)
	accounts, err := s.accounts(projects)
	if err != nil {
		return nil, err
	}

	if opts.Trigger == "" {
		opts.Trigger = domain.TriggerCLI
	}

	run := &domain.SyncRun{
		Trigger:       opts.Trigger,
		Scope:         opts.Scope,
		SnapshotDates: dates,
		Projects:      projects,
	}
	if err := s.repos.Runs.Start(ctx, run); err != nil {
		return nil, &StoreError{Op: "start", Err: err}
	}

	logger := logrus.WithFields(logrus.Fields{
		"run_id":  run.ID,
		"scope":   opts.Scope.Label(),
		"dates":   dates,
		"trigger": opts.Trigger,
	})
	logger.Info("Iniciando sync")

	fails := &failures{continueOnError: opts.ContinueOnError}
	runErr := s.runDays(ctx, run, accounts, opts, fails)
	if runErr == nil {
		runErr = fails.err()
	}

	s.finish(ctx, run, runErr)

	if runErr != nil {
		logger.WithError(runErr).Error("Sync finalizado com erro")
		return run, runErr
	}

	logger.WithField("completed_dates", run.CompletedDates).Info("Sync finalizado")
	return run, nil
}

func (s *Service) runDays(ctx context.Context, run *domain.SyncRun, accounts []domain.Account, opts RunOptions, fails *failures) error {
	withGA4 := opts.GA4 && opts.Scope == domain.ScopeAll && s.analytics != nil

	for _, day := range run.SnapshotDates {
		dayFailed := false
		for _, account := range accounts {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := s.syncAccount(ctx, account, day, opts.Scope); err != nil {
				dayFailed = true
				if err := fails.add(err); err != nil {
					return err
				}
			}
		}

		if withGA4 {
			for _, project := range run.Projects {
				s.syncGA4(ctx, project, day, day, true)
			}
		}

		if !dayFailed {
			run.CompletedDates = append(run.CompletedDates, day)
		}
	}
	return nil
}

// syncAccount executa os domínios do escopo para uma conta, na ordem fixa
func (s *Service) syncAccount(ctx context.Context, account domain.Account, day string, scope domain.Scope) error {
	logrus.WithFields(logrus.Fields{
		"project":     account.Project,
		"customer_id": account.CustomerID,
		"date":        day,
	}).Info("Sincronizando conta")

	for _, name := range scope.Domains() {
		if err := ctx.Err(); err != nil {
			return err
		}

		d := domain.MustLookup(name)
		rows, err := s.provider.Fetch(ctx, name, account, day)
		if err != nil {
			return &ProviderError{Domain: name, Account: account.CustomerID, Err: err}
		}

		rows, err = s.store(ctx, d, account.CustomerID, day, rows, storeOptions{diff: true})
		if err != nil {
			return err
		}

		if err := s.upsertDims(ctx, name, account.CustomerID, day, rows); err != nil {
			return err
		}
	}
	return nil
}

// upsertDims atualiza as dimensões derivadas do domínio, quando houver
func (s *Service) upsertDims(ctx context.Context, name domain.Name, customerID, day string, rows []domain.Row) error {
	if len(rows) == 0 {
		return nil
	}

	var err error
	switch name {
	case domain.ControlState, domain.CampaignOutcome:
		err = s.repos.Dimensions.UpsertCampaigns(ctx, customerID, day, domain.CampaignDimsFrom(rows))
	case domain.AdGroupOutcome:
		err = s.repos.Dimensions.UpsertAdGroups(ctx, customerID, day, domain.AdGroupDimsFrom(rows))
	case domain.KeywordOutcome:
		err = s.repos.Dimensions.UpsertKeywords(ctx, customerID, day, domain.KeywordDimsFrom(rows))
	default:
		return nil
	}

	if err != nil {
		return &StoreError{Op: "dims", Domain: name, Account: customerID, Err: err}
	}
	return nil
}

// syncGA4 grava os relatórios de aquisição do projeto. Falhas apenas geram aviso.
func (s *Service) syncGA4(ctx context.Context, project, start, end string, diff bool) {
	logger := logrus.WithFields(logrus.Fields{
		"project": project,
		"start":   start,
		"end":     end,
	})

	rows, err := s.analytics.FetchAcquisition(ctx, project, start, end)
	if err != nil {
		logger.WithError(err).Warn("Falha ao buscar GA4, seguindo sem ele")
		return
	}

	d := domain.MustLookup(domain.GA4Acquisition)
	byDay := groupByDate(rows, "acquisition_date")
	for _, day := range sortedDays(byDay) {
		opts := storeOptions{diff: diff, batchSize: ga4BatchSize}
		if _, err := s.store(ctx, d, project, day, byDay[day], opts); err != nil {
			logger.WithError(err).Warn("Falha ao gravar GA4, seguindo sem ele")
			return
		}
	}
}

// LastRun devolve a execução mais recente registrada
func (s *Service) LastRun(ctx context.Context) (*domain.SyncRun, error) {
	return s.repos.Runs.Last(ctx)
}

// Location devolve o fuso do agendamento, UTC quando inválido
func (s *Service) Location() *time.Location {
	loc, err := time.LoadLocation(s.cfg.Sync.ScheduleTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (s *Service) finish(ctx context.Context, run *domain.SyncRun, runErr error) {
	run.Status = domain.SyncRunOK
	if runErr != nil {
		run.Status = domain.SyncRunError
		run.Error = runErr.Error()
	}

	// o contexto pode já ter sido cancelado; o registro ainda precisa ser fechado
	if err := s.repos.Runs.Finish(context.WithoutCancel(ctx), run); err != nil {
		logrus.WithError(err).WithField("run_id", run.ID).Error("Erro ao registrar fim do sync")
	}
}

func (s *Service) runDates(dates []string) ([]string, error) {
	if len(dates) == 0 {
		return []string{utils.Yesterday(s.now(), s.Location()).Format(domain.DateLayout)}, nil
	}

	for _, day := range dates {
		if _, err := domain.ParseDate(day); err != nil {
			return nil, fmt.Errorf("%w: data inválida %q", ErrInvalidRange, day)
		}
	}
	return dates, nil
}

func (s *Service) projects(projects []string) []string {
	if len(projects) > 0 {
		return projects
	}
	return s.cfg.Sync.Projects
}

// accounts resolve as contas dos projetos e valida as credenciais antes de
// qualquer busca
func (s *Service) accounts(projects []string) ([]domain.Account, error) {
	if len(projects) == 0 {
		return nil, &ConfigurationError{Details: "nenhum projeto configurado"}
	}

	ads := s.cfg.GoogleAds
	var missing []string
	for field, value := range map[string]string{
		"GOOGLE_ADS_DEVELOPER_TOKEN": ads.DeveloperToken,
		"GOOGLE_ADS_CLIENT_ID":       ads.ClientID,
		"GOOGLE_ADS_CLIENT_SECRET":   ads.ClientSecret,
		"GOOGLE_ADS_REFRESH_TOKEN":   ads.RefreshToken,
	} {
		if value == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, &ConfigurationError{Details: "credenciais ausentes: " + joinSorted(missing)}
	}

	if s.cfg.Projects == nil {
		return nil, &ConfigurationError{Details: "registro de projetos não carregado"}
	}

	accounts := make([]domain.Account, 0, len(projects))
	for _, project := range projects {
		customerID := s.cfg.Projects.CustomerID(project)
		if customerID == "" {
			return nil, &ConfigurationError{Project: project, Details: "customer ID não definido"}
		}
		accounts = append(accounts, domain.Account{
			Project:              project,
			CustomerID:           customerID,
			CampaignNamePatterns: s.cfg.Projects.CampaignNamePatterns(project, s.cfg.Sync.CampaignNamePatterns),
		})
	}
	return accounts, nil
}
