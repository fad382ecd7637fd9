package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ppc-flight-recorder/internal/config"
	"github.com/vfg2006/ppc-flight-recorder/internal/domain"
	"github.com/vfg2006/ppc-flight-recorder/internal/usecases/syncing"
)

// Syncer executa um sync e consulta a última execução registrada
type Syncer interface {
	Run(ctx context.Context, opts syncing.RunOptions) (*domain.SyncRun, error)
	LastRun(ctx context.Context) (*domain.SyncRun, error)
}

// DailySyncConfig representa a configuração do agendador do sync diário
type DailySyncConfig struct {
	Enabled         bool
	Timezone        string
	Hour            int
	Minute          int
	GA4             bool
	ContinueOnError bool
}

// DailySyncService agenda o sync de ontem uma vez por dia e serializa
// execuções manuais com as agendadas
type DailySyncService struct {
	scheduler   *gocron.Scheduler
	job         *gocron.Job
	config      DailySyncConfig
	location    *time.Location
	syncer      Syncer
	syncRunning bool
	syncMutex   sync.Mutex
	now         func() time.Time
}

func NewDailySyncService(syncer Syncer, cfg *config.Config) *DailySyncService {
	syncConfig := DailySyncConfig{
		Enabled:         cfg.Sync.ScheduleEnabled,
		Timezone:        cfg.Sync.ScheduleTimezone,
		Hour:            cfg.Sync.ScheduleHour,
		Minute:          cfg.Sync.ScheduleMinute,
		GA4:             cfg.Sync.SaveGA4OnDailySync,
		ContinueOnError: cfg.Sync.ContinueOnError,
	}

	location, err := time.LoadLocation(syncConfig.Timezone)
	if err != nil {
		logrus.WithError(err).WithField("timezone", syncConfig.Timezone).Warn("Fuso do agendamento inválido, usando UTC")
		location = time.UTC
		syncConfig.Timezone = "UTC"
	}

	logrus.WithFields(logrus.Fields{
		"timezone": syncConfig.Timezone,
		"hour":     syncConfig.Hour,
		"minute":   syncConfig.Minute,
		"enabled":  syncConfig.Enabled,
		"ga4":      syncConfig.GA4,
	}).Info("Configuração do agendador do sync diário carregada")

	return &DailySyncService{
		scheduler: gocron.NewScheduler(location),
		config:    syncConfig,
		location:  location,
		syncer:    syncer,
		now:       time.Now,
	}
}

// Start agenda o sync diário e para o agendador quando ctx é cancelado
func (s *DailySyncService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Sync diário desabilitado por configuração")
		return nil
	}

	at := fmt.Sprintf("%02d:%02d", s.config.Hour, s.config.Minute)
	logrus.WithFields(logrus.Fields{
		"at":       at,
		"timezone": s.config.Timezone,
	}).Info("Iniciando agendador do sync diário")

	job, err := s.scheduler.Every(1).Day().At(at).Do(func() {
		s.runScheduled(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sync diário: %w", err)
	}
	s.job = job

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador do sync diário")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *DailySyncService) runScheduled(ctx context.Context) {
	_, err := s.execute(ctx, syncing.RunOptions{
		Trigger:         domain.TriggerScheduled,
		GA4:             s.config.GA4,
		ContinueOnError: s.config.ContinueOnError,
	})
	if err != nil {
		logrus.WithError(err).Error("Erro no sync diário agendado")
	}
}

// TriggerManualSync executa o sync de forma síncrona. date vazio usa ontem.
// Devolve syncing.ErrSyncAlreadyRunning se outro sync estiver ativo.
func (s *DailySyncService) TriggerManualSync(ctx context.Context, date string, scope domain.Scope) (*domain.SyncRun, error) {
	opts := syncing.RunOptions{
		Scope:           scope,
		Trigger:         domain.TriggerManual,
		GA4:             s.config.GA4 && scope == domain.ScopeAll,
		ContinueOnError: s.config.ContinueOnError,
	}
	if date != "" {
		opts.Dates = []string{date}
	}

	logrus.WithFields(logrus.Fields{
		"date":  date,
		"scope": scope.Label(),
	}).Info("Iniciando sync manual")

	return s.execute(ctx, opts)
}

func (s *DailySyncService) execute(ctx context.Context, opts syncing.RunOptions) (*domain.SyncRun, error) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Sync já em andamento, ignorando solicitação")
		return nil, syncing.ErrSyncAlreadyRunning
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	return s.syncer.Run(ctx, opts)
}

// GetStatus retorna o status atual do agendador e da última execução
func (s *DailySyncService) GetStatus(ctx context.Context) map[string]any {
	status := map[string]any{
		"scheduler_running": s.scheduler.IsRunning(),
		"timezone":          s.config.Timezone,
		"hour":              s.config.Hour,
		"minute":            s.config.Minute,
		"next_run":          nil,
		"next_run_in":       "unknown",
		"last_sync":         nil,
	}

	if s.job != nil {
		if next := s.job.NextRun(); !next.IsZero() {
			status["next_run"] = next.In(s.location).Format(time.RFC3339)
			status["next_run_in"] = formatUntil(next.Sub(s.now()))
		}
	}

	last, err := s.syncer.LastRun(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Erro ao consultar última execução do sync")
		return status
	}
	if last != nil {
		status["last_sync"] = lastSyncStatus(last)
	}

	return status
}

func lastSyncStatus(run *domain.SyncRun) map[string]any {
	if run.Status == domain.SyncRunError {
		var snapshotDate string
		if len(run.SnapshotDates) > 0 {
			snapshotDate = run.SnapshotDates[0]
		}
		return map[string]any{
			"status":          run.Status,
			"snapshot_date":   snapshotDate,
			"completed_dates": run.CompletedDates,
			"error":           run.Error,
		}
	}

	return map[string]any{
		"status":         run.Status,
		"snapshot_dates": run.SnapshotDates,
		"projects":       run.Projects,
	}
}

// formatUntil descreve o tempo até a próxima execução: "5h 23m", "5 hours",
// "23 minutes" ou "< 1 minute"
func formatUntil(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60

	switch {
	case d < time.Minute:
		return "< 1 minute"
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case hours == 1:
		return "1 hour"
	case hours > 0:
		return fmt.Sprintf("%d hours", hours)
	case minutes == 1:
		return "1 minute"
	default:
		return fmt.Sprintf("%d minutes", minutes)
	}
}
