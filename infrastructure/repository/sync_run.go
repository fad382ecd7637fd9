package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/ppc-flight-recorder/infrastructure/database"
	"github.com/vfg2006/ppc-flight-recorder/internal/domain"
	"github.com/vfg2006/ppc-flight-recorder/pkg/utils"
)

const syncRunsTable = "sync_runs"

type SyncRunRepository interface {
	// Start grava a execução como running, preenchendo ID e StartedAt
	Start(ctx context.Context, run *domain.SyncRun) error
	Finish(ctx context.Context, run *domain.SyncRun) error
	// Last devolve a execução mais recente ou nil quando não há nenhuma
	Last(ctx context.Context) (*domain.SyncRun, error)
}

type syncRunRepository struct {
	conn database.Conn
	now  func() time.Time
}

func NewSyncRunRepository(conn database.Conn) SyncRunRepository {
	return &syncRunRepository{
		conn: conn,
		now:  time.Now,
	}
}

func (r *syncRunRepository) Start(ctx context.Context, run *domain.SyncRun) error {
	id, err := utils.GenerateID()
	if err != nil {
		return errors.Wrap(err, "erro ao gerar id da execução")
	}

	run.ID = id
	run.Status = domain.SyncRunRunning
	run.StartedAt = r.now().UTC()

	insertSQL, args, err := r.conn.Builder().
		Insert(syncRunsTable).
		Columns("id", "trigger_source", "scope", "snapshot_dates", "projects", "status", "started_at").
		Values(run.ID, string(run.Trigger), run.Scope.Label(), joinList(run.SnapshotDates),
			joinList(run.Projects), string(run.Status), run.StartedAt).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.ExecContext(ctx, insertSQL, args...); err != nil {
		return errors.Wrap(err, "erro ao registrar início do sync")
	}

	return nil
}

func (r *syncRunRepository) Finish(ctx context.Context, run *domain.SyncRun) error {
	finishedAt := r.now().UTC()
	run.FinishedAt = &finishedAt

	updateSQL, args, err := r.conn.Builder().
		Update(syncRunsTable).
		Set("status", string(run.Status)).
		Set("completed_dates", joinList(run.CompletedDates)).
		Set("error", nullable(run.Error)).
		Set("finished_at", finishedAt).
		Where("id = ?", run.ID).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.ExecContext(ctx, updateSQL, args...); err != nil {
		return errors.Wrapf(err, "erro ao registrar fim do sync %s", run.ID)
	}

	return nil
}

func (r *syncRunRepository) Last(ctx context.Context) (*domain.SyncRun, error) {
	selectSQL, args, err := r.conn.Builder().
		Select("id", "trigger_source", "scope", "snapshot_dates", "projects", "status",
			"completed_dates", "error", "started_at", "finished_at").
		From(syncRunsTable).
		OrderBy("started_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, err
	}

	var (
		run                          domain.SyncRun
		trigger, scope, status       string
		snapshotDates, projects      string
		completedDates, errorMessage sql.NullString
		finishedAt                   sql.NullTime
	)

	err = r.conn.QueryRowContext(ctx, selectSQL, args...).Scan(
		&run.ID,
		&trigger,
		&scope,
		&snapshotDates,
		&projects,
		&status,
		&completedDates,
		&errorMessage,
		&run.StartedAt,
		&finishedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "erro ao ler último sync")
	}

	run.Trigger = domain.SyncTrigger(trigger)
	if scope != domain.ScopeAll.Label() {
		run.Scope = domain.Scope(scope)
	}
	run.Status = domain.SyncRunStatus(status)
	run.SnapshotDates = splitList(snapshotDates)
	run.Projects = splitList(projects)
	run.CompletedDates = splitList(completedDates.String)
	run.Error = errorMessage.String
	if finishedAt.Valid {
		run.FinishedAt = &finishedAt.Time
	}

	return &run, nil
}

func joinList(items []string) string {
	return strings.Join(items, ",")
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
