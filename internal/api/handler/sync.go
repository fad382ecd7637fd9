package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ppc-flight-recorder/internal/domain"
	"github.com/vfg2006/ppc-flight-recorder/internal/usecases/syncing"
	"github.com/vfg2006/ppc-flight-recorder/pkg/apiErrors"
	"github.com/vfg2006/ppc-flight-recorder/pkg/utils"
)

// SyncScheduler é o agendador do sync diário visto pela API
type SyncScheduler interface {
	TriggerManualSync(ctx context.Context, date string, scope domain.Scope) (*domain.SyncRun, error)
	GetStatus(ctx context.Context) map[string]any
}

// RunSyncRequest é o corpo opcional de POST /v1/sync/run
type RunSyncRequest struct {
	Date string `json:"date"`
	domain.ScopeFlags
}

// RunSyncResponse ecoa a data e as flags recebidas
type RunSyncResponse struct {
	Status         string   `json:"status"`
	RunID          string   `json:"run_id"`
	SnapshotDates  []string `json:"snapshot_dates"`
	CompletedDates []string `json:"completed_dates"`
	Projects       []string `json:"projects"`
	domain.ScopeFlags
}

// GetSyncSchedule retorna o status do agendador e da última execução
func GetSyncSchedule(scheduler SyncScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := utils.JSON.NewEncoder(w).Encode(scheduler.GetStatus(r.Context())); err != nil {
			logrus.WithError(err).Error("Erro ao enviar status do agendador")
		}
	}
}

// RunSync executa um sync manual de forma síncrona
func RunSync(scheduler SyncScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RunSyncRequest
		if err := utils.JSON.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if req.Date != "" {
			if _, err := domain.ParseDate(req.Date); err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Data inválida; use YYYY-MM-DD", nil)
				return
			}
		}

		scope, err := req.Scope()
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrConflictingScopes, err.Error(), nil)
			return
		}

		run, err := scheduler.TriggerManualSync(r.Context(), req.Date, scope)
		if err != nil {
			handleSyncError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		utils.JSON.NewEncoder(w).Encode(RunSyncResponse{
			Status:         string(run.Status),
			RunID:          run.ID,
			SnapshotDates:  run.SnapshotDates,
			CompletedDates: run.CompletedDates,
			Projects:       run.Projects,
			ScopeFlags:     req.ScopeFlags,
		})
	}
}

func handleSyncError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, syncing.ErrSyncAlreadyRunning):
		apiErrors.WriteError(w, apiErrors.ErrSyncAlreadyRunning, "Já existe um sync em execução", nil)
	case errors.Is(err, syncing.ErrInvalidRange):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
	case errors.Is(err, syncing.ErrConflictingScopes):
		apiErrors.WriteError(w, apiErrors.ErrConflictingScopes, err.Error(), nil)
	default:
		logrus.WithError(err).Error("Sync manual falhou")
		apiErrors.WriteError(w, apiErrors.ErrSyncFailed, "Sync manual falhou", err.Error())
	}
}
