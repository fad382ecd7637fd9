package domain

import "time"

type SyncRunStatus string

const (
	SyncRunRunning SyncRunStatus = "running"
	SyncRunOK      SyncRunStatus = "ok"
	SyncRunError   SyncRunStatus = "error"
)

type SyncTrigger string

const (
	TriggerScheduled SyncTrigger = "scheduled"
	TriggerManual    SyncTrigger = "manual"
	TriggerCLI       SyncTrigger = "cli"
	TriggerBackfill  SyncTrigger = "backfill"
)

// SyncRun registra uma execução de sync; sobrevive a reinícios do processo
type SyncRun struct {
	ID             string        `json:"id"`
	Trigger        SyncTrigger   `json:"trigger"`
	Scope          Scope         `json:"scope"`
	SnapshotDates  []string      `json:"snapshot_dates"`
	Projects       []string      `json:"projects"`
	Status         SyncRunStatus `json:"status"`
	CompletedDates []string      `json:"completed_dates,omitempty"`
	Error          string        `json:"error,omitempty"`
	StartedAt      time.Time     `json:"started_at"`
	FinishedAt     *time.Time    `json:"finished_at,omitempty"`
}
