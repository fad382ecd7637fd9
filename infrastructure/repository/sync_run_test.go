package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ppc-flight-recorder/infrastructure/database/dbtest"
	"github.com/vfg2006/ppc-flight-recorder/internal/domain"
)

func TestSyncRunRepository(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	repo := &syncRunRepository{
		conn: dbtest.NewConnection(t),
		now: func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		},
	}

	last, err := repo.Last(ctx)
	require.NoError(t, err)
	assert.Nil(t, last)

	first := &domain.SyncRun{
		Trigger:       domain.TriggerScheduled,
		SnapshotDates: []string{"2024-04-30"},
		Projects:      []string{"the-pinch"},
	}
	require.NoError(t, repo.Start(ctx, first))
	assert.Len(t, first.ID, 12)
	assert.Equal(t, domain.SyncRunRunning, first.Status)

	first.Status = domain.SyncRunOK
	first.CompletedDates = []string{"2024-04-30"}
	require.NoError(t, repo.Finish(ctx, first))

	second := &domain.SyncRun{
		Trigger:       domain.TriggerManual,
		Scope:         domain.ScopeKeyword,
		SnapshotDates: []string{"2024-05-01"},
		Projects:      []string{"the-pinch", "the-nickel"},
	}
	require.NoError(t, repo.Start(ctx, second))
	second.Status = domain.SyncRunError
	second.Error = "falha no provider"
	require.NoError(t, repo.Finish(ctx, second))

	last, err = repo.Last(ctx)
	require.NoError(t, err)
	require.NotNil(t, last)

	assert.Equal(t, second.ID, last.ID)
	assert.Equal(t, domain.TriggerManual, last.Trigger)
	assert.Equal(t, domain.ScopeKeyword, last.Scope)
	assert.Equal(t, domain.SyncRunError, last.Status)
	assert.Equal(t, []string{"the-pinch", "the-nickel"}, last.Projects)
	assert.Equal(t, []string{"2024-05-01"}, last.SnapshotDates)
	assert.Nil(t, last.CompletedDates)
	assert.Equal(t, "falha no provider", last.Error)
	require.NotNil(t, last.FinishedAt)
	assert.True(t, last.FinishedAt.After(last.StartedAt))
}

func TestDimensionRepository(t *testing.T) {
	ctx := context.Background()
	conn := dbtest.NewConnection(t)
	repo := NewDimensionRepository(conn)

	require.NoError(t, repo.UpsertCampaigns(ctx, "123", "2024-01-02", []domain.CampaignDim{
		{CampaignID: "1", CampaignName: "Brand", Status: "ENABLED"},
		{CampaignID: "1", CampaignName: "Duplicada"},
	}))

	// nome vazio e dia anterior não apagam nome nem regridem last_seen_date
	require.NoError(t, repo.UpsertCampaigns(ctx, "123", "2024-01-01", []domain.CampaignDim{
		{CampaignID: "1", Status: "PAUSED"},
	}))

	var name, status, lastSeen string
	err := conn.QueryRowContext(ctx,
		"SELECT campaign_name, status, last_seen_date FROM campaign_dims WHERE customer_id = ? AND campaign_id = ?",
		"123", "1").Scan(&name, &status, &lastSeen)
	require.NoError(t, err)
	assert.Equal(t, "Brand", name)
	assert.Equal(t, "PAUSED", status)
	assert.Equal(t, "2024-01-02", lastSeen)

	require.NoError(t, repo.UpsertAdGroups(ctx, "123", "2024-01-02", []domain.AdGroupDim{
		{AdGroupID: "10", CampaignID: "1", AdGroupName: "Shoes"},
	}))
	require.NoError(t, repo.UpsertKeywords(ctx, "123", "2024-01-02", []domain.KeywordDim{
		{AdGroupID: "10", KeywordCriterionID: "100", CampaignID: "1", KeywordText: "shoes", MatchType: "EXACT"},
		{AdGroupID: "11", KeywordCriterionID: "100", CampaignID: "1", KeywordText: "shoes", MatchType: "BROAD"},
	}))
	require.NoError(t, repo.UpsertKeywords(ctx, "123", "2024-01-03", nil))

	var count int
	require.NoError(t, conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM keyword_dims").Scan(&count))
	assert.Equal(t, 2, count)
	require.NoError(t, conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM ad_group_dims").Scan(&count))
	assert.Equal(t, 1, count)
}
