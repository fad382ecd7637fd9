package syncing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ppc-flight-recorder/infrastructure/database/dbtest"
	"github.com/vfg2006/ppc-flight-recorder/infrastructure/repository"
	"github.com/vfg2006/ppc-flight-recorder/internal/config"
	"github.com/vfg2006/ppc-flight-recorder/internal/domain"
	"github.com/vfg2006/ppc-flight-recorder/internal/usecases/syncing/mocks"
	"go.uber.org/mock/gomock"
)

const (
	pinchID  = "1234567890"
	nickelID = "2223334444"
)

var testEnv = map[string]string{
	"GOOGLE_ADS_CUSTOMER_ID_THEPINCH":  "123-456-7890",
	"GOOGLE_ADS_CUSTOMER_ID_THENICKEL": "222-333-4444",
}

// fixtures indexa linhas por domínio, conta e dia
type fixtures map[string][]domain.Row

func fixtureKey(name domain.Name, customerID, day string) string {
	return string(name) + "|" + customerID + "|" + day
}

func testConfig(t *testing.T, projects ...string) *config.Config {
	t.Helper()

	registry, err := config.LoadRegistry("", func(key string) string { return testEnv[key] })
	require.NoError(t, err)

	if len(projects) == 0 {
		projects = []string{"the-pinch"}
	}

	return &config.Config{
		GoogleAds: config.GoogleAds{
			DeveloperToken: "dev-token",
			ClientID:       "client-id",
			ClientSecret:   "client-secret",
			RefreshToken:   "refresh-token",
		},
		Sync: config.Sync{
			Projects:         projects,
			ScheduleTimezone: "America/New_York",
		},
		Projects: registry,
	}
}

func testRepositories(t *testing.T) Repositories {
	t.Helper()

	conn := dbtest.NewConnection(t)
	return Repositories{
		Snapshots:  repository.NewSnapshotRepository(conn),
		Diffs:      repository.NewDiffRepository(conn),
		Changes:    repository.NewChangeRepository(conn),
		Dimensions: repository.NewDimensionRepository(conn),
		Runs:       repository.NewSyncRunRepository(conn),
	}
}

// newProvider responde a partir das fixtures. failing faz todas as buscas da
// conta falharem. calls conta as buscas por customer ID.
func newProvider(ctrl *gomock.Controller, data fixtures, failing map[string]error, calls map[string]int) *mocks.MockProvider {
	provider := mocks.NewMockProvider(ctrl)

	provider.EXPECT().
		Fetch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, name domain.Name, account domain.Account, day string) ([]domain.Row, error) {
			if calls != nil {
				calls[account.CustomerID]++
			}
			if err, ok := failing[account.CustomerID]; ok {
				return nil, err
			}
			return data[fixtureKey(name, account.CustomerID, day)], nil
		}).
		AnyTimes()

	provider.EXPECT().
		FetchRange(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, name domain.Name, account domain.Account, start, end string) ([]domain.Row, error) {
			if calls != nil {
				calls[account.CustomerID]++
			}
			if err, ok := failing[account.CustomerID]; ok {
				return nil, err
			}
			return data[fixtureKey(name, account.CustomerID, start+".."+end)], nil
		}).
		AnyTimes()

	return provider
}

func keywordRow(id, text, matchType string) domain.Row {
	return domain.Row{
		"campaign_id":          "1",
		"campaign_name":        "Brand",
		"ad_group_id":          "10",
		"ad_group_name":        "Core",
		"keyword_criterion_id": id,
		"keyword_text":         text,
		"match_type":           matchType,
		"status":               "ENABLED",
	}
}

func keywordFixtures() fixtures {
	return fixtures{
		fixtureKey(domain.Keyword, pinchID, "2024-03-01"): {
			keywordRow("100", "pizza", "EXACT"),
			keywordRow("200", "pizza delivery", "PHRASE"),
		},
		fixtureKey(domain.Keyword, pinchID, "2024-03-02"): {
			keywordRow("100", "pizza", "BROAD"),
			keywordRow("200", "pizza delivery", "PHRASE"),
			keywordRow("300", "pizza near me", "EXACT"),
		},
	}
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		setup    func(t *testing.T, ctrl *gomock.Controller) (*Service, RunOptions)
		validate func(t *testing.T, s *Service, run *domain.SyncRun, err error)
	}{
		{
			name: "primeiro dia grava snapshot sem diff",
			setup: func(t *testing.T, ctrl *gomock.Controller) (*Service, RunOptions) {
				provider := newProvider(ctrl, keywordFixtures(), nil, nil)
				s := NewService(testConfig(t), provider, nil, testRepositories(t))
				return s, RunOptions{Dates: []string{"2024-03-01"}, Scope: domain.ScopeKeyword}
			},
			validate: func(t *testing.T, s *Service, run *domain.SyncRun, err error) {
				require.NoError(t, err)

				rows, err := s.repos.Snapshots.Get(ctx, domain.Keyword, pinchID, "2024-03-01")
				require.NoError(t, err)
				assert.Len(t, rows, 2)

				changes, err := s.repos.Changes.List(ctx, domain.Keyword, pinchID, "2024-03-01")
				require.NoError(t, err)
				assert.Empty(t, changes)

				assert.Equal(t, domain.SyncRunOK, run.Status)
				assert.Equal(t, []string{"2024-03-01"}, run.CompletedDates)
			},
		},
		{
			name: "segundo dia classifica mudanças contra o anterior",
			setup: func(t *testing.T, ctrl *gomock.Controller) (*Service, RunOptions) {
				provider := newProvider(ctrl, keywordFixtures(), nil, nil)
				s := NewService(testConfig(t), provider, nil, testRepositories(t))
				return s, RunOptions{Dates: []string{"2024-03-01", "2024-03-02"}, Scope: domain.ScopeKeyword}
			},
			validate: func(t *testing.T, s *Service, run *domain.SyncRun, err error) {
				require.NoError(t, err)

				changes, err := s.repos.Changes.List(ctx, domain.Keyword, pinchID, "2024-03-02")
				require.NoError(t, err)

				types := make([]domain.ChangeType, 0, len(changes))
				for _, c := range changes {
					types = append(types, c.ChangeType)
				}
				assert.ElementsMatch(t, []domain.ChangeType{domain.ChangeAdded, domain.ChangeMatchTypeChanged}, types)

				negatives, err := s.repos.Snapshots.Get(ctx, domain.NegativeKeyword, pinchID, "2024-03-02")
				require.NoError(t, err)
				assert.Empty(t, negatives)
			},
		},
		{
			name: "resultado de campanha gera diff por campo e dimensão",
			setup: func(t *testing.T, ctrl *gomock.Controller) (*Service, RunOptions) {
				data := fixtures{
					fixtureKey(domain.CampaignOutcome, pinchID, "2024-03-01"): {
						{"campaign_id": "1", "campaign_name": "Brand", "status": "ENABLED", "outcome_date": "2024-03-01", "clicks": 10},
					},
					fixtureKey(domain.CampaignOutcome, pinchID, "2024-03-02"): {
						{"campaign_id": "1", "campaign_name": "Brand", "status": "ENABLED", "outcome_date": "2024-03-02", "clicks": 12},
					},
				}
				provider := newProvider(ctrl, data, nil, nil)
				s := NewService(testConfig(t), provider, nil, testRepositories(t))
				return s, RunOptions{Dates: []string{"2024-03-01", "2024-03-02"}}
			},
			validate: func(t *testing.T, s *Service, run *domain.SyncRun, err error) {
				require.NoError(t, err)

				diffs, err := s.repos.Diffs.List(ctx, domain.CampaignOutcome, pinchID, "2024-03-02")
				require.NoError(t, err)
				require.Len(t, diffs, 1)
				assert.Equal(t, "clicks", diffs[0].ChangedFieldName)
				require.NotNil(t, diffs[0].OldValue)
				require.NotNil(t, diffs[0].NewValue)
				assert.Equal(t, "10", *diffs[0].OldValue)
				assert.Equal(t, "12", *diffs[0].NewValue)
			},
		},
		{
			name: "fail-fast interrompe na primeira conta com erro",
			setup: func(t *testing.T, ctrl *gomock.Controller) (*Service, RunOptions) {
				calls := map[string]int{}
				t.Cleanup(func() {
					assert.Zero(t, calls[nickelID])
				})
				failing := map[string]error{pinchID: errors.New("quota exceeded")}
				provider := newProvider(ctrl, keywordFixtures(), failing, calls)
				s := NewService(testConfig(t, "the-pinch", "the-nickel"), provider, nil, testRepositories(t))
				return s, RunOptions{Dates: []string{"2024-03-01"}, Scope: domain.ScopeKeyword}
			},
			validate: func(t *testing.T, s *Service, run *domain.SyncRun, err error) {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrProvider)

				var providerErr *ProviderError
				require.ErrorAs(t, err, &providerErr)
				assert.Equal(t, domain.Keyword, providerErr.Domain)
				assert.Equal(t, pinchID, providerErr.Account)

				assert.Equal(t, domain.SyncRunError, run.Status)
				assert.Empty(t, run.CompletedDates)
			},
		},
		{
			name: "continue on error agrega falhas e segue para as outras contas",
			setup: func(t *testing.T, ctrl *gomock.Controller) (*Service, RunOptions) {
				calls := map[string]int{}
				t.Cleanup(func() {
					assert.Equal(t, 2, calls[nickelID])
				})
				failing := map[string]error{pinchID: errors.New("quota exceeded")}
				provider := newProvider(ctrl, keywordFixtures(), failing, calls)
				s := NewService(testConfig(t, "the-pinch", "the-nickel"), provider, nil, testRepositories(t))
				return s, RunOptions{Dates: []string{"2024-03-01"}, Scope: domain.ScopeKeyword, ContinueOnError: true}
			},
			validate: func(t *testing.T, s *Service, run *domain.SyncRun, err error) {
				var runErr *RunError
				require.ErrorAs(t, err, &runErr)
				assert.Len(t, runErr.Errs, 1)
				assert.ErrorIs(t, err, ErrProvider)
				assert.Equal(t, domain.SyncRunError, run.Status)
			},
		},
		{
			name: "credenciais ausentes falham antes de qualquer busca",
			setup: func(t *testing.T, ctrl *gomock.Controller) (*Service, RunOptions) {
				cfg := testConfig(t)
				cfg.GoogleAds.RefreshToken = ""
				s := NewService(cfg, mocks.NewMockProvider(ctrl), nil, testRepositories(t))
				return s, RunOptions{Dates: []string{"2024-03-01"}}
			},
			validate: func(t *testing.T, s *Service, run *domain.SyncRun, err error) {
				assert.Nil(t, run)
				assert.ErrorIs(t, err, ErrConfiguration)
				assert.Contains(t, err.Error(), "GOOGLE_ADS_REFRESH_TOKEN")

				last, err := s.LastRun(ctx)
				require.NoError(t, err)
				assert.Nil(t, last)
			},
		},
		{
			name: "projeto sem customer ID é erro de configuração",
			setup: func(t *testing.T, ctrl *gomock.Controller) (*Service, RunOptions) {
				s := NewService(testConfig(t, "the-quoin"), mocks.NewMockProvider(ctrl), nil, testRepositories(t))
				return s, RunOptions{Dates: []string{"2024-03-01"}}
			},
			validate: func(t *testing.T, s *Service, run *domain.SyncRun, err error) {
				var cfgErr *ConfigurationError
				require.ErrorAs(t, err, &cfgErr)
				assert.Equal(t, "the-quoin", cfgErr.Project)
			},
		},
		{
			name: "data inválida é rejeitada",
			setup: func(t *testing.T, ctrl *gomock.Controller) (*Service, RunOptions) {
				s := NewService(testConfig(t), mocks.NewMockProvider(ctrl), nil, testRepositories(t))
				return s, RunOptions{Dates: []string{"01/03/2024"}}
			},
			validate: func(t *testing.T, s *Service, run *domain.SyncRun, err error) {
				assert.ErrorIs(t, err, ErrInvalidRange)
			},
		},
		{
			name: "GA4 roda apenas sem escopo e falha só gera aviso",
			setup: func(t *testing.T, ctrl *gomock.Controller) (*Service, RunOptions) {
				analytics := mocks.NewMockAnalyticsProvider(ctrl)
				analytics.EXPECT().
					FetchAcquisition(gomock.Any(), "the-pinch", "2024-03-01", "2024-03-01").
					Return(nil, errors.New("apps script indisponível")).
					Times(1)

				provider := newProvider(ctrl, fixtures{}, nil, nil)
				s := NewService(testConfig(t), provider, analytics, testRepositories(t))
				return s, RunOptions{Dates: []string{"2024-03-01"}, GA4: true}
			},
			validate: func(t *testing.T, s *Service, run *domain.SyncRun, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.SyncRunOK, run.Status)
			},
		},
		{
			name: "GA4 grava aquisição por projeto",
			setup: func(t *testing.T, ctrl *gomock.Controller) (*Service, RunOptions) {
				analytics := mocks.NewMockAnalyticsProvider(ctrl)
				analytics.EXPECT().
					FetchAcquisition(gomock.Any(), "the-pinch", "2024-03-01", "2024-03-01").
					Return([]domain.Row{
						{"project": "the-pinch", "acquisition_date": "2024-03-01", "report_type": "traffic_acquisition_daily_all", "dimension_type": "sessionSource", "dimension_value": "google", "sessions": 40},
					}, nil)

				provider := newProvider(ctrl, fixtures{}, nil, nil)
				s := NewService(testConfig(t), provider, analytics, testRepositories(t))
				return s, RunOptions{Dates: []string{"2024-03-01"}, GA4: true}
			},
			validate: func(t *testing.T, s *Service, run *domain.SyncRun, err error) {
				require.NoError(t, err)

				rows, err := s.repos.Snapshots.Get(ctx, domain.GA4Acquisition, "the-pinch", "2024-03-01")
				require.NoError(t, err)
				require.Len(t, rows, 1)
				assert.Equal(t, "google", rows[0].String("dimension_value"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			s, opts := tt.setup(t, ctrl)
			run, err := s.Run(ctx, opts)
			tt.validate(t, s, run, err)
		})
	}
}

func TestRunIdempotente(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	provider := newProvider(ctrl, keywordFixtures(), nil, nil)
	s := NewService(testConfig(t), provider, nil, testRepositories(t))
	opts := RunOptions{Dates: []string{"2024-03-01", "2024-03-02"}, Scope: domain.ScopeKeyword}

	_, err := s.Run(ctx, opts)
	require.NoError(t, err)

	firstRows, err := s.repos.Snapshots.Get(ctx, domain.Keyword, pinchID, "2024-03-02")
	require.NoError(t, err)
	firstChanges, err := s.repos.Changes.List(ctx, domain.Keyword, pinchID, "2024-03-02")
	require.NoError(t, err)

	_, err = s.Run(ctx, opts)
	require.NoError(t, err)

	secondRows, err := s.repos.Snapshots.Get(ctx, domain.Keyword, pinchID, "2024-03-02")
	require.NoError(t, err)
	secondChanges, err := s.repos.Changes.List(ctx, domain.Keyword, pinchID, "2024-03-02")
	require.NoError(t, err)

	assert.Equal(t, firstRows, secondRows)
	assert.Equal(t, firstChanges, secondChanges)
}

func TestRunOntemNoFusoDoAgendamento(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	provider := mocks.NewMockProvider(ctrl)
	provider.EXPECT().
		Fetch(gomock.Any(), domain.AdGroup, gomock.Any(), "2024-03-01").
		Return(nil, nil)

	s := NewService(testConfig(t), provider, nil, testRepositories(t))
	// 02:00 UTC de 2024-03-03 ainda é 2024-03-02 em Nova York
	s.now = func() time.Time { return time.Date(2024, 3, 3, 2, 0, 0, 0, time.UTC) }

	run, err := s.Run(ctx, RunOptions{Scope: domain.ScopeAdGroup, Trigger: domain.TriggerScheduled})
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-01"}, run.SnapshotDates)

	last, err := s.LastRun(ctx)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, run.ID, last.ID)
	assert.Equal(t, domain.SyncRunOK, last.Status)
	assert.Equal(t, domain.TriggerScheduled, last.Trigger)
}

func geoRow(name string) domain.Row {
	return domain.Row{
		"campaign_id":         "1",
		"criterion_type":      "LOCATION",
		"ordinal":             "0",
		"criterion_id":        "1023191",
		"geo_target_constant": "geoTargetConstants/1023191",
		"geo_name":            name,
		"negative":            false,
	}
}

func TestRunLimpaGeoSemLinhas(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	proximity := domain.Row{
		"campaign_id":    "1",
		"criterion_type": "PROXIMITY",
		"ordinal":        "0",
		"radius":         10.0,
		"radius_units":   "MILES",
	}
	data := fixtures{
		fixtureKey(domain.GeoTargeting, pinchID, "2024-03-01"): {geoRow("New York"), proximity},
	}

	s := NewService(testConfig(t), newProvider(ctrl, data, nil, nil), nil, testRepositories(t))
	opts := RunOptions{Dates: []string{"2024-03-01"}, Scope: domain.ScopeControlState}

	_, err := s.Run(ctx, opts)
	require.NoError(t, err)

	rows, err := s.repos.Snapshots.Get(ctx, domain.GeoTargeting, pinchID, "2024-03-01")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	delete(data, fixtureKey(domain.GeoTargeting, pinchID, "2024-03-01"))

	run, err := s.Run(ctx, opts)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncRunOK, run.Status)

	rows, err = s.repos.Snapshots.Get(ctx, domain.GeoTargeting, pinchID, "2024-03-01")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRunLimpaDiffSemDiaAnterior(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	data := fixtures{
		fixtureKey(domain.GeoTargeting, pinchID, "2024-03-01"): {geoRow("New York")},
		fixtureKey(domain.GeoTargeting, pinchID, "2024-03-02"): {geoRow("Los Angeles")},
	}

	s := NewService(testConfig(t), newProvider(ctrl, data, nil, nil), nil, testRepositories(t))

	_, err := s.Run(ctx, RunOptions{Dates: []string{"2024-03-01", "2024-03-02"}, Scope: domain.ScopeControlState})
	require.NoError(t, err)

	diffs, err := s.repos.Diffs.List(ctx, domain.GeoTargeting, pinchID, "2024-03-02")
	require.NoError(t, err)
	require.Len(t, diffs, 1)
	assert.Equal(t, "geo_name", diffs[0].ChangedFieldName)

	// o dia anterior é limpo e o dia seguinte reprocessado
	delete(data, fixtureKey(domain.GeoTargeting, pinchID, "2024-03-01"))

	_, err = s.Run(ctx, RunOptions{Dates: []string{"2024-03-01"}, Scope: domain.ScopeControlState})
	require.NoError(t, err)
	_, err = s.Run(ctx, RunOptions{Dates: []string{"2024-03-02"}, Scope: domain.ScopeControlState})
	require.NoError(t, err)

	prior, err := s.repos.Snapshots.Get(ctx, domain.GeoTargeting, pinchID, "2024-03-01")
	require.NoError(t, err)
	assert.Empty(t, prior)

	diffs, err = s.repos.Diffs.List(ctx, domain.GeoTargeting, pinchID, "2024-03-02")
	require.NoError(t, err)
	assert.Empty(t, diffs)
}

func TestRunDescartaDuplicadas(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	hook := logtest.NewGlobal()
	t.Cleanup(hook.Reset)

	// mesma chave de armazenamento vinda de caminhos de busca diferentes
	data := fixtures{
		fixtureKey(domain.Keyword, pinchID, "2024-03-01"): {
			keywordRow("100", "pizza", "EXACT"),
			keywordRow("100", "pizza", "PHRASE"),
		},
	}

	s := NewService(testConfig(t), newProvider(ctrl, data, nil, nil), nil, testRepositories(t))

	_, err := s.Run(ctx, RunOptions{Dates: []string{"2024-03-01"}, Scope: domain.ScopeKeyword})
	require.NoError(t, err)

	rows, err := s.repos.Snapshots.Get(ctx, domain.Keyword, pinchID, "2024-03-01")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "EXACT", rows[0].String("match_type"))

	var collapsed []*logrus.Entry
	for _, entry := range hook.AllEntries() {
		if entry.Message == "Linhas duplicadas descartadas" {
			collapsed = append(collapsed, entry)
		}
	}
	require.Len(t, collapsed, 1)
	assert.Equal(t, logrus.WarnLevel, collapsed[0].Level)
	assert.Equal(t, 1, collapsed[0].Data["dropped"])
	assert.Equal(t, domain.Keyword, collapsed[0].Data["domain"])
}
