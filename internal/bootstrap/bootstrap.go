// Package bootstrap monta as dependências compartilhadas pelos binários
// cmd/api e cmd/sync.
package bootstrap

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ppc-flight-recorder/infrastructure/database"
	"github.com/vfg2006/ppc-flight-recorder/infrastructure/database/migrations"
	"github.com/vfg2006/ppc-flight-recorder/infrastructure/integrator/ga4"
	"github.com/vfg2006/ppc-flight-recorder/infrastructure/integrator/ga4/ga4client"
	"github.com/vfg2006/ppc-flight-recorder/infrastructure/integrator/googleads"
	"github.com/vfg2006/ppc-flight-recorder/infrastructure/integrator/googleads/gadsclient"
	"github.com/vfg2006/ppc-flight-recorder/infrastructure/repository"
	"github.com/vfg2006/ppc-flight-recorder/internal/config"
	"github.com/vfg2006/ppc-flight-recorder/internal/usecases/syncing"
)

// OpenDatabase conecta ao banco configurado e aplica as migrações pendentes
func OpenDatabase(ctx context.Context, cfg config.Database) (*database.Connection, error) {
	conn, err := database.NewConnection(ctx, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao conectar ao banco (%s)", cfg.Driver)
	}

	if err := migrations.MigrateUp(conn.DB, conn.Driver()); err != nil {
		_ = conn.Close()
		return nil, err
	}

	logrus.WithField("driver", conn.Driver()).Info("Conexão com o banco estabelecida com sucesso")
	return conn, nil
}

// Repositories cria os repositórios do sync sobre a conexão
func Repositories(conn database.Conn) syncing.Repositories {
	return syncing.Repositories{
		Snapshots:  repository.NewSnapshotRepository(conn),
		Diffs:      repository.NewDiffRepository(conn),
		Changes:    repository.NewChangeRepository(conn),
		Dimensions: repository.NewDimensionRepository(conn),
		Runs:       repository.NewSyncRunRepository(conn),
	}
}

// SyncService monta o serviço de sync com os clientes do Google Ads e do GA4.
// O stop devolvido encerra a renovação do token OAuth.
func SyncService(ctx context.Context, cfg *config.Config, conn database.Conn) (*syncing.Service, func()) {
	tokenManager := gadsclient.NewTokenManager(cfg.GoogleAds, &http.Client{Timeout: cfg.GoogleAds.Timeout})
	go tokenManager.StartAutoRefresh(ctx)

	provider := googleads.New(gadsclient.NewClient(cfg.GoogleAds, tokenManager))

	// sem URL do Apps Script o GA4 fica desligado
	var analytics syncing.AnalyticsProvider
	if cfg.GA4.MarketingAPIURL != "" {
		analytics = ga4.New(cfg.GA4, ga4client.NewClient(cfg.GA4))
	} else {
		logrus.Info("GA4_MARKETING_API_URL não configurada, GA4 desabilitado")
	}

	return syncing.NewService(cfg, provider, analytics, Repositories(conn)), tokenManager.StopAutoRefresh
}
