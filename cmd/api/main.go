package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ppc-flight-recorder/internal/api"
	"github.com/vfg2006/ppc-flight-recorder/internal/bootstrap"
	"github.com/vfg2006/ppc-flight-recorder/internal/config"
	"github.com/vfg2006/ppc-flight-recorder/internal/scheduler"
	"github.com/vfg2006/ppc-flight-recorder/internal/usecases/authenticating"
	"github.com/vfg2006/ppc-flight-recorder/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn, err := bootstrap.OpenDatabase(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao preparar o banco de dados")
	}
	defer conn.Close()

	syncService, stopTokenRefresh := bootstrap.SyncService(ctx, cfg, conn)
	defer stopTokenRefresh()

	dailySyncService := scheduler.NewDailySyncService(syncService, cfg)

	// Inicia o agendador em background
	if err := dailySyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador do sync diário")
	} else {
		logrus.Info("Agendador do sync diário iniciado com sucesso")
	}

	authenticator := authenticating.NewService(cfg.Auth)

	server, err := api.New(cfg, authenticator, dailySyncService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}
