package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/ppc-flight-recorder/infrastructure/database"
	"github.com/vfg2006/ppc-flight-recorder/infrastructure/database/migrations"
	"github.com/vfg2006/ppc-flight-recorder/internal/bootstrap"
	"github.com/vfg2006/ppc-flight-recorder/internal/config"
	"github.com/vfg2006/ppc-flight-recorder/internal/domain"
	"github.com/vfg2006/ppc-flight-recorder/internal/usecases/syncing"
	"github.com/vfg2006/ppc-flight-recorder/pkg/log"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newSyncService lê a configuração, abre o banco e monta o serviço de sync.
// O cleanup devolvido fecha o banco e a renovação do token.
func newSyncService(ctx context.Context) (*config.Config, *syncing.Service, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	conn, err := bootstrap.OpenDatabase(ctx, cfg.Database)
	if err != nil {
		return nil, nil, nil, err
	}

	service, stop := bootstrap.SyncService(ctx, cfg, conn)
	cleanup := func() {
		stop()
		conn.Close()
	}
	return cfg, service, cleanup, nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("lendo configuração: %w", err)
	}
	log.Setup(cfg.App.LogLevel)
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func printRun(run *domain.SyncRun) {
	if run == nil {
		return
	}
	fmt.Printf("Execução %s: %s\n", run.ID, run.Status)
	fmt.Printf("Projetos:   %s\n", strings.Join(run.Projects, ", "))
	fmt.Printf("Datas:      %s\n", summarizeDates(run.SnapshotDates))
	fmt.Printf("Concluídas: %d de %d\n", len(run.CompletedDates), len(run.SnapshotDates))
	if run.Error != "" {
		fmt.Printf("Erro:       %s\n", run.Error)
	}
}

func summarizeDates(dates []string) string {
	switch len(dates) {
	case 0:
		return "-"
	case 1:
		return dates[0]
	}
	return fmt.Sprintf("%s a %s", dates[0], dates[len(dates)-1])
}

var rootCmd = &cobra.Command{
	Use:          "ppc-sync",
	Short:        "Snapshots e diffs diários do Google Ads e do GA4",
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Sincroniza um dia (ontem por padrão)",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, _ := cmd.Flags().GetString("date")
		projects, _ := cmd.Flags().GetStringSlice("project")
		ga4, _ := cmd.Flags().GetBool("ga4")
		continueOnError, _ := cmd.Flags().GetBool("continue-on-error")

		flags := domain.ScopeFlags{}
		flags.ControlStateOnly, _ = cmd.Flags().GetBool("control-state-only")
		flags.KeywordOnly, _ = cmd.Flags().GetBool("keyword-only")
		flags.AdGroupOnly, _ = cmd.Flags().GetBool("adgroup-only")
		flags.DeviceOnly, _ = cmd.Flags().GetBool("device-only")
		flags.ConversionsOnly, _ = cmd.Flags().GetBool("conversions-only")
		flags.AdCreativeOnly, _ = cmd.Flags().GetBool("adcreative-only")

		scope, err := flags.Scope()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		cfg, service, cleanup, err := newSyncService(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		opts := syncing.RunOptions{
			Projects:        projects,
			Scope:           scope,
			GA4:             ga4 && scope == domain.ScopeAll,
			ContinueOnError: continueOnError || cfg.Sync.ContinueOnError,
			Trigger:         domain.TriggerCLI,
		}
		if date != "" {
			opts.Dates = []string{date}
		}

		run, err := service.Run(ctx, opts)
		printRun(run)
		return err
	},
}

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Carrega resultados históricos de um intervalo de datas",
	RunE: func(cmd *cobra.Command, args []string) error {
		start, _ := cmd.Flags().GetString("start-date")
		end, _ := cmd.Flags().GetString("end-date")
		batchDays, _ := cmd.Flags().GetInt("batch-days")
		projects, _ := cmd.Flags().GetStringSlice("project")
		ga4, _ := cmd.Flags().GetBool("ga4")
		diffs, _ := cmd.Flags().GetBool("diffs")
		continueOnError, _ := cmd.Flags().GetBool("continue-on-error")

		ctx, cancel := signalContext()
		defer cancel()

		cfg, service, cleanup, err := newSyncService(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		if !cmd.Flags().Changed("batch-days") && cfg.Sync.BatchDays > 0 {
			batchDays = cfg.Sync.BatchDays
		}

		logrus.WithFields(logrus.Fields{
			"start":      start,
			"end":        end,
			"batch_days": batchDays,
			"diffs":      diffs,
		}).Info("Iniciando backfill")

		run, err := service.Backfill(ctx, syncing.BackfillOptions{
			Start:           start,
			End:             end,
			BatchDays:       batchDays,
			Projects:        projects,
			GA4:             ga4,
			Diffs:           diffs,
			Delay:           time.Duration(cfg.Sync.DelaySeconds) * time.Second,
			ContinueOnError: continueOnError || cfg.Sync.ContinueOnError,
		})
		printRun(run)
		return err
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica as migrações do banco",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetBool("status")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		conn, err := database.NewConnection(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("conectando ao banco: %w", err)
		}
		defer conn.Close()

		if status {
			if err := migrations.CheckStatus(conn.DB, conn.Driver()); err != nil {
				return err
			}
			fmt.Println("Schema atualizado.")
			return nil
		}

		if err := migrations.MigrateUp(conn.DB, conn.Driver()); err != nil {
			return err
		}
		fmt.Println("Migrações aplicadas.")
		return nil
	},
}

func init() {
	runCmd.Flags().String("date", "", "Dia a sincronizar (YYYY-MM-DD); ontem por padrão")
	runCmd.Flags().StringSlice("project", nil, "Projetos a sincronizar; padrão PPC_PROJECTS")
	runCmd.Flags().Bool("ga4", false, "Grava também os relatórios do GA4")
	runCmd.Flags().Bool("continue-on-error", false, "Continua nas demais contas quando uma falha")
	runCmd.Flags().Bool("control-state-only", false, "Apenas estado de controle e geo")
	runCmd.Flags().Bool("keyword-only", false, "Apenas palavras-chave e negativas")
	runCmd.Flags().Bool("adgroup-only", false, "Apenas grupos de anúncios")
	runCmd.Flags().Bool("device-only", false, "Apenas modificadores de dispositivo")
	runCmd.Flags().Bool("conversions-only", false, "Apenas ações de conversão")
	runCmd.Flags().Bool("adcreative-only", false, "Apenas criativos")
	runCmd.MarkFlagsMutuallyExclusive(
		"control-state-only", "keyword-only", "adgroup-only",
		"device-only", "conversions-only", "adcreative-only",
	)
	rootCmd.AddCommand(runCmd)

	backfillCmd.Flags().String("start-date", "", "Primeiro dia (YYYY-MM-DD)")
	backfillCmd.Flags().String("end-date", "", "Último dia (YYYY-MM-DD)")
	backfillCmd.Flags().Int("batch-days", 30, "Dias por janela de busca")
	backfillCmd.Flags().StringSlice("project", nil, "Projetos a carregar; padrão PPC_PROJECTS")
	backfillCmd.Flags().Bool("ga4", false, "Carrega também os relatórios do GA4")
	backfillCmd.Flags().Bool("diffs", false, "Calcula os diffs diários durante a carga")
	backfillCmd.Flags().Bool("continue-on-error", false, "Continua nas demais contas quando uma falha")
	backfillCmd.MarkFlagRequired("start-date")
	backfillCmd.MarkFlagRequired("end-date")
	rootCmd.AddCommand(backfillCmd)

	migrateCmd.Flags().Bool("status", false, "Apenas verifica se o schema está atualizado")
	rootCmd.AddCommand(migrateCmd)
}
