package ga4

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	ga4domain "github.com/vfg2006/ppc-flight-recorder/infrastructure/integrator/ga4/domain"
	"github.com/vfg2006/ppc-flight-recorder/infrastructure/integrator/ga4/ga4client"
	"github.com/vfg2006/ppc-flight-recorder/internal/config"
	"github.com/vfg2006/ppc-flight-recorder/internal/domain"
	"github.com/vfg2006/ppc-flight-recorder/internal/usecases/diffing"
)

const (
	defaultConcurrency  = 1
	unknownDimensionVal = "Unknown"
)

type GA4Integrator struct {
	cfg    config.GA4
	Client ga4client.Client
}

func New(cfg config.GA4, client ga4client.Client) *GA4Integrator {
	return &GA4Integrator{
		cfg:    cfg,
		Client: client,
	}
}

// FetchAcquisition busca os relatórios de aquisição do projeto entre start e end.
// Falhas por tipo de relatório geram apenas aviso; só o cancelamento do
// contexto é devolvido como erro.
func (s *GA4Integrator) FetchAcquisition(ctx context.Context, project, start, end string) ([]domain.Row, error) {
	if s.cfg.MarketingAPIURL == "" {
		logrus.WithField("project", project).Warn("GA4_MARKETING_API_URL não configurada, GA4 ignorado")
		return nil, nil
	}

	start = diffing.NormalizeSegmentDate(start)
	end = diffing.NormalizeSegmentDate(end)

	limit := s.cfg.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}

	results := make([][]domain.Row, len(ga4domain.ReportTypes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, reportType := range ga4domain.ReportTypes {
		i, reportType := i, reportType
		g.Go(func() error {
			rows, err := s.Client.GetReport(gctx, ga4domain.ReportRequest{
				Type:      reportType.DailyAll(),
				StartDate: start,
				EndDate:   end,
				Project:   project,
			})
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				logrus.WithFields(logrus.Fields{
					"project":     project,
					"report_type": reportType,
					"error":       err.Error(),
				}).Warn("ga4: falha ao buscar relatório")
				return nil
			}
			results[i] = toRows(project, reportType, rows)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []domain.Row
	for _, rows := range results {
		out = append(out, rows...)
	}

	logrus.WithFields(logrus.Fields{
		"project": project,
		"rows":    len(out),
	}).Infof("ga4: aquisição de %s a %s", start, end)

	return out, nil
}

func toRows(project string, reportType ga4domain.ReportType, rows []ga4domain.AcquisitionRow) []domain.Row {
	out := make([]domain.Row, 0, len(rows))
	for _, r := range rows {
		dimension := r.Dimension()
		if dimension == "" || r.Date == "" {
			continue
		}
		value := unknownDimensionVal
		if r.DimensionValue != nil {
			value = *r.DimensionValue
		}
		out = append(out, domain.Row{
			"project":                      project,
			"acquisition_date":             acquisitionDate(r.Date),
			"report_type":                  string(reportType),
			"dimension_type":               dimension,
			"dimension_value":              value,
			"sessions":                     intOrZero(r.Sessions),
			"engaged_sessions":             intOrZero(r.EngagedSessions),
			"total_revenue":                floatOrZero(r.TotalRevenue),
			"event_count":                  intOrZero(r.EventCount),
			"key_events":                   floatOrZero(r.KeyEvents),
			"active_users":                 intOrZero(r.ActiveUsers),
			"average_session_duration_sec": nullableFloat(r.AverageSessionDuration),
			"engagement_rate":              nullableFloat(r.EngagementRate),
			"bounce_rate":                  nullableFloat(r.BounceRate),
		})
	}
	return out
}

// acquisitionDate aceita YYYYMMDD, YYYY-MM-DD e timestamps ISO
func acquisitionDate(s string) string {
	if i := strings.IndexByte(s, 'T'); i > 0 {
		s = s[:i]
	}
	return diffing.NormalizeSegmentDate(s)
}

func intOrZero(n json.Number) int64 {
	if n == "" {
		return 0
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return int64(f)
	}
	return 0
}

func floatOrZero(n json.Number) float64 {
	f, _ := n.Float64()
	return f
}

func nullableFloat(n json.Number) any {
	if n == "" {
		return nil
	}
	f, err := n.Float64()
	if err != nil {
		return nil
	}
	return f
}
