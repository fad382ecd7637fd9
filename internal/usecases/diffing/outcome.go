package diffing

import (
	"strings"

	"github.com/vfg2006/ppc-flight-recorder/internal/domain"
	"github.com/vfg2006/ppc-flight-recorder/pkg/utils"
)

const microsPerUnit = 1_000_000.0

// OutcomeMetrics são as métricas brutas de um dia de campanha, grupo ou palavra-chave
type OutcomeMetrics struct {
	Date             string
	Impressions      int64
	Clicks           int64
	CostMicros       int64
	Conversions      float64
	ConversionsValue float64
	// frações 0..1; nil quando a API não devolve
	SearchImpressionShare         *float64
	SearchRankLostImpressionShare *float64
}

// NormalizeOutcome calcula as métricas derivadas e devolve a linha de snapshot
// com os campos de resultado. Razões com denominador zero valem 0.
func NormalizeOutcome(m OutcomeMetrics) domain.Row {
	cost := float64(m.CostMicros) / microsPerUnit

	row := domain.Row{
		"outcome_date":      NormalizeSegmentDate(m.Date),
		"impressions":       m.Impressions,
		"clicks":            m.Clicks,
		"cost_micros":       m.CostMicros,
		"cost_amount":       cost,
		"conversions":       m.Conversions,
		"conversions_value": m.ConversionsValue,
		"ctr":               0.0,
		"cpc":               0.0,
		"cpa":               0.0,
		"roas":              0.0,
		"cvr":               0.0,
	}

	if m.Impressions > 0 {
		row["ctr"] = utils.Round(float64(m.Clicks)/float64(m.Impressions)*100, 2)
	}
	if m.Clicks > 0 {
		row["cpc"] = utils.Round(cost/float64(m.Clicks), 2)
		row["cvr"] = utils.Round(m.Conversions/float64(m.Clicks)*100, 2)
	}
	if cost > 0 && m.ConversionsValue > 0 {
		row["roas"] = utils.Round(m.ConversionsValue/cost, 4)
	}
	if m.Conversions > 0 {
		row["cpa"] = utils.Round(cost/m.Conversions, 2)
	}

	row["search_impression_share_pct"] = percent(m.SearchImpressionShare)
	row["search_rank_lost_impression_share_pct"] = percent(m.SearchRankLostImpressionShare)

	return row
}

func percent(fraction *float64) any {
	if fraction == nil {
		return nil
	}
	return utils.Round(*fraction*100, 2)
}

// NormalizeSegmentDate converte YYYYMMDD em YYYY-MM-DD; outros formatos passam intactos
func NormalizeSegmentDate(s string) string {
	compact := strings.ReplaceAll(s, "-", "")
	if len(compact) != 8 {
		return s
	}
	return compact[:4] + "-" + compact[4:6] + "-" + compact[6:]
}
