package googleads

import (
	"strings"

	gadsdomain "github.com/vfg2006/ppc-flight-recorder/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/ppc-flight-recorder/internal/domain"
	"github.com/vfg2006/ppc-flight-recorder/internal/usecases/diffing"
)

func outcomeRows(name domain.Name, results []gadsdomain.Row, patterns []string) []domain.Row {
	rows := make([]domain.Row, 0, len(results))
	for _, r := range results {
		if !matchesPatterns(r.Campaign.Name, patterns) {
			continue
		}

		row := diffing.NormalizeOutcome(outcomeMetrics(r))

		campaignName := r.Campaign.Name
		if campaignName == "" {
			campaignName = unnamedCampaign
		}
		row["campaign_id"] = r.Campaign.ID.String()
		row["campaign_name"] = campaignName

		switch name {
		case domain.CampaignOutcome:
			row["status"] = nullableEnum(r.Campaign.Status)
		case domain.AdGroupOutcome:
			row["ad_group_id"] = r.AdGroup.ID.String()
			row["ad_group_name"] = adGroupName(r.AdGroup.Name)
		case domain.KeywordOutcome:
			text, matchType := keywordInfo(r.AdGroupCriterion.Keyword)
			row["keyword_criterion_id"] = r.AdGroupCriterion.CriterionID.String()
			row["keyword_text"] = text
			row["match_type"] = matchType
			row["ad_group_id"] = r.AdGroup.ID.String()
			row["ad_group_name"] = adGroupName(r.AdGroup.Name)
		}

		rows = append(rows, row)
	}
	return rows
}

func outcomeMetrics(r gadsdomain.Row) diffing.OutcomeMetrics {
	m := r.Metrics
	value := m.ConversionsValue
	if value == nil {
		value = m.AllConversionsValue
	}
	return diffing.OutcomeMetrics{
		Date:                          r.Segments.Date,
		Impressions:                   intOrZero(m.Impressions),
		Clicks:                        intOrZero(m.Clicks),
		CostMicros:                    intOrZero(m.CostMicros),
		Conversions:                   floatOrZero(m.Conversions),
		ConversionsValue:              floatOrZero(value),
		SearchImpressionShare:         m.SearchImpressionShare,
		SearchRankLostImpressionShare: m.SearchRankLostImpressionShare,
	}
}

func adGroupName(name string) string {
	if name = strings.TrimSpace(name); name == "" {
		return unnamedAdGroup
	}
	return name
}

func floatOrZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
