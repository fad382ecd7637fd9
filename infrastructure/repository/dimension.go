package repository

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vfg2006/ppc-flight-recorder/infrastructure/database"
	"github.com/vfg2006/ppc-flight-recorder/internal/domain"
)

const (
	campaignDimsTable = "campaign_dims"
	adGroupDimsTable  = "ad_group_dims"
	keywordDimsTable  = "keyword_dims"
)

// DimensionRepository mantém as dimensões com o último dia em que foram vistas.
// Nomes vazios nunca apagam um nome já gravado.
type DimensionRepository interface {
	UpsertCampaigns(ctx context.Context, customerID, day string, dims []domain.CampaignDim) error
	UpsertAdGroups(ctx context.Context, customerID, day string, dims []domain.AdGroupDim) error
	UpsertKeywords(ctx context.Context, customerID, day string, dims []domain.KeywordDim) error
}

type dimensionRepository struct {
	conn database.Conn
}

func NewDimensionRepository(conn database.Conn) DimensionRepository {
	return &dimensionRepository{
		conn: conn,
	}
}

func (r *dimensionRepository) UpsertCampaigns(ctx context.Context, customerID, day string, dims []domain.CampaignDim) error {
	seen := make(map[string]struct{}, len(dims))
	values := make([][]any, 0, len(dims))
	for _, d := range dims {
		if _, ok := seen[d.CampaignID]; ok {
			continue
		}
		seen[d.CampaignID] = struct{}{}
		values = append(values, []any{customerID, d.CampaignID, nullable(d.CampaignName), nullable(d.Status),
			nullable(d.AdvertisingChannelType), day})
	}

	return r.upsert(ctx, campaignDimsTable,
		[]string{"customer_id", "campaign_id", "campaign_name", "status", "advertising_channel_type", "last_seen_date"},
		"ON CONFLICT (customer_id, campaign_id) DO UPDATE SET "+
			coalesce(campaignDimsTable, "campaign_name", "status", "advertising_channel_type")+", "+
			lastSeen(campaignDimsTable),
		values,
	)
}

func (r *dimensionRepository) UpsertAdGroups(ctx context.Context, customerID, day string, dims []domain.AdGroupDim) error {
	seen := make(map[string]struct{}, len(dims))
	values := make([][]any, 0, len(dims))
	for _, d := range dims {
		if _, ok := seen[d.AdGroupID]; ok {
			continue
		}
		seen[d.AdGroupID] = struct{}{}
		values = append(values, []any{customerID, d.AdGroupID, nullable(d.CampaignID), nullable(d.AdGroupName), day})
	}

	return r.upsert(ctx, adGroupDimsTable,
		[]string{"customer_id", "ad_group_id", "campaign_id", "ad_group_name", "last_seen_date"},
		"ON CONFLICT (customer_id, ad_group_id) DO UPDATE SET "+
			coalesce(adGroupDimsTable, "campaign_id", "ad_group_name")+", "+
			lastSeen(adGroupDimsTable),
		values,
	)
}

func (r *dimensionRepository) UpsertKeywords(ctx context.Context, customerID, day string, dims []domain.KeywordDim) error {
	seen := make(map[string]struct{}, len(dims))
	values := make([][]any, 0, len(dims))
	for _, d := range dims {
		key := d.AdGroupID + "|" + d.KeywordCriterionID
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		values = append(values, []any{customerID, d.AdGroupID, d.KeywordCriterionID, nullable(d.CampaignID),
			nullable(d.KeywordText), nullable(d.MatchType), day})
	}

	return r.upsert(ctx, keywordDimsTable,
		[]string{"customer_id", "ad_group_id", "keyword_criterion_id", "campaign_id", "keyword_text", "match_type", "last_seen_date"},
		"ON CONFLICT (customer_id, ad_group_id, keyword_criterion_id) DO UPDATE SET "+
			coalesce(keywordDimsTable, "campaign_id", "keyword_text", "match_type")+", "+
			lastSeen(keywordDimsTable),
		values,
	)
}

func (r *dimensionRepository) upsert(ctx context.Context, table string, columns []string, suffix string, values [][]any) error {
	for start := 0; start < len(values); start += insertBatchSize {
		end := min(start+insertBatchSize, len(values))

		builder := r.conn.Builder().Insert(table).Columns(columns...)
		for _, v := range values[start:end] {
			builder = builder.Values(v...)
		}

		insertSQL, args, err := builder.Suffix(suffix).ToSql()
		if err != nil {
			return err
		}

		if _, err := r.conn.ExecContext(ctx, insertSQL, args...); err != nil {
			return errors.Wrapf(err, "erro ao gravar %s", table)
		}
	}

	return nil
}

func coalesce(table string, columns ...string) string {
	out := ""
	for i, c := range columns {
		if i > 0 {
			out += ", "
		}
		out += c + " = COALESCE(excluded." + c + ", " + table + "." + c + ")"
	}
	return out + ", updated_at = CURRENT_TIMESTAMP"
}

// last_seen_date só avança; reprocessar um dia antigo não regride a data
func lastSeen(table string) string {
	return "last_seen_date = CASE WHEN excluded.last_seen_date > " + table + ".last_seen_date " +
		"THEN excluded.last_seen_date ELSE " + table + ".last_seen_date END"
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
