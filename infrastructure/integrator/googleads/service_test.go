package googleads

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ppc-flight-recorder/infrastructure/integrator/googleads/gadsclient/mocks"
	"github.com/vfg2006/ppc-flight-recorder/internal/domain"
	"go.uber.org/mock/gomock"
)

// route responde às consultas cujo texto satisfaz match
type route struct {
	match func(query string) bool
	rows  []string
	err   error
}

func contains(parts ...string) func(string) bool {
	return func(q string) bool {
		for _, p := range parts {
			if !strings.Contains(q, p) {
				return false
			}
		}
		return true
	}
}

func newIntegrator(t *testing.T, routes ...route) *GoogleAdsIntegrator {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	client.EXPECT().
		SearchStream(gomock.Any(), "123-456-7890", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, query string) ([]json.RawMessage, error) {
			for _, r := range routes {
				if !r.match(query) {
					continue
				}
				if r.err != nil {
					return nil, r.err
				}
				out := make([]json.RawMessage, len(r.rows))
				for i, row := range r.rows {
					out[i] = json.RawMessage(row)
				}
				return out, nil
			}
			return nil, nil
		}).
		AnyTimes()

	return New(client)
}

var testAccount = domain.Account{
	Project:              "acme",
	CustomerID:           "123-456-7890",
	CampaignNamePatterns: []string{"brand", "generic"},
}

var controlRoutes = []route{
	{
		match: contains("FROM bidding_strategy"),
		rows: []string{
			`{"biddingStrategy":{"resourceName":"customers/123/biddingStrategies/9","name":"Portfolio tCPA","type":"TARGET_CPA","targetCpa":{"targetCpaMicros":"2500000"}}}`,
		},
	},
	{
		match: contains("FROM customer"),
		rows:  []string{`{"customer":{"timeZone":"America/Sao_Paulo"}}`},
	},
	{
		match: contains("'LOCATION'"),
		rows: []string{
			`{"campaign":{"id":"1","name":"Brand Search"},"campaignCriterion":{"criterionId":"10","negative":false,"location":{"geoTargetConstant":"geoTargetConstants/1001"}}}`,
			`{"campaign":{"id":"1","name":"Brand Search"},"campaignCriterion":{"criterionId":"11","negative":true,"location":{"geoTargetConstant":"geoTargetConstants/1002"}}}`,
		},
	},
	{
		match: contains("'AD_SCHEDULE'"),
		err:   errors.New("INTERNAL"),
	},
	{
		match: contains("USER_LIST", "campaign.status != 'REMOVED'"),
		rows: []string{
			`{"campaign":{"id":"1"},"campaignCriterion":{"type":"USER_LIST"}}`,
			`{"campaign":{"id":"1"},"campaignCriterion":{"type":"USER_INTEREST"}}`,
		},
	},
	{
		match: contains("'DEVICE'"),
		rows: []string{
			`{"campaign":{"id":"1"},"campaignCriterion":{"device":{"type":"MOBILE"},"bidModifier":1.2}}`,
			`{"campaign":{"id":"1"},"campaignCriterion":{"device":{"type":"TABLET"},"bidModifier":0}}`,
		},
	},
	{
		match: contains("campaign_budget.amount_micros"),
		rows: []string{
			`{"campaign":{"id":"1","name":"Brand Search","status":"ENABLED","advertisingChannelType":"SEARCH","advertisingChannelSubType":"UNSPECIFIED","biddingStrategyType":"MAXIMIZE_CONVERSIONS","startDate":"2024-01-01","maximizeConversions":{"targetCpaMicros":"3000000"},"networkSettings":{"targetGoogleSearch":true,"targetSearchNetwork":false,"targetContentNetwork":true},"geoTargetTypeSetting":{"positiveGeoTargetType":"PRESENCE_OR_INTEREST","negativeGeoTargetType":"PRESENCE"}},"campaignBudget":{"amountMicros":"50000000","deliveryMethod":"STANDARD"}}`,
			`{"campaign":{"id":"2","name":"Generic","status":"PAUSED","advertisingChannelType":"SEARCH","biddingStrategy":"customers/123/biddingStrategies/9"}}`,
			`{"campaign":{"id":"3","name":"Display Remarketing","status":"ENABLED","advertisingChannelType":"DISPLAY"}}`,
		},
	},
}

func TestFetchControlState(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		routes   []route
		validate func(t *testing.T, rows []domain.Row, err error)
	}{
		{
			name:   "campanha com alvos próprios e enriquecimentos",
			routes: controlRoutes,
			validate: func(t *testing.T, rows []domain.Row, err error) {
				require.NoError(t, err)
				require.Len(t, rows, 2)

				row := rows[0]
				assert.Equal(t, "1", row["campaign_id"])
				assert.Equal(t, "ENABLED", row["status"])
				assert.Nil(t, row["advertising_channel_sub_type"])
				assert.Equal(t, int64(50000000), row["daily_budget_micros"])
				assert.Equal(t, 50.0, row["daily_budget_amount"])
				assert.Equal(t, "STANDARD", row["budget_delivery_method"])
				assert.Equal(t, "Maximize conversions (Target CPA)", row["bidding_strategy_type"])
				assert.Equal(t, int64(3000000), row["target_cpa_micros"])
				assert.Equal(t, 3.0, row["target_cpa_amount"])
				assert.Equal(t, "geoTargetConstants/1001", row["geo_target_ids"])
				assert.Equal(t, "geoTargetConstants/1002", row["geo_negative_ids"])
				assert.Equal(t, "geoTargetConstants/1001", row["location"])
				assert.Equal(t, `{"positive_geo_target_type":"PRESENCE_OR_INTEREST","negative_geo_target_type":"PRESENCE"}`, row["location_presence_interest_json"])
				assert.Equal(t, "Search, Display", row["networks"])
				assert.Equal(t, true, row["network_settings_target_google_search"])
				assert.Nil(t, row["network_settings_target_partner_search_network"])
				assert.Equal(t, "America/Sao_Paulo", row["account_timezone"])
				assert.Equal(t, int64(2), row["audience_target_count"])
				assert.Equal(t, "User interest And List", row["active_bid_adj"])
				assert.Equal(t, `[{"device_type":"MOBILE","bid_modifier":1.2},{"device_type":"TABLET","bid_modifier":0}]`, row["device_modifiers_json"])
				assert.Equal(t, "MOBILE", row["devices"])
				assert.Equal(t, "SEARCH", row["campaign_type"])
				assert.Equal(t, "2024-01-01", row["campaign_start_date"])
				assert.Nil(t, row["campaign_end_date"])
				assert.Nil(t, row["ad_schedule_json"])
			},
		},
		{
			name:   "estratégia de portfólio supre nome e CPA alvo",
			routes: controlRoutes,
			validate: func(t *testing.T, rows []domain.Row, err error) {
				require.NoError(t, err)
				require.Len(t, rows, 2)

				row := rows[1]
				assert.Equal(t, "2", row["campaign_id"])
				assert.Equal(t, "Portfolio tCPA", row["bidding_strategy_type"])
				assert.Equal(t, int64(2500000), row["target_cpa_micros"])
				assert.Equal(t, 2.5, row["target_cpa_amount"])
				assert.Nil(t, row["networks"])
				assert.Nil(t, row["geo_target_ids"])
				assert.Nil(t, row["audience_target_count"])
				assert.Nil(t, row["device_modifiers_json"])
				assert.Nil(t, row["location_presence_interest_json"])
			},
		},
		{
			name: "falha nos enriquecimentos não interrompe o snapshot",
			routes: []route{
				{match: contains("campaign_budget.amount_micros"), rows: controlRoutes[len(controlRoutes)-1].rows},
				{match: func(string) bool { return true }, err: errors.New("PERMISSION_DENIED")},
			},
			validate: func(t *testing.T, rows []domain.Row, err error) {
				require.NoError(t, err)
				require.Len(t, rows, 2)
				assert.Nil(t, rows[0]["account_timezone"])
				assert.Equal(t, "Maximize conversions (Target CPA)", rows[0]["bidding_strategy_type"])
				assert.Nil(t, rows[1]["bidding_strategy_type"])
			},
		},
		{
			name: "falha na consulta de campanhas é erro",
			routes: []route{
				{match: contains("campaign_budget.amount_micros"), err: errors.New("UNAUTHENTICATED")},
			},
			validate: func(t *testing.T, rows []domain.Row, err error) {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "UNAUTHENTICATED")
				assert.Nil(t, rows)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			integrator := newIntegrator(t, tt.routes...)
			rows, err := integrator.Fetch(ctx, domain.ControlState, testAccount, "2024-05-01")
			tt.validate(t, rows, err)
		})
	}
}

func TestFetchGeoTargeting(t *testing.T) {
	integrator := newIntegrator(t,
		route{
			match: contains("'LOCATION'"),
			rows: []string{
				`{"campaign":{"id":"1","name":"Brand","geoTargetTypeSetting":{"positiveGeoTargetType":"PRESENCE"}},"campaignCriterion":{"criterionId":"10","location":{"geoTargetConstant":"geoTargetConstants/1001"}}}`,
				`{"campaign":{"id":"1","name":"Brand"},"campaignCriterion":{"criterionId":"11","negative":true,"location":{"geoTargetConstant":"geoTargetConstants/1002"}}}`,
				`{"campaign":{"id":"2","name":"Generic"},"campaignCriterion":{"criterionId":"12","location":{"geoTargetConstant":"geoTargetConstants/1003"}}}`,
				`{"campaign":{"id":"3","name":"Other"},"campaignCriterion":{"criterionId":"13","location":{"geoTargetConstant":"geoTargetConstants/1004"}}}`,
			},
		},
		route{
			match: contains("'PROXIMITY'"),
			rows: []string{
				`{"campaign":{"id":"1","name":"Brand"},"campaignCriterion":{"criterionId":"20","proximity":{"radius":5,"radiusUnits":"KILOMETERS","geoPoint":{"latitudeInMicroDegrees":-23550000,"longitudeInMicroDegrees":"-46633000"},"address":{"cityName":"São Paulo"}}}}`,
			},
		},
	)

	rows, err := integrator.Fetch(context.Background(), domain.GeoTargeting, testAccount, "2024-05-01")
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, int64(1), rows[0]["ordinal"])
	assert.Equal(t, "PRESENCE", rows[0]["positive_geo_target_type"])
	assert.Equal(t, false, rows[0]["negative"])

	assert.Equal(t, int64(2), rows[1]["ordinal"])
	assert.Equal(t, true, rows[1]["negative"])

	assert.Equal(t, "2", rows[2]["campaign_id"])
	assert.Equal(t, int64(1), rows[2]["ordinal"])

	prox := rows[3]
	assert.Equal(t, "PROXIMITY", prox["criterion_type"])
	assert.Equal(t, int64(1), prox["ordinal"])
	assert.Equal(t, 5.0, prox["radius"])
	assert.Equal(t, "KILOMETERS", prox["radius_units"])
	assert.Equal(t, int64(-23550000), prox["latitude_micro"])
	assert.Equal(t, int64(-46633000), prox["longitude_micro"])
	assert.Equal(t, "São Paulo", prox["proximity_city_name"])
	assert.Nil(t, prox["proximity_street_address"])
	assert.Nil(t, prox["geo_target_constant"])
}

func TestFetchStructure(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		domain   domain.Name
		routes   []route
		validate func(t *testing.T, rows []domain.Row)
	}{
		{
			name:   "negativas de campanha usam ad_group_id vazio",
			domain: domain.NegativeKeyword,
			routes: []route{
				{
					match: contains("FROM campaign_criterion", "negative = TRUE"),
					rows:  []string{`{"campaign":{"id":"1","name":"Brand"},"campaignCriterion":{"criterionId":"30","keyword":{"text":"grátis","matchType":"BROAD"}}}`},
				},
				{
					match: contains("FROM ad_group_criterion", "negative = TRUE"),
					rows:  []string{`{"campaign":{"id":"1","name":"Brand"},"adGroup":{"id":"5","name":"Tênis"},"adGroupCriterion":{"criterionId":"31","keyword":{"text":"usado","matchType":"PHRASE"}}}`},
				},
			},
			validate: func(t *testing.T, rows []domain.Row) {
				require.Len(t, rows, 2)
				assert.Equal(t, "", rows[0]["ad_group_id"])
				assert.Equal(t, "CAMPAIGN", rows[0]["keyword_level"])
				assert.Equal(t, "grátis", rows[0]["keyword_text"])
				assert.Equal(t, "5", rows[1]["ad_group_id"])
				assert.Equal(t, "AD_GROUP", rows[1]["keyword_level"])
				assert.Equal(t, "Tênis", rows[1]["ad_group_name"])

				key := domain.MustLookup(domain.NegativeKeyword).Key(rows[0]).String()
				assert.Equal(t, "1||30", key)
			},
		},
		{
			name:   "modo de segmentação de audiência",
			domain: domain.Audience,
			routes: []route{
				{
					match: contains("FROM campaign_criterion"),
					rows:  []string{`{"campaign":{"id":"1","name":"Brand","targetingSetting":{"targetRestrictions":[{"targetingDimension":"AUDIENCE","bidOnly":true}]}},"campaignCriterion":{"criterionId":"40","type":"USER_LIST","bidModifier":1.1,"userList":{"userList":"customers/123/userLists/9"}}}`},
				},
				{
					match: contains("FROM ad_group_criterion"),
					rows:  []string{`{"campaign":{"id":"1","name":"Brand"},"adGroup":{"id":"5","targetingSetting":{"targetRestrictions":[{"targetingDimension":"AGE_RANGE","bidOnly":false}]}},"adGroupCriterion":{"criterionId":"41","type":"USER_INTEREST","userInterest":{"userInterestCategory":"customers/123/userInterests/80"}}}`},
				},
			},
			validate: func(t *testing.T, rows []domain.Row) {
				require.Len(t, rows, 2)
				assert.Equal(t, "OBSERVATION", rows[0]["targeting_mode"])
				assert.Equal(t, "customers/123/userLists/9", rows[0]["audience_id"])
				assert.Equal(t, 1.1, rows[0]["bid_modifier"])
				assert.Equal(t, "", rows[0]["ad_group_id"])
				assert.Equal(t, "TARGETING", rows[1]["targeting_mode"])
				assert.Equal(t, "customers/123/userInterests/80", rows[1]["audience_id"])
				assert.Nil(t, rows[1]["bid_modifier"])
			},
		},
		{
			name:   "criativo responsivo com assets e política",
			domain: domain.AdCreative,
			routes: []route{
				{
					match: contains("FROM ad_group_ad_asset_view"),
					rows: []string{
						`{"adGroup":{"id":"5"},"adGroupAd":{"ad":{"id":"900"}},"asset":{"resourceName":"customers/123/assets/1","type":"YOUTUBE_VIDEO","youtubeVideoAsset":{"youtubeVideoId":"abc"}}}`,
						`{"adGroup":{"id":"5"},"adGroupAd":{"ad":{"id":"900"}},"asset":{"resourceName":"customers/123/assets/2","type":"IMAGE"}}`,
					},
				},
				{
					match: contains("FROM ad_group_ad"),
					rows:  []string{`{"adGroup":{"id":"5"},"campaign":{"id":"1","name":"Brand"},"adGroupAd":{"status":"ENABLED","ad":{"id":"900","type":"RESPONSIVE_SEARCH_AD","finalUrls":["https://a.com","https://b.com"],"responsiveSearchAd":{"headlines":[{"text":"Oferta","pinnedField":"HEADLINE_1"},{"text":"Frete"}],"descriptions":[{"text":"Compre já"}],"path1":"tenis"}},"policySummary":{"approvalStatus":"APPROVED","reviewStatus":"REVIEWED"}}}`},
				},
			},
			validate: func(t *testing.T, rows []domain.Row) {
				require.Len(t, rows, 1)
				row := rows[0]
				assert.Equal(t, `[{"text":"Oferta","pinned_field":"HEADLINE_1"},{"text":"Frete","pinned_field":null}]`, row["headlines_json"])
				assert.Equal(t, `[{"text":"Compre já","pinned_field":null}]`, row["descriptions_json"])
				assert.Equal(t, "https://a.com,https://b.com", row["final_urls"])
				assert.Equal(t, "tenis", row["path1"])
				assert.Nil(t, row["path2"])
				assert.Equal(t, `{"approval_status":"APPROVED","review_status":"REVIEWED","policy_topic_entries":[]}`, row["policy_summary_json"])
				assert.Equal(t, `["https://www.youtube.com/watch?v=abc","customers/123/assets/2"]`, row["asset_urls"])
			},
		},
		{
			name:   "eventos de alteração guardam recursos como texto",
			domain: domain.ChangeEvent,
			routes: []route{
				{
					match: contains("FROM change_event", "'2024-05-01 00:00:00'"),
					rows:  []string{`{"changeEvent":{"resourceName":"customers/123/changeEvents/1","changeDateTime":"2024-05-01 10:00:00","changeResourceType":"CAMPAIGN","resourceChangeOperation":"UPDATE","changedFields":"status","clientType":"GOOGLE_ADS_WEB_CLIENT","oldResource":{"campaign":{"status":"ENABLED"}},"newResource":{"campaign":{"status":"PAUSED"}}}}`},
				},
			},
			validate: func(t *testing.T, rows []domain.Row) {
				require.Len(t, rows, 1)
				assert.Equal(t, "customers/123/changeEvents/1", rows[0]["change_event_resource_name"])
				assert.Equal(t, `{"campaign":{"status":"ENABLED"}}`, rows[0]["old_value"])
				assert.Equal(t, `{"campaign":{"status":"PAUSED"}}`, rows[0]["new_value"])
				assert.Nil(t, rows[0]["user_email"])
			},
		},
		{
			name:   "ações de conversão",
			domain: domain.ConversionAction,
			routes: []route{
				{
					match: contains("FROM conversion_action"),
					rows:  []string{`{"conversionAction":{"resourceName":"customers/123/conversionActions/7","name":"Compra","type":"WEBPAGE","status":"ENABLED","category":"PURCHASE","includeInConversionsMetric":true,"attributionModelSettings":{"attributionModel":"GOOGLE_SEARCH_ATTRIBUTION_DATA_DRIVEN"},"clickThroughLookbackWindowDays":"30","countingType":"ONE_PER_CLICK"}}`},
				},
			},
			validate: func(t *testing.T, rows []domain.Row) {
				require.Len(t, rows, 1)
				assert.Equal(t, true, rows[0]["include_in_conversions_metric"])
				assert.Equal(t, int64(30), rows[0]["click_through_lookback_window_days"])
				assert.Equal(t, "GOOGLE_SEARCH_ATTRIBUTION_DATA_DRIVEN", rows[0]["attribution_model"])
			},
		},
		{
			name:   "filtro por nome de campanha",
			domain: domain.AdGroup,
			routes: []route{
				{
					match: contains("FROM ad_group"),
					rows: []string{
						`{"adGroup":{"id":"5","name":"Tênis","status":"ENABLED"},"campaign":{"id":"1","name":"BRAND Search"}}`,
						`{"adGroup":{"id":"6","name":"Bolsas","status":"ENABLED"},"campaign":{"id":"3","name":"Display"}}`,
					},
				},
			},
			validate: func(t *testing.T, rows []domain.Row) {
				require.Len(t, rows, 1)
				assert.Equal(t, "5", rows[0]["ad_group_id"])
				assert.Equal(t, "Tênis", rows[0]["ad_group_name"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			integrator := newIntegrator(t, tt.routes...)
			rows, err := integrator.Fetch(ctx, tt.domain, testAccount, "2024-05-01")
			require.NoError(t, err)
			tt.validate(t, rows)
		})
	}
}

func TestFetchKeywordOutcome(t *testing.T) {
	integrator := newIntegrator(t, route{
		match: contains("FROM keyword_view", "BETWEEN '2024-05-01' AND '2024-05-01'"),
		rows: []string{
			`{"campaign":{"id":"1","name":"Brand"},"adGroup":{"id":"5"},"adGroupCriterion":{"criterionId":"77","keyword":{"text":"tenis","matchType":"EXACT"}},"metrics":{"impressions":"1000","clicks":"50","costMicros":"25000000","conversions":5,"allConversionsValue":250,"searchImpressionShare":0.4567},"segments":{"date":"2024-05-01"}}`,
		},
	})

	rows, err := integrator.Fetch(context.Background(), domain.KeywordOutcome, testAccount, "2024-05-01")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "77", row["keyword_criterion_id"])
	assert.Equal(t, "2024-05-01", row["outcome_date"])
	assert.Equal(t, unnamedAdGroup, row["ad_group_name"])
	assert.Equal(t, int64(1000), row["impressions"])
	assert.Equal(t, 250.0, row["conversions_value"])
	assert.Equal(t, 5.0, row["ctr"])
	assert.Equal(t, 0.5, row["cpc"])
	assert.Equal(t, 5.0, row["cpa"])
	assert.Equal(t, 10.0, row["roas"])
	assert.InDelta(t, 45.67, row["search_impression_share_pct"], 0.001)
	assert.Nil(t, row["search_rank_lost_impression_share_pct"])
}

func TestFetchDominioNaoSuportado(t *testing.T) {
	integrator := newIntegrator(t)

	_, err := integrator.Fetch(context.Background(), domain.GA4Acquisition, testAccount, "2024-05-01")
	assert.Error(t, err)

	_, err = integrator.FetchRange(context.Background(), domain.AdGroup, testAccount, "2024-05-01", "2024-05-02")
	assert.Error(t, err)
}
