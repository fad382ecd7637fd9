package googleads

import (
	"fmt"
	"strings"
)

const (
	campaignControlQuery = `
		SELECT campaign.id, campaign.name, campaign.status, campaign.advertising_channel_type,
		       campaign.advertising_channel_sub_type, campaign.bidding_strategy_type, campaign.bidding_strategy,
		       campaign.start_date, campaign.end_date,
		       campaign.maximize_conversions.target_cpa_micros, campaign.target_cpa.target_cpa_micros,
		       campaign.maximize_conversion_value.target_roas, campaign.target_roas.target_roas,
		       campaign.target_impression_share.location, campaign.target_impression_share.location_fraction_micros,
		       campaign.network_settings.target_google_search, campaign.network_settings.target_search_network,
		       campaign.network_settings.target_content_network, campaign.network_settings.target_partner_search_network,
		       campaign.geo_target_type_setting.positive_geo_target_type,
		       campaign.geo_target_type_setting.negative_geo_target_type,
		       campaign_budget.amount_micros, campaign_budget.delivery_method
		FROM campaign
		WHERE campaign.status != 'REMOVED'`

	customerTimeZoneQuery = `SELECT customer.time_zone FROM customer LIMIT 1`

	locationCriteriaQuery = `
		SELECT campaign.id, campaign.name,
		       campaign.geo_target_type_setting.positive_geo_target_type,
		       campaign.geo_target_type_setting.negative_geo_target_type,
		       campaign_criterion.criterion_id, campaign_criterion.negative,
		       campaign_criterion.location.geo_target_constant
		FROM campaign_criterion
		WHERE campaign_criterion.type = 'LOCATION' AND campaign.status != 'REMOVED'`

	proximityCriteriaQuery = `
		SELECT campaign.id, campaign.name, campaign_criterion.criterion_id,
		       campaign_criterion.proximity.radius, campaign_criterion.proximity.radius_units,
		       campaign_criterion.proximity.geo_point.latitude_in_micro_degrees,
		       campaign_criterion.proximity.geo_point.longitude_in_micro_degrees,
		       campaign_criterion.proximity.address.street_address,
		       campaign_criterion.proximity.address.city_name
		FROM campaign_criterion
		WHERE campaign_criterion.type = 'PROXIMITY' AND campaign.status != 'REMOVED'`

	adScheduleQuery = `
		SELECT campaign.id, campaign_criterion.ad_schedule.day_of_week,
		       campaign_criterion.ad_schedule.start_hour, campaign_criterion.ad_schedule.start_minute,
		       campaign_criterion.ad_schedule.end_hour, campaign_criterion.ad_schedule.end_minute,
		       campaign_criterion.bid_modifier
		FROM campaign_criterion
		WHERE campaign_criterion.type = 'AD_SCHEDULE' AND campaign.status != 'REMOVED'`

	campaignAudienceTypesQuery = `
		SELECT campaign.id, campaign_criterion.type
		FROM campaign_criterion
		WHERE campaign_criterion.type IN ('USER_LIST','USER_INTEREST','CUSTOM_AFFINITY','CUSTOM_INTENT','COMBINED_AUDIENCE','CUSTOM_AUDIENCE')
		  AND campaign.status != 'REMOVED'`

	campaignDeviceQuery = `
		SELECT campaign.id, campaign_criterion.device.type, campaign_criterion.bid_modifier
		FROM campaign_criterion
		WHERE campaign_criterion.type = 'DEVICE' AND campaign.status != 'REMOVED'`

	adGroupStructureQuery = `
		SELECT ad_group.id, ad_group.name, ad_group.status, campaign.id, campaign.name
		FROM ad_group`

	keywordCriteriaQuery = `
		SELECT ad_group_criterion.criterion_id, ad_group_criterion.keyword.text,
		       ad_group_criterion.keyword.match_type,
		       ad_group.id, ad_group.name, campaign.id, campaign.name
		FROM ad_group_criterion
		WHERE ad_group_criterion.type = 'KEYWORD' AND ad_group_criterion.negative = FALSE`

	campaignNegativeKeywordQuery = `
		SELECT campaign.id, campaign.name, campaign_criterion.criterion_id, campaign_criterion.negative,
		       campaign_criterion.keyword.text, campaign_criterion.keyword.match_type
		FROM campaign_criterion
		WHERE campaign_criterion.type = 'KEYWORD' AND campaign_criterion.negative = TRUE`

	adGroupNegativeKeywordQuery = `
		SELECT campaign.id, campaign.name, ad_group.id, ad_group.name,
		       ad_group_criterion.criterion_id, ad_group_criterion.keyword.text,
		       ad_group_criterion.keyword.match_type
		FROM ad_group_criterion
		WHERE ad_group_criterion.type = 'KEYWORD' AND ad_group_criterion.negative = TRUE`

	adCreativeQuery = `
		SELECT ad_group.id, campaign.id, campaign.name, ad_group_ad.status,
		       ad_group_ad.ad.id, ad_group_ad.ad.type, ad_group_ad.ad.final_urls,
		       ad_group_ad.ad.responsive_search_ad.headlines, ad_group_ad.ad.responsive_search_ad.descriptions,
		       ad_group_ad.ad.responsive_search_ad.path1, ad_group_ad.ad.responsive_search_ad.path2,
		       ad_group_ad.ad.expanded_text_ad.headline_part1, ad_group_ad.ad.expanded_text_ad.headline_part2,
		       ad_group_ad.ad.expanded_text_ad.description,
		       ad_group_ad.policy_summary.approval_status, ad_group_ad.policy_summary.review_status,
		       ad_group_ad.policy_summary.policy_topic_entries
		FROM ad_group_ad`

	adAssetQuery = `
		SELECT ad_group.id, ad_group_ad.ad.id, asset.resource_name, asset.type,
		       asset.youtube_video_asset.youtube_video_id
		FROM ad_group_ad_asset_view
		WHERE ad_group_ad_asset_view.enabled = true`

	campaignAudienceQuery = `
		SELECT campaign.id, campaign.name, campaign.targeting_setting.target_restrictions,
		       campaign_criterion.criterion_id, campaign_criterion.type, campaign_criterion.status,
		       campaign_criterion.bid_modifier, campaign_criterion.negative,
		       campaign_criterion.user_list.user_list, campaign_criterion.user_interest.user_interest_category,
		       campaign_criterion.custom_affinity.custom_affinity, campaign_criterion.custom_intent.custom_intent,
		       campaign_criterion.custom_audience.custom_audience,
		       campaign_criterion.combined_audience.combined_audience
		FROM campaign_criterion
		WHERE campaign_criterion.type IN ('USER_LIST','USER_INTEREST','CUSTOM_AFFINITY','CUSTOM_INTENT','COMBINED_AUDIENCE','CUSTOM_AUDIENCE')`

	adGroupAudienceQuery = `
		SELECT campaign.id, campaign.name, ad_group.id, ad_group.targeting_setting.target_restrictions,
		       ad_group_criterion.criterion_id, ad_group_criterion.type, ad_group_criterion.status,
		       ad_group_criterion.bid_modifier, ad_group_criterion.negative,
		       ad_group_criterion.user_list.user_list, ad_group_criterion.user_interest.user_interest_category,
		       ad_group_criterion.custom_affinity.custom_affinity, ad_group_criterion.custom_intent.custom_intent,
		       ad_group_criterion.custom_audience.custom_audience,
		       ad_group_criterion.combined_audience.combined_audience
		FROM ad_group_criterion
		WHERE ad_group_criterion.type IN ('USER_LIST','USER_INTEREST','CUSTOM_AFFINITY','CUSTOM_INTENT','COMBINED_AUDIENCE','CUSTOM_AUDIENCE')`

	deviceModifierQuery = `
		SELECT campaign.id, ad_group.id, ad_group_bid_modifier.device.type, ad_group_bid_modifier.bid_modifier
		FROM ad_group_bid_modifier
		WHERE ad_group.status != 'REMOVED' AND campaign.status != 'REMOVED'`

	conversionActionQuery = `
		SELECT conversion_action.resource_name, conversion_action.name, conversion_action.type,
		       conversion_action.status, conversion_action.category,
		       conversion_action.include_in_conversions_metric,
		       conversion_action.attribution_model_settings.attribution_model,
		       conversion_action.click_through_lookback_window_days, conversion_action.counting_type
		FROM conversion_action`

	outcomeMetricsFields = `segments.date, metrics.impressions, metrics.clicks, metrics.cost_micros,
		       metrics.conversions, metrics.conversions_value, metrics.all_conversions_value,
		       metrics.search_impression_share, metrics.search_rank_lost_impression_share`
)

func biddingStrategyQuery(resources []string) string {
	return fmt.Sprintf(`
		SELECT bidding_strategy.resource_name, bidding_strategy.name, bidding_strategy.type,
		       bidding_strategy.maximize_conversions.target_cpa_micros, bidding_strategy.target_cpa.target_cpa_micros,
		       bidding_strategy.maximize_conversion_value.target_roas, bidding_strategy.target_roas.target_roas,
		       bidding_strategy.target_impression_share.location,
		       bidding_strategy.target_impression_share.location_fraction_micros
		FROM bidding_strategy
		WHERE bidding_strategy.resource_name IN (%s)`, quoteList(resources))
}

func changeEventQuery(day string) string {
	return fmt.Sprintf(`
		SELECT change_event.resource_name, change_event.change_date_time, change_event.change_resource_type,
		       change_event.change_resource_name, change_event.resource_change_operation,
		       change_event.changed_fields, change_event.user_email, change_event.client_type,
		       change_event.old_resource, change_event.new_resource
		FROM change_event
		WHERE change_event.change_date_time >= '%s 00:00:00' AND change_event.change_date_time <= '%s 23:59:59'
		ORDER BY change_event.change_date_time
		LIMIT 10000`, day, day)
}

func campaignOutcomeQuery(start, end string) string {
	return fmt.Sprintf(`
		SELECT campaign.id, campaign.name, campaign.status, %s
		FROM campaign
		WHERE campaign.status != 'REMOVED' AND segments.date BETWEEN '%s' AND '%s'`, outcomeMetricsFields, start, end)
}

func adGroupOutcomeQuery(start, end string) string {
	return fmt.Sprintf(`
		SELECT ad_group.id, ad_group.name, campaign.id, campaign.name, %s
		FROM ad_group
		WHERE segments.date BETWEEN '%s' AND '%s'`, outcomeMetricsFields, start, end)
}

func keywordOutcomeQuery(start, end string) string {
	return fmt.Sprintf(`
		SELECT ad_group_criterion.criterion_id, ad_group_criterion.keyword.text,
		       ad_group_criterion.keyword.match_type, ad_group.id, ad_group.name, campaign.id, campaign.name, %s
		FROM keyword_view
		WHERE segments.date BETWEEN '%s' AND '%s'`, outcomeMetricsFields, start, end)
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = "'" + strings.ReplaceAll(item, "'", "\\'") + "'"
	}
	return strings.Join(quoted, ",")
}
