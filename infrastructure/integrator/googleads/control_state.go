package googleads

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	gadsdomain "github.com/vfg2006/ppc-flight-recorder/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/ppc-flight-recorder/internal/domain"
)

const microsPerUnit = 1_000_000.0

// portfolioStrategy guarda os alvos de uma estratégia de lance compartilhada
type portfolioStrategy struct {
	name             string
	targetCPAMicros  json64
	targetROAS       *float64
	isLocation       string
	isFractionMicros json64
}

// json64 é um inteiro opcional vindo da API
type json64 struct {
	value int64
	ok    bool
}

type geoRadius struct {
	Radius      *float64 `json:"radius"`
	RadiusUnits *string  `json:"radius_units"`
}

type locationPresence struct {
	PositiveGeoTargetType *string `json:"positive_geo_target_type"`
	NegativeGeoTargetType *string `json:"negative_geo_target_type"`
}

type deviceModifier struct {
	DeviceType  string   `json:"device_type"`
	BidModifier *float64 `json:"bid_modifier"`
}

type adScheduleEntry struct {
	DayOfWeek   *string  `json:"day_of_week"`
	StartHour   *int64   `json:"start_hour"`
	StartMinute *string  `json:"start_minute"`
	EndHour     *int64   `json:"end_hour"`
	EndMinute   *string  `json:"end_minute"`
	BidModifier *float64 `json:"bid_modifier"`
}

// campaignContext reúne os dados auxiliares usados no estado de controle
type campaignContext struct {
	timezone       any
	portfolio      map[string]portfolioStrategy
	portfolioNames map[string]string
	locations      map[string][]gadsdomain.Row
	proximities    map[string][]gadsdomain.Row
	schedules      map[string][]adScheduleEntry
	audienceCount  map[string]int64
	audienceTypes  map[string]map[string]bool
	devices        map[string][]deviceModifier
}

func (s *GoogleAdsIntegrator) controlState(ctx context.Context, account domain.Account) ([]domain.Row, error) {
	campaigns, err := s.search(ctx, account, campaignControlQuery)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar campanhas")
	}

	cc := s.loadCampaignContext(ctx, account, campaigns)

	rows := make([]domain.Row, 0, len(campaigns))
	for _, r := range campaigns {
		name := r.Campaign.Name
		if name == "" {
			name = unnamedCampaign
		}
		if !matchesPatterns(name, account.CampaignNamePatterns) {
			continue
		}
		rows = append(rows, cc.controlRow(r, name))
	}

	return rows, nil
}

func (s *GoogleAdsIntegrator) loadCampaignContext(ctx context.Context, account domain.Account, campaigns []gadsdomain.Row) *campaignContext {
	cc := &campaignContext{
		portfolio:      map[string]portfolioStrategy{},
		portfolioNames: map[string]string{},
		locations:      map[string][]gadsdomain.Row{},
		proximities:    map[string][]gadsdomain.Row{},
		schedules:      map[string][]adScheduleEntry{},
		audienceCount:  map[string]int64{},
		audienceTypes:  map[string]map[string]bool{},
		devices:        map[string][]deviceModifier{},
	}

	seen := map[string]bool{}
	var resources []string
	for _, r := range campaigns {
		if rn := r.Campaign.BiddingStrategy; rn != "" && !seen[rn] {
			seen[rn] = true
			resources = append(resources, rn)
		}
	}
	if len(resources) > 0 {
		for _, r := range s.enrich(ctx, account, "estratégias de portfólio", biddingStrategyQuery(resources)) {
			p := toPortfolio(r.BiddingStrategy)
			cc.portfolio[r.BiddingStrategy.ResourceName] = p
			cc.portfolioNames[r.BiddingStrategy.ResourceName] = p.name
		}
	}

	if tz := s.enrich(ctx, account, "fuso horário", customerTimeZoneQuery); len(tz) > 0 {
		cc.timezone = nullableString(tz[0].Customer.TimeZone)
	}

	for _, r := range s.enrich(ctx, account, "localizações", locationCriteriaQuery) {
		if r.CampaignCriterion.CriterionID == "" {
			continue
		}
		id := r.Campaign.ID.String()
		cc.locations[id] = append(cc.locations[id], r)
	}

	for _, r := range s.enrich(ctx, account, "raios de proximidade", proximityCriteriaQuery) {
		if r.CampaignCriterion.Proximity == nil || r.CampaignCriterion.CriterionID == "" {
			continue
		}
		id := r.Campaign.ID.String()
		cc.proximities[id] = append(cc.proximities[id], r)
	}

	for _, r := range s.enrich(ctx, account, "programação de anúncios", adScheduleQuery) {
		sched := r.CampaignCriterion.AdSchedule
		if sched == nil {
			continue
		}
		id := r.Campaign.ID.String()
		cc.schedules[id] = append(cc.schedules[id], adScheduleEntry{
			DayOfWeek:   optionalEnum(sched.DayOfWeek),
			StartHour:   optionalInt(sched.StartHour),
			StartMinute: optionalEnum(sched.StartMinute),
			EndHour:     optionalInt(sched.EndHour),
			EndMinute:   optionalEnum(sched.EndMinute),
			BidModifier: r.CampaignCriterion.BidModifier,
		})
	}

	for _, r := range s.enrich(ctx, account, "audiências", campaignAudienceTypesQuery) {
		id := r.Campaign.ID.String()
		cc.audienceCount[id]++
		if t := r.CampaignCriterion.Type; t != "" {
			if cc.audienceTypes[id] == nil {
				cc.audienceTypes[id] = map[string]bool{}
			}
			cc.audienceTypes[id][t] = true
		}
	}

	for _, r := range s.enrich(ctx, account, "dispositivos", campaignDeviceQuery) {
		dev := r.CampaignCriterion.Device
		if dev == nil || emptyEnum(dev.Type) {
			continue
		}
		id := r.Campaign.ID.String()
		cc.devices[id] = append(cc.devices[id], deviceModifier{
			DeviceType:  dev.Type,
			BidModifier: r.CampaignCriterion.BidModifier,
		})
	}

	return cc
}

func toPortfolio(bs gadsdomain.BiddingStrategy) portfolioStrategy {
	p := portfolioStrategy{name: strings.TrimSpace(bs.Name)}
	if p.name == "" && !emptyEnum(bs.Type) {
		p.name = biddingStrategyLabels[bs.Type]
	}
	p.targetCPAMicros = firstCPA(bs.MaximizeConversions, bs.TargetCPA)
	p.targetROAS = firstROAS(bs.MaximizeConversionValue, bs.TargetROAS)
	if tis := bs.TargetImpressionShare; tis != nil {
		if !emptyEnum(tis.Location) {
			p.isLocation = tis.Location
		}
		p.isFractionMicros = toJSON64(tis.LocationFractionMicros)
	}
	return p
}

func (cc *campaignContext) controlRow(r gadsdomain.Row, name string) domain.Row {
	camp := r.Campaign
	id := camp.ID.String()
	portfolio, hasPortfolio := cc.portfolio[camp.BiddingStrategy]

	strategy := biddingStrategyDisplay(camp.BiddingStrategyType, camp.BiddingStrategy, cc.portfolioNames)

	targetCPA := firstCPA(camp.MaximizeConversions, camp.TargetCPA)
	targetROAS := firstROAS(camp.MaximizeConversionValue, camp.TargetROAS)
	if hasPortfolio {
		if !targetCPA.ok {
			targetCPA = portfolio.targetCPAMicros
		}
		if targetROAS == nil {
			targetROAS = portfolio.targetROAS
		}
	}

	switch {
	case strategy == "Maximize conversions" && targetCPA.ok:
		strategy = "Maximize conversions (Target CPA)"
	case strategy == "Maximize conversion value" && targetROAS != nil:
		strategy = "Maximize conversion value (Target ROAS)"
	}

	var isLocation string
	var isFraction json64
	if tis := camp.TargetImpressionShare; tis != nil {
		if !emptyEnum(tis.Location) {
			isLocation = tis.Location
		}
		isFraction = toJSON64(tis.LocationFractionMicros)
	}
	if hasPortfolio {
		if isLocation == "" {
			isLocation = portfolio.isLocation
		}
		if !isFraction.ok {
			isFraction = portfolio.isFractionMicros
		}
	}

	row := domain.Row{
		"campaign_id":                  id,
		"campaign_name":                name,
		"status":                       camp.Status,
		"advertising_channel_type":     camp.AdvertisingChannelType,
		"advertising_channel_sub_type": nullableString(channelSubTypeDisplay(camp.AdvertisingChannelSubType)),
		"budget_delivery_method":       nullableEnum(r.CampaignBudget.DeliveryMethod),
		"bidding_strategy_type":        nullableString(strategy),
		"target_roas":                  nullableFloat(targetROAS),
		"account_timezone":             cc.timezone,
		"campaign_start_date":          campaignDate(camp.StartDate),
		"campaign_end_date":            campaignDate(camp.EndDate),
		"audience_target_count":        nil,
	}

	row["target_impression_share_location"] = nullableString(truncate(isLocation, 32))
	row["target_impression_share_location_fraction_micros"] = isFraction.any()

	budget := toJSON64(r.CampaignBudget.AmountMicros)
	row["daily_budget_micros"] = budget.any()
	row["daily_budget_amount"] = nil
	if budget.ok && budget.value != 0 {
		row["daily_budget_amount"] = float64(budget.value) / microsPerUnit
	}

	row["target_cpa_micros"] = targetCPA.any()
	row["target_cpa_amount"] = nil
	if targetCPA.ok {
		row["target_cpa_amount"] = float64(targetCPA.value) / microsPerUnit
	}

	networks := cc.networkFields(row, camp.NetworkSettings)
	row["networks"] = joinList(networks, ", ", maxLabelLength)

	var includes, excludes []string
	presence := locationPresence{
		PositiveGeoTargetType: optionalEnum(settingValue(camp.GeoTargetTypeSetting, true)),
		NegativeGeoTargetType: optionalEnum(settingValue(camp.GeoTargetTypeSetting, false)),
	}
	for _, loc := range cc.locations[id] {
		crit := loc.CampaignCriterion
		if crit.Location == nil || crit.Location.GeoTargetConstant == "" {
			continue
		}
		if crit.Negative != nil && *crit.Negative {
			excludes = append(excludes, crit.Location.GeoTargetConstant)
		} else {
			includes = append(includes, crit.Location.GeoTargetConstant)
		}
	}
	row["geo_target_ids"] = joinList(includes, ",", maxListLength)
	row["geo_negative_ids"] = joinList(excludes, ",", maxListLength)
	row["location"] = row["geo_target_ids"]
	row["location_presence_interest_json"] = nil
	if presence.PositiveGeoTargetType != nil || presence.NegativeGeoTargetType != nil {
		row["location_presence_interest_json"] = objectText(presence)
	}

	var radii []geoRadius
	for _, p := range cc.proximities[id] {
		prox := p.CampaignCriterion.Proximity
		radii = append(radii, geoRadius{Radius: prox.Radius, RadiusUnits: optionalEnum(prox.RadiusUnits)})
	}
	row["geo_radius_json"] = jsonText(radii)
	row["ad_schedule_json"] = jsonText(cc.schedules[id])

	devices := cc.devices[id]
	row["device_modifiers_json"] = jsonText(devices)
	var activeDevices []string
	for _, d := range devices {
		if d.BidModifier == nil || *d.BidModifier != 0 {
			activeDevices = append(activeDevices, d.DeviceType)
		}
	}
	row["devices"] = joinList(activeDevices, ",", maxLabelLength)

	if n, ok := cc.audienceCount[id]; ok {
		row["audience_target_count"] = n
	}

	var audienceLabels []string
	for _, t := range audienceTypes {
		if cc.audienceTypes[id][t] {
			audienceLabels = append(audienceLabels, audienceTypeLabels[t])
		}
	}
	row["active_bid_adj"] = joinList(audienceLabels, " And ", maxLabelLength)

	campaignType := strings.TrimSpace(strings.Join(nonEmpty(camp.AdvertisingChannelType, channelSubTypeDisplay(camp.AdvertisingChannelSubType)), " "))
	row["campaign_type"] = nullableString(truncate(campaignType, 128))

	return row
}

func (cc *campaignContext) networkFields(row domain.Row, ns *gadsdomain.NetworkSettings) []string {
	row["network_settings_target_google_search"] = nil
	row["network_settings_target_search_network"] = nil
	row["network_settings_target_content_network"] = nil
	row["network_settings_target_partner_search_network"] = nil
	if ns == nil {
		return nil
	}

	row["network_settings_target_google_search"] = nullableBool(ns.TargetGoogleSearch)
	row["network_settings_target_search_network"] = nullableBool(ns.TargetSearchNetwork)
	row["network_settings_target_content_network"] = nullableBool(ns.TargetContentNetwork)
	row["network_settings_target_partner_search_network"] = nullableBool(ns.TargetPartnerSearchNetwork)

	var parts []string
	for _, n := range []struct {
		on    *bool
		label string
	}{
		{ns.TargetGoogleSearch, "Search"},
		{ns.TargetSearchNetwork, "Search Partners"},
		{ns.TargetContentNetwork, "Display"},
		{ns.TargetPartnerSearchNetwork, "Partner Search"},
	} {
		if n.on != nil && *n.on {
			parts = append(parts, n.label)
		}
	}
	return parts
}

func (s *GoogleAdsIntegrator) geoTargeting(ctx context.Context, account domain.Account) ([]domain.Row, error) {
	locations, err := s.search(ctx, account, locationCriteriaQuery)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar localizações")
	}
	proximities, err := s.search(ctx, account, proximityCriteriaQuery)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar raios de proximidade")
	}

	ordinals := map[string]int64{}
	next := func(campaignID, criterionType string) int64 {
		k := campaignID + "|" + criterionType
		ordinals[k]++
		return ordinals[k]
	}

	var rows []domain.Row
	for _, r := range locations {
		crit := r.CampaignCriterion
		if crit.CriterionID == "" || !matchesPatterns(r.Campaign.Name, account.CampaignNamePatterns) {
			continue
		}
		id := r.Campaign.ID.String()
		var constant string
		if crit.Location != nil {
			constant = crit.Location.GeoTargetConstant
		}
		negative := crit.Negative != nil && *crit.Negative

		row := geoRow(id, r.Campaign.Name, crit.CriterionID.String(), "LOCATION", next(id, "LOCATION"))
		row["geo_target_constant"] = nullableString(truncate(constant, 256))
		row["negative"] = negative
		row["positive_geo_target_type"] = nullableEnum(settingValue(r.Campaign.GeoTargetTypeSetting, true))
		row["negative_geo_target_type"] = nullableEnum(settingValue(r.Campaign.GeoTargetTypeSetting, false))
		rows = append(rows, row)
	}

	for _, r := range proximities {
		crit := r.CampaignCriterion
		prox := crit.Proximity
		if prox == nil || crit.CriterionID == "" || !matchesPatterns(r.Campaign.Name, account.CampaignNamePatterns) {
			continue
		}
		id := r.Campaign.ID.String()

		row := geoRow(id, r.Campaign.Name, crit.CriterionID.String(), "PROXIMITY", next(id, "PROXIMITY"))
		row["radius"] = nullableFloat(prox.Radius)
		row["radius_units"] = nullableEnum(prox.RadiusUnits)
		if prox.Address != nil {
			row["proximity_street_address"] = nullableString(truncate(prox.Address.StreetAddress, 1024))
			row["proximity_city_name"] = nullableString(truncate(prox.Address.CityName, 256))
		}
		if prox.GeoPoint != nil {
			row["latitude_micro"] = nullableInt(prox.GeoPoint.LatitudeInMicroDegrees)
			row["longitude_micro"] = nullableInt(prox.GeoPoint.LongitudeInMicroDegrees)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func geoRow(campaignID, campaignName, criterionID, criterionType string, ordinal int64) domain.Row {
	return domain.Row{
		"campaign_id":              campaignID,
		"campaign_name":            truncate(campaignName, 512),
		"criterion_id":             criterionID,
		"criterion_type":           criterionType,
		"ordinal":                  ordinal,
		"geo_target_constant":      nil,
		"geo_name":                 nil,
		"negative":                 nil,
		"positive_geo_target_type": nil,
		"negative_geo_target_type": nil,
		"proximity_street_address": nil,
		"proximity_city_name":      nil,
		"radius":                   nil,
		"radius_units":             nil,
		"latitude_micro":           nil,
		"longitude_micro":          nil,
	}
}

func settingValue(s *gadsdomain.GeoTargetTypeSetting, positive bool) string {
	if s == nil {
		return ""
	}
	if positive {
		return s.PositiveGeoTargetType
	}
	return s.NegativeGeoTargetType
}

func firstCPA(values ...*gadsdomain.TargetCPA) json64 {
	for _, v := range values {
		if v == nil {
			continue
		}
		if n := toJSON64(v.TargetCPAMicros); n.ok {
			return n
		}
	}
	return json64{}
}

func firstROAS(values ...*gadsdomain.TargetROAS) *float64 {
	for _, v := range values {
		if v != nil && v.TargetROAS != nil {
			return v.TargetROAS
		}
	}
	return nil
}

func toJSON64(n json.Number) json64 {
	v, ok := intOf(n)
	return json64{value: v, ok: ok}
}

func (j json64) any() any {
	if !j.ok {
		return nil
	}
	return j.value
}

func optionalEnum(s string) *string {
	if emptyEnum(s) {
		return nil
	}
	return &s
}

func optionalInt(n json.Number) *int64 {
	v, ok := intOf(n)
	if !ok {
		return nil
	}
	return &v
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
