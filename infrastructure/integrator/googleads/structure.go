package googleads

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	gadsdomain "github.com/vfg2006/ppc-flight-recorder/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/ppc-flight-recorder/internal/domain"
)

const youtubeWatchURL = "https://www.youtube.com/watch?v="

type adText struct {
	Text        string  `json:"text"`
	PinnedField *string `json:"pinned_field"`
}

type policyTopic struct {
	Topic *string `json:"topic"`
	Type  *string `json:"type"`
}

type policySummary struct {
	ApprovalStatus     *string       `json:"approval_status"`
	ReviewStatus       *string       `json:"review_status"`
	PolicyTopicEntries []policyTopic `json:"policy_topic_entries"`
}

func (s *GoogleAdsIntegrator) adGroups(ctx context.Context, account domain.Account) ([]domain.Row, error) {
	results, err := s.search(ctx, account, adGroupStructureQuery)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar grupos de anúncios")
	}

	var rows []domain.Row
	for _, r := range results {
		if !matchesPatterns(r.Campaign.Name, account.CampaignNamePatterns) {
			continue
		}
		rows = append(rows, domain.Row{
			"ad_group_id":   r.AdGroup.ID.String(),
			"campaign_id":   r.Campaign.ID.String(),
			"ad_group_name": r.AdGroup.Name,
			"status":        r.AdGroup.Status,
			"campaign_name": nullableString(strings.TrimSpace(r.Campaign.Name)),
		})
	}
	return rows, nil
}

func (s *GoogleAdsIntegrator) keywords(ctx context.Context, account domain.Account) ([]domain.Row, error) {
	results, err := s.search(ctx, account, keywordCriteriaQuery)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar palavras-chave")
	}

	var rows []domain.Row
	for _, r := range results {
		if !matchesPatterns(r.Campaign.Name, account.CampaignNamePatterns) {
			continue
		}
		text, matchType := keywordInfo(r.AdGroupCriterion.Keyword)
		rows = append(rows, domain.Row{
			"keyword_criterion_id": r.AdGroupCriterion.CriterionID.String(),
			"ad_group_id":          r.AdGroup.ID.String(),
			"campaign_id":          r.Campaign.ID.String(),
			"keyword_text":         text,
			"match_type":           matchType,
			"keyword_level":        "AD_GROUP",
			"campaign_name":        nullableString(strings.TrimSpace(r.Campaign.Name)),
			"ad_group_name":        nullableString(strings.TrimSpace(r.AdGroup.Name)),
		})
	}
	return rows, nil
}

// negativeKeywords junta negativas de campanha (ad_group_id vazio) e de grupo
func (s *GoogleAdsIntegrator) negativeKeywords(ctx context.Context, account domain.Account) ([]domain.Row, error) {
	campaignLevel, err := s.search(ctx, account, campaignNegativeKeywordQuery)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar negativas de campanha")
	}
	adGroupLevel, err := s.search(ctx, account, adGroupNegativeKeywordQuery)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar negativas de grupo")
	}

	var rows []domain.Row
	for _, r := range campaignLevel {
		if !matchesPatterns(r.Campaign.Name, account.CampaignNamePatterns) {
			continue
		}
		text, matchType := keywordInfo(r.CampaignCriterion.Keyword)
		rows = append(rows, domain.Row{
			"campaign_id":   r.Campaign.ID.String(),
			"ad_group_id":   "",
			"criterion_id":  r.CampaignCriterion.CriterionID.String(),
			"keyword_text":  text,
			"match_type":    matchType,
			"keyword_level": "CAMPAIGN",
			"campaign_name": nullableString(strings.TrimSpace(r.Campaign.Name)),
			"ad_group_name": nil,
		})
	}
	for _, r := range adGroupLevel {
		if !matchesPatterns(r.Campaign.Name, account.CampaignNamePatterns) {
			continue
		}
		text, matchType := keywordInfo(r.AdGroupCriterion.Keyword)
		rows = append(rows, domain.Row{
			"campaign_id":   r.Campaign.ID.String(),
			"ad_group_id":   r.AdGroup.ID.String(),
			"criterion_id":  r.AdGroupCriterion.CriterionID.String(),
			"keyword_text":  text,
			"match_type":    matchType,
			"keyword_level": "AD_GROUP",
			"campaign_name": nullableString(strings.TrimSpace(r.Campaign.Name)),
			"ad_group_name": nullableString(strings.TrimSpace(r.AdGroup.Name)),
		})
	}
	return rows, nil
}

func keywordInfo(kw *gadsdomain.KeywordInfo) (string, string) {
	if kw == nil {
		return "", ""
	}
	return kw.Text, kw.MatchType
}

func (s *GoogleAdsIntegrator) adCreatives(ctx context.Context, account domain.Account) ([]domain.Row, error) {
	assets := s.assetURLs(ctx, account)

	results, err := s.search(ctx, account, adCreativeQuery)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar anúncios")
	}

	var rows []domain.Row
	for _, r := range results {
		if !matchesPatterns(r.Campaign.Name, account.CampaignNamePatterns) {
			continue
		}
		ad := r.AdGroupAd.Ad
		adGroupID := r.AdGroup.ID.String()
		adID := ad.ID.String()

		var headlines, descriptions []adText
		var path1, path2 string
		switch {
		case ad.ResponsiveSearchAd != nil:
			rsa := ad.ResponsiveSearchAd
			headlines = adTexts(rsa.Headlines)
			descriptions = adTexts(rsa.Descriptions)
			path1, path2 = rsa.Path1, rsa.Path2
		case ad.ExpandedTextAd != nil:
			eta := ad.ExpandedTextAd
			for _, h := range []string{eta.HeadlinePart1, eta.HeadlinePart2} {
				if h != "" {
					headlines = append(headlines, adText{Text: h})
				}
			}
			if eta.Description != "" {
				descriptions = append(descriptions, adText{Text: eta.Description})
			}
		}

		var finalURLs any
		if len(ad.FinalURLs) > 0 {
			finalURLs = truncate(strings.Join(ad.FinalURLs, ","), maxJSONLength)
		}

		rows = append(rows, domain.Row{
			"ad_group_id":         adGroupID,
			"campaign_id":         r.Campaign.ID.String(),
			"ad_id":               adID,
			"ad_type":             ad.Type,
			"status":              nullableString(truncate(r.AdGroupAd.Status, 32)),
			"headlines_json":      jsonText(headlines),
			"descriptions_json":   jsonText(descriptions),
			"final_urls":          finalURLs,
			"path1":               nullableString(truncate(path1, 512)),
			"path2":               nullableString(truncate(path2, 512)),
			"policy_summary_json": policyJSON(r.AdGroupAd.PolicySummary),
			"asset_urls":          jsonText(assets[adGroupID+"|"+adID]),
		})
	}
	return rows, nil
}

func adTexts(assets []gadsdomain.AdTextAsset) []adText {
	out := make([]adText, 0, len(assets))
	for _, a := range assets {
		out = append(out, adText{Text: a.Text, PinnedField: optionalEnum(a.PinnedField)})
	}
	return out
}

func policyJSON(p *gadsdomain.PolicySummary) any {
	if p == nil {
		return nil
	}
	summary := policySummary{
		ApprovalStatus:     optionalEnum(p.ApprovalStatus),
		ReviewStatus:       optionalEnum(p.ReviewStatus),
		PolicyTopicEntries: []policyTopic{},
	}
	for _, e := range p.PolicyTopicEntries {
		summary.PolicyTopicEntries = append(summary.PolicyTopicEntries, policyTopic{
			Topic: optionalEnum(e.Topic),
			Type:  optionalEnum(e.Type),
		})
	}
	return objectText(summary)
}

// assetURLs mapeia "ad_group_id|ad_id" para as URLs ou referências dos assets do anúncio
func (s *GoogleAdsIntegrator) assetURLs(ctx context.Context, account domain.Account) map[string][]string {
	out := map[string][]string{}
	for _, r := range s.enrich(ctx, account, "assets de anúncios", adAssetQuery) {
		adID := r.AdGroupAd.Ad.ID.String()
		if adID == "" {
			continue
		}
		var ref string
		if r.Asset.Type == "YOUTUBE_VIDEO" && r.Asset.YoutubeVideoAsset != nil {
			if id := strings.TrimSpace(r.Asset.YoutubeVideoAsset.YoutubeVideoID); id != "" {
				ref = youtubeWatchURL + id
			}
		}
		if ref == "" {
			ref = strings.TrimSpace(r.Asset.ResourceName)
		}
		if ref != "" {
			key := r.AdGroup.ID.String() + "|" + adID
			out[key] = append(out[key], ref)
		}
	}
	return out
}

// audiences cobre critérios de campanha (ad_group_id vazio) e de grupo
func (s *GoogleAdsIntegrator) audiences(ctx context.Context, account domain.Account) ([]domain.Row, error) {
	campaignLevel, err := s.search(ctx, account, campaignAudienceQuery)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar audiências de campanha")
	}
	adGroupLevel, err := s.search(ctx, account, adGroupAudienceQuery)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar audiências de grupo")
	}

	var rows []domain.Row
	for _, r := range campaignLevel {
		if row, ok := audienceRow(r, r.CampaignCriterion, "", r.Campaign.TargetingSetting, account.CampaignNamePatterns); ok {
			rows = append(rows, row)
		}
	}
	for _, r := range adGroupLevel {
		if row, ok := audienceRow(r, r.AdGroupCriterion, r.AdGroup.ID.String(), r.AdGroup.TargetingSetting, account.CampaignNamePatterns); ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func audienceRow(r gadsdomain.Row, c gadsdomain.Criterion, adGroupID string, ts *gadsdomain.TargetingSetting, patterns []string) (domain.Row, bool) {
	if !matchesPatterns(r.Campaign.Name, patterns) {
		return nil, false
	}
	if _, ok := audienceTypeLabels[c.Type]; !ok {
		return nil, false
	}

	var name string
	switch c.Type {
	case "USER_LIST":
		name = r.UserList.Name
	case "USER_INTEREST":
		name = r.UserInterest.Name
	}

	return domain.Row{
		"campaign_id":    r.Campaign.ID.String(),
		"ad_group_id":    strings.TrimSpace(adGroupID),
		"criterion_id":   c.CriterionID.String(),
		"audience_type":  c.Type,
		"audience_id":    nullableString(truncate(audienceID(c), 256)),
		"audience_name":  nullableString(truncate(name, 512)),
		"targeting_mode": targetingMode(ts),
		"status":         nullableEnum(c.Status),
		"bid_modifier":   nullableFloat(c.BidModifier),
		"negative":       c.Negative != nil && *c.Negative,
	}, true
}

func audienceID(c gadsdomain.Criterion) string {
	for _, ref := range []*gadsdomain.AudienceRef{c.UserList, c.UserInterest, c.CustomAffinity,
		c.CustomIntent, c.CustomAudience, c.CombinedAudience} {
		if id := ref.ID(); id != "" {
			return id
		}
	}
	return ""
}

// targetingMode lê a restrição AUDIENCE; sem ela usa a primeira restrição
func targetingMode(ts *gadsdomain.TargetingSetting) any {
	if ts == nil || len(ts.TargetRestrictions) == 0 {
		return nil
	}
	mode := func(bidOnly *bool) any {
		if *bidOnly {
			return "OBSERVATION"
		}
		return "TARGETING"
	}
	for _, r := range ts.TargetRestrictions {
		if r.TargetingDimension == "AUDIENCE" && r.BidOnly != nil {
			return mode(r.BidOnly)
		}
	}
	if first := ts.TargetRestrictions[0]; first.BidOnly != nil {
		return mode(first.BidOnly)
	}
	return nil
}

func (s *GoogleAdsIntegrator) deviceModifiers(ctx context.Context, account domain.Account) ([]domain.Row, error) {
	results, err := s.search(ctx, account, deviceModifierQuery)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar modificadores de dispositivo")
	}

	var rows []domain.Row
	for _, r := range results {
		mod := r.AdGroupBidModifier
		if mod.Device == nil || emptyEnum(mod.Device.Type) {
			continue
		}
		campaignID, adGroupID := r.Campaign.ID.String(), r.AdGroup.ID.String()
		if campaignID == "" || adGroupID == "" {
			continue
		}
		rows = append(rows, domain.Row{
			"campaign_id":  campaignID,
			"ad_group_id":  adGroupID,
			"device_type":  truncate(mod.Device.Type, 32),
			"bid_modifier": nullableFloat(mod.BidModifier),
		})
	}
	return rows, nil
}

func (s *GoogleAdsIntegrator) changeEvents(ctx context.Context, account domain.Account, day string) ([]domain.Row, error) {
	results, err := s.search(ctx, account, changeEventQuery(day))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar histórico de alterações")
	}

	var rows []domain.Row
	for _, r := range results {
		ev := r.ChangeEvent
		if ev.ResourceName == "" {
			continue
		}
		rows = append(rows, domain.Row{
			"change_event_resource_name": truncate(ev.ResourceName, 512),
			"change_date_time":           nullableString(truncate(ev.ChangeDateTime, 48)),
			"change_resource_type":       nullableEnum(truncate(ev.ChangeResourceType, 64)),
			"change_resource_name":       nullableString(truncate(ev.ChangeResourceName, 512)),
			"resource_change_operation":  nullableEnum(truncate(ev.ResourceChangeOperation, 32)),
			"changed_fields":             nullableString(truncate(ev.ChangedFields, maxListLength)),
			"user_email":                 nullableString(truncate(ev.UserEmail, 256)),
			"client_type":                nullableEnum(truncate(ev.ClientType, 64)),
			"old_value":                  resourceText(ev.OldResource),
			"new_value":                  resourceText(ev.NewResource),
		})
	}
	return rows, nil
}

func resourceText(raw []byte) any {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" || text == "{}" {
		return nil
	}
	return truncate(text, maxJSONLength)
}

func (s *GoogleAdsIntegrator) conversionActions(ctx context.Context, account domain.Account) ([]domain.Row, error) {
	results, err := s.search(ctx, account, conversionActionQuery)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar ações de conversão")
	}

	var rows []domain.Row
	for _, r := range results {
		ca := r.ConversionAction
		if ca.ResourceName == "" {
			continue
		}
		var attribution any
		if ca.AttributionModelSettings != nil {
			attribution = nullableEnum(truncate(ca.AttributionModelSettings.AttributionModel, 64))
		}
		rows = append(rows, domain.Row{
			"conversion_action_resource_name":    truncate(ca.ResourceName, 512),
			"name":                               nullableString(truncate(ca.Name, 512)),
			"type":                               nullableEnum(truncate(ca.Type, 64)),
			"status":                             nullableEnum(truncate(ca.Status, 32)),
			"category":                           nullableEnum(truncate(ca.Category, 64)),
			"include_in_conversions_metric":      nullableBool(ca.IncludeInConversionsMetric),
			"attribution_model":                  attribution,
			"click_through_lookback_window_days": nullableInt(ca.ClickThroughLookbackWindowDays),
			"counting_type":                      nullableEnum(truncate(ca.CountingType, 32)),
		})
	}
	return rows, nil
}
