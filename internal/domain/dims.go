package domain

// CampaignDim é a dimensão de campanha mantida com o último dia em que foi vista
type CampaignDim struct {
	CampaignID             string
	CampaignName           string
	Status                 string
	AdvertisingChannelType string
}

type AdGroupDim struct {
	AdGroupID   string
	CampaignID  string
	AdGroupName string
}

type KeywordDim struct {
	AdGroupID          string
	KeywordCriterionID string
	CampaignID         string
	KeywordText        string
	MatchType          string
}

// CampaignDimsFrom extrai dimensões de campanha de linhas de estado ou de
// resultado. O status vem de campaign_status e, na falta dele, de status.
func CampaignDimsFrom(rows []Row) []CampaignDim {
	dims := make([]CampaignDim, 0, len(rows))
	for _, r := range rows {
		id := r.String("campaign_id")
		if id == "" {
			continue
		}
		status := r.String("campaign_status")
		if status == "" {
			status = r.String("status")
		}
		dims = append(dims, CampaignDim{
			CampaignID:             id,
			CampaignName:           r.String("campaign_name"),
			Status:                 status,
			AdvertisingChannelType: r.String("advertising_channel_type"),
		})
	}
	return dims
}

func AdGroupDimsFrom(rows []Row) []AdGroupDim {
	dims := make([]AdGroupDim, 0, len(rows))
	for _, r := range rows {
		id := r.String("ad_group_id")
		if id == "" {
			continue
		}
		dims = append(dims, AdGroupDim{
			AdGroupID:   id,
			CampaignID:  r.String("campaign_id"),
			AdGroupName: r.String("ad_group_name"),
		})
	}
	return dims
}

func KeywordDimsFrom(rows []Row) []KeywordDim {
	dims := make([]KeywordDim, 0, len(rows))
	for _, r := range rows {
		id := r.String("keyword_criterion_id")
		if id == "" {
			continue
		}
		dims = append(dims, KeywordDim{
			AdGroupID:          r.String("ad_group_id"),
			KeywordCriterionID: id,
			CampaignID:         r.String("campaign_id"),
			KeywordText:        r.String("keyword_text"),
			MatchType:          r.String("match_type"),
		})
	}
	return dims
}
